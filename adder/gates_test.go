package adder_test

import (
	"testing"

	"github.com/db47h/bitstep/adder"
)

func Test_gates(t *testing.T) {
	td := []struct {
		name   string
		gate   func(a, b uint8) uint8
		result []uint8 // a=0 && b=0, a=0 && b=1, a=1 && b=0, a=1 && b=1
	}{
		{"AND", adder.And, []uint8{0, 0, 0, 1}},
		{"OR", adder.Or, []uint8{0, 1, 1, 1}},
		{"XOR", adder.Xor, []uint8{0, 1, 1, 0}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			for i := 0; i < 4; i++ {
				a, b := uint8(i>>1), uint8(i&1)
				if out := d.gate(a, b); out != d.result[i] {
					t.Errorf("%s(%d, %d) = %d, got %d", d.name, a, b, d.result[i], out)
				}
			}
		})
	}
}

func TestFullAdder(t *testing.T) {
	for i := 0; i < 8; i++ {
		a, b, c := uint8(i>>2&1), uint8(i>>1&1), uint8(i&1)
		s, cout := adder.FullAdder(a, b, c)
		if sum := int(a) + int(b) + int(c); int(s) != sum&1 || int(cout) != sum>>1 {
			t.Errorf("FullAdder(%d, %d, %d) = %d, %d", a, b, c, s, cout)
		}
		if adder.Majority(a, b, c) != cout {
			t.Errorf("Majority(%d, %d, %d) != cout", a, b, c)
		}
	}
	for i := 0; i < 4; i++ {
		a, b := uint8(i>>1), uint8(i&1)
		s, c := adder.HalfAdder(a, b)
		if int(s)+2*int(c) != int(a)+int(b) {
			t.Errorf("HalfAdder(%d, %d) = %d, %d", a, b, s, c)
		}
	}
}

func TestMux(t *testing.T) {
	for i := 0; i < 8; i++ {
		a, b, sel := uint8(i>>2&1), uint8(i>>1&1), uint8(i&1)
		exp := a
		if sel == 1 {
			exp = b
		}
		if out := adder.Mux(a, b, sel); out != exp {
			t.Errorf("Mux(%d, %d, %d) = %d, got %d", a, b, sel, exp, out)
		}
	}
}
