package tracetest_test

import (
	"testing"

	"github.com/db47h/bitstep/adder"
	"github.com/db47h/bitstep/tracetest"
)

func TestCompareAdders(t *testing.T) {
	// a ripple carry adder built from gates only
	ripple := func(a, b int, cin uint8) int {
		var sum int
		c := cin
		for i := 0; i < 6; i++ {
			var s uint8
			s, c = adder.FullAdder(uint8(a>>uint(i)), uint8(b>>uint(i)), c)
			sum |= int(s) << uint(i)
		}
		return sum | int(c)<<6
	}
	tracetest.CompareAdders(t, 6, func(a, b int, cin uint8) int { return a + b + int(cin) }, ripple)
}

func TestCheck(t *testing.T) {
	steps := adder.RippleCarry(3, 5, 1)
	tracetest.Check(t, steps)
}
