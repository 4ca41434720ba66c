// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package adder

import (
	"fmt"

	"github.com/db47h/bitstep"
)

func operands(a, b int) string {
	return fmt.Sprintf("A = %d (%s), B = %d (%s)",
		a, bitstep.BinaryString(a, Width), b, bitstep.BinaryString(b, Width))
}

func sumExpr(a, b int, cin uint8) string {
	if cin != 0 {
		return fmt.Sprintf("%d + %d + %d", a, b, cin)
	}
	return fmt.Sprintf("%d + %d", a, b)
}

// RippleCarry returns the trace of a 4 bits ripple carry adder computing
// a + b + cin.
//
// Operands are reduced to 4 bits. The trace has an introduction step, one
// step per full adder stage from bit 0 up to bit 3 and a final step whose
// Result is the 5 bits sum (carry out included).
//
func RippleCarry(a, b int, cin uint8) []Step {
	a, b, cin = bitstep.Wrap(a, Width), bitstep.Wrap(b, Width), cin&1
	ab, bb := operand(a), operand(b)

	var t trace
	v := Values{Carries: []uint8{cin}, Current: -1, Selected: -1}
	t.push(bitstep.Info{
		Title:  "Start",
		Desc:   "The ripple carry adder computes the sum one bit at a time, from right to left. Each carry ripples through all stages.",
		Detail: operands(a, b),
	}, v)

	for i := 0; i < Width; i++ {
		ci := v.Carries[i]
		s, cout := FullAdder(ab[i], bb[i], ci)
		v.Sums = append(v.Sums, s)
		v.Carries = append(v.Carries, cout)
		v.Computed = upTo(i + 1)
		v.Current = i

		info := bitstep.Info{Active: bitstep.Active(fmt.Sprintf("adder-%d", i))}
		if i == 0 && cin == 0 {
			info.Title = "Half adder (bit 0)"
			info.Desc = "The half adder computes s0 and c1 from a0 and b0, there is no carry in."
			info.Detail = fmt.Sprintf("%d ⊕ %d = s0=%d, %d ∧ %d = c1=%d", ab[i], bb[i], s, ab[i], bb[i], cout)
		} else {
			info.Title = fmt.Sprintf("Full adder %d", i)
			info.Desc = fmt.Sprintf("Full adder %d computes s%d and c%d from a%d, b%d and the carry c%d.", i, i, i+1, i, i, i)
			info.Detail = fmt.Sprintf("%d ⊕ %d ⊕ %d = s%d=%d, c%d=%d", ab[i], bb[i], ci, i, s, i+1, cout)
		}
		t.push(info, v)
	}

	v.Current = -1
	v.CarryOut = v.Carries[Width]
	result := sumValue(v.Sums, v.CarryOut)
	return t.final(bitstep.Info{
		Title:  "Result",
		Desc:   "The addition is complete. The final carry c4 is the overflow bit.",
		Detail: fmt.Sprintf("%s = %d (%s)", sumExpr(a, b, cin), result, bitstep.BinaryString(result, Width+1)),
		Active: adderTags(Width),
	}, v, result)
}
