// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package adder

import (
	"fmt"

	"github.com/db47h/bitstep"
)

// width of the final propagating adder of the carry save trace. 3 * 15 fits in
// 6 bits.
const csaFinalWidth = Width + 2

// CarrySave returns the trace of a carry save adder (the building block of a
// Wallace tree) computing a + b + c.
//
// Every bit position reduces its three input bits to a sum bit and a carry
// bit, independently of the others. The carry vector weighs twice as much as
// the sum vector, so its value is shifted left by one. A single ripple
// addition of both vectors produces the final sum, which is checked against
// a + b + c (Values.Verified).
//
func CarrySave(a, b, c int) []Step {
	a, b, c = bitstep.Wrap(a, Width), bitstep.Wrap(b, Width), bitstep.Wrap(c, Width)

	var t trace
	v := Values{
		Phase:    PhaseIntro,
		Current:  -1,
		Selected: -1,
		A:        bitstep.BitsOf(a, Width),
		B:        bitstep.BitsOf(b, Width),
		C:        bitstep.BitsOf(c, Width),
	}
	t.push(bitstep.Info{
		Title: "Carry save adder",
		Desc:  "A carry save adder (CSA) reduces 3 inputs to 2 outputs, a sum vector and a carry vector, without any carry propagation.",
		Detail: fmt.Sprintf("A=%d (%s), B=%d (%s), C=%d (%s)",
			a, v.A, b, v.B, c, v.C),
	}, v)

	v.Phase = PhaseExplain
	t.push(bitstep.Info{
		Title:  "CSA principle",
		Desc:   "For every bit position: s = a ⊕ b ⊕ c and cv = majority(a, b, c). Nothing ripples, all CSA cells work in parallel.",
		Detail: "s_i = a_i ⊕ b_i ⊕ c_i, cv_i = (a∧b) ∨ (a∧c) ∨ (b∧c)",
		Active: bitstep.Active("csa-explain"),
	}, v)

	al, bl, cl := v.A.LSBFirst(), v.B.LSBFirst(), v.C.LSBFirst()
	s := make([]uint8, Width)
	cv := make([]uint8, Width)
	for i := 0; i < Width; i++ {
		s[i], cv[i] = FullAdder(al[i], bl[i], cl[i])
	}
	v.SumBits = bitstep.FromLSBFirst(s)
	v.CarryBits = bitstep.FromLSBFirst(cv)
	v.SumValue = v.SumBits.Value()
	v.CarryValue = v.CarryBits.Value() << 1
	v.Phase = PhaseCSA
	active := make([]string, Width)
	for i := range active {
		active[i] = fmt.Sprintf("csa-%d", i)
	}
	t.push(bitstep.Info{
		Title: "CSA layer",
		Desc:  "All 4 CSA cells work in parallel. 3 numbers are reduced to 2.",
		Detail: fmt.Sprintf("S = %d (%s), CV = %d (%s, shifted left)",
			v.SumValue, bitstep.BinaryString(v.SumValue, Width),
			v.CarryValue, bitstep.BinaryString(v.CarryValue, Width+1)),
		Active: active,
	}, v)

	v.Phase = PhaseIntermediate
	t.push(bitstep.Info{
		Title:  "Intermediate result",
		Desc:   "Only 2 numbers are left. The carry vector is shifted left by one position since carries weigh twice as much.",
		Detail: fmt.Sprintf("Sum S = %d, carry CV = %d", v.SumValue, v.CarryValue),
		Active: bitstep.Active("intermediate"),
	}, v)

	sums, carries := rippleAdd(
		bitstep.BitsOf(v.SumValue, csaFinalWidth).LSBFirst(),
		bitstep.BitsOf(v.CarryValue, csaFinalWidth).LSBFirst(), 0)
	v.Sums = sums
	v.Carries = carries
	v.Computed = upTo(csaFinalWidth)
	v.FinalSum = sumValue(sums, carries[csaFinalWidth])
	v.Phase = PhaseFinalAdd
	t.push(bitstep.Info{
		Title:  "Final addition",
		Desc:   "S + CV goes through an ordinary ripple carry adder. Only this last stage propagates carries.",
		Detail: fmt.Sprintf("%d + %d = %d", v.SumValue, v.CarryValue, v.FinalSum),
		Active: bitstep.Active("final-adder"),
	}, v)

	v.Expected = a + b + c
	v.Verified = v.FinalSum == v.Expected && v.SumValue+v.CarryValue == v.Expected
	v.Phase = PhaseResult
	detail := "Correct"
	if !v.Verified {
		detail = fmt.Sprintf("Expected: %d", v.Expected)
	}
	return t.final(bitstep.Info{
		Title:  "Result",
		Desc:   fmt.Sprintf("Check: %d + %d + %d = %d. Wallace trees chain CSA layers to add the many partial products of a multiplication.", a, b, c, v.Expected),
		Detail: detail,
		Active: bitstep.Active("final-adder"),
	}, v, v.FinalSum)
}
