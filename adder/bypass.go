// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package adder

import (
	"fmt"
	"strings"

	"github.com/db47h/bitstep"
)

func join(bits []uint8, sep string) string {
	var sb strings.Builder
	for i, b := range bits {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteByte('0' + b)
	}
	return sb.String()
}

// CarryBypass returns the trace of a 4 bits carry bypass (carry skip) adder
// computing a + b + cin.
//
// The propagate signals p_i = a_i ⊕ b_i are computed first. If all of them
// are set, the bypass is active and the carry out is the carry in, available
// without waiting for the ripple chain. Sums are always computed from the
// exact ripple carries.
//
func CarryBypass(a, b int, cin uint8) []Step {
	a, b, cin = bitstep.Wrap(a, Width), bitstep.Wrap(b, Width), cin&1
	ab, bb := operand(a), operand(b)

	var t trace
	v := Values{Carries: []uint8{cin}, Current: -1, Selected: -1}
	t.push(bitstep.Info{
		Title:  "Carry bypass",
		Desc:   "The carry bypass adder computes the propagate signals first. If all P are 1, the carry in is passed straight to the carry out (bypass).",
		Detail: operands(a, b),
	}, v)

	v.Propagate = make([]uint8, Width)
	for i := range v.Propagate {
		v.Propagate[i] = Xor(ab[i], bb[i])
	}
	t.push(bitstep.Info{
		Title:  "Propagate signals",
		Desc:   "P_i = a_i ⊕ b_i tells whether stage i passes an incoming carry through.",
		Detail: "P = [" + join(v.Propagate, ", ") + "]",
		Active: bitstep.Active("p-calc"),
	}, v)

	all := uint8(1)
	for _, p := range v.Propagate {
		all = And(all, p)
	}
	v.BypassActive = all == 1
	info := bitstep.Info{
		Title:  "Bypass condition",
		Detail: fmt.Sprintf("P_all = %s = %d", join(v.Propagate, " ∧ "), all),
	}
	if v.BypassActive {
		info.Desc = "All P are 1. The bypass is active: c4 = c0, the carry is passed through directly."
		info.Active = bitstep.Active("bypass-path")
		v.CarryOut = cin
	} else {
		info.Desc = "Not all P are 1. The bypass is inactive, carries ripple as usual."
		info.Active = bitstep.Active("ripple-path")
	}
	t.push(info, v)

	for i := 0; i < Width; i++ {
		ci := v.Carries[i]
		s, cout := FullAdder(ab[i], bb[i], ci)
		v.Sums = append(v.Sums, s)
		v.Carries = append(v.Carries, cout)
		v.Computed = upTo(i + 1)
		v.Current = i
		t.push(bitstep.Info{
			Title:  fmt.Sprintf("Bit %d", i),
			Desc:   fmt.Sprintf("Sum s%d = a%d ⊕ b%d ⊕ c%d", i, i, i, i),
			Detail: fmt.Sprintf("%d ⊕ %d ⊕ %d = %d", ab[i], bb[i], ci, s),
			Active: bitstep.Active(fmt.Sprintf("adder-%d", i)),
		}, v)
	}

	v.Current = -1
	if v.BypassActive && v.Carries[Width] != cin {
		panic("carry bypass: bypassed carry differs from ripple carry")
	}
	v.CarryOut = v.Carries[Width]
	result := sumValue(v.Sums, v.CarryOut)
	info = bitstep.Info{
		Title:  "Result",
		Detail: fmt.Sprintf("%s = %d", sumExpr(a, b, cin), result),
		Active: adderTags(Width),
	}
	if v.BypassActive {
		info.Desc = "With the bypass active, c4 was known immediately: only the sums had to be computed."
	} else {
		info.Desc = "The bypass was inactive. The computation ran like a ripple carry adder."
	}
	return t.final(info, v, result)
}
