// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package adder

import (
	"fmt"

	"github.com/db47h/bitstep"
)

func branch(a, b []uint8, cin uint8) Branch {
	sums, carries := rippleAdd(a, b, cin)
	return Branch{
		Cin:     cin,
		Sums:    sums,
		Carries: carries,
		Sum:     bitstep.FromLSBFirst(sums).Value(),
		Cout:    carries[len(a)],
	}
}

// CarrySelect returns the trace of a 4 bits carry select adder computing
// a + b + cin.
//
// Two complete ripple additions are precomputed, one assuming a carry in of
// 0, the other a carry in of 1. A multiplexer then selects the branch
// matching the actual carry in; no recomputation takes place.
//
func CarrySelect(a, b int, cin uint8) []Step {
	a, b, cin = bitstep.Wrap(a, Width), bitstep.Wrap(b, Width), cin&1
	ab, bb := operand(a), operand(b)

	var t trace
	v := Values{Phase: PhaseIntro, Current: -1, Selected: -1}
	t.push(bitstep.Info{
		Title:  "Carry select",
		Desc:   "Two adders run in parallel: one with c_in=0, one with c_in=1. A multiplexer picks the right result once the real carry is known.",
		Detail: operands(a, b),
	}, v)

	for _, c := range []uint8{0, 1} {
		br := branch(ab, bb, c)
		v.Branches = append(v.Branches, br)
		v.Phase = PhaseCompute0
		desc := "The first adder assumes there is no carry in."
		if c == 1 {
			v.Phase = PhaseCompute1
			desc = "The second adder assumes a carry in. Both computations run in parallel."
		}
		t.push(bitstep.Info{
			Title:  fmt.Sprintf("Adder with c_in=%d", c),
			Desc:   desc,
			Detail: fmt.Sprintf("S=%s, c_out=%d", bitstep.BinaryString(br.Sum, Width), br.Cout),
			Active: bitstep.Active(fmt.Sprintf("adder-block-%d", c)),
		}, v)
	}

	// the mux is a pure lookup
	sel := int(Mux(0, 1, cin))
	selected := v.Branches[sel]
	v.Phase = PhaseMux
	v.Selected = sel
	v.Sums = selected.Sums
	v.Carries = selected.Carries
	v.CarryOut = selected.Cout
	t.push(bitstep.Info{
		Title:  "Multiplexer",
		Desc:   fmt.Sprintf("The actual carry in is %d. The multiplexer selects the result of adder %d.", cin, sel),
		Detail: fmt.Sprintf("Selected: S=%s from adder %d", bitstep.BinaryString(selected.Sum, Width), sel),
		Active: bitstep.Active("mux", fmt.Sprintf("adder-block-%d", sel)),
	}, v)

	v.Phase = PhaseFinal
	result := selected.Value()
	return t.final(bitstep.Info{
		Title:  "Result",
		Desc:   "Carry select trades area for latency: instead of waiting for the carry, both outcomes are precomputed.",
		Detail: fmt.Sprintf("%d + %d + %d = %d", a, b, cin, result),
		Active: bitstep.Active("mux", fmt.Sprintf("adder-block-%d", sel)),
	}, v, result)
}
