// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package adder

import (
	"fmt"
	"strings"

	"github.com/db47h/bitstep"
	"github.com/pkg/errors"
)

// MaxPrefixWidth is the widest parallel prefix adder ParallelPrefixN accepts.
//
const MaxPrefixWidth = 30

// combine is the prefix operator. hi covers the bits right above lo.
//
//	G_{i:k} = G_{i:j} ∨ (P_{i:j} ∧ G_{j-1:k})
//	P_{i:k} = P_{i:j} ∧ P_{j-1:k}
//
func combine(hi, lo Group) Group {
	return Group{
		Hi: hi.Hi,
		Lo: lo.Lo,
		G:  Or(hi.G, And(hi.P, lo.G)),
		P:  And(hi.P, lo.P),
	}
}

func (g Group) String() string {
	return fmt.Sprintf("G_{%d:%d}=%d, P_{%d:%d}=%d", g.Hi, g.Lo, g.G, g.Hi, g.Lo, g.P)
}

func groups(gs []Group) string {
	s := make([]string, len(gs))
	for i := range gs {
		s[i] = gs[i].String()
	}
	return strings.Join(s, " | ")
}

// ParallelPrefix returns the trace of a 4 bits parallel prefix
// (generate/propagate tree) adder computing a + b + cin.
//
func ParallelPrefix(a, b int, cin uint8) []Step {
	return ParallelPrefixN(Width, a, b, cin)
}

// ParallelPrefixN returns the trace of a width bits parallel prefix adder.
//
// Level k of the tree combines adjacent groups of 2^(k-1) bits, so the tree
// has floor(log2(width)) levels; a 4 bits adder has exactly two: bits 3:2 and
// 1:0 first, then 3:0. Prefixes G_{i:0} not produced by the tree (2:0 for a 4
// bits adder) are completed in a separate step before the carries are
// derived: c_{i+1} = G_{i:0} ∨ (P_{i:0} ∧ c_in).
//
// width must be in [1, MaxPrefixWidth], otherwise a single error step is
// returned.
//
func ParallelPrefixN(width int, a, b int, cin uint8) []Step {
	if width < 1 || width > MaxPrefixWidth {
		return []Step{{Info: bitstep.ErrorInfo("Invalid width",
			errors.Wrapf(bitstep.ErrWidth, "width %d not in [1, %d]", width, MaxPrefixWidth))}}
	}
	a, b, cin = bitstep.Wrap(a, width), bitstep.Wrap(b, width), cin&1
	ab, bb := bitstep.BitsOf(a, width).LSBFirst(), bitstep.BitsOf(b, width).LSBFirst()

	var t trace
	v := Values{Phase: PhaseIntro, Current: -1, Selected: -1}
	t.push(bitstep.Info{
		Title: "Parallel prefix",
		Desc:  "The parallel prefix adder works on generate (G) and propagate (P) signals. A prefix tree makes all carries available at once.",
		Detail: fmt.Sprintf("A = %d (%s), B = %d (%s)",
			a, bitstep.BinaryString(a, width), b, bitstep.BinaryString(b, width)),
	}, v)

	v.Generate = make([]uint8, width)
	v.Propagate = make([]uint8, width)
	span := make([]Group, width)
	for i := 0; i < width; i++ {
		v.Generate[i] = And(ab[i], bb[i])
		v.Propagate[i] = Xor(ab[i], bb[i])
		span[i] = Group{Hi: i, Lo: i, G: v.Generate[i], P: v.Propagate[i]}
	}
	v.Phase = PhaseGP
	t.push(bitstep.Info{
		Title:  "Generate and propagate",
		Desc:   "Generate g_i = a_i ∧ b_i (stage i creates a carry). Propagate p_i = a_i ⊕ b_i (stage i passes a carry through).",
		Detail: fmt.Sprintf("G = [%s], P = [%s]", join(v.Generate, ","), join(v.Propagate, ",")),
		Active: bitstep.Active("gp-initial"),
	}, v)

	v.Phase = PhasePrefix
	for d := 1; d < width; d <<= 1 {
		var lvl []Group
		for i := 2*d - 1; i < width; i += 2 * d {
			span[i] = combine(span[i], span[i-d])
			lvl = append(lvl, span[i])
		}
		if len(lvl) == 0 {
			break
		}
		v.Levels = append(v.Levels, lvl)
		k := len(v.Levels)
		desc := "Combine adjacent groups: G_{i:k} = G_{i:j} ∨ P_{i:j}·G_{j-1:k}, P_{i:k} = P_{i:j}·P_{j-1:k}"
		if 2*d >= width {
			desc = fmt.Sprintf("Final prefix combination: G_{%d:0} decides the carry out c%d.", width-1, width)
		}
		t.push(bitstep.Info{
			Title:  fmt.Sprintf("Prefix level %d", k),
			Desc:   desc,
			Detail: groups(lvl),
			Active: bitstep.Active(fmt.Sprintf("prefix-level-%d", k)),
		}, v)
	}

	// complete the prefixes i:0 the tree did not produce, lowest first.
	var completed []Group
	for i := range span {
		if span[i].Lo != 0 {
			span[i] = combine(span[i], span[span[i].Lo-1])
			completed = append(completed, span[i])
		}
	}
	v.Prefixes = span
	if len(completed) > 0 {
		t.push(bitstep.Info{
			Title:  "Complete prefixes",
			Desc:   "Combine each remaining group with the prefix right below it to get G_{i:0} for every bit.",
			Detail: groups(completed),
			Active: bitstep.Active("prefix-complete"),
		}, v)
	}
	v.Carries = make([]uint8, width+1)
	v.Carries[0] = cin
	for i := 0; i < width; i++ {
		v.Carries[i+1] = Or(span[i].G, And(span[i].P, cin))
	}
	v.Phase = PhaseCarries
	t.push(bitstep.Info{
		Title:  "Carries",
		Desc:   "All carries are available in parallel: c_i = G_{i-1:0} ∨ P_{i-1:0}·c0",
		Detail: "c = [" + join(v.Carries, ",") + "]",
		Active: bitstep.Active("carry-calc"),
	}, v)

	v.Sums = make([]uint8, width)
	for i := range v.Sums {
		v.Sums[i] = Xor(v.Propagate[i], v.Carries[i])
	}
	v.Computed = upTo(width)
	v.Phase = PhaseSums
	t.push(bitstep.Info{
		Title:  "Sums",
		Desc:   "s_i = p_i ⊕ c_i, all sums are computed in parallel.",
		Detail: fmt.Sprintf("S = [%s] = %s", join(v.Sums, ","), bitstep.FromLSBFirst(v.Sums)),
		Active: bitstep.Active("sum-xor"),
	}, v)

	v.Phase = PhaseFinal
	v.CarryOut = v.Carries[width]
	result := sumValue(v.Sums, v.CarryOut)
	active := []string{"gp-initial"}
	for k := range v.Levels {
		active = append(active, fmt.Sprintf("prefix-level-%d", k+1))
	}
	active = append(active, "carry-calc", "sum-xor")
	return t.final(bitstep.Info{
		Title:  "Result",
		Desc:   fmt.Sprintf("The parallel prefix adder has O(log n) depth (%d levels) instead of O(n) for the ripple carry adder.", len(v.Levels)),
		Detail: fmt.Sprintf("%s = %d", sumExpr(a, b, cin), result),
		Active: active,
	}, v, result)
}
