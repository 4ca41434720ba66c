// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package adder generates step-by-step traces of five binary adder designs:
// ripple carry, carry bypass, carry select, parallel prefix and carry save
// (Wallace tree).
//
// Unless noted otherwise, bit slices in this package are stored LSB first:
// index i holds the bit of weight 2^i. Carry chains hold c0 (the carry in) at
// index 0 and the carry out at index Width.
//
package adder

import (
	"strconv"

	"github.com/db47h/bitstep"
	"golang.org/x/exp/slices"
)

// Width is the operand width of the 4 bits adders.
//
const Width = 4

// Phase names the stage of a multi phase adder trace.
//
type Phase string

// Adder phases.
//
const (
	PhaseIntro        Phase = "intro"
	PhaseGP           Phase = "gp"
	PhasePrefix       Phase = "prefix"
	PhaseCarries      Phase = "carries"
	PhaseSums         Phase = "sums"
	PhaseCompute0     Phase = "compute0"
	PhaseCompute1     Phase = "compute1"
	PhaseMux          Phase = "mux"
	PhaseExplain      Phase = "explain"
	PhaseCSA          Phase = "csa"
	PhaseIntermediate Phase = "intermediate"
	PhaseFinalAdd     Phase = "final-add"
	PhaseFinal        Phase = "final"
	PhaseResult       Phase = "result"
)

// Branch is one of the two precomputed additions of a carry select adder.
//
type Branch struct {
	Cin     uint8
	Sums    []uint8 // LSB first
	Carries []uint8 // c0..c4
	Sum     int     // Width bits sum, carry out excluded
	Cout    uint8
}

// Value returns the full sum, carry out included.
//
func (b Branch) Value() int {
	return int(b.Cout)<<uint(len(b.Sums)) | b.Sum
}

func (b Branch) clone() Branch {
	b.Sums = slices.Clone(b.Sums)
	b.Carries = slices.Clone(b.Carries)
	return b
}

// Group holds the generate and propagate signals of the bit range Hi:Lo.
//
type Group struct {
	Hi, Lo int
	G, P   uint8
}

// Values is the adder state visible at a given step. Fields that do not
// apply to a given adder are left to their zero value.
//
type Values struct {
	Phase Phase

	Carries  []uint8 // carry chain computed so far, c0 first
	Sums     []uint8 // sum bits computed so far, LSB first
	Computed []int   // bit positions computed so far
	Current  int     // bit position computed by this step, -1 if none

	Propagate    []uint8 // p_i = a_i ^ b_i
	Generate     []uint8 // g_i = a_i & b_i
	BypassActive bool
	CarryOut     uint8

	// Carry select
	Branches []Branch
	Selected int // selected branch, -1 if none

	// Parallel prefix
	Levels   [][]Group // combination levels of the prefix tree
	Prefixes []Group   // G/P of range i:0 for every bit i

	// Carry save
	A, B, C    bitstep.Bits // MSB first
	SumBits    bitstep.Bits // MSB first
	CarryBits  bitstep.Bits // MSB first, not shifted
	SumValue   int
	CarryValue int // carry vector value, shifted left by one
	FinalSum   int
	Expected   int
	Verified   bool
}

func (v Values) clone() Values {
	v.Carries = slices.Clone(v.Carries)
	v.Sums = slices.Clone(v.Sums)
	v.Computed = slices.Clone(v.Computed)
	v.Propagate = slices.Clone(v.Propagate)
	v.Generate = slices.Clone(v.Generate)
	if v.Branches != nil {
		bs := make([]Branch, len(v.Branches))
		for i := range v.Branches {
			bs[i] = v.Branches[i].clone()
		}
		v.Branches = bs
	}
	if v.Levels != nil {
		ls := make([][]Group, len(v.Levels))
		for i := range v.Levels {
			ls[i] = slices.Clone(v.Levels[i])
		}
		v.Levels = ls
	}
	v.Prefixes = slices.Clone(v.Prefixes)
	v.A = slices.Clone(v.A)
	v.B = slices.Clone(v.B)
	v.C = slices.Clone(v.C)
	v.SumBits = slices.Clone(v.SumBits)
	v.CarryBits = slices.Clone(v.CarryBits)
	return v
}

// Step is a single step of an adder trace.
//
type Step struct {
	bitstep.Info
	Values Values
	// Result is the decimal result, carry out included. Only valid on the
	// final step.
	Result int
}

// trace accumulates steps, snapshotting values on every push.
//
type trace []Step

func (t *trace) push(info bitstep.Info, v Values) {
	*t = append(*t, Step{Info: info, Values: v.clone()})
}

func (t *trace) final(info bitstep.Info, v Values, result int) []Step {
	info.Final = true
	*t = append(*t, Step{Info: info, Values: v.clone(), Result: result})
	return *t
}

// operand bits of v, LSB first.
func operand(v int) []uint8 {
	return bitstep.BitsOf(v, Width).LSBFirst()
}

// value of sums (LSB first) with carry out on top.
func sumValue(sums []uint8, cout uint8) int {
	return int(cout)<<uint(len(sums)) | bitstep.FromLSBFirst(sums).Value()
}

func upTo(n int) []int {
	r := make([]int, n)
	for i := range r {
		r[i] = i
	}
	return r
}

func adderTags(n int) []string {
	tags := make([]string, n)
	for i := range tags {
		tags[i] = "adder-" + strconv.Itoa(i)
	}
	return tags
}
