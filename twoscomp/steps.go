// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package twoscomp

import (
	"fmt"
	"strconv"

	"github.com/db47h/bitstep"
	"github.com/db47h/bitstep/adder"
	"golang.org/x/exp/slices"
)

// Step is a step of a conversion trace.
//
type Step struct {
	bitstep.Info
	// Binary is the representation at this step.
	Binary string
	// Changed lists the positions in Binary (0 is the MSB) that differ from
	// the previous step.
	Changed []int
}

var _ bitstep.Stepper = Step{}

// ConversionSteps returns the trace of the encoding of d on width bits.
//
// A non-negative value is encoded directly in a single step. A negative
// value goes through three stages: magnitude in binary, bit inversion and
// +1. Each stage lists the bits it changed.
//
// d must be in Range(width), otherwise a single error step is returned.
//
func ConversionSteps(d int, width int) []Step {
	if err := checkRange(d, width); err != nil {
		return []Step{{Info: bitstep.ErrorInfo("Invalid input", err)}}
	}

	result := Encode(d, width)
	if d >= 0 {
		return []Step{{
			Info: bitstep.Info{
				Title:  "Result",
				Desc:   fmt.Sprintf("%d ≥ 0: direct binary representation.", d),
				Detail: result,
				Active: bitstep.Active("result"),
				Final:  true,
			},
			Binary: result,
		}}
	}

	mag := pad(strconv.FormatInt(int64(-d), 2), width)
	inv := Invert(mag)
	return []Step{
		{
			Info: bitstep.Info{
				Title:  "Magnitude in binary",
				Desc:   fmt.Sprintf("|%d| = %d", d, -d),
				Detail: mag,
				Active: bitstep.Active("magnitude"),
			},
			Binary: mag,
		},
		{
			Info: bitstep.Info{
				Title:  "Invert bits",
				Desc:   "Flip all bits (0 ↔ 1).",
				Detail: mag + " → " + inv,
				Active: bitstep.Active("invert"),
			},
			Binary:  inv,
			Changed: changed(mag, inv),
		},
		{
			Info: bitstep.Info{
				Title:  "Add 1",
				Desc:   "Add 1 to the inverted value.",
				Detail: fmt.Sprintf("%s + 1 = %s", inv, result),
				Active: bitstep.Active("add-one"),
			},
			Binary:  result,
			Changed: changed(inv, result),
		},
		{
			Info: bitstep.Info{
				Title:  "Result",
				Desc:   fmt.Sprintf("%d in two's complement.", d),
				Detail: result,
				Active: bitstep.Active("result"),
				Final:  true,
			},
			Binary: result,
		},
	}
}

// Addition phases.
//
const (
	PhaseConvert  = "convert"
	PhaseAddition = "addition"
	PhaseResult   = "result"
)

// AddStep is a step of an addition trace.
//
type AddStep struct {
	bitstep.Info
	Phase string
	X, Y  string // operands, MSB first
	// Sums and Carries hold the bits computed so far, LSB first. Carries
	// holds the carry into each position, c0 = 0 first.
	Sums    []uint8
	Carries []uint8
	Current int // bit position computed by this step, -1 if none

	// Only valid on the final step.
	Result   string
	Value    int  // result interpreted as two's complement
	Expected int  // mathematical sum
	CarryOut uint8
	Overflow bool
}

var _ bitstep.Stepper = AddStep{}

// AdditionSteps returns the trace of the width bits two's complement
// addition x + y.
//
// Both operands are encoded, then added bit by bit from the LSB with an
// explicit carry chain. The final carry out is discarded. Overflow occurs
// when both operands have the same sign bit and the sign bit of the result
// differs.
//
// x and y must be in Range(width), otherwise a single error step is returned.
//
func AdditionSteps(x, y int, width int) []AddStep {
	for _, v := range []int{x, y} {
		if err := checkRange(v, width); err != nil {
			return []AddStep{{Info: bitstep.ErrorInfo("Invalid input", err), Current: -1}}
		}
	}

	xs, ys := Encode(x, width), Encode(y, width)
	xb, yb := bitstep.BitsOf(x, width).LSBFirst(), bitstep.BitsOf(y, width).LSBFirst()

	var steps []AddStep
	s := AddStep{Phase: PhaseConvert, X: xs, Y: ys, Carries: []uint8{0}, Current: -1}
	push := func(info bitstep.Info) {
		s.Info = info
		c := s
		c.Sums = slices.Clone(s.Sums)
		c.Carries = slices.Clone(s.Carries)
		steps = append(steps, c)
	}

	push(bitstep.Info{
		Title:  "Convert operands",
		Desc:   fmt.Sprintf("x = %d, y = %d", x, y),
		Detail: fmt.Sprintf("x = %s, y = %s", xs, ys),
		Active: bitstep.Active(PhaseConvert),
	})

	s.Phase = PhaseAddition
	for i := 0; i < width; i++ {
		cin := s.Carries[i]
		sum, cout := adder.FullAdder(xb[i], yb[i], cin)
		s.Sums = append(s.Sums, sum)
		s.Carries = append(s.Carries, cout)
		s.Current = i
		push(bitstep.Info{
			Title:  fmt.Sprintf("Bit %d", i),
			Desc:   "Binary addition from right to left.",
			Detail: fmt.Sprintf("%d + %d + %d = %d, carry %d", xb[i], yb[i], cin, sum, cout),
			Active: bitstep.Active("bit-" + strconv.Itoa(i)),
		})
	}

	s.Phase = PhaseResult
	s.Current = -1
	s.CarryOut = s.Carries[width]
	s.Result = bitstep.FromLSBFirst(s.Sums).String()
	s.Value = bitstep.FromLSBFirst(s.Sums).Signed()
	s.Expected = x + y
	s.Overflow = xs[0] == ys[0] && s.Result[0] != xs[0]

	info := bitstep.Info{
		Title:  "Result",
		Desc:   fmt.Sprintf("%d + %d = %d", x, y, s.Value),
		Detail: fmt.Sprintf("%s = %d", s.Result, s.Value),
		Active: bitstep.Active(PhaseResult),
		Final:  true,
	}
	lo, hi := Range(width)
	switch {
	case s.Overflow:
		info.Title = "Result (overflow!)"
		info.Desc = fmt.Sprintf("Overflow: %d + %d = %d does not fit in %d bits, it is outside of [%d, %d].",
			x, y, s.Expected, width, lo, hi)
		info.Active = bitstep.Active(PhaseResult, "overflow")
	case s.CarryOut != 0:
		info.Desc += fmt.Sprintf(". The carry out %d is discarded (mod 2^%d).", s.CarryOut, width)
	}
	push(info)
	return steps
}
