// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package divider generates step-by-step traces of the restoring and
// non-restoring binary division algorithms.
//
// The traces use the x, y, z, c register notation:
//
//	x: remainder accumulator, initially 0
//	y: quotient register, initially holds the dividend
//	z: divisor
//	c: carry (borrow) bit on top of x
//
// Every cycle shifts the combined register c|x|y one bit to the left, then
// subtracts (or adds) z to c|x and shifts the quotient bit into y0.
//
package divider

import (
	"fmt"

	"github.com/db47h/bitstep"
	"github.com/pkg/errors"
)

// Method selects a division algorithm.
//
type Method int

// Division methods.
//
const (
	Restoring Method = iota
	NonRestoring
)

func (m Method) String() string {
	switch m {
	case Restoring:
		return "restoring"
	case NonRestoring:
		return "non-restoring"
	}
	return "unknown"
}

// ParseMethod returns the Method named s.
//
func ParseMethod(s string) (Method, error) {
	switch s {
	case "restoring":
		return Restoring, nil
	case "non-restoring", "nonrestoring":
		return NonRestoring, nil
	}
	return 0, errors.Errorf("unknown division method %q", s)
}

// Register width limits.
//
const (
	MinWidth = 1
	MaxWidth = 16
)

// Config holds the parameters of a division trace.
//
type Config struct {
	Width  int
	Method Method
}

// Validate checks that c describes a supported divider.
//
func (c Config) Validate() error {
	if c.Width < MinWidth || c.Width > MaxWidth {
		return errors.Wrapf(bitstep.ErrWidth, "width %d not in [%d, %d]", c.Width, MinWidth, MaxWidth)
	}
	if c.Method != Restoring && c.Method != NonRestoring {
		return errors.Errorf("invalid division method %d", int(c.Method))
	}
	return nil
}

// Trace returns the trace of dividend / divisor.
//
func (c Config) Trace(dividend, divisor int) []Step {
	return Divide(dividend, divisor, c.Width, c.Method)
}

// Registers is the divider state.
//
type Registers struct {
	Width int
	X     int   // N bits
	Y     int   // N bits
	Z     int   // N bits
	C     uint8 // bit N of c|x
}

// CX returns the N+1 bits value of c|x.
//
func (r Registers) CX() int {
	return int(r.C)<<uint(r.Width) | r.X
}

// Acc returns c|x interpreted as a N+1 bits two's complement value. This is
// the partial remainder of the non-restoring method.
//
func (r Registers) Acc() int {
	return bitstep.SignExtend(r.CX(), r.Width+1)
}

func (r *Registers) setAcc(v int) {
	v = bitstep.Wrap(v, r.Width+1)
	r.C = uint8(v >> uint(r.Width))
	r.X = v & bitstep.Mask(r.Width)
}

func (r Registers) String() string {
	return fmt.Sprintf("c=%d x=%s y=%s z=%s", r.C,
		bitstep.BinaryString(r.X, r.Width),
		bitstep.BinaryString(r.Y, r.Width),
		bitstep.BinaryString(r.Z, r.Width))
}

// Step is a single step of a division trace.
//
type Step struct {
	bitstep.Info
	Regs Registers
	// Cycle number in [1, Width], 0 for steps outside of the main loop.
	Cycle int
	// Quotient bit shifted into y0 by this step, -1 if none.
	QBit int
	// Only valid on the final step.
	Quotient, Remainder int
}

var _ bitstep.Stepper = Step{}

type trace struct {
	steps []Step
	regs  Registers
	cycle int
}

func (t *trace) push(title, desc, tag string, qbit int) {
	if t.cycle > 0 {
		title = fmt.Sprintf("Cycle %d: %s", t.cycle, title)
	}
	s := Step{
		Info: bitstep.Info{
			Title:  title,
			Desc:   desc,
			Detail: t.regs.String(),
		},
		Regs:  t.regs,
		Cycle: t.cycle,
		QBit:  qbit,
	}
	if tag != "" {
		s.Active = bitstep.Active(tag)
	}
	t.steps = append(t.steps, s)
}

// shift shifts c|x|y left: c takes the MSB of x, x takes the MSB of y and y
// gets a 0 in its LSB.
//
func (t *trace) shift() {
	r := &t.regs
	n := uint(r.Width)
	msbY := r.Y >> (n - 1) & 1
	r.C = uint8(r.X >> (n - 1) & 1)
	r.X = (r.X<<1 | msbY) & bitstep.Mask(r.Width)
	r.Y = r.Y << 1 & bitstep.Mask(r.Width)
}

func errorStep(err error) []Step {
	return []Step{{Info: bitstep.ErrorInfo("Error", err), QBit: -1}}
}

// Divide returns the trace of the division of dividend by divisor on width
// bits registers using method m.
//
// The operands are loaded into width bits registers: only their low width
// bits are used. width must be in [MinWidth, MaxWidth]. A divisor that is 0
// once loaded or an invalid width yields a single error step (see
// bitstep.ErrDivideByZero and bitstep.ErrWidth).
//
// Steps are tagged with the active operation: "shift", "sub", "check-neg",
// "restore", "check-pos" for the restoring method, "shift", "calc", "q-set",
// "correction-done" for the non-restoring one, and "finish" on the final
// step.
//
func Divide(dividend, divisor, width int, m Method) []Step {
	if err := (Config{Width: width, Method: m}).Validate(); err != nil {
		return errorStep(err)
	}
	if divisor == 0 {
		return errorStep(errors.Wrapf(bitstep.ErrDivideByZero, "%d / 0", dividend))
	}
	y, z := bitstep.Wrap(dividend, width), bitstep.Wrap(divisor, width)
	if z == 0 {
		return errorStep(errors.Wrapf(bitstep.ErrDivideByZero, "divisor %d is 0 on %d bits", divisor, width))
	}

	t := &trace{regs: Registers{Width: width, Y: y, Z: z}}
	desc := "Initialization: dividend in y, divisor in z, x = 0."
	if y != dividend || z != divisor {
		desc += fmt.Sprintf(" Operands truncated to %d bits: y = %d, z = %d.", width, y, z)
	}
	t.push("Start", desc, "", -1)

	if m == Restoring {
		restoring(t)
	} else {
		nonRestoring(t)
	}

	t.cycle = 0
	t.push("Done", fmt.Sprintf("Quotient (y): %d, remainder (x): %d", t.regs.Y, t.regs.X), "finish", -1)
	last := &t.steps[len(t.steps)-1]
	last.Final = true
	last.Quotient = t.regs.Y
	last.Remainder = t.regs.X
	return t.steps
}

func restoring(t *trace) {
	r := &t.regs
	for t.cycle = 1; t.cycle <= r.Width; t.cycle++ {
		t.shift()
		t.push("Shift", "Shift c|x|y one bit left.", "shift", -1)

		saved := *r
		diff := r.CX() - r.Z
		sign := "positive"
		if diff < 0 {
			sign = "negative"
		}
		r.setAcc(diff)
		t.push("Subtract", fmt.Sprintf("c|x = c|x - z = %d - %d = %d (%s)", saved.CX(), r.Z, diff, sign), "sub", -1)

		if r.C == 1 {
			t.push("Set bit", "c=1 (negative): y0 = 0.", "check-neg", 0)
			r.X, r.C = saved.X, saved.C
			t.push("Restore", "Restore c|x to its value before the subtraction.", "restore", -1)
		} else {
			r.Y |= 1
			t.push("Set bit", "c=0 (positive): y0 = 1. No restore.", "check-pos", 1)
		}
	}
}

func nonRestoring(t *trace) {
	r := &t.regs
	for t.cycle = 1; t.cycle <= r.Width; t.cycle++ {
		neg := r.Acc() < 0
		msbY := r.Y >> uint(r.Width-1) & 1
		r.setAcc(r.Acc()<<1 | msbY)
		r.Y = r.Y << 1 & bitstep.Mask(r.Width)
		t.push("Shift", "Shift c|x|y one bit left.", "shift", -1)

		acc := r.Acc()
		var desc string
		if neg {
			r.setAcc(acc + r.Z)
			desc = fmt.Sprintf("c|x was negative: add z. %d + %d = %d", acc, r.Z, r.Acc())
		} else {
			r.setAcc(acc - r.Z)
			desc = fmt.Sprintf("c|x was positive: subtract z. %d - %d = %d", acc, r.Z, r.Acc())
		}
		t.push("Calc", desc, "calc", -1)

		if r.Acc() >= 0 {
			r.Y |= 1
			t.push("Set bit", "c|x positive: y0 = 1.", "q-set", 1)
		} else {
			t.push("Set bit", "c|x negative: y0 = 0.", "q-set", 0)
		}
	}

	t.cycle = 0
	if acc := r.Acc(); acc < 0 {
		r.setAcc(acc + r.Z)
		t.push("Correction", fmt.Sprintf("Final remainder negative: x = x + z = %d + %d = %d", acc, r.Z, r.Acc()), "correction-done", -1)
	}
}
