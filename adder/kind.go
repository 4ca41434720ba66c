// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package adder

import (
	"github.com/db47h/bitstep"
	"github.com/pkg/errors"
)

// Kind identifies an adder design.
//
type Kind int

// Adder designs.
//
const (
	Ripple Kind = iota
	Bypass
	Select
	Prefix
	Wallace
)

var kindNames = [...]string{
	Ripple:  "ripple",
	Bypass:  "bypass",
	Select:  "select",
	Prefix:  "prefix",
	Wallace: "wallace",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds lists all adder designs.
//
var Kinds = []Kind{Ripple, Bypass, Select, Prefix, Wallace}

// ParseKind returns the Kind named s.
//
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, errors.Errorf("unknown adder kind %q", s)
}

// Operands holds the inputs of an adder trace. C is only used by the carry
// save adder.
//
type Operands struct {
	A, B, C int
	Cin     uint8
}

// Defaults holds operands that show each design at its best.
//
var Defaults = map[Kind]Operands{
	Ripple:  {A: 7, B: 9},  // full carry chain
	Bypass:  {A: 7, B: 9},  // compare with ripple
	Select:  {A: 11, B: 6}, // shows the mux selection
	Prefix:  {A: 13, B: 7}, // mixed G/P patterns
	Wallace: {A: 7, B: 9, C: 5},
}

// Generate returns the trace of the adder of kind k. Unknown kinds fall back to
// the ripple carry adder.
//
func Generate(k Kind, op Operands) []Step {
	switch k {
	case Bypass:
		return CarryBypass(op.A, op.B, op.Cin)
	case Select:
		return CarrySelect(op.A, op.B, op.Cin)
	case Prefix:
		return ParallelPrefix(op.A, op.B, op.Cin)
	case Wallace:
		return CarrySave(op.A, op.B, op.C)
	default:
		return RippleCarry(op.A, op.B, op.Cin)
	}
}

var _ bitstep.Stepper = Step{}
