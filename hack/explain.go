// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/db47h/bitstep"
)

func ram(a uint16) string { return fmt.Sprintf("RAM[%d]", a) }

// describeComp describes the computation of in with the operand values of s.
//
func describeComp(in Instruction, s State) string {
	c := in.Comp
	if c == CompUnknown {
		return in.CompText
	}
	name := strings.ReplaceAll(c.String(), "M", ram(s.A))
	switch c {
	case CompZero, CompOne, CompMinusOne:
		return c.String()
	case CompNotD, CompNotA, CompNotM, CompNegD, CompNegA, CompNegM:
		return fmt.Sprintf("%s (=%d)", name, c.Eval(s.A, s.D, s.M()))
	}
	r := strings.NewReplacer(
		"D", strconv.Itoa(int(s.D)),
		"A", strconv.Itoa(int(s.A)),
		"M", strconv.Itoa(int(s.M())))
	return fmt.Sprintf("%s (=%s)", name, r.Replace(c.String()))
}

func describeJump(j Jump, text string) string {
	switch j {
	case JumpNone:
		return ""
	case JumpUnknown:
		return text
	case JMP:
		return "jump always"
	}
	return "jump if " + j.Cond()
}

func destNames(d Dest, s State) string {
	var ds []string
	if d.Has(DestA) {
		ds = append(ds, "A")
	}
	if d.Has(DestD) {
		ds = append(ds, "D")
	}
	if d.Has(DestM) {
		ds = append(ds, ram(s.A))
	}
	return strings.Join(ds, ", ")
}

// Explain returns a one line description of what in does in state s.
//
func Explain(in Instruction, s State) string {
	if in.Kind == AInstr {
		if in.Symbol != "" {
			return fmt.Sprintf("A = %d (%s)", in.Value, in.Symbol)
		}
		return fmt.Sprintf("A = %d", in.Value)
	}

	comp := describeComp(in, s)
	var parts []string
	if in.Dest != 0 {
		parts = append(parts, destNames(in.Dest, s)+" = "+comp)
	}
	if in.Jump != JumpNone {
		j := describeJump(in.Jump, in.JumpText)
		if in.Dest != 0 {
			parts = append(parts, "then "+j)
		} else {
			parts = append(parts, comp+"; "+j)
		}
	}
	if len(parts) == 0 {
		return in.CompText
	}
	return strings.Join(parts, ", ")
}

func yesNo(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}

// ExplainStep returns a structured explanation of in executed in state s,
// classified by what the instruction does: memory read or write, pointer
// dereference, computation, conditional or unconditional jump.
//
func ExplainStep(in Instruction, s State) bitstep.Info {
	if in.Kind == AInstr {
		return bitstep.Info{
			Title:  "A-instruction",
			Desc:   "Load a value into the A register.",
			Detail: Explain(in, s),
		}
	}

	m := s.M()
	v := int16(in.Comp.Eval(s.A, s.D, m))
	comp := in.CompText
	d := in.Dest
	switch {
	case d == DestM:
		return bitstep.Info{
			Title:  "Memory write",
			Desc:   fmt.Sprintf("Store a value in %s.", ram(s.A)),
			Detail: fmt.Sprintf("%s = %s = %d", ram(s.A), comp, v),
		}
	case d.Has(DestD) && in.Comp == CompM:
		return bitstep.Info{
			Title:  "Memory read",
			Desc:   fmt.Sprintf("Load %s into D.", ram(s.A)),
			Detail: fmt.Sprintf("D = %s = %d", ram(s.A), m),
		}
	case d.Has(DestA) && in.Comp == CompM:
		return bitstep.Info{
			Title:  "Follow pointer",
			Desc:   fmt.Sprintf("Load %s as the new address.", ram(s.A)),
			Detail: fmt.Sprintf("A = %s = %d", ram(s.A), m),
		}
	case d.Has(DestD) && !in.Comp.UsesM():
		return bitstep.Info{
			Title:  "Computation",
			Desc:   fmt.Sprintf("Compute %s and store it in D.", comp),
			Detail: fmt.Sprintf("D = %s = %d", comp, v),
		}
	case in.Jump != JumpNone && d == 0:
		if in.Jump == JMP {
			return bitstep.Info{
				Title:  "Unconditional jump",
				Desc:   "Jump to the address in A.",
				Detail: fmt.Sprintf("Jump to %d", s.A),
			}
		}
		taken := in.Jump.Taken(v)
		return bitstep.Info{
			Title: "Conditional jump",
			Desc:  fmt.Sprintf("Jump if %s %s", comp, in.Jump.Cond()),
			Detail: fmt.Sprintf("%s = %d %s? %s", comp, v, in.Jump.Cond(),
				yesNo(taken, fmt.Sprintf("Yes → jump to %d", s.A), "No → continue")),
		}
	case in.Jump != JumpNone:
		taken := in.Jump.Taken(v)
		return bitstep.Info{
			Title: "Computation with jump",
			Desc:  fmt.Sprintf("%s = %s, then %s", in.DestText, comp, describeJump(in.Jump, in.JumpText)),
			Detail: fmt.Sprintf("%s = %d, %d %s? %s", in.DestText, v, v, in.Jump.Cond(),
				yesNo(taken, "Yes → jump", "No → continue")),
		}
	case d != 0:
		return bitstep.Info{
			Title:  "C-instruction",
			Desc:   fmt.Sprintf("%s = %s", in.DestText, comp),
			Detail: fmt.Sprintf("%s = %d", in.DestText, v),
		}
	}
	return bitstep.Info{
		Title: "Instruction",
		Desc:  in.Raw,
	}
}
