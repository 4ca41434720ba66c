// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hack

import (
	"fmt"
	"strings"
)

// InstrKind is the kind of an instruction.
//
type InstrKind int

// Instruction kinds.
//
const (
	AInstr InstrKind = iota // @value
	CInstr                  // dest=comp;jump
)

// Comp is a computation of the ALU.
//
type Comp int

// Supported computations. CompUnknown is any expression not in this list; it
// evaluates to 0.
//
const (
	CompUnknown Comp = iota
	CompZero
	CompOne
	CompMinusOne
	CompD
	CompA
	CompM
	CompNotD
	CompNotA
	CompNotM
	CompNegD
	CompNegA
	CompNegM
	CompDPlusOne
	CompAPlusOne
	CompMPlusOne
	CompDMinusOne
	CompAMinusOne
	CompMMinusOne
	CompDPlusA
	CompDPlusM
	CompDMinusA
	CompDMinusM
	CompAMinusD
	CompMMinusD
	CompDAndA
	CompDAndM
	CompDOrA
	CompDOrM
	compCount
)

var compNames = [...]string{
	CompUnknown:   "?",
	CompZero:      "0",
	CompOne:       "1",
	CompMinusOne:  "-1",
	CompD:         "D",
	CompA:         "A",
	CompM:         "M",
	CompNotD:      "!D",
	CompNotA:      "!A",
	CompNotM:      "!M",
	CompNegD:      "-D",
	CompNegA:      "-A",
	CompNegM:      "-M",
	CompDPlusOne:  "D+1",
	CompAPlusOne:  "A+1",
	CompMPlusOne:  "M+1",
	CompDMinusOne: "D-1",
	CompAMinusOne: "A-1",
	CompMMinusOne: "M-1",
	CompDPlusA:    "D+A",
	CompDPlusM:    "D+M",
	CompDMinusA:   "D-A",
	CompDMinusM:   "D-M",
	CompAMinusD:   "A-D",
	CompMMinusD:   "M-D",
	CompDAndA:     "D&A",
	CompDAndM:     "D&M",
	CompDOrA:      "D|A",
	CompDOrM:      "D|M",
}

var compByName = func() map[string]Comp {
	m := make(map[string]Comp, compCount)
	for c := CompZero; c < compCount; c++ {
		m[compNames[c]] = c
	}
	return m
}()

// ParseComp returns the computation named s, or CompUnknown.
//
func ParseComp(s string) Comp {
	return compByName[s]
}

func (c Comp) String() string {
	if c < 0 || c >= compCount {
		return compNames[CompUnknown]
	}
	return compNames[c]
}

// UsesM returns true if c reads RAM[A].
//
func (c Comp) UsesM() bool {
	return strings.IndexByte(c.String(), 'M') >= 0
}

// Eval returns the result of c given the values of A, D and M = RAM[A].
// Arithmetic wraps around at 16 bits.
//
func (c Comp) Eval(a, d, m uint16) uint16 {
	switch c {
	case CompZero:
		return 0
	case CompOne:
		return 1
	case CompMinusOne:
		return 0xFFFF
	case CompD:
		return d
	case CompA:
		return a
	case CompM:
		return m
	case CompNotD:
		return ^d
	case CompNotA:
		return ^a
	case CompNotM:
		return ^m
	case CompNegD:
		return -d
	case CompNegA:
		return -a
	case CompNegM:
		return -m
	case CompDPlusOne:
		return d + 1
	case CompAPlusOne:
		return a + 1
	case CompMPlusOne:
		return m + 1
	case CompDMinusOne:
		return d - 1
	case CompAMinusOne:
		return a - 1
	case CompMMinusOne:
		return m - 1
	case CompDPlusA:
		return d + a
	case CompDPlusM:
		return d + m
	case CompDMinusA:
		return d - a
	case CompDMinusM:
		return d - m
	case CompAMinusD:
		return a - d
	case CompMMinusD:
		return m - d
	case CompDAndA:
		return d & a
	case CompDAndM:
		return d & m
	case CompDOrA:
		return d | a
	case CompDOrM:
		return d | m
	}
	return 0
}

// Jump is a jump condition.
//
type Jump int

// Jump conditions. JumpUnknown never jumps.
//
const (
	JumpNone Jump = iota
	JGT
	JEQ
	JGE
	JLT
	JLE
	JNE
	JMP
	JumpUnknown
)

var jumpNames = [...]string{
	JumpNone:    "",
	JGT:         "JGT",
	JEQ:         "JEQ",
	JGE:         "JGE",
	JLT:         "JLT",
	JLE:         "JLE",
	JNE:         "JNE",
	JMP:         "JMP",
	JumpUnknown: "?",
}

var jumpConds = [...]string{
	JGT: "> 0",
	JEQ: "= 0",
	JGE: ">= 0",
	JLT: "< 0",
	JLE: "<= 0",
	JNE: "!= 0",
	JMP: "always",
}

// ParseJump returns the jump condition named s. An empty string is JumpNone,
// an invalid name JumpUnknown.
//
func ParseJump(s string) Jump {
	if s == "" {
		return JumpNone
	}
	for j := JGT; j <= JMP; j++ {
		if jumpNames[j] == s {
			return j
		}
	}
	return JumpUnknown
}

func (j Jump) String() string {
	if j < 0 || j > JumpUnknown {
		return jumpNames[JumpUnknown]
	}
	return jumpNames[j]
}

// Cond returns the condition tested by j, like "> 0".
//
func (j Jump) Cond() string {
	if j < JGT || j > JMP {
		return ""
	}
	return jumpConds[j]
}

// Taken returns true if the jump is taken for the ALU output v.
//
func (j Jump) Taken(v int16) bool {
	switch j {
	case JGT:
		return v > 0
	case JEQ:
		return v == 0
	case JGE:
		return v >= 0
	case JLT:
		return v < 0
	case JLE:
		return v <= 0
	case JNE:
		return v != 0
	case JMP:
		return true
	}
	return false
}

// Dest is a set of destination registers.
//
type Dest uint8

// Destination registers.
//
const (
	DestA Dest = 1 << iota
	DestD
	DestM
)

// ParseDest returns the registers named in s. Other characters are ignored.
//
func ParseDest(s string) Dest {
	var d Dest
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A':
			d |= DestA
		case 'D':
			d |= DestD
		case 'M':
			d |= DestM
		}
	}
	return d
}

// Has returns true if all registers in r are in d.
//
func (d Dest) Has(r Dest) bool { return d&r == r && r != 0 }

// Instruction is a parsed instruction.
//
type Instruction struct {
	Kind InstrKind
	// A-instruction
	Value  uint16
	Symbol string // symbol name, empty for a literal
	// C-instruction. The text fields hold the raw source text.
	Dest     Dest
	DestText string
	Comp     Comp
	CompText string
	Jump     Jump
	JumpText string

	Line int    // source line, starting at 1
	Raw  string // source text, comment and spaces stripped
}

func (in Instruction) String() string {
	if in.Kind == AInstr {
		if in.Symbol != "" {
			return fmt.Sprintf("@%s (%d)", in.Symbol, in.Value)
		}
		return fmt.Sprintf("@%d", in.Value)
	}
	return in.Raw
}
