// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hack

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var log logrus.FieldLogger = logrus.StandardLogger()

// SetLogger sets the logger used to report unknown computations and session
// events. The default is the logrus standard logger.
//
func SetLogger(l logrus.FieldLogger) {
	log = l
}

// State is the machine state. RAM cells not present in the map hold 0.
//
type State struct {
	A, D uint16
	PC   int
	RAM  map[uint16]uint16
}

// NewState returns a reset machine state with a copy of ram as initial
// memory contents.
//
func NewState(ram map[uint16]uint16) State {
	s := State{RAM: maps.Clone(ram)}
	if s.RAM == nil {
		s.RAM = make(map[uint16]uint16)
	}
	return s
}

// Clone returns a deep copy of s.
//
func (s State) Clone() State {
	s.RAM = maps.Clone(s.RAM)
	if s.RAM == nil {
		s.RAM = make(map[uint16]uint16)
	}
	return s
}

// Read returns RAM[addr].
//
func (s State) Read(addr uint16) uint16 { return s.RAM[addr] }

// M returns RAM[A].
//
func (s State) M() uint16 { return s.RAM[s.A] }

// Step executes in on s and returns the new state. s is not modified.
//
// The ALU output is a 16 bits value. Jump conditions test it as a signed
// value and jump to the address in A, after the destinations are written.
// Unknown computations log a warning and evaluate to 0.
//
func Step(s State, in Instruction) State {
	n := s.Clone()
	if in.Kind == AInstr {
		n.A = in.Value
		n.PC++
		return n
	}

	if in.Comp == CompUnknown {
		log.WithFields(logrus.Fields{
			"comp": in.CompText,
			"line": in.Line,
			"pc":   s.PC,
		}).Warn("unknown computation, using 0")
	}
	v := in.Comp.Eval(s.A, s.D, s.M())
	if in.Dest.Has(DestA) {
		n.A = v
	}
	if in.Dest.Has(DestD) {
		n.D = v
	}
	if in.Dest.Has(DestM) {
		n.RAM[s.A] = v
	}
	if in.Jump.Taken(int16(v)) {
		n.PC = int(n.A)
	} else {
		n.PC++
	}
	return n
}

// IsHalted returns true if the program counter is past the last of n
// instructions.
//
func IsHalted(s State, n int) bool {
	return s.PC >= n
}

// Change is a register or memory cell modified by a step.
//
type Change struct {
	Register string
	From, To int
}

func (c Change) String() string {
	return fmt.Sprintf("%s: %d → %d", c.Register, c.From, c.To)
}

// Changes lists the differences between from and to: registers A, D and PC
// first, then RAM cells by increasing address.
//
func Changes(from, to State) []Change {
	var cs []Change
	if from.A != to.A {
		cs = append(cs, Change{"A", int(from.A), int(to.A)})
	}
	if from.D != to.D {
		cs = append(cs, Change{"D", int(from.D), int(to.D)})
	}
	if from.PC != to.PC {
		cs = append(cs, Change{"PC", from.PC, to.PC})
	}
	addrs := addresses(from.RAM)
	for a := range to.RAM {
		if _, ok := from.RAM[a]; !ok {
			addrs = append(addrs, a)
		}
	}
	slices.Sort(addrs)
	for _, a := range addrs {
		if o, n := from.RAM[a], to.RAM[a]; o != n {
			cs = append(cs, Change{"RAM[" + strconv.Itoa(int(a)) + "]", int(o), int(n)})
		}
	}
	return cs
}

// key returns a fingerprint of s.
//
func (s State) key() string {
	addrs := addresses(s.RAM)
	slices.Sort(addrs)
	b := make([]byte, 0, 16+8*len(addrs))
	b = strconv.AppendInt(b, int64(s.A), 16)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(s.D), 16)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(s.PC), 16)
	for _, a := range addrs {
		if v := s.RAM[a]; v != 0 {
			b = append(b, ';')
			b = strconv.AppendInt(b, int64(a), 16)
			b = append(b, '=')
			b = strconv.AppendInt(b, int64(v), 16)
		}
	}
	return string(b)
}

func addresses(ram map[uint16]uint16) []uint16 {
	addrs := make([]uint16, 0, len(ram))
	for a := range ram {
		addrs = append(addrs, a)
	}
	return addrs
}
