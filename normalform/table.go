// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package normalform derives the disjunctive (DNF) and conjunctive (KNF)
// normal forms of a boolean function given by its truth table.
//
package normalform

import (
	"strconv"
	"strings"

	"github.com/db47h/bitstep"
	"github.com/pkg/errors"
)

// Supported variable counts.
//
const (
	MinVars = 2
	MaxVars = 3
)

// VarNames returns the names of k variables, highest index first: x₂, x₁, x₀
// for k = 3.
//
func VarNames(k int) []string {
	names := make([]string, k)
	for i := range names {
		var sb strings.Builder
		sb.WriteByte('x')
		for _, d := range strconv.Itoa(k - 1 - i) {
			sb.WriteRune('₀' + d - '0')
		}
		names[i] = sb.String()
	}
	return names
}

// Row is a truth table row.
//
type Row struct {
	Index int
	// Vars holds the variable values, highest index first.
	Vars   bitstep.Bits
	Output uint8
}

// Table is the truth table of a boolean function of 2 or 3 variables.
//
type Table struct {
	Names []string
	Rows  []Row
}

// NewTable returns a truth table of k variables with all outputs set to 0.
//
func NewTable(k int) (*Table, error) {
	if k < MinVars || k > MaxVars {
		return nil, errors.Wrapf(bitstep.ErrWidth, "%d variables not in [%d, %d]", k, MinVars, MaxVars)
	}
	t := &Table{Names: VarNames(k), Rows: make([]Row, 1<<uint(k))}
	for i := range t.Rows {
		t.Rows[i] = Row{Index: i, Vars: bitstep.BitsOf(i, k)}
	}
	return t, nil
}

// Vars returns the number of variables.
//
func (t *Table) Vars() int { return len(t.Names) }

// Set sets the output of row i.
//
func (t *Table) Set(i int, out uint8) {
	t.Rows[i].Output = out & 1
}

// SetOutputs sets all outputs at once, row 0 first. Extra values are
// ignored.
//
func (t *Table) SetOutputs(outs ...uint8) {
	for i := 0; i < len(outs) && i < len(t.Rows); i++ {
		t.Set(i, outs[i])
	}
}

// Outputs returns the output column.
//
func (t *Table) Outputs() []uint8 {
	outs := make([]uint8, len(t.Rows))
	for i := range t.Rows {
		outs[i] = t.Rows[i].Output
	}
	return outs
}

// rows returns the rows whose output is out.
//
func (t *Table) rows(out uint8) []Row {
	var rs []Row
	for _, r := range t.Rows {
		if r.Output == out {
			rs = append(rs, r)
		}
	}
	return rs
}
