// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package normalform

import (
	"fmt"
	"strings"

	"github.com/db47h/bitstep"
	"golang.org/x/exp/slices"
)

// Step phases.
//
const (
	PhaseOverview = "overview"
	PhaseTerm     = "term"
	PhaseCombine  = "combine"
)

// Step is a step of a normal form derivation.
//
type Step struct {
	bitstep.Info
	Phase string
	// Highlight lists the indices of the qualifying rows.
	Highlight []int
	// Row is the index of the row whose term is built, -1 if none.
	Row int
	// Term is only valid in the PhaseTerm phase.
	Term Term
	// Formula is only valid on the final step.
	Formula Formula
}

var _ bitstep.Stepper = Step{}

// DNFSteps returns the derivation trace of the DNF of t: an overview of the
// rows with output 1, one step per minterm and a final step combining them
// with OR.
//
func DNFSteps(t *Table) []Step {
	return derive(t, DNF(t))
}

// KNFSteps returns the derivation trace of the KNF of t: an overview of the
// rows with output 0, one step per maxterm and a final step combining them
// with AND.
//
func KNFSteps(t *Table) []Step {
	return derive(t, KNF(t))
}

func derive(t *Table, f Formula) []Step {
	out, name, op := uint8(1), "minterm", "OR"
	if f.Kind == Max {
		out, name, op = 0, "maxterm", "AND"
	}
	rows := make([]int, len(f.Terms))
	labels := make([]string, len(f.Terms))
	for i, term := range f.Terms {
		rows[i] = term.Row
		labels[i] = term.Label()
	}

	var steps []Step
	overview := Step{
		Info: bitstep.Info{
			Title:  fmt.Sprintf("Find the rows with f=%d", out),
			Active: bitstep.Active(PhaseOverview),
		},
		Phase:     PhaseOverview,
		Highlight: slices.Clone(rows),
		Row:       -1,
	}
	if len(rows) == 0 {
		overview.Desc = fmt.Sprintf("No row has output %d. The function is constant %s.", out, f.constant())
	} else {
		overview.Desc = fmt.Sprintf("%d row(s) with output %d: %s", len(rows), out, strings.Join(labels, ", "))
	}
	steps = append(steps, overview)

	for _, term := range f.Terms {
		expl := make([]string, len(term.Literals))
		for i := range term.Literals {
			expl[i] = term.Literals[i].Explanation
		}
		desc := fmt.Sprintf("Row %d: combine the variables so that the term is 1 for this row only.", term.Row)
		if f.Kind == Max {
			desc = fmt.Sprintf("Row %d: combine the inverted variables so that the term is 0 for this row only.", term.Row)
		}
		steps = append(steps, Step{
			Info: bitstep.Info{
				Title:  fmt.Sprintf("Build %s %s", name, term.Label()),
				Desc:   desc,
				Detail: fmt.Sprintf("%s = %s (%s)", term.Label(), term, strings.Join(expl, ", ")),
				Active: bitstep.Active(PhaseTerm),
			},
			Phase:     PhaseTerm,
			Highlight: slices.Clone(rows),
			Row:       term.Row,
			Term:      term.clone(),
		})
	}

	steps = append(steps, Step{
		Info: bitstep.Info{
			Title:  fmt.Sprintf("Combine the %ss with %s", name, op),
			Desc:   fmt.Sprintf("%s: %s", f.Kind, f.Labels()),
			Detail: f.String(),
			Active: bitstep.Active(PhaseCombine),
			Final:  true,
		},
		Phase:     PhaseCombine,
		Highlight: slices.Clone(rows),
		Row:       -1,
		Formula:   f.clone(),
	})
	return steps
}
