// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package normalform

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Kind distinguishes minterms from maxterms, and DNF from KNF.
//
type Kind int

// Term kinds.
//
const (
	Min Kind = iota // minterm, DNF
	Max             // maxterm, KNF
)

func (k Kind) String() string {
	if k == Max {
		return "KNF"
	}
	return "DNF"
}

// Literal is a possibly negated variable.
//
type Literal struct {
	Var     string
	Value   uint8 // value of the variable in the row the term was built from
	Negated bool
	// Why the literal is negated or not.
	Explanation string
}

func (l Literal) String() string {
	if l.Negated {
		return "¬" + l.Var
	}
	return l.Var
}

// eval returns the value of l given the value v of its variable.
func (l Literal) eval(v uint8) uint8 {
	if l.Negated {
		return v&1 ^ 1
	}
	return v & 1
}

// Term is a minterm (conjunction of literals) or a maxterm (disjunction of
// literals) built from a truth table row.
//
type Term struct {
	Kind     Kind
	Row      int
	Literals []Literal
}

func literals(r Row, names []string, negateOn uint8) []Literal {
	ls := make([]Literal, len(names))
	for i, name := range names {
		v := r.Vars[i]
		l := Literal{Var: name, Value: v, Negated: v == negateOn}
		if l.Negated {
			l.Explanation = fmt.Sprintf("%s=%d → negated to ¬%s", name, v, name)
		} else {
			l.Explanation = fmt.Sprintf("%s=%d → stays %s", name, v, name)
		}
		ls[i] = l
	}
	return ls
}

// Minterm returns the minterm of row r: variables that are 0 in r appear
// negated. The term is 1 for row r only.
//
func Minterm(r Row, names []string) Term {
	return Term{Kind: Min, Row: r.Index, Literals: literals(r, names, 0)}
}

// Maxterm returns the maxterm of row r: variables that are 1 in r appear
// negated. The term is 0 for row r only.
//
func Maxterm(r Row, names []string) Term {
	return Term{Kind: Max, Row: r.Index, Literals: literals(r, names, 1)}
}

func (t Term) clone() Term {
	t.Literals = slices.Clone(t.Literals)
	return t
}

// Label returns the symbolic name of t: m3 for minterm 3, M3 for maxterm 3.
//
func (t Term) Label() string {
	if t.Kind == Max {
		return fmt.Sprintf("M%d", t.Row)
	}
	return fmt.Sprintf("m%d", t.Row)
}

func (t Term) String() string {
	s := make([]string, len(t.Literals))
	for i := range t.Literals {
		s[i] = t.Literals[i].String()
	}
	if t.Kind == Max {
		return "(" + strings.Join(s, "+") + ")"
	}
	return strings.Join(s, "·")
}

// Eval evaluates t. vars holds the variable values in the same order as the
// literals.
//
func (t Term) Eval(vars []uint8) uint8 {
	if t.Kind == Max {
		var r uint8
		for i, l := range t.Literals {
			r |= l.eval(vars[i])
		}
		return r
	}
	r := uint8(1)
	for i, l := range t.Literals {
		r &= l.eval(vars[i])
	}
	return r
}

// Formula is a DNF (disjunction of minterms) or a KNF (conjunction of
// maxterms).
//
type Formula struct {
	Kind  Kind
	Terms []Term
}

func (f Formula) clone() Formula {
	if f.Terms == nil {
		return f
	}
	terms := make([]Term, len(f.Terms))
	for i := range f.Terms {
		terms[i] = f.Terms[i].clone()
	}
	f.Terms = terms
	return f
}

func (f Formula) join(strs []string) string {
	if f.Kind == Max {
		return strings.Join(strs, " · ")
	}
	return strings.Join(strs, " + ")
}

// String returns the expanded formula. An empty DNF is "0", an empty KNF is
// "1".
//
func (f Formula) String() string {
	if len(f.Terms) == 0 {
		return f.constant()
	}
	s := make([]string, len(f.Terms))
	for i := range f.Terms {
		s[i] = f.Terms[i].String()
	}
	return f.join(s)
}

// Labels returns the symbolic form of f, like "m3 + m5".
//
func (f Formula) Labels() string {
	if len(f.Terms) == 0 {
		return f.constant()
	}
	s := make([]string, len(f.Terms))
	for i := range f.Terms {
		s[i] = f.Terms[i].Label()
	}
	return f.join(s)
}

func (f Formula) constant() string {
	if f.Kind == Max {
		return "1"
	}
	return "0"
}

// Eval evaluates f for the given variable values.
//
func (f Formula) Eval(vars []uint8) uint8 {
	if f.Kind == Max {
		r := uint8(1)
		for _, t := range f.Terms {
			r &= t.Eval(vars)
		}
		return r
	}
	var r uint8
	for _, t := range f.Terms {
		r |= t.Eval(vars)
	}
	return r
}

// DNF returns the disjunctive normal form of t.
//
func DNF(t *Table) Formula {
	f := Formula{Kind: Min}
	for _, r := range t.rows(1) {
		f.Terms = append(f.Terms, Minterm(r, t.Names))
	}
	return f
}

// KNF returns the conjunctive normal form of t.
//
func KNF(t *Table) Formula {
	f := Formula{Kind: Max}
	for _, r := range t.rows(0) {
		f.Terms = append(f.Terms, Maxterm(r, t.Names))
	}
	return f
}
