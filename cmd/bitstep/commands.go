// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/db47h/bitstep"
	"github.com/db47h/bitstep/adder"
	"github.com/db47h/bitstep/divider"
	"github.com/db47h/bitstep/hack"
	"github.com/db47h/bitstep/ieee754"
	"github.com/db47h/bitstep/normalform"
	"github.com/db47h/bitstep/twoscomp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s\n", commands[name].usage)
		fs.PrintDefaults()
	}
	return fs
}

// ints converts args to integers.
//
func ints(args []string) ([]int, error) {
	vs := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i+1)
		}
		vs[i] = v
	}
	return vs, nil
}

func runAdder(p *printer, args []string) error {
	fs := newFlagSet("adder")
	kind := fs.String("kind", "ripple", "adder `design`: ripple, bypass, select, prefix or wallace")
	cin := fs.Uint("cin", 0, "carry in")
	if err := fs.Parse(args); err != nil {
		return err
	}
	k, err := adder.ParseKind(*kind)
	if err != nil {
		return err
	}
	op := adder.Defaults[k]
	if fs.NArg() > 0 {
		vs, err := ints(fs.Args())
		if err != nil {
			return err
		}
		switch {
		case k == adder.Wallace && len(vs) == 3:
			op = adder.Operands{A: vs[0], B: vs[1], C: vs[2]}
		case k != adder.Wallace && len(vs) == 2:
			op = adder.Operands{A: vs[0], B: vs[1]}
		default:
			return errors.Errorf("wrong number of operands for %s adder", k)
		}
	}
	op.Cin = uint8(*cin & 1)
	logrus.WithFields(logrus.Fields{"kind": k, "a": op.A, "b": op.B, "c": op.C, "cin": op.Cin}).Debug("adder trace")
	return steps(p, adder.Generate(k, op))
}

func runDivide(p *printer, args []string) error {
	fs := newFlagSet("divide")
	width := fs.Int("width", 4, "register `width` in bits")
	method := fs.String("method", "restoring", "division `method`: restoring or non-restoring")
	if err := fs.Parse(args); err != nil {
		return err
	}
	m, err := divider.ParseMethod(*method)
	if err != nil {
		return err
	}
	cfg := divider.Config{Width: *width, Method: m}
	if err := cfg.Validate(); err != nil {
		return err
	}
	vs, err := ints(fs.Args())
	if err != nil {
		return err
	}
	if len(vs) != 2 {
		return errors.New("expected dividend and divisor")
	}
	ss := cfg.Trace(vs[0], vs[1])
	if err := steps(p, ss); err != nil {
		return err
	}
	if last, ok := bitstep.Final(ss); ok {
		p.printf("%d / %d = %d remainder %d\n", vs[0], vs[1], last.Quotient, last.Remainder)
	}
	return nil
}

func runTwos(p *printer, args []string) error {
	fs := newFlagSet("twos")
	width := fs.Int("width", 8, "representation `width` in bits")
	table := fs.Bool("table", false, "print the value table instead")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *table {
		rows := twoscomp.Table(*width)
		if rows == nil {
			return errors.Errorf("no table for width %d", *width)
		}
		p.value(rows)
		for _, r := range rows {
			p.printf("%s %5d %5d\n", r.Binary, r.Unsigned, r.Signed)
		}
		return nil
	}
	vs, err := ints(fs.Args())
	if err != nil {
		return err
	}
	switch len(vs) {
	case 1:
		return steps(p, twoscomp.ConversionSteps(vs[0], *width))
	case 2:
		return steps(p, twoscomp.AdditionSteps(vs[0], vs[1], *width))
	}
	return errors.New("expected one value to convert or two values to add")
}

func runNormal(p *printer, args []string) error {
	fs := newFlagSet("normal")
	vars := fs.Int("vars", 2, "number of input variables")
	knf := fs.Bool("knf", false, "derive the conjunctive normal form")
	if err := fs.Parse(args); err != nil {
		return err
	}
	t, err := normalform.NewTable(*vars)
	if err != nil {
		return err
	}
	if fs.NArg() != 1 || len(fs.Arg(0)) != len(t.Rows) {
		return errors.Errorf("expected %d output bits", len(t.Rows))
	}
	outs := make([]uint8, len(t.Rows))
	for i, c := range fs.Arg(0) {
		switch c {
		case '0':
		case '1':
			outs[i] = 1
		default:
			return errors.Errorf("invalid output bit %q", c)
		}
	}
	t.SetOutputs(outs...)
	if *knf {
		return steps(p, normalform.KNFSteps(t))
	}
	return steps(p, normalform.DNFSteps(t))
}

func runFloat(p *printer, args []string) error {
	fs := newFlagSet("float")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected a single number")
	}
	r := ieee754.Encode(fs.Arg(0))
	if r.Err != nil {
		return r.Err
	}
	if err := steps(p, r.Steps); err != nil {
		return err
	}
	p.printf("%d %s %s = %s (%g)\n", r.Sign, r.Exponent, r.Mantissa, r.Hex, r.Value())
	return nil
}

func runHack(p *printer, args []string) error {
	fs := newFlagSet("hack")
	example := fs.String("example", "", "run the example program `name`")
	limit := fs.Int("limit", hack.DefaultStepLimit, "maximum number of instructions to execute")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg := hack.SessionConfig{StepLimit: *limit}

	var s *hack.Session
	switch {
	case *example != "":
		ex, ok := hack.FindExample(*example)
		if !ok {
			var names []string
			for _, e := range hack.Examples {
				names = append(names, strconv.Quote(e.Name))
			}
			return errors.Errorf("unknown example %q, available: %s", *example, strings.Join(names, ", "))
		}
		var err error
		if s, err = ex.Session(cfg); err != nil {
			return err
		}
	case fs.NArg() == 1:
		src, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			return errors.Wrap(err, "read program")
		}
		prog, err := hack.Parse(string(src))
		if err != nil {
			return errors.Wrap(err, fs.Arg(0))
		}
		s = hack.NewSession(prog, nil, cfg)
	default:
		return errors.New("expected -example or a program file")
	}

	reason := s.RunToHalt()
	h := s.History()
	prog := s.Program()
	for i := 0; i+1 < len(h); i++ {
		in := prog.Instructions[h[i].PC]
		p.info(i, hack.ExplainStep(in, h[i]))
		var cs []string
		for _, c := range hack.Changes(h[i], h[i+1]) {
			cs = append(cs, c.String())
		}
		if len(cs) > 0 {
			p.printf("    changes: %s\n", strings.Join(cs, ", "))
		}
	}
	p.value(s.State())
	p.printf("%s after %d instructions\n", reason, len(h)-1)
	return nil
}
