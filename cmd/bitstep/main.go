// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command bitstep prints the step by step traces of the bitstep packages.
//
// Usage:
//
//	bitstep [-v] [-dump] command [flags] [args]
//
// Commands:
//
//	adder   -kind ripple|bypass|select|prefix|wallace [-cin 0|1] [a b [c]]
//	divide  [-width n] [-method restoring|non-restoring] dividend divisor
//	twos    [-width n] [-table] [--] x [y]
//	normal  [-vars n] [-knf] outputs
//	float   number
//	hack    [-example name] [-limit n] [file]
//
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/db47h/bitstep"
	"github.com/k0kubun/pp/v3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

type command struct {
	usage string
	run   func(p *printer, args []string) error
}

var commands map[string]command

func init() {
	// set up in init: sub-command flag sets refer back to commands for
	// their usage line.
	commands = map[string]command{
		"adder":  {"adder [-kind k] [-cin 0|1] [a b [c]]", runAdder},
		"divide": {"divide [-width n] [-method m] dividend divisor", runDivide},
		"twos":   {"twos [-width n] [-table] [--] x [y]", runTwos},
		"normal": {"normal [-vars n] [-knf] outputs", runNormal},
		"float":  {"float number", runFloat},
		"hack":   {"hack [-example name] [-limit n] [file]", runHack},
	}
}

var commandOrder = []string{"adder", "divide", "twos", "normal", "float", "hack"}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-v] [-dump] command [flags] [args]\n\ncommands:\n", os.Args[0])
	for _, name := range commandOrder {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(os.Stderr, "\nflags:")
	flag.PrintDefaults()
}

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	dump := flag.Bool("dump", false, "pretty print complete step values")
	flag.Usage = usage
	flag.Parse()

	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		logrus.Errorf("unknown command %q", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	p := newPrinter(os.Stdout, *dump)
	if err := cmd.run(p, flag.Args()[1:]); err != nil {
		if errors.Cause(err) == flag.ErrHelp {
			os.Exit(2)
		}
		logrus.WithField("command", flag.Arg(0)).Error(err)
		os.Exit(1)
	}
}

// printer writes traces either as a plain listing or, in dump mode, as
// pretty printed values.
//
type printer struct {
	w    io.Writer
	dump *pp.PrettyPrinter
}

func newPrinter(w io.Writer, dump bool) *printer {
	p := &printer{w: w}
	if dump {
		p.dump = pp.New()
		p.dump.SetOutput(w)
		p.dump.SetColoringEnabled(isTerminal(w))
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

// value prints v only in dump mode.
//
func (p *printer) value(v interface{}) {
	if p.dump != nil {
		p.dump.Println(v)
	}
}

func (p *printer) info(i int, h bitstep.Info) {
	mark := ""
	if h.Final {
		mark = " (final)"
	}
	p.printf("%2d. %s%s\n", i+1, h.Title, mark)
	if h.Desc != "" {
		p.printf("    %s\n", h.Desc)
	}
	if h.Detail != "" {
		for _, l := range strings.Split(h.Detail, "\n") {
			p.printf("    | %s\n", l)
		}
	}
	if len(h.Active) > 0 {
		p.printf("    [%s]\n", strings.Join(h.Active, " "))
	}
}

// steps prints a trace. It returns the error of an invalid input trace.
//
func steps[S bitstep.Stepper](p *printer, ss []S) error {
	if err := bitstep.Failed(ss); err != nil {
		return err
	}
	for i, s := range ss {
		if p.dump != nil {
			p.printf("%2d. ", i+1)
			p.dump.Println(s)
			continue
		}
		p.info(i, s.Header())
	}
	return nil
}
