// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hack

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

// VarBase is the address of the first variable.
//
const VarBase = 16

var predefined = map[string]uint16{
	"SP":     0,
	"LCL":    1,
	"ARG":    2,
	"THIS":   3,
	"THAT":   4,
	"SCREEN": 16384,
	"KBD":    24576,
}

func init() {
	for i := 0; i < 16; i++ {
		predefined["R"+strconv.Itoa(i)] = uint16(i)
	}
}

// Predefined returns a copy of the predefined symbol table.
//
func Predefined() map[string]uint16 {
	return maps.Clone(predefined)
}

// ParseError is returned by Parse on malformed source.
//
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %s", e.Line, e.Text, e.Msg)
}

func parseError(line int, text string, format string, args ...interface{}) error {
	return &ParseError{Line: line, Text: text, Msg: fmt.Sprintf(format, args...)}
}

// Program is a parsed program.
//
type Program struct {
	Instructions []Instruction
	// Symbols maps symbol names to addresses: predefined symbols, labels
	// (ROM addresses) and variables (RAM addresses).
	Symbols map[string]uint16
}

// Len returns the number of instructions in p.
//
func (p *Program) Len() int { return len(p.Instructions) }

type srcLine struct {
	text string
	line int
}

// cleanLine strips comments and surrounding spaces.
//
func cleanLine(l string) string {
	if i := strings.Index(l, "//"); i >= 0 {
		l = l[:i]
	}
	return strings.TrimSpace(l)
}

func isSymbolChar(c byte, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c == '_', c == '.', c == '$', c == ':':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}

func validSymbol(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isSymbolChar(s[i], i == 0) {
			return false
		}
	}
	return true
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Parse parses Hack assembly source.
//
// The first pass strips comments and blank lines and binds every label
// declaration (NAME) to the address of the instruction that follows it. The
// second pass decodes instructions: @symbol resolves literals, known symbols
// and labels, and allocates unknown symbols as variables from address
// VarBase up. Other lines are C-instructions split as dest=comp;jump.
//
// Malformed comp and jump fields are not errors: they are decoded as
// CompUnknown and JumpUnknown with their text preserved. Malformed labels,
// duplicate labels and malformed A-instructions return a *ParseError.
//
func Parse(src string) (*Program, error) {
	symbols := Predefined()
	labels := make(map[string]bool)
	var lines []srcLine

	for i, l := range strings.Split(src, "\n") {
		l = cleanLine(l)
		if l == "" {
			continue
		}
		if l[0] != '(' {
			lines = append(lines, srcLine{l, i + 1})
			continue
		}
		if !strings.HasSuffix(l, ")") {
			return nil, parseError(i+1, l, "missing ')' in label declaration")
		}
		name := l[1 : len(l)-1]
		if !validSymbol(name) {
			return nil, parseError(i+1, l, "invalid label name %q", name)
		}
		if _, ok := symbols[name]; ok {
			if labels[name] {
				return nil, parseError(i+1, l, "duplicate label %q", name)
			}
			return nil, parseError(i+1, l, "label %q redefines a predefined symbol", name)
		}
		symbols[name] = uint16(len(lines))
		labels[name] = true
	}

	p := &Program{Instructions: make([]Instruction, 0, len(lines)), Symbols: symbols}
	next := uint16(VarBase)
	for _, l := range lines {
		in := Instruction{Line: l.line, Raw: l.text}
		if l.text[0] == '@' {
			sym := l.text[1:]
			in.Kind = AInstr
			switch {
			case sym == "":
				return nil, parseError(l.line, l.text, "missing value or symbol after '@'")
			case isNumber(sym):
				v, err := strconv.ParseUint(sym, 10, 16)
				if err != nil {
					return nil, parseError(l.line, l.text, "value %s does not fit in 16 bits", sym)
				}
				in.Value = uint16(v)
			case !validSymbol(sym):
				return nil, parseError(l.line, l.text, "invalid symbol %q", sym)
			default:
				in.Symbol = sym
				v, ok := symbols[sym]
				if !ok {
					v = next
					symbols[sym] = v
					next++
				}
				in.Value = v
			}
		} else {
			in.Kind = CInstr
			rest := l.text
			if i := strings.IndexByte(rest, '='); i >= 0 {
				in.DestText = rest[:i]
				in.Dest = ParseDest(in.DestText)
				rest = rest[i+1:]
			}
			if i := strings.IndexByte(rest, ';'); i >= 0 {
				in.JumpText = rest[i+1:]
				rest = rest[:i]
			}
			in.CompText = rest
			in.Comp = ParseComp(rest)
			in.Jump = ParseJump(in.JumpText)
		}
		p.Instructions = append(p.Instructions, in)
	}
	return p, nil
}
