// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hack

import "github.com/pkg/errors"

// Example is a sample program with its initial RAM contents.
//
type Example struct {
	Name   string
	Source string
	RAM    map[uint16]uint16
}

// Session parses the example and returns a new session running it.
//
func (e Example) Session(cfg SessionConfig) (*Session, error) {
	p, err := Parse(e.Source)
	if err != nil {
		return nil, errors.Wrapf(err, "example %q", e.Name)
	}
	return NewSession(p, e.RAM, cfg), nil
}

// Examples lists the sample programs.
//
var Examples = []Example{
	{
		Name: "Pointer dereference",
		Source: `// RAM[1] = *RAM[0]
@R0
A=M     // A = RAM[0], follow the pointer
D=M     // D = RAM[RAM[0]]
@R1
M=D
`,
		RAM: map[uint16]uint16{0: 5, 5: 42},
	},
	{
		Name: "Addition",
		Source: `// RAM[2] = RAM[0] + RAM[1]
@R0
D=M
@R1
D=D+M
@R2
M=D
`,
		RAM: map[uint16]uint16{0: 10, 1: 25},
	},
	{
		Name: "Countdown",
		Source: `// Count RAM[0] down to 0
(LOOP)
@R0
D=M
@END
D;JEQ   // done if RAM[0] == 0
@R0
M=M-1
@LOOP
0;JMP
(END)
@END
0;JMP   // endless loop
`,
		RAM: map[uint16]uint16{0: 5},
	},
}

// FindExample returns the example with the given name.
//
func FindExample(name string) (Example, bool) {
	for _, e := range Examples {
		if e.Name == name {
			return e, true
		}
	}
	return Example{}, false
}
