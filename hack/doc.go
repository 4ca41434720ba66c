// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hack implements an assembler and an interpreter for the Hack
// assembly language of the nand2tetris course.
//
// Parse turns source text into a Program. Step executes a single
// instruction and returns a new State, leaving its input untouched, so a
// history of states is simply the list of states returned by Step. Session
// wraps this in a step / step back / run model:
//
//	p, err := hack.Parse(src)
//	if err != nil {
//		// handle error
//	}
//	s := hack.NewSession(p, map[uint16]uint16{0: 10, 1: 25}, hack.SessionConfig{})
//	s.RunToHalt()
//	fmt.Println(s.State().Read(2)) // 35
//
// A and D are 16 bits registers, RAM cells hold 16 bits values and
// arithmetic wraps around. Jump conditions see the ALU output as a signed 16
// bits value.
//
package hack
