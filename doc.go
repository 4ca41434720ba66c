// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package bitstep provides step-by-step traces of the classic algorithms taught
in an introductory computer architecture course: binary adders, restoring and
non-restoring division, two's complement arithmetic, IEEE-754 single
precision encoding, Boolean normal forms and a toy 16 bits CPU running Hack
assembly.

Each algorithm lives in its own sub-package and exposes a pure function that
turns small integer inputs into an ordered slice of steps. A step is a
snapshot of the algorithm's state together with a human readable title and
description. Steps are computed eagerly and never change afterwards; a
viewer only needs to keep a cursor into the slice:

	steps := adder.RippleCarry(7, 9, 0)
	for _, s := range steps {
		fmt.Println(s.Title, s.Detail)
	}

The Hack CPU is the odd one out: its Step function is a state transition
(state, instruction) -> state, and a Session keeps the history needed to
step backwards or run a program at a fixed cadence.

This package holds the pieces shared by all generators: fixed width bit
vectors and the Info header embedded in every step type.
*/
package bitstep
