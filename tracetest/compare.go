// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package tracetest

import (
	"math/rand"
	"testing"
	"time"
)

// AddFn is an adder under test. It returns the full sum (carry out included)
// of its inputs.
//
type AddFn func(a, b int, cin uint8) int

// maximum number of input bits tested exhaustively
const maxExhaustive = 12

// CompareAdders takes two adders and compares their outputs given the same
// inputs. width is the operand width.
//
// Both adders are first tested with all inputs 0 then all inputs 1. Then,
// if the input space (2 operands and a carry in) is no wider than 12 bits,
// every input combination is tested, otherwise 2^12 random combinations are.
//
func CompareAdders(t *testing.T, width int, add1, add2 AddFn) {
	t.Helper()

	mask := 1<<uint(width) - 1
	try := func(a, b int, cin uint8) {
		t.Helper()
		if s1, s2 := add1(a, b, cin), add2(a, b, cin); s1 != s2 {
			t.Fatalf("a=%d, b=%d, cin=%d: %d != %d", a, b, cin, s1, s2)
		}
	}

	try(0, 0, 0)
	try(mask, mask, 1)

	bits := 2*width + 1
	if bits <= maxExhaustive {
		for a := 0; a <= mask; a++ {
			for b := 0; b <= mask; b++ {
				try(a, b, 0)
				try(a, b, 1)
			}
		}
		return
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 1<<maxExhaustive; i++ {
		try(rnd.Intn(mask+1), rnd.Intn(mask+1), uint8(rnd.Intn(2)))
	}
}
