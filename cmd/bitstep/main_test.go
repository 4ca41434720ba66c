// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/db47h/bitstep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInts(t *testing.T) {
	vs, err := ints([]string{"7", "-3"})
	require.NoError(t, err)
	assert.Equal(t, []int{7, -3}, vs)

	_, err = ints([]string{"7", "x"})
	assert.Error(t, err)
}

type testStep struct {
	bitstep.Info
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, false)
	err := steps(p, []testStep{
		{bitstep.Info{Title: "Start", Desc: "init"}},
		{bitstep.Info{Title: "Done", Detail: "a\nb", Active: []string{"x", "y"}, Final: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		" 1. Start",
		"    init",
		" 2. Done (final)",
		"    | a",
		"    | b",
		"    [x y]",
		"",
	}, "\n"), buf.String())

	err = steps(p, []testStep{{bitstep.ErrorInfo("Error", bitstep.ErrWidth)}})
	assert.Equal(t, bitstep.ErrWidth, err)
}

func TestCommands(t *testing.T) {
	for _, args := range [][]string{
		{"adder", "-kind", "prefix"},
		{"adder", "-kind", "wallace", "1", "2", "3"},
		{"divide", "-method", "non-restoring", "11", "3"},
		{"twos", "-width", "4", "--", "-5"},
		{"twos", "-width", "4", "5", "4"},
		{"twos", "-width", "3", "-table"},
		{"normal", "-vars", "2", "0110"},
		{"normal", "-knf", "0110"},
		{"float", "13.75"},
		{"hack", "-example", "Addition"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			var buf bytes.Buffer
			err := commands[args[0]].run(newPrinter(&buf, false), args[1:])
			require.NoError(t, err)
			assert.NotEmpty(t, buf.String())
		})
	}
}
