// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package twoscomp converts integers to and from their two's complement
// representation and generates conversion and addition traces.
//
// Binary strings are MSB first.
//
package twoscomp

import (
	"strconv"
	"strings"

	"github.com/db47h/bitstep"
	"github.com/pkg/errors"
)

// MaxWidth is the widest supported representation.
//
const MaxWidth = 32

// Range returns the range of values representable on width bits.
//
func Range(width int) (lo, hi int) {
	return -1 << uint(width-1), 1<<uint(width-1) - 1
}

func checkWidth(width int) error {
	if width < 1 || width > MaxWidth {
		return errors.Wrapf(bitstep.ErrWidth, "width %d not in [1, %d]", width, MaxWidth)
	}
	return nil
}

func checkRange(v, width int) error {
	if err := checkWidth(width); err != nil {
		return err
	}
	if lo, hi := Range(width); v < lo || v > hi {
		return errors.Wrapf(bitstep.ErrOutOfRange, "%d not in [%d, %d]", v, lo, hi)
	}
	return nil
}

func pad(s string, width int) string {
	if len(s) < width {
		return strings.Repeat("0", width-len(s)) + s
	}
	return s
}

// Encode returns the width bits two's complement representation of d.
//
// Non-negative values are zero padded, negative values are rendered as
// 2^width + d. Values outside of Range(width) are not truncated: the result
// is then longer than width.
//
func Encode(d int, width int) string {
	if d >= 0 {
		return pad(strconv.FormatInt(int64(d), 2), width)
	}
	return strconv.FormatInt(int64(1<<uint(width)+d), 2)
}

// Decode returns the value of the two's complement binary string s. The
// width is the length of s.
//
func Decode(s string) (int, error) {
	if len(s) == 0 || len(s) > 62 {
		return 0, errors.Wrapf(bitstep.ErrInvalidNumber, "binary string %q", s)
	}
	v, err := strconv.ParseUint(s, 2, 64)
	if err != nil {
		return 0, errors.Wrapf(bitstep.ErrInvalidNumber, "binary string %q", s)
	}
	if s[0] == '1' {
		return int(v) - 1<<uint(len(s)), nil
	}
	return int(v), nil
}

// Invert returns s with all its bits flipped.
//
func Invert(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch c {
		case '0':
			b[i] = '1'
		case '1':
			b[i] = '0'
		}
	}
	return string(b)
}

// changed returns the positions where cur differs from prev.
//
func changed(prev, cur string) []int {
	var pos []int
	for i := 0; i < len(cur); i++ {
		if i >= len(prev) || prev[i] != cur[i] {
			pos = append(pos, i)
		}
	}
	return pos
}

// Row is a line of a value table.
//
type Row struct {
	Binary   string
	Unsigned int
	Signed   int
}

// Table returns every width bits code with its unsigned and two's complement
// value. It returns nil if width is not in [1, 8].
//
func Table(width int) []Row {
	if width < 1 || width > 8 {
		return nil
	}
	rows := make([]Row, 0, 1<<uint(width))
	for code := 0; code < 1<<uint(width); code++ {
		rows = append(rows, Row{
			Binary:   bitstep.BinaryString(code, width),
			Unsigned: code,
			Signed:   bitstep.SignExtend(code, width),
		})
	}
	return rows
}
