// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bitstep

import (
	"strconv"
	"strings"
)

// Bits is a fixed width bit vector. Bit 0 is the MSB.
//
// All elements are either 0 or 1.
//
type Bits []uint8

// Mask returns 2^width - 1.
//
func Mask(width int) int {
	return 1<<uint(width) - 1
}

// Wrap reduces v modulo 2^width. The result is always in [0, 2^width).
//
func Wrap(v int, width int) int {
	return v & Mask(width)
}

// SignExtend interprets the low width bits of v as a two's complement value.
//
func SignExtend(v int, width int) int {
	v = Wrap(v, width)
	if v&(1<<uint(width-1)) != 0 {
		return v - 1<<uint(width)
	}
	return v
}

// BitsOf returns the width least significant bits of v, MSB first.
// Negative values are reduced modulo 2^width first, so BitsOf(-1, 4) returns
// 1111.
//
func BitsOf(v int, width int) Bits {
	v = Wrap(v, width)
	b := make(Bits, width)
	for i := range b {
		b[i] = uint8(v>>uint(width-1-i)) & 1
	}
	return b
}

// ValueOf returns the unsigned value of b.
//
func ValueOf(b Bits) int {
	var v int
	for _, bit := range b {
		v = v<<1 | int(bit&1)
	}
	return v
}

// BinaryString returns the binary representation of v, zero padded to width
// digits. A negative v is first wrapped to its width bits form. Values wider
// than width are not truncated.
//
func BinaryString(v int, width int) string {
	if v < 0 {
		v = Wrap(v, width)
	}
	s := strconv.FormatInt(int64(v), 2)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

// Value returns the unsigned value of b.
//
func (b Bits) Value() int { return ValueOf(b) }

// Signed returns the two's complement value of b.
//
func (b Bits) Signed() int {
	if len(b) == 0 {
		return 0
	}
	return SignExtend(ValueOf(b), len(b))
}

// Bit returns bit i counting from the LSB (i == 0 is the least significant
// bit).
//
func (b Bits) Bit(i int) uint8 {
	return b[len(b)-1-i]
}

// LSBFirst returns a copy of b in LSB first order.
//
func (b Bits) LSBFirst() []uint8 {
	r := make([]uint8, len(b))
	for i := range b {
		r[i] = b.Bit(i)
	}
	return r
}

// FromLSBFirst builds a Bits value from bits stored LSB first.
//
func FromLSBFirst(lsb []uint8) Bits {
	b := make(Bits, len(lsb))
	for i, v := range lsb {
		b[len(b)-1-i] = v & 1
	}
	return b
}

func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, bit := range b {
		sb.WriteByte('0' + bit&1)
	}
	return sb.String()
}
