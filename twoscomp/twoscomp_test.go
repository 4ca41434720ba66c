package twoscomp_test

import (
	"testing"

	"github.com/db47h/bitstep"
	"github.com/db47h/bitstep/tracetest"
	"github.com/db47h/bitstep/twoscomp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	td := []struct {
		d, width int
		s        string
	}{
		{0, 4, "0000"},
		{5, 4, "0101"},
		{7, 4, "0111"},
		{-1, 4, "1111"},
		{-8, 4, "1000"},
		{-5, 8, "11111011"},
		{127, 8, "01111111"},
		// out of range values are not truncated
		{16, 4, "10000"},
	}
	for _, d := range td {
		assert.Equal(t, d.s, twoscomp.Encode(d.d, d.width), "Encode(%d, %d)", d.d, d.width)
	}
}

func TestDecode_roundTrip(t *testing.T) {
	for _, width := range []int{4, 8} {
		lo, hi := twoscomp.Range(width)
		for d := lo; d <= hi; d++ {
			s := twoscomp.Encode(d, width)
			require.Len(t, s, width)
			v, err := twoscomp.Decode(s)
			require.NoError(t, err)
			require.Equal(t, d, v)
		}
	}
	for _, s := range []string{"", "012", "1x"} {
		_, err := twoscomp.Decode(s)
		assert.Equal(t, bitstep.ErrInvalidNumber, errors.Cause(err), "Decode(%q)", s)
	}
}

func TestRange(t *testing.T) {
	lo, hi := twoscomp.Range(4)
	assert.Equal(t, -8, lo)
	assert.Equal(t, 7, hi)
	lo, hi = twoscomp.Range(8)
	assert.Equal(t, -128, lo)
	assert.Equal(t, 127, hi)
}

func TestInvert(t *testing.T) {
	assert.Equal(t, "1010", twoscomp.Invert("0101"))
	assert.Equal(t, "", twoscomp.Invert(""))
}

func TestTable(t *testing.T) {
	rows := twoscomp.Table(4)
	require.Len(t, rows, 16)
	assert.Equal(t, twoscomp.Row{Binary: "0111", Unsigned: 7, Signed: 7}, rows[7])
	assert.Equal(t, twoscomp.Row{Binary: "1000", Unsigned: 8, Signed: -8}, rows[8])
	assert.Equal(t, twoscomp.Row{Binary: "1111", Unsigned: 15, Signed: -1}, rows[15])
	assert.Nil(t, twoscomp.Table(0))
}

func TestConversionSteps(t *testing.T) {
	steps := twoscomp.ConversionSteps(5, 4)
	tracetest.Check(t, steps)
	require.Len(t, steps, 1)
	assert.Equal(t, "0101", steps[0].Binary)

	// -6: 0110 → 1001 → 1010
	steps = twoscomp.ConversionSteps(-6, 4)
	tracetest.Check(t, steps)
	require.Len(t, steps, 4)
	assert.Equal(t, "0110", steps[0].Binary)
	assert.Empty(t, steps[0].Changed)
	assert.Equal(t, "1001", steps[1].Binary)
	assert.Equal(t, []int{0, 1, 2, 3}, steps[1].Changed)
	assert.Equal(t, "1010", steps[2].Binary)
	assert.Equal(t, []int{2, 3}, steps[2].Changed)
	assert.Equal(t, "1010", steps[3].Binary)

	// -8 has the same magnitude pattern as its encoding
	steps = twoscomp.ConversionSteps(-8, 4)
	assert.Equal(t, "1000", steps[len(steps)-1].Binary)

	tracetest.CheckError(t, twoscomp.ConversionSteps(8, 4), bitstep.ErrOutOfRange)
	tracetest.CheckError(t, twoscomp.ConversionSteps(-9, 4), bitstep.ErrOutOfRange)
	tracetest.CheckError(t, twoscomp.ConversionSteps(0, 0), bitstep.ErrWidth)
}

func TestAdditionSteps(t *testing.T) {
	for _, width := range []int{4, 8} {
		lo, hi := twoscomp.Range(width)
		for x := lo; x <= hi; x++ {
			for y := lo; y <= hi; y++ {
				steps := twoscomp.AdditionSteps(x, y, width)
				// convert + one step per bit + result
				if len(steps) != width+2 {
					t.Fatalf("%d + %d: %d steps", x, y, len(steps))
				}
				last, ok := bitstep.Final(steps)
				require.True(t, ok)
				sum := x + y
				overflow := sum < lo || sum > hi
				if last.Overflow != overflow {
					t.Fatalf("%d + %d: overflow = %v", x, y, last.Overflow)
				}
				if (x < 0) != (y < 0) && last.Overflow {
					t.Fatalf("%d + %d: mixed signs overflow", x, y)
				}
				if last.Value != bitstep.SignExtend(sum, width) {
					t.Fatalf("%d + %d = %d, got %d", x, y, bitstep.SignExtend(sum, width), last.Value)
				}
			}
		}
	}
}

func TestAdditionSteps_trace(t *testing.T) {
	// 5 + 4 = 9 overflows on 4 bits
	steps := twoscomp.AdditionSteps(5, 4, 4)
	tracetest.Check(t, steps)
	assert.Equal(t, twoscomp.PhaseConvert, steps[0].Phase)
	for i := 1; i <= 4; i++ {
		s := steps[i]
		assert.Equal(t, twoscomp.PhaseAddition, s.Phase)
		assert.Equal(t, i-1, s.Current)
		assert.Len(t, s.Sums, i)
		assert.Len(t, s.Carries, i+1)
	}
	last := steps[5]
	assert.True(t, last.Overflow)
	assert.Equal(t, "1001", last.Result)
	assert.Equal(t, -7, last.Value)
	assert.Equal(t, 9, last.Expected)
	assert.Contains(t, last.Active, "overflow")

	// -1 + -1: the carry out is discarded, no overflow
	steps = twoscomp.AdditionSteps(-1, -1, 4)
	last = steps[len(steps)-1]
	assert.False(t, last.Overflow)
	assert.Equal(t, uint8(1), last.CarryOut)
	assert.Equal(t, "1110", last.Result)
	assert.Equal(t, -2, last.Value)

	tracetest.CheckError(t, twoscomp.AdditionSteps(8, 1, 4), bitstep.ErrOutOfRange)
	tracetest.CheckError(t, twoscomp.AdditionSteps(1, -9, 4), bitstep.ErrOutOfRange)
}
