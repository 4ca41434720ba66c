package ieee754_test

import (
	"math"
	"testing"
	"testing/quick"

	"github.com/db47h/bitstep"
	"github.com/db47h/bitstep/ieee754"
	"github.com/db47h/bitstep/tracetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	td := []struct {
		in      string
		sign    uint8
		biased  int
		hex     string
		special ieee754.Special
	}{
		{"13.75", 0, 130, "0x415C0000", ieee754.Normal},
		{"-0.5", 1, 126, "0xBF000000", ieee754.Normal},
		{"1", 0, 127, "0x3F800000", ieee754.Normal},
		{"0.15625", 0, 124, "0x3E200000", ieee754.Normal},
		{"-6", 1, 129, "0xC0C00000", ieee754.Normal},
		{"0", 0, 0, "0x00000000", ieee754.Zero},
		{"-0", 1, 0, "0x80000000", ieee754.Zero},
		{"inf", 0, 0, "0x7F800000", ieee754.Infinity},
		{"-Infinity", 1, 0, "0xFF800000", ieee754.Infinity},
		{"1e39", 0, 0, "0x7F800000", ieee754.Infinity},
		{"1e-10", 0, 0, "0x00000000", ieee754.Denormal},
	}
	for _, d := range td {
		t.Run(d.in, func(t *testing.T) {
			r := ieee754.Encode(d.in)
			require.NoError(t, r.Err)
			tracetest.Check(t, r.Steps)
			assert.Equal(t, d.sign, r.Sign)
			assert.Equal(t, d.hex, r.Hex)
			assert.Equal(t, d.special, r.Special)
			if d.special == ieee754.Normal {
				assert.Equal(t, d.biased, r.Biased)
			}
			assert.Len(t, r.Exponent, ieee754.ExponentBits)
			assert.Len(t, r.Mantissa, ieee754.MantissaBits)
		})
	}
}

func TestEncode_steps(t *testing.T) {
	r := ieee754.Encode("13.75")
	var phases []string
	for _, s := range r.Steps {
		phases = append(phases, s.Phase)
		assert.Equal(t, []string{s.Phase}, s.Active)
	}
	assert.Equal(t, []string{
		ieee754.PhaseSign, ieee754.PhaseInteger, ieee754.PhaseFraction, ieee754.PhaseFull,
		ieee754.PhaseNormalize, ieee754.PhaseExponent, ieee754.PhaseMantissa, ieee754.PhaseAssemble,
	}, phases)
	assert.Equal(t, "13₁₀ = 1101₂", r.Steps[1].Detail)
	assert.Equal(t, "0.75₁₀ = 0.11₂", r.Steps[2].Detail)
	assert.Equal(t, []string{"1.500000 ≥ 1 → 1", "1.000000 ≥ 1 → 1"}, r.Steps[2].SubSteps)
	assert.Equal(t, "1.10111... × 2^3", r.Steps[4].Detail)
	assert.Equal(t, 3, r.Exp)
	assert.Equal(t, "10000010", r.Exponent)
	assert.Equal(t, float32(13.75), r.Value())

	// zero returns early
	r = ieee754.Encode("0")
	require.Len(t, r.Steps, 2)
	assert.Equal(t, ieee754.PhaseSpecial, r.Steps[1].Phase)

	r = ieee754.Encode("1e39")
	assert.True(t, r.Overflow)
	assert.Equal(t, ieee754.PhaseOverflow, r.Steps[len(r.Steps)-1].Phase)
	assert.True(t, math.IsInf(float64(r.Value()), 1))
}

func TestEncode_invalid(t *testing.T) {
	for _, in := range []string{"NaN", "abc", "", "1.2.3"} {
		r := ieee754.Encode(in)
		assert.Error(t, r.Err, in)
		tracetest.CheckError(t, r.Steps, bitstep.ErrInvalidNumber)
	}
}

func TestEncodeFloat_exact(t *testing.T) {
	// values with at most 24 significant bits and no more than 24 fraction
	// bits are encoded exactly
	f := func(m uint32, e uint8) bool {
		m &= 1<<24 - 1
		v := math.Ldexp(float64(m), int(e)%64-24)
		r := ieee754.EncodeFloat(v)
		return r.Err == nil && r.Bits == math.Float32bits(float32(v))
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}
