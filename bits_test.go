package bitstep_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/bitstep"
	"github.com/stretchr/testify/assert"
)

func TestBitsOf(t *testing.T) {
	td := []struct {
		v, width int
		bits     string
	}{
		{0, 4, "0000"},
		{5, 4, "0101"},
		{15, 4, "1111"},
		{16, 4, "0000"},
		{-1, 4, "1111"},
		{-8, 4, "1000"},
		{200, 8, "11001000"},
		{1, 1, "1"},
	}
	for _, d := range td {
		b := bitstep.BitsOf(d.v, d.width)
		assert.Len(t, b, d.width)
		assert.Equal(t, d.bits, b.String(), "BitsOf(%d, %d)", d.v, d.width)
	}
}

func TestValueOf_roundTrip(t *testing.T) {
	f := func(v uint16) bool {
		return bitstep.ValueOf(bitstep.BitsOf(int(v), 16)) == int(v)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestSigned(t *testing.T) {
	for v := -8; v < 8; v++ {
		b := bitstep.BitsOf(v, 4)
		assert.Equal(t, v, b.Signed())
		assert.Equal(t, v, bitstep.SignExtend(b.Value(), 4))
	}
	assert.Equal(t, 0, bitstep.Bits(nil).Signed())
}

func TestBinaryString(t *testing.T) {
	assert.Equal(t, "0011", bitstep.BinaryString(3, 4))
	assert.Equal(t, "10000", bitstep.BinaryString(16, 4))
	assert.Equal(t, "1101", bitstep.BinaryString(-3, 4))
	assert.Equal(t, "0", bitstep.BinaryString(0, 0))
}

func TestLSBFirst(t *testing.T) {
	b := bitstep.BitsOf(6, 4) // 0110
	lsb := b.LSBFirst()
	assert.Equal(t, []uint8{0, 1, 1, 0}, lsb)
	assert.Equal(t, uint8(0), b.Bit(0))
	assert.Equal(t, uint8(1), b.Bit(1))
	assert.Equal(t, b, bitstep.FromLSBFirst(lsb))

	b = bitstep.BitsOf(1, 3)
	assert.Equal(t, []uint8{1, 0, 0}, b.LSBFirst())
}

func TestFinal(t *testing.T) {
	type step struct{ bitstep.Info }
	_, ok := bitstep.Final([]step(nil))
	assert.False(t, ok)
	s, ok := bitstep.Final([]step{{}, {bitstep.Info{Title: "end", Final: true}}})
	assert.True(t, ok)
	assert.Equal(t, "end", s.Title)

	err := bitstep.Failed([]step{{bitstep.ErrorInfo("bad", bitstep.ErrWidth)}})
	assert.Equal(t, bitstep.ErrWidth, err)
	assert.Nil(t, bitstep.Failed([]step{{}, {}}))
}
