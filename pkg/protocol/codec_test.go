package protocol

import (
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	tests := []struct {
		value uint64
		bytes int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
		{math.MaxUint32, 5},
		{math.MaxUint64, 10},
	}
	for _, tc := range tests {
		e := NewEncoder()
		e.WriteUvarint(tc.value)
		assert.Equal(t, tc.bytes, e.Len(), "length of %d", tc.value)

		got, err := NewDecoder(e.Bytes()).ReadUvarint()
		require.NoError(t, err)
		assert.Equal(t, tc.value, got)
	}
}

func TestSvarintZigZag(t *testing.T) {
	for _, v := range []int64{0, -1, 1, -64, 63, math.MinInt64, math.MaxInt64} {
		e := NewEncoder()
		e.WriteSvarint(v)
		got, err := NewDecoder(e.Bytes()).ReadSvarint()
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	e := NewEncoder()
	e.WriteSvarint(-1)
	assert.Equal(t, []byte{0x01}, e.Bytes())
}

func TestDecoderErrors(t *testing.T) {
	t.Run("truncated varint", func(t *testing.T) {
		_, err := NewDecoder([]byte{0x80, 0x80}).ReadUvarint()
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
	t.Run("varint overflow", func(t *testing.T) {
		buf := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}
		_, err := NewDecoder(buf).ReadUvarint()
		assert.ErrorIs(t, err, ErrVarintOverflow)
	})
	t.Run("string longer than input", func(t *testing.T) {
		_, err := NewDecoder([]byte{0x05, 'a'}).ReadString()
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
	t.Run("string over allocation limit", func(t *testing.T) {
		e := NewEncoder()
		e.WriteUvarint(MaxAllocation + 1)
		_, err := NewDecoder(e.Bytes()).ReadString()
		assert.ErrorIs(t, err, ErrAllocationTooLarge)
	})
	t.Run("count over limit", func(t *testing.T) {
		e := NewEncoder()
		e.WriteUvarint(MaxCollectionCount + 1)
		_, err := NewDecoder(e.Bytes()).ReadCount()
		assert.ErrorIs(t, err, ErrCollectionTooLarge)
	})
	t.Run("count over remaining", func(t *testing.T) {
		_, err := NewDecoder([]byte{0x03, 0x00}).ReadCount()
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestEncoderStringsAndBools(t *testing.T) {
	e := NewEncoder()
	e.WriteString("héllo")
	e.WriteBool(true)
	e.WriteBool(false)
	e.WriteString("")

	d := NewDecoder(e.Bytes())
	s, err := d.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "héllo", s)
	b, err := d.ReadBool()
	require.NoError(t, err)
	assert.True(t, b)
	b, err = d.ReadBool()
	require.NoError(t, err)
	assert.False(t, b)
	s, err = d.ReadString()
	require.NoError(t, err)
	assert.Empty(t, s)
	assert.True(t, d.EOF())

	e.Reset()
	assert.Zero(t, e.Len())
}
