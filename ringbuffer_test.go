package alsoft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBuffer_CapacityRoundsUpToPowerOfTwo(t *testing.T) {
	r := NewRingBuffer(5, 4)
	assert.Equal(t, 8, r.Cap())
}

func TestRingBuffer_RoundTripPreservesBytes(t *testing.T) {
	r := NewRingBuffer(4, 4)
	in := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, r.Write(in))
	assert.Equal(t, 2, r.ReadSpace())

	out := make([]byte, 8)
	n := r.Read(out)
	assert.Equal(t, 2, n)
	assert.Equal(t, in, out)
}

func TestRingBuffer_WriteFailsWithoutPartialWrite(t *testing.T) {
	r := NewRingBuffer(2, 4)
	require.NoError(t, r.Write(make([]byte, 8))) // fills both slots

	err := r.Write(make([]byte, 4))
	assert.ErrorIs(t, err, ErrRingBufferFull)
	assert.Equal(t, 2, r.ReadSpace(), "a rejected write must not partially land")
}

func TestRingBuffer_WrapsAcrossBackingArrayBoundary(t *testing.T) {
	r := NewRingBuffer(4, 4)
	one := []byte{9, 9, 9, 9}
	require.NoError(t, r.Write(one))
	require.NoError(t, r.Write(one))
	require.NoError(t, r.Write(one))
	out := make([]byte, 4)
	r.Read(out)
	r.Read(out)
	r.Read(out)

	// Both indices now sit at slot 3 of 4, so the two-element payload
	// lands in slot 3 and wraps into slot 0; it should still round-trip.
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, r.Write(payload))
	got := make([]byte, 8)
	n := r.Read(got)
	assert.Equal(t, 2, n)
	assert.Equal(t, payload, got)
}
