package alsoft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampToInt16_ClampsBeyondRange(t *testing.T) {
	assert.Equal(t, int16(32767), clampToInt16(40000))
	assert.Equal(t, int16(-32768), clampToInt16(-40000))
	assert.Equal(t, int16(0), clampToInt16(0))
}

func TestClampToInt32_ScalesFullScaleFloatToExtremes(t *testing.T) {
	assert.Equal(t, int32(2147483647), clampToInt32(1.0))
	assert.Equal(t, int32(-2147483648), clampToInt32(-1.0))
}

func TestRoundHalfToEven_TiesRoundToEvenNeighbor(t *testing.T) {
	assert.Equal(t, float32(2), roundHalfToEven(1.5))
	assert.Equal(t, float32(2), roundHalfToEven(2.5))
	assert.Equal(t, float32(-2), roundHalfToEven(-1.5))
}

func TestRoundHalfToEven_NonTiesRoundNormally(t *testing.T) {
	assert.Equal(t, float32(1), roundHalfToEven(1.2))
	assert.Equal(t, float32(2), roundHalfToEven(1.8))
}

func TestWriteFloat32LE_RoundTripsThroughFloat32bits(t *testing.T) {
	dst := make([]byte, 4)
	writeFloat32LE(dst, 0, -1.5)

	d := NewDevice(48000, LayoutStereo, SampleFloat32, 1)
	buf := [][]float32{{-1.5}}
	out := make([]byte, 4)
	InterleaveAndConvert(d, buf, 1, out)
	assert.Equal(t, dst, out)
}

func TestInterleaveAndConvert_Int16InterleavesChannelsInOrder(t *testing.T) {
	d := NewDevice(48000, LayoutStereo, SampleInt16, 1)
	d.ditherDepth = 0
	left := []float32{1.0}
	right := []float32{-1.0}
	dst := make([]byte, 4)

	InterleaveAndConvert(d, [][]float32{left, right}, 1, dst)

	leftSample := int16(dst[0]) | int16(dst[1])<<8
	rightSample := int16(dst[2]) | int16(dst[3])<<8
	assert.Equal(t, int16(32767), leftSample)
	assert.Equal(t, int16(-32768), rightSample)
}

func TestDitherAndClampInt16_ZeroDepthIsBitExact(t *testing.T) {
	d := NewDevice(48000, LayoutMono, SampleInt16, 1)
	d.ditherDepth = 0
	assert.Equal(t, int16(16384), d.ditherAndClampInt16(0.5))
}

func TestDitherAndClampInt16_NonZeroDepthStaysWithinOneLSB(t *testing.T) {
	d := NewDevice(48000, LayoutMono, SampleInt16, 1)
	for i := 0; i < 100; i++ {
		v := d.ditherAndClampInt16(0.5)
		assert.InDelta(t, 16384, int(v), 2)
	}
}
