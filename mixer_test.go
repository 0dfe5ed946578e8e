package alsoft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monoBuffer(samples []float32) *Buffer {
	return &Buffer{Format: FormatMono, Channels: 1, SampleRate: 48000, Data: samples}
}

func TestMixVoice_ReturnsFalseWithNoQueuedBuffer(t *testing.T) {
	v := newVoice()
	v.params.DryGain = 1
	bus := NewMixBus(4, 16)
	real := NewMixBus(2, 16)
	var coeffs [MaxAmbiChannels]float32
	more := MixVoice(v, 16, &bus, &real, coeffs, nil, false)
	assert.False(t, more)
}

func TestMixVoice_AmbisonicPathAccumulatesIntoDryBus(t *testing.T) {
	v := newVoice()
	data := make([]float32, 64)
	for i := range data {
		data[i] = 1
	}
	v.queueHead = &BufferQueueItem{Buffer: monoBuffer(data)}
	v.params.Step = FracOne
	v.params.DryGain = 1
	v.params.Resampler = ResamplerPoint
	v.DirectLowShelf.SetParams(BiquadLowShelf, 1, 0.2, 1)

	bus := NewMixBus(4, 16)
	real := NewMixBus(2, 16)
	var coeffs [MaxAmbiChannels]float32
	coeffs[0] = 1

	more := MixVoice(v, 16, &bus, &real, coeffs, nil, false)
	require.True(t, more)

	nonZero := false
	for _, s := range bus.Channels[0] {
		if s != 0 {
			nonZero = true
		}
	}
	assert.True(t, nonZero, "W channel of the dry bus must receive the voice's signal")
	for _, s := range bus.Channels[1] {
		assert.Equal(t, float32(0), s, "channels with zero ambisonic coefficient must stay silent")
	}
}

func TestMixVoice_DirectChannelsPathWritesToRealBus(t *testing.T) {
	v := newVoice()
	data := make([]float32, 32)
	for i := range data {
		data[i] = 2
	}
	v.queueHead = &BufferQueueItem{Buffer: monoBuffer(data)}
	v.params.Step = FracOne
	v.params.DryGain = 1
	v.params.DirectChannels = true
	v.params.Resampler = ResamplerPoint
	v.DirectLowShelf.SetParams(BiquadLowShelf, 1, 0.2, 1)

	bus := NewMixBus(4, 16)
	real := NewMixBus(2, 16)
	gains := make([]ChannelGain, 2)
	var coeffs [MaxAmbiChannels]float32

	MixVoice(v, 16, &bus, &real, coeffs, gains, false)

	nonZero := false
	for _, s := range real.Channels[0] {
		if s != 0 {
			nonZero = true
		}
	}
	assert.True(t, nonZero)
}

func TestMixBFormatChannels_RoutesWXYZOntoTheirACNChannels(t *testing.T) {
	bus := NewMixBus(4, 4)
	gains := make([]ChannelGain, 4)
	w := []float32{1, 1, 1, 1}
	x := []float32{2, 2, 2, 2}
	y := []float32{3, 3, 3, 3}
	z := []float32{4, 4, 4, 4}

	mixBFormatChannels([][]float32{w, x, y, z}, &bus, gains, 1)

	assert.Equal(t, float32(1), bus.Channels[0][0], "W must land on ACN 0")
	assert.Equal(t, float32(3), bus.Channels[1][0], "Y must land on ACN 1")
	assert.Equal(t, float32(4), bus.Channels[2][0], "Z must land on ACN 2")
	assert.Equal(t, float32(2), bus.Channels[3][0], "X must land on ACN 3")
}

func TestMixVoice_BFormatVoiceDrivesAllFourAmbisonicChannelsNotJustW(t *testing.T) {
	v := newVoice()
	frames := 16
	data := make([]float32, frames*4)
	for i := 0; i < frames; i++ {
		data[i*4+0] = 1 // W
		data[i*4+1] = 2 // X
		data[i*4+2] = 3 // Y
		data[i*4+3] = 4 // Z
	}
	v.queueHead = &BufferQueueItem{Buffer: &Buffer{Format: FormatBFormat3D, Channels: 4, SampleRate: 48000, Data: data}}
	v.params.Step = FracOne
	v.params.DryGain = 1
	v.params.Resampler = ResamplerPoint

	bus := NewMixBus(4, frames)
	real := NewMixBus(2, frames)
	var coeffs [MaxAmbiChannels]float32

	MixVoice(v, frames, &bus, &real, coeffs, nil, false)

	assert.NotEqual(t, float32(0), bus.Channels[3][frames-1], "X content must reach ACN 3, not be dropped")
	assert.NotEqual(t, float32(0), bus.Channels[2][frames-1], "Z content must reach ACN 2, not be dropped")
}

func TestMixAmbisonic_RampsCurrentTowardTargetOverTheBlock(t *testing.T) {
	bus := NewMixBus(1, 8)
	gains := []ChannelGain{{Current: 0, Target: 0}}
	var coeffs [MaxAmbiChannels]float32
	coeffs[0] = 1
	in := make([]float32, 8)
	for i := range in {
		in[i] = 1
	}

	mixAmbisonic(in, &bus, coeffs, gains, 1)
	assert.Equal(t, float32(1), gains[0].Current, "after one full block the ramp must reach its target")
}

func TestMixDirectChannels_AccumulatesOntoExistingContent(t *testing.T) {
	real := NewMixBus(1, 4)
	real.Channels[0][0] = 5
	gains := []ChannelGain{{Current: 1, Target: 1}}
	in := [][]float32{{1, 1, 1, 1}}

	mixDirectChannels(in, &real, gains, 1)
	assert.Equal(t, float32(6), real.Channels[0][0])
}

func TestMixDirectChannels_RoutesEachSourceChannelToItsOwnRealChannel(t *testing.T) {
	real := NewMixBus(2, 4)
	gains := []ChannelGain{{Current: 1, Target: 1}, {Current: 1, Target: 1}}
	in := [][]float32{{1, 1, 1, 1}, {2, 2, 2, 2}}

	mixDirectChannels(in, &real, gains, 1)
	assert.Equal(t, float32(1), real.Channels[0][0], "source channel 0 must land on real channel 0")
	assert.Equal(t, float32(2), real.Channels[1][0], "source channel 1 must land on real channel 1, not be overwritten by channel 0's signal")
}
