package alsoft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBiquadFilter_ClearZerosState(t *testing.T) {
	var f BiquadFilter
	f.SetParams(BiquadLowPass, 1, 0.25, 0.707)

	in := make([]float32, 64)
	for i := range in {
		in[i] = 1
	}
	out := make([]float32, 64)
	f.Process(out, in)

	f.Clear()
	require.Equal(t, float32(0), f.z1)
	require.Equal(t, float32(0), f.z2)
}

func TestBiquadFilter_UnitGainPassthroughAtDC(t *testing.T) {
	var f BiquadFilter
	// A low shelf with gain=1 (0dB) should be a no-op regardless of
	// cutoff: the boosted/attenuated band gain equals unity gain.
	f.SetParams(BiquadLowShelf, 1, 0.1, 0.707)

	in := make([]float32, 256)
	for i := range in {
		in[i] = 1
	}
	out := make([]float32, 256)
	f.Process(out, in)

	for i := 32; i < len(out); i++ {
		assert.InDelta(t, 1.0, out[i], 1e-3)
	}
}

func TestBiquadFilter_PassthruZeroesHistoryPastOneSample(t *testing.T) {
	var f BiquadFilter
	f.SetParams(BiquadHighPass, 1, 0.3, 0.707)
	f.z1, f.z2 = 0.5, -0.25

	f.Passthru(2)
	assert.Equal(t, float32(0), f.z1)
	assert.Equal(t, float32(0), f.z2)
}

func TestBiquadFilter_PassthruOneSampleShiftsHistory(t *testing.T) {
	var f BiquadFilter
	f.SetParams(BiquadHighPass, 1, 0.3, 0.707)
	f.z1, f.z2 = 0.5, -0.25

	f.Passthru(1)
	assert.Equal(t, float32(-0.25), f.z1)
	assert.Equal(t, float32(0), f.z2)
}

func TestCalcRcpQFromBandwidth_NarrowerBandwidthIsHigherQ(t *testing.T) {
	wide := CalcRcpQFromBandwidth(0.25, 2.0)
	narrow := CalcRcpQFromBandwidth(0.25, 0.5)
	assert.Less(t, narrow, wide, "a narrower bandwidth should produce a smaller reciprocal-Q (higher Q)")
}
