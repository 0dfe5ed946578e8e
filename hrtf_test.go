package alsoft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcHrtfCoeffs_CenterSourceHasNoInterauralDelay(t *testing.T) {
	_, _, delayL, delayR := CalcHrtfCoeffs(Vec3{0, 0, -1}, 48000)
	assert.Equal(t, 0, delayL)
	assert.Equal(t, 0, delayR)
}

func TestCalcHrtfCoeffs_SourceToTheRightDelaysTheLeftEar(t *testing.T) {
	coeffsL, coeffsR, delayL, delayR := CalcHrtfCoeffs(Vec3{1, 0, 0}, 48000)
	assert.Greater(t, delayL, 0, "the far (left) ear must be delayed relative to the near ear")
	assert.Equal(t, 0, delayR, "the near (right) ear has no delay")
	assert.Less(t, coeffsL[len(coeffsL)-1], coeffsR[len(coeffsR)-1], "the shadowed far ear must have lower gain than the near ear")
}

func TestCalcHrtfCoeffs_DelayNeverExceedsHistorySpan(t *testing.T) {
	_, _, delayL, delayR := CalcHrtfCoeffs(Vec3{1, 0, 0}, 192000)
	assert.Less(t, delayL, MaxHrtfDelaySamples)
	assert.Less(t, delayR, MaxHrtfDelaySamples)
}

func TestActivateHrtf_FirstActivationPrimesCurrentFromTargetWithNoPop(t *testing.T) {
	v := newVoice()
	v.params.Direction = Vec3{1, 0, 0}

	ActivateHrtf(v, 48000)
	require.True(t, v.Hrtf.Active)
	assert.Equal(t, v.Hrtf.TargetDelayL, v.Hrtf.CurrentDelayL)
	assert.Equal(t, v.Hrtf.TargetCoeffsR, v.Hrtf.CurrentCoeffsR)
}

func TestMixHrtf_ProducesNonZeroOutputOnBothChannelsForACenteredSource(t *testing.T) {
	v := newVoice()
	v.params.Direction = Vec3{0, 0, -1}
	ActivateHrtf(v, 48000)

	n := 32
	in := make([]float32, n)
	for i := range in {
		in[i] = 1
	}
	left := make([]float32, n)
	right := make([]float32, n)

	MixHrtf(v, in, left, right, 1)

	nonZeroL, nonZeroR := false, false
	for i := range in {
		if left[i] != 0 {
			nonZeroL = true
		}
		if right[i] != 0 {
			nonZeroR = true
		}
	}
	assert.True(t, nonZeroL)
	assert.True(t, nonZeroR)
}

func TestMixHrtf_DelayedEarStillReceivesSignalCarriedFromHistory(t *testing.T) {
	v := newVoice()
	v.params.Direction = Vec3{1, 0, 0} // delays the left ear
	ActivateHrtf(v, 48000)

	n := 8
	steady := make([]float32, n)
	for i := range steady {
		steady[i] = 1
	}

	// Several consecutive blocks of a steady signal: once enough
	// samples have flowed through the carried history ring to cover
	// the interaural delay, the delayed (left) ear must start
	// producing nonzero output too.
	var left []float32
	for block := 0; block < 8; block++ {
		l := make([]float32, n)
		r := make([]float32, n)
		MixHrtf(v, steady, l, r, 1)
		left = append(left, l...)
	}

	found := false
	for _, s := range left {
		if s != 0 {
			found = true
		}
	}
	assert.True(t, found, "a steady signal held long enough must reach the delayed far ear via carried history")
}
