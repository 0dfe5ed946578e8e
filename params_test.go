package alsoft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceAttenuation_InverseAtRefDistanceIsUnity(t *testing.T) {
	g := distanceAttenuation(DistanceInverse, 1, 1, 100, 1)
	assert.InDelta(t, 1, g, 1e-6)
}

func TestDistanceAttenuation_InverseFallsOffWithDistance(t *testing.T) {
	near := distanceAttenuation(DistanceInverse, 2, 1, 100, 1)
	far := distanceAttenuation(DistanceInverse, 10, 1, 100, 1)
	assert.Greater(t, near, far)
}

func TestDistanceAttenuation_LinearClampedReachesZeroAtMaxDistance(t *testing.T) {
	g := distanceAttenuation(DistanceLinearClamped, 100, 1, 100, 1)
	assert.InDelta(t, 0, g, 1e-5)
}

func TestDistanceAttenuation_DisableIsAlwaysUnity(t *testing.T) {
	assert.Equal(t, float32(1), distanceAttenuation(DistanceDisable, 1000, 1, 10, 1))
}

func TestCalcSourceParams_ZeroDistanceDoesNotProduceNaN(t *testing.T) {
	v := newVoice()
	props := DefaultVoiceProps()
	props.Position = Vec3{0, 0, 0}
	lp := &ListenerParams{Gain: 1, SpeedOfSound: DefaultSpeedOfSound, DopplerFactor: 1}

	CalcSourceParams(v, &props, lp)
	require.False(t, isNaN32(v.params.DryGain))
	require.False(t, isNaN32(v.params.Pitch))
}

func TestCalcSourceParams_GainNeverExceedsMixMax(t *testing.T) {
	v := newVoice()
	props := DefaultVoiceProps()
	props.Gain = 1000
	props.MaxGain = 1000
	props.Position = Vec3{0, 0, -1}
	lp := &ListenerParams{Gain: 1000, SpeedOfSound: DefaultSpeedOfSound, DopplerFactor: 1}

	CalcSourceParams(v, &props, lp)
	assert.LessOrEqual(t, v.params.DryGain, float32(GainMixMax))
}

func TestCalcSourceParams_DirectChannelsSkipsAttenuation(t *testing.T) {
	v := newVoice()
	props := DefaultVoiceProps()
	props.Spatialize = SpatializeOff
	props.Position = Vec3{1000, 0, 0}
	lp := &ListenerParams{Gain: 1, SpeedOfSound: DefaultSpeedOfSound, DopplerFactor: 1}

	CalcSourceParams(v, &props, lp)
	assert.True(t, v.params.DirectChannels)
	assert.InDelta(t, 1, v.params.DryGain, 1e-5)
}

func TestCalcPitchStep_ClampsToMaxPitch(t *testing.T) {
	var p VoiceParams
	props := DefaultVoiceProps()
	props.Pitch = 1000
	lp := &ListenerParams{SpeedOfSound: DefaultSpeedOfSound, DopplerFactor: 1}
	p.Direction = Vec3{0, 0, -1}

	calcPitchStep(&p, &props, lp)
	assert.LessOrEqual(t, p.Pitch, float32(MaxPitch))
}

func TestCalcPitchStep_ClampsStepToMaxPitchInFixedPoint(t *testing.T) {
	var p VoiceParams
	props := DefaultVoiceProps()
	props.Pitch = 1000
	lp := &ListenerParams{SpeedOfSound: DefaultSpeedOfSound, DopplerFactor: 1}
	p.Direction = Vec3{0, 0, -1}

	calcPitchStep(&p, &props, lp)
	assert.LessOrEqual(t, p.Step, int32(MaxPitch)<<FracBits)
}

func TestCalcPitchStep_DopplerClampUsesSpeedOfSoundDirectly(t *testing.T) {
	var p VoiceParams
	props := DefaultVoiceProps()
	props.Pitch = 1
	props.DopplerFactor = 1
	// A source velocity far exceeding the speed of sound, scaled by a
	// large doppler factor, must still clamp vss against SpeedOfSound
	// itself rather than SpeedOfSound/dopplerFactor (which would let
	// an inflated bound through and distort the pitch ratio).
	lp := &ListenerParams{SpeedOfSound: DefaultSpeedOfSound, DopplerFactor: 4}
	props.Velocity = Vec3{0, 0, 100000}
	p.Direction = Vec3{0, 0, -1}

	calcPitchStep(&p, &props, lp)
	require.False(t, isNaN32(p.Pitch))
	assert.Greater(t, p.Pitch, float32(0))
	assert.LessOrEqual(t, p.Pitch, float32(MaxPitch))
}

func TestCalcAttnParams_ZScaleFlipsSourceZBeforePanning(t *testing.T) {
	props := DefaultVoiceProps()
	props.Position = Vec3{0, 0, 1}
	lp := &ListenerParams{Matrix: Identity(), Gain: 1, SpeedOfSound: DefaultSpeedOfSound, DopplerFactor: 1}

	var forward VoiceParams
	calcAttnParams(&forward, &props, lp, DistanceInverse, EngineConfig{ConeScale: 1, ZScale: 1})

	var reversed VoiceParams
	calcAttnParams(&reversed, &props, lp, DistanceInverse, EngineConfig{ConeScale: 1, ZScale: -1})

	assert.InDelta(t, -forward.Direction.Z, reversed.Direction.Z, 1e-5,
		"__ALSOFT_REVERSE_Z's ZScale must flip the source's Z before it's transformed into listener space")
}

func isNaN32(f float32) bool {
	return f != f
}
