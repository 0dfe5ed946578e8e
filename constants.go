package alsoft

// constants.go - fixed-point, mixing, and buffer-shape constants shared
// across the pipeline. Mirrors the #defines scattered through OpenAL
// Soft's Alc/alu.h and alu.cpp, collected in one place the way the
// teacher groups its register-address and tuning constants at the top
// of audio_chip.go.

const (
	// BUFFERSIZE is the maximum number of frames produced per render
	// quantum (§2).
	BUFFERSIZE = 4096

	// MaxOutputChannels bounds the device's real-output channel count
	// (7.1 is the widest named layout in §6).
	MaxOutputChannels = 8

	// MaxAmbiOrder is the highest ambisonic order this engine supports
	// (order 3 => 16 ACN channels, §3).
	MaxAmbiOrder = 3

	// MaxAmbiChannels is (MaxAmbiOrder+1)^2.
	MaxAmbiChannels = 16

	// MaxSends is the maximum number of auxiliary effect slot sends a
	// single voice may have active at once.
	MaxSends = 4

	// FracBits / FracOne implement the voice's 16.16 fixed-point
	// playback position and pitch step (§4.5).
	FracBits = 16
	FracOne  = 1 << FracBits
	FracMask = FracOne - 1

	// MaxPitch bounds the pitch multiplier before it saturates the
	// fixed-point step.
	MaxPitch = 10

	// GainMixMax is the invariant ceiling on any per-channel mix gain
	// (§3 invariants, §8 testable properties).
	GainMixMax = 16.0

	// AirAbsorbGainHF is the per-meter HF attenuation factor applied
	// beyond RefDistance (§4.5).
	AirAbsorbGainHF = 0.99426

	// ReverbDecayGain is the gain level (-60dB) that defines a send's
	// decay distance (§4.5).
	ReverbDecayGain = 0.001

	// DefaultSpeedOfSound in meters/second, used when a listener or
	// reverb slot does not override it.
	DefaultSpeedOfSound = 343.3

	// StereoAzimuthScale widens a panned voice's azimuth before
	// projecting it for a plain stereo-pair decode (§4.5).
	StereoAzimuthScale = 1.5
)

// SincKernel identifies the resampler kernel a voice uses (§4.5).
type SincKernel int

const (
	ResamplerPoint SincKernel = iota
	ResamplerLinear
	ResamplerCubic
	ResamplerSinc12
	ResamplerSinc24
)
