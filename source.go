package alsoft

// source.go - the voice properties block and the mixer-side voice
// state machine (§3). A Voice is the mixer's shadow of an API-side
// source that's currently playing; VoiceProps is the immutable
// snapshot the API publishes and the parameter calculator consumes at
// the start of each quantum (§4.4, §4.5).

import "sync/atomic"

// SpatializeMode controls whether a (possibly multichannel) source is
// panned through the ambisonic bus or routed directly to real output
// channels.
type SpatializeMode int

const (
	SpatializeAuto SpatializeMode = iota
	SpatializeOn
	SpatializeOff
)

// SendProps configures one auxiliary effect slot send.
type SendProps struct {
	Slot   *AuxEffectSlot
	Gain   float32
	GainHF float32
	GainLF float32
}

// DirectProps configures the voice's dry-path filter.
type DirectProps struct {
	Gain   float32
	GainHF float32
	GainLF float32
}

// VoiceProps is the immutable snapshot of an API-side source's
// parameters, published atomically once per change (§3, §4.4).
type VoiceProps struct {
	Position    Vec3
	Velocity    Vec3
	Direction   Vec3 // zero vector = omnidirectional (no cone)
	HeadRelative bool

	Gain            float32
	MinGain         float32
	MaxGain         float32
	Pitch           float32
	DopplerFactor   float32
	Radius          float32 // source size; CalcSourceParams does not read it

	InnerAngle float32 // degrees
	OuterAngle float32 // degrees
	OuterGain  float32
	OuterGainHF float32

	// Priority biases which voice gets stolen first when the pool is
	// exhausted (§7): lower values are stolen before higher ones, among
	// currently-playing voices, once no idle voice remains.
	Priority int32

	RefDistance        float32
	MaxDistance        float32
	RolloffFactor      float32
	RoomRolloffFactor  float32
	AirAbsorptionFactor float32

	DistanceModel       DistanceModel
	UseSourceDistanceModel bool

	DryGainHFAuto bool
	WetGainAuto   bool
	WetGainHFAuto bool

	Direct DirectProps
	Send   [MaxSends]SendProps

	Spatialize SpatializeMode
	Resampler  SincKernel
	Looping    bool

	// StereoPan holds two pan angles (radians) for stereo buffers; the
	// parameter calculator and the mixer do not read it.
	StereoPan [2]float32
}

// DefaultVoiceProps returns a source's default parameter block.
func DefaultVoiceProps() VoiceProps {
	return VoiceProps{
		Gain:          1.0,
		MaxGain:       1.0,
		Pitch:         1.0,
		DopplerFactor: 1.0,
		InnerAngle:    360,
		OuterAngle:    360,
		OuterGain:     0,
		OuterGainHF:   1,
		RefDistance:   1,
		MaxDistance:   3.4028235e38,
		RolloffFactor: 1,
		DryGainHFAuto: true,
		WetGainAuto:   true,
		WetGainHFAuto: true,
		Direct:        DirectProps{Gain: 1, GainHF: 1, GainLF: 1},
		Resampler:     ResamplerLinear,
		StereoPan:     [2]float32{deg2rad(-30), deg2rad(30)},
	}
}

// ChannelGain is one output channel's ramped mix gain (§4.6). Current
// steps toward Target linearly across a render quantum.
type ChannelGain struct {
	Current float32
	Target  float32
}

// SendState is the per-voice, per-slot mixing state (§3).
type SendState struct {
	Slot    *AuxEffectSlot
	Gains   [MaxAmbiChannels]ChannelGain
	LowShelf  BiquadFilter
	HighShelf BiquadFilter
}

// HrtfState holds a voice's per-ear HRIR interpolation state,
// simplified to a small tap count rather than a full measured
// impulse response (§4.8's DirectHrtfState is the device-wide
// counterpart; this is the voice-local target/current pair the mixer
// interpolates toward, §3).
type HrtfState struct {
	Active bool

	CurrentCoeffsL, TargetCoeffsL []float32
	CurrentCoeffsR, TargetCoeffsR []float32
	CurrentDelayL, TargetDelayL   int
	CurrentDelayR, TargetDelayR   int

	// History holds the most recent input samples so the convolution's
	// tap window can reach back before the current quantum's start; one
	// shared ring since both ears convolve the same mono input, only
	// the per-ear coefficients and delay differ.
	History []float32
}

// NfcState is the near-field-control filter state for one ambisonic
// channel of a voice (§4.5). Never shared across voices.
type NfcState struct {
	W0        float32
	FilterZ1  [MaxAmbiChannels]float32
	FilterZ2  [MaxAmbiChannels]float32
}

// Voice is the mixer-side shadow of a playing source (§3). Allocated
// from the voice pool when a source starts playing; released back to
// the pool (not freed) when the mixer reports the source exhausted or
// the API stops/rewinds it.
type Voice struct {
	Update Update[VoiceProps]
	free   FreeList[VoiceProps]

	sourceID atomic.Uint64 // 0 when idle
	playing  atomic.Bool
	priority atomic.Int32 // §7 stealing priority, lower stolen first

	// current/queued buffer chain and playback position.
	queueHead    *BufferQueueItem
	position     int    // whole-frame position within the current buffer
	positionFrac uint32 // 16.16 fractional position

	// Direct-path (dry) state.
	DirectGains  [MaxOutputChannels]ChannelGain
	DirectLowShelf  BiquadFilter
	DirectHighShelf BiquadFilter

	// shelfZ holds DirectLowShelf's per-channel history so a single
	// shared filter can be applied independently to each of a
	// multichannel/B-Format source's channels via ProcessOne (§4.6).
	shelfZ [MaxOutputChannels][2]float32

	Sends [MaxSends]SendState

	Hrtf HrtfState
	Nfc  NfcState

	// resampler history ring, at least one kernel width, per input
	// channel (indexed 0..channels-1).
	resampleHistory [][]float32

	params VoiceParams // last computed parameter block, consumed by the mixer this quantum
}

func newVoice() *Voice {
	v := &Voice{}
	// A unity-gain shelf passes samples through unchanged, so a voice
	// is audible before any other shelf parameters are set.
	v.DirectLowShelf.SetParams(BiquadLowShelf, 1, 0.25, 1)
	return v
}

// SourceID returns the API-side source ID currently bound to this
// voice, or 0 if idle.
func (v *Voice) SourceID() uint64 { return v.sourceID.Load() }

// Playing reports whether the voice is currently producing sound.
func (v *Voice) Playing() bool { return v.playing.Load() }

// Priority returns the §7 stealing priority last bound onto this
// voice.
func (v *Voice) Priority() int32 { return v.priority.Load() }

// bindSource attaches the voice to an API-side source and resets its
// per-play state (§3 invariant: idle <=> SourceID==0 && !Playing).
func (v *Voice) bindSource(id uint64, queue *BufferQueueItem, priority int32) {
	v.queueHead = queue
	v.position = 0
	v.positionFrac = 0
	v.DirectGains = [MaxOutputChannels]ChannelGain{}
	v.shelfZ = [MaxOutputChannels][2]float32{}
	for i := range v.Sends {
		v.Sends[i] = SendState{}
	}
	v.Hrtf = HrtfState{}
	v.Nfc = NfcState{}
	v.DirectLowShelf.Clear()
	v.DirectHighShelf.Clear()
	v.sourceID.Store(id)
	v.priority.Store(priority)
	v.playing.Store(true)
}

// release returns the voice to the idle state (§3 invariant).
func (v *Voice) release() {
	v.playing.Store(false)
	v.sourceID.Store(0)
	v.queueHead = nil
}
