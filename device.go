package alsoft

// device.go - the render-side device state (§4.2, §4.9): output
// format, the dry ambisonic bus voices mix into, the first-order bus
// effect slots receive as their FOA output target, the final real-channel
// buffer, and the optional post-processing chain (HRTF, UHJ, BS2B,
// stabilizer, limiter) plus the dither and sample-clock state that
// every quantum advances.

import "sync/atomic"

// SampleType selects the output PCM representation (§6).
type SampleType int

const (
	SampleInt16 SampleType = iota
	SampleInt32
	SampleFloat32
	SampleUint8
)

// PostProcessMode selects which optional stage (if any) converts the
// ambisonic dry bus to real output channels (§4.5, §9).
type PostProcessMode int

const (
	PostProcessDecode PostProcessMode = iota // plain B-Format decode
	PostProcessUHJ
	PostProcessHRTF
)

// Device owns everything the render pipeline touches once per
// quantum: buses, decoder, optional stages, and the sample clock.
type Device struct {
	SampleRate int
	Channels   int
	Layout     ChannelLayout
	SampleType SampleType
	PostMode   PostProcessMode

	DryBus  MixBus // ambisonic, MaxAmbiChannels wide
	FOABus  MixBus // first-order ambisonic, 4 wide, the FOA output target handed to effect slots
	RealBus MixBus // post-decode real output channels

	Decoder    *BFormatDecoder
	Uhj        *UhjEncoder
	Crossfeed  *Bs2b
	Stabilizer *Stabilizer
	Limiter    *Limiter

	ChannelDelay []int // per real channel, in samples, for speaker distance compensation

	ditherDepth float32
	ditherSeedA uint64
	ditherSeedB uint64

	sampleClock atomic.Uint64
	mixCount    atomic.Uint32

	Listener *Listener
	Voices   *VoicePool
	Slots    []*AuxEffectSlot

	Events *EventQueue
}

// NewDevice allocates a device for the given output configuration and
// voice capacity.
func NewDevice(sampleRate int, layout ChannelLayout, sampleType SampleType, numVoices int) *Device {
	numReal := ChannelCount(layout)
	d := &Device{
		SampleRate: sampleRate,
		Channels:   numReal,
		Layout:     layout,
		SampleType: sampleType,
		DryBus:     NewMixBus(AmbiChannelsForOrder(MaxAmbiOrder), BUFFERSIZE),
		FOABus:     NewMixBus(4, BUFFERSIZE),
		RealBus:    NewMixBus(numReal, BUFFERSIZE),
		Decoder:    NewBFormatDecoder(layout, NormN3D, false, 400.0/float32(sampleRate)),
		ChannelDelay: make([]int, numReal),
		ditherDepth:  1.0,
		ditherSeedA:  22222,
		ditherSeedB:  11111,
		Listener:     NewListener(),
		Voices:       NewVoicePool(numVoices),
		Events:       NewEventQueue(256),
	}
	return d
}

// MixCount returns the device's current mix-count parity value (§4.9,
// §8): even while idle between quanta, odd while a quantum is being
// rendered, so a concurrent reader can detect it read a buffer mid-mix
// by observing the count change.
func (d *Device) MixCount() uint32 { return d.mixCount.Load() }

// SampleClock returns the total number of frames rendered so far.
func (d *Device) SampleClock() uint64 { return d.sampleClock.Load() }

// beginQuantum increments the mix-count to the next odd value (§4.9
// step 1).
func (d *Device) beginQuantum() {
	d.mixCount.Add(1)
}

// endQuantum increments the mix-count to the next even value and
// advances the sample clock (§4.9 step 11).
func (d *Device) endQuantum(frames int) {
	d.mixCount.Add(1)
	d.sampleClock.Add(uint64(frames))
}
