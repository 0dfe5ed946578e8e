package alsoft

// mixbus.go - MixBus is a named group of non-interleaved float32
// channel buffers: the device's dry ambisonic bus, its first-order
// "FOA" bus effect slots can target, and the
// real (post-decode) output bus all share this shape (§4.2, §4.9).

// MixBus is a set of parallel channel buffers of equal length, shared
// by the dry ambisonic bus, the FOA bus and the real output bus.
type MixBus struct {
	Channels [][]float32
}

// NumChannels reports how many channels this bus carries.
func (b *MixBus) NumChannels() int { return len(b.Channels) }

// FrameCount reports the quantum length this bus was sized for, 0 if
// empty.
func (b *MixBus) FrameCount() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Clear zeros every channel.
func (b *MixBus) Clear() {
	for _, c := range b.Channels {
		clearFloat32(c)
	}
}

// NewMixBus allocates a bus with the given channel count and quantum
// length.
func NewMixBus(channels, frames int) MixBus {
	b := MixBus{Channels: make([][]float32, channels)}
	for i := range b.Channels {
		b.Channels[i] = make([]float32, frames)
	}
	return b
}
