package alsoft

// bs2b.go - BS2B-style headphone crossfeed (§4.5 supplemented
// feature, §9): blends a little of each channel's opposite side
// through a low-passed, delayed path, reducing the "locked in the
// head" effect of directly-panned stereo on headphones.

// Bs2bLevel selects one of three crossfeed presets (Default, CMoy,
// JMeier; values 0-2). The reference BS2B library's numbered levels
// 1-6 are not provided.
type Bs2bLevel int

const (
	Bs2bLevelDefault Bs2bLevel = iota
	Bs2bLevelCMoy
	Bs2bLevelJMeier
)

type bs2bParams struct {
	lowpassFc float32 // normalized cutoff
	feedGain  float32
	delayMs   float32
}

var bs2bPresets = map[Bs2bLevel]bs2bParams{
	Bs2bLevelDefault: {lowpassFc: 0.30, feedGain: 0.363, delayMs: 0.32},
	Bs2bLevelCMoy:    {lowpassFc: 0.25, feedGain: 0.33, delayMs: 0.30},
	Bs2bLevelJMeier:  {lowpassFc: 0.21, feedGain: 0.28, delayMs: 0.28},
}

// Bs2b is a stereo crossfeed filter: each channel's output mixes its
// own dry signal with a low-passed, delayed copy of the opposite
// channel.
type Bs2b struct {
	lowpassL, lowpassR BiquadFilter
	delayL, delayR     []float32
	delayPos           int
	feedGain           float32
}

// NewBs2b configures a crossfeed filter for sampleRate and level.
func NewBs2b(sampleRate int, level Bs2bLevel) *Bs2b {
	p, ok := bs2bPresets[level]
	if !ok {
		p = bs2bPresets[Bs2bLevelDefault]
	}
	delaySamples := int(p.delayMs * 0.001 * float32(sampleRate))
	if delaySamples < 1 {
		delaySamples = 1
	}
	b := &Bs2b{
		delayL:   make([]float32, delaySamples),
		delayR:   make([]float32, delaySamples),
		feedGain: p.feedGain,
	}
	norm := p.lowpassFc / (float32(sampleRate) * 0.5)
	rcpQ := CalcRcpQFromBandwidth(norm, 1)
	b.lowpassL.SetParams(BiquadLowPass, 1, norm, rcpQ)
	b.lowpassR.SetParams(BiquadLowPass, 1, norm, rcpQ)
	return b
}

// Process crossfeeds frames samples of l, r in place.
func (b *Bs2b) Process(l, r []float32) {
	n := len(l)
	lpL := make([]float32, n)
	lpR := make([]float32, n)
	b.lowpassL.Process(lpL, l)
	b.lowpassR.Process(lpR, r)

	for i := 0; i < n; i++ {
		delayedL := b.delayL[b.delayPos]
		delayedR := b.delayR[b.delayPos]
		b.delayL[b.delayPos] = lpL[i]
		b.delayR[b.delayPos] = lpR[i]
		b.delayPos = (b.delayPos + 1) % len(b.delayL)

		outL := l[i] + b.feedGain*delayedR
		outR := r[i] + b.feedGain*delayedL
		l[i] = outL
		r[i] = outR
	}
}
