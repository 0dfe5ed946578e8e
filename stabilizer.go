package alsoft

// stabilizer.go - front sound-image stabilizer for layouts with a
// center channel (§4.5 supplemented feature, §9): splits front
// left/right into low/high bands, derives a mid/side decomposition of
// each band, and routes a fraction of the shared mid energy into
// the center channel so dialogue-like content doesn't collapse
// entirely into L/R on multi-speaker layouts. No phase-matching
// all-pass is applied to the other channels (see ProcessPassthrough).

// StabilizerLFCenterMix/HFCenterMix are the fixed mix fractions routed
// from the shared low/high mid signal into the center channel,
// mirroring OpenAL Soft's front stablizer (1/3 low, 1/4 high).
const (
	StabilizerLFCenterMix = 1.0 / 3.0
	StabilizerHFCenterMix = 1.0 / 4.0
)

// Stabilizer reprocesses front L/R/C before final output.
type Stabilizer struct {
	xoverL, xoverR BandSplitter
	allpass        BiquadFilter // phase-matching all-pass for non-front channels
}

// NewStabilizer builds a stabilizer crossed over at normFreq (cycles
// per sample, e.g. 400Hz/sampleRate).
func NewStabilizer(normFreq float32) *Stabilizer {
	s := &Stabilizer{}
	s.xoverL.Init(normFreq)
	s.xoverR.Init(normFreq)
	return s
}

// Process reworks frames samples of front left/right/center in place.
func (s *Stabilizer) Process(left, right, center []float32) {
	n := len(left)
	hfL := make([]float32, n)
	lfL := make([]float32, n)
	hfR := make([]float32, n)
	lfR := make([]float32, n)
	s.xoverL.Process(hfL, lfL, left)
	s.xoverR.Process(hfR, lfR, right)

	for i := 0; i < n; i++ {
		lfMid := 0.5 * (lfL[i] + lfR[i])
		lfSide := 0.5 * (lfL[i] - lfR[i])
		hfMid := 0.5 * (hfL[i] + hfR[i])
		hfSide := 0.5 * (hfL[i] - hfR[i])

		centerContribution := lfMid*StabilizerLFCenterMix + hfMid*StabilizerHFCenterMix
		lfMidRemain := lfMid * (1 - StabilizerLFCenterMix)
		hfMidRemain := hfMid * (1 - StabilizerHFCenterMix)

		left[i] = (lfMidRemain + lfSide) + (hfMidRemain + hfSide)
		right[i] = (lfMidRemain - lfSide) + (hfMidRemain - hfSide)
		center[i] += centerContribution
	}
}

// ProcessPassthrough advances the all-pass filter's history by len(ch)
// samples and leaves ch unchanged; no phase-matching filter is applied
// to the channel.
func (s *Stabilizer) ProcessPassthrough(ch []float32) {
	s.allpass.Passthru(len(ch))
}
