package alsoft

// biquad.go - direct-form II transposed biquad, the per-sample IIR
// primitive used by the voice mixer's shelf filters and the near-field
// control filter (§4.1).
//
// Grounded on Alc/filters/biquad.h's "Cookbook formulae for audio EQ
// biquad filter coefficients" (Robert Bristow-Johnson). Shelf filters
// are parameterized so the configured gain is the gain at the
// reference frequency, matching the original's implementation note.

import "math"

// BiquadType selects which cookbook formula setParams uses.
type BiquadType int

const (
	BiquadHighShelf BiquadType = iota
	BiquadLowShelf
	BiquadPeaking
	BiquadLowPass
	BiquadHighPass
	BiquadBandPass
)

// BiquadFilter is a stateful direct-form II transposed biquad.
// process is stateful across calls and produces the same output as n
// single-sample invocations of processOne.
type BiquadFilter struct {
	z1, z2     float32
	b0, b1, b2 float32
	a1, a2     float32
}

// Clear zeros the filter's history without touching its coefficients.
func (f *BiquadFilter) Clear() {
	f.z1, f.z2 = 0, 0
}

// CopyParamsFrom copies coefficients but not history from other.
func (f *BiquadFilter) CopyParamsFrom(other *BiquadFilter) {
	f.b0, f.b1, f.b2 = other.b0, other.b1, other.b2
	f.a1, f.a2 = other.a1, other.a2
}

// SetParams configures the filter for the given type. gain is only
// meaningful for the shelf/peaking types; f0norm is refFreq/sampleRate
// (cutoff for LowPass/HighPass, the transition-band center otherwise);
// rcpQ is 1/Q, produced by CalcRcpQFromSlope or CalcRcpQFromBandwidth.
func (f *BiquadFilter) SetParams(typ BiquadType, gain, f0norm, rcpQ float32) {
	// Avoid negative/invalid center frequencies wrapping the cookbook
	// math; OpenAL Soft clamps callers instead, so mirror that
	// contract rather than silently fixing it up here.
	w0 := float64(2*math.Pi) * float64(f0norm)
	sinW0, cosW0 := math.Sincos(w0)
	alpha := sinW0 / 2 * float64(rcpQ)

	sqrtGain := math.Sqrt(float64(gain))

	var b0, b1, b2, a0, a1, a2 float64

	switch typ {
	case BiquadHighShelf:
		b0 = float64(gain) * ((float64(gain) + 1) + (float64(gain)-1)*cosW0 + 2*sqrtGain*alpha)
		b1 = -2 * float64(gain) * ((float64(gain) - 1) + (float64(gain)+1)*cosW0)
		b2 = float64(gain) * ((float64(gain) + 1) + (float64(gain)-1)*cosW0 - 2*sqrtGain*alpha)
		a0 = (float64(gain) + 1) - (float64(gain)-1)*cosW0 + 2*sqrtGain*alpha
		a1 = 2 * ((float64(gain) - 1) - (float64(gain)+1)*cosW0)
		a2 = (float64(gain) + 1) - (float64(gain)-1)*cosW0 - 2*sqrtGain*alpha
	case BiquadLowShelf:
		b0 = float64(gain) * ((float64(gain) + 1) - (float64(gain)-1)*cosW0 + 2*sqrtGain*alpha)
		b1 = 2 * float64(gain) * ((float64(gain) - 1) - (float64(gain)+1)*cosW0)
		b2 = float64(gain) * ((float64(gain) + 1) - (float64(gain)-1)*cosW0 - 2*sqrtGain*alpha)
		a0 = (float64(gain) + 1) + (float64(gain)-1)*cosW0 + 2*sqrtGain*alpha
		a1 = -2 * ((float64(gain) - 1) + (float64(gain)+1)*cosW0)
		a2 = (float64(gain) + 1) + (float64(gain)-1)*cosW0 - 2*sqrtGain*alpha
	case BiquadPeaking:
		alphaMulGain := alpha * float64(gain)
		alphaDivGain := alpha / float64(gain)
		b0 = 1 + alphaMulGain
		b1 = -2 * cosW0
		b2 = 1 - alphaMulGain
		a0 = 1 + alphaDivGain
		a1 = -2 * cosW0
		a2 = 1 - alphaDivGain
	case BiquadLowPass:
		b0 = (1 - cosW0) / 2
		b1 = 1 - cosW0
		b2 = (1 - cosW0) / 2
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha
	case BiquadHighPass:
		b0 = (1 + cosW0) / 2
		b1 = -(1 + cosW0)
		b2 = (1 + cosW0) / 2
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha
	case BiquadBandPass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha
	}

	invA0 := 1.0 / a0
	f.b0 = float32(b0 * invA0)
	f.b1 = float32(b1 * invA0)
	f.b2 = float32(b2 * invA0)
	f.a1 = float32(a1 * invA0)
	f.a2 = float32(a2 * invA0)
}

// Process runs n samples of src through the filter into dst, which may
// alias src. Stateful across calls.
func (f *BiquadFilter) Process(dst, src []float32) {
	z1, z2 := f.z1, f.z2
	b0, b1, b2, a1, a2 := f.b0, f.b1, f.b2, f.a1, f.a2
	for i, in := range src {
		out := in*b0 + z1
		z1 = in*b1 - out*a1 + z2
		z2 = in*b2 - out*a2
		dst[i] = out
	}
	f.z1, f.z2 = z1, z2
}

// ProcessOne runs a single sample through the filter using externally
// held state, for the mixer's per-tap convolution paths where history
// must be threaded through gain-ramp interpolation manually.
func (f *BiquadFilter) ProcessOne(in float32, z1, z2 *float32) float32 {
	out := in*f.b0 + *z1
	*z1 = in*f.b1 - out*f.a1 + *z2
	*z2 = in*f.b2 - out*f.a2
	return out
}

// Passthru advances history as if numsamples samples of silence/input
// had passed without applying the filter's coefficients - used when a
// voice briefly bypasses a filter stage but must keep continuity.
func (f *BiquadFilter) Passthru(numsamples int) {
	switch {
	case numsamples >= 2:
		f.z1, f.z2 = 0, 0
	case numsamples == 1:
		f.z1 = f.z2
		f.z2 = 0
	}
}

// CalcRcpQFromSlope computes 1/Q for shelving filters from the
// reference gain and shelf slope (0 < slope <= 1).
func CalcRcpQFromSlope(gain, slope float32) float32 {
	g := float64(gain)
	return float32(math.Sqrt((g + 1/g) * (1/float64(slope) - 1) + 2))
}

// CalcRcpQFromBandwidth computes 1/Q from the normalized reference
// frequency and bandwidth in octaves (0 < f0norm < 0.5).
func CalcRcpQFromBandwidth(f0norm, bandwidth float32) float32 {
	w0 := 2 * math.Pi * float64(f0norm)
	return float32(2 * math.Sinh(math.Ln2/2*float64(bandwidth)*w0/math.Sin(w0)))
}
