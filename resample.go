package alsoft

// resample.go - the five resampler kernels of §4.5/§4.7: nearest,
// linear, cubic Hermite, and two windowed-sinc variants distinguished
// only by tap count here (a full polyphase sinc table is out of this
// exercise's scope; the shape of the interpolation curve is what's
// specified). Grounded on the Resampler-interface pattern in
// tphakala-go-audio-resampler and the cubic stage in ik5-audpbx's
// resampling path.

import "math"

// Resampler produces one output sample from a source history and a
// fractional position, per §4.7.
type Resampler interface {
	// TapCount is how many history samples (including the current
	// one) this kernel reads around idx (cubic reads idx-1..idx+2, the
	// sinc kernels idx-halfTaps+1..idx+halfTaps); history must hold
	// all of them.
	TapCount() int
	// Sample returns the interpolated value at fractional offset frac
	// (0..FracOne) between history[idx] and history[idx+1].
	Sample(history []float32, idx int, frac uint32) float32
}

// ResamplerFor returns the kernel for a given SincKernel selection.
func ResamplerFor(k SincKernel) Resampler {
	switch k {
	case ResamplerPoint:
		return pointResampler{}
	case ResamplerCubic:
		return cubicResampler{}
	case ResamplerSinc12:
		return sincResampler{halfTaps: 6}
	case ResamplerSinc24:
		return sincResampler{halfTaps: 12}
	default:
		return linearResampler{}
	}
}

type pointResampler struct{}

func (pointResampler) TapCount() int { return 1 }
func (pointResampler) Sample(history []float32, idx int, frac uint32) float32 {
	return history[idx]
}

type linearResampler struct{}

func (linearResampler) TapCount() int { return 2 }
func (linearResampler) Sample(history []float32, idx int, frac uint32) float32 {
	mu := float32(frac) / float32(FracOne)
	return lerp(history[idx], history[idx+1], mu)
}

// cubicResampler interpolates with a 4-point Hermite spline, reading
// one sample before idx and two after.
type cubicResampler struct{}

func (cubicResampler) TapCount() int { return 4 }
func (cubicResampler) Sample(history []float32, idx int, frac uint32) float32 {
	mu := float32(frac) / float32(FracOne)
	p0, p1, p2, p3 := history[idx-1], history[idx], history[idx+1], history[idx+2]

	a0 := -0.5*p0 + 1.5*p1 - 1.5*p2 + 0.5*p3
	a1 := p0 - 2.5*p1 + 2*p2 - 0.5*p3
	a2 := -0.5*p0 + 0.5*p2
	a3 := p1

	return ((a0*mu+a1)*mu+a2)*mu + a3
}

// sincResampler windows a sinc kernel with a Blackman window,
// using a ripple-reducing warped fractional position identical in
// shape to OpenAL Soft's resampler fraction correction:
// 1 - cos(asin(frac)).
type sincResampler struct {
	halfTaps int
}

func (s sincResampler) TapCount() int { return 2 * s.halfTaps }

func (s sincResampler) Sample(history []float32, idx int, frac uint32) float32 {
	mu := float64(frac) / float64(FracOne)
	warped := 1 - math.Cos(math.Asin(mu-math.Floor(mu)))

	var sum, wsum float64
	for t := -s.halfTaps + 1; t <= s.halfTaps; t++ {
		pos := float64(t) - warped
		w := sincWindow(pos, float64(s.halfTaps))
		sum += w * float64(history[idx+t])
		wsum += w
	}
	if wsum == 0 {
		return history[idx]
	}
	return float32(sum / wsum)
}

func sincWindow(x, halfWidth float64) float64 {
	if x == 0 {
		return 1
	}
	if math.Abs(x) >= halfWidth {
		return 0
	}
	px := math.Pi * x
	sinc := math.Sin(px) / px
	// Blackman window over the kernel support.
	n := x/halfWidth*0.5 + 0.5
	window := 0.42 - 0.5*math.Cos(2*math.Pi*n) + 0.08*math.Cos(4*math.Pi*n)
	return sinc * window
}
