package alsoft

// limiter.go - a simple lookahead-free peak limiter applied to the
// final real output channels (§4.9 post-processing, §9). Not a
// brick-wall design; a fast attack / slower release envelope follower
// that pulls gain down as a sample approaches full scale, matching the
// "good enough to stop obvious clipping" scope this spec carries for
// the post-processing chain.
type Limiter struct {
	threshold float32
	attack    float32
	release   float32
	envelope  float32
}

// NewLimiter creates a limiter with the given threshold (0..1) and
// attack/release times expressed as one-pole coefficients derived from
// sampleRate.
func NewLimiter(threshold float32, sampleRate int) *Limiter {
	return &Limiter{
		threshold: threshold,
		attack:    onePoleCoeff(0.001, sampleRate),
		release:   onePoleCoeff(0.100, sampleRate),
		envelope:  1,
	}
}

func onePoleCoeff(seconds float32, sampleRate int) float32 {
	if seconds <= 0 || sampleRate <= 0 {
		return 1
	}
	return 1 - expNeg(1/(seconds*float32(sampleRate)))
}

// expNeg returns e^-x.
func expNeg(x float32) float32 {
	return powf(2.718281828459045, -x)
}

// Process applies gain reduction in place across channels, each
// sample frame sharing a single envelope so stereo/multichannel
// content doesn't get pulled apart in the stereo image.
func (l *Limiter) Process(channels [][]float32) {
	if len(channels) == 0 {
		return
	}
	n := len(channels[0])
	for i := 0; i < n; i++ {
		peak := float32(0)
		for _, ch := range channels {
			if i >= len(ch) {
				continue
			}
			if a := absf(ch[i]); a > peak {
				peak = a
			}
		}

		target := float32(1)
		if peak > l.threshold {
			target = l.threshold / peak
		}
		coeff := l.release
		if target < l.envelope {
			coeff = l.attack
		}
		l.envelope += (target - l.envelope) * coeff

		for _, ch := range channels {
			if i < len(ch) {
				ch[i] *= l.envelope
			}
		}
	}
}
