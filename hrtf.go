package alsoft

// hrtf.go - simplified head-related-transfer-function rendering
// (§4.8). HrtfState (source.go) already carries the per-ear
// target/current coefficient and delay pair; a full measured HRIR
// dataset is out of scope (see its doc comment), so the coefficients
// here come from a generic interaural time/level difference model
// (Woodworth ITD, cosine head-shadow ILD) rather than a measured
// impulse response table. The convolution and current/target
// crossfade machinery is otherwise the same shape OpenAL Soft uses
// for its real HRIR taps.

import "math"

const (
	// HrtfTaps is the short FIR kernel length standing in for a
	// measured per-ear impulse response.
	HrtfTaps = 4

	// HrtfHeadRadius approximates an adult head radius in meters, used
	// by the Woodworth ITD formula.
	HrtfHeadRadius = 0.0875

	// HrtfHeadShadowGain scales how much the far ear's gain is reduced
	// by head shadowing, 0 (no shadow) to 1 (fully attenuated at
	// endfire).
	HrtfHeadShadowGain = 0.6

	// MaxHrtfDelaySamples bounds the interaural delay so the history
	// ring stays a fixed, small size regardless of sample rate.
	MaxHrtfDelaySamples = 256
)

var hrtfKernelWeights = [HrtfTaps]float32{0.1, 0.2, 0.3, 0.4}

// CalcHrtfCoeffs derives a per-ear FIR kernel and integer sample delay
// from a listener-space unit direction, approximating the interaural
// time and level differences a measured HRIR would encode (§4.8).
func CalcHrtfCoeffs(dir Vec3, sampleRate int) (coeffsL, coeffsR []float32, delayL, delayR int) {
	x := clampf(dir.X, -1, 1)
	theta := float32(math.Asin(float64(x)))
	itdSeconds := (HrtfHeadRadius / DefaultSpeedOfSound) * (theta + float32(math.Sin(float64(theta))))

	itdSamples := int(absf(itdSeconds)*float32(sampleRate) + 0.5)
	if maxDelay := MaxHrtfDelaySamples - HrtfTaps; itdSamples > maxDelay {
		itdSamples = maxDelay
	}

	gainFar := 1 - HrtfHeadShadowGain*absf(x)
	if gainFar < 0 {
		gainFar = 0
	}

	near := hrtfKernel(1)
	far := hrtfKernel(gainFar)

	if x >= 0 {
		// Source to the right: right ear is near (no delay), left ear
		// is far and delayed.
		coeffsR, coeffsL = near, far
		delayR, delayL = 0, itdSamples
	} else {
		coeffsL, coeffsR = near, far
		delayL, delayR = 0, itdSamples
	}
	return
}

func hrtfKernel(gain float32) []float32 {
	k := make([]float32, HrtfTaps)
	for i, w := range hrtfKernelWeights {
		k[i] = w * gain
	}
	return k
}

// ActivateHrtf updates v's HRTF target coefficients/delay for the
// coming quantum from its current panning direction, priming Current
// from Target on first activation so there's no initial discontinuity
// (§4.8, mirrors the Current/Target ramp convention ChannelGain uses
// elsewhere in the mixer).
func ActivateHrtf(v *Voice, sampleRate int) {
	h := &v.Hrtf
	coeffsL, coeffsR, delayL, delayR := CalcHrtfCoeffs(v.params.Direction, sampleRate)

	first := !h.Active
	h.Active = true
	h.TargetCoeffsL, h.TargetCoeffsR = coeffsL, coeffsR
	h.TargetDelayL, h.TargetDelayR = delayL, delayR

	if first {
		h.CurrentCoeffsL = append([]float32(nil), coeffsL...)
		h.CurrentCoeffsR = append([]float32(nil), coeffsR...)
		h.CurrentDelayL, h.CurrentDelayR = delayL, delayR
		h.History = make([]float32, HrtfTaps+MaxHrtfDelaySamples)
	}
}

// DeactivateHrtf clears a voice's HRTF state so a later ActivateHrtf
// call starts fresh instead of crossfading from stale coefficients.
func DeactivateHrtf(v *Voice) {
	v.Hrtf.Active = false
}

// MixHrtf convolves in (the voice's resampled, shelf-filtered mono
// signal) through v's per-ear HRTF state into left/right, crossfading
// sample-by-sample from Current to Target coefficients/delay across
// the block, then promoting Target into Current for the next quantum
// (§4.6, §4.8).
func MixHrtf(v *Voice, in, left, right []float32, gain float32) {
	h := &v.Hrtf
	n := len(in)
	if n == 0 {
		return
	}

	span := len(h.History)
	ext := make([]float32, span+n)
	copy(ext, h.History)
	copy(ext[span:], in)

	mixHrtfEar(ext, span, n, left, h.CurrentCoeffsL, h.CurrentDelayL, h.TargetCoeffsL, h.TargetDelayL, gain)
	mixHrtfEar(ext, span, n, right, h.CurrentCoeffsR, h.CurrentDelayR, h.TargetCoeffsR, h.TargetDelayR, gain)

	if span >= n {
		copy(h.History, ext[n:n+span])
	} else {
		copy(h.History, ext[len(ext)-span:])
	}

	h.CurrentCoeffsL = h.TargetCoeffsL
	h.CurrentCoeffsR = h.TargetCoeffsR
	h.CurrentDelayL = h.TargetDelayL
	h.CurrentDelayR = h.TargetDelayR
}

// mixHrtfEar accumulates one ear's ramped old-coefficient/new-coefficient
// convolution blend into out.
func mixHrtfEar(ext []float32, span, n int, out []float32, oldCoeffs []float32, oldDelay int, newCoeffs []float32, newDelay int, gain float32) {
	if len(oldCoeffs) == 0 || len(newCoeffs) == 0 {
		return
	}
	for i := 0; i < n && i < len(out); i++ {
		base := span + i
		t := float32(i) / float32(n)

		var sOld, sNew float32
		for tap := 0; tap < HrtfTaps; tap++ {
			idxOld := base - oldDelay - tap
			if idxOld >= 0 && idxOld < len(ext) {
				sOld += oldCoeffs[tap] * ext[idxOld]
			}
			idxNew := base - newDelay - tap
			if idxNew >= 0 && idxNew < len(ext) {
				sNew += newCoeffs[tap] * ext[idxNew]
			}
		}
		out[i] += gain * (sOld*(1-t) + sNew*t)
	}
}
