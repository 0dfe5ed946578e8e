package alsoft

// splitter.go - second-order Linkwitz-Riley-style crossover splitting
// a signal into complementary high- and low-frequency bands (§4.2).
// Used both by the dual-band B-Format decoder and by first-order to
// higher-order ambisonic upsampling.

import "math"

// BandSplitter decomposes an input into high- and low-frequency
// complementary bands using a single all-pass-derived one-pole stage
// run twice (cascaded), which is the standard two-pole Linkwitz-Riley
// construction: low = allpass-averaged low-pass, high = in - low.
type BandSplitter struct {
	coeff float32
	z1    float32
	z2    float32
}

// Init configures the splitter from a normalized cutoff (cutoff /
// sampleRate).
func (s *BandSplitter) Init(normalizedCutoff float32) {
	w := 2 * math.Pi * float64(normalizedCutoff)
	cw := math.Cos(w)
	coeff := (cw - 1) / (cw + 1)
	s.coeff = float32(clampf(float32(coeff), -0.99, 0.99))
	s.z1, s.z2 = 0, 0
}

// Clear resets the splitter's filter history.
func (s *BandSplitter) Clear() {
	s.z1, s.z2 = 0, 0
}

// Process decomposes in into complementary hf and lf bands, n samples
// at a time. hf, lf, and in must each have length >= n. hf or lf may
// be nil if that band isn't needed.
func (s *BandSplitter) Process(hf, lf, in []float32) {
	coeff := s.coeff
	z1, z2 := s.z1, s.z2

	for i, x := range in {
		// Stage 1 all-pass.
		ap1 := coeff*x + z1 - coeff*z2
		z1 = x
		// Stage 2 all-pass, cascaded on the first stage's output.
		ap2 := coeff*ap1 + z2 - coeff*ap1
		z2 = ap1

		low := (x + ap2) * 0.5
		if lf != nil {
			lf[i] = low
		}
		if hf != nil {
			hf[i] = x - low
		}
	}

	s.z1, s.z2 = z1, z2
}
