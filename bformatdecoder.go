package alsoft

// bformatdecoder.go - ambisonic-to-speaker decoding (§4.5's B-Format
// decode path referenced by the render pipeline, §9). A decoder is
// built once from a channel layout and an ambisonic normalization,
// producing a per-speaker row of per-ACN-channel gains. A dual-band
// decoder also splits W (ACN 0) through a BandSplitter crossover and
// recombines the two bands with per-band gains (both 1) before the
// matrix multiply; no near-field correction is applied. The gain matrix itself is
// built and applied with gonum/mat so the coefficient table doubles as
// ordinary matrix math instead of hand-rolled loops.

import (
	"gonum.org/v1/gonum/mat"
)

// DecoderPreset names seven speaker presets, mono through 7.1.
// NewBFormatDecoder is built from a ChannelLayout and does not take a
// DecoderPreset.
type DecoderPreset int

const (
	DecoderMono DecoderPreset = iota
	DecoderStereo
	DecoderQuad
	Decoder51
	Decoder51Rear
	Decoder61
	Decoder71
)

// BFormatDecoder renders an ambisonic bus down to real speaker
// channels.
type BFormatDecoder struct {
	layout      ChannelLayout
	numSpeakers int
	numAmbi     int

	// matrix is numSpeakers x numAmbi: row s, column c is speaker s's
	// gain for ambisonic channel c.
	matrix *mat.Dense

	dualBand bool
	xover    BandSplitter
	hfScale  float32
	lfScale  float32
}

// NewBFormatDecoder builds a decoder for layout using norm for channel
// scaling, matching the speaker set to DefaultLayoutChannels.
func NewBFormatDecoder(layout ChannelLayout, norm AmbiNorm, dualBand bool, xoverNormFreq float32) *BFormatDecoder {
	speakers := DefaultLayoutChannels(layout)
	numAmbi := AmbiChannelsForOrder(MaxAmbiOrder)

	d := &BFormatDecoder{
		layout:      layout,
		numSpeakers: len(speakers),
		numAmbi:     numAmbi,
		matrix:      mat.NewDense(len(speakers), numAmbi, nil),
		dualBand:    dualBand,
		hfScale:     1,
		lfScale:     1,
	}
	d.reset(speakers, norm)
	if dualBand {
		d.xover.Init(xoverNormFreq)
	}
	return d
}

// reset fills the gain matrix: each speaker's row is the set of real
// spherical-harmonic direction coefficients for that speaker's
// azimuth/elevation, scaled by the chosen normalization. Speakers are
// used at the angles DefaultLayoutChannels gives them; no side/rear
// speaker substitution is performed.
func (d *BFormatDecoder) reset(speakers []LayoutChannel, norm AmbiNorm) {
	for s, ch := range speakers {
		dir := AzimuthElevationToDirection(ch.Azimuth, ch.Elevation)
		coeffs := CalcDirectionCoeffs(dir, 0)
		for c := 0; c < d.numAmbi; c++ {
			scale := AmbiScale(norm, c)
			d.matrix.Set(s, c, float64(coeffs[c]*scale))
		}
	}
}

// Process decodes frames samples of ambi (numAmbi channels) into out
// (numSpeakers channels). If the decoder is dual-band, W (ACN 0) is
// first split and recombined by processDualBand; no near-field
// correction is applied. The decode itself is a single full-band
// matrix multiply.
func (d *BFormatDecoder) Process(ambi [][]float32, out [][]float32, frames int) {
	in := mat.NewDense(d.numAmbi, frames, nil)
	for c := 0; c < d.numAmbi && c < len(ambi); c++ {
		for i := 0; i < frames && i < len(ambi[c]); i++ {
			in.Set(c, i, float64(ambi[c][i]))
		}
	}

	if d.dualBand {
		d.processDualBand(in, frames)
	}

	result := mat.NewDense(d.numSpeakers, frames, nil)
	result.Mul(d.matrix, in)

	for s := 0; s < d.numSpeakers && s < len(out); s++ {
		for i := 0; i < frames && i < len(out[s]); i++ {
			out[s][i] = float32(result.At(s, i))
		}
	}
}

// processDualBand splits the W channel (ACN 0) into high/low bands
// and rescales them independently, matching the dual-band decoder's
// differing order-0/order-N gains.
func (d *BFormatDecoder) processDualBand(in *mat.Dense, frames int) {
	w := make([]float32, frames)
	for i := 0; i < frames; i++ {
		w[i] = float32(in.At(0, i))
	}
	hf := make([]float32, frames)
	lf := make([]float32, frames)
	d.xover.Process(hf, lf, w)
	for i := 0; i < frames; i++ {
		in.Set(0, i, float64(hf[i]*d.hfScale+lf[i]*d.lfScale))
	}
}

// UpSample injects a first-order ambisonic signal (4 channels) into a
// higher-order bus, counter-scaling the extra bands to zero so a
// first-order source doesn't bleed energy into higher-order channels
// it never had (§4.5 supplemented feature, mirrors
// AmbiUpsampler::upSample).
func UpSample(foa [][]float32, dst [][]float32, frames int) {
	for c := 0; c < 4 && c < len(dst); c++ {
		src := foa[c]
		out := dst[c]
		for i := 0; i < frames && i < len(src) && i < len(out); i++ {
			out[i] = src[i]
		}
	}
	for c := 4; c < len(dst); c++ {
		clearFloat32(dst[c])
	}
}
