package alsoft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBFormatDecoder_MatrixDimensionsMatchLayoutAndOrder(t *testing.T) {
	d := NewBFormatDecoder(LayoutStereo, NormN3D, false, 0)
	r, c := d.matrix.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, MaxAmbiChannels, c)
}

func TestBFormatDecoder_PureWDecodesIdenticallyToEverySpeaker(t *testing.T) {
	d := NewBFormatDecoder(Layout51, NormN3D, false, 0)
	frames := 8
	ambi := make([][]float32, MaxAmbiChannels)
	for c := range ambi {
		ambi[c] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		ambi[0][i] = 1
	}
	out := make([][]float32, 6)
	for s := range out {
		out[s] = make([]float32, frames)
	}

	d.Process(ambi, out, frames)

	for s := 1; s < len(out); s++ {
		for i := 0; i < frames; i++ {
			assert.InDelta(t, out[0][i], out[s][i], 1e-5, "a pure W signal must decode identically to every speaker")
		}
	}
}

func TestBFormatDecoder_SilenceInProducesSilenceOut(t *testing.T) {
	d := NewBFormatDecoder(LayoutQuad, NormN3D, true, 400.0/48000.0)
	frames := 16
	ambi := make([][]float32, MaxAmbiChannels)
	for c := range ambi {
		ambi[c] = make([]float32, frames)
	}
	out := make([][]float32, 4)
	for s := range out {
		out[s] = make([]float32, frames)
	}

	d.Process(ambi, out, frames)
	for _, ch := range out {
		for _, v := range ch {
			assert.Equal(t, float32(0), v)
		}
	}
}

func TestUpSample_CopiesFirstOrderAndZeroesHigherOrders(t *testing.T) {
	frames := 4
	foa := make([][]float32, 4)
	for c := range foa {
		foa[c] = make([]float32, frames)
		for i := range foa[c] {
			foa[c][i] = float32(c + 1)
		}
	}
	dst := make([][]float32, MaxAmbiChannels)
	for c := range dst {
		dst[c] = make([]float32, frames)
		for i := range dst[c] {
			dst[c][i] = 99 // pre-existing garbage that must be cleared
		}
	}

	UpSample(foa, dst, frames)

	for c := 0; c < 4; c++ {
		for i := 0; i < frames; i++ {
			assert.Equal(t, float32(c+1), dst[c][i])
		}
	}
	for c := 4; c < MaxAmbiChannels; c++ {
		for i := 0; i < frames; i++ {
			assert.Equal(t, float32(0), dst[c][i])
		}
	}
}
