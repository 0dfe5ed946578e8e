package alsoft

// backend_wav.go - WAV file output (§6): renders quanta on demand and
// encodes them with go-audio/wav, which in turn writes the RIFF/WAVE
// container. The encoder is created with audio format 1, so the fmt
// chunk is plain PCM; no WAVE_FORMAT_EXTENSIBLE header is written.

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WavBackend renders a fixed number of quanta into an open WAV file.
type WavBackend struct {
	enc        *wav.Encoder
	ctx        *Context
	frameBytes int
	scratch    []byte
}

// NewWavBackend opens enc against w for the given device format.
func NewWavBackend(w io.WriteSeeker, sampleRate, channels, bitDepth int) *WavBackend {
	enc := wav.NewEncoder(w, sampleRate, bitDepth, channels, 1)
	return &WavBackend{enc: enc}
}

// Start binds ctx as the render source; WavBackend has no background
// pull thread, so rendering only happens inside RenderQuanta calls.
func (b *WavBackend) Start(ctx *Context) error {
	b.ctx = ctx
	b.frameBytes = bytesPerFrame(ctx.Device)
	b.scratch = make([]byte, BUFFERSIZE*b.frameBytes)
	return nil
}

// RenderQuanta renders n quanta and encodes them, a driving loop a
// caller runs explicitly (there's no live clock to pull against for
// file output).
func (b *WavBackend) RenderQuanta(n int) error {
	bitDepth := b.enc.BitDepth
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: b.ctx.Device.Channels, SampleRate: b.ctx.Device.SampleRate},
		Data:   make([]int, BUFFERSIZE*b.ctx.Device.Channels),
	}
	for i := 0; i < n; i++ {
		RenderQuantum(b.ctx, b.scratch)
		unpackPCM(b.scratch, buf.Data, bitDepth)
		if err := b.enc.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// unpackPCM decodes interleaved little-endian PCM bytes at the given
// bit depth into buf's int samples.
func unpackPCM(src []byte, dst []int, bitDepth int) {
	switch bitDepth {
	case 8:
		for i := range dst {
			dst[i] = int(src[i]) - 128
		}
	case 32:
		for i := range dst {
			off := i * 4
			dst[i] = int(int32(uint32(src[off]) | uint32(src[off+1])<<8 | uint32(src[off+2])<<16 | uint32(src[off+3])<<24))
		}
	default: // 16
		for i := range dst {
			off := i * 2
			dst[i] = int(int16(uint16(src[off]) | uint16(src[off+1])<<8))
		}
	}
}

// Stop is a no-op for a quantum-driven file backend. Close closes the
// underlying *wav.Encoder, which finalizes the RIFF header.
func (b *WavBackend) Stop()  {}
func (b *WavBackend) Close() { _ = b.enc.Close() }
