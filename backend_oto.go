//go:build !headless

package alsoft

// backend_oto.go - live audio output via ebitengine/oto v3: the render
// quantum is produced on oto's own pull thread inside Read, with the
// *Context swapped in atomically so Start/Stop never need to touch the
// hot path under a lock.

import (
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

// OtoBackend drives a Context's render loop from oto's pull callback.
type OtoBackend struct {
	otoCtx *oto.Context
	player *oto.Player

	ctx atomic.Pointer[Context] // lock-free Read() hot path

	frameBytes int
	scratch    []byte

	started bool
	mutex   sync.Mutex
}

// NewOtoBackend opens an oto context at sampleRate with channels
// output channels of 16-bit PCM; callers wanting a
// different SampleType/Channels configuration should build their
// Device accordingly before calling Start.
func NewOtoBackend(sampleRate, channels int) (*OtoBackend, error) {
	opts := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   0,
	}
	otoCtx, ready, err := oto.NewContext(opts)
	if err != nil {
		return nil, err
	}
	<-ready
	return &OtoBackend{otoCtx: otoCtx}, nil
}

// Start binds ctx as the render source and begins playback.
func (b *OtoBackend) Start(ctx *Context) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.ctx.Store(ctx)
	b.frameBytes = bytesPerFrame(ctx.Device)
	b.scratch = make([]byte, BUFFERSIZE*b.frameBytes)
	if b.player == nil {
		b.player = b.otoCtx.NewPlayer(b)
	}
	if !b.started {
		b.player.Play()
		b.started = true
	}
	return nil
}

// Read implements io.Reader for oto's player: pulls render quanta from
// the bound context and copies converted bytes into p, looping until p
// is filled (oto may request more or less than one quantum's worth).
func (b *OtoBackend) Read(p []byte) (int, error) {
	ctx := b.ctx.Load()
	if ctx == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	written := 0
	for written < len(p) {
		RenderQuantum(ctx, b.scratch)
		n := copy(p[written:], b.scratch)
		written += n
		if n < len(b.scratch) {
			break
		}
	}
	return written, nil
}

// Stop halts playback without closing the underlying device.
func (b *OtoBackend) Stop() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.started && b.player != nil {
		b.player.Pause()
		b.started = false
	}
}

// Close stops playback and closes the player; the oto context itself
// is left open.
func (b *OtoBackend) Close() {
	b.Stop()
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.player != nil {
		b.player.Close()
		b.player = nil
	}
}
