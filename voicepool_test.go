package alsoft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoicePool_AcquireUpToCapacityThenExhausts(t *testing.T) {
	p := NewVoicePool(3)

	v1 := p.Acquire()
	v2 := p.Acquire()
	v3 := p.Acquire()
	assert.NotNil(t, v1)
	assert.NotNil(t, v2)
	assert.NotNil(t, v3)

	assert.Nil(t, p.Acquire(), "a fourth acquire on a 3-voice pool must fail")
}

func TestVoicePool_ReleaseMakesVoiceAcquirableAgain(t *testing.T) {
	p := NewVoicePool(1)
	v := p.Acquire()
	assert.NotNil(t, v)
	assert.Nil(t, p.Acquire())

	p.Release(v)
	got := p.Acquire()
	assert.Same(t, v, got)
}

func TestVoicePool_StealPrefersIdleVoiceOverAnyPlayingOne(t *testing.T) {
	p := NewVoicePool(2)
	v1 := p.Acquire()
	v1.bindSource(1, nil, 100)
	p.Release(v1)
	v1.release()

	v2 := p.Acquire()
	v2.bindSource(2, nil, 1)

	stolen := p.Steal()
	require.NotNil(t, stolen)
	assert.False(t, stolen.Playing(), "an idle voice must be preferred over stealing a playing one")
}

func TestVoicePool_StealFallsBackToLowestPriorityPlayingVoice(t *testing.T) {
	p := NewVoicePool(2)
	high := p.Acquire()
	high.bindSource(1, nil, 100)
	low := p.Acquire()
	low.bindSource(2, nil, 1)

	stolen := p.Steal()
	require.NotNil(t, stolen)
	assert.Same(t, low, stolen, "with no idle voice available, the lowest-priority playing voice must be stolen")
}

func TestVoice_IdleInvariant(t *testing.T) {
	v := newVoice()
	assert.False(t, v.Playing())
	assert.Equal(t, uint64(0), v.SourceID())

	v.bindSource(7, nil, 0)
	assert.True(t, v.Playing())
	assert.Equal(t, uint64(7), v.SourceID())

	v.release()
	assert.False(t, v.Playing())
	assert.Equal(t, uint64(0), v.SourceID())
}
