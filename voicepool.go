package alsoft

// voicepool.go - the bounded voice pool (§3, §5, §9): a Treiber stack
// of idle *Voice, allocated up front so neither side allocates from
// the general heap on the audio thread. Release can happen from
// either side (mixer on exhaustion, API on rewind/delete); allocation
// only ever happens from the API side.

import "sync/atomic"

type voiceNode struct {
	voice *Voice
	next  atomic.Pointer[voiceNode]
}

// VoicePool is a fixed-capacity, lock-free free list of *Voice.
type VoicePool struct {
	all  []*Voice
	head atomic.Pointer[voiceNode]
}

// NewVoicePool preallocates n voices and pushes them all onto the
// free stack.
func NewVoicePool(n int) *VoicePool {
	p := &VoicePool{all: make([]*Voice, n)}
	for i := range p.all {
		p.all[i] = newVoice()
		p.push(p.all[i])
	}
	return p
}

func (p *VoicePool) push(v *Voice) {
	n := &voiceNode{voice: v}
	for {
		old := p.head.Load()
		n.next.Store(old)
		if p.head.CompareAndSwap(old, n) {
			return
		}
	}
}

// Acquire pops an idle voice off the pool. Returns nil if the pool is
// exhausted; the caller (an API thread) should then apply the
// source-stealing policy of §7: steal the oldest non-playing voice,
// then the lowest-priority playing one.
func (p *VoicePool) Acquire() *Voice {
	for {
		old := p.head.Load()
		if old == nil {
			return nil
		}
		next := old.next.Load()
		if p.head.CompareAndSwap(old, next) {
			return old.voice
		}
	}
}

// Release returns v to the pool. Safe to call from the mixer (on
// exhaustion) or an API thread (on stop/rewind/delete); v must
// already be idle (release() called) before this.
func (p *VoicePool) Release(v *Voice) {
	p.push(v)
}

// Voices returns every voice the pool owns, playing or not - used by
// the pipeline driver to iterate active voices each quantum.
func (p *VoicePool) Voices() []*Voice { return p.all }

// Steal implements the §7 resource-exhausted fallback: first try the
// oldest idle voice (there shouldn't be one if Acquire just failed,
// but a race can free one between calls); failing that, steal the
// lowest-priority currently-playing voice so the caller can rebind it.
// Returns nil only if the pool is completely empty of voices, which
// can't happen for a pool built with NewVoicePool(n>0).
func (p *VoicePool) Steal() *Voice {
	if v := p.Acquire(); v != nil {
		return v
	}

	var lowest *Voice
	var lowestPriority int32
	for _, v := range p.all {
		if !v.Playing() {
			continue
		}
		pr := v.Priority()
		if lowest == nil || pr < lowestPriority {
			lowest = v
			lowestPriority = pr
		}
	}
	return lowest
}
