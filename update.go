package alsoft

// update.go - lock-free update channel (§4.4): the API side builds a
// fresh property block and stores it into an entity's Update slot
// atomically (release); the mixer exchanges it out with nil
// (acquire) at quantum start and recycles the block to a free list
// (Treiber stack). Only the latest publish before a drain survives:
// real-time coalescing, not loss.
//
// Grounded on the atomic.Pointer hand-off in audio_backend_oto.go,
// generalized with Go generics to cover every mutable entity named in
// §3 (context, listener, voice, slot, voice-props, slot-props) with
// one implementation.

import "sync/atomic"

// Update is a single-slot atomic mailbox for one entity's latest
// property block.
type Update[T any] struct {
	slot atomic.Pointer[T]
}

// Publish stores a new block, replacing whatever was there before; the
// replaced block is dropped, not returned to a free list. Uses release ordering so every
// write the caller made before Publish is visible to whoever later
// observes the new pointer via Consume.
func (u *Update[T]) Publish(block *T) {
	u.slot.Store(block)
}

// Consume atomically takes the current block and clears the slot,
// using acquire ordering. Returns nil if no update is pending.
func (u *Update[T]) Consume() *T {
	return u.slot.Swap(nil)
}

// Peek returns the current block without clearing the slot, useful
// for a "force" recompute path that needs the last-known parameters
// even when nothing new was published this quantum.
func (u *Update[T]) Peek() *T {
	return u.slot.Load()
}

// FreeList is a Treiber stack of recycled property blocks. Push copies
// the block into a newly allocated node, so every push allocates on
// the calling thread (§5). Push may be called from
// either the API thread (props discarded by a fresh Publish) or the
// mixer thread (props consumed and no longer needed); Pop only from
// the side that needs a fresh block to fill in, normally the API
// thread.
type FreeList[T any] struct {
	head atomic.Pointer[node[T]]
}

type node[T any] struct {
	next  atomic.Pointer[node[T]]
	value T
}

// Push returns v to the free list for reuse.
func (f *FreeList[T]) Push(v *T) {
	n := &node[T]{value: *v}
	for {
		old := f.head.Load()
		n.next.Store(old)
		if f.head.CompareAndSwap(old, n) {
			return
		}
	}
}

// Pop removes and returns a recycled block, or nil if the free list is
// empty (the caller should then allocate a fresh one).
func (f *FreeList[T]) Pop() *T {
	for {
		old := f.head.Load()
		if old == nil {
			return nil
		}
		next := old.next.Load()
		if f.head.CompareAndSwap(old, next) {
			v := old.value
			return &v
		}
	}
}
