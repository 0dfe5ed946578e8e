package alsoft

// context.go - an API-side rendering context (§3, §4.9): owns a
// listener, the sources bound into voices through the device's voice
// pool, and the effect slots reachable for sends. A device can host
// multiple contexts, but §1 scopes this engine to one context per
// device rendering at a time (the Non-goal excludes context priority
// scheduling).

import "sync/atomic"

// Context is the top-level handle an application holds: it names a
// device to render through and tracks which source IDs are currently
// bound to a voice.
type Context struct {
	Device *Device

	connected atomic.Bool
	holdUpdates atomic.Bool

	nextSourceID atomic.Uint64
	nextSlotID   atomic.Uint64

	bindings map[uint64]*Voice
}

// NewContext creates a context rendering through device.
func NewContext(device *Device) *Context {
	c := &Context{Device: device, bindings: make(map[uint64]*Voice)}
	c.connected.Store(true)
	return c
}

// Connected reports whether the device backing this context is still
// live (§5: a disconnected device stops accepting new play requests
// but still drains pending events).
func (c *Context) Connected() bool { return c.connected.Load() }

// Disconnect marks the context's device as gone and posts a
// Disconnected event.
func (c *Context) Disconnect() {
	c.connected.Store(false)
	c.Device.Events.Post(AsyncEvent{Type: EventDisconnected})
}

// HoldUpdates reports whether CalcSourceParams/CalcListenerParams
// should skip consuming new updates this quantum (§4.9 step 3's "hold
// updates" gate, used while the API batches several property changes
// that must apply atomically together).
func (c *Context) HoldUpdates() bool { return c.holdUpdates.Load() }

// SetHoldUpdates sets or clears the hold-updates gate.
func (c *Context) SetHoldUpdates(hold bool) { c.holdUpdates.Store(hold) }

// Play acquires a voice for sourceID and binds queue to it, stealing
// the oldest idle voice - or, failing that, the lowest-priority
// playing voice - if the pool is exhausted (§7). Returns false if the
// context is disconnected or no voice could be found at all.
func (c *Context) Play(sourceID uint64, queue *BufferQueueItem, props *VoiceProps) bool {
	if !c.Connected() {
		return false
	}
	v := c.Device.Voices.Acquire()
	if v == nil {
		v = c.Device.Voices.Steal()
		if v != nil && v.Playing() {
			evictedID := v.SourceID()
			delete(c.bindings, evictedID)
			c.Device.Events.Post(AsyncEvent{Type: EventSourceStopped, SourceID: evictedID})
		}
	}
	if v == nil {
		return false
	}
	v.bindSource(sourceID, queue, props.Priority)
	block := *props
	v.Update.Publish(&block)
	c.bindings[sourceID] = v
	return true
}

// Stop releases sourceID's voice back to the pool and posts a
// SourceStopped event exactly once (§7, §8).
func (c *Context) Stop(sourceID uint64) {
	v, ok := c.bindings[sourceID]
	if !ok {
		return
	}
	delete(c.bindings, sourceID)
	if v.SourceID() != sourceID {
		// The mixer already released this voice when its queue ran out
		// (posting SourceStopped then), or it now plays another source.
		return
	}
	v.release()
	c.Device.Voices.Release(v)
	c.Device.Events.Post(AsyncEvent{Type: EventSourceStopped, SourceID: sourceID})
}

// NewSourceID allocates a fresh, never-reused source identifier.
func (c *Context) NewSourceID() uint64 { return c.nextSourceID.Add(1) }

// NewEffectSlot allocates and registers a new auxiliary effect slot on
// this context's device.
func (c *Context) NewEffectSlot() *AuxEffectSlot {
	id := c.nextSlotID.Add(1)
	slot := NewAuxEffectSlot(id, BUFFERSIZE)
	c.Device.Slots = append(c.Device.Slots, slot)
	return slot
}
