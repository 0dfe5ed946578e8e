package alsoft

// slot.go - auxiliary effect slots (§3, §4.9, §9). EffectState
// abstracts the polymorphic reverb/chorus/distortion implementations
// that live outside this spec's scope (§1, §9 design note): the
// mixer only ever touches a slot's effect through this capability
// interface.

import (
	"fmt"
	"sync/atomic"
)

// EffectState is the capability set the mixer needs from any effect
// implementation (§9). Concrete DSP (reverb, chorus, ...) is out of
// scope; only this interface is specified.
type EffectState interface {
	// Update reconfigures the effect from newly-published properties
	// and the buses it should render into.
	Update(props *EffectProps, target EffectTarget)
	// Process renders frames of wetIn (the slot's ambisonic wet bus)
	// into whatever target the last Update call configured.
	Process(frames int, wetIn [][]float32)
}

// EffectTarget names where an EffectState should render: either
// another slot's wet bus, or the device's dry/FOA/real buses.
type EffectTarget struct {
	Dry    *MixBus
	FOAOut *MixBus
	Real   *MixBus
}

// EffectProps is a tagged union of effect parameters. Only the fields
// relevant to reverb-style room decay are modeled here (§4.5 needs
// them for send attenuation); other effect kinds carry opaque
// parameters the concrete EffectState is responsible for.
type EffectProps struct {
	Type EffectType

	RoomRolloffFactor  float32
	DecayTime          float32
	DecayHFRatio       float32
	DecayLFRatio       float32
	DecayHFLimit       bool
	AirAbsorptionGainHF float32

	Opaque any // effect-specific parameters for non-reverb kinds
}

// EffectType names the slot's effect kind.
type EffectType int

const (
	EffectNull EffectType = iota
	EffectReverb
	EffectOther
)

// SlotProps is the immutable snapshot of an API-side slot's
// parameters, published via Update[SlotProps] (§4.4).
type SlotProps struct {
	Gain        float32
	AuxSendAuto bool
	Target      *AuxEffectSlot // nil = render to device buses
	Type        EffectType
	Props       EffectProps
	State       EffectState // ownership transfers to the slot's Params on consume
}

// SlotParams is the mixer-side derived state for a slot, recomputed
// from the latest SlotProps (§4.9 CalcEffectSlotParams).
type SlotParams struct {
	Gain        float32
	AuxSendAuto bool
	Target      *AuxEffectSlot
	EffectType  EffectType
	EffectProps EffectProps
	State       EffectState

	RoomRolloff        float32
	DecayTime          float32
	DecayLFRatio       float32
	DecayHFRatio       float32
	DecayHFLimit       bool
	AirAbsorptionGainHF float32
}

// AuxEffectSlot is one auxiliary effect bus (§3).
type AuxEffectSlot struct {
	ID uint64

	Update Update[SlotProps]
	free   FreeList[SlotProps]

	Params SlotParams

	// WetBuffer is this slot's ambisonic wet mix bus, cleared once per
	// quantum before voices/effects write into it (§4.9 step 4).
	WetBuffer  [MaxAmbiChannels][]float32
	NumChannels int

	refCount atomic.Uint32

	// visiting/visited are DFS scratch state used only while
	// validating the routing DAG or computing a topological order;
	// never touched concurrently with mixing.
	visiting bool
	visited  bool
}

// NewAuxEffectSlot allocates a slot with a wet bus sized for order-1
// ambisonics (4 channels), matching OpenAL Soft's default aux slot
// format; callers needing higher-order sends can grow NumChannels
// before first use.
func NewAuxEffectSlot(id uint64, frames int) *AuxEffectSlot {
	s := &AuxEffectSlot{ID: id, NumChannels: 4}
	for i := 0; i < s.NumChannels; i++ {
		s.WetBuffer[i] = make([]float32, frames)
	}
	s.refCount.Store(1)
	return s
}

// ClearWetBuffer zeros the slot's wet bus for a new quantum (§4.9
// step 4).
func (s *AuxEffectSlot) ClearWetBuffer() {
	for c := 0; c < s.NumChannels; c++ {
		clearFloat32(s.WetBuffer[c])
	}
}

func clearFloat32(buf []float32) {
	for i := range buf {
		buf[i] = 0
	}
}

// CalcEffectSlotParams consumes a pending SlotProps update (if any)
// and recomputes SlotParams and the EffectState's routing target
// (§4.9). postRelease is called with an outgoing EffectState that must not
// be deleted on the mixer thread if its refcount hasn't dropped to
// zero (§5, §9): the caller (the pipeline driver) is expected to hand
// it to the async event channel via ReleaseEffectState instead of
// deleting it directly.
func (s *AuxEffectSlot) CalcEffectSlotParams(dryTarget, foaTarget, realTarget *MixBus, postRelease func(EffectState)) bool {
	props := s.Update.Consume()
	if props == nil {
		return false
	}

	s.Params.Gain = props.Gain
	s.Params.AuxSendAuto = props.AuxSendAuto
	s.Params.Target = props.Target
	s.Params.EffectType = props.Type
	s.Params.EffectProps = props.Props
	if props.Type == EffectReverb {
		s.Params.RoomRolloff = props.Props.RoomRolloffFactor
		s.Params.DecayTime = props.Props.DecayTime
		s.Params.DecayLFRatio = props.Props.DecayLFRatio
		s.Params.DecayHFRatio = props.Props.DecayHFRatio
		s.Params.DecayHFLimit = props.Props.DecayHFLimit
		s.Params.AirAbsorptionGainHF = props.Props.AirAbsorptionGainHF
	} else {
		s.Params.RoomRolloff = 0
		s.Params.DecayTime = 0
		s.Params.DecayLFRatio = 0
		s.Params.DecayHFRatio = 0
		s.Params.DecayHFLimit = false
		s.Params.AirAbsorptionGainHF = 1
	}

	oldState := s.Params.State
	s.Params.State = props.State

	if oldState != nil {
		// Never let the refcount reach zero on the mixer thread; hand
		// the final release off to the API thread instead (§5, §9).
		for {
			old := s.refCount.Load()
			if old <= 1 {
				if postRelease != nil {
					postRelease(oldState)
				}
				break
			}
			if s.refCount.CompareAndSwap(old, old-1) {
				break
			}
		}
	}

	var target EffectTarget
	if s.Params.Target != nil {
		bus := s.Params.Target.wetAsBus()
		target = EffectTarget{Dry: &bus}
	} else {
		target = EffectTarget{Dry: dryTarget, FOAOut: foaTarget, Real: realTarget}
	}
	if s.Params.State != nil {
		s.Params.State.Update(&s.Params.EffectProps, target)
	}

	s.free.Push(props)
	return true
}

// wetAsBus adapts the slot's wet buffer array into a MixBus view for
// routing another slot's output into it.
func (s *AuxEffectSlot) wetAsBus() MixBus {
	return MixBus{Channels: s.WetBuffer[:s.NumChannels]}
}

// SortEffectSlots topologically sorts slots so each precedes any slot
// that (transitively) targets it, per §4.9 step 6 / §9. Returns an
// error if the Target chain contains a cycle - routing a slot to
// itself, directly or transitively, is rejected at publish time in a
// real API, but the mixer defends against it here too since it's the
// last line before an infinite process() loop.
func SortEffectSlots(slots []*AuxEffectSlot) ([]*AuxEffectSlot, error) {
	for _, s := range slots {
		s.visiting = false
		s.visited = false
	}
	out := make([]*AuxEffectSlot, 0, len(slots))
	var visit func(s *AuxEffectSlot) error
	visit = func(s *AuxEffectSlot) error {
		if s.visited {
			return nil
		}
		if s.visiting {
			return fmt.Errorf("alsoft: effect slot %d: %w", s.ID, cycleErr)
		}
		s.visiting = true
		if t := s.Params.Target; t != nil {
			if err := visit(t); err != nil {
				return err
			}
		}
		s.visiting = false
		s.visited = true
		out = append(out, s)
		return nil
	}
	for _, s := range slots {
		if err := visit(s); err != nil {
			return nil, err
		}
	}
	return out, nil
}

var cycleErr = fmt.Errorf("cyclic effect slot routing")
