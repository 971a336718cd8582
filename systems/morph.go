package systems

import "sync/atomic"

// Morph names one of the two morph targets.
type Morph uint8

const (
	MorphA Morph = iota
	MorphB
)

// Other returns the opposite target.
func (m Morph) Other() Morph {
	if m == MorphA {
		return MorphB
	}
	return MorphA
}

func (m Morph) String() string {
	if m == MorphA {
		return "A"
	}
	return "B"
}

// MorphSwitch selects which target particles are pulled toward.
//
// Trigger may be called from any goroutine (input handlers, timers). Resolve
// is called once per step by the goroutine that owns the simulation. Triggers
// arriving between two resolves coalesce by parity: an even number cancels out,
// an odd number toggles once.
type MorphSwitch struct {
	active  atomic.Uint32
	pending atomic.Int64
	toggles atomic.Int64
}

// NewMorphSwitch returns a switch pointing at initial.
func NewMorphSwitch(initial Morph) *MorphSwitch {
	s := &MorphSwitch{}
	s.active.Store(uint32(initial))
	return s
}

// Trigger requests a toggle.
func (s *MorphSwitch) Trigger() {
	s.pending.Add(1)
}

// Pending returns the number of unresolved triggers.
func (s *MorphSwitch) Pending() int64 {
	return s.pending.Load()
}

// Resolve applies pending triggers and returns the active target and whether
// it changed.
func (s *MorphSwitch) Resolve() (Morph, bool) {
	n := s.pending.Swap(0)
	cur := Morph(s.active.Load())
	if n%2 == 0 {
		return cur, false
	}
	next := cur.Other()
	s.active.Store(uint32(next))
	s.toggles.Add(1)
	return next, true
}

// Active returns the current target.
func (s *MorphSwitch) Active() Morph {
	return Morph(s.active.Load())
}

// Toggles returns how many times Resolve has changed the target.
func (s *MorphSwitch) Toggles() int64 {
	return s.toggles.Load()
}
