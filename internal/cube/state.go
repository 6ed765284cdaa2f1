package cube

import (
	"fmt"
	"strings"
)

// State accumulates scanned faces by slot. A slot is bound at most once;
// binding an occupied slot is rejected rather than overwriting it.
//
// State is not safe for concurrent use. The scan loop owns it.
type State struct {
	faces map[Slot]Reading
	order []Slot
}

// NewState returns an empty scan state.
func NewState() *State {
	return &State{
		faces: make(map[Slot]Reading, len(Slots)),
		order: make([]Slot, 0, len(Slots)),
	}
}

// Bind records reading for slot. It returns ErrSlotBound if the slot
// already holds a reading and ErrInvalidLength if the reading is not a
// full face.
func (s *State) Bind(slot Slot, r Reading) error {
	if slot < SlotTop || slot > SlotBack {
		return fmt.Errorf("cube: bind to %s", slot)
	}
	if len(r) != FaceletsPerFace {
		return ErrInvalidLength
	}
	if _, ok := s.faces[slot]; ok {
		return fmt.Errorf("%w: %s", ErrSlotBound, slot)
	}
	s.faces[slot] = r.Clone()
	s.order = append(s.order, slot)
	return nil
}

// Has reports whether slot is bound.
func (s *State) Has(slot Slot) bool {
	_, ok := s.faces[slot]
	return ok
}

// Reading returns the reading bound to slot.
func (s *State) Reading(slot Slot) (Reading, bool) {
	r, ok := s.faces[slot]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// Len returns the number of bound slots.
func (s *State) Len() int {
	return len(s.faces)
}

// Complete reports whether all six slots are bound.
func (s *State) Complete() bool {
	return len(s.faces) == len(Slots)
}

// Completed returns bound slots in the order they were bound.
func (s *State) Completed() []Slot {
	out := make([]Slot, len(s.order))
	copy(out, s.order)
	return out
}

// Remaining returns unbound slots in assembly order.
func (s *State) Remaining() []Slot {
	var out []Slot
	for _, slot := range Slots {
		if !s.Has(slot) {
			out = append(out, slot)
		}
	}
	return out
}

// CubeString concatenates the six readings in assembly order
// (TOP, RIGHT, FRONT, BOTTOM, LEFT, BACK), each row-major.
func (s *State) CubeString() (string, error) {
	if !s.Complete() {
		return "", fmt.Errorf("%w: missing %s", ErrIncomplete, JoinSlots(s.Remaining()))
	}
	var b strings.Builder
	b.Grow(FaceletCount)
	for _, slot := range Slots {
		b.WriteString(s.faces[slot].String())
	}
	return b.String(), nil
}
