package cube

// Scheme maps a face's center color to the slot that face occupies in the
// cube net. Centers never move, so the center alone identifies a face.
type Scheme map[Color]Slot

// DefaultScheme is the standard Western color scheme with white on top and
// red in front.
func DefaultScheme() Scheme {
	return Scheme{
		White:  SlotTop,
		Green:  SlotLeft,
		Red:    SlotFront,
		Yellow: SlotBottom,
		Blue:   SlotRight,
		Orange: SlotBack,
	}
}

// Validate checks that the scheme assigns six distinct palette colors to
// six distinct slots.
func (s Scheme) Validate() error {
	if len(s) != len(Slots) {
		return ErrInvalidScheme
	}
	seen := make(map[Slot]bool, len(Slots))
	for c, slot := range s {
		if !c.Valid() || slot < SlotTop || slot > SlotBack || seen[slot] {
			return ErrInvalidScheme
		}
		seen[slot] = true
	}
	return nil
}

// Identify returns the slot for a scanned face by its center color.
// It returns SlotUnknown when the reading is not exactly nine colors or the
// center color is not part of the scheme.
func (s Scheme) Identify(r Reading) Slot {
	center, ok := r.Center()
	if !ok {
		return SlotUnknown
	}
	slot, ok := s[center]
	if !ok {
		return SlotUnknown
	}
	return slot
}

// ColorOf returns the center color assigned to slot.
func (s Scheme) ColorOf(slot Slot) (Color, bool) {
	for c, sl := range s {
		if sl == slot {
			return c, true
		}
	}
	return 0, false
}

// Palette derives the scan-to-solver letter map: every color becomes the
// letter of the face whose center it is.
func (s Scheme) Palette() Palette {
	p := make(Palette, len(s))
	for c, slot := range s {
		p[c] = slot.Facelet()
	}
	return p
}
