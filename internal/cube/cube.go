// Package cube models the facelet state of a 3x3x3 cube as it is scanned:
// scan-palette colors, per-face readings, face slots and the assembled
// facelet string handed to the solver.
package cube

import (
	"errors"
	"strings"
)

// Sentinel errors for the cube package.
var (
	ErrSlotBound     = errors.New("cube: slot already scanned")
	ErrIncomplete    = errors.New("cube: scan state incomplete")
	ErrUnknownColor  = errors.New("cube: unknown scan color")
	ErrInvalidLength = errors.New("cube: invalid facelet string length")
	ErrInvalidCounts = errors.New("cube: each face letter must appear 9 times")
	ErrInvalidCenter = errors.New("cube: center facelets out of order")
	ErrInvalidScheme = errors.New("cube: color scheme must map six colors onto six slots")
)

// FaceletsPerFace is the number of stickers on one face.
const FaceletsPerFace = 9

// FaceletCount is the length of a full facelet string.
const FaceletCount = 6 * FaceletsPerFace

// CenterIndex is the index of the center sticker within a Reading.
const CenterIndex = 4

// Color is a scan-palette color label, stored as its initial.
type Color byte

// Scan palette.
const (
	White  Color = 'W'
	Yellow Color = 'Y'
	Orange Color = 'O'
	Red    Color = 'R'
	Green  Color = 'G'
	Blue   Color = 'B'
)

// Colors lists the scan palette.
var Colors = []Color{White, Yellow, Orange, Red, Green, Blue}

// String returns the single-letter label.
func (c Color) String() string {
	return string(c)
}

// Name returns the upper-case color name, or "?" outside the palette.
func (c Color) Name() string {
	switch c {
	case White:
		return "WHITE"
	case Yellow:
		return "YELLOW"
	case Orange:
		return "ORANGE"
	case Red:
		return "RED"
	case Green:
		return "GREEN"
	case Blue:
		return "BLUE"
	default:
		return "?"
	}
}

// Valid reports whether c belongs to the scan palette.
func (c Color) Valid() bool {
	switch c {
	case White, Yellow, Orange, Red, Green, Blue:
		return true
	}
	return false
}

// ParseColor accepts a color initial or a full color name, case-insensitive.
func ParseColor(s string) (Color, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, c := range Colors {
		if s == c.String() || s == c.Name() {
			return c, nil
		}
	}
	return 0, ErrUnknownColor
}

// Facelet is a solver-palette letter: the face a sticker belongs to in the
// solved cube.
type Facelet byte

// Solver palette.
const (
	FaceU Facelet = 'U' // Up
	FaceD Facelet = 'D' // Down
	FaceB Facelet = 'B' // Back
	FaceR Facelet = 'R' // Right
	FaceL Facelet = 'L' // Left
	FaceF Facelet = 'F' // Front
)

func (f Facelet) String() string {
	return string(f)
}

// Name returns the upper-case face name, or "?" outside the palette.
func (f Facelet) Name() string {
	switch f {
	case FaceU:
		return "UP"
	case FaceD:
		return "DOWN"
	case FaceB:
		return "BACK"
	case FaceR:
		return "RIGHT"
	case FaceL:
		return "LEFT"
	case FaceF:
		return "FRONT"
	default:
		return "?"
	}
}

// Reading is one scanned face: nine colors in row-major order, top-left
// first, index 4 the center.
type Reading []Color

// String concatenates the color letters, e.g. "WWRGWBOYW".
func (r Reading) String() string {
	var b strings.Builder
	b.Grow(len(r))
	for _, c := range r {
		b.WriteByte(byte(c))
	}
	return b.String()
}

// Center returns the center color. ok is false when the reading is not a
// full face.
func (r Reading) Center() (c Color, ok bool) {
	if len(r) != FaceletsPerFace {
		return 0, false
	}
	return r[CenterIndex], true
}

// Clone returns an independent copy.
func (r Reading) Clone() Reading {
	if r == nil {
		return nil
	}
	out := make(Reading, len(r))
	copy(out, r)
	return out
}

// ParseReading converts a nine-letter string such as "WWWWWWWWW".
func ParseReading(s string) (Reading, error) {
	if len(s) != FaceletsPerFace {
		return nil, ErrInvalidLength
	}
	r := make(Reading, 0, FaceletsPerFace)
	for i := 0; i < len(s); i++ {
		c := Color(s[i])
		if !c.Valid() {
			return nil, ErrUnknownColor
		}
		r = append(r, c)
	}
	return r, nil
}

// Slot is a canonical face position in the unfolded cube net.
type Slot int

// Face slots, declared in facelet-string assembly order.
const (
	SlotTop Slot = iota
	SlotRight
	SlotFront
	SlotBottom
	SlotLeft
	SlotBack

	// SlotUnknown is returned when a reading cannot be placed.
	SlotUnknown Slot = -1
)

// Slots lists every slot in assembly order.
var Slots = [6]Slot{SlotTop, SlotRight, SlotFront, SlotBottom, SlotLeft, SlotBack}

func (s Slot) String() string {
	switch s {
	case SlotTop:
		return "TOP"
	case SlotRight:
		return "RIGHT"
	case SlotFront:
		return "FRONT"
	case SlotBottom:
		return "BOTTOM"
	case SlotLeft:
		return "LEFT"
	case SlotBack:
		return "BACK"
	default:
		return "UNKNOWN"
	}
}

// Facelet returns the solver letter for the face in this slot.
func (s Slot) Facelet() Facelet {
	switch s {
	case SlotTop:
		return FaceU
	case SlotRight:
		return FaceR
	case SlotFront:
		return FaceF
	case SlotBottom:
		return FaceD
	case SlotLeft:
		return FaceL
	case SlotBack:
		return FaceB
	default:
		return 0
	}
}

// ParseSlot accepts slot names like "TOP" or "back", case-insensitive.
func ParseSlot(s string) (Slot, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, slot := range Slots {
		if s == slot.String() {
			return slot, true
		}
	}
	return SlotUnknown, false
}

// JoinSlots renders slots as "TOP, RIGHT".
func JoinSlots(slots []Slot) string {
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}
