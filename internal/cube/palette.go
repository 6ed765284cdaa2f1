package cube

import (
	"fmt"
	"strings"
)

// Palette rewrites scan-palette colors into solver-palette letters.
type Palette map[Color]Facelet

// DefaultPalette is the palette of DefaultScheme:
// W→U, Y→D, O→B, B→R, G→L, R→F.
func DefaultPalette() Palette {
	return DefaultScheme().Palette()
}

// Translate rewrites every character of a scan-palette string. A character
// outside the palette is a defect upstream and is reported with its
// position.
func (p Palette) Translate(colors string) (string, error) {
	var b strings.Builder
	b.Grow(len(colors))
	for i := 0; i < len(colors); i++ {
		f, ok := p[Color(colors[i])]
		if !ok {
			return "", fmt.Errorf("%w: %q at position %d", ErrUnknownColor, colors[i], i)
		}
		b.WriteByte(byte(f))
	}
	return b.String(), nil
}

// Validate checks the structural invariants a solver relies on: 54
// letters, nine of each face letter, and centers in U R F D L B order.
// It does not check that the cube is physically reachable.
func Validate(facelets string) error {
	if len(facelets) != FaceletCount {
		return fmt.Errorf("%w: got %d, want %d", ErrInvalidLength, len(facelets), FaceletCount)
	}

	counts := make(map[Facelet]int, 6)
	for i := 0; i < len(facelets); i++ {
		counts[Facelet(facelets[i])]++
	}
	for _, slot := range Slots {
		if n := counts[slot.Facelet()]; n != FaceletsPerFace {
			return fmt.Errorf("%w: %s appears %d times", ErrInvalidCounts, slot.Facelet(), n)
		}
	}

	for i, slot := range Slots {
		center := Facelet(facelets[i*FaceletsPerFace+CenterIndex])
		if center != slot.Facelet() {
			return fmt.Errorf("%w: %s center is %s", ErrInvalidCenter, slot, center)
		}
	}

	return nil
}
