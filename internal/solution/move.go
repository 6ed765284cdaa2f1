// Package solution parses raw solver output into moves and renders them
// as operator instructions.
package solution

import (
	"strings"

	"github.com/ayusman/cubescan/internal/cube"
)

// Turn is the amount a face is turned, in the solver's digit encoding.
type Turn int

const (
	Clockwise        Turn = 1 // 90 degrees
	Half             Turn = 2 // 180 degrees
	CounterClockwise Turn = 3 // 90 degrees the other way
)

// Phrase returns the operator wording for t.
func (t Turn) Phrase() string {
	switch t {
	case Clockwise:
		return "clockwise 90°"
	case Half:
		return "180°"
	case CounterClockwise:
		return "counter-clockwise 90°"
	default:
		return ""
	}
}

// Move is one face turn.
type Move struct {
	Face cube.Facelet
	Turn Turn
}

// Notation returns standard cube notation: R, U2, F'.
func (m Move) Notation() string {
	switch m.Turn {
	case Half:
		return m.Face.String() + "2"
	case CounterClockwise:
		return m.Face.String() + "'"
	default:
		return m.Face.String()
	}
}

func (m Move) String() string {
	return m.Notation()
}

// Parse converts raw solver output such as "R1 U2 F3 (3f)" into moves.
// Parentheses are stripped, tokens ending in "f" (the move-count suffix)
// are dropped, and any token whose first two characters are not a face
// letter and a turn digit is skipped.
func Parse(raw string) []Move {
	cleaned := strings.NewReplacer("(", "", ")", "").Replace(raw)

	var moves []Move
	for _, tok := range strings.Fields(cleaned) {
		if strings.HasSuffix(tok, "f") || len(tok) < 2 {
			continue
		}
		face, ok := parseFace(tok[0])
		if !ok {
			continue
		}
		turn, ok := parseTurn(tok[1])
		if !ok {
			continue
		}
		moves = append(moves, Move{Face: face, Turn: turn})
	}
	return moves
}

// Notation joins moves in standard notation separated by spaces.
func Notation(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}
	return strings.Join(parts, " ")
}

func parseFace(b byte) (cube.Facelet, bool) {
	switch f := cube.Facelet(b); f {
	case cube.FaceU, cube.FaceD, cube.FaceB, cube.FaceR, cube.FaceL, cube.FaceF:
		return f, true
	default:
		return 0, false
	}
}

func parseTurn(b byte) (Turn, bool) {
	switch t := Turn(b - '0'); t {
	case Clockwise, Half, CounterClockwise:
		return t, true
	default:
		return 0, false
	}
}
