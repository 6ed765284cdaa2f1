package solution

import (
	"strings"
	"testing"

	"github.com/ayusman/cubescan/internal/cube"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"with move count", "(R1 U2 F3 20f)", "R U2 F'"},
		{"trailing count", "D3 L1 B2 (3f)", "D' L B2"},
		{"empty", "", ""},
		{"only count", "(0f)", ""},
		{"unknown face dropped", "X1 R1", "R"},
		{"unknown digit dropped", "R4 U0 F1", "F"},
		{"short token dropped", "R U1", "U"},
		{"extra whitespace", "  R1\tU3\n", "R U'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Notation(Parse(tt.raw)); got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParse_MoveFields(t *testing.T) {
	moves := Parse("(R1 U2 F3 20f)")
	if len(moves) != 3 {
		t.Fatalf("expected 3 moves, got %d", len(moves))
	}

	want := []Move{
		{Face: cube.FaceR, Turn: Clockwise},
		{Face: cube.FaceU, Turn: Half},
		{Face: cube.FaceF, Turn: CounterClockwise},
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("move %d = %+v, want %+v", i, moves[i], want[i])
		}
	}
}

func TestFormatter_Steps(t *testing.T) {
	f := DefaultFormatter()

	tests := []struct {
		raw  string
		want string
	}{
		{"U1", "UP/WHITE clockwise 90°"},
		{"D2", "DOWN/YELLOW 180°"},
		{"B3", "BACK/ORANGE counter-clockwise 90°"},
		{"R1", "RIGHT/BLUE clockwise 90°"},
		{"L2", "LEFT/GREEN 180°"},
		{"F3", "FRONT/RED counter-clockwise 90°"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			steps := f.Steps(Parse(tt.raw))
			if len(steps) != 1 || steps[0] != tt.want {
				t.Errorf("Steps(%s) = %v, want [%s]", tt.raw, steps, tt.want)
			}
		})
	}
}

func TestFormatter_FollowsScheme(t *testing.T) {
	scheme := cube.Scheme{
		cube.White:  cube.SlotTop,
		cube.Yellow: cube.SlotBottom,
		cube.Green:  cube.SlotFront,
		cube.Blue:   cube.SlotBack,
		cube.Orange: cube.SlotRight,
		cube.Red:    cube.SlotLeft,
	}

	got := NewFormatter(scheme).Step(Move{Face: cube.FaceF, Turn: Clockwise})
	if got != "FRONT/GREEN clockwise 90°" {
		t.Errorf("Step() = %q", got)
	}
}

func TestFormatter_Render(t *testing.T) {
	out := DefaultFormatter().Render(Parse("(R1 U2 F3 20f)"))

	for _, want := range []string{
		Title,
		" 1. RIGHT/BLUE clockwise 90°",
		" 2. UP/WHITE 180°",
		" 3. FRONT/RED counter-clockwise 90°",
		"Total moves: 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q in:\n%s", want, out)
		}
	}

	if strings.Contains(out, " 4. ") {
		t.Errorf("Render() numbered past the last move:\n%s", out)
	}
}

func TestFormatter_RenderEmpty(t *testing.T) {
	out := DefaultFormatter().Render(nil)

	if !strings.Contains(out, "Total moves: 0") {
		t.Errorf("Render(nil) = %q", out)
	}
}

func TestMove_Notation(t *testing.T) {
	tests := []struct {
		m    Move
		want string
	}{
		{Move{Face: cube.FaceR, Turn: Clockwise}, "R"},
		{Move{Face: cube.FaceU, Turn: Half}, "U2"},
		{Move{Face: cube.FaceF, Turn: CounterClockwise}, "F'"},
	}
	for _, tt := range tests {
		if got := tt.m.Notation(); got != tt.want {
			t.Errorf("Notation() = %q, want %q", got, tt.want)
		}
	}
}
