package solution

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ayusman/cubescan/internal/cube"
)

// Title heads the rendered solution block.
const Title = "RUBIK'S CUBE SOLUTION"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	blockStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

// Formatter turns moves into "<FACE>/<COLOR> <direction>" steps.
type Formatter struct {
	names map[cube.Facelet]string
}

// NewFormatter names each face after its slot and the center color the
// scheme puts there, e.g. "UP/WHITE".
func NewFormatter(scheme cube.Scheme) *Formatter {
	f := &Formatter{names: make(map[cube.Facelet]string, len(cube.Slots))}
	for _, slot := range cube.Slots {
		face := slot.Facelet()
		name := face.Name()
		if c, ok := scheme.ColorOf(slot); ok {
			name += "/" + c.Name()
		}
		f.names[face] = name
	}
	return f
}

// DefaultFormatter uses the default scheme.
func DefaultFormatter() *Formatter {
	return NewFormatter(cube.DefaultScheme())
}

// Step describes a single move.
func (f *Formatter) Step(m Move) string {
	return f.names[m.Face] + " " + m.Turn.Phrase()
}

// Steps describes every move in order.
func (f *Formatter) Steps(moves []Move) []string {
	steps := make([]string, len(moves))
	for i, m := range moves {
		steps[i] = f.Step(m)
	}
	return steps
}

// Render returns the bordered solution block with numbered steps and the
// move total.
func (f *Formatter) Render(moves []Move) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(Title))
	b.WriteString("\n\n")
	for i, step := range f.Steps(moves) {
		b.WriteString(stepStyle.Render(fmt.Sprintf("%2d. %s", i+1, step)))
		b.WriteString("\n")
	}
	if len(moves) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(totalStyle.Render(fmt.Sprintf("Total moves: %d", len(moves))))

	return blockStyle.Render(b.String())
}
