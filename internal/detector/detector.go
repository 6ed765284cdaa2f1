package detector

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/cubescan/internal/cube"
)

// Detector defines the interface for reading a cube face from a frame.
type Detector interface {
	// Detect samples the face grid of frame and returns the nine colors in
	// row-major order together with an annotated copy of the frame.
	// frame itself is not modified. The caller must close the returned Mat.
	Detect(frame *gocv.Mat) (cube.Reading, gocv.Mat)
}

// Config holds configuration options for face sampling.
type Config struct {
	// GridSize is the side of the square 3x3 sampling grid in pixels.
	GridSize int

	// BottomMargin is the gap between the grid and the bottom of the frame.
	BottomMargin int

	// Thresholds calibrates the color rules.
	Thresholds Thresholds
}

// DefaultConfig returns a Config with the stock grid and calibration.
func DefaultConfig() Config {
	return Config{
		GridSize:     300,
		BottomMargin: 30,
		Thresholds:   DefaultThresholds(),
	}
}

// Cells computes the nine sampling cells for a width×height frame in
// row-major order. The grid is centered horizontally and sits BottomMargin
// above the bottom edge; it shrinks to fit frames smaller than GridSize so
// every cell lies inside the frame. It returns nil for frames too small to
// hold a 3x3 grid.
func (c Config) Cells(width, height int) []image.Rectangle {
	size := c.GridSize
	if size > width {
		size = width
	}
	if size > height {
		size = height
	}
	cell := size / 3
	if cell < 1 {
		return nil
	}
	size = cell * 3

	startX := width/2 - size/2
	startY := height - size - c.BottomMargin
	if startY < 0 {
		startY = 0
	}

	cells := make([]image.Rectangle, 0, cube.FaceletsPerFace)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			x1 := startX + col*cell
			y1 := startY + row*cell
			cells = append(cells, image.Rect(x1, y1, x1+cell, y1+cell))
		}
	}
	return cells
}

// cellCenter returns the geometric center of r.
func cellCenter(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}
