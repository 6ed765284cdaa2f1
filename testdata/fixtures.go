// Package testdata builds synthetic camera frames for tests.
package testdata

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gocv.io/x/gocv"

	"github.com/ayusman/cubescan/internal/cube"
)

// Frame size used by the fixtures.
const (
	FrameWidth  = 640
	FrameHeight = 480
)

// Reference sticker colors. Each one classifies to its own label with the
// default thresholds.
var Reference = map[cube.Color]color.RGBA{
	cube.White:  {R: 255, G: 255, B: 255},
	cube.Yellow: {R: 255, G: 255, B: 0},
	cube.Orange: {R: 255, G: 128, B: 0},
	cube.Red:    {R: 255, G: 0, B: 0},
	cube.Green:  {R: 0, G: 255, B: 0},
	cube.Blue:   {R: 0, G: 0, B: 255},
}

// Background is the color of everything outside the grid.
var Background = color.RGBA{R: 90, G: 90, B: 90}

// FaceFrame paints reading into cells of a FrameWidth×FrameHeight frame.
// The caller must close the returned Mat.
func FaceFrame(cells []image.Rectangle, reading cube.Reading) (*gocv.Mat, error) {
	if len(cells) != len(reading) {
		return nil, fmt.Errorf("fixture: %d cells for %d colors", len(cells), len(reading))
	}

	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(Background.B), float64(Background.G), float64(Background.R), 0),
		FrameHeight, FrameWidth, gocv.MatTypeCV8UC3,
	)

	for i, cell := range cells {
		c, ok := Reference[reading[i]]
		if !ok {
			mat.Close()
			return nil, fmt.Errorf("fixture: no reference color for %q", reading[i])
		}
		gocv.Rectangle(&mat, cell, c, -1)
	}

	return &mat, nil
}

// Uniform returns a reading of nine stickers of c.
func Uniform(c cube.Color) cube.Reading {
	r, _ := cube.ParseReading(strings.Repeat(c.String(), cube.FaceletsPerFace))
	return r
}

// SolvedFaces returns one uniform reading per color of scheme, keyed by slot.
func SolvedFaces(scheme cube.Scheme) map[cube.Slot]cube.Reading {
	out := make(map[cube.Slot]cube.Reading, len(scheme))
	for c, slot := range scheme {
		out[slot] = Uniform(c)
	}
	return out
}
