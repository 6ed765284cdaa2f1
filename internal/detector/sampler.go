package detector

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/cubescan/internal/cube"
)

// Overlay drawing settings.
var (
	gridColor  = color.RGBA{0, 0, 0, 0}
	labelColor = color.RGBA{0, 0, 0, 0}
)

const (
	gridThickness  = 2
	labelScale     = 0.5
	labelThickness = 2
)

// FaceDetector samples the center pixel of each grid cell and classifies it.
type FaceDetector struct {
	config     Config
	classifier *Classifier
}

// NewFaceDetector creates a FaceDetector for the given configuration.
func NewFaceDetector(config Config) *FaceDetector {
	return &FaceDetector{
		config:     config,
		classifier: NewClassifier(config.Thresholds),
	}
}

// Classifier returns the color classifier in use.
func (d *FaceDetector) Classifier() *Classifier {
	return d.classifier
}

// Detect implements Detector.
//
// All nine pixels are read before anything is drawn, so overlays from one
// cell can never leak into the sample of another.
func (d *FaceDetector) Detect(frame *gocv.Mat) (cube.Reading, gocv.Mat) {
	if frame == nil || frame.Empty() {
		return nil, gocv.NewMat()
	}

	bgr := toBGR(frame)
	defer bgr.Close()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(bgr, &hsv, gocv.ColorBGRToHSV)

	annotated := bgr.Clone()

	cells := d.config.Cells(bgr.Cols(), bgr.Rows())
	if len(cells) == 0 {
		return nil, annotated
	}

	reading := make(cube.Reading, 0, len(cells))
	for _, cell := range cells {
		c := cellCenter(cell)
		px := bgr.GetVecbAt(c.Y, c.X)
		hv := hsv.GetVecbAt(c.Y, c.X)
		label := d.classifier.ClassifyHSV(
			BGR{B: px[0], G: px[1], R: px[2]},
			HSV{H: hv[0], S: hv[1], V: hv[2]},
		)
		reading = append(reading, label)
	}

	for i, cell := range cells {
		c := cellCenter(cell)
		gocv.Rectangle(&annotated, cell, gridColor, gridThickness)
		gocv.PutText(&annotated, reading[i].String(), image.Pt(c.X-10, c.Y+5),
			gocv.FontHersheySimplex, labelScale, labelColor, labelThickness)
	}

	return reading, annotated
}

// toBGR returns a three-channel BGR copy of frame.
func toBGR(frame *gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	switch frame.Channels() {
	case 1:
		gocv.CvtColor(*frame, &out, gocv.ColorGrayToBGR)
	case 4:
		gocv.CvtColor(*frame, &out, gocv.ColorBGRAToBGR)
	default:
		frame.CopyTo(&out)
	}
	return out
}
