package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Motion detection constants.
const (
	// BlurSize is the Gaussian kernel applied before differencing.
	BlurSize = 21
	// DiffThreshold is the per-pixel gray difference that counts as change.
	DiffThreshold = 25
)

// MotionDetector reports whether the cube is moving inside the sampling
// grid, using frame differencing over a blurred grayscale region. It only
// drives the "hold steady" hint; captures are never blocked on it.
type MotionDetector struct {
	threshold   float64
	prevGray    gocv.Mat
	prevSize    image.Point
	initialized bool
	mu          sync.Mutex
}

// NewMotionDetector creates a MotionDetector. threshold is the percentage
// of region pixels that must change between frames to count as motion.
func NewMotionDetector(threshold float64) *MotionDetector {
	return &MotionDetector{
		threshold: threshold,
		prevGray:  gocv.NewMat(),
	}
}

// Detect compares region of frame with the same region of the previous
// frame and returns whether it moved and the percentage that changed.
// An empty region means the whole frame. The first frame, and any frame
// whose region size differs from the last one, only sets the baseline.
func (m *MotionDetector) Detect(frame *gocv.Mat, region image.Rectangle) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	bounds := image.Rect(0, 0, frame.Cols(), frame.Rows())
	region = region.Intersect(bounds)
	if region.Empty() {
		region = bounds
	}

	roi := frame.Region(region)
	defer roi.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	if roi.Channels() > 1 {
		gocv.CvtColor(roi, &gray, gocv.ColorBGRToGray)
	} else {
		roi.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(BlurSize, BlurSize), 0, 0, gocv.BorderDefault)

	size := region.Size()
	if !m.initialized || size != m.prevSize {
		blurred.CopyTo(&m.prevGray)
		m.prevSize = size
		m.initialized = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, DiffThreshold, 255, gocv.ThresholdBinary)

	changed := float64(gocv.CountNonZero(thresh)) / float64(thresh.Rows()*thresh.Cols()) * 100.0

	blurred.CopyTo(&m.prevGray)

	return changed > m.threshold, changed
}

// Reset drops the baseline frame.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prevGray.Close()
	m.prevGray = gocv.NewMat()
	m.prevSize = image.Point{}
	m.initialized = false
}

// Close releases resources used by the motion detector.
func (m *MotionDetector) Close() {
	m.Reset()
}

// SetThreshold sets the change percentage. Values less than or equal to 0
// are ignored.
func (m *MotionDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.threshold = threshold
}

// bounds returns the smallest rectangle covering rects.
func bounds(rects []image.Rectangle) image.Rectangle {
	var r image.Rectangle
	for _, c := range rects {
		r = r.Union(c)
	}
	return r
}
