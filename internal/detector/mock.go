package detector

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/cubescan/internal/cube"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the readings returned frame by frame.
type MockDetector struct {
	readings []cube.Reading
	index    int
	calls    int
}

// NewMockDetector creates a MockDetector that returns readings in order,
// repeating the last one once the list is exhausted.
func NewMockDetector(readings ...cube.Reading) *MockDetector {
	return &MockDetector{readings: readings}
}

// SetReadings replaces the reading sequence and restarts it.
func (m *MockDetector) SetReadings(readings ...cube.Reading) {
	m.readings = readings
	m.index = 0
}

// Calls returns how many frames have been passed to Detect.
func (m *MockDetector) Calls() int {
	return m.calls
}

// Detect returns the next configured reading and a copy of frame.
func (m *MockDetector) Detect(frame *gocv.Mat) (cube.Reading, gocv.Mat) {
	m.calls++

	annotated := gocv.NewMat()
	if frame != nil && !frame.Empty() {
		frame.CopyTo(&annotated)
	}

	if len(m.readings) == 0 {
		return nil, annotated
	}

	r := m.readings[m.index]
	if m.index < len(m.readings)-1 {
		m.index++
	}
	return r.Clone(), annotated
}
