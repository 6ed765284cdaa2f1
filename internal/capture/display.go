package capture

import (
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Key codes understood by a session.
const (
	KeyNone      = -1
	KeyCapture   = ' '
	KeyConfirm   = '\r'
	KeyConfirmLF = '\n'
	KeyQuit      = 'q'
)

// Display shows annotated frames and polls the keyboard.
type Display interface {
	Show(frame gocv.Mat)
	// WaitKey waits up to delay for a key press and returns its code, or
	// KeyNone.
	WaitKey(delay time.Duration) int
	Close() error
}

// FrameSink receives every annotated frame a session shows. The frame is
// only valid during the call.
type FrameSink interface {
	PublishFrame(frame *gocv.Mat)
}

// windowDisplay is an OpenCV HighGUI window.
type windowDisplay struct {
	window *gocv.Window
}

// NewWindow opens a preview window titled name.
func NewWindow(name string) Display {
	return &windowDisplay{window: gocv.NewWindow(name)}
}

func (d *windowDisplay) Show(frame gocv.Mat) {
	d.window.IMShow(frame)
}

func (d *windowDisplay) WaitKey(delay time.Duration) int {
	ms := int(delay / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	key := d.window.WaitKey(ms)
	if key < 0 {
		return KeyNone
	}
	return key & 0xFF
}

func (d *windowDisplay) Close() error {
	return d.window.Close()
}

// MockDisplay replays a scripted key sequence for testing. Each WaitKey
// consumes one entry; once the script runs out it answers KeyQuit so a
// looping camera can never spin forever.
type MockDisplay struct {
	keys   []int
	shown  int
	closed bool
	mu     sync.Mutex
}

// NewMockDisplay returns a MockDisplay that will press keys in order.
// Use KeyNone for a frame with no key press.
func NewMockDisplay(keys ...int) *MockDisplay {
	return &MockDisplay{keys: keys}
}

func (d *MockDisplay) Show(frame gocv.Mat) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shown++
}

func (d *MockDisplay) WaitKey(delay time.Duration) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.keys) == 0 {
		return KeyQuit
	}
	key := d.keys[0]
	d.keys = d.keys[1:]
	return key
}

func (d *MockDisplay) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Push appends keys to the script.
func (d *MockDisplay) Push(keys ...int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys = append(d.keys, keys...)
}

// Shown returns how many frames have been displayed.
func (d *MockDisplay) Shown() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shown
}

// Remaining returns how many scripted keys are left.
func (d *MockDisplay) Remaining() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.keys)
}
