package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/cubescan/internal/cube"
	"github.com/ayusman/cubescan/internal/detector"
	"github.com/ayusman/cubescan/internal/logging"
)

// ErrCancelled is returned when a session ends without a confirmed face:
// the operator quit, the camera failed, or the context was cancelled.
var ErrCancelled = errors.New("capture: session cancelled")

// State is the capture session state.
type State int

const (
	AwaitingCapture State = iota
	Captured
	Confirmed
	Cancelled
)

func (s State) String() string {
	switch s {
	case AwaitingCapture:
		return "awaiting-capture"
	case Captured:
		return "captured"
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session has ended.
func (s State) Terminal() bool {
	return s == Confirmed || s == Cancelled
}

// Transition returns the state that follows pressing key in s.
// Capture while already captured is ignored; quit always cancels.
func Transition(s State, key int) State {
	if s.Terminal() {
		return s
	}
	switch key {
	case KeyQuit:
		return Cancelled
	case KeyCapture:
		if s == AwaitingCapture {
			return Captured
		}
	case KeyConfirm, KeyConfirmLF:
		if s == Captured {
			return Confirmed
		}
	}
	return s
}

// Banner text.
const (
	bannerAwaiting = "position cube face in grid, space to capture"
	bannerCaptured = "CAPTURED: %s - press ENTER to confirm"
	bannerQuit     = "q to quit"
	bannerSteady   = "hold steady"
)

var (
	colorBlack = color.RGBA{0, 0, 0, 0}
	colorGreen = color.RGBA{0, 255, 0, 0}
	colorAmber = color.RGBA{255, 160, 0, 0}
)

// SessionConfig holds the collaborators and tuning of a Session.
type SessionConfig struct {
	// Grid is used to restrict the steadiness check to the sampling grid.
	Grid detector.Config

	// KeyWait is how long each frame waits for a key press.
	KeyWait time.Duration

	// MotionThreshold is the percentage of grid pixels that must change
	// before the steadiness hint is shown. Zero disables the hint.
	MotionThreshold float64

	// Sink, when set, receives every annotated frame.
	Sink FrameSink

	// Out receives operator lines such as "captured: ...". Nil discards.
	Out io.Writer

	Logger *logging.Logger
}

// Session captures one face: it shows the annotated camera feed until the
// operator confirms a snapshot or quits.
type Session struct {
	camera   Camera
	detector detector.Detector
	display  Display
	motion   *MotionDetector
	config   SessionConfig
	logger   *logging.Logger
	out      io.Writer
}

// NewSession wires a session. The camera is opened by Run, not here.
func NewSession(camera Camera, d detector.Detector, display Display, cfg SessionConfig) *Session {
	if cfg.KeyWait <= 0 {
		cfg.KeyWait = 30 * time.Millisecond
	}

	s := &Session{
		camera:   camera,
		detector: d,
		display:  display,
		config:   cfg,
		logger:   cfg.Logger,
		out:      cfg.Out,
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	s.logger = s.logger.Component("capture")
	if s.out == nil {
		s.out = io.Discard
	}
	if cfg.MotionThreshold > 0 {
		s.motion = NewMotionDetector(cfg.MotionThreshold)
	}
	return s
}

// Close releases the steadiness detector.
func (s *Session) Close() {
	if s.motion != nil {
		s.motion.Close()
	}
}

// Run drives one capture. It returns the confirmed reading, or an error
// matching ErrCancelled. The camera is opened on entry and closed on every
// exit path.
func (s *Session) Run(ctx context.Context) (cube.Reading, error) {
	if err := s.camera.Open(); err != nil {
		s.logger.Error("camera open failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	defer func() {
		if err := s.camera.Close(); err != nil {
			s.logger.Warn("camera close failed", "error", err)
		}
	}()
	s.logger.Debug("camera opened")

	if s.motion != nil {
		s.motion.Reset()
	}

	state := AwaitingCapture
	var snapshot cube.Reading

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
		}

		frame, err := s.camera.ReadFrame()
		if err != nil {
			s.logger.Error("frame read failed", "state", state, "error", err)
			return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
		}

		reading, annotated := s.detector.Detect(frame)
		moving := s.moving(frame)
		frame.Close()

		drawBanner(&annotated, state, snapshot, moving)
		s.display.Show(annotated)
		if s.config.Sink != nil {
			s.config.Sink.PublishFrame(&annotated)
		}
		annotated.Close()

		key := s.display.WaitKey(s.config.KeyWait)
		next := Transition(state, key)

		if state == AwaitingCapture && next == Captured {
			snapshot = reading.Clone()
			fmt.Fprintf(s.out, "captured: %s\n", snapshot)
			s.logger.Debug("face captured", "colors", snapshot.String())
		}
		state = next

		switch state {
		case Confirmed:
			return snapshot, nil
		case Cancelled:
			s.logger.Debug("session quit by operator")
			return nil, ErrCancelled
		}
	}
}

// moving reports whether the grid region changed since the last frame.
func (s *Session) moving(frame *gocv.Mat) bool {
	if s.motion == nil {
		return false
	}
	region := bounds(s.config.Grid.Cells(frame.Cols(), frame.Rows()))
	moved, _ := s.motion.Detect(frame, region)
	return moved
}

// drawBanner writes the state banner onto img.
func drawBanner(img *gocv.Mat, state State, snapshot cube.Reading, moving bool) {
	if img.Empty() {
		return
	}

	if state == Captured {
		gocv.PutText(img, fmt.Sprintf(bannerCaptured, snapshot), image.Pt(10, 30),
			gocv.FontHersheySimplex, 0.6, colorGreen, 2)
	} else {
		gocv.PutText(img, bannerAwaiting, image.Pt(10, 30),
			gocv.FontHersheySimplex, 0.7, colorBlack, 2)
	}

	gocv.PutText(img, bannerQuit, image.Pt(10, 60),
		gocv.FontHersheySimplex, 0.7, colorBlack, 2)

	if moving && state == AwaitingCapture {
		gocv.PutText(img, bannerSteady, image.Pt(10, 90),
			gocv.FontHersheySimplex, 0.7, colorAmber, 2)
	}
}
