package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ayusman/cubescan/internal/cube"
	"github.com/ayusman/cubescan/internal/logging"
)

// ErrAborted is returned when scanning stops before all six faces are
// bound: the readiness prompt hit end of input or the context ended.
var ErrAborted = errors.New("app: scan aborted")

// Capturer captures one confirmed face. capture.Session implements it.
type Capturer interface {
	Run(ctx context.Context) (cube.Reading, error)
}

// OutcomeKind classifies the result of one capture attempt.
type OutcomeKind int

const (
	OutcomeBound OutcomeKind = iota
	OutcomeCancelled
	OutcomeUnknown
	OutcomeDuplicate
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeBound:
		return "bound"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeUnknown:
		return "unknown"
	case OutcomeDuplicate:
		return "duplicate"
	default:
		return "invalid"
	}
}

// Outcome is the result of applying one capture attempt to a scan state.
type Outcome struct {
	Kind OutcomeKind
	// Slot is set for bound and duplicate outcomes.
	Slot cube.Slot
	// Center is the offending center label for unknown outcomes, "?" when
	// the reading had no center.
	Center string
	Err    error
}

// Step applies one capture result to state. Only a bound outcome changes
// the state; every other outcome leaves it as it was.
func Step(state *cube.State, scheme cube.Scheme, r cube.Reading, err error) Outcome {
	if err != nil || r == nil {
		return Outcome{Kind: OutcomeCancelled, Slot: cube.SlotUnknown, Err: err}
	}

	slot := scheme.Identify(r)
	if slot == cube.SlotUnknown {
		center := "?"
		if c, ok := r.Center(); ok {
			center = c.String()
		}
		return Outcome{Kind: OutcomeUnknown, Slot: slot, Center: center}
	}

	if err := state.Bind(slot, r); err != nil {
		if errors.Is(err, cube.ErrSlotBound) {
			return Outcome{Kind: OutcomeDuplicate, Slot: slot}
		}
		return Outcome{Kind: OutcomeCancelled, Slot: cube.SlotUnknown, Err: err}
	}
	return Outcome{Kind: OutcomeBound, Slot: slot}
}

// ScannerConfig holds the collaborators of a Scanner.
type ScannerConfig struct {
	Scheme cube.Scheme

	// In is the readiness gate: one line is read before every face.
	In io.Reader
	// Out receives the operator console lines.
	Out io.Writer

	Events EventSink
	Logger *logging.Logger

	// OnBind, when set, is called after a face is bound with its bind
	// sequence number starting at 1.
	OnBind func(slot cube.Slot, r cube.Reading, seq int)
}

// Scanner runs capture sessions until every face slot is bound.
type Scanner struct {
	capturer Capturer
	scheme   cube.Scheme
	in       *bufio.Reader
	out      io.Writer
	events   EventSink
	logger   *logging.Logger
	onBind   func(cube.Slot, cube.Reading, int)
}

// NewScanner wires a Scanner around a capturer.
func NewScanner(c Capturer, cfg ScannerConfig) *Scanner {
	s := &Scanner{
		capturer: c,
		scheme:   cfg.Scheme,
		out:      cfg.Out,
		events:   cfg.Events,
		logger:   cfg.Logger,
		onBind:   cfg.OnBind,
	}
	if s.scheme == nil {
		s.scheme = cube.DefaultScheme()
	}
	if cfg.In != nil {
		s.in = bufio.NewReader(cfg.In)
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	s.logger = s.logger.Component("scan")
	return s
}

// Scan loops until all six slots are bound and returns the completed state
// with its cube string. Failed, unknown and duplicate captures are reported
// and retried without limit.
func (s *Scanner) Scan(ctx context.Context) (*cube.State, string, error) {
	state := cube.NewState()
	fmt.Fprintln(s.out, "cube scanner starting")

	for !state.Complete() {
		face := state.Len() + 1
		fmt.Fprintf(s.out, "\nscanning face %d\n", face)
		fmt.Fprintln(s.out, "position any face toward camera")
		fmt.Fprintf(s.out, "still need: %s\n", cube.JoinSlots(state.Remaining()))
		s.publish(progressEvent(EventFaceStarted, state))

		if err := s.ready(ctx); err != nil {
			return state, "", err
		}

		reading, err := s.capturer.Run(ctx)
		if ctx.Err() != nil {
			return state, "", fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
		}

		out := Step(state, s.scheme, reading, err)
		s.report(state, out, reading)
	}

	fmt.Fprintln(s.out, "\nall faces scanned")
	for _, slot := range cube.Slots {
		r, _ := state.Reading(slot)
		fmt.Fprintf(s.out, "%s: %s\n", slot, r)
	}

	cubeString, err := state.CubeString()
	if err != nil {
		return state, "", err
	}

	ev := progressEvent(EventScanComplete, state)
	ev.Face = 0
	ev.Colors = cubeString
	s.publish(ev)

	return state, cubeString, nil
}

// ready blocks on the readiness gate.
func (s *Scanner) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrAborted, err)
	}
	if s.in == nil {
		return nil
	}

	fmt.Fprint(s.out, "press enter when ready...")

	// The read cannot be interrupted; on cancel it is left to finish in
	// the background.
	done := make(chan error, 1)
	go func() {
		_, err := s.in.ReadString('\n')
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			fmt.Fprintln(s.out)
			return fmt.Errorf("%w: %w", ErrAborted, err)
		}
		return nil
	case <-ctx.Done():
		fmt.Fprintln(s.out)
		return fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
	}
}

func (s *Scanner) report(state *cube.State, out Outcome, r cube.Reading) {
	switch out.Kind {
	case OutcomeCancelled:
		fmt.Fprintln(s.out, "scan failed, try again")
		s.logger.Debug("capture failed", "error", out.Err)
		ev := progressEvent(EventCaptureFailed, state)
		if out.Err != nil {
			ev.Message = out.Err.Error()
		}
		s.publish(ev)

	case OutcomeUnknown:
		fmt.Fprintf(s.out, "unknown center color: %s\n", out.Center)
		ev := progressEvent(EventUnknownFace, state)
		ev.Colors = r.String()
		s.publish(ev)

	case OutcomeDuplicate:
		fmt.Fprintf(s.out, "already scanned %s\n", out.Slot)
		fmt.Fprintln(s.out, "try different face")
		ev := progressEvent(EventDuplicateFace, state)
		ev.Slot = out.Slot.String()
		s.publish(ev)

	case OutcomeBound:
		fmt.Fprintf(s.out, "identified as %s\n", out.Slot)
		fmt.Fprintf(s.out, "colors: %s\n", r)
		fmt.Fprintf(s.out, "completed: %s\n", cube.JoinSlots(state.Completed()))
		if remaining := state.Remaining(); len(remaining) > 0 {
			fmt.Fprintf(s.out, "remaining: %s\n", cube.JoinSlots(remaining))
		}
		s.logger.Info("face bound", "slot", out.Slot.String(), "colors", r.String(), "bound", state.Len())

		ev := progressEvent(EventFaceBound, state)
		ev.Face = state.Len()
		ev.Slot = out.Slot.String()
		ev.Colors = r.String()
		s.publish(ev)

		if s.onBind != nil {
			s.onBind(out.Slot, r, state.Len())
		}
	}
}

func (s *Scanner) publish(ev Event) {
	if s.events != nil {
		s.events.Publish(ev)
	}
}
