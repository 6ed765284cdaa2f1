// Package app wires the capture session, scan loop, solver and history
// into the scan-and-solve workflow.
package app

import (
	"context"
	"errors"
	"io"

	"github.com/ayusman/cubescan/internal/capture"
	"github.com/ayusman/cubescan/internal/cube"
	"github.com/ayusman/cubescan/internal/detector"
	"github.com/ayusman/cubescan/internal/logging"
	"github.com/ayusman/cubescan/internal/solver"
	"github.com/ayusman/cubescan/internal/store"
)

// ErrNoSolver is returned by New when no solver is configured.
var ErrNoSolver = errors.New("app: no solver configured")

// Config holds the collaborators of an App.
type Config struct {
	// Camera, Detector and Display build the capture session. They are
	// ignored when Capturer is set.
	Camera   capture.Camera
	Detector detector.Detector
	Display  capture.Display
	Session  capture.SessionConfig

	// Capturer replaces the capture session, mainly for tests.
	Capturer Capturer

	Scheme       cube.Scheme
	Solver       solver.Solver
	MaxDepth     int
	MaxSolutions int

	// Store enables scan history when set.
	Store *store.Store

	Events EventSink
	In     io.Reader
	Out    io.Writer
	Logger *logging.Logger
}

// App is the scan-and-solve application.
type App struct {
	session  *capture.Session
	scanner  *Scanner
	pipeline *Pipeline
	history  *history
	logger   *logging.Logger
}

// New wires an App. The camera is not opened until a face is captured.
func New(cfg Config) (*App, error) {
	if cfg.Solver == nil {
		return nil, ErrNoSolver
	}
	if cfg.Scheme == nil {
		cfg.Scheme = cube.DefaultScheme()
	}
	if err := cfg.Scheme.Validate(); err != nil {
		return nil, err
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	a := &App{
		history: newHistory(cfg.Store, cfg.Logger),
		logger:  cfg.Logger.Component("app"),
	}

	capturer := cfg.Capturer
	if capturer == nil {
		sc := cfg.Session
		if sc.Out == nil {
			sc.Out = cfg.Out
		}
		if sc.Logger == nil {
			sc.Logger = cfg.Logger
		}
		a.session = capture.NewSession(cfg.Camera, cfg.Detector, cfg.Display, sc)
		capturer = a.session
	}

	a.scanner = NewScanner(capturer, ScannerConfig{
		Scheme: cfg.Scheme,
		In:     cfg.In,
		Out:    cfg.Out,
		Events: cfg.Events,
		Logger: cfg.Logger,
	})
	a.pipeline = newPipeline(cfg, a.history, cfg.Logger)

	return a, nil
}

// Run scans all six faces and solves the result. A scan abort returns
// ErrAborted; a solve failure returns ErrInvalidCube with the partial
// result.
func (a *App) Run(ctx context.Context) (*Result, error) {
	scanID := a.history.begin()
	a.scanner.onBind = func(slot cube.Slot, r cube.Reading, seq int) {
		a.history.face(scanID, slot, r, seq)
	}

	_, cubeString, err := a.scanner.Scan(ctx)
	if err != nil {
		a.logger.Info("scan stopped", "error", err)
		a.history.abort(scanID)
		return nil, err
	}

	return a.pipeline.Solve(ctx, scanID, cubeString)
}

// SolveString solves an already known scan-palette cube string.
func (a *App) SolveString(ctx context.Context, cubeString string) (*Result, error) {
	scanID := a.history.begin()
	a.history.faces(scanID, cubeString)
	return a.pipeline.Solve(ctx, scanID, cubeString)
}

// Close releases the capture session.
func (a *App) Close() {
	if a.session != nil {
		a.session.Close()
	}
}
