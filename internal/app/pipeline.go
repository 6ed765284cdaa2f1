package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ayusman/cubescan/internal/cube"
	"github.com/ayusman/cubescan/internal/logging"
	"github.com/ayusman/cubescan/internal/solution"
	"github.com/ayusman/cubescan/internal/solver"
)

// ErrInvalidCube is returned when a scanned cube could not be solved.
var ErrInvalidCube = errors.New("app: cube state might be invalid")

// Result is the outcome of solving one scanned cube.
type Result struct {
	ScanID     string
	CubeString string
	Translated string
	Raw        string
	Moves      []solution.Move
}

// Pipeline translates a scan-palette cube string, solves it and prints
// the human-readable steps.
type Pipeline struct {
	palette      cube.Palette
	solver       solver.Solver
	formatter    *solution.Formatter
	maxDepth     int
	maxSolutions int
	out          io.Writer
	events       EventSink
	history      *history
	logger       *logging.Logger
}

func newPipeline(cfg Config, h *history, logger *logging.Logger) *Pipeline {
	p := &Pipeline{
		palette:      cfg.Scheme.Palette(),
		solver:       cfg.Solver,
		formatter:    solution.NewFormatter(cfg.Scheme),
		maxDepth:     cfg.MaxDepth,
		maxSolutions: cfg.MaxSolutions,
		out:          cfg.Out,
		events:       cfg.Events,
		history:      h,
		logger:       logger.Component("pipeline"),
	}
	if p.maxDepth <= 0 {
		p.maxDepth = solver.DefaultMaxDepth
	}
	if p.maxSolutions <= 0 {
		p.maxSolutions = solver.DefaultMaxSolutions
	}
	return p
}

// Solve runs translate, solve and render for cubeString. Any failure is
// printed once and returned as ErrInvalidCube; nothing is retried.
func (p *Pipeline) Solve(ctx context.Context, scanID, cubeString string) (*Result, error) {
	res := &Result{ScanID: scanID, CubeString: cubeString}
	fmt.Fprintf(p.out, "\ncomplete cube: %s\n", cubeString)

	err := p.solve(ctx, res)
	p.history.finish(scanID, res, err)
	if err != nil {
		fmt.Fprintf(p.out, "error solving: %v\n", err)
		fmt.Fprintln(p.out, "cube state might be invalid")
		p.publish(Event{Type: EventSolveFailed, Colors: cubeString, Message: err.Error(), Time: time.Now()})
		return res, fmt.Errorf("%w: %w", ErrInvalidCube, err)
	}

	p.publish(Event{Type: EventSolved, Colors: cubeString, Message: solution.Notation(res.Moves), Time: time.Now()})
	return res, nil
}

func (p *Pipeline) solve(ctx context.Context, res *Result) error {
	translated, err := p.palette.Translate(res.CubeString)
	if err != nil {
		return err
	}
	res.Translated = translated
	fmt.Fprintf(p.out, "converted: %s\n", translated)

	// The solver has the final word; a failed structural check is only
	// logged so its own diagnostic reaches the operator.
	if err := cube.Validate(translated); err != nil {
		p.logger.Warn("facelet string fails structural check", "error", err)
	}

	start := time.Now()
	raw, err := p.solver.Solve(ctx, translated, p.maxDepth, p.maxSolutions)
	if err != nil {
		return err
	}
	p.logger.Info("cube solved", "duration", time.Since(start), "raw", raw)

	res.Raw = raw
	res.Moves = solution.Parse(raw)
	fmt.Fprintf(p.out, "\nraw solution: %s\n", raw)
	fmt.Fprintln(p.out, p.formatter.Render(res.Moves))
	return nil
}

func (p *Pipeline) publish(ev Event) {
	if p.events != nil {
		p.events.Publish(ev)
	}
}
