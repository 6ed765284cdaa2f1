// Package solver hands assembled facelet strings to a cube solver.
package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/ayusman/cubescan/internal/cube"
	"github.com/ayusman/cubescan/internal/logging"
	"github.com/ayusman/cubescan/internal/plugin"
)

// Default search limits.
const (
	DefaultMaxDepth     = 20
	DefaultMaxSolutions = 3
)

// ErrRejected is returned when the solver refuses a facelet string.
var ErrRejected = errors.New("solver: cube rejected")

// Solver finds a move sequence for a facelet string in solver letters.
type Solver interface {
	// Solve returns the raw move string, e.g. "R1 U2 F3 (3f)".
	Solve(ctx context.Context, facelets string, maxDepth, maxSolutions int) (string, error)
}

// Plugin solves through an external plugin executable.
type Plugin struct {
	plugin   *plugin.Plugin
	executor *plugin.Executor
	logger   *logging.Logger
}

// NewPlugin creates a Solver backed by p. A nil logger discards.
func NewPlugin(p *plugin.Plugin, executor *plugin.Executor, logger *logging.Logger) *Plugin {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Plugin{
		plugin:   p,
		executor: executor,
		logger:   logger.Component("solver").With("plugin", p.Manifest.Name),
	}
}

// Solve implements Solver.
func (s *Plugin) Solve(ctx context.Context, facelets string, maxDepth, maxSolutions int) (string, error) {
	s.logger.Debug("solving", "facelets", facelets, "max_depth", maxDepth, "max_solutions", maxSolutions)

	resp, err := s.executor.Execute(ctx, s.plugin, &plugin.Request{
		Action:       plugin.ActionSolve,
		Facelets:     facelets,
		MaxDepth:     maxDepth,
		MaxSolutions: maxSolutions,
	})
	if err != nil {
		s.logger.Error("solver plugin failed", "error", err)
		return "", err
	}
	if !resp.Success {
		return "", fmt.Errorf("%w: %s", ErrRejected, resp.Error)
	}

	s.logger.Debug("solved", "solution", resp.Solution)
	return resp.Solution, nil
}

// Mock is a deterministic Solver for tests. It rejects facelet strings
// that are not a plausible cube and otherwise returns a preset solution.
type Mock struct {
	Solution string
	Err      error

	Calls        int
	LastFacelets string
}

// NewMock returns a Mock that answers solution for every valid cube.
func NewMock(solution string) *Mock {
	return &Mock{Solution: solution}
}

// Solve implements Solver.
func (m *Mock) Solve(ctx context.Context, facelets string, maxDepth, maxSolutions int) (string, error) {
	m.Calls++
	m.LastFacelets = facelets

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	if err := cube.Validate(facelets); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return m.Solution, nil
}
