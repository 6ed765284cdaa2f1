package cli

import (
	"fmt"

	"github.com/ayusman/cubescan/internal/config"
	"github.com/ayusman/cubescan/internal/logging"
	"github.com/ayusman/cubescan/internal/plugin"
	"github.com/ayusman/cubescan/internal/solver"
	"github.com/ayusman/cubescan/internal/store"
)

// newSolver discovers the configured solver plugin.
func newSolver(cfg *config.Config, logger *logging.Logger) (solver.Solver, error) {
	mgr := plugin.NewManager(cfg.Solver.PluginDir, logger)
	if err := mgr.Discover(); err != nil {
		return nil, fmt.Errorf("failed to discover plugins: %w", err)
	}

	p, err := mgr.Get(cfg.Solver.Plugin)
	if err != nil {
		return nil, fmt.Errorf("solver plugin %q in %s: %w", cfg.Solver.Plugin, cfg.Solver.PluginDir, err)
	}
	if !p.Manifest.Supports(plugin.ActionSolve) {
		return nil, fmt.Errorf("plugin %q does not support %q", p.Manifest.Name, plugin.ActionSolve)
	}

	return solver.NewPlugin(p, plugin.NewExecutor(cfg.SolverTimeout()), logger), nil
}

// openStore opens the history database when it is enabled. It returns a
// nil store otherwise.
func openStore(cfg *config.Config) (*store.Store, error) {
	if !cfg.Store.Enabled {
		return nil, nil
	}
	st, err := store.New(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return st, nil
}
