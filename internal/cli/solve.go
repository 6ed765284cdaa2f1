package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ayusman/cubescan/internal/app"
	"github.com/ayusman/cubescan/internal/cube"
)

var (
	solveHistory bool
	solvePlugin  string
)

var solveCmd = &cobra.Command{
	Use:   "solve <cube-string>",
	Short: "Solve an already scanned cube",
	Long: `Translate and solve a 54-letter cube string in scan colors
(W, Y, O, R, G, B), faces in the order TOP, RIGHT, FRONT, BOTTOM, LEFT, BACK.`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().BoolVar(&solveHistory, "history", false, "Record the cube in the history database")
	solveCmd.Flags().StringVar(&solvePlugin, "plugin", "", "Solver plugin name")
}

func runSolve(cmd *cobra.Command, args []string) error {
	cubeString := strings.ToUpper(strings.TrimSpace(args[0]))
	if len(cubeString) != cube.FaceletCount {
		return fmt.Errorf("%w: got %d letters, want %d", cube.ErrInvalidLength, len(cubeString), cube.FaceletCount)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if solveHistory {
		cfg.Store.Enabled = true
	}
	if solvePlugin != "" {
		cfg.Solver.Plugin = solvePlugin
	}

	logger := newLogger(cfg)

	scheme, err := cfg.CubeScheme()
	if err != nil {
		return err
	}

	slv, err := newSolver(cfg, logger)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	a, err := app.New(app.Config{
		Capturer:     noCapture{},
		Scheme:       scheme,
		Solver:       slv,
		MaxDepth:     cfg.Solver.MaxDepth,
		MaxSolutions: cfg.Solver.MaxSolutions,
		Store:        st,
		Out:          cmd.OutOrStdout(),
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	_, err = a.SolveString(cmd.Context(), cubeString)
	return err
}
