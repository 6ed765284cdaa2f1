package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ayusman/cubescan/internal/app"
	"github.com/ayusman/cubescan/internal/capture"
	"github.com/ayusman/cubescan/internal/detector"
	"github.com/ayusman/cubescan/internal/server"
)

var (
	scanHistory bool
	scanDB      string
	scanPreview string
	scanDevice  int
	scanPlugin  string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan all six faces and solve the cube",
	Long: `Open the camera, scan the six faces one at a time and print the solution.

Keys in the camera window:
  space  capture the face in the grid
  enter  confirm the captured face
  q      discard and rescan

Press enter in the terminal before each face.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanHistory, "history", false, "Record the scan in the history database")
	scanCmd.Flags().StringVar(&scanDB, "db", "", "History database path (implies --history)")
	scanCmd.Flags().StringVar(&scanPreview, "preview", "", "Serve the preview feed on this address, e.g. :8090")
	scanCmd.Flags().IntVar(&scanDevice, "device", -1, "Camera device index")
	scanCmd.Flags().StringVar(&scanPlugin, "plugin", "", "Solver plugin name")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if scanHistory {
		cfg.Store.Enabled = true
	}
	if scanDB != "" {
		cfg.Store.Enabled = true
		cfg.Store.Path = scanDB
	}
	if scanPreview != "" {
		cfg.Preview.Addr = scanPreview
	}
	if scanDevice >= 0 {
		cfg.Camera.Device = scanDevice
	}
	if scanPlugin != "" {
		cfg.Solver.Plugin = scanPlugin
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

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	display := capture.NewWindow(cfg.Camera.Window)
	defer display.Close()

	session := capture.SessionConfig{
		Grid:            cfg.DetectorConfig(),
		KeyWait:         cfg.KeyWait(),
		MotionThreshold: cfg.Camera.MotionThreshold,
	}

	var events app.EventSink
	if cfg.Preview.Addr != "" {
		frames := server.NewFrameHub()
		progress := server.NewProgressHandler(logger)
		session.Sink = frames
		events = progress

		srv := server.New(server.Config{
			StaticDir: cfg.Preview.StaticDir,
			Store:     st,
			Frames:    frames,
			Progress:  progress,
			Logger:    logger,
		})

		srvCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := srv.ListenAndServe(srvCtx, cfg.Preview.Addr); err != nil {
				logger.Error("preview server failed", "error", err)
			}
		}()
		fmt.Fprintf(cmd.OutOrStdout(), "preview: http://%s/api/stream\n", previewHost(cfg.Preview.Addr))
	}

	a, err := app.New(app.Config{
		Camera: capture.NewCamera(capture.CameraConfig{
			DeviceID: cfg.Camera.Device,
			Width:    cfg.Camera.Width,
			Height:   cfg.Camera.Height,
			FPS:      cfg.Camera.FPS,
		}),
		Detector:     detector.NewFaceDetector(cfg.DetectorConfig()),
		Display:      display,
		Session:      session,
		Scheme:       scheme,
		Solver:       slv,
		MaxDepth:     cfg.Solver.MaxDepth,
		MaxSolutions: cfg.Solver.MaxSolutions,
		Store:        st,
		Events:       events,
		In:           cmd.InOrStdin(),
		Out:          cmd.OutOrStdout(),
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.Run(ctx)
	if errors.Is(err, app.ErrAborted) {
		fmt.Fprintln(cmd.OutOrStdout(), "scan aborted")
		return nil
	}
	if err != nil {
		return err
	}
	if res.ScanID != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "saved scan %s\n", res.ScanID)
	}
	return nil
}

// previewHost turns a listen address such as ":8090" into a browsable host.
func previewHost(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
