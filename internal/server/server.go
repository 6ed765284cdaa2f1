// Package server provides the optional preview HTTP server: the annotated
// camera feed, live scan progress and stored scan history.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ayusman/cubescan/internal/logging"
	"github.com/ayusman/cubescan/internal/server/api"
	"github.com/ayusman/cubescan/internal/store"
)

const shutdownTimeout = 5 * time.Second

// Config holds the server configuration. Every part is optional; routes
// are registered only for the parts that are set.
type Config struct {
	StaticDir string
	Store     *store.Store
	Frames    *FrameHub
	Progress  *ProgressHandler
	Logger    *logging.Logger
}

// Server represents the preview HTTP server.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
	logger *logging.Logger
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
		logger: config.Logger,
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	s.logger = s.logger.Component("server")
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		scans := api.NewScanHandler(s.config.Store)
		s.mux.Handle("/api/scans", scans)
		s.mux.Handle("/api/scans/", scans)
	}

	if s.config.Frames != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Frames))
	}

	if s.config.Progress != nil {
		s.mux.Handle("/api/progress", s.config.Progress)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "ok",
		"uptime":  time.Since(s.start).String(),
		"history": s.config.Store != nil,
	}
	if s.config.Progress != nil {
		response["clients"] = s.config.Progress.ClientCount()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	if s.config.Progress != nil {
		s.config.Progress.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("preview server shutting down")
	return srv.Shutdown(shutdownCtx)
}
