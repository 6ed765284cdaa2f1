// Package config loads cubescan settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/cubescan/internal/cube"
	"github.com/ayusman/cubescan/internal/detector"
)

// Config is the root configuration structure.
type Config struct {
	Camera     CameraConfig        `yaml:"camera"`
	Grid       GridConfig          `yaml:"grid"`
	Thresholds detector.Thresholds `yaml:"thresholds"`
	// Scheme maps a center color name to a slot name, e.g. white: top.
	Scheme  map[string]string `yaml:"scheme"`
	Solver  SolverConfig      `yaml:"solver"`
	Store   StoreConfig       `yaml:"store"`
	Preview PreviewConfig     `yaml:"preview"`
	Logging LoggingConfig     `yaml:"logging"`
}

// CameraConfig contains video capture and preview window settings.
type CameraConfig struct {
	Device    int    `yaml:"device"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	FPS       int    `yaml:"fps"`
	Window    string `yaml:"window"`
	KeyWaitMs int    `yaml:"key_wait_ms"`
	// MotionThreshold is the percentage of grid pixels that must change
	// between frames before the "hold steady" hint is shown.
	MotionThreshold float64 `yaml:"motion_threshold"`
}

// GridConfig places the sampling grid.
type GridConfig struct {
	Size         int `yaml:"size"`
	BottomMargin int `yaml:"bottom_margin"`
}

// SolverConfig selects and limits the external solver.
type SolverConfig struct {
	PluginDir    string `yaml:"plugin_dir"`
	Plugin       string `yaml:"plugin"`
	MaxDepth     int    `yaml:"max_depth"`
	MaxSolutions int    `yaml:"max_solutions"`
	TimeoutMs    int    `yaml:"timeout_ms"`
}

// StoreConfig contains scan history settings.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// PreviewConfig contains the optional preview server settings.
// An empty Addr disables the server.
type PreviewConfig struct {
	Addr string `yaml:"addr"`

	// StaticDir, when set, is served at the server root.
	StaticDir string `yaml:"static_dir"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration and applies environment variable overrides.
//
// The loading order is:
//  1. Default values
//  2. YAML file values, when path is not empty
//  3. Environment variables (CUBESCAN_SECTION_KEY)
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// A scheme in the file replaces the default one instead of merging.
		defaults := cfg.Scheme
		cfg.Scheme = nil
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		if cfg.Scheme == nil {
			cfg.Scheme = defaults
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config with the stock settings.
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			Device:          0,
			Width:           640,
			Height:          480,
			FPS:             30,
			Window:          "cube scanner",
			KeyWaitMs:       30,
			MotionThreshold: 8.0,
		},
		Grid: GridConfig{
			Size:         300,
			BottomMargin: 30,
		},
		Thresholds: detector.DefaultThresholds(),
		Scheme: map[string]string{
			"white":  "top",
			"green":  "left",
			"red":    "front",
			"yellow": "bottom",
			"blue":   "right",
			"orange": "back",
		},
		Solver: SolverConfig{
			PluginDir:    "./plugins",
			Plugin:       "twophase",
			MaxDepth:     20,
			MaxSolutions: 3,
			TimeoutMs:    60000,
		},
		Store: StoreConfig{
			Enabled: false,
			Path:    "./data/cubescan.db",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("CUBESCAN_CAMERA_DEVICE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CUBESCAN_CAMERA_DEVICE: %w", err)
		}
		cfg.Camera.Device = n
	}

	if v := os.Getenv("CUBESCAN_SOLVER_PLUGIN_DIR"); v != "" {
		cfg.Solver.PluginDir = v
	}
	if v := os.Getenv("CUBESCAN_SOLVER_PLUGIN"); v != "" {
		cfg.Solver.Plugin = v
	}

	// Setting a store path turns history on.
	if v := os.Getenv("CUBESCAN_STORE_PATH"); v != "" {
		cfg.Store.Path = v
		cfg.Store.Enabled = true
	}

	if v := os.Getenv("CUBESCAN_PREVIEW_ADDR"); v != "" {
		cfg.Preview.Addr = v
	}

	if v := os.Getenv("CUBESCAN_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []string

	if c.Camera.Device < 0 {
		errs = append(errs, "camera.device must not be negative")
	}
	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		errs = append(errs, "camera.width and camera.height must be positive")
	}
	if c.Camera.KeyWaitMs < 1 {
		errs = append(errs, "camera.key_wait_ms must be at least 1")
	}

	if c.Grid.Size < 3 {
		errs = append(errs, "grid.size must be at least 3")
	}
	if c.Grid.BottomMargin < 0 {
		errs = append(errs, "grid.bottom_margin must not be negative")
	}

	if _, err := c.CubeScheme(); err != nil {
		errs = append(errs, err.Error())
	}

	if c.Solver.MaxDepth < 1 {
		errs = append(errs, "solver.max_depth must be positive")
	}
	if c.Solver.MaxSolutions < 1 {
		errs = append(errs, "solver.max_solutions must be positive")
	}
	if c.Solver.TimeoutMs < 1 {
		errs = append(errs, "solver.timeout_ms must be positive")
	}

	if c.Store.Enabled && c.Store.Path == "" {
		errs = append(errs, "store.path is required when store is enabled")
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, "logging.format must be text or json")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// CubeScheme converts the scheme section into a validated cube.Scheme.
func (c *Config) CubeScheme() (cube.Scheme, error) {
	s := make(cube.Scheme, len(c.Scheme))
	for name, slotName := range c.Scheme {
		color, err := cube.ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("scheme: %w", err)
		}
		slot, ok := cube.ParseSlot(slotName)
		if !ok {
			return nil, fmt.Errorf("scheme: unknown slot %q for %s", slotName, name)
		}
		s[color] = slot
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scheme: %w", err)
	}
	return s, nil
}

// DetectorConfig returns the face sampler configuration.
func (c *Config) DetectorConfig() detector.Config {
	return detector.Config{
		GridSize:     c.Grid.Size,
		BottomMargin: c.Grid.BottomMargin,
		Thresholds:   c.Thresholds,
	}
}

// KeyWait returns the per-frame key poll delay.
func (c *Config) KeyWait() time.Duration {
	return time.Duration(c.Camera.KeyWaitMs) * time.Millisecond
}

// SolverTimeout returns the solver plugin timeout.
func (c *Config) SolverTimeout() time.Duration {
	return time.Duration(c.Solver.TimeoutMs) * time.Millisecond
}
