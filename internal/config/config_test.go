package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/cubescan/internal/cube"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Grid.Size != 300 || cfg.Grid.BottomMargin != 30 {
		t.Errorf("grid = %+v, want 300/30", cfg.Grid)
	}
	if cfg.Solver.MaxDepth != 20 || cfg.Solver.MaxSolutions != 3 {
		t.Errorf("solver limits = %d/%d, want 20/3", cfg.Solver.MaxDepth, cfg.Solver.MaxSolutions)
	}
	if cfg.Store.Enabled {
		t.Error("store should be disabled by default")
	}
	if cfg.Preview.Addr != "" {
		t.Error("preview should be disabled by default")
	}

	scheme, err := cfg.CubeScheme()
	if err != nil {
		t.Fatalf("CubeScheme() error = %v", err)
	}
	for c, slot := range cube.DefaultScheme() {
		if scheme[c] != slot {
			t.Errorf("scheme[%s] = %s, want %s", c.Name(), scheme[c], slot)
		}
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
camera:
  device: 1
  key_wait_ms: 50
grid:
  size: 240
  bottom_margin: 10
thresholds:
  white_min_value: 180
solver:
  plugin: kociemba
  max_depth: 24
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Camera.Device != 1 {
		t.Errorf("Camera.Device = %d, want 1", cfg.Camera.Device)
	}
	if got := cfg.KeyWait().Milliseconds(); got != 50 {
		t.Errorf("KeyWait() = %dms, want 50ms", got)
	}
	if cfg.Camera.Width != 640 {
		t.Errorf("Camera.Width = %d, want default 640", cfg.Camera.Width)
	}

	dc := cfg.DetectorConfig()
	if dc.GridSize != 240 || dc.BottomMargin != 10 {
		t.Errorf("DetectorConfig() = %+v", dc)
	}
	if dc.Thresholds.WhiteMinValue != 180 {
		t.Errorf("WhiteMinValue = %d, want 180", dc.Thresholds.WhiteMinValue)
	}
	if dc.Thresholds.WhiteMaxSat != 60 {
		t.Errorf("WhiteMaxSat = %d, want default 60", dc.Thresholds.WhiteMaxSat)
	}

	if cfg.Solver.Plugin != "kociemba" || cfg.Solver.MaxDepth != 24 {
		t.Errorf("Solver = %+v", cfg.Solver)
	}
}

func TestLoad_SchemeReplacesDefault(t *testing.T) {
	path := writeConfig(t, `
scheme:
  W: top
  Y: bottom
  G: front
  B: back
  O: right
  R: left
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	scheme, err := cfg.CubeScheme()
	if err != nil {
		t.Fatalf("CubeScheme() error = %v", err)
	}
	if scheme[cube.Green] != cube.SlotFront {
		t.Errorf("green = %s, want FRONT", scheme[cube.Green])
	}
	if len(scheme) != 6 {
		t.Errorf("scheme has %d entries, want 6", len(scheme))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: [yaml: content")

	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "tiny grid",
			content: "grid:\n  size: 2\n",
			want:    "grid.size",
		},
		{
			name:    "duplicate slot",
			content: "scheme:\n  white: top\n  yellow: top\n  red: front\n  green: left\n  blue: right\n  orange: back\n",
			want:    "scheme",
		},
		{
			name:    "unknown color",
			content: "scheme:\n  black: top\n",
			want:    "scheme",
		},
		{
			name:    "store without path",
			content: "store:\n  enabled: true\n  path: \"\"\n",
			want:    "store.path",
		},
		{
			name:    "bad log format",
			content: "logging:\n  format: xml\n",
			want:    "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	t.Setenv("CUBESCAN_CAMERA_DEVICE", "2")
	t.Setenv("CUBESCAN_STORE_PATH", dbPath)
	t.Setenv("CUBESCAN_PREVIEW_ADDR", "127.0.0.1:8090")
	t.Setenv("CUBESCAN_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Camera.Device != 2 {
		t.Errorf("Camera.Device = %d, want 2", cfg.Camera.Device)
	}
	if !cfg.Store.Enabled || cfg.Store.Path != dbPath {
		t.Errorf("Store = %+v, want enabled at %s", cfg.Store, dbPath)
	}
	if cfg.Preview.Addr != "127.0.0.1:8090" {
		t.Errorf("Preview.Addr = %q", cfg.Preview.Addr)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverrideInvalidDevice(t *testing.T) {
	t.Setenv("CUBESCAN_CAMERA_DEVICE", "front")

	if _, err := Load(""); err == nil {
		t.Error("Load() expected error for non-numeric device")
	}
}
