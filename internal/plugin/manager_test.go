package plugin

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, root, dir string, m Manifest) {
	t.Helper()

	pluginDir := filepath.Join(root, dir)
	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		t.Fatalf("failed to create plugin dir: %v", err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginDir, ManifestFile), data, 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
}

func TestManager_Discover(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "twophase", Manifest{
		Name:        "twophase",
		Version:     "1.0.0",
		Description: "Two-phase solver",
		Executable:  "twophase",
		Actions:     []string{ActionSolve},
	})

	m := NewManager(root, nil)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	plugins := m.List()
	if len(plugins) != 1 {
		t.Fatalf("expected 1 plugin, got %d", len(plugins))
	}

	p := plugins[0]
	if p.Manifest.Name != "twophase" {
		t.Errorf("Name = %q", p.Manifest.Name)
	}
	if p.Path != filepath.Join(root, "twophase") {
		t.Errorf("Path = %q", p.Path)
	}
	if p.Executable != filepath.Join(root, "twophase", "twophase") {
		t.Errorf("Executable = %q", p.Executable)
	}
}

func TestManager_Discover_SkipsBadEntries(t *testing.T) {
	root := t.TempDir()

	writeManifest(t, root, "good", Manifest{Name: "good", Executable: "good", Actions: []string{ActionSolve}})
	writeManifest(t, root, "nameless", Manifest{Executable: "x"})

	if err := os.MkdirAll(filepath.Join(root, "broken"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "broken", ManifestFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "README"), []byte("not a plugin"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(root, nil)
	if err := m.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	if got := len(m.List()); got != 1 {
		t.Errorf("expected 1 plugin, got %d", got)
	}
}

func TestManager_Discover_MissingDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "nope"), nil)

	if err := m.Discover(); err != nil {
		t.Errorf("Discover() on missing dir returned %v", err)
	}
	if len(m.List()) != 0 {
		t.Error("expected no plugins")
	}
}

func TestManager_Get(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "twophase", Manifest{Name: "twophase", Executable: "twophase"})

	m := NewManager(root, nil)
	if err := m.Discover(); err != nil {
		t.Fatal(err)
	}

	if _, err := m.Get("twophase"); err != nil {
		t.Errorf("Get(twophase) error = %v", err)
	}
	if _, err := m.Get("missing"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("expected ErrPluginNotFound, got %v", err)
	}
}

func TestManager_SolversAndOrder(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "b", Manifest{Name: "zeta", Executable: "z", Actions: []string{ActionSolve}})
	writeManifest(t, root, "a", Manifest{Name: "alpha", Executable: "a", Actions: []string{ActionSolve}})
	writeManifest(t, root, "c", Manifest{Name: "other", Executable: "o", Actions: []string{"render"}})

	m := NewManager(root, nil)
	if err := m.Discover(); err != nil {
		t.Fatal(err)
	}

	all := m.List()
	if len(all) != 3 || all[0].Manifest.Name != "alpha" || all[2].Manifest.Name != "zeta" {
		t.Errorf("List() not sorted by name: %v", names(all))
	}

	if solvers := m.Solvers(); len(solvers) != 2 {
		t.Errorf("Solvers() = %v, want alpha and zeta", names(solvers))
	}
}

func names(ps []*Plugin) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Manifest.Name
	}
	return out
}
