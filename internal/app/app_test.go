package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/cubescan/internal/solver"
	"github.com/ayusman/cubescan/internal/store"
)

const rawSolution = "(R1 U2 F3 20f)"

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNew_RequiresSolver(t *testing.T) {
	if _, err := New(Config{Capturer: &fakeCapturer{}}); !errors.Is(err, ErrNoSolver) {
		t.Errorf("expected ErrNoSolver, got %v", err)
	}
}

func TestApp_Run(t *testing.T) {
	mock := solver.NewMock(rawSolution)
	events := &recordingEvents{}
	out := &bytes.Buffer{}
	st := newTestStore(t)

	a, err := New(Config{
		Capturer: &fakeCapturer{script: solvedScript()},
		Solver:   mock,
		Store:    st,
		Events:   events,
		In:       enters(6),
		Out:      out,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	res, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v\n%s", err, out.String())
	}

	wantTranslated := strings.Repeat("U", 9) + strings.Repeat("R", 9) + strings.Repeat("F", 9) +
		strings.Repeat("D", 9) + strings.Repeat("L", 9) + strings.Repeat("B", 9)
	if res.Translated != wantTranslated {
		t.Errorf("Translated = %s, want %s", res.Translated, wantTranslated)
	}
	if mock.Calls != 1 || mock.LastFacelets != wantTranslated {
		t.Errorf("solver calls=%d facelets=%s", mock.Calls, mock.LastFacelets)
	}
	if len(res.Moves) != 3 {
		t.Errorf("got %d moves, want 3", len(res.Moves))
	}

	text := out.String()
	for _, line := range []string{
		"complete cube: " + solvedCube,
		"converted: " + wantTranslated,
		"raw solution: " + rawSolution,
		"RIGHT/BLUE clockwise 90°",
		"UP/WHITE 180°",
		"FRONT/RED counter-clockwise 90°",
		"Total moves: 3",
	} {
		if !strings.Contains(text, line) {
			t.Errorf("output missing %q", line)
		}
	}
	if events.count(EventSolved) != 1 {
		t.Error("expected one solved event")
	}

	sc, err := st.Scans().GetByID(res.ScanID)
	if err != nil {
		t.Fatalf("scan not recorded: %v", err)
	}
	if sc.Status != store.ScanStatusSolved || sc.CubeString != solvedCube || sc.Translated != wantTranslated {
		t.Errorf("recorded scan = %+v", sc)
	}
	faces, err := st.Faces().ListByScan(res.ScanID)
	if err != nil {
		t.Fatal(err)
	}
	if len(faces) != 6 || faces[0].Slot != "FRONT" {
		t.Errorf("recorded faces = %+v", faces)
	}
	sol, err := st.Solutions().GetByScanID(res.ScanID)
	if err != nil {
		t.Fatal(err)
	}
	if sol.Notation != "R U2 F'" || sol.MoveCount != 3 || sol.Raw != rawSolution {
		t.Errorf("recorded solution = %+v", sol)
	}
}

func TestApp_Run_AbortMarksScanFailed(t *testing.T) {
	st := newTestStore(t)
	a, err := New(Config{
		Capturer: &fakeCapturer{script: solvedScript()},
		Solver:   solver.NewMock(rawSolution),
		Store:    st,
		In:       enters(1),
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := a.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	scans, err := st.Scans().List(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(scans) != 1 || scans[0].Status != store.ScanStatusFailed {
		t.Errorf("scans after abort = %+v", scans)
	}
}

func TestApp_SolveString_InvalidCube(t *testing.T) {
	mock := solver.NewMock(rawSolution)
	out := &bytes.Buffer{}
	st := newTestStore(t)

	a, err := New(Config{
		Capturer: &fakeCapturer{},
		Solver:   mock,
		Store:    st,
		Out:      out,
	})
	if err != nil {
		t.Fatal(err)
	}

	res, err := a.SolveString(context.Background(), strings.Repeat("W", 54))
	if !errors.Is(err, ErrInvalidCube) || !errors.Is(err, solver.ErrRejected) {
		t.Fatalf("expected ErrInvalidCube wrapping solver rejection, got %v", err)
	}
	if mock.Calls != 1 {
		t.Errorf("solver called %d times, want exactly 1", mock.Calls)
	}

	text := out.String()
	if !strings.Contains(text, "error solving: ") || !strings.Contains(text, "cube state might be invalid") {
		t.Errorf("output = %q", text)
	}
	if strings.Contains(text, "raw solution") {
		t.Error("printed a solution for a rejected cube")
	}

	sol, err := st.Solutions().GetByScanID(res.ScanID)
	if err != nil {
		t.Fatalf("failure not recorded: %v", err)
	}
	if sol.Error == "" {
		t.Error("recorded solution has no error")
	}
	sc, err := st.Scans().GetByID(res.ScanID)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Status != store.ScanStatusFailed {
		t.Errorf("status = %s, want failed", sc.Status)
	}
}

func TestApp_SolveString_UntranslatableCharacter(t *testing.T) {
	mock := solver.NewMock(rawSolution)
	out := &bytes.Buffer{}

	a, err := New(Config{Capturer: &fakeCapturer{}, Solver: mock, Out: out})
	if err != nil {
		t.Fatal(err)
	}

	bad := "X" + solvedCube[1:]
	if _, err := a.SolveString(context.Background(), bad); !errors.Is(err, ErrInvalidCube) {
		t.Fatalf("expected ErrInvalidCube, got %v", err)
	}
	if mock.Calls != 0 {
		t.Error("solver called with an untranslatable string")
	}
	if strings.Contains(out.String(), "converted:") {
		t.Error("printed a conversion for an untranslatable string")
	}
}

func TestApp_SolveString_SolverError(t *testing.T) {
	mock := solver.NewMock("")
	mock.Err = errors.New("plugin: timeout")
	out := &bytes.Buffer{}

	a, err := New(Config{Capturer: &fakeCapturer{}, Solver: mock, Out: out})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := a.SolveString(context.Background(), solvedCube); !errors.Is(err, ErrInvalidCube) {
		t.Fatalf("expected ErrInvalidCube, got %v", err)
	}
	if !strings.Contains(out.String(), "error solving: plugin: timeout") {
		t.Errorf("output = %q", out.String())
	}
}
