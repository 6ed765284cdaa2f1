package main

import (
	"strings"
	"testing"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		name        string
		out         string
		wantSuccess bool
		wantText    string
	}{
		{"solution", "R1 U2 F3 (3f)\n", true, "R1 U2 F3 (3f)"},
		{"solver error", "Error: Some edges are undefined.\n", false, "Some edges are undefined"},
		{"empty", "  \n", false, "no output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := interpret(tt.out)
			if resp.Success != tt.wantSuccess {
				t.Errorf("Success = %v, want %v", resp.Success, tt.wantSuccess)
			}
			text := resp.Solution
			if !tt.wantSuccess {
				text = resp.Error
			}
			if !strings.Contains(text, tt.wantText) {
				t.Errorf("got %q, want it to contain %q", text, tt.wantText)
			}
		})
	}
}

func TestSolverArgs(t *testing.T) {
	args := solverArgs(Request{Facelets: "UUU", MaxDepth: 20, MaxSolutions: 3})

	if len(args) != 5 || args[0] != "-c" {
		t.Fatalf("args = %v", args)
	}
	if args[2] != "UUU" || args[3] != "20" || args[4] != "3" {
		t.Errorf("positional args = %v", args[2:])
	}
}

func TestPythonBin(t *testing.T) {
	t.Setenv("CUBESCAN_PYTHON", "/opt/py/bin/python")
	if got := pythonBin(); got != "/opt/py/bin/python" {
		t.Errorf("pythonBin() = %q", got)
	}
}
