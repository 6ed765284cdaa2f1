// Command twophase is a cubescan solver plugin. It reads a solve request
// on stdin, runs the Python RubikTwoPhase solver and writes the raw move
// string back as JSON.
//
// Build it next to its manifest:
//
//	go build -o plugins/twophase/twophase ./plugins/twophase
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Request mirrors the executor's solve request.
type Request struct {
	Action       string `json:"action"`
	Facelets     string `json:"facelets"`
	MaxDepth     int    `json:"max_depth"`
	MaxSolutions int    `json:"max_solutions"`
}

// Response is written to stdout.
type Response struct {
	Success  bool   `json:"success"`
	Solution string `json:"solution,omitempty"`
	Error    string `json:"error,omitempty"`
}

// solverScript calls twophase.solver.solve with argv[1..3].
const solverScript = `import sys
import twophase.solver as sv
print(sv.solve(sys.argv[1], int(sys.argv[2]), int(sys.argv[3])))`

// pythonBin can be overridden with CUBESCAN_PYTHON.
func pythonBin() string {
	if v := os.Getenv("CUBESCAN_PYTHON"); v != "" {
		return v
	}
	return "python3"
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(Response{Error: fmt.Sprintf("failed to decode request: %v", err)})
		return
	}

	if req.Action != "solve" {
		writeResponse(Response{Error: fmt.Sprintf("unknown action: %s", req.Action)})
		return
	}

	writeResponse(solve(req))
}

func solve(req Request) Response {
	cmd := exec.Command(pythonBin(), solverArgs(req)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return Response{Error: fmt.Sprintf("%v: %s", err, strings.TrimSpace(string(out)))}
	}
	return interpret(string(out))
}

// solverArgs builds the python command line for req.
func solverArgs(req Request) []string {
	return []string{
		"-c", solverScript,
		req.Facelets,
		strconv.Itoa(req.MaxDepth),
		strconv.Itoa(req.MaxSolutions),
	}
}

// interpret maps solver stdout to a response. The solver reports invalid
// cubes by printing a line starting with "Error".
func interpret(out string) Response {
	out = strings.TrimSpace(out)
	if out == "" {
		return Response{Error: "solver returned no output"}
	}
	if strings.HasPrefix(out, "Error") {
		return Response{Error: out}
	}
	return Response{Success: true, Solution: out}
}

func writeResponse(resp Response) {
	json.NewEncoder(os.Stdout).Encode(resp)
}
