// Package plugin discovers and runs external solver plugins. A plugin is
// a directory holding a plugin.json manifest and an executable that reads
// one JSON request on stdin and writes one JSON response on stdout.
package plugin

// ActionSolve is the only action cubescan sends.
const ActionSolve = "solve"

// Manifest describes a plugin's metadata and capabilities.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Executable  string   `json:"executable"`
	Actions     []string `json:"actions"`
}

// Supports reports whether the plugin declares action.
func (m Manifest) Supports(action string) bool {
	for _, a := range m.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// Request is sent to a plugin on stdin.
type Request struct {
	Action string `json:"action"`
	// Facelets is the 54-letter cube string in solver face letters.
	Facelets     string `json:"facelets"`
	MaxDepth     int    `json:"max_depth"`
	MaxSolutions int    `json:"max_solutions"`
}

// Response is read from a plugin's stdout.
type Response struct {
	Success bool `json:"success"`
	// Solution is the raw move string, e.g. "R1 U2 F3 (3f)".
	Solution string `json:"solution,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}
