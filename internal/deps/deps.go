package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary texbridge relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	// Optional requirements only matter when no alternative resolves.
	Optional bool
}

// Status reports whether a requirement resolved on PATH.
type Status struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description,omitempty"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Path        string `json:"path,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// DaemonRequirements lists the conversion daemon executables in lookup
// preference order. Either one is sufficient.
func DaemonRequirements() []Requirement {
	return []Requirement{
		{Name: "latexmls", Command: "latexmls", Description: "LaTeXML conversion daemon", Optional: true},
		{Name: "latexmlc", Command: "latexmlc", Description: "LaTeXML client with daemon support", Optional: true},
	}
}

// CheckBinaries resolves every requirement, preserving order.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, len(requirements))
	for i, req := range requirements {
		results[i] = check(req)
	}
	return results
}

// FirstAvailable returns the command of the first requirement found on PATH,
// or "" when none resolves.
func FirstAvailable(requirements []Requirement) string {
	for _, req := range requirements {
		if status := check(req); status.Available {
			return status.Command
		}
	}
	return ""
}

func check(req Requirement) Status {
	status := Status{
		Name:        req.Name,
		Command:     strings.TrimSpace(req.Command),
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if status.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := exec.LookPath(status.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", status.Command)
		return status
	}
	status.Available = true
	status.Path = path
	return status
}
