package daemonctl

import (
	"context"
	"fmt"

	"texbridge/internal/deps"
	"texbridge/internal/probe"
)

// Snapshot captures daemon reachability and executable availability.
type Snapshot struct {
	ProbeHost    string            `json:"probe_host"`
	Port         int               `json:"port"`
	Open         bool              `json:"open"`
	Reason       string            `json:"reason,omitempty"`
	Executable   string            `json:"executable"`
	Dependencies []deps.Status     `json:"dependencies"`
	Summary      DependencySummary `json:"summary"`
}

// DependencySummary aggregates dependency readiness.
type DependencySummary struct {
	Total     int    `json:"total"`
	Available int    `json:"available"`
	Severity  string `json:"severity"`
	Detail    string `json:"detail"`
}

// Probe checks port once with the launcher's probe host and wait.
func (l *Launcher) Probe(ctx context.Context, port int) probe.Result {
	return l.prober(ctx, l.probeHost, port, l.probeWait)
}

// Status probes port once and resolves the daemon executables.
func (l *Launcher) Status(ctx context.Context, port int) Snapshot {
	result := l.Probe(ctx, port)
	exe := l.executable
	if exe == "" {
		exe = Executable()
	}
	requirements := deps.DaemonRequirements()
	if l.executable != "" {
		requirements = append([]deps.Requirement{{
			Name:        "configured",
			Command:     l.executable,
			Description: "daemon.executable override",
		}}, requirements...)
	}
	statuses := deps.CheckBinaries(requirements)
	return Snapshot{
		ProbeHost:    l.probeHost,
		Port:         port,
		Open:         result.Open,
		Reason:       result.Reason,
		Executable:   exe,
		Dependencies: statuses,
		Summary:      BuildDependencySummary(statuses),
	}
}

// BuildDependencySummary computes aggregate readiness. One available daemon
// binary is enough; a missing required entry is an error.
func BuildDependencySummary(statuses []deps.Status) DependencySummary {
	if len(statuses) == 0 {
		return DependencySummary{Severity: "info", Detail: "No dependency checks configured"}
	}
	available := 0
	missingRequired := 0
	for _, status := range statuses {
		switch {
		case status.Available:
			available++
		case !status.Optional:
			missingRequired++
		}
	}
	summary := DependencySummary{
		Total:     len(statuses),
		Available: available,
		Severity:  "ok",
		Detail:    fmt.Sprintf("%d/%d available", available, len(statuses)),
	}
	switch {
	case missingRequired > 0:
		summary.Severity = "error"
		summary.Detail = fmt.Sprintf("%d/%d available (missing: %d required)", available, len(statuses), missingRequired)
	case available == 0:
		summary.Severity = "error"
		summary.Detail = "no daemon executable installed (install LaTeXML for latexmls)"
	case available < len(statuses):
		summary.Severity = "warn"
	}
	return summary
}
