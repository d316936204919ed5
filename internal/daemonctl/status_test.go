package daemonctl

import (
	"context"
	"net"
	"testing"
	"time"

	"texbridge/internal/deps"
	"texbridge/internal/probe"
)

func TestStatusReportsOpenPortAndOverride(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	launcher := NewLauncher(WithProbeHost("127.0.0.1"), WithExecutable("clearly-not-a-latexmls"))
	snap := launcher.Status(context.Background(), port)
	if !snap.Open {
		t.Fatalf("expected open port, reason %q", snap.Reason)
	}
	if snap.Executable != "clearly-not-a-latexmls" {
		t.Fatalf("unexpected executable %q", snap.Executable)
	}
	if len(snap.Dependencies) != 3 || snap.Dependencies[0].Name != "configured" {
		t.Fatalf("expected override listed first, got %+v", snap.Dependencies)
	}
	if snap.Dependencies[0].Available {
		t.Fatal("expected bogus override to be unavailable")
	}
	if snap.Summary.Severity != "error" {
		t.Fatalf("expected error severity for missing required override, got %+v", snap.Summary)
	}
}

func TestBuildDependencySummary(t *testing.T) {
	tests := []struct {
		name     string
		statuses []deps.Status
		severity string
	}{
		{"empty", nil, "info"},
		{"all present", []deps.Status{{Available: true, Optional: true}, {Available: true, Optional: true}}, "ok"},
		{"one of two", []deps.Status{{Available: false, Optional: true}, {Available: true, Optional: true}}, "warn"},
		{"none", []deps.Status{{Optional: true}, {Optional: true}}, "error"},
		{"required missing", []deps.Status{{Available: false}, {Available: true, Optional: true}}, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildDependencySummary(tt.statuses)
			if got.Severity != tt.severity {
				t.Fatalf("expected %s, got %+v", tt.severity, got)
			}
		})
	}
}

func TestReachabilityCheckUsesLauncherHostAndWait(t *testing.T) {
	var (
		gotHost string
		gotWait time.Duration
	)
	launcher := NewLauncher(
		WithProbeHost("127.0.0.1"),
		WithPollInterval(10*time.Millisecond),
		WithProber(func(_ context.Context, host string, _ int, wait time.Duration) probe.Result {
			gotHost, gotWait = host, wait
			return probe.Result{Open: true}
		}),
	)
	if !launcher.Probe(context.Background(), 3334).Open {
		t.Fatal("expected open result")
	}
	if gotHost != "127.0.0.1" || gotWait != time.Second {
		t.Fatalf("check used host=%q wait=%s, want 127.0.0.1 and 1s", gotHost, gotWait)
	}
}
