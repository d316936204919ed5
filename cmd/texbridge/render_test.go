package main

import (
	"strings"
	"testing"

	"texbridge/internal/logparse"
)

func TestStatusKindFromSeverity(t *testing.T) {
	tests := map[string]statusKind{
		"ok":         statusOK,
		"no_problem": statusOK,
		"Warning":    statusWarn,
		"warn":       statusWarn,
		"fatal":      statusError,
		"error":      statusError,
		"status":     statusInfo,
		"":           statusInfo,
	}
	for severity, want := range tests {
		if got := statusKindFromSeverity(severity); got != want {
			t.Errorf("statusKindFromSeverity(%q) = %v, want %v", severity, got, want)
		}
	}
}

func TestRenderStatusLinePlain(t *testing.T) {
	got := renderStatusLine("Daemon", statusOK, "Listening on 127.0.0.1:3334", false)
	want := "  Daemon:        [OK] Listening on 127.0.0.1:3334"
	if got != want {
		t.Fatalf("renderStatusLine = %q, want %q", got, want)
	}
}

func TestRenderMessageTable(t *testing.T) {
	out := renderMessageTable([]logparse.Message{
		{Severity: "warning", Category: "undefined", What: `\foo`, Details: "undefined macro", Line: "1", Col: "3"},
		{Severity: "error", Category: "expected", What: "}", Details: "missing }"},
	}, false)
	for _, fragment := range []string{"Severity", "Line:Col", `\foo`, "1:3", "missing }"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in table:\n%s", fragment, out)
		}
	}
	if strings.Contains(out, "SEVERITY") {
		t.Fatalf("headers should keep their case:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("unexpected ANSI codes in plain table:\n%s", out)
	}
}
