package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const statusLabelWidth = 14

var statusStyles = map[statusKind]struct {
	label  string
	colors text.Colors
}{
	statusInfo:  {"INFO", text.Colors{text.FgBlue}},
	statusOK:    {"OK", text.Colors{text.FgGreen}},
	statusWarn:  {"WARN", text.Colors{text.FgYellow}},
	statusError: {"ERROR", text.Colors{text.FgRed}},
}

// statusKindFromSeverity maps dependency summary severities and daemon
// message severities onto the four display kinds.
func statusKindFromSeverity(severity string) statusKind {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case "ok", "no_problem":
		return statusOK
	case "warn", "warning":
		return statusWarn
	case "error", "fatal":
		return statusError
	default:
		return statusInfo
	}
}

func paint(kind statusKind, s string, colorize bool) string {
	if !colorize {
		return s
	}
	return statusStyles[kind].colors.Sprint(s)
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	badge := "[" + statusStyles[kind].label + "]"
	if message != "" {
		badge += " " + message
	}
	return paint(kind, fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", badge), colorize)
}

func renderSectionHeader(title string, colorize bool) []string {
	line := "== " + strings.TrimSpace(title) + " =="
	return []string{
		paint(statusInfo, line, colorize),
		paint(statusInfo, strings.Repeat("-", len(line)), colorize),
	}
}

func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
