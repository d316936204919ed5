// Package logging assembles structured slog loggers used across texbridge.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so conversion and launcher code
// tag log lines with request IDs and daemon ports. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
