package logging

import (
	"log/slog"
	"time"
)

// Error returns the error attribute, or an empty attribute for nil so handlers
// drop it.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(FieldError, err)
}

// Attempt tags a conversion or probe attempt number.
func Attempt(n int) slog.Attr {
	return slog.Int("attempt", n)
}

// Elapsed tags time spent since started.
func Elapsed(started time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(started))
}

// PayloadBytes tags the size of a request body.
func PayloadBytes(n int) slog.Attr {
	return slog.Int("payload_bytes", n)
}
