package logging

import (
	"context"
	"log/slog"

	"texbridge/internal/services"
)

// Structured keys shared by every handler. The console handler lifts
// component, port and request id into the line header.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldPort      = "port"
	FieldError     = "error"
)

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger tags logger with a component name. A nil logger becomes
// a no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

// WithContext adds the request id and daemon port carried by ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	var args []any
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		args = append(args, slog.String(FieldRequestID, rid))
	}
	if port, ok := services.PortFromContext(ctx); ok {
		args = append(args, slog.Int(FieldPort, port))
	}
	if len(args) == 0 {
		return logger
	}
	return logger.With(args...)
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
