package services

import "context"

type (
	requestIDKey struct{}
	portKey      struct{}
)

// WithRequestID tags ctx with the conversion request id. Blank ids leave ctx
// unchanged.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the conversion request id, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id, id != ""
}

// WithPort tags ctx with the daemon port a request targets.
func WithPort(ctx context.Context, port int) context.Context {
	if port <= 0 {
		return ctx
	}
	return context.WithValue(ctx, portKey{}, port)
}

// PortFromContext returns the daemon port, if any.
func PortFromContext(ctx context.Context) (int, bool) {
	port, _ := ctx.Value(portKey{}).(int)
	return port, port > 0
}
