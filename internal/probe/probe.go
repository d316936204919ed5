package probe

import (
	"context"
	"errors"
	"net"
	"os"
	"strconv"
	"time"
)

// Failure reasons reported by Check.
const (
	ReasonRefused     = "refused"
	ReasonUnreachable = "unreachable"
	ReasonTimeout     = "timeout"
	ReasonError       = "error"
)

// Result captures the outcome of a single probe.
type Result struct {
	Open   bool
	Reason string
	Err    error
}

// IsOpen reports whether host:port accepted a connection within wait.
func IsOpen(ctx context.Context, host string, port int, wait time.Duration) bool {
	return Check(ctx, host, port, wait).Open
}

// Check dials host:port once, bounded by wait and ctx. An established
// connection is closed immediately.
func Check(ctx context.Context, host string, port int, wait time.Duration) Result {
	if wait <= 0 {
		return Result{Reason: ReasonTimeout, Err: context.DeadlineExceeded}
	}
	dialCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	var dialer net.Dialer
	conn, err := dialer.DialContext(dialCtx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return Result{Reason: classify(err), Err: err}
	}
	_ = conn.Close()
	return Result{Open: true}
}

func classify(err error) string {
	switch {
	case refused(err):
		return ReasonRefused
	case unreachable(err):
		return ReasonUnreachable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	return ReasonError
}
