package testsupport

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// StatusLog is the log a clean conversion reports.
const StatusLog = "Status:conversion:0 No obvious problems\n"

// Fragment is the HTML the fake daemon returns for text.
func Fragment(text string) string {
	return "<article class=\"ltx_document\">\n<div id=\"p1\" class=\"ltx_para\">\n<p class=\"ltx_p\">" + text + "</p>\n</div>\n</article>"
}

// FakeDaemon answers conversion requests the way the daemon does for
// fragment input.
type FakeDaemon struct {
	Server *httptest.Server
	Host   string
	Port   int

	mu       sync.Mutex
	requests int
	bodies   []string
	headers  []http.Header

	faults int
	log    string
	raw    string
	delay  time.Duration
}

type daemonReply struct {
	Result string `json:"result"`
	Status string `json:"status"`
	Log    string `json:"log"`
}

// DaemonOption customizes a FakeDaemon.
type DaemonOption func(*FakeDaemon)

// WithFaults drops the connection without a response for the first n requests.
func WithFaults(n int) DaemonOption {
	return func(d *FakeDaemon) {
		d.faults = n
	}
}

// WithLog sets the log field returned with every conversion.
func WithLog(log string) DaemonOption {
	return func(d *FakeDaemon) {
		d.log = log
	}
}

// WithRawBody replaces the JSON response with body.
func WithRawBody(body string) DaemonOption {
	return func(d *FakeDaemon) {
		d.raw = body
	}
}

// WithDelay holds each response for d, or until the client goes away.
func WithDelay(delay time.Duration) DaemonOption {
	return func(d *FakeDaemon) {
		d.delay = delay
	}
}

// NewFakeDaemon starts a fake daemon and registers its shutdown.
func NewFakeDaemon(t testing.TB, opts ...DaemonOption) *FakeDaemon {
	t.Helper()

	d := &FakeDaemon{log: StatusLog}
	for _, opt := range opts {
		opt(d)
	}
	d.Server = httptest.NewServer(http.HandlerFunc(d.serve))
	t.Cleanup(d.Server.Close)

	host, portStr, err := net.SplitHostPort(d.Server.Listener.Addr().String())
	if err != nil {
		t.Fatalf("split fake daemon addr: %v", err)
	}
	d.Host = host
	d.Port, _ = strconv.Atoi(portStr)
	return d
}

// Requests returns how many requests reached the daemon, faults included.
func (d *FakeDaemon) Requests() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.requests
}

// LastBody returns the most recent raw request body.
func (d *FakeDaemon) LastBody() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.bodies) == 0 {
		return ""
	}
	return d.bodies[len(d.bodies)-1]
}

// LastHeader returns the most recent request headers.
func (d *FakeDaemon) LastHeader() http.Header {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.headers) == 0 {
		return nil
	}
	return d.headers[len(d.headers)-1]
}

func (d *FakeDaemon) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)

	d.mu.Lock()
	d.requests++
	n := d.requests
	d.bodies = append(d.bodies, string(raw))
	d.headers = append(d.headers, r.Header.Clone())
	d.mu.Unlock()

	if n <= d.faults {
		if hj, ok := w.(http.Hijacker); ok {
			if conn, _, err := hj.Hijack(); err == nil {
				_ = conn.Close()
				return
			}
		}
		panic(http.ErrAbortHandler)
	}

	if d.delay > 0 {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(d.delay):
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if d.raw != "" {
		_, _ = io.WriteString(w, d.raw)
		return
	}
	form, err := parseForm(string(raw))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	body, err := json.Marshal(daemonReply{
		Result: Fragment(strings.TrimPrefix(form["source"], "literal:")),
		Status: "ok",
		Log:    d.log,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(body)
}
