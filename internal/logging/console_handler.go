package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler writes one human-readable line per record:
//
//	15:04:05.000 WARN conversion@3334 [0123abcd]: send failed attempt=2 error="EOF"
//
// Component, port and request id move into the header; the error attribute
// always goes last.
type consoleHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     *slog.LevelVar
	addSource bool
	prefix    []string
	attrs     []field
}

type field struct {
	key   string
	value slog.Value
}

type lineHeader struct {
	component string
	port      string
	requestID string
	err       string
}

func newPrettyHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: lvl, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	fields := make([]field, 0, len(h.attrs)+record.NumAttrs())
	fields = append(fields, h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendField(fields, h.prefix, attr)
		return true
	})

	var hdr lineHeader
	rest := fields[:0]
	for _, f := range fields {
		if hdr.claim(f) {
			continue
		}
		rest = append(rest, f)
	}

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	var b strings.Builder
	b.WriteString(ts.Local().Format(consoleTimeLayout))
	b.WriteByte(' ')
	b.WriteString(levelLabel(record.Level))
	b.WriteByte(' ')
	hdr.write(&b)

	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}
	b.WriteString(msg)

	if h.addSource {
		if src := record.Source(); src != nil {
			b.WriteString(" [" + filepath.Base(src.File) + ":" + strconv.Itoa(src.Line) + "]")
		}
	}
	for _, f := range rest {
		b.WriteString(" " + f.key + "=" + consoleValue(f.value))
	}
	if hdr.err != "" {
		b.WriteString(" " + FieldError + "=" + strconv.Quote(hdr.err))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, attr := range attrs {
		next.attrs = appendField(next.attrs, next.prefix, attr)
	}
	return next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix = append(next.prefix, name)
	return next
}

func (h *consoleHandler) clone() *consoleHandler {
	next := *h
	next.prefix = append([]string(nil), h.prefix...)
	next.attrs = append([]field(nil), h.attrs...)
	return &next
}

// claim moves header keys out of the key=value list. The first value wins.
func (hdr *lineHeader) claim(f field) bool {
	var slot *string
	switch f.key {
	case FieldComponent:
		slot = &hdr.component
	case FieldPort:
		slot = &hdr.port
	case FieldRequestID:
		slot = &hdr.requestID
	case FieldError:
		slot = &hdr.err
	default:
		return false
	}
	if *slot == "" {
		*slot = plainValue(f.value)
	}
	return true
}

func (hdr lineHeader) write(b *strings.Builder) {
	if hdr.component == "" && hdr.port == "" && hdr.requestID == "" {
		return
	}
	b.WriteString(hdr.component)
	if hdr.port != "" {
		b.WriteString("@" + hdr.port)
	}
	if hdr.requestID != "" {
		if hdr.component != "" || hdr.port != "" {
			b.WriteByte(' ')
		}
		b.WriteString("[" + shortID(hdr.requestID) + "]")
	}
	b.WriteString(": ")
}

func appendField(dst []field, prefix []string, attr slog.Attr) []field {
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		if attr.Key != "" {
			prefix = append(append([]string(nil), prefix...), attr.Key)
		}
		for _, inner := range attr.Value.Group() {
			dst = appendField(dst, prefix, inner)
		}
		return dst
	}
	key := attr.Key
	if len(prefix) > 0 {
		key = strings.Join(prefix, ".") + "." + key
	}
	return append(dst, field{key: key, value: attr.Value})
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// shortID keeps console lines narrow; JSON output carries the full id.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
