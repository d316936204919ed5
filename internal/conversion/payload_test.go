package conversion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"texbridge/internal/daemonopts"
	"texbridge/internal/services"
)

func TestBuildPayloadPreservesOptionOrder(t *testing.T) {
	setup := daemonopts.New(
		daemonopts.Int("expire", 86400),
		daemonopts.Flag("nocomments"),
		daemonopts.Value("preload", "[utf8]inputenc.sty"),
		daemonopts.Value("preload", "secureio.sty"),
		daemonopts.Value("format", "html5"),
	)
	literal := "a & b = $x^2$ 100%"
	preamble := "\\usepackage{amsmath}\n\\newcommand{\\R}{\\mathbb{R}}"

	body := BuildPayload(literal, preamble, setup)
	if strings.Count(body, "&") != 6 {
		t.Fatalf("expected raw ampersands only as separators, got %s", body)
	}

	opts, err := ParsePayload(body)
	if err != nil {
		t.Fatalf("ParsePayload: %v", err)
	}
	want := []daemonopts.Option{
		daemonopts.Value("source", "literal:"+literal),
		daemonopts.Value("preamble", preamble),
		daemonopts.Value("expire", "86400"),
		daemonopts.Flag("nocomments"),
		daemonopts.Value("preload", "[utf8]inputenc.sty"),
		daemonopts.Value("preload", "secureio.sty"),
		daemonopts.Value("format", "html5"),
	}
	if len(opts) != len(want) {
		t.Fatalf("expected %d options, got %d: %+v", len(want), len(opts), opts)
	}
	for i := range want {
		if opts[i] != want[i] {
			t.Fatalf("option %d: got %+v want %+v", i, opts[i], want[i])
		}
	}
}

func TestBuildPayloadOmitsBlankPreamble(t *testing.T) {
	body := BuildPayload("x", "  \n", daemonopts.New())
	if body != "source=literal%3Ax" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestParsePayloadRejectsBadTokens(t *testing.T) {
	for _, body := range []string{"=value", "source=%zz"} {
		if _, err := ParsePayload(body); err == nil {
			t.Fatalf("expected error for %q", body)
		}
	}
}

func TestTimeoutSecondsRoundsUp(t *testing.T) {
	tests := map[time.Duration]int{
		12 * time.Second:        12,
		1500 * time.Millisecond: 2,
		time.Millisecond:        1,
		0:                       1,
	}
	for d, want := range tests {
		if got := timeoutSeconds(d); got != want {
			t.Errorf("timeoutSeconds(%s) = %d, want %d", d, got, want)
		}
	}
}

func TestClassifySend(t *testing.T) {
	deadline := classifySend(fmt.Errorf("post: %w", context.DeadlineExceeded))
	if !errors.Is(deadline, services.ErrTimeout) || !errors.Is(deadline, context.DeadlineExceeded) {
		t.Fatalf("expected timeout marker, got %v", deadline)
	}
	reset := classifySend(errors.New("connection reset by peer"))
	if !errors.Is(reset, services.ErrTransient) || !services.Recoverable(reset) {
		t.Fatalf("expected recoverable transient marker, got %v", reset)
	}
}
