package daemonopts_test

import (
	"reflect"
	"strings"
	"testing"

	"texbridge/internal/daemonopts"
)

func TestSetupWithDoesNotMutateReceiver(t *testing.T) {
	base := daemonopts.New(daemonopts.Int("expire", 5), daemonopts.Flag("noparse"))
	extended := base.With(daemonopts.Int("timeout", 12))

	if base.Len() != 2 {
		t.Fatalf("base length = %d, want 2", base.Len())
	}
	if extended.Len() != 3 {
		t.Fatalf("extended length = %d, want 3", extended.Len())
	}
	opts := base.Options()
	opts[0].Value = "999"
	if got, _ := base.Lookup("expire"); got.Value != "5" {
		t.Fatalf("Options() exposed internal state: %#v", got)
	}
}

func TestSetupTokensAndArgsPreserveOrder(t *testing.T) {
	setup := daemonopts.New(
		daemonopts.Int("timeout", 1),
		daemonopts.Value("preload", "[utf8]inputenc.sty"),
		daemonopts.Flag("noparse"),
		daemonopts.Value("preload", "amsmath.sty"),
		daemonopts.Int("timeout", 12),
	)
	wantTokens := []string{
		"timeout=1",
		"preload=%5Butf8%5Dinputenc.sty",
		"noparse",
		"preload=amsmath.sty",
		"timeout=12",
	}
	if got := setup.Tokens(); !reflect.DeepEqual(got, wantTokens) {
		t.Fatalf("Tokens = %v, want %v", got, wantTokens)
	}
	wantArgs := []string{
		"--timeout", "1",
		"--preload", "[utf8]inputenc.sty",
		"--noparse",
		"--preload", "amsmath.sty",
		"--timeout", "12",
	}
	if got := setup.Args(); !reflect.DeepEqual(got, wantArgs) {
		t.Fatalf("Args = %v, want %v", got, wantArgs)
	}
	if last, ok := setup.Lookup("timeout"); !ok || last.Value != "12" {
		t.Fatalf("Lookup returned %#v, want last timeout", last)
	}
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		raw  string
		want daemonopts.Option
		ok   bool
	}{
		{raw: "path=/tmp/x", want: daemonopts.Value("path", "/tmp/x"), ok: true},
		{raw: "--nocomments", want: daemonopts.Flag("nocomments"), ok: true},
		{raw: " format = xhtml ", want: daemonopts.Value("format", "xhtml"), ok: true},
		{raw: "", ok: false},
		{raw: "=value", ok: false},
	}
	for _, tt := range tests {
		got, ok := daemonopts.Parse(tt.raw)
		if ok != tt.ok {
			t.Fatalf("Parse(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
		}
		if ok && got != tt.want {
			t.Fatalf("Parse(%q) = %#v, want %#v", tt.raw, got, tt.want)
		}
	}
}

func TestDefaultsOrder(t *testing.T) {
	tokens := daemonopts.Defaults().Tokens()
	head := []string{
		"expire=86400",
		"autoflush=10000",
		"cache_key=texbridge",
		"nocomments",
		"nographicimages",
		"nopictureimages",
		"noparse",
		"format=html5",
		"nodefaultresources",
		"whatsin=fragment",
		"whatsout=fragment",
		"preload=article.cls",
	}
	if !reflect.DeepEqual(tokens[:len(head)], head) {
		t.Fatalf("default head = %v, want %v", tokens[:len(head)], head)
	}
	if last := tokens[len(tokens)-1]; last != "preload=secureio.sty" {
		t.Fatalf("last default token = %q, want secureio preload", last)
	}
	if len(tokens) != len(head)-1+len(daemonopts.DefaultPreloads) {
		t.Fatalf("unexpected token count %d", len(tokens))
	}
}

func TestProfileBuildSkipsDisabledEntries(t *testing.T) {
	profile := daemonopts.Profile{
		Expire:    5,
		Autoflush: 0,
		NoParse:   true,
		Preloads:  []string{"", "amsmath.sty"},
		Extra:     []daemonopts.Option{daemonopts.Value("path", "/srv/tex")},
	}
	got := strings.Join(profile.Build().Tokens(), "&")
	want := "expire=5&autoflush=0&noparse&preload=amsmath.sty&path=%2Fsrv%2Ftex"
	if got != want {
		t.Fatalf("Build tokens = %q, want %q", got, want)
	}
}
