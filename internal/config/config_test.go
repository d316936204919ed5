package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"texbridge/internal/config"
	"texbridge/internal/daemonopts"
)

func TestLoadDefaultConfigUsesDefaultsAndRuntimeDir(t *testing.T) {
	tempHome := t.TempDir()
	runtimeDir := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)
	t.Setenv("TEXBRIDGE_PORT", "")
	t.Setenv("TEXBRIDGE_EXECUTABLE", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "texbridge", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Server.Port != 3334 {
		t.Fatalf("expected default port 3334, got %d", cfg.Server.Port)
	}
	if cfg.Server.ProbeHost != "localhost" {
		t.Fatalf("unexpected probe host %q", cfg.Server.ProbeHost)
	}
	if cfg.Address() != "127.0.0.1:3334" {
		t.Fatalf("unexpected address %q", cfg.Address())
	}
	if cfg.Paths.LockDir != filepath.Join(runtimeDir, "texbridge") {
		t.Fatalf("unexpected lock dir %q", cfg.Paths.LockDir)
	}
	if cfg.PreloadTimeout() != 6*time.Second || cfg.ConversionTimeout() != 12*time.Second {
		t.Fatalf("unexpected timeouts %s / %s", cfg.PreloadTimeout(), cfg.ConversionTimeout())
	}
	if cfg.RetryBackoff() != 500*time.Millisecond || cfg.PollInterval() != 200*time.Millisecond {
		t.Fatalf("unexpected backoff/poll %s / %s", cfg.RetryBackoff(), cfg.PollInterval())
	}
	if cfg.SlowThreshold() != 5*time.Second {
		t.Fatalf("unexpected slow threshold %s", cfg.SlowThreshold())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
}

func TestDefaultSetupMatchesDaemonDefaults(t *testing.T) {
	cfg := config.Default()
	setup, err := cfg.Setup()
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	want := daemonopts.Defaults().Tokens()
	got := setup.Tokens()
	if strings.Join(got, "&") != strings.Join(want, "&") {
		t.Fatalf("default setup mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("TEXBRIDGE_PORT", "")
	t.Setenv("TEXBRIDGE_EXECUTABLE", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	content := `
[server]
port = 4444

[timeouts]
conversion_seconds = 30

[daemon]
executable = "~/bin/latexmls"
cache_key = "docs"
nocomments = false
preloads = ["article.cls", " ", "secureio.sty"]
extra_options = ["path=/srv/tex", "--nomathparse"]

[paths]
lock_dir = "` + filepath.Join(dir, "locks") + `"

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected custom path to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Server.Port != 4444 {
		t.Fatalf("expected port 4444, got %d", cfg.Server.Port)
	}
	if cfg.Timeouts.ConversionSeconds != 30 {
		t.Fatalf("expected conversion seconds 30, got %d", cfg.Timeouts.ConversionSeconds)
	}
	if cfg.Timeouts.PreloadSeconds != 6 {
		t.Fatalf("expected untouched preload default, got %d", cfg.Timeouts.PreloadSeconds)
	}
	if cfg.Daemon.Executable != filepath.Join(home, "bin", "latexmls") {
		t.Fatalf("expected expanded executable, got %q", cfg.Daemon.Executable)
	}
	if len(cfg.Daemon.Preloads) != 2 {
		t.Fatalf("expected blank preload to be dropped, got %v", cfg.Daemon.Preloads)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}

	setup, err := cfg.Setup()
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if _, ok := setup.Lookup("nocomments"); ok {
		t.Fatal("expected nocomments to be disabled")
	}
	if opt, ok := setup.Lookup("cache_key"); !ok || opt.Value != "docs" {
		t.Fatalf("expected cache_key docs, got %+v", opt)
	}
	tokens := setup.Tokens()
	if tokens[len(tokens)-2] != "path=%2Fsrv%2Ftex" || tokens[len(tokens)-1] != "nomathparse" {
		t.Fatalf("expected extra options last, got %v", tokens)
	}
}

func TestEnvPortOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[server]\nport = 4000\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TEXBRIDGE_PORT", "5111")

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != 5111 {
		t.Fatalf("expected env port 5111, got %d", cfg.Server.Port)
	}

	t.Setenv("TEXBRIDGE_PORT", "not-a-port")
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for malformed TEXBRIDGE_PORT")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("TEXBRIDGE_PORT", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server]\nprot = 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestCreateSample(t *testing.T) {
	t.Setenv("TEXBRIDGE_PORT", "")
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "secureio.sty") {
		t.Fatalf("sample config missing preload hint: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Server.Port != 3334 || cfg.Daemon.CacheKey != "texbridge" {
		t.Fatalf("unexpected sample values: %+v", cfg.Server)
	}

	loaded, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists || loaded.Timeouts.ConversionSeconds != 12 {
		t.Fatalf("unexpected loaded sample: exists=%v timeouts=%+v", exists, loaded.Timeouts)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"port zero", func(c *config.Config) { c.Server.Port = 0 }, "server.port"},
		{"port too large", func(c *config.Config) { c.Server.Port = 70000 }, "server.port"},
		{"conversion timeout", func(c *config.Config) { c.Timeouts.ConversionSeconds = 0 }, "timeouts.conversion_seconds"},
		{"poll interval", func(c *config.Config) { c.Timeouts.PollIntervalMillis = -1 }, "timeouts.poll_interval_ms"},
		{"expire", func(c *config.Config) { c.Daemon.Expire = -5 }, "daemon.expire"},
		{"extra option", func(c *config.Config) { c.Daemon.ExtraOptions = []string{"=oops"} }, "daemon.extra_options"},
		{"log level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestEnsureDirectoriesCreatesLockDir(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LockDir = filepath.Join(t.TempDir(), "a", "b")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.LockDir); err != nil || !info.IsDir() {
		t.Fatalf("expected lock dir to exist: %v", err)
	}
}
