package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"texbridge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config with a per-test lock directory, local probe
// host, and quiet logging. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Server.Host = "127.0.0.1"
	cfgVal.Server.ProbeHost = "127.0.0.1"
	cfgVal.Paths.LockDir = filepath.Join(base, "locks")
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithPort points the config at port.
func WithPort(port int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Server.Port = port
	}
}

// WithMissingExecutable configures a daemon binary that cannot be started.
func WithMissingExecutable() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Daemon.Executable = filepath.Join(b.baseDir, "bin", "latexmls-missing")
	}
}

// WithFastTimeouts shrinks the preload budget and poll interval so
// unreachable-daemon paths finish quickly.
func WithFastTimeouts() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Timeouts.PreloadSeconds = 1
		b.cfg.Timeouts.ConversionSeconds = 1
		b.cfg.Timeouts.RetryBackoffMillis = 10
		b.cfg.Timeouts.PollIntervalMillis = 50
	}
}

// WriteConfig encodes cfg as TOML at path.
func WriteConfig(t testing.TB, path string, cfg *config.Config) {
	t.Helper()

	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// WithLogFile routes the JSON log sink to path.
func WithLogFile(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.File = path
	}
}
