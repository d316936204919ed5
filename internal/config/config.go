package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"texbridge/internal/daemonopts"
)

//go:embed sample_config.toml
var sampleConfig string

// Server locates the conversion daemon.
type Server struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// ProbeHost is where readiness probes connect; the daemon is always local.
	ProbeHost string `toml:"probe_host"`
}

// Timeouts bounds every wait the client performs.
type Timeouts struct {
	PreloadSeconds       int `toml:"preload_seconds"`
	ConversionSeconds    int `toml:"conversion_seconds"`
	RetryBackoffMillis   int `toml:"retry_backoff_ms"`
	PollIntervalMillis   int `toml:"poll_interval_ms"`
	SlowThresholdSeconds int `toml:"slow_threshold_seconds"`
}

// Daemon holds the option profile passed to the daemon at launch and with
// every request.
type Daemon struct {
	Executable         string   `toml:"executable"`
	Expire             int      `toml:"expire"`
	Autoflush          int      `toml:"autoflush"`
	CacheKey           string   `toml:"cache_key"`
	Format             string   `toml:"format"`
	WhatsIn            string   `toml:"whatsin"`
	WhatsOut           string   `toml:"whatsout"`
	NoComments         bool     `toml:"nocomments"`
	NoGraphicImages    bool     `toml:"nographicimages"`
	NoPictureImages    bool     `toml:"nopictureimages"`
	NoParse            bool     `toml:"noparse"`
	NoDefaultResources bool     `toml:"nodefaultresources"`
	Preloads           []string `toml:"preloads"`
	ExtraOptions       []string `toml:"extra_options"`
}

// Paths contains filesystem locations used at runtime.
type Paths struct {
	LockDir string `toml:"lock_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format  string `toml:"format"`
	Level   string `toml:"level"`
	Verbose bool   `toml:"verbose"`
	File    string `toml:"file"`
}

// Config encapsulates all configuration values for texbridge.
//
// Configuration sections:
//   - Server: daemon address and probe host
//   - Timeouts: preload, conversion, retry backoff and poll intervals
//   - Daemon: executable override and the ordered daemon option profile
//   - Paths: launch lock directory
//   - Logging: log format, level, verbosity, and optional file sink
type Config struct {
	Server   Server   `toml:"server"`
	Timeouts Timeouts `toml:"timeouts"`
	Daemon   Daemon   `toml:"daemon"`
	Paths    Paths    `toml:"paths"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("texbridge.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the launch lock directory.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LockDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LockDir, 0o755); err != nil {
		return fmt.Errorf("create lock directory %q: %w", c.Paths.LockDir, err)
	}
	return nil
}

// Address returns the daemon host:port.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Profile returns the daemon option profile with named fields.
func (c *Config) Profile() (daemonopts.Profile, error) {
	extra := make([]daemonopts.Option, 0, len(c.Daemon.ExtraOptions))
	for _, raw := range c.Daemon.ExtraOptions {
		opt, ok := daemonopts.Parse(raw)
		if !ok {
			return daemonopts.Profile{}, fmt.Errorf("daemon.extra_options: invalid entry %q", raw)
		}
		extra = append(extra, opt)
	}
	preloads := make([]string, len(c.Daemon.Preloads))
	copy(preloads, c.Daemon.Preloads)
	return daemonopts.Profile{
		Expire:             c.Daemon.Expire,
		Autoflush:          c.Daemon.Autoflush,
		CacheKey:           c.Daemon.CacheKey,
		NoComments:         c.Daemon.NoComments,
		NoGraphicImages:    c.Daemon.NoGraphicImages,
		NoPictureImages:    c.Daemon.NoPictureImages,
		NoParse:            c.Daemon.NoParse,
		Format:             c.Daemon.Format,
		NoDefaultResources: c.Daemon.NoDefaultResources,
		WhatsIn:            c.Daemon.WhatsIn,
		WhatsOut:           c.Daemon.WhatsOut,
		Preloads:           preloads,
		Extra:              extra,
	}, nil
}

// Setup flattens the daemon profile into the ordered option list.
func (c *Config) Setup() (daemonopts.Setup, error) {
	profile, err := c.Profile()
	if err != nil {
		return daemonopts.Setup{}, err
	}
	return profile.Build(), nil
}

// PreloadTimeout bounds how long a caller waits for the daemon to accept connections.
func (c *Config) PreloadTimeout() time.Duration {
	return time.Duration(c.Timeouts.PreloadSeconds) * time.Second
}

// ConversionTimeout bounds one conversion once the daemon is reachable.
func (c *Config) ConversionTimeout() time.Duration {
	return time.Duration(c.Timeouts.ConversionSeconds) * time.Second
}

// RetryBackoff is the pause between a failed send and the next attempt.
func (c *Config) RetryBackoff() time.Duration {
	return time.Duration(c.Timeouts.RetryBackoffMillis) * time.Millisecond
}

// PollInterval is the pause between readiness probes while the daemon starts.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Timeouts.PollIntervalMillis) * time.Millisecond
}

// SlowThreshold marks conversions worth a warning.
func (c *Config) SlowThreshold() time.Duration {
	return time.Duration(c.Timeouts.SlowThresholdSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultLockDir() string {
	if base, ok := os.LookupEnv("XDG_RUNTIME_DIR"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "texbridge")
	}
	return filepath.Join(os.TempDir(), "texbridge")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
