package config

import (
	"errors"
	"fmt"
	"sort"

	"texbridge/internal/daemonopts"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateTimeouts(); err != nil {
		return err
	}
	if err := c.validateDaemon(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}

func (c *Config) validateTimeouts() error {
	return ensurePositiveMap(map[string]int{
		"timeouts.preload_seconds":        c.Timeouts.PreloadSeconds,
		"timeouts.conversion_seconds":     c.Timeouts.ConversionSeconds,
		"timeouts.retry_backoff_ms":       c.Timeouts.RetryBackoffMillis,
		"timeouts.poll_interval_ms":       c.Timeouts.PollIntervalMillis,
		"timeouts.slow_threshold_seconds": c.Timeouts.SlowThresholdSeconds,
	})
}

func (c *Config) validateDaemon() error {
	if c.Daemon.Expire < 0 {
		return errors.New("daemon.expire must be zero or positive")
	}
	if c.Daemon.Autoflush < 0 {
		return errors.New("daemon.autoflush must be zero or positive (0 disables)")
	}
	for _, raw := range c.Daemon.ExtraOptions {
		if _, ok := daemonopts.Parse(raw); !ok {
			return fmt.Errorf("daemon.extra_options: invalid entry %q", raw)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if values[key] <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
