package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeServer(); err != nil {
		return err
	}
	if err := c.normalizeDaemon(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeServer() error {
	if value, ok := os.LookupEnv("TEXBRIDGE_PORT"); ok && strings.TrimSpace(value) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("TEXBRIDGE_PORT: %w", err)
		}
		c.Server.Port = port
	}
	c.Server.Host = strings.TrimSpace(c.Server.Host)
	if c.Server.Host == "" {
		c.Server.Host = defaultHost
	}
	c.Server.ProbeHost = strings.TrimSpace(c.Server.ProbeHost)
	if c.Server.ProbeHost == "" {
		c.Server.ProbeHost = defaultProbeHost
	}
	return nil
}

func (c *Config) normalizeDaemon() error {
	if c.Daemon.Executable == "" {
		if value, ok := os.LookupEnv("TEXBRIDGE_EXECUTABLE"); ok {
			c.Daemon.Executable = value
		}
	}
	c.Daemon.Executable = strings.TrimSpace(c.Daemon.Executable)
	if strings.ContainsRune(c.Daemon.Executable, os.PathSeparator) {
		expanded, err := expandPath(c.Daemon.Executable)
		if err != nil {
			return fmt.Errorf("daemon.executable: %w", err)
		}
		c.Daemon.Executable = expanded
	}
	c.Daemon.CacheKey = strings.TrimSpace(c.Daemon.CacheKey)
	c.Daemon.Format = strings.TrimSpace(c.Daemon.Format)
	c.Daemon.WhatsIn = strings.TrimSpace(c.Daemon.WhatsIn)
	c.Daemon.WhatsOut = strings.TrimSpace(c.Daemon.WhatsOut)

	preloads := c.Daemon.Preloads[:0]
	for _, pkg := range c.Daemon.Preloads {
		if pkg = strings.TrimSpace(pkg); pkg != "" {
			preloads = append(preloads, pkg)
		}
	}
	c.Daemon.Preloads = preloads
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.LockDir) == "" {
		c.Paths.LockDir = defaultLockDir()
	}
	var err error
	if c.Paths.LockDir, err = expandPath(c.Paths.LockDir); err != nil {
		return fmt.Errorf("paths.lock_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "json":
	default:
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		if expanded, err := expandPath(c.Logging.File); err == nil {
			c.Logging.File = expanded
		}
	}
}
