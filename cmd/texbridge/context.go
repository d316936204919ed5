package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"texbridge/internal/config"
	"texbridge/internal/conversion"
	"texbridge/internal/daemonctl"
	"texbridge/internal/logging"
)

type globalFlags struct {
	config  string
	host    string
	port    int
	verbose bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce   sync.Once
	logger       *slog.Logger
	loggerCloser io.Closer
	loggerErr    error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if host := strings.TrimSpace(c.flags.host); host != "" {
			cfg.Server.Host = host
		}
		if c.flags.port != 0 {
			cfg.Server.Port = c.flags.port
		}
		if c.flags.verbose {
			cfg.Logging.Verbose = true
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = fmt.Errorf("flags: %w", err)
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) loggerValue() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerCloser, c.loggerErr = logging.NewFromConfig(cfg)
		if c.loggerErr != nil {
			c.loggerErr = fmt.Errorf("logging: %w", c.loggerErr)
		}
	})
	return c.logger, c.loggerErr
}

// close releases the log file, if one was opened.
func (c *commandContext) close() error {
	if c.loggerCloser == nil {
		return nil
	}
	err := c.loggerCloser.Close()
	c.loggerCloser = nil
	return err
}

func (c *commandContext) launcher() (*daemonctl.Launcher, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.loggerValue()
	if err != nil {
		return nil, err
	}
	return daemonctl.NewLauncher(
		daemonctl.WithExecutable(cfg.Daemon.Executable),
		daemonctl.WithProbeHost(cfg.Server.ProbeHost),
		daemonctl.WithPollInterval(cfg.PollInterval()),
		daemonctl.WithLockDir(cfg.Paths.LockDir),
		daemonctl.WithLogger(logger),
	), nil
}

func (c *commandContext) client() (*conversion.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	launcher, err := c.launcher()
	if err != nil {
		return nil, err
	}
	settings, err := conversion.ConfigFrom(cfg)
	if err != nil {
		return nil, err
	}
	logger, err := c.loggerValue()
	if err != nil {
		return nil, err
	}
	return conversion.New(settings,
		conversion.WithEnsurer(launcher),
		conversion.WithBackoff(cfg.RetryBackoff()),
		conversion.WithLogger(logger),
	)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
