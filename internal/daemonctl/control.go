package daemonctl

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gofrs/flock"

	"texbridge/internal/daemonopts"
	"texbridge/internal/logging"
	"texbridge/internal/probe"
	"texbridge/internal/services"
)

const (
	defaultProbeHost    = "localhost"
	defaultPollInterval = 200 * time.Millisecond
	defaultProbeWait    = time.Second
	defaultRelaunch     = time.Second
)

// Prober checks whether a TCP port accepts connections.
type Prober func(ctx context.Context, host string, port int, wait time.Duration) probe.Result

// Launcher keeps a conversion daemon reachable on a local port, spawning it
// when nothing answers.
type Launcher struct {
	executable   string
	probeHost    string
	pollInterval time.Duration
	probeWait    time.Duration
	relaunch     time.Duration
	lockDir      string
	spawner      Spawner
	prober       Prober
	logger       *slog.Logger
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithExecutable overrides the PATH lookup of the daemon binary.
func WithExecutable(path string) Option {
	return func(l *Launcher) {
		l.executable = path
	}
}

// WithProbeHost sets the host readiness probes connect to.
func WithProbeHost(host string) Option {
	return func(l *Launcher) {
		if host != "" {
			l.probeHost = host
		}
	}
}

// WithPollInterval sets the pause between probes.
func WithPollInterval(d time.Duration) Option {
	return func(l *Launcher) {
		if d > 0 {
			l.pollInterval = d
		}
	}
}

// WithProbeWait caps a single probe.
func WithProbeWait(d time.Duration) Option {
	return func(l *Launcher) {
		if d > 0 {
			l.probeWait = d
		}
	}
}

// WithRelaunchInterval sets the minimum gap between two spawns in one
// EnsureRunning call. Zero spawns on every poll.
func WithRelaunchInterval(d time.Duration) Option {
	return func(l *Launcher) {
		if d >= 0 {
			l.relaunch = d
		}
	}
}

// WithLockDir enables cross-process launch coordination through lock files in
// dir. An empty dir disables locking.
func WithLockDir(dir string) Option {
	return func(l *Launcher) {
		l.lockDir = dir
	}
}

// WithSpawner injects the process starter.
func WithSpawner(s Spawner) Option {
	return func(l *Launcher) {
		if s != nil {
			l.spawner = s
		}
	}
}

// WithProber injects the readiness probe.
func WithProber(p Prober) Option {
	return func(l *Launcher) {
		if p != nil {
			l.prober = p
		}
	}
}

// WithLogger sets the launcher logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Launcher) {
		l.logger = logger
	}
}

// NewLauncher builds a Launcher with defaults suitable for a local daemon.
func NewLauncher(opts ...Option) *Launcher {
	l := &Launcher{
		probeHost:    defaultProbeHost,
		pollInterval: defaultPollInterval,
		probeWait:    defaultProbeWait,
		relaunch:     defaultRelaunch,
		spawner:      processSpawner{},
		prober:       probe.Check,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	l.logger = logging.NewComponentLogger(l.logger, "daemonctl")
	return l
}

// EnsureRunning returns nil once the daemon accepts connections on port. While
// the port is closed it spawns the daemon with setup's options and polls until
// timeout (or the ctx deadline, whichever is sooner) elapses. Launches may be
// redundant; a second daemon on a taken port exits on its own.
func (l *Launcher) EnsureRunning(ctx context.Context, port int, timeout time.Duration, setup daemonopts.Setup) error {
	if port <= 0 || port > 65535 {
		return services.Wrap(services.ErrValidation, "daemonctl", "ensure running", fmt.Sprintf("invalid port %d", port), nil)
	}
	ctx = services.WithPort(ctx, port)
	logger := logging.WithContext(ctx, l.logger)

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	args := append([]string{"--port", strconv.Itoa(port)}, setup.Args()...)
	lock := l.newLock(port, logger)
	if lock != nil {
		defer func() {
			if lock.Locked() {
				_ = lock.Unlock()
			}
		}()
	}

	var (
		lastReason    string
		launches      int
		spawnFailures int
		canSpawn      = true
		lastSpawn     time.Time
	)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 || ctx.Err() != nil {
			break
		}

		result := l.prober(ctx, l.probeHost, port, min(l.probeWait, remaining))
		if result.Open {
			if launches > 0 {
				logger.Info("daemon ready", slog.Int("launches", launches))
			}
			return nil
		}
		lastReason = result.Reason
		logger.Debug("daemon probe failed", slog.String("reason", result.Reason))

		due := launches == 0 || time.Since(lastSpawn) >= l.relaunch
		if canSpawn && due && l.mayLaunch(lock, logger) {
			launches++
			lastSpawn = time.Now()
			if err := l.spawn(args); err != nil {
				spawnFailures++
				level := slog.LevelDebug
				if spawnFailures == 1 {
					level = slog.LevelWarn
				}
				logger.Log(ctx, level, "daemon launch failed", logging.Error(err))
				// Another process may still bring the port up.
				canSpawn = services.Recoverable(err)
			} else {
				logger.Debug("daemon launched", logging.Attempt(launches))
			}
		}

		pause := min(l.pollInterval, time.Until(deadline))
		if pause <= 0 {
			continue
		}
		timer := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}

	message := fmt.Sprintf("port %d not accepting connections after %s", port, timeout)
	if lastReason != "" {
		message += " (last probe: " + lastReason + ")"
	}
	return services.Wrap(services.ErrUnreachable, "daemonctl", "ensure running", message, ctx.Err())
}

func (l *Launcher) spawn(args []string) error {
	exe := l.executable
	if exe == "" {
		exe = Executable()
	}
	if exe == "" {
		return services.Wrap(services.ErrConfiguration, "daemonctl", "spawn", "neither latexmls nor latexmlc found on PATH", nil)
	}
	return l.spawner.Spawn(exe, args)
}

// mayLaunch reports whether this caller should spawn. Without a lock dir, or
// when locking itself fails, every caller may spawn.
func (l *Launcher) mayLaunch(lock *flock.Flock, logger *slog.Logger) bool {
	if lock == nil || lock.Locked() {
		return true
	}
	ok, err := lock.TryLock()
	if err != nil {
		logger.Debug("launch lock unavailable", logging.Error(err))
		return true
	}
	return ok
}

func (l *Launcher) newLock(port int, logger *slog.Logger) *flock.Flock {
	if l.lockDir == "" {
		return nil
	}
	if err := os.MkdirAll(l.lockDir, 0o755); err != nil {
		logger.Debug("create lock dir failed", logging.Error(err))
	}
	return flock.New(LockPath(l.lockDir, port))
}
