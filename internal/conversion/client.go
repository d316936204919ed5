package conversion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"texbridge/internal/config"
	"texbridge/internal/daemonctl"
	"texbridge/internal/daemonopts"
	"texbridge/internal/logging"
	"texbridge/internal/logparse"
	"texbridge/internal/services"
)

const (
	defaultHost          = "127.0.0.1"
	defaultPort          = 3334
	defaultPreload       = 6 * time.Second
	defaultConversion    = 12 * time.Second
	defaultBackoff       = 500 * time.Millisecond
	defaultSlowThreshold = 5 * time.Second
)

// Ensurer brings the daemon up on a port.
type Ensurer interface {
	EnsureRunning(ctx context.Context, port int, timeout time.Duration, setup daemonopts.Setup) error
}

// Config captures the daemon address, timing budgets, and option list.
type Config struct {
	Host              string
	Port              int
	PreloadTimeout    time.Duration
	ConversionTimeout time.Duration
	SlowThreshold     time.Duration
	Setup             daemonopts.Setup
}

// DefaultConfig returns the settings for a local daemon on port 3334.
func DefaultConfig() Config {
	return Config{
		Host:              defaultHost,
		Port:              defaultPort,
		PreloadTimeout:    defaultPreload,
		ConversionTimeout: defaultConversion,
		SlowThreshold:     defaultSlowThreshold,
		Setup:             daemonopts.Defaults(),
	}
}

// ConfigFrom derives client settings from a loaded configuration.
func ConfigFrom(cfg *config.Config) (Config, error) {
	if cfg == nil {
		return Config{}, services.Wrap(services.ErrConfiguration, "conversion", "config", "configuration not available", nil)
	}
	setup, err := cfg.Setup()
	if err != nil {
		return Config{}, services.Wrap(services.ErrConfiguration, "conversion", "config", "build daemon options", err)
	}
	return Config{
		Host:              cfg.Server.Host,
		Port:              cfg.Server.Port,
		PreloadTimeout:    cfg.PreloadTimeout(),
		ConversionTimeout: cfg.ConversionTimeout(),
		SlowThreshold:     cfg.SlowThreshold(),
		Setup:             setup,
	}, nil
}

// Client submits conversions to the daemon. It is safe for concurrent use.
type Client struct {
	host              string
	port              int
	preloadTimeout    time.Duration
	conversionTimeout time.Duration
	slowThreshold     time.Duration
	backoff           time.Duration
	setup             daemonopts.Setup

	httpClient *http.Client
	ensurer    Ensurer
	sleeper    func(time.Duration)
	logger     *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithEnsurer overrides the daemon launcher.
func WithEnsurer(e Ensurer) Option {
	return func(c *Client) {
		if e != nil {
			c.ensurer = e
		}
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// WithBackoff sets the pause after a failed send.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.backoff = d
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New constructs a client. The conversion timeout is appended to the setup as
// the daemon's own timeout option.
func New(cfg Config, opts ...Option) (*Client, error) {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = defaultHost
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, services.Wrap(services.ErrValidation, "conversion", "new client", fmt.Sprintf("invalid port %d", cfg.Port), nil)
	}
	if cfg.PreloadTimeout <= 0 || cfg.ConversionTimeout <= 0 {
		return nil, services.Wrap(services.ErrValidation, "conversion", "new client", "timeouts must be positive", nil)
	}
	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = defaultSlowThreshold
	}

	client := &Client{
		host:              host,
		port:              cfg.Port,
		preloadTimeout:    cfg.PreloadTimeout,
		conversionTimeout: cfg.ConversionTimeout,
		slowThreshold:     slow,
		backoff:           defaultBackoff,
		setup:             cfg.Setup.With(daemonopts.Int("timeout", timeoutSeconds(cfg.ConversionTimeout))),
		httpClient:        &http.Client{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	client.logger = logging.NewComponentLogger(client.logger, "conversion")
	if client.ensurer == nil {
		client.ensurer = daemonctl.NewLauncher(daemonctl.WithLogger(client.logger))
	}
	return client, nil
}

// Setup returns the option list sent with every request, including timeout.
func (c *Client) Setup() daemonopts.Setup {
	return c.setup
}

// Port returns the default daemon port.
func (c *Client) Port() int {
	return c.port
}

// EnsureDaemon brings the daemon up on the default port without converting.
func (c *Client) EnsureDaemon(ctx context.Context) error {
	return c.ensurer.EnsureRunning(ctx, c.port, c.preloadTimeout, c.setup)
}

// Convert submits req and returns the daemon's output. Unavailability and
// transport failures degrade into canned results; the only error is a
// response body that is not valid JSON.
func (c *Client) Convert(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Literal) == "" {
		return EmptyInput(), nil
	}

	host, port := c.host, c.port
	if h := strings.TrimSpace(req.Host); h != "" {
		host = h
	}
	if req.Port > 0 {
		port = req.Port
	}
	endpoint := "http://" + net.JoinHostPort(host, strconv.Itoa(port)) + "/"
	if _, err := url.Parse(endpoint); err != nil {
		return Result{}, services.Wrap(services.ErrValidation, "conversion", "convert", "invalid daemon address", err)
	}

	ctx = services.WithRequestID(ctx, uuid.NewString())
	ctx = services.WithPort(ctx, port)
	logger := logging.WithContext(ctx, c.logger)

	payload := BuildPayload(req.Literal, req.Preamble, c.setup)
	started := time.Now()

	if err := c.ensurer.EnsureRunning(ctx, port, c.preloadTimeout, c.setup); err != nil {
		logger.Warn("daemon unreachable", logging.Error(err))
		return ServerUnreachable(), nil
	}

	outer, cancel := context.WithTimeout(ctx, c.preloadTimeout+c.conversionTimeout)
	defer cancel()

	var body []byte
	for attempt := 1; ; attempt++ {
		if outer.Err() != nil {
			logger.Warn("conversion deadline exceeded",
				slog.Int("attempts", attempt-1),
				logging.Elapsed(started),
				logging.PayloadBytes(len(payload)),
			)
			return ConnectionReset(), nil
		}

		logger.Debug("sending conversion", logging.Attempt(attempt), slog.String("endpoint", endpoint))
		data, err := c.send(outer, endpoint, payload)
		if err == nil {
			body = data
			break
		}
		logger.Debug("conversion attempt failed", logging.Attempt(attempt), logging.Error(classifySend(err)))

		if sleepErr := c.sleep(outer, c.backoff); sleepErr != nil {
			continue
		}
		if ensureErr := c.ensurer.EnsureRunning(outer, port, c.preloadTimeout, c.setup); ensureErr != nil {
			if outer.Err() != nil {
				continue
			}
			logger.Warn("daemon lost during conversion", logging.Error(ensureErr))
			reset := ConnectionReset()
			reset.Messages[0].What = err.Error()
			return reset, nil
		}
	}

	elapsed := time.Since(started)
	var decoded daemonResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return Result{}, services.Wrap(services.ErrMalformedResponse, "conversion", "decode", fmt.Sprintf("%d byte body", len(body)), err)
	}
	result := Result{
		Result:   decoded.Result,
		Messages: logparse.Parse(decoded.Log),
	}

	if elapsed > c.slowThreshold {
		logger.Warn("slow conversion",
			slog.Duration("elapsed", elapsed),
			logging.PayloadBytes(len(payload)),
		)
	}
	logger.Debug("conversion complete",
		slog.Duration("elapsed", elapsed),
		slog.Int("messages", len(result.Messages)),
		slog.Int("fatal", logparse.Count(result.Messages, logparse.SeverityFatal)),
		slog.String("status", string(decoded.Status)),
	)
	return result, nil
}

func (c *Client) send(ctx context.Context, endpoint, payload string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if delay <= 0 {
		return nil
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// classifySend tags a failed send as a timeout or a transient fault.
func classifySend(err error) error {
	marker := services.ErrTransient
	if errors.Is(err, context.DeadlineExceeded) {
		marker = services.ErrTimeout
	}
	return services.Wrap(marker, "conversion", "send", "", err)
}

func timeoutSeconds(d time.Duration) int {
	seconds := int((d + time.Second - 1) / time.Second)
	return max(seconds, 1)
}

// IsMalformed reports whether err came from an undecodable daemon response.
func IsMalformed(err error) bool {
	return errors.Is(err, services.ErrMalformedResponse)
}
