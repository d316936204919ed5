package config

import "texbridge/internal/daemonopts"

const (
	defaultConfigPath           = "~/.config/texbridge/config.toml"
	defaultHost                 = "127.0.0.1"
	defaultPort                 = 3334
	defaultProbeHost            = "localhost"
	defaultPreloadSeconds       = 6
	defaultConversionSeconds    = 12
	defaultRetryBackoffMillis   = 500
	defaultPollIntervalMillis   = 200
	defaultSlowThresholdSeconds = 5
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	profile := daemonopts.DefaultProfile()
	return Config{
		Server: Server{
			Host:      defaultHost,
			Port:      defaultPort,
			ProbeHost: defaultProbeHost,
		},
		Timeouts: Timeouts{
			PreloadSeconds:       defaultPreloadSeconds,
			ConversionSeconds:    defaultConversionSeconds,
			RetryBackoffMillis:   defaultRetryBackoffMillis,
			PollIntervalMillis:   defaultPollIntervalMillis,
			SlowThresholdSeconds: defaultSlowThresholdSeconds,
		},
		Daemon: Daemon{
			Expire:             profile.Expire,
			Autoflush:          profile.Autoflush,
			CacheKey:           profile.CacheKey,
			Format:             profile.Format,
			WhatsIn:            profile.WhatsIn,
			WhatsOut:           profile.WhatsOut,
			NoComments:         profile.NoComments,
			NoGraphicImages:    profile.NoGraphicImages,
			NoPictureImages:    profile.NoPictureImages,
			NoParse:            profile.NoParse,
			NoDefaultResources: profile.NoDefaultResources,
			Preloads:           profile.Preloads,
		},
		Paths: Paths{
			LockDir: defaultLockDir(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
