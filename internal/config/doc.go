// Package config loads, normalizes, and validates texbridge configuration.
//
// It supplies repository defaults (daemon address, timing budgets, and the
// daemon option profile), expands user paths, reads TOML files, and honours
// environment overrides such as TEXBRIDGE_PORT. Config.Setup turns the daemon
// section into the ordered option list the launcher and conversion client
// share.
package config
