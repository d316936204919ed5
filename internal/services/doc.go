// Package services defines shared utilities consumed by the conversion client,
// the daemon launcher, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp request correlation identifiers and the target
//     daemon port for logging.
//   - Structured error markers plus the Wrap helper that separate recoverable
//     failures (unreachable daemon, transport faults, deadlines) from protocol
//     mismatches that must reach the caller.
//
// Use these helpers when wiring new daemon interactions so error handling and
// observability stay uniform.
package services
