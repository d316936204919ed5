// Package main hosts the texbridge CLI entrypoint and command graph.
//
// The Cobra-based command tree converts markup through the daemon, starts it
// on demand, reports whether it is installed and listening, parses saved
// daemon logs, and scaffolds configuration. Configuration, logging, and
// client wiring are resolved once per invocation in commandContext so
// subcommands stay small.
package main
