// Package daemonctl keeps the conversion daemon reachable.
//
// Launcher.EnsureRunning probes the daemon port and, while it is closed,
// spawns a detached daemon and keeps probing until the preload timeout
// elapses. Callers across processes coordinate launches through a per-port
// lock file so only one of them spawns at a time. Executable resolves the
// daemon binary once per process.
package daemonctl
