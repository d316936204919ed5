package daemonctl

import (
	"sync"

	"texbridge/internal/deps"
)

var lookupExecutable = sync.OnceValue(func() string {
	return deps.FirstAvailable(deps.DaemonRequirements())
})

// Executable returns the daemon binary name found on PATH, preferring
// latexmls over latexmlc. The lookup runs once per process; "" means neither
// is installed.
func Executable() string {
	return lookupExecutable()
}

// Installed reports whether a daemon binary is available.
func Installed() bool {
	return Executable() != ""
}
