package daemonctl

import (
	"fmt"
	"path/filepath"
)

// LockPath returns the launch lock file guarding port.
func LockPath(dir string, port int) string {
	return filepath.Join(dir, fmt.Sprintf("texbridge-%d.lock", port))
}
