package daemonctl

import (
	"fmt"
	"os/exec"
)

// Spawner starts a detached daemon process without waiting for it.
type Spawner interface {
	Spawn(executable string, args []string) error
}

// SpawnerFunc adapts a function to Spawner.
type SpawnerFunc func(executable string, args []string) error

// Spawn calls f.
func (f SpawnerFunc) Spawn(executable string, args []string) error {
	return f(executable, args)
}

type processSpawner struct{}

// Spawn starts the daemon in its own process group with stdio on the null
// device. The child is reaped in the background so it never lingers as a
// zombie.
func (processSpawner) Spawn(executable string, args []string) error {
	proc := exec.Command(executable, args...)
	proc.SysProcAttr = detachedAttr()
	if err := proc.Start(); err != nil {
		return fmt.Errorf("launch daemon: %w", err)
	}
	go func() {
		_ = proc.Wait()
	}()
	return nil
}
