//go:build !unix

package probe

// Without errno values, refused and unreachable dials are reported as
// ReasonError (or ReasonTimeout).
func refused(error) bool { return false }

func unreachable(error) bool { return false }
