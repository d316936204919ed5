//go:build unix

package probe

import (
	"errors"

	"golang.org/x/sys/unix"
)

func refused(err error) bool {
	return errors.Is(err, unix.ECONNREFUSED)
}

func unreachable(err error) bool {
	return errors.Is(err, unix.EHOSTUNREACH) || errors.Is(err, unix.ENETUNREACH)
}
