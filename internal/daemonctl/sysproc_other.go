//go:build !unix

package daemonctl

import "syscall"

func detachedAttr() *syscall.SysProcAttr {
	return nil
}
