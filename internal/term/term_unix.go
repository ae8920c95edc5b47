//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd
// +build darwin dragonfly freebsd linux netbsd openbsd

package term

import (
	"bytes"
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool {
	_, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	return err == nil
}

// Platform describes the operating system, e.g. "linux 6.1.0".
func Platform() string {
	var uname unix.Utsname
	if unix.Uname(&uname) != nil {
		// If uname failed, we don't have anything else to try.
		return runtime.GOOS
	}
	return fmt.Sprintf("%s %s", bytes.Trim(uname.Sysname[:], "\x00"), bytes.Trim(uname.Release[:], "\x00"))
}
