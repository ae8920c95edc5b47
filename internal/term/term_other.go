//go:build !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd
// +build !darwin,!dragonfly,!freebsd,!linux,!netbsd,!openbsd

package term

import "runtime"

// IsTerminal reports whether fd refers to a terminal. On this platform the
// answer is always false, so the REPL reads plain lines.
func IsTerminal(fd int) bool {
	return false
}

// Platform describes the operating system.
func Platform() string {
	return runtime.GOOS
}
