// Package coreext imports every extension package, adding their builtins to
// all VMs.
package coreext

import (
	// importing for side effects
	_ "github.com/AdityaKK0407/my-lox/coreext/date"
)
