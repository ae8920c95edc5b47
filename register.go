package lox

import "sync/atomic"

// Register registers a core extension. Each function is called on every new
// VM in the order it is registered, after the core builtins are defined;
// extensions that depend on other extensions need only import them. Register
// should be called from within init funcs. Panics if NewVM has been called.
func Register(f func(*VM)) {
	if haveVM.Load() {
		panic("lox: Register must be called before any VM is created")
	}
	coreExt = append(coreExt, f)
}

// coreExt is a list of core extensions that have been registered.
var coreExt = make([]func(*VM), 0, 4)

// haveVM becomes true once NewVM has been called.
var haveVM atomic.Bool
