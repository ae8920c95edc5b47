// Package testutils provides utilities for testing Lox code in Go.
package testutils

import (
	"errors"
	"strings"
	"testing"

	lox "github.com/AdityaKK0407/my-lox"
)

// TestingVM returns a new VM for testing Lox along with the buffer that
// receives its output. Each call returns an independent VM, so tests do not
// observe each other's globals.
func TestingVM(args ...string) (*lox.VM, *strings.Builder) {
	vm := lox.NewVM(args...)
	out := &strings.Builder{}
	vm.Stdout = out
	return vm, out
}

// A SourceTestCase is a test case containing Lox source code and a predicate
// to check the result.
type SourceTestCase struct {
	// Source is the Lox source code to execute.
	Source string
	// Script runs Source as a script, calling main after the top-level
	// statements. Otherwise, the result is the value of the last expression
	// statement.
	Script bool
	// Args are passed to main when Script is set.
	Args []string
	// Pass is a predicate taking the result of executing Source. If Pass
	// returns false, then the test fails.
	Pass func(result lox.Value, output string, err error) bool
}

// TestFunc returns a test function for the test case.
func (c SourceTestCase) TestFunc(name string) func(*testing.T) {
	return func(t *testing.T) {
		vm, out := TestingVM(c.Args...)
		var r lox.Value
		var err error
		if c.Script {
			err = vm.RunReader(strings.NewReader(c.Source))
		} else {
			r, err = vm.DoString(c.Source)
		}
		if !c.Pass(r, out.String(), err) {
			got := "<none>"
			if r != nil {
				got = lox.Repr(r)
			}
			t.Errorf("%s: %q produced wrong result; got %s, output %q, error %v", name, c.Source, got, out.String(), err)
		}
	}
}

// PassEqual returns a Pass function for a SourceTestCase that predicates on
// equality of content with lox.Equal. Any error fails.
func PassEqual(want lox.Value) func(lox.Value, string, error) bool {
	return func(result lox.Value, output string, err error) bool {
		return err == nil && result != nil && lox.Equal(want, result)
	}
}

// PassOutput returns a Pass function for a SourceTestCase that predicates on
// the exact text written by print and println. Any error fails.
func PassOutput(want string) func(lox.Value, string, error) bool {
	return func(result lox.Value, output string, err error) bool {
		return err == nil && output == want
	}
}

// PassFailure returns a Pass function for a SourceTestCase that returns true
// iff execution failed with a runtime error of the given kind.
func PassFailure(kind lox.ErrorKind) func(lox.Value, string, error) bool {
	return func(result lox.Value, output string, err error) bool {
		return errors.Is(err, kind)
	}
}

// PassParseError returns a Pass function for a SourceTestCase that returns
// true iff the source failed to parse. Nothing may have been printed.
func PassParseError() func(lox.Value, string, error) bool {
	return func(result lox.Value, output string, err error) bool {
		var pe *lox.ParseError
		return errors.As(err, &pe) && output == ""
	}
}

// PassLexError returns a Pass function for a SourceTestCase that returns true
// iff the source failed to scan with the given kind of error.
func PassLexError(kind lox.LexErrorKind) func(lox.Value, string, error) bool {
	return func(result lox.Value, output string, err error) bool {
		var le *lox.LexError
		return errors.As(err, &le) && le.Kind == kind
	}
}

// PassSuccess returns a Pass function for a SourceTestCase that returns true
// iff execution finished without error.
func PassSuccess() func(lox.Value, string, error) bool {
	return func(result lox.Value, output string, err error) bool {
		return err == nil
	}
}
