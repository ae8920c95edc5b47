package lox

import (
	"errors"
	"strings"
	"testing"
)

// testingVM returns a fresh VM whose output goes to the returned builder.
func testingVM(args ...string) (*VM, *strings.Builder) {
	vm := NewVM(args...)
	out := &strings.Builder{}
	vm.Stdout = out
	return vm, out
}

// A SourceTestCase is a test case containing source code and a predicate to
// check the result of executing it.
type SourceTestCase struct {
	Source string
	Pass   func(result Value, output string, err error) bool
}

// TestFunc returns a test function for the test case.
func (c SourceTestCase) TestFunc(name string) func(*testing.T) {
	return func(t *testing.T) {
		vm, out := testingVM()
		r, err := vm.DoString(c.Source)
		if !c.Pass(r, out.String(), err) {
			got := "<none>"
			if r != nil {
				got = Repr(r)
			}
			t.Errorf("%q produced wrong result; got %s, output %q, error %v", c.Source, got, out.String(), err)
		}
	}
}

// PassEqual returns a Pass function for a SourceTestCase that predicates on
// equality of content.
func PassEqual(want Value) func(Value, string, error) bool {
	return func(result Value, output string, err error) bool {
		return err == nil && result != nil && Equal(want, result)
	}
}

// PassOutput returns a Pass function for a SourceTestCase that predicates on
// printed output.
func PassOutput(want string) func(Value, string, error) bool {
	return func(result Value, output string, err error) bool {
		return err == nil && output == want
	}
}

// PassFailure returns a Pass function for a SourceTestCase that returns true
// iff execution failed with a runtime error of the given kind.
func PassFailure(kind ErrorKind) func(Value, string, error) bool {
	return func(result Value, output string, err error) bool {
		return errors.Is(err, kind)
	}
}

// PassFailureAt is like PassFailure but also checks the error's line.
func PassFailureAt(kind ErrorKind, line int) func(Value, string, error) bool {
	return func(result Value, output string, err error) bool {
		var re *RuntimeError
		return errors.As(err, &re) && re.Kind == kind && re.Line == line
	}
}

// PassParseFailure returns a Pass function for a SourceTestCase that returns
// true iff the source failed to parse.
func PassParseFailure() func(Value, string, error) bool {
	return func(result Value, output string, err error) bool {
		var pe *ParseError
		return errors.As(err, &pe) && output == ""
	}
}

// PassMisplaced returns a Pass function for a SourceTestCase that returns true
// iff parsing rejected a break, continue, or return of the given kind at the
// given line. Nothing may have been printed.
func PassMisplaced(kind ErrorKind, line int) func(Value, string, error) bool {
	return func(result Value, output string, err error) bool {
		var pe *ParseError
		return errors.As(err, &pe) && pe.Kind == kind && pe.Line == line && errors.Is(err, kind) && output == ""
	}
}

// PassSuccess returns a Pass function for a SourceTestCase that returns true
// iff execution finished without error.
func PassSuccess() func(Value, string, error) bool {
	return func(result Value, output string, err error) bool {
		return err == nil
	}
}

// runCases runs a table of source test cases as subtests.
func runCases(t *testing.T, cases map[string]SourceTestCase) {
	t.Helper()
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

// arr is shorthand for building expected arrays.
func arr(elems ...Value) *Array {
	return NewArray(elems...)
}

// obj is shorthand for building expected objects from alternating keys and
// values.
func obj(kv ...interface{}) *Object {
	o := NewObject()
	for i := 0; i < len(kv); i += 2 {
		o.Fields[kv[i].(string)] = kv[i+1].(Value)
	}
	return o
}
