package lox

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// VM is an interpreter for Lox programs. A VM is not safe for concurrent use.
type VM struct {
	// Stdout receives the output of print and println.
	Stdout io.Writer
	// Stdin is the source of lines for scan.
	Stdin *bufio.Reader
	// Log receives debug events about execution. The default discards
	// everything.
	Log *slog.Logger
	// Args are the arguments passed to main.
	Args []string

	// Globals is the scope of top-level declarations.
	Globals *Env
	// builtins is the parent scope of Globals holding the builtins.
	builtins *Env

	// stopLine is the line of the most recent break, continue, or return,
	// used to report those that appear where they are not allowed.
	stopLine int
}

// NewVM prepares a new VM to interpret Lox code. String arguments are passed
// to main, typically os.Args[2:].
func NewVM(args ...string) *VM {
	haveVM.Store(true)
	vm := &VM{
		Stdout:   os.Stdout,
		Stdin:    bufio.NewReader(os.Stdin),
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Args:     args,
		builtins: NewEnv(nil),
	}
	vm.Globals = NewEnv(vm.builtins)
	for _, b := range coreBuiltins {
		vm.builtins.Define(b.Name, b, true)
	}
	for _, ext := range coreExt {
		ext(vm)
	}
	return vm
}

// DefineBuiltin adds a builtin function. An arity less than zero means the
// builtin accepts any number of arguments. Programs may shadow builtins with
// their own declarations.
func (vm *VM) DefineBuiltin(name string, arity int, fn BuiltinFn) {
	if arity < 0 {
		arity = -1
	}
	vm.builtins.Define(name, &Builtin{Name: name, Arity: arity, Fn: fn}, true)
}

// Parse scans and parses a complete program.
func (vm *VM) Parse(src io.Reader) ([]Stmt, error) {
	prog, err := Parse(src)
	if err != nil {
		return nil, err
	}
	vm.Log.Debug("program parsed", "statements", len(prog))
	return prog, nil
}

// ParseREPL scans and parses a REPL entry, whose final semicolon is optional.
func (vm *VM) ParseREPL(src io.Reader) ([]Stmt, error) {
	prog, err := ParseREPL(src)
	if err != nil {
		return nil, err
	}
	vm.Log.Debug("entry parsed", "statements", len(prog))
	return prog, nil
}

// Exec executes top-level statements in order in the global scope. It returns
// the value of the last expression statement, or Nil if there is none. The
// first runtime error stops execution.
func (vm *VM) Exec(prog []Stmt) (Value, error) {
	var last Value = Nil
	err := vm.each(prog, func(s Stmt, v Value) {
		if _, ok := s.(*ExprStmt); ok {
			last = v
		}
	})
	if err != nil {
		return nil, err
	}
	return last, nil
}

// each executes top-level statements, calling f with each statement's value.
func (vm *VM) each(prog []Stmt, f func(Stmt, Value)) error {
	for _, s := range prog {
		v, stop, err := vm.exec(s, vm.Globals)
		if err == nil {
			err = stop.Err(vm.stopLine)
		}
		if err != nil {
			vm.logError(err)
			return err
		}
		f(s, v)
	}
	return nil
}

func (vm *VM) logError(err error) {
	var re *RuntimeError
	if errors.As(err, &re) {
		vm.Log.Debug("runtime error", "kind", re.Kind.String(), "line", re.Line, "msg", re.Msg)
	}
}

// DoString parses and executes a string, returning the value of its last
// expression statement.
func (vm *VM) DoString(src string) (Value, error) {
	return vm.DoReader(strings.NewReader(src))
}

// DoReader parses and executes Lox source, returning the value of its last
// expression statement. As at the REPL, the final statement may omit its
// semicolon. Nothing executes if the source fails to parse.
func (vm *VM) DoReader(src io.Reader) (Value, error) {
	prog, err := vm.ParseREPL(src)
	if err != nil {
		return nil, err
	}
	return vm.Exec(prog)
}

// MustDoString parses and executes a string, panicking on any error.
func (vm *VM) MustDoString(src string) Value {
	v, err := vm.DoString(src)
	if err != nil {
		panic(err)
	}
	return v
}

// RunReader runs a script: it decodes, parses, and executes the top-level
// statements, then calls main if the script declares one.
func (vm *VM) RunReader(r io.Reader) error {
	prog, err := vm.Parse(DecodeSource(r))
	if err != nil {
		return err
	}
	return vm.RunProgram(prog)
}

// RunProgram executes a parsed script's top-level statements, then calls main
// if the script declares one.
func (vm *VM) RunProgram(prog []Stmt) error {
	if _, err := vm.Exec(prog); err != nil {
		return err
	}
	return vm.RunMain()
}

// RunFile runs the script in the named file.
func (vm *VM) RunFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("couldn't open script: %w", err)
	}
	defer f.Close()
	return vm.RunReader(bufio.NewReader(f))
}

// RunMain calls the global function main, if there is one. A main with one
// parameter receives the VM's Args as an array of strings.
func (vm *VM) RunMain() error {
	v, err := vm.Globals.Get("main")
	if err != nil {
		return nil
	}
	f, ok := v.(*Function)
	if !ok {
		return nil
	}
	var args []Value
	switch f.Arity() {
	case 0: // do nothing
	case 1:
		a := &Array{Elems: make([]Value, len(vm.Args))}
		for i, s := range vm.Args {
			a.Elems[i] = String(s)
		}
		args = []Value{a}
	default:
		return rtErr(ArityError, f.Decl.Name.Line, "main must take 0 or 1 parameters, not %d", f.Arity())
	}
	vm.Log.Debug("calling main", "args", len(vm.Args))
	_, err = vm.invoke(f, nil, args, f.Decl.Name.Line)
	if err != nil {
		vm.logError(err)
	}
	return err
}

// EvalREPL executes one REPL entry. The semicolon ending the last statement
// is optional. It returns the values of the entry's top-level expression
// statements, including those evaluated before a runtime error.
func (vm *VM) EvalREPL(src string) ([]Value, error) {
	prog, err := vm.ParseREPL(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	var r []Value
	err = vm.each(prog, func(s Stmt, v Value) {
		if _, ok := s.(*ExprStmt); ok {
			r = append(r, v)
		}
	})
	return r, err
}
