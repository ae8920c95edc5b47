// Command lox runs Lox scripts or an interactive interpreter.
//
// Usage:
//
//	lox [flags] [script [args...]]
//
// With a script, lox executes it and then calls its main function, passing
// args. Without one, lox reads entries from standard input, printing the
// value of each expression.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"

	lox "github.com/AdityaKK0407/my-lox"
	// import for side effects
	_ "github.com/AdityaKK0407/my-lox/coreext"
	"github.com/AdityaKK0407/my-lox/internal/config"
	"github.com/AdityaKK0407/my-lox/internal/term"
)

// Exit statuses.
const (
	exitOK      = 0
	exitUsage   = 2
	exitData    = 65 // lex or parse error
	exitNoInput = 66 // script can't be read
	exitRuntime = 70 // runtime error
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options are the command-line flags.
type options struct {
	config   string
	logLevel string
	dumpAST  bool
	noBanner bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	fl := flag.NewFlagSet("lox", flag.ContinueOnError)
	fl.SetOutput(stderr)
	fl.StringVar(&opts.config, "config", "", "config file (default $"+config.EnvVar+" or ~/"+config.DefaultFile+")")
	fl.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, or error")
	fl.BoolVar(&opts.dumpAST, "dump-ast", false, "print the parsed program to stderr before running it")
	fl.BoolVar(&opts.noBanner, "no-banner", false, "don't print the REPL greeting")
	fl.Usage = func() {
		fmt.Fprintln(stderr, "usage: lox [flags] [script [args...]]")
		fl.PrintDefaults()
	}
	if err := fl.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.Find(opts.config)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
	}
	if opts.noBanner {
		cfg.Banner = false
	}

	in := bufio.NewReader(stdin)
	var scriptArgs []string
	if fl.NArg() > 1 {
		scriptArgs = fl.Args()[1:]
	}
	vm := lox.NewVM(scriptArgs...)
	vm.Stdout = stdout
	vm.Stdin = in
	vm.Log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	if cfg.Path != "" {
		vm.Log.Debug("config loaded", "path", cfg.Path)
	}

	if fl.NArg() == 0 {
		return repl(vm, cfg, opts, stdin, in, stdout, stderr)
	}
	return script(vm, fl.Arg(0), opts, stderr)
}

// script runs the script at path.
func script(vm *lox.VM, path string, opts options, stderr io.Writer) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitNoInput
	}
	defer f.Close()
	prog, err := vm.Parse(lox.DecodeSource(bufio.NewReader(f)))
	if err != nil {
		return report(stderr, err)
	}
	if opts.dumpAST {
		dump(stderr, prog)
	}
	return report(stderr, vm.RunProgram(prog))
}

// dump writes a parsed program for debugging.
func dump(w io.Writer, prog []lox.Stmt) {
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		DisableMethods:          true,
	}
	cfg.Fdump(w, prog)
}

// report prints an error, if any, and returns the corresponding exit status.
func report(stderr io.Writer, err error) int {
	if err == nil {
		return exitOK
	}
	fmt.Fprintln(stderr, err)
	return exitCode(err)
}

func exitCode(err error) int {
	var (
		le *lox.LexError
		pe *lox.ParseError
		re *lox.RuntimeError
		fe *fs.PathError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &le), errors.As(err, &pe):
		return exitData
	case errors.As(err, &re):
		return exitRuntime
	case errors.As(err, &fe):
		return exitNoInput
	}
	return exitRuntime
}

// isTerminal reports whether r is a terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
