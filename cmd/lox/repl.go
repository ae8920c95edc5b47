package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	lox "github.com/AdityaKK0407/my-lox"
	"github.com/AdityaKK0407/my-lox/internal/config"
	"github.com/AdityaKK0407/my-lox/internal/term"
)

// lineReader reads one line of REPL input.
type lineReader interface {
	// Prompt displays p and reads a line without its terminator. It returns
	// io.EOF at end of input.
	Prompt(p string) (string, error)
	// AppendHistory records a complete entry.
	AppendHistory(entry string)
}

// plainReader reads lines from a non-terminal without prompting.
type plainReader struct {
	r *bufio.Reader
}

func (p plainReader) Prompt(string) (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (plainReader) AppendHistory(string) {}

// repl runs the interactive interpreter. Line editing and history are used
// only when stdin is a terminal.
func repl(vm *lox.VM, cfg *config.Config, opts options, stdin io.Reader, in *bufio.Reader, stdout, stderr io.Writer) int {
	var lines lineReader = plainReader{r: in}
	if isTerminal(stdin) {
		ln := liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)
		if hist := cfg.HistoryPath(); hist != "" {
			if f, err := os.Open(hist); err == nil {
				ln.ReadHistory(f)
				f.Close()
			}
			defer func() {
				if f, err := os.Create(hist); err == nil {
					ln.WriteHistory(f)
					f.Close()
				}
			}()
		}
		lines = ln
		if cfg.Banner {
			fmt.Fprintf(stdout, "Lox on %s. Type exit to quit.\n", term.Platform())
		}
	}
	for {
		src, ok := readEntry(lines, cfg.Prompt, cfg.ContinuePrompt)
		if !ok {
			return exitOK
		}
		entry := strings.TrimSpace(src)
		if entry == "" {
			continue
		}
		if entry == "exit" {
			return exitOK
		}
		lines.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if opts.dumpAST {
			if prog, err := lox.ParseREPL(strings.NewReader(src)); err == nil {
				dump(stderr, prog)
			}
		}
		vals, err := vm.EvalREPL(src)
		for _, v := range vals {
			if _, ok := v.(lox.NilValue); !ok {
				fmt.Fprintln(stdout, lox.Repr(v))
			}
		}
		if err != nil {
			fmt.Fprintln(stderr, err)
		}
	}
}

// readEntry reads lines until they form a complete entry, using the parser to
// decide whether more input is needed. It returns false at end of input.
func readEntry(lines lineReader, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := lines.Prompt(p)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				// Ctrl-C discards the current entry.
				b.Reset()
				continue
			}
			if b.Len() > 0 && errors.Is(err, io.EOF) {
				return b.String(), true
			}
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.TrimSpace(src) == "" {
			return src, true
		}
		if _, err := lox.ParseREPL(strings.NewReader(src)); err == nil || !lox.IsIncomplete(err) {
			return src, true
		}
	}
}
