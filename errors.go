package lox

import (
	"errors"
	"fmt"
	"io"
)

// LexErrorKind classifies a lexical error.
type LexErrorKind int

const (
	// UnterminatedString means a string literal reached end of input before
	// its closing quote.
	UnterminatedString LexErrorKind = iota + 1
	// UnterminatedComment means a block comment reached end of input before
	// its closing */.
	UnterminatedComment
	// InvalidCharacter means the source contained a character that begins no
	// token, including any non-ASCII character.
	InvalidCharacter
)

func (k LexErrorKind) String() string {
	switch k {
	case UnterminatedString:
		return "unterminated string"
	case UnterminatedComment:
		return "unterminated comment"
	case InvalidCharacter:
		return "invalid character"
	}
	return fmt.Sprintf("LexErrorKind(%d)", int(k))
}

// LexError is an error produced while scanning source text.
type LexError struct {
	Kind LexErrorKind
	// Text is the offending source text.
	Text      string
	Line, Col int
}

func (e *LexError) Error() string {
	if e.Kind == InvalidCharacter {
		return fmt.Sprintf("[line %d] LexError: %v %q", e.Line, e.Kind, e.Text)
	}
	return fmt.Sprintf("[line %d] LexError: %v", e.Line, e.Kind)
}

// ParseError is an error produced while parsing a token sequence.
type ParseError struct {
	Line int
	Msg  string
	// Tok is the token at which parsing failed.
	Tok Token
	// Kind is set for a break, continue, or return that has no enclosing
	// loop or function.
	Kind ErrorKind
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[line %d] ParseError: %s", e.Line, e.Msg)
}

// Unwrap returns the error's Kind if it has one, or io.ErrUnexpectedEOF if the
// error occurred at end of input.
func (e *ParseError) Unwrap() error {
	if e.Kind != 0 {
		return e.Kind
	}
	if e.Tok.Kind == eofToken {
		return io.ErrUnexpectedEOF
	}
	return nil
}

// ErrorKind identifies a runtime error category. Each ErrorKind is itself an
// error so that errors.Is can match a *RuntimeError against its kind.
type ErrorKind int

// Runtime error kinds.
const (
	UndefinedVariableError ErrorKind = iota + 1
	ConstReassignmentError
	TypeMismatchError
	DivisionByZeroError
	ArityError
	IndexOutOfRangeError
	UndefinedKeyError
	UndefinedMemberError
	UndefinedClassError
	ConstructorReturnError
	IllegalReturnError
	IllegalBreakError
	IllegalContinueError
	InvalidCastError
	EmptyCollectionError
)

var errorKindNames = [...]string{
	UndefinedVariableError: "UndefinedVariableError",
	ConstReassignmentError: "ConstReassignmentError",
	TypeMismatchError:      "TypeMismatchError",
	DivisionByZeroError:    "DivisionByZeroError",
	ArityError:             "ArityError",
	IndexOutOfRangeError:   "IndexOutOfRangeError",
	UndefinedKeyError:      "UndefinedKeyError",
	UndefinedMemberError:   "UndefinedMemberError",
	UndefinedClassError:    "UndefinedClassError",
	ConstructorReturnError: "ConstructorReturnError",
	IllegalReturnError:     "IllegalReturnError",
	IllegalBreakError:      "IllegalBreakError",
	IllegalContinueError:   "IllegalContinueError",
	InvalidCastError:       "InvalidCastError",
	EmptyCollectionError:   "EmptyCollectionError",
}

func (k ErrorKind) String() string {
	if k <= 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKindNames[k]
}

func (k ErrorKind) Error() string {
	return k.String()
}

// RuntimeError is an error raised while evaluating a program. A RuntimeError
// aborts the top-level statement in progress.
type RuntimeError struct {
	Kind ErrorKind
	Line int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] %v: %s", e.Line, e.Kind, e.Msg)
}

// Unwrap returns the error's kind.
func (e *RuntimeError) Unwrap() error {
	return e.Kind
}

// rtErr creates a runtime error with a formatted message.
func rtErr(kind ErrorKind, line int, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// atLine sets the line of a runtime error raised without position information,
// such as by a builtin. Errors that already carry a line are unchanged.
func atLine(err error, line int) error {
	var re *RuntimeError
	if errors.As(err, &re) && re.Line == 0 {
		re.Line = line
	}
	return err
}

// IsIncomplete reports whether err was caused by input ending in the middle of
// a token or construct, so that supplying more input could make it valid.
func IsIncomplete(err error) bool {
	var le *LexError
	if errors.As(err, &le) {
		return le.Kind == UnterminatedString || le.Kind == UnterminatedComment
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}
