package lox

import "fmt"

// Stop represents the reason for flow control.
type Stop int

// Control flow reasons.
const (
	// NoStop indicates normal execution.
	NoStop Stop = iota
	// ContinueStop should be interpreted by loops as a signal to proceed to
	// the next iteration immediately.
	ContinueStop
	// BreakStop should be interpreted by loops as a signal to exit the loop.
	BreakStop
	// ReturnStop should be interpreted by loops and blocks as a signal to
	// exit, and by function calls as the call's result.
	ReturnStop
)

var stopNames = [...]string{"normal", "continue", "break", "return"}

// String returns a string representation of the Stop.
func (s Stop) String() string {
	if s < NoStop || s > ReturnStop {
		return fmt.Sprintf("Stop(%d)", s)
	}
	return stopNames[s]
}

// Err returns nil if s is NoStop, or the runtime error for a signal that
// escaped every construct able to consume it. Panics for invalid stops.
func (s Stop) Err(line int) error {
	switch s {
	case NoStop:
		return nil
	case ContinueStop:
		return rtErr(IllegalContinueError, line, "'continue' outside of a loop")
	case BreakStop:
		return rtErr(IllegalBreakError, line, "'break' outside of a loop")
	case ReturnStop:
		return rtErr(IllegalReturnError, line, "'return' outside of a function")
	default:
		panic(fmt.Sprintf("lox: invalid Stop: %v", s))
	}
}
