// Package date provides builtins for formatting times.
//
// Importing this package adds two builtins to every VM:
//
//	date()                   current local time as "2006-01-02 15:04:05 MST"
//	date(format)             current local time in a strftime format
//	strftime(format, secs)   UNIX time secs, in UTC, in a strftime format
//
// See https://godoc.org/github.com/variadico/lctime for the full list of
// supported directives.
package date

import (
	"math"
	"time"

	lox "github.com/AdityaKK0407/my-lox"

	"gitlab.com/variadico/lctime"
)

// DefaultFormat is the format date uses without an argument.
const DefaultFormat = "%Y-%m-%d %H:%M:%S %Z"

// Now returns the current time. Tests may replace it.
var Now = time.Now

func init() {
	lox.Register(initDate)
}

func initDate(vm *lox.VM) {
	vm.DefineBuiltin("date", -1, date)
	vm.DefineBuiltin("strftime", 2, strftime)
}

// date formats the current local time.
func date(vm *lox.VM, args []lox.Value) (lox.Value, error) {
	format := DefaultFormat
	switch len(args) {
	case 0: // do nothing
	case 1:
		s, ok := args[0].(lox.String)
		if !ok {
			return nil, &lox.RuntimeError{Kind: lox.TypeMismatchError, Msg: "date format must be String, got " + lox.TypeName(args[0])}
		}
		format = string(s)
	default:
		return nil, &lox.RuntimeError{Kind: lox.ArityError, Msg: "date expects 0 or 1 arguments"}
	}
	return lox.String(lctime.Strftime(format, Now())), nil
}

// strftime formats a UNIX time in seconds as UTC.
func strftime(vm *lox.VM, args []lox.Value) (lox.Value, error) {
	format, ok := args[0].(lox.String)
	if !ok {
		return nil, &lox.RuntimeError{Kind: lox.TypeMismatchError, Msg: "strftime format must be String, got " + lox.TypeName(args[0])}
	}
	secs, ok := args[1].(lox.Number)
	if !ok {
		return nil, &lox.RuntimeError{Kind: lox.TypeMismatchError, Msg: "strftime time must be Number, got " + lox.TypeName(args[1])}
	}
	whole, frac := math.Modf(float64(secs))
	t := time.Unix(int64(whole), int64(frac*1e9)).UTC()
	return lox.String(lctime.Strftime(string(format), t)), nil
}
