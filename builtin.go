package lox

import (
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// coreBuiltins are the builtins every VM has.
var coreBuiltins = []*Builtin{
	{Name: "clock", Arity: 0, Fn: builtinClock},
	{Name: "scan", Arity: 0, Fn: builtinScan},
	{Name: "min", Arity: -1, Fn: builtinMin},
	{Name: "max", Arity: -1, Fn: builtinMax},
	{Name: "number", Arity: 1, Fn: builtinNumber},
	{Name: "bool", Arity: 1, Fn: builtinBool},
	{Name: "string", Arity: 1, Fn: builtinString},
	{Name: "len", Arity: 1, Fn: builtinLen},
	{Name: "var_type", Arity: 1, Fn: builtinVarType},
	{Name: "reverse", Arity: 1, Fn: builtinReverse},
}

// builtinClock returns the current UNIX time in seconds.
func builtinClock(vm *VM, args []Value) (Value, error) {
	return Number(float64(time.Now().UnixNano()) / 1e9), nil
}

// builtinScan reads one line of input without its line terminator. At end of
// input, it returns whatever was read, possibly the empty string.
func builtinScan(vm *VM, args []Value) (Value, error) {
	line, err := vm.Stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return String(line), nil
}

// numbers collects the arguments to min or max: either a single array of
// numbers or any number of numbers.
func numbers(name string, args []Value) ([]Number, error) {
	if len(args) == 1 {
		if a, ok := args[0].(*Array); ok {
			args = a.Elems
		}
	}
	if len(args) == 0 {
		return nil, rtErr(EmptyCollectionError, 0, "%s of no values", name)
	}
	r := make([]Number, len(args))
	for i, v := range args {
		n, ok := v.(Number)
		if !ok {
			return nil, rtErr(TypeMismatchError, 0, "%s requires numbers, got %s", name, TypeName(v))
		}
		r[i] = n
	}
	return r, nil
}

func builtinMin(vm *VM, args []Value) (Value, error) {
	ns, err := numbers("min", args)
	if err != nil {
		return nil, err
	}
	m := ns[0]
	for _, n := range ns[1:] {
		if n < m {
			m = n
		}
	}
	return m, nil
}

func builtinMax(vm *VM, args []Value) (Value, error) {
	ns, err := numbers("max", args)
	if err != nil {
		return nil, err
	}
	m := ns[0]
	for _, n := range ns[1:] {
		if n > m {
			m = n
		}
	}
	return m, nil
}

// builtinNumber converts a number, bool, or numeric string to a number.
func builtinNumber(vm *VM, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case Number:
		return v, nil
	case Bool:
		if v {
			return Number(1), nil
		}
		return Number(0), nil
	case String:
		if n, ok := parseNumber(string(v)); ok {
			return n, nil
		}
		return nil, rtErr(InvalidCastError, 0, "cannot convert %s to Number", Repr(v))
	}
	return nil, rtErr(InvalidCastError, 0, "cannot convert %s to Number", TypeName(args[0]))
}

// parseNumber parses a number literal with an optional sign and surrounding
// whitespace.
func parseNumber(s string) (Number, bool) {
	s = strings.TrimSpace(s)
	body := strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	if len(body) < len(s)-1 {
		// More than one sign.
		return 0, false
	}
	digits, dot := 0, false
	for i := 0; i < len(body); i++ {
		switch c := body[i]; {
		case isDigit(rune(c)):
			digits++
		case c == '.' && !dot && digits > 0 && i+1 < len(body):
			dot = true
		default:
			return 0, false
		}
	}
	if digits == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !math.IsInf(f, 0) {
		return 0, false
	}
	return Number(f), true
}

// builtinBool converts a number, bool, or string to a bool. Zero and the
// empty string are false.
func builtinBool(vm *VM, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case Number:
		return Bool(v != 0), nil
	case Bool:
		return v, nil
	case String:
		return Bool(v != ""), nil
	}
	return nil, rtErr(InvalidCastError, 0, "cannot convert %s to Bool", TypeName(args[0]))
}

func builtinString(vm *VM, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case Number, Bool, String:
		return String(Format(v)), nil
	}
	return nil, rtErr(InvalidCastError, 0, "cannot convert %s to String", TypeName(args[0]))
}

func builtinLen(vm *VM, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case *Array:
		return Number(len(v.Elems)), nil
	case String:
		return Number(len(v)), nil
	}
	return nil, rtErr(TypeMismatchError, 0, "len requires Array or String, got %s", TypeName(args[0]))
}

func builtinVarType(vm *VM, args []Value) (Value, error) {
	return String(TypeName(args[0])), nil
}

// builtinReverse returns a reversed copy of an array or string.
func builtinReverse(vm *VM, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case *Array:
		n := len(v.Elems)
		r := &Array{Elems: make([]Value, n)}
		for i, e := range v.Elems {
			r.Elems[n-1-i] = Copy(e)
		}
		return r, nil
	case String:
		b := []byte(v)
		for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
			b[i], b[j] = b[j], b[i]
		}
		return String(b), nil
	}
	return nil, rtErr(TypeMismatchError, 0, "reverse requires Array or String, got %s", TypeName(args[0]))
}
