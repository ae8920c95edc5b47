package lox

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Format returns the text print writes for v. Strings are written without
// quotes at the top level and quoted inside arrays and objects.
func Format(v Value) string {
	if s, ok := v.(String); ok {
		return string(s)
	}
	var b strings.Builder
	format(&b, v)
	return b.String()
}

// Repr returns the text for v as it appears nested in a container, with
// strings quoted.
func Repr(v Value) string {
	var b strings.Builder
	format(&b, v)
	return b.String()
}

func format(b *strings.Builder, v Value) {
	switch x := v.(type) {
	case Number:
		b.WriteString(formatNumber(float64(x)))
	case Bool:
		b.WriteString(strconv.FormatBool(bool(x)))
	case String:
		b.WriteString(strconv.Quote(string(x)))
	case NilValue:
		b.WriteString("nil")
	case *Array:
		b.WriteByte('[')
		for i, e := range x.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, e)
		}
		b.WriteByte(']')
	case *Object:
		formatFields(b, x.Fields)
	case *Function:
		b.WriteString("<fun ")
		b.WriteString(x.Name())
		b.WriteByte('>')
	case *Builtin:
		b.WriteString("<native fun ")
		b.WriteString(x.Name)
		b.WriteByte('>')
	case *BoundMethod:
		b.WriteString("<fun ")
		b.WriteString(x.Method.Class.Name)
		b.WriteByte('.')
		b.WriteString(x.Method.Name())
		b.WriteByte('>')
	case *Class:
		b.WriteString("<class ")
		b.WriteString(x.Name)
		b.WriteByte('>')
	case *Instance:
		b.WriteByte('<')
		b.WriteString(x.Class.Name)
		b.WriteString(" instance>")
	default:
		b.WriteString("<unknown>")
	}
}

func formatFields(b *strings.Builder, m map[string]Value) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		format(b, m[k])
	}
	b.WriteByte('}')
}

func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
