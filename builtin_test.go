package lox

import (
	"bufio"
	"errors"
	"strings"
	"testing"
	"time"
)

// TestBuiltins tests the core builtin functions.
func TestBuiltins(t *testing.T) {
	cases := map[string]SourceTestCase{
		"Min":              {`min(3, 1, 2)`, PassEqual(Number(1))},
		"Min-array":        {`min([3, -1, 2])`, PassEqual(Number(-1))},
		"Min-one":          {`min(4)`, PassEqual(Number(4))},
		"Max":              {`max(3, 1, 2)`, PassEqual(Number(3))},
		"Max-array":        {`max([0.5, 0.25])`, PassEqual(Number(0.5))},
		"Min-empty":        {`min([])`, PassFailure(EmptyCollectionError)},
		"Max-none":         {`max()`, PassFailure(EmptyCollectionError)},
		"Min-type":         {`min([1, "2"])`, PassFailure(TypeMismatchError)},
		"Max-type":         {`max(1, nil)`, PassFailure(TypeMismatchError)},
		"Max-nested":       {`max([[1]])`, PassFailure(TypeMismatchError)},
		"Number":           {`number("42")`, PassEqual(Number(42))},
		"Number-fraction":  {`number("-3.25")`, PassEqual(Number(-3.25))},
		"Number-plus":      {`number("+7")`, PassEqual(Number(7))},
		"Number-space":     {`number(" 5 ")`, PassEqual(Number(5))},
		"Number-number":    {`number(1.5)`, PassEqual(Number(1.5))},
		"Number-bool":      {`[number(true), number(false)]`, PassEqual(arr(Number(1), Number(0)))},
		"Number-bad":       {`number("abc")`, PassFailure(InvalidCastError)},
		"Number-empty":     {`number("")`, PassFailure(InvalidCastError)},
		"Number-dot":       {`number("1.")`, PassFailure(InvalidCastError)},
		"Number-lead-dot":  {`number(".5")`, PassFailure(InvalidCastError)},
		"Number-exponent":  {`number("1e3")`, PassFailure(InvalidCastError)},
		"Number-signs":     {`number("--1")`, PassFailure(InvalidCastError)},
		"Number-inf":       {`number("inf")`, PassFailure(InvalidCastError)},
		"Number-nil":       {`number(nil)`, PassFailure(InvalidCastError)},
		"Number-array":     {`number([1])`, PassFailure(InvalidCastError)},
		"Bool":             {`[bool(0), bool(2), bool(""), bool("x"), bool(true)]`, PassEqual(arr(Bool(false), Bool(true), Bool(false), Bool(true), Bool(true)))},
		"Bool-nil":         {`bool(nil)`, PassFailure(InvalidCastError)},
		"Bool-array":       {`bool([])`, PassFailure(InvalidCastError)},
		"String":           {`[string(1.5), string(10), string(true), string("s")]`, PassEqual(arr(String("1.5"), String("10"), String("true"), String("s")))},
		"String-nil":       {`string(nil)`, PassFailure(InvalidCastError)},
		"String-array":     {`string([1])`, PassFailure(InvalidCastError)},
		"String-function":  {`fun f() {} string(f)`, PassFailure(InvalidCastError)},
		"Round-trip":       {`string(number("12.5")) == "12.5"`, PassEqual(Bool(true))},
		"Round-trip-canon": {`[string(number("2.50")), string(number("007")), string(number("+3"))]`, PassEqual(arr(String("2.5"), String("7"), String("3")))},
		"Len-array":        {`len([1, [2, 3]])`, PassEqual(Number(2))},
		"Len-string":       {`len("hello")`, PassEqual(Number(5))},
		"Len-empty":        {`[len(""), len([])]`, PassEqual(arr(Number(0), Number(0)))},
		"Len-number":       {`len(5)`, PassFailure(TypeMismatchError)},
		"Len-object":       {`len({})`, PassFailure(TypeMismatchError)},
		"Reverse-array":    {`reverse([1, 2, 3])`, PassEqual(arr(Number(3), Number(2), Number(1)))},
		"Reverse-string":   {`reverse("abc")`, PassEqual(String("cba"))},
		"Reverse-copy":     {`var a = [1, 2]; var r = reverse(a); r[0] = 9; a`, PassEqual(arr(Number(1), Number(2)))},
		"Reverse-twice":    {`var a = [1, [2], "x"]; reverse(reverse(a)) == a`, PassEqual(Bool(true))},
		"Reverse-number":   {`reverse(1)`, PassFailure(TypeMismatchError)},
		"Clock":            {`var a = clock(); var b = clock(); b >= a and a > 0`, PassEqual(Bool(true))},
		"Arity":            {`len(1, 2)`, PassFailure(ArityError)},
		"Arity-none":       {`clock(1)`, PassFailure(ArityError)},
		"Error-line":       {"var x = 1;\n\nnumber(\"x\");", PassFailureAt(InvalidCastError, 3)},
		"Var-type-all":     {`class A {} fun f() {} [var_type(1), var_type(true), var_type("s"), var_type(nil), var_type([]), var_type({a: 1}), var_type(f), var_type(A), var_type(A())]`, PassEqual(arr(String("Number"), String("Bool"), String("String"), String("Nil"), String("Array"), String("Object"), String("Function"), String("Class"), String("Instance")))},
		"Var-type-builtin": {`var_type(len)`, PassEqual(String("Native function"))},
	}
	runCases(t, cases)
}

func TestScan(t *testing.T) {
	vm, _ := testingVM()
	vm.Stdin = bufio.NewReader(strings.NewReader("first line\r\nsecond\nlast"))
	want := []string{"first line", "second", "last", ""}
	for _, w := range want {
		r, err := vm.DoString("scan()")
		if err != nil {
			t.Fatal(err)
		}
		if r != String(w) {
			t.Errorf("scan gave %s, want %q", Repr(r), w)
		}
	}
}

func TestClock(t *testing.T) {
	vm, _ := testingVM()
	before := float64(time.Now().Unix())
	r, err := vm.DoString("clock()")
	if err != nil {
		t.Fatal(err)
	}
	n, ok := r.(Number)
	if !ok {
		t.Fatalf("clock gave %T", r)
	}
	if float64(n) < before || float64(n) > before+60 {
		t.Errorf("clock gave %v, expected near %v", n, before)
	}
}

func TestParseNumber(t *testing.T) {
	cases := map[string]struct {
		in   string
		want Number
		ok   bool
	}{
		"Int":        {"12", 12, true},
		"Float":      {"1.5", 1.5, true},
		"Neg":        {"-0.5", -0.5, true},
		"Pos":        {"+3", 3, true},
		"Space":      {"\t8\n", 8, true},
		"Sign-only":  {"-", 0, false},
		"Dot-only":   {".", 0, false},
		"Two-dots":   {"1.2.3", 0, false},
		"Trailing":   {"12a", 0, false},
		"Inner-sign": {"1-2", 0, false},
		"Hex":        {"0x10", 0, false},
		"Empty":      {"", 0, false},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := parseNumber(c.in)
			if ok != c.ok || got != c.want {
				t.Errorf("parseNumber(%q) = %v, %v; want %v, %v", c.in, got, ok, c.want, c.ok)
			}
		})
	}
}

func TestDefineBuiltin(t *testing.T) {
	vm, out := testingVM()
	vm.DefineBuiltin("shout", 1, func(vm *VM, args []Value) (Value, error) {
		s, ok := args[0].(String)
		if !ok {
			return nil, rtErr(TypeMismatchError, 0, "shout requires String")
		}
		return String(strings.ToUpper(string(s))) + "!", nil
	})
	vm.DefineBuiltin("count", -5, func(vm *VM, args []Value) (Value, error) {
		return Number(len(args)), nil
	})
	r, err := vm.DoString(`println shout("hi"); count(1, 2, 3)`)
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "HI!\n" {
		t.Errorf("wrong output %q", out.String())
	}
	if r != Number(3) {
		t.Errorf("count gave %s", Repr(r))
	}
	_, err = vm.DoString("\nshout(1);")
	var re *RuntimeError
	if !errors.As(err, &re) || re.Kind != TypeMismatchError || re.Line != 2 {
		t.Errorf("wrong error from builtin: %v", err)
	}
	_, err = vm.DoString("shout();")
	if !errors.As(err, &re) || re.Kind != ArityError {
		t.Errorf("wrong arity error from builtin: %v", err)
	}
}
