package lox

import (
	"math"
	"testing"
)

// TestArithmetic tests the arithmetic operators.
func TestArithmetic(t *testing.T) {
	cases := map[string]SourceTestCase{
		"Add":            {`1 + 2`, PassEqual(Number(3))},
		"Sub":            {`1 - 2`, PassEqual(Number(-1))},
		"Mul":            {`3 * 4`, PassEqual(Number(12))},
		"Div":            {`7 / 2`, PassEqual(Number(3.5))},
		"Mod":            {`7 % 3`, PassEqual(Number(1))},
		"Mod-negative":   {`-7 % 3`, PassEqual(Number(-1))},
		"Mod-fraction":   {`5.5 % 2`, PassEqual(Number(1.5))},
		"Neg":            {`-(2 + 3)`, PassEqual(Number(-5))},
		"Precedence":     {`2 + 3 * 4 - 6 / 2`, PassEqual(Number(11))},
		"Concat":         {`"ab" + 'cd'`, PassEqual(String("abcd"))},
		"Concat-empty":   {`"" + ""`, PassEqual(String(""))},
		"Div-zero":       {`1 / 0`, PassFailure(DivisionByZeroError)},
		"Mod-zero":       {`1 % 0`, PassFailure(DivisionByZeroError)},
		"Div-zero-line":  {"var a = 1;\n\na / (a - 1);", PassFailureAt(DivisionByZeroError, 3)},
		"Add-mixed":      {`1 + "a"`, PassFailure(TypeMismatchError)},
		"Add-mixed-rev":  {`"a" + 1`, PassFailure(TypeMismatchError)},
		"Add-bool":       {`true + true`, PassFailure(TypeMismatchError)},
		"Add-nil":        {`nil + 1`, PassFailure(TypeMismatchError)},
		"Add-array":      {`[1] + [2]`, PassFailure(TypeMismatchError)},
		"Sub-string":     {`"a" - "a"`, PassFailure(TypeMismatchError)},
		"Neg-string":     {`-"a"`, PassFailure(TypeMismatchError)},
		"Not-number":     {`!1`, PassFailure(TypeMismatchError)},
		"Mismatch-line":  {"\n\n1 *\n'x';", PassFailureAt(TypeMismatchError, 3)},
		"Compound-add":   {`var a = 1; a += 2; a`, PassEqual(Number(3))},
		"Compound-sub":   {`var a = 1; a -= 2; a`, PassEqual(Number(-1))},
		"Compound-mul":   {`var a = 3; a *= 2; a`, PassEqual(Number(6))},
		"Compound-div":   {`var a = 3; a /= 2; a`, PassEqual(Number(1.5))},
		"Compound-mod":   {`var a = 7; a %= 4; a`, PassEqual(Number(3))},
		"Compound-str":   {`var s = "a"; s += "b"; s`, PassEqual(String("ab"))},
		"Compound-value": {`var a = 1; a += 1`, PassEqual(Number(2))},
		"Compound-elem":  {`var a = [1, 2]; a[1] *= 10; a`, PassEqual(arr(Number(1), Number(20)))},
		"Assign-value":   {`var a; var b; a = b = 5; [a, b]`, PassEqual(arr(Number(5), Number(5)))},
	}
	runCases(t, cases)
}

// TestComparison tests the comparison, equality, and logical operators.
func TestComparison(t *testing.T) {
	cases := map[string]SourceTestCase{
		"Less":             {`1 < 2`, PassEqual(Bool(true))},
		"Less-equal":       {`2 <= 2`, PassEqual(Bool(true))},
		"Greater":          {`1 > 2`, PassEqual(Bool(false))},
		"Greater-equal":    {`1 >= 2`, PassEqual(Bool(false))},
		"String-less":      {`"abc" < "abd"`, PassEqual(Bool(true))},
		"String-prefix":    {`"ab" < "abc"`, PassEqual(Bool(true))},
		"Bool-order":       {`false < true`, PassEqual(Bool(true))},
		"Bool-order-eq":    {`true >= true`, PassEqual(Bool(true))},
		"Mixed":            {`1 < "2"`, PassFailure(TypeMismatchError)},
		"Nil":              {`nil < nil`, PassFailure(TypeMismatchError)},
		"Array":            {`[1] < [2]`, PassFailure(TypeMismatchError)},
		"Eq-number":        {`1 == 1.0`, PassEqual(Bool(true))},
		"Eq-mixed":         {`1 == "1"`, PassEqual(Bool(false))},
		"Eq-nil":           {`nil == nil`, PassEqual(Bool(true))},
		"Eq-nil-false":     {`nil == false`, PassEqual(Bool(false))},
		"Neq":              {`1 != 2`, PassEqual(Bool(true))},
		"Eq-array":         {`[1, [2, "x"]] == [1, [2, "x"]]`, PassEqual(Bool(true))},
		"Eq-array-len":     {`[1, 2] == [1]`, PassEqual(Bool(false))},
		"Eq-object":        {`var a = 1; ({a, b: 2}) == {b: 2, a: 1}`, PassEqual(Bool(true))},
		"Eq-object-diff":   {`({a: 1}) == {a: 2}`, PassEqual(Bool(false))},
		"Eq-function":      {`fun f() {} var g = f; f == g`, PassEqual(Bool(true))},
		"Eq-function-diff": {`fun f() {} fun g() {} f == g`, PassEqual(Bool(false))},
		"Eq-builtin":       {`len == len`, PassEqual(Bool(true))},
		"Eq-class":         {`class A {} class B {} [A == A, A == B]`, PassEqual(arr(Bool(true), Bool(false)))},
		"Eq-instance":      {`class A {} A() == A()`, PassEqual(Bool(true))},
		"And":              {`true and false`, PassEqual(Bool(false))},
		"Or":               {`false or true`, PassEqual(Bool(true))},
		"Not":              {`!false`, PassEqual(Bool(true))},
		"And-short":        {`false and 1`, PassEqual(Bool(false))},
		"Or-short":         {`true or undefined_name`, PassEqual(Bool(true))},
		"And-left-type":    {`1 and true`, PassFailure(TypeMismatchError)},
		"And-right-type":   {`true and 1`, PassFailure(TypeMismatchError)},
		"Or-right-type":    {`false or nil`, PassFailure(TypeMismatchError)},
		"Short-effects":    {`var n = 0; fun f() { n += 1; return true; } false and f(); true or f(); n`, PassEqual(Number(0))},
	}
	runCases(t, cases)
}

// TestNaN tests that comparisons involving NaN are false.
func TestNaN(t *testing.T) {
	vm, _ := testingVM()
	vm.Globals.Define("nan", Number(math.NaN()), true)
	for _, src := range []string{"nan < 1", "nan > 1", "nan <= nan", "nan >= 1", "1 < nan", "nan == nan"} {
		r, err := vm.DoString(src)
		if err != nil {
			t.Errorf("%q failed: %v", src, err)
			continue
		}
		if r != Bool(false) {
			t.Errorf("%q gave %s, want false", src, Repr(r))
		}
	}
	r, err := vm.DoString("nan != nan")
	if err != nil || r != Bool(true) {
		t.Errorf("nan != nan gave %v, %v", r, err)
	}
}

// TestIndex tests reading and writing elements of arrays, strings, and
// objects.
func TestIndex(t *testing.T) {
	cases := map[string]SourceTestCase{
		"Array":              {`[1, 2, 3][1]`, PassEqual(Number(2))},
		"Array-nested":       {`[[1], [2, 3]][1][0]`, PassEqual(Number(2))},
		"Array-write":        {`var a = [1, 2]; a[0] = 5; a`, PassEqual(arr(Number(5), Number(2)))},
		"Array-write-nested": {`var a = [[1], [2]]; a[1][0] = 5; a`, PassEqual(arr(arr(Number(1)), arr(Number(5))))},
		"Array-negative":     {`[1][-1]`, PassFailure(IndexOutOfRangeError)},
		"Array-past-end":     {`[1, 2][2]`, PassFailure(IndexOutOfRangeError)},
		"Array-fraction":     {`[1, 2][0.5]`, PassFailure(IndexOutOfRangeError)},
		"Array-empty":        {`[][0]`, PassFailure(IndexOutOfRangeError)},
		"Array-write-range":  {`var a = [1]; a[1] = 2;`, PassFailure(IndexOutOfRangeError)},
		"Array-string-idx":   {`[1]["0"]`, PassFailure(TypeMismatchError)},
		"Array-range-line":   {"var a = [1];\na[3];", PassFailureAt(IndexOutOfRangeError, 2)},
		"String":             {`"hello"[1]`, PassEqual(String("e"))},
		"String-range":       {`"hello"[5]`, PassFailure(IndexOutOfRangeError)},
		"String-write":       {`var s = "cat"; s[0] = "b"; s`, PassEqual(String("bat"))},
		"String-write-long":  {`var s = "cat"; s[1] = "oo"; s`, PassEqual(String("coot"))},
		"String-write-elem":  {`var a = ["cat"]; a[0][2] = "r"; a`, PassEqual(arr(String("car")))},
		"String-write-num":   {`var s = "cat"; s[0] = 1;`, PassFailure(TypeMismatchError)},
		"String-write-lit":   {`"cat"[0] = "b";`, PassFailure(TypeMismatchError)},
		"Object":             {`var o = {a: 1}; o["a"]`, PassEqual(Number(1))},
		"Object-dot":         {`var o = {a: {b: 2}}; o.a.b`, PassEqual(Number(2))},
		"Object-quoted":      {`var o = {"two words": 2}; o["two words"]`, PassEqual(Number(2))},
		"Object-missing":     {`var o = {a: 1}; o["b"]`, PassFailure(UndefinedKeyError)},
		"Object-missing-dot": {`var o = {a: 1}; o.b`, PassFailure(UndefinedKeyError)},
		"Object-number-key":  {`var o = {a: 1}; o[0]`, PassFailure(TypeMismatchError)},
		"Object-write-new":   {`var o = {}; o["k"] = 1; o.j = 2; o`, PassEqual(obj("k", Number(1), "j", Number(2)))},
		"Object-write-over":  {`var o = {k: 1}; o.k = [2]; o.k[0] = 3; o`, PassEqual(obj("k", arr(Number(3))))},
		"Index-number":       {`1[0]`, PassFailure(TypeMismatchError)},
		"Index-nil":          {`nil[0]`, PassFailure(TypeMismatchError)},
		"Member-number":      {`var n = 1; n.x`, PassFailure(TypeMismatchError)},
		"Member-array":       {`[1].x`, PassFailure(TypeMismatchError)},
		"Member-write-array": {`var a = [1]; a.x = 1;`, PassFailure(TypeMismatchError)},
		"Index-eval-order":   {`var log = ""; fun f(s, v) { log += s; return v; } f("a", [1, 2])[f("b", 1)]; log`, PassEqual(String("ab"))},
	}
	runCases(t, cases)
}

// TestValueSemantics tests that stores copy values so that no two bindings
// share mutable state.
func TestValueSemantics(t *testing.T) {
	cases := map[string]SourceTestCase{
		"Var":          {`var a = [1, 2]; var b = a; b[0] = 9; a`, PassEqual(arr(Number(1), Number(2)))},
		"Assign":       {`var a = [1]; var b; b = a; b[0] = 9; a`, PassEqual(arr(Number(1)))},
		"Nested":       {`var a = [[1]]; var b = a; b[0][0] = 9; a`, PassEqual(arr(arr(Number(1))))},
		"Object":       {`var a = {k: [1]}; var b = a; b.k[0] = 9; a`, PassEqual(obj("k", arr(Number(1))))},
		"Param":        {`fun f(x) { x[0] = 9; return x; } var a = [1]; var r = f(a); [a, r]`, PassEqual(arr(arr(Number(1)), arr(Number(9))))},
		"Return":       {`var g = [1]; fun f() { return g; } var r = f(); r[0] = 9; g`, PassEqual(arr(Number(1)))},
		"Element":      {`var x = [1]; var a = [x, x]; a[0][0] = 9; [a, x]`, PassEqual(arr(arr(arr(Number(9)), arr(Number(1))), arr(Number(1))))},
		"Element-set":  {`var x = [1]; var a = [0]; a[0] = x; x[0] = 9; a`, PassEqual(arr(arr(Number(1))))},
		"Object-field": {`var x = [1]; var o = {x}; x[0] = 9; o.x`, PassEqual(arr(Number(1)))},
		"Instance":     {`class P { var v = 0; } var p = P(); var q = p; q.v = 5; [p.v, q.v]`, PassEqual(arr(Number(0), Number(5)))},
		"Equal-after":  {`var a = [1, {k: 2}]; var b = a; a == b`, PassEqual(Bool(true))},
		"Closure-copy": {`var a = [1]; fun f() { return a; } var r = f(); r[0] = 2; f()`, PassEqual(arr(Number(1)))},
	}
	runCases(t, cases)
}

// TestConst tests constant bindings.
func TestConst(t *testing.T) {
	cases := map[string]SourceTestCase{
		"Read":         {`const c = 1; c + 1`, PassEqual(Number(2))},
		"Reassign":     {`const c = 1; c = 2;`, PassFailure(ConstReassignmentError)},
		"Compound":     {`const c = 1; c += 2;`, PassFailure(ConstReassignmentError)},
		"Element":      {`const c = [1]; c[0] = 2;`, PassFailure(ConstReassignmentError)},
		"Nested":       {`const c = {a: [1]}; c.a[0] = 2;`, PassFailure(ConstReassignmentError)},
		"String":       {`const s = "ab"; s[0] = "c";`, PassFailure(ConstReassignmentError)},
		"Line":         {"const c = 1;\n\nc = 2;", PassFailureAt(ConstReassignmentError, 3)},
		"Shadow":       {`const c = 1; { var c = 2; c = 3; } c`, PassEqual(Number(1))},
		"Copy-mutable": {`const c = [1]; var v = c; v[0] = 2; [c, v]`, PassEqual(arr(arr(Number(1)), arr(Number(2))))},
		"Function":     {`fun f() {} f = 1;`, PassFailure(ConstReassignmentError)},
		"Class":        {`class A {} A = 1;`, PassFailure(ConstReassignmentError)},
		"Redeclare":    {`const c = 1; var c = 2; c`, PassEqual(Number(2))},
	}
	runCases(t, cases)
}

// TestVariables tests declaration, lookup, and scoping.
func TestVariables(t *testing.T) {
	cases := map[string]SourceTestCase{
		"Uninitialized":  {`var a; a`, PassEqual(Nil)},
		"Undefined":      {`b`, PassFailure(UndefinedVariableError)},
		"Undefined-set":  {`b = 1;`, PassFailure(UndefinedVariableError)},
		"Undefined-line": {"var a = 1;\nprint a;\nprint b;", PassFailureAt(UndefinedVariableError, 3)},
		"Block-scope":    {`{ var inner = 1; } inner`, PassFailure(UndefinedVariableError)},
		"Shadow":         {`var a = 1; { var a = 2; } a`, PassEqual(Number(1))},
		"Outer-assign":   {`var a = 1; { a = 2; } a`, PassEqual(Number(2))},
		"If-scope":       {`if true { var x = 1; } x`, PassFailure(UndefinedVariableError)},
		"Redeclare":      {`var a = 1; var a = 2; a`, PassEqual(Number(2))},
		"Self-init":      {`var a = 1; var r; { var a = a + 1; r = a; } [a, r]`, PassEqual(arr(Number(1), Number(2)))},
		"Builtin-shadow": {`fun len(x) { return 0; } len([1, 2])`, PassEqual(Number(0))},
		"This-outside":   {`this`, PassFailure(UndefinedVariableError)},
		"Super-outside":  {`super.x`, PassFailure(UndefinedClassError)},
	}
	runCases(t, cases)
}
