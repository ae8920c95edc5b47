package lox

// Value is a Lox runtime value. The set of value types is closed: Number,
// Bool, String, NilValue, *Array, *Object, *Function, *Builtin, *BoundMethod,
// *Class, and *Instance.
//
// Values have value semantics. Every store of a value into a variable,
// parameter, element, or field goes through Copy, so no two bindings share a
// mutable Array, Object, or Instance. Functions, builtins, and classes are
// immutable from Lox's point of view and are shared.
type Value interface {
	loxValue()
}

// Number is a double-precision floating-point number.
type Number float64

// Bool is a boolean.
type Bool bool

// String is an immutable ASCII string.
type String string

// NilValue is the type of Nil.
type NilValue struct{}

// Nil is the nil value.
var Nil = NilValue{}

// Array is a fixed-length sequence of values.
type Array struct {
	Elems []Value
}

// Object is a mapping from string keys to values.
type Object struct {
	Fields map[string]Value
}

// Function is a user-defined function or method together with the
// environment in which it was declared.
type Function struct {
	Decl    *FunStmt
	Closure *Env
	// Class is the class that declared the function when it is a method.
	Class *Class
}

// BuiltinFn is the implementation of a builtin function. Errors returned by
// builtins should be *RuntimeError; the evaluator fills in the line.
type BuiltinFn func(vm *VM, args []Value) (Value, error)

// Builtin is a function implemented in Go.
type Builtin struct {
	Name string
	// Arity is the exact number of arguments, or -1 for variadic builtins.
	Arity int
	Fn    BuiltinFn
}

// BoundMethod is a method together with the receiver it was looked up on.
type BoundMethod struct {
	Receiver Value
	Method   *Function
}

// Class is a class declaration. Fields and methods are static: they belong to
// the class, and every instance reads them through the class.
type Class struct {
	id      uintptr
	Name    string
	Super   *Class
	Fields  map[string]*binding
	Methods map[string]*Function
}

// Instance is an object created by calling a class. Fields holds values
// written through the instance, which shadow the class's fields for that
// instance only.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func (Number) loxValue()       {}
func (Bool) loxValue()         {}
func (String) loxValue()       {}
func (NilValue) loxValue()     {}
func (*Array) loxValue()       {}
func (*Object) loxValue()      {}
func (*Function) loxValue()    {}
func (*Builtin) loxValue()     {}
func (*BoundMethod) loxValue() {}
func (*Class) loxValue()       {}
func (*Instance) loxValue()    {}

// Name returns the function's declared name.
func (f *Function) Name() string {
	return f.Decl.Name.Lexeme
}

// Arity returns the number of parameters the function accepts.
func (f *Function) Arity() int {
	return len(f.Decl.Params)
}

// NewArray creates an array holding copies of the given values.
func NewArray(elems ...Value) *Array {
	a := &Array{Elems: make([]Value, len(elems))}
	for i, v := range elems {
		a.Elems[i] = Copy(v)
	}
	return a
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{Fields: make(map[string]Value)}
}

// TypeName returns the name of the value's type as reported by var_type.
func TypeName(v Value) string {
	switch v.(type) {
	case Number:
		return "Number"
	case Bool:
		return "Bool"
	case String:
		return "String"
	case NilValue:
		return "Nil"
	case *Array:
		return "Array"
	case *Object:
		return "Object"
	case *Function:
		return "Function"
	case *Builtin:
		return "Native function"
	case *BoundMethod:
		return "Method"
	case *Class:
		return "Class"
	case *Instance:
		return "Instance"
	}
	return "Unknown"
}

// Equal reports whether two values have equal content. Values of different
// types are never equal. Functions and classes are equal only to themselves.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case NilValue:
		_, ok := b.(NilValue)
		return ok
	case *Array:
		y, ok := b.(*Array)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !Equal(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		return ok && fieldsEqual(x.Fields, y.Fields)
	case *Instance:
		y, ok := b.(*Instance)
		return ok && x.Class == y.Class && fieldsEqual(x.Fields, y.Fields)
	case *BoundMethod:
		y, ok := b.(*BoundMethod)
		return ok && x.Method == y.Method && Equal(x.Receiver, y.Receiver)
	}
	return a == b
}

func fieldsEqual(x, y map[string]Value) bool {
	if len(x) != len(y) {
		return false
	}
	for k, v := range x {
		w, ok := y[k]
		if !ok || !Equal(v, w) {
			return false
		}
	}
	return true
}
