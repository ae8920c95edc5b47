package lox

import "math"

// eval evaluates an expression. Values read from variables, elements, and
// fields are returned without copying; every place that stores a value
// copies it.
func (vm *VM) eval(e Expr, env *Env) (Value, error) {
	switch e := e.(type) {
	case *Literal:
		return e.Value, nil
	case *Variable:
		v, err := env.Get(e.Name.Lexeme)
		return v, atLine(err, e.Name.Line)
	case *Unary:
		return vm.evalUnary(e, env)
	case *Binary:
		l, err := vm.eval(e.Left, env)
		if err != nil {
			return nil, err
		}
		r, err := vm.eval(e.Right, env)
		if err != nil {
			return nil, err
		}
		return binary(e.Op, l, r)
	case *Logical:
		return vm.evalLogical(e, env)
	case *Assign:
		v, err := vm.eval(e.Value, env)
		if err != nil {
			return nil, err
		}
		v = Copy(v)
		if err := vm.store(e.Target, v, env); err != nil {
			return nil, err
		}
		return v, nil
	case *Call:
		return vm.evalCall(e, env)
	case *ArrayLit:
		a := &Array{Elems: make([]Value, len(e.Elems))}
		for i, x := range e.Elems {
			v, err := vm.eval(x, env)
			if err != nil {
				return nil, err
			}
			a.Elems[i] = Copy(v)
		}
		return a, nil
	case *ObjectLit:
		o := NewObject()
		for i, x := range e.Values {
			v, err := vm.eval(x, env)
			if err != nil {
				return nil, err
			}
			o.Fields[e.Keys[i]] = Copy(v)
		}
		return o, nil
	case *Index:
		obj, err := vm.eval(e.Object, env)
		if err != nil {
			return nil, err
		}
		idx, err := vm.eval(e.Index, env)
		if err != nil {
			return nil, err
		}
		return index(obj, idx, e.Bracket.Line)
	case *Get:
		obj, err := vm.eval(e.Object, env)
		if err != nil {
			return nil, err
		}
		return vm.getMember(obj, e.Name.Lexeme, e.Name.Line)
	case *This:
		v, err := env.Get("this")
		if err != nil {
			return nil, rtErr(UndefinedVariableError, e.Keyword.Line, "'this' outside of a method")
		}
		return v, nil
	case *Super:
		return vm.evalSuper(e, env)
	}
	panic("lox: unknown expression type")
}

func (vm *VM) evalUnary(e *Unary, env *Env) (Value, error) {
	v, err := vm.eval(e.Right, env)
	if err != nil {
		return nil, err
	}
	switch e.Op.Kind {
	case bangToken:
		if b, ok := v.(Bool); ok {
			return !b, nil
		}
	case minusToken:
		if n, ok := v.(Number); ok {
			return -n, nil
		}
	}
	return nil, rtErr(TypeMismatchError, e.Op.Line, "invalid operand to %s: %s", e.Op.Kind, TypeName(v))
}

func (vm *VM) evalLogical(e *Logical, env *Env) (Value, error) {
	l, err := vm.eval(e.Left, env)
	if err != nil {
		return nil, err
	}
	lb, ok := l.(Bool)
	if !ok {
		return nil, rtErr(TypeMismatchError, e.Op.Line, "left operand of %s must be Bool, got %s", e.Op.Kind, TypeName(l))
	}
	if e.Op.Kind == orToken && bool(lb) || e.Op.Kind == andToken && !bool(lb) {
		return lb, nil
	}
	r, err := vm.eval(e.Right, env)
	if err != nil {
		return nil, err
	}
	rb, ok := r.(Bool)
	if !ok {
		return nil, rtErr(TypeMismatchError, e.Op.Line, "right operand of %s must be Bool, got %s", e.Op.Kind, TypeName(r))
	}
	return rb, nil
}

func (vm *VM) evalSuper(e *Super, env *Env) (Value, error) {
	sv, err := env.Get("super")
	if err != nil {
		return nil, rtErr(UndefinedClassError, e.Keyword.Line, "'super' outside of a subclass method")
	}
	this, err := env.Get("this")
	if err != nil {
		return nil, rtErr(UndefinedClassError, e.Keyword.Line, "'super' outside of a subclass method")
	}
	return classMember(sv.(*Class), this, e.Method.Lexeme, e.Method.Line)
}

// binary applies an arithmetic, comparison, or equality operator.
func binary(op Token, l, r Value) (Value, error) {
	switch op.Kind {
	case equalEqualToken:
		return Bool(Equal(l, r)), nil
	case bangEqualToken:
		return Bool(!Equal(l, r)), nil
	case lessToken, lessEqualToken, greaterToken, greaterEqualToken:
		return compare(op, l, r)
	case plusToken:
		if ls, ok := l.(String); ok {
			if rs, ok := r.(String); ok {
				return ls + rs, nil
			}
		}
	}
	x, ok1 := l.(Number)
	y, ok2 := r.(Number)
	if !ok1 || !ok2 {
		return nil, mismatch(op, l, r)
	}
	switch op.Kind {
	case plusToken:
		return x + y, nil
	case minusToken:
		return x - y, nil
	case starToken:
		return x * y, nil
	case slashToken:
		if y == 0 {
			return nil, rtErr(DivisionByZeroError, op.Line, "division by zero")
		}
		return x / y, nil
	case percentToken:
		if y == 0 {
			return nil, rtErr(DivisionByZeroError, op.Line, "modulo by zero")
		}
		return Number(math.Mod(float64(x), float64(y))), nil
	}
	panic("lox: unknown binary operator " + op.Kind.String())
}

// compare orders two values of the same type. Numbers and strings are
// ordered naturally, and false is less than true.
func compare(op Token, l, r Value) (Value, error) {
	var c int
	switch x := l.(type) {
	case Number:
		y, ok := r.(Number)
		if !ok {
			return nil, mismatch(op, l, r)
		}
		// Comparisons involving NaN are all false.
		if math.IsNaN(float64(x)) || math.IsNaN(float64(y)) {
			return Bool(false), nil
		}
		c = cmp3(x < y, x > y)
	case String:
		y, ok := r.(String)
		if !ok {
			return nil, mismatch(op, l, r)
		}
		c = cmp3(x < y, x > y)
	case Bool:
		y, ok := r.(Bool)
		if !ok {
			return nil, mismatch(op, l, r)
		}
		c = cmp3(!bool(x) && bool(y), bool(x) && !bool(y))
	default:
		return nil, mismatch(op, l, r)
	}
	switch op.Kind {
	case lessToken:
		return Bool(c < 0), nil
	case lessEqualToken:
		return Bool(c <= 0), nil
	case greaterToken:
		return Bool(c > 0), nil
	default:
		return Bool(c >= 0), nil
	}
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}

func mismatch(op Token, l, r Value) error {
	return rtErr(TypeMismatchError, op.Line, "invalid operands to %s: %s and %s", op.Kind, TypeName(l), TypeName(r))
}

// intIndex converts an index value to an int in [0, n).
func intIndex(idx Value, n int, line int) (int, error) {
	x, ok := idx.(Number)
	if !ok {
		return 0, rtErr(TypeMismatchError, line, "index must be Number, got %s", TypeName(idx))
	}
	i := int(x)
	if float64(i) != float64(x) || i < 0 || i >= n {
		return 0, rtErr(IndexOutOfRangeError, line, "index %s out of range for length %d", formatNumber(float64(x)), n)
	}
	return i, nil
}

// index reads an element of an array or string or a key of an object.
func index(obj, idx Value, line int) (Value, error) {
	switch o := obj.(type) {
	case *Array:
		i, err := intIndex(idx, len(o.Elems), line)
		if err != nil {
			return nil, err
		}
		return o.Elems[i], nil
	case String:
		i, err := intIndex(idx, len(o), line)
		if err != nil {
			return nil, err
		}
		return o[i : i+1], nil
	case *Object:
		k, ok := idx.(String)
		if !ok {
			return nil, rtErr(TypeMismatchError, line, "object key must be String, got %s", TypeName(idx))
		}
		v, ok := o.Fields[string(k)]
		if !ok {
			return nil, rtErr(UndefinedKeyError, line, "object has no key %s", Repr(k))
		}
		return v, nil
	}
	return nil, rtErr(TypeMismatchError, line, "cannot index %s", TypeName(obj))
}

// store writes v, which must already be copied, to an assignment target.
func (vm *VM) store(target Expr, v Value, env *Env) error {
	switch t := target.(type) {
	case *Variable:
		return atLine(env.Assign(t.Name.Lexeme, v), t.Name.Line)
	case *Index:
		if err := checkRoot(t, env); err != nil {
			return err
		}
		obj, err := vm.container(t.Object, env)
		if err != nil {
			return err
		}
		idx, err := vm.eval(t.Index, env)
		if err != nil {
			return err
		}
		line := t.Bracket.Line
		switch o := obj.(type) {
		case *Array:
			i, err := intIndex(idx, len(o.Elems), line)
			if err != nil {
				return err
			}
			o.Elems[i] = v
			return nil
		case *Object:
			k, ok := idx.(String)
			if !ok {
				return rtErr(TypeMismatchError, line, "object key must be String, got %s", TypeName(idx))
			}
			o.Fields[string(k)] = v
			return nil
		case String:
			i, err := intIndex(idx, len(o), line)
			if err != nil {
				return err
			}
			s, ok := v.(String)
			if !ok {
				return rtErr(TypeMismatchError, line, "cannot store %s into a string", TypeName(v))
			}
			switch t.Object.(type) {
			case *Variable, *Index, *Get:
			default:
				return rtErr(TypeMismatchError, line, "cannot assign into a string that is not stored in a variable")
			}
			// Strings are immutable, so build a new one and store it back.
			return vm.store(t.Object, o[:i]+s+o[i+1:], env)
		}
		return rtErr(TypeMismatchError, line, "cannot index %s", TypeName(obj))
	case *Get:
		if err := checkRoot(t, env); err != nil {
			return err
		}
		obj, err := vm.container(t.Object, env)
		if err != nil {
			return err
		}
		return vm.setMember(obj, t.Name.Lexeme, v, t.Name.Line)
	}
	panic("lox: invalid assignment target")
}

// container evaluates the value an element or member write goes into. When
// that value is a class field read through an instance that has not yet
// written it, the instance gets its own copy first, so the write is seen only
// by that instance. Outer containers resolve the same way, so a write at any
// depth below an instance's inherited field copies that field.
func (vm *VM) container(e Expr, env *Env) (Value, error) {
	switch e := e.(type) {
	case *Index:
		obj, err := vm.container(e.Object, env)
		if err != nil {
			return nil, err
		}
		idx, err := vm.eval(e.Index, env)
		if err != nil {
			return nil, err
		}
		return index(obj, idx, e.Bracket.Line)
	case *Get:
		recv, err := vm.container(e.Object, env)
		if err != nil {
			return nil, err
		}
		return vm.ownMember(recv, e.Name.Lexeme, e.Name.Line)
	}
	return vm.eval(e, env)
}

// ownMember reads a member that is about to be written into, copying an
// inherited class field into an instance first.
func (vm *VM) ownMember(recv Value, name string, line int) (Value, error) {
	var c *Class
	switch r := recv.(type) {
	case *Instance:
		if v, ok := r.Fields[name]; ok {
			return v, nil
		}
		c = r.Class
	case *Class:
		c = r
	default:
		return vm.getMember(recv, name, line)
	}
	owner, b := c.field(name)
	if b == nil {
		return vm.getMember(recv, name, line)
	}
	if b.constant {
		return nil, rtErr(ConstReassignmentError, line, "cannot modify constant field %s of %s", name, owner.Name)
	}
	if inst, ok := recv.(*Instance); ok {
		v := Copy(b.value)
		inst.Fields[name] = v
		return v, nil
	}
	return b.value, nil
}

// checkRoot rejects element and member writes into a value held by a
// constant. Classes are bound as constants but their fields stay writable.
func checkRoot(target Expr, env *Env) error {
	for {
		switch t := target.(type) {
		case *Index:
			target = t.Object
			continue
		case *Get:
			target = t.Object
			continue
		case *Variable:
			name := t.Name.Lexeme
			if !env.IsConst(name) {
				return nil
			}
			if v, _ := env.Get(name); v != nil {
				if _, ok := v.(*Class); ok {
					return nil
				}
			}
			return rtErr(ConstReassignmentError, t.Name.Line, "cannot modify constant %s", name)
		}
		return nil
	}
}
