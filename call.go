package lox

// evalCall evaluates a call expression. Arguments are evaluated left to right
// and copied before the callee sees them.
func (vm *VM) evalCall(e *Call, env *Env) (Value, error) {
	callee, err := vm.eval(e.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]Value, len(e.Args))
	for i, arg := range e.Args {
		v, err := vm.eval(arg, env)
		if err != nil {
			return nil, err
		}
		args[i] = Copy(v)
	}
	return vm.Call(callee, args, e.Paren.Line)
}

// Call calls a function, builtin, bound method, or class with the given
// arguments. line is used for errors that occur in the call itself.
func (vm *VM) Call(callee Value, args []Value, line int) (Value, error) {
	switch f := callee.(type) {
	case *Function:
		return vm.invoke(f, nil, args, line)
	case *BoundMethod:
		return vm.invoke(f.Method, f.Receiver, args, line)
	case *Builtin:
		if f.Arity >= 0 && len(args) != f.Arity {
			return nil, rtErr(ArityError, line, "%s expects %d arguments but got %d", f.Name, f.Arity, len(args))
		}
		r, err := f.Fn(vm, args)
		if err != nil {
			return nil, atLine(err, line)
		}
		return r, nil
	case *Class:
		return vm.instantiate(f, args, line)
	}
	return nil, rtErr(TypeMismatchError, line, "%s is not callable", TypeName(callee))
}

// invoke runs a user function in a new scope whose parent is the function's
// closure. For methods, this and super are bound in that scope.
func (vm *VM) invoke(f *Function, this Value, args []Value, line int) (Value, error) {
	if len(args) != f.Arity() {
		return nil, rtErr(ArityError, line, "%s expects %d arguments but got %d", f.Name(), f.Arity(), len(args))
	}
	env := NewEnv(f.Closure)
	if f.Class != nil {
		env.Define("this", this, false)
		if f.Class.Super != nil {
			env.Define("super", f.Class.Super, true)
		}
	}
	for i, p := range f.Decl.Params {
		env.Define(p.Lexeme, args[i], false)
	}
	result, stop, err := vm.execBlock(f.Decl.Body, env)
	if err != nil {
		return nil, err
	}
	switch stop {
	case NoStop:
		return Nil, nil
	case ReturnStop:
		if result == nil {
			return Nil, nil
		}
		if isConstructor(f) {
			return nil, rtErr(ConstructorReturnError, vm.stopLine, "constructor %s cannot return a value", f.Name())
		}
		return result, nil
	default:
		return nil, stop.Err(vm.stopLine)
	}
}

// instantiate creates an instance of c and runs its constructor, if any.
func (vm *VM) instantiate(c *Class, args []Value, line int) (Value, error) {
	inst := &Instance{Class: c, Fields: make(map[string]Value)}
	ctor := c.Constructor()
	if ctor == nil {
		if len(args) != 0 {
			return nil, rtErr(ArityError, line, "class %s has no constructor and expects 0 arguments but got %d", c.Name, len(args))
		}
		return inst, nil
	}
	if _, err := vm.invoke(ctor, inst, args, line); err != nil {
		return nil, err
	}
	return inst, nil
}
