package lox

// binding is a single named slot.
type binding struct {
	value    Value
	constant bool
}

// Env is one scope in a chain of scopes. Lookups search the scope itself,
// then each parent in turn. Closures share Envs; they are never copied except
// by Clone.
type Env struct {
	vars   map[string]*binding
	parent *Env
}

// NewEnv creates an empty scope whose parent is parent, which may be nil.
func NewEnv(parent *Env) *Env {
	return &Env{vars: make(map[string]*binding), parent: parent}
}

// Parent returns the enclosing scope.
func (e *Env) Parent() *Env {
	return e.parent
}

// Define creates or overwrites a binding in this scope. The value is stored
// as given; callers copy values before defining them.
func (e *Env) Define(name string, v Value, constant bool) {
	e.vars[name] = &binding{value: v, constant: constant}
}

// lookup finds the binding for name in the chain.
func (e *Env) lookup(name string) *binding {
	for s := e; s != nil; s = s.parent {
		if b, ok := s.vars[name]; ok {
			return b
		}
	}
	return nil
}

// Get returns the value bound to name in the nearest scope defining it.
func (e *Env) Get(name string) (Value, error) {
	b := e.lookup(name)
	if b == nil {
		return nil, rtErr(UndefinedVariableError, 0, "undefined variable %s", name)
	}
	return b.value, nil
}

// Assign replaces the value bound to name in the nearest scope defining it.
// Assignment never declares a new variable.
func (e *Env) Assign(name string, v Value) error {
	b := e.lookup(name)
	if b == nil {
		return rtErr(UndefinedVariableError, 0, "undefined variable %s", name)
	}
	if b.constant {
		return rtErr(ConstReassignmentError, 0, "cannot reassign constant %s", name)
	}
	b.value = v
	return nil
}

// IsConst reports whether name is bound to a constant.
func (e *Env) IsConst(name string) bool {
	b := e.lookup(name)
	return b != nil && b.constant
}

// Clone returns a new scope with the same parent and copies of this scope's
// bindings. The clone and the original can be modified independently.
func (e *Env) Clone() *Env {
	r := &Env{vars: make(map[string]*binding, len(e.vars)), parent: e.parent}
	for k, b := range e.vars {
		r.vars[k] = &binding{value: Copy(b.value), constant: b.constant}
	}
	return r
}
