package lox

import (
	"sync/atomic"

	"github.com/zephyrtronium/contains"
)

var classIDs uintptr

// NewClass creates a class with no fields or methods.
func NewClass(name string, super *Class) *Class {
	return &Class{
		id:      atomic.AddUintptr(&classIDs, 1),
		Name:    name,
		Super:   super,
		Fields:  make(map[string]*binding),
		Methods: make(map[string]*Function),
	}
}

// UniqueID returns the class's unique ID.
func (c *Class) UniqueID() uintptr {
	return c.id
}

// Chain returns the class followed by each of its ancestors, nearest first.
func (c *Class) Chain() []*Class {
	var r []*Class
	set := contains.Set{}
	for k := c; k != nil; k = k.Super {
		if !set.Add(k.UniqueID()) {
			break
		}
		r = append(r, k)
	}
	return r
}

// isSubclassOf reports whether c is other or inherits from it.
func (c *Class) isSubclassOf(other *Class) bool {
	for _, k := range c.Chain() {
		if k == other {
			return true
		}
	}
	return false
}

// field finds the nearest class in the chain declaring a field.
func (c *Class) field(name string) (*Class, *binding) {
	for _, k := range c.Chain() {
		if b, ok := k.Fields[name]; ok {
			return k, b
		}
	}
	return nil, nil
}

// method finds the nearest declaration of a method in the chain.
func (c *Class) method(name string) *Function {
	for _, k := range c.Chain() {
		if m, ok := k.Methods[name]; ok {
			return m
		}
	}
	return nil
}

// Constructor returns the method that initializes new instances of the
// class: the nearest class in the chain with a method named after itself.
// Returns nil if no class in the chain has a constructor.
func (c *Class) Constructor() *Function {
	for _, k := range c.Chain() {
		if m, ok := k.Methods[k.Name]; ok {
			return m
		}
	}
	return nil
}

func isConstructor(f *Function) bool {
	return f.Class != nil && f.Name() == f.Class.Name
}

// execClass declares a class. The class is bound before its field
// initializers run so that they may refer to it.
func (vm *VM) execClass(s *ClassStmt, env *Env) error {
	var super *Class
	if s.Super != nil {
		name := s.Super.Name.Lexeme
		if name == s.Name.Lexeme {
			return rtErr(UndefinedClassError, s.Super.Line(), "class %s cannot inherit from itself", name)
		}
		v, err := env.Get(name)
		if err != nil {
			return rtErr(UndefinedClassError, s.Super.Line(), "undefined superclass %s", name)
		}
		var ok bool
		if super, ok = v.(*Class); !ok {
			return rtErr(UndefinedClassError, s.Super.Line(), "superclass %s is a %s, not a class", name, TypeName(v))
		}
	}
	c := NewClass(s.Name.Lexeme, super)
	env.Define(c.Name, c, true)
	for _, m := range s.Methods {
		c.Methods[m.Name.Lexeme] = &Function{Decl: m, Closure: env, Class: c}
	}
	for _, f := range s.Fields {
		var v Value = Nil
		if f.Init != nil {
			var err error
			if v, err = vm.eval(f.Init, env); err != nil {
				return err
			}
		}
		c.Fields[f.Name.Lexeme] = &binding{value: Copy(v), constant: f.Const}
	}
	var sup string
	if super != nil {
		sup = super.Name
	}
	vm.Log.Debug("class declared", "name", c.Name, "super", sup, "line", s.Line())
	return nil
}

// getMember looks up a member of an instance, class, or object.
func (vm *VM) getMember(recv Value, name string, line int) (Value, error) {
	switch r := recv.(type) {
	case *Instance:
		if v, ok := r.Fields[name]; ok {
			return v, nil
		}
		return classMember(r.Class, recv, name, line)
	case *Class:
		return classMember(r, recv, name, line)
	case *Object:
		if v, ok := r.Fields[name]; ok {
			return v, nil
		}
		return nil, rtErr(UndefinedKeyError, line, "object has no key %s", name)
	}
	return nil, rtErr(TypeMismatchError, line, "cannot access member %s of %s", name, TypeName(recv))
}

// classMember resolves a field or method through the chain starting at c. A
// method is bound to recv.
func classMember(c *Class, recv Value, name string, line int) (Value, error) {
	for _, k := range c.Chain() {
		if b, ok := k.Fields[name]; ok {
			return b.value, nil
		}
		if m, ok := k.Methods[name]; ok {
			return &BoundMethod{Receiver: recv, Method: m}, nil
		}
	}
	return nil, rtErr(UndefinedMemberError, line, "%s has no member %s", c.Name, name)
}

// setMember stores a value into a member of an instance, class, or object.
// Writes through an instance are seen only by that instance; writes through a
// class change the class's field for all instances that have not overridden
// it. Writing a member the chain does not declare creates it: an instance
// gets a field of its own and a class gets a new static field.
func (vm *VM) setMember(recv Value, name string, v Value, line int) error {
	var c *Class
	switch r := recv.(type) {
	case *Object:
		r.Fields[name] = v
		return nil
	case *Instance:
		c = r.Class
	case *Class:
		c = r
	default:
		return rtErr(TypeMismatchError, line, "cannot set member %s of %s", name, TypeName(recv))
	}
	owner, b := c.field(name)
	if b == nil {
		if c.method(name) != nil {
			return rtErr(TypeMismatchError, line, "cannot assign to method %s of %s", name, c.Name)
		}
		if inst, ok := recv.(*Instance); ok {
			inst.Fields[name] = v
			return nil
		}
		c.Fields[name] = &binding{value: v}
		return nil
	}
	if b.constant {
		return rtErr(ConstReassignmentError, line, "cannot reassign constant field %s of %s", name, owner.Name)
	}
	if inst, ok := recv.(*Instance); ok {
		inst.Fields[name] = v
		return nil
	}
	b.value = v
	return nil
}
