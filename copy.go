package lox

// Copy returns a deep copy of v. Arrays, objects, and instances are copied
// recursively; all other values are immutable and returned as is. An
// instance's class is shared by the copy.
func Copy(v Value) Value {
	switch x := v.(type) {
	case *Array:
		r := &Array{Elems: make([]Value, len(x.Elems))}
		for i, e := range x.Elems {
			r.Elems[i] = Copy(e)
		}
		return r
	case *Object:
		return &Object{Fields: copyFields(x.Fields)}
	case *Instance:
		return &Instance{Class: x.Class, Fields: copyFields(x.Fields)}
	case *BoundMethod:
		return &BoundMethod{Receiver: Copy(x.Receiver), Method: x.Method}
	}
	return v
}

func copyFields(m map[string]Value) map[string]Value {
	r := make(map[string]Value, len(m))
	for k, v := range m {
		r[k] = Copy(v)
	}
	return r
}
