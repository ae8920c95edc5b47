package lox

import (
	"io"
	"strings"
)

// exec executes a statement. The returned value is the value of an
// expression statement, or the returned value when the stop is ReturnStop; a
// bare return yields a nil Value.
func (vm *VM) exec(s Stmt, env *Env) (Value, Stop, error) {
	switch s := s.(type) {
	case *ExprStmt:
		v, err := vm.eval(s.Expr, env)
		return v, NoStop, err
	case *PrintStmt:
		var b strings.Builder
		for _, arg := range s.Args {
			v, err := vm.eval(arg, env)
			if err != nil {
				return nil, NoStop, err
			}
			b.WriteString(Format(v))
		}
		if s.Newline {
			b.WriteByte('\n')
		}
		_, err := io.WriteString(vm.Stdout, b.String())
		return nil, NoStop, err
	case *VarStmt:
		var v Value = Nil
		if s.Init != nil {
			var err error
			if v, err = vm.eval(s.Init, env); err != nil {
				return nil, NoStop, err
			}
		}
		env.Define(s.Name.Lexeme, Copy(v), s.Const)
		return nil, NoStop, nil
	case *BlockStmt:
		return vm.execBlock(s.Stmts, NewEnv(env))
	case *IfStmt:
		ok, err := vm.condition(s.Cond, env, "if")
		if err != nil {
			return nil, NoStop, err
		}
		if ok {
			return vm.execBlock(s.Then.Stmts, NewEnv(env))
		}
		if s.Else != nil {
			return vm.exec(s.Else, env)
		}
		return nil, NoStop, nil
	case *WhileStmt:
		return vm.execWhile(s, env)
	case *ForStmt:
		return vm.execFor(s, env)
	case *BreakStmt:
		vm.stopLine = s.Keyword.Line
		return nil, BreakStop, nil
	case *ContinueStmt:
		vm.stopLine = s.Keyword.Line
		return nil, ContinueStop, nil
	case *ReturnStmt:
		var v Value
		if s.Value != nil {
			r, err := vm.eval(s.Value, env)
			if err != nil {
				return nil, NoStop, err
			}
			v = Copy(r)
		}
		vm.stopLine = s.Keyword.Line
		return v, ReturnStop, nil
	case *FunStmt:
		env.Define(s.Name.Lexeme, &Function{Decl: s, Closure: env}, true)
		return nil, NoStop, nil
	case *ClassStmt:
		return nil, NoStop, vm.execClass(s, env)
	}
	panic("lox: unknown statement type")
}

// execBlock executes statements in order in env, stopping at the first error
// or control flow signal.
func (vm *VM) execBlock(stmts []Stmt, env *Env) (result Value, stop Stop, err error) {
	for _, s := range stmts {
		result, stop, err = vm.exec(s, env)
		if err != nil || stop != NoStop {
			return result, stop, err
		}
	}
	return nil, NoStop, nil
}

// condition evaluates a loop or branch condition, which must be a Bool.
func (vm *VM) condition(e Expr, env *Env, what string) (bool, error) {
	v, err := vm.eval(e, env)
	if err != nil {
		return false, err
	}
	b, ok := v.(Bool)
	if !ok {
		return false, rtErr(TypeMismatchError, e.Line(), "%s condition must be Bool, got %s", what, TypeName(v))
	}
	return bool(b), nil
}

func (vm *VM) execWhile(s *WhileStmt, env *Env) (Value, Stop, error) {
	for {
		ok, err := vm.condition(s.Cond, env, "while")
		if err != nil || !ok {
			return nil, NoStop, err
		}
		result, stop, err := vm.execBlock(s.Body.Stmts, NewEnv(env))
		if err != nil {
			return nil, NoStop, err
		}
		switch stop {
		case NoStop, ContinueStop: // do nothing
		case BreakStop:
			return nil, NoStop, nil
		case ReturnStop:
			return result, stop, nil
		}
	}
}

// execFor runs a for loop. The loop variables live in a scope that is cloned
// before each increment, so closures created in an iteration keep that
// iteration's values.
func (vm *VM) execFor(s *ForStmt, env *Env) (Value, Stop, error) {
	cur := NewEnv(env)
	if _, _, err := vm.exec(s.Init, cur); err != nil {
		return nil, NoStop, err
	}
	for {
		ok, err := vm.condition(s.Cond, cur, "for")
		if err != nil || !ok {
			return nil, NoStop, err
		}
		result, stop, err := vm.execBlock(s.Body.Stmts, NewEnv(cur))
		if err != nil {
			return nil, NoStop, err
		}
		switch stop {
		case NoStop, ContinueStop: // do nothing
		case BreakStop:
			return nil, NoStop, nil
		case ReturnStop:
			return result, stop, nil
		}
		cur = cur.Clone()
		if _, err := vm.eval(s.Incr, cur); err != nil {
			return nil, NoStop, err
		}
	}
}
