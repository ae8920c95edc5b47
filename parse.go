package lox

/*
This file is for converting lexer tokens into statements. Expressions are
parsed by recursive descent with one function per precedence level, lowest
first: assignment, or, and, equality, comparison, term, factor, unary, call,
primary.
*/

import (
	"fmt"
	"io"
)

// Parse scans and parses a complete program. No statements are returned if
// there is any lexical or syntax error.
func Parse(src io.Reader) ([]Stmt, error) {
	return parseSource(src, false)
}

// ParseREPL is like Parse, but the final statement may omit its terminating
// semicolon.
func ParseREPL(src io.Reader) ([]Stmt, error) {
	return parseSource(src, true)
}

func parseSource(src io.Reader, repl bool) ([]Stmt, error) {
	toks, err := Scan(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, repl: repl}
	var prog []Stmt
	for !p.check(eofToken) {
		s, err := p.declaration()
		if err != nil {
			return nil, err
		}
		prog = append(prog, s)
	}
	return prog, nil
}

type parser struct {
	toks []Token
	cur  int
	// repl allows the semicolon after the last statement to be omitted.
	repl bool
	// funcs and loops count the functions and loops enclosing the current
	// statement. Entering a function resets loops.
	funcs, loops int
}

func (p *parser) peek() Token {
	return p.toks[p.cur]
}

func (p *parser) advance() Token {
	tok := p.toks[p.cur]
	if tok.Kind != eofToken {
		p.cur++
	}
	return tok
}

func (p *parser) check(kind TokenKind) bool {
	return p.toks[p.cur].Kind == kind
}

// match consumes the next token if it is any of the given kinds.
func (p *parser) match(kinds ...TokenKind) (Token, bool) {
	for _, k := range kinds {
		if p.check(k) {
			return p.advance(), true
		}
	}
	return Token{}, false
}

// expect consumes the next token if it has the given kind and fails
// otherwise. context describes where the token was expected.
func (p *parser) expect(kind TokenKind, context string) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return Token{}, p.errorf("expected %v %s, found %s", kind, context, describe(p.peek()))
}

func (p *parser) errorf(format string, args ...interface{}) *ParseError {
	tok := p.peek()
	return &ParseError{Line: tok.Line, Msg: fmt.Sprintf(format, args...), Tok: tok}
}

// terminate consumes the semicolon ending a simple statement.
func (p *parser) terminate(what string) error {
	if _, ok := p.match(semicolonToken); ok {
		return nil
	}
	if p.repl && p.check(eofToken) {
		return nil
	}
	_, err := p.expect(semicolonToken, "after "+what)
	return err
}

// misplaced reports a break, continue, or return with nothing to consume it.
func misplaced(kw Token, kind ErrorKind, where string) *ParseError {
	return &ParseError{Line: kw.Line, Msg: fmt.Sprintf("%v outside of %s", kw.Kind, where), Tok: kw, Kind: kind}
}

// describe formats a token for an error message.
func describe(tok Token) string {
	switch tok.Kind {
	case eofToken:
		return tok.Kind.String()
	case identifierToken, numberToken, stringToken:
		return fmt.Sprintf("%v %s", tok.Kind, tok.Lexeme)
	}
	return tok.Kind.String()
}

func (p *parser) declaration() (Stmt, error) {
	switch p.peek().Kind {
	case classToken:
		return p.classDecl()
	case funToken:
		p.advance()
		return p.function("function")
	case varToken, constToken:
		return p.varDecl()
	}
	return p.statement()
}

func (p *parser) varDecl() (*VarStmt, error) {
	kw := p.advance()
	name, err := p.expect(identifierToken, "after "+kw.Kind.String())
	if err != nil {
		return nil, err
	}
	s := &VarStmt{Name: name, Const: kw.Kind == constToken}
	if _, ok := p.match(equalToken); ok {
		if s.Init, err = p.expression(); err != nil {
			return nil, err
		}
	} else if s.Const {
		return nil, p.errorf("constant %s requires an initializer", name.Lexeme)
	}
	if err := p.terminate("variable declaration"); err != nil {
		return nil, err
	}
	return s, nil
}

// function parses the remainder of a function declaration after 'fun'.
func (p *parser) function(kind string) (*FunStmt, error) {
	name, err := p.expect(identifierToken, "for "+kind+" name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(leftParenToken, "after "+kind+" name"); err != nil {
		return nil, err
	}
	var params []Token
	if !p.check(rightParenToken) {
		for {
			param, err := p.expect(identifierToken, "for parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if _, ok := p.match(commaToken); !ok {
				break
			}
		}
	}
	if _, err := p.expect(rightParenToken, "after parameters"); err != nil {
		return nil, err
	}
	loops := p.loops
	p.funcs, p.loops = p.funcs+1, 0
	body, err := p.block()
	p.funcs, p.loops = p.funcs-1, loops
	if err != nil {
		return nil, err
	}
	return &FunStmt{Name: name, Params: params, Body: body.Stmts}, nil
}

func (p *parser) classDecl() (Stmt, error) {
	p.advance()
	name, err := p.expect(identifierToken, "for class name")
	if err != nil {
		return nil, err
	}
	s := &ClassStmt{Name: name}
	if _, ok := p.match(lessToken); ok {
		sup, err := p.expect(identifierToken, "for superclass name")
		if err != nil {
			return nil, err
		}
		s.Super = &Variable{Name: sup}
	}
	if _, err := p.expect(leftBraceToken, "before class body"); err != nil {
		return nil, err
	}
	for !p.check(rightBraceToken) {
		switch p.peek().Kind {
		case varToken, constToken:
			f, err := p.varDecl()
			if err != nil {
				return nil, err
			}
			s.Fields = append(s.Fields, f)
		case funToken:
			p.advance()
			m, err := p.function("method")
			if err != nil {
				return nil, err
			}
			s.Methods = append(s.Methods, m)
		default:
			return nil, p.errorf("expected field or method declaration in class %s, found %s", name.Lexeme, describe(p.peek()))
		}
	}
	p.advance()
	return s, nil
}

func (p *parser) statement() (Stmt, error) {
	switch p.peek().Kind {
	case printToken, printlnToken:
		return p.printStmt()
	case ifToken:
		return p.ifStmt()
	case whileToken:
		return p.whileStmt()
	case forToken:
		return p.forStmt()
	case breakToken:
		kw := p.advance()
		if p.loops == 0 {
			return nil, misplaced(kw, IllegalBreakError, "a loop")
		}
		if err := p.terminate("'break'"); err != nil {
			return nil, err
		}
		return &BreakStmt{Keyword: kw}, nil
	case continueToken:
		kw := p.advance()
		if p.loops == 0 {
			return nil, misplaced(kw, IllegalContinueError, "a loop")
		}
		if err := p.terminate("'continue'"); err != nil {
			return nil, err
		}
		return &ContinueStmt{Keyword: kw}, nil
	case returnToken:
		return p.returnStmt()
	case leftBraceToken:
		return p.block()
	}
	return p.exprStmt()
}

func (p *parser) block() (*BlockStmt, error) {
	brace, err := p.expect(leftBraceToken, "to begin block")
	if err != nil {
		return nil, err
	}
	b := &BlockStmt{Brace: brace}
	for !p.check(rightBraceToken) {
		if p.check(eofToken) {
			return nil, p.errorf("expected '}' to end block opened on line %d, found %s", brace.Line, describe(p.peek()))
		}
		s, err := p.declaration()
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, s)
	}
	p.advance()
	return b, nil
}

func (p *parser) printStmt() (Stmt, error) {
	kw := p.advance()
	s := &PrintStmt{Keyword: kw, Newline: kw.Kind == printlnToken}
	if !p.check(semicolonToken) && !(p.repl && p.check(eofToken)) {
		for {
			e, err := p.expression()
			if err != nil {
				return nil, err
			}
			s.Args = append(s.Args, e)
			if _, ok := p.match(commaToken); !ok {
				break
			}
		}
	}
	if err := p.terminate(kw.Kind.String()); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *parser) ifStmt() (Stmt, error) {
	kw := p.advance()
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}
	s := &IfStmt{Keyword: kw, Cond: cond, Then: then}
	if _, ok := p.match(elseToken); ok {
		if p.check(ifToken) {
			s.Else, err = p.ifStmt()
		} else {
			s.Else, err = p.block()
		}
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (p *parser) whileStmt() (Stmt, error) {
	kw := p.advance()
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.loops++
	body, err := p.block()
	p.loops--
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Keyword: kw, Cond: cond, Body: body}, nil
}

func (p *parser) forStmt() (Stmt, error) {
	kw := p.advance()
	s := &ForStmt{Keyword: kw}
	var err error
	switch p.peek().Kind {
	case varToken, constToken:
		s.Init, err = p.varDecl()
	case semicolonToken:
		return nil, p.errorf("'for' requires an initializer clause")
	default:
		s.Init, err = p.exprStmt()
	}
	if err != nil {
		return nil, err
	}
	if p.check(semicolonToken) {
		return nil, p.errorf("'for' requires a condition clause")
	}
	if s.Cond, err = p.expression(); err != nil {
		return nil, err
	}
	if _, err := p.expect(semicolonToken, "after loop condition"); err != nil {
		return nil, err
	}
	if p.check(leftBraceToken) {
		return nil, p.errorf("'for' requires an increment clause")
	}
	if s.Incr, err = p.expression(); err != nil {
		return nil, err
	}
	p.loops++
	s.Body, err = p.block()
	p.loops--
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (p *parser) returnStmt() (Stmt, error) {
	kw := p.advance()
	if p.funcs == 0 {
		return nil, misplaced(kw, IllegalReturnError, "a function")
	}
	s := &ReturnStmt{Keyword: kw}
	if !p.check(semicolonToken) && !(p.repl && p.check(eofToken)) {
		var err error
		if s.Value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if err := p.terminate("return value"); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *parser) exprStmt() (Stmt, error) {
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.terminate("expression"); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: e}, nil
}

func (p *parser) expression() (Expr, error) {
	return p.assignment()
}

// compound maps compound assignment operators to their arithmetic operator.
var compound = map[TokenKind]TokenKind{
	plusEqualToken:    plusToken,
	minusEqualToken:   minusToken,
	starEqualToken:    starToken,
	slashEqualToken:   slashToken,
	percentEqualToken: percentToken,
}

func (p *parser) assignment() (Expr, error) {
	target, err := p.or()
	if err != nil {
		return nil, err
	}
	op, ok := p.match(equalToken, plusEqualToken, minusEqualToken, starEqualToken, slashEqualToken, percentEqualToken)
	if !ok {
		return target, nil
	}
	switch target.(type) {
	case *Variable, *Index, *Get:
	default:
		return nil, &ParseError{Line: op.Line, Msg: "invalid assignment target", Tok: op}
	}
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	if arith, ok := compound[op.Kind]; ok {
		bop := Token{Kind: arith, Lexeme: op.Lexeme[:1], Line: op.Line, Col: op.Col}
		value = &Binary{Left: target, Op: bop, Right: value}
	}
	return &Assign{Target: target, Op: op, Value: value}, nil
}

// binary parses a left-associative chain of operators at one precedence
// level.
func (p *parser) binary(next func() (Expr, error), logical bool, ops ...TokenKind) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.match(ops...)
		if !ok {
			return left, nil
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		if logical {
			left = &Logical{Left: left, Op: op, Right: right}
		} else {
			left = &Binary{Left: left, Op: op, Right: right}
		}
	}
}

func (p *parser) or() (Expr, error) {
	return p.binary(p.and, true, orToken)
}

func (p *parser) and() (Expr, error) {
	return p.binary(p.equality, true, andToken)
}

func (p *parser) equality() (Expr, error) {
	return p.binary(p.comparison, false, equalEqualToken, bangEqualToken)
}

func (p *parser) comparison() (Expr, error) {
	return p.binary(p.term, false, greaterToken, greaterEqualToken, lessToken, lessEqualToken)
}

func (p *parser) term() (Expr, error) {
	return p.binary(p.factor, false, plusToken, minusToken)
}

func (p *parser) factor() (Expr, error) {
	return p.binary(p.unary, false, starToken, slashToken, percentToken)
}

func (p *parser) unary() (Expr, error) {
	if op, ok := p.match(bangToken, minusToken); ok {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Right: right}, nil
	}
	return p.call()
}

func (p *parser) call() (Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case leftParenToken:
			paren := p.advance()
			args, err := p.list(rightParenToken, "arguments")
			if err != nil {
				return nil, err
			}
			e = &Call{Callee: e, Paren: paren, Args: args}
		case dotToken:
			p.advance()
			name, err := p.expect(identifierToken, "for member name after '.'")
			if err != nil {
				return nil, err
			}
			e = &Get{Object: e, Name: name}
		case leftBracketToken:
			bracket := p.advance()
			idx, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(rightBracketToken, "after index"); err != nil {
				return nil, err
			}
			e = &Index{Object: e, Bracket: bracket, Index: idx}
		default:
			return e, nil
		}
	}
}

// list parses comma-separated expressions up to and including the closing
// token. A trailing comma is allowed.
func (p *parser) list(end TokenKind, what string) ([]Expr, error) {
	var r []Expr
	for !p.check(end) {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		r = append(r, e)
		if _, ok := p.match(commaToken); !ok {
			break
		}
	}
	if _, err := p.expect(end, "after "+what); err != nil {
		return nil, err
	}
	return r, nil
}

func (p *parser) primary() (Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case trueToken:
		p.advance()
		return &Literal{Tok: tok, Value: Bool(true)}, nil
	case falseToken:
		p.advance()
		return &Literal{Tok: tok, Value: Bool(false)}, nil
	case nilToken:
		p.advance()
		return &Literal{Tok: tok, Value: Nil}, nil
	case numberToken:
		p.advance()
		return &Literal{Tok: tok, Value: Number(tok.Literal.(float64))}, nil
	case stringToken:
		p.advance()
		return &Literal{Tok: tok, Value: String(tok.Literal.(string))}, nil
	case identifierToken:
		p.advance()
		return &Variable{Name: tok}, nil
	case thisToken:
		p.advance()
		return &This{Keyword: tok}, nil
	case superToken:
		p.advance()
		if _, err := p.expect(dotToken, "after 'super'"); err != nil {
			return nil, err
		}
		method, err := p.expect(identifierToken, "for superclass member name")
		if err != nil {
			return nil, err
		}
		return &Super{Keyword: tok, Method: method}, nil
	case leftParenToken:
		p.advance()
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(rightParenToken, "after expression"); err != nil {
			return nil, err
		}
		return e, nil
	case leftBracketToken:
		p.advance()
		elems, err := p.list(rightBracketToken, "array elements")
		if err != nil {
			return nil, err
		}
		return &ArrayLit{Bracket: tok, Elems: elems}, nil
	case leftBraceToken:
		return p.object()
	}
	return nil, p.errorf("expected expression, found %s", describe(tok))
}

// object parses an object literal. Keys are identifiers or strings; a bare
// identifier key without a value takes the value of the variable of that
// name.
func (p *parser) object() (Expr, error) {
	o := &ObjectLit{Brace: p.advance()}
	for !p.check(rightBraceToken) {
		key, ok := p.match(identifierToken, stringToken)
		if !ok {
			return nil, p.errorf("expected object key, found %s", describe(p.peek()))
		}
		name := key.Lexeme
		if key.Kind == stringToken {
			name = key.Literal.(string)
		}
		var val Expr
		if _, ok := p.match(colonToken); ok {
			var err error
			if val, err = p.expression(); err != nil {
				return nil, err
			}
		} else if key.Kind == identifierToken {
			val = &Variable{Name: key}
		} else {
			return nil, p.errorf("expected ':' after object key %s, found %s", key.Lexeme, describe(p.peek()))
		}
		o.Keys = append(o.Keys, name)
		o.Values = append(o.Values, val)
		if _, ok := p.match(commaToken); !ok {
			break
		}
	}
	if _, err := p.expect(rightBraceToken, "after object fields"); err != nil {
		return nil, err
	}
	return o, nil
}
