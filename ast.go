package lox

// Expr is an expression node. The set of expression nodes is closed; the
// evaluator switches over the concrete types.
type Expr interface {
	// Line returns the source line the expression starts on.
	Line() int
	expr()
}

// Stmt is a statement node. The set of statement nodes is closed.
type Stmt interface {
	// Line returns the source line the statement starts on.
	Line() int
	stmt()
}

type (
	// Literal is a number, string, boolean, or nil literal.
	Literal struct {
		Tok   Token
		Value Value
	}

	// Variable is a reference to a named binding.
	Variable struct {
		Name Token
	}

	// Unary is a prefix operator applied to an operand.
	Unary struct {
		Op    Token
		Right Expr
	}

	// Binary is an arithmetic, comparison, or equality operation.
	Binary struct {
		Left  Expr
		Op    Token
		Right Expr
	}

	// Logical is a short-circuiting and/or.
	Logical struct {
		Left  Expr
		Op    Token
		Right Expr
	}

	// Assign stores a value into a variable, an index, or a member. Compound
	// assignments are parsed into an Assign whose Value is a Binary with the
	// target as its left operand; Op keeps the original operator.
	Assign struct {
		Target Expr
		Op     Token
		Value  Expr
	}

	// Call is a call of a function, builtin, method, or class.
	Call struct {
		Callee Expr
		Paren  Token
		Args   []Expr
	}

	// ArrayLit is an array literal.
	ArrayLit struct {
		Bracket Token
		Elems   []Expr
	}

	// ObjectLit is an object literal. Keys and Values are parallel.
	ObjectLit struct {
		Brace  Token
		Keys   []string
		Values []Expr
	}

	// Index is a subscript operation a[i].
	Index struct {
		Object  Expr
		Bracket Token
		Index   Expr
	}

	// Get is a member access a.name.
	Get struct {
		Object Expr
		Name   Token
	}

	// This is the receiver of the enclosing method.
	This struct {
		Keyword Token
	}

	// Super is a member lookup starting at the superclass of the class that
	// defines the enclosing method.
	Super struct {
		Keyword Token
		Method  Token
	}
)

func (e *Literal) Line() int   { return e.Tok.Line }
func (e *Variable) Line() int  { return e.Name.Line }
func (e *Unary) Line() int     { return e.Op.Line }
func (e *Binary) Line() int    { return e.Left.Line() }
func (e *Logical) Line() int   { return e.Left.Line() }
func (e *Assign) Line() int    { return e.Target.Line() }
func (e *Call) Line() int      { return e.Callee.Line() }
func (e *ArrayLit) Line() int  { return e.Bracket.Line }
func (e *ObjectLit) Line() int { return e.Brace.Line }
func (e *Index) Line() int     { return e.Object.Line() }
func (e *Get) Line() int       { return e.Object.Line() }
func (e *This) Line() int      { return e.Keyword.Line }
func (e *Super) Line() int     { return e.Keyword.Line }

func (*Literal) expr()   {}
func (*Variable) expr()  {}
func (*Unary) expr()     {}
func (*Binary) expr()    {}
func (*Logical) expr()   {}
func (*Assign) expr()    {}
func (*Call) expr()      {}
func (*ArrayLit) expr()  {}
func (*ObjectLit) expr() {}
func (*Index) expr()     {}
func (*Get) expr()       {}
func (*This) expr()      {}
func (*Super) expr()     {}

type (
	// ExprStmt evaluates an expression for its effects.
	ExprStmt struct {
		Expr Expr
	}

	// PrintStmt is print or println.
	PrintStmt struct {
		Keyword Token
		Newline bool
		Args    []Expr
	}

	// VarStmt declares a variable or constant. Init is nil for a var without
	// an initializer.
	VarStmt struct {
		Name  Token
		Const bool
		Init  Expr
	}

	// BlockStmt is a braced statement list with its own scope.
	BlockStmt struct {
		Brace Token
		Stmts []Stmt
	}

	// IfStmt is a conditional. Else is nil, a *BlockStmt, or an *IfStmt for
	// else-if chains.
	IfStmt struct {
		Keyword Token
		Cond    Expr
		Then    *BlockStmt
		Else    Stmt
	}

	// WhileStmt is a condition-controlled loop.
	WhileStmt struct {
		Keyword Token
		Cond    Expr
		Body    *BlockStmt
	}

	// ForStmt is a three-clause loop. All clauses are present.
	ForStmt struct {
		Keyword Token
		Init    Stmt
		Cond    Expr
		Incr    Expr
		Body    *BlockStmt
	}

	// BreakStmt leaves the nearest enclosing loop.
	BreakStmt struct {
		Keyword Token
	}

	// ContinueStmt skips to the next iteration of the nearest enclosing loop.
	ContinueStmt struct {
		Keyword Token
	}

	// ReturnStmt leaves the nearest enclosing function. Value is nil for a
	// bare return.
	ReturnStmt struct {
		Keyword Token
		Value   Expr
	}

	// FunStmt declares a named function or, inside a class, a method.
	FunStmt struct {
		Name   Token
		Params []Token
		Body   []Stmt
	}

	// ClassStmt declares a class. Super is nil when there is no superclass.
	ClassStmt struct {
		Name    Token
		Super   *Variable
		Fields  []*VarStmt
		Methods []*FunStmt
	}
)

func (s *ExprStmt) Line() int     { return s.Expr.Line() }
func (s *PrintStmt) Line() int    { return s.Keyword.Line }
func (s *VarStmt) Line() int      { return s.Name.Line }
func (s *BlockStmt) Line() int    { return s.Brace.Line }
func (s *IfStmt) Line() int       { return s.Keyword.Line }
func (s *WhileStmt) Line() int    { return s.Keyword.Line }
func (s *ForStmt) Line() int      { return s.Keyword.Line }
func (s *BreakStmt) Line() int    { return s.Keyword.Line }
func (s *ContinueStmt) Line() int { return s.Keyword.Line }
func (s *ReturnStmt) Line() int   { return s.Keyword.Line }
func (s *FunStmt) Line() int      { return s.Name.Line }
func (s *ClassStmt) Line() int    { return s.Name.Line }

func (*ExprStmt) stmt()     {}
func (*PrintStmt) stmt()    {}
func (*VarStmt) stmt()      {}
func (*BlockStmt) stmt()    {}
func (*IfStmt) stmt()       {}
func (*WhileStmt) stmt()    {}
func (*ForStmt) stmt()      {}
func (*BreakStmt) stmt()    {}
func (*ContinueStmt) stmt() {}
func (*ReturnStmt) stmt()   {}
func (*FunStmt) stmt()      {}
func (*ClassStmt) stmt()    {}
