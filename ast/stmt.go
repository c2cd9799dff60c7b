package ast

// Stmt represents a statement.  All statement nodes implement `Stmt`.
type Stmt interface {
	ASTNode

	stmtNode()
}

// ExprStmt is an expression evaluated for its effect.  Expr is nil for the
// empty statement.
type ExprStmt struct {
	ASTBase

	Expr Expr
}

// SelStmt is an `if` statement.  Else may be nil.
type SelStmt struct {
	ASTBase

	Test Expr
	Then Stmt
	Else Stmt
}

// LoopKind is the kind of an iteration statement.
type LoopKind int

// Enumeration of loop kinds.
const (
	LoopWhile LoopKind = iota
	LoopFor
)

func (lk LoopKind) String() string {
	switch lk {
	case LoopWhile:
		return "while"
	case LoopFor:
		return "for"
	default:
		return "<invalid loop>"
	}
}

// IterStmt is a `while` or `for` loop.  A `while` loop uses only Cond.  Any of
// the three `for` clauses may be nil; a missing condition loops forever.
type IterStmt struct {
	ASTBase

	Kind LoopKind

	Init Expr
	Cond Expr
	Post Expr

	Body Stmt
}

// Block is a statement block: a lexical scope owning its local variable
// declarations and statements.
type Block struct {
	ASTBase

	// The local variables declared in the block in declaration order.
	Vars []*Identifier

	Stmts []Stmt
}

// ReturnStmt is a return statement.  Expr is nil for a bare return.
type ReturnStmt struct {
	ASTBase

	Expr Expr
}

func (*ExprStmt) stmtNode()   {}
func (*SelStmt) stmtNode()    {}
func (*IterStmt) stmtNode()   {}
func (*Block) stmtNode()      {}
func (*ReturnStmt) stmtNode() {}
