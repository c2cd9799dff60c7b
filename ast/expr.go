package ast

import "minic/report"

// Expr represents an expression.  All expression nodes implement `Expr`.
// Expression types are not stored on the nodes: they are computed by the
// checker and recorded in its side tables.
type Expr interface {
	ASTNode

	exprNode()
}

// IntConst is an integer literal.
type IntConst struct {
	ASTBase

	Value int32
}

// DoubleConst is a floating point literal.
type DoubleConst struct {
	ASTBase

	Value float64
}

// BoolConst is a boolean literal.
type BoolConst struct {
	ASTBase

	Value bool
}

// StringConst is a string literal.
type StringConst struct {
	ASTBase

	Value string
}

// Access is a reference to a variable or, when Subscripts is non-empty, to an
// array element.
type Access struct {
	ASTBase

	Name       string
	Subscripts []Expr
}

// Indexed returns whether the access carries subscripts.
func (a *Access) Indexed() bool {
	return len(a.Subscripts) > 0
}

// Call is a function call.
type Call struct {
	ASTBase

	Name string
	Args []Expr
}

// OpExpr is an operator application.  The application is unary when Lhs is
// nil.
type OpExpr struct {
	ASTBase

	Op Oper

	Lhs, Rhs Expr
}

// IsUnary returns whether the operator application is unary.
func (oe *OpExpr) IsUnary() bool {
	return oe.Lhs == nil
}

// NewBinaryOp creates a new binary operator application spanning its operands.
func NewBinaryOp(op Oper, lhs, rhs Expr) *OpExpr {
	return &OpExpr{
		ASTBase: NewASTBaseOver(lhs.Span(), rhs.Span()),
		Op:      op,
		Lhs:     lhs,
		Rhs:     rhs,
	}
}

// NewUnaryOp creates a new unary operator application.
func NewUnaryOp(op Oper, operand Expr) *OpExpr {
	return &OpExpr{
		ASTBase: NewASTBaseOver(op.Span, operand.Span()),
		Op:      op,
		Rhs:     operand,
	}
}

func (*IntConst) exprNode()    {}
func (*DoubleConst) exprNode() {}
func (*BoolConst) exprNode()   {}
func (*StringConst) exprNode() {}
func (*Access) exprNode()      {}
func (*Call) exprNode()        {}
func (*OpExpr) exprNode()      {}

// -----------------------------------------------------------------------------

// Oper is an operator used in the AST.
type Oper struct {
	Kind OperKind
	Span *report.TextSpan
}

// OperKind is the kind of an operator.
type OperKind int

// Enumeration of operator kinds.
const (
	OpAssign OperKind = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLT
	OpGT
	OpLE
	OpGE
	OpEQ
	OpNE
	OpAnd
	OpOr
	OpNot
	OpInc
	OpDec
)

var operNames = map[OperKind]string{
	OpAssign: "=",
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpMod:    "%",
	OpLT:     "<",
	OpGT:     ">",
	OpLE:     "<=",
	OpGE:     ">=",
	OpEQ:     "==",
	OpNE:     "!=",
	OpAnd:    "&&",
	OpOr:     "||",
	OpNot:    "!",
	OpInc:    "++",
	OpDec:    "--",
}

func (ok OperKind) String() string {
	if name, exists := operNames[ok]; exists {
		return name
	}

	return "<invalid operator>"
}

// OperKindFromName returns the operator kind for the given source symbol.
func OperKindFromName(name string) (OperKind, bool) {
	for kind, kname := range operNames {
		if kname == name {
			return kind, true
		}
	}

	return 0, false
}

// Valid returns whether the operator kind is one of the enumerated kinds.
func (ok OperKind) Valid() bool {
	_, exists := operNames[ok]
	return exists
}

// IsRelational returns whether the operator is a comparison operator.
func (ok OperKind) IsRelational() bool {
	return OpLT <= ok && ok <= OpNE
}

// IsLogical returns whether the operator is `&&` or `||`.
func (ok OperKind) IsLogical() bool {
	return ok == OpAnd || ok == OpOr
}
