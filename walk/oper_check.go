package walk

import (
	"minic/ast"
	"minic/report"
	"minic/types"
)

// binaryResult returns the result type of applying a binary operator to
// operands of the given types.  The flag is false if the operands are
// incompatible.  Neither operand may be the error type.  Assignment follows
// the arithmetic rule: only numeric values can be stored.
func binaryResult(op ast.OperKind, lhs, rhs types.Type) (types.Type, bool) {
	switch {
	case op.IsRelational():
		if lhs == rhs || lhs.IsNumeric() && rhs.IsNumeric() {
			return types.Bool, true
		}
	case op.IsLogical():
		if lhs == types.Bool && rhs == types.Bool {
			return types.Bool, true
		}
	default:
		if lhs == types.Int && rhs == types.Int {
			return types.Int, true
		} else if lhs.IsNumeric() && rhs.IsNumeric() {
			return types.Float, true
		}
	}

	return types.Error, false
}

// unaryResult returns the result type of applying a unary operator to an
// operand of the given type.
func unaryResult(op ast.OperKind, operand types.Type) (types.Type, bool) {
	if op == ast.OpNot {
		if operand == types.Bool {
			return types.Bool, true
		}
	} else if operand.IsNumeric() {
		return operand, true
	}

	return types.Error, false
}

func isBinaryOper(op ast.OperKind) bool {
	return op.Valid() && op != ast.OpNot && op != ast.OpInc && op != ast.OpDec
}

func isUnaryOper(op ast.OperKind) bool {
	switch op {
	case ast.OpNot, ast.OpInc, ast.OpDec, ast.OpAdd, ast.OpSub:
		return true
	}

	return false
}

// checkBinary checks a binary operator application.  Error operands yield the
// error type without a diagnostic.
func (w *Walker) checkBinary(oe *ast.OpExpr, lhs, rhs types.Type) types.Type {
	if lhs == types.Error || rhs == types.Error {
		return types.Error
	}

	if typ, ok := binaryResult(oe.Op.Kind, lhs, rhs); ok {
		return typ
	}

	w.recError(report.KindIncompatibleOperands, oe.Span(), "incompatible operands: %s %s", lhs, rhs)
	return types.Error
}

// checkUnary checks a unary operator application.
func (w *Walker) checkUnary(oe *ast.OpExpr, operand types.Type) types.Type {
	if operand == types.Error {
		return types.Error
	}

	if typ, ok := unaryResult(oe.Op.Kind, operand); ok {
		return typ
	}

	w.recError(report.KindIncompatibleOperands, oe.Span(), "incompatible operand: %s", operand)
	return types.Error
}
