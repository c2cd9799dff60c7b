package walk

import (
	"minic/ast"
	"minic/report"
	"minic/types"
)

// walkExpr walks an expression and returns its checked type.  Operands are
// always walked before the node combining them.
func (w *Walker) walkExpr(expr ast.Expr) types.Type {
	switch v := expr.(type) {
	case *ast.IntConst:
		return w.setType(v, types.Int)
	case *ast.DoubleConst:
		return w.setType(v, types.Float)
	case *ast.BoolConst:
		return w.setType(v, types.Bool)
	case *ast.StringConst:
		return w.setType(v, types.String)
	case *ast.Access:
		return w.setType(v, w.walkAccess(v))
	case *ast.Call:
		return w.setType(v, w.walkCall(v))
	case *ast.OpExpr:
		return w.setType(v, w.walkOpExpr(v))
	case nil:
		w.rep.ICE("missing expression")
	default:
		w.rep.ICE("walking not implemented for expression %T", expr)
	}

	return types.Error
}

// walkAccess walks a variable or array element access.
func (w *Walker) walkAccess(acc *ast.Access) types.Type {
	subTypes := make([]types.Type, len(acc.Subscripts))
	for i, sub := range acc.Subscripts {
		subTypes[i] = w.walkExpr(sub)
	}

	sym, ok := w.lookup(acc.Name)
	if !ok {
		w.recError(report.KindNotDeclared, acc.Span(), "no declaration found for `%s`", acc.Name)
		return types.Error
	} else if sym.Kind == ast.SymFunction {
		w.recError(report.KindInvalidCall, acc.Span(), "trying to call function without parentheses: `%s`", acc.Name)
		return types.Error
	}

	id := sym.Var
	w.info.Vars[acc] = id

	if !id.IsArray() {
		if acc.Indexed() {
			w.recError(report.KindNotArray, acc.Span(), "[] can only be applied to arrays")
			return types.Error
		}

		return id.Type
	}

	if !acc.Indexed() {
		w.recError(report.KindArrayWithoutSubscript, acc.Span(), "accessing array variable `%s` without []", acc.Name)
		return types.Error
	} else if len(acc.Subscripts) != len(id.Dims) {
		w.recError(
			report.KindDimCount,
			acc.Span(),
			"`%s` expects %d dimension(s), %d given",
			acc.Name,
			len(id.Dims),
			len(acc.Subscripts),
		)
		return types.Error
	}

	result := id.Type
	for i, subType := range subTypes {
		switch subType {
		case types.Int:
		case types.Error:
			result = types.Error
		default:
			w.recError(report.KindSubscriptNotInt, acc.Subscripts[i].Span(), "array subscript must be an integer")
			result = types.Error
		}
	}

	return result
}

// walkCall walks a function call.
func (w *Walker) walkCall(call *ast.Call) types.Type {
	argTypes := make([]types.Type, len(call.Args))
	for i, arg := range call.Args {
		argTypes[i] = w.walkExpr(arg)
	}

	sym, ok := w.lookup(call.Name)
	if !ok {
		w.recError(report.KindNotDeclared, call.Span(), "no declaration found for `%s`", call.Name)
		return types.Error
	} else if sym.Kind != ast.SymFunction {
		w.recError(report.KindNotFunction, call.Span(), "trying to call non-function: `%s`", call.Name)
		return types.Error
	}

	fd := sym.Func
	w.info.Funcs[call] = fd

	if len(call.Args) != len(fd.Params) {
		w.recError(
			report.KindArgCount,
			call.Span(),
			"function `%s` expects %d argument(s), %d given",
			fd.Name,
			len(fd.Params),
			len(call.Args),
		)
		return types.Error
	}

	result := fd.ReturnType
	for i, argType := range argTypes {
		if argType == types.Error {
			result = types.Error
		} else if argType != fd.Params[i].Type {
			w.recError(
				report.KindArgType,
				call.Args[i].Span(),
				"incompatible argument at index %d: %s given, %s expected",
				i,
				argType,
				fd.Params[i].Type,
			)
			result = types.Error
		}
	}

	return result
}

// walkOpExpr walks an operator application.
func (w *Walker) walkOpExpr(oe *ast.OpExpr) types.Type {
	if oe.IsUnary() {
		operandType := w.walkExpr(oe.Rhs)

		if !isUnaryOper(oe.Op.Kind) {
			w.recError(report.KindUsage, oe.Span(), "`%s` is not a unary operator", oe.Op.Kind)
			return types.Error
		}

		return w.checkUnary(oe, operandType)
	}

	lhsType := w.walkExpr(oe.Lhs)
	rhsType := w.walkExpr(oe.Rhs)

	if !isBinaryOper(oe.Op.Kind) {
		w.recError(report.KindUsage, oe.Span(), "`%s` is not a binary operator", oe.Op.Kind)
		return types.Error
	}

	if oe.Op.Kind == ast.OpAssign {
		if _, ok := oe.Lhs.(*ast.Access); !ok {
			w.recError(report.KindInvalidAssign, oe.Lhs.Span(), "invalid assignment target")
			return types.Error
		}
	}

	return w.checkBinary(oe, lhsType, rhsType)
}
