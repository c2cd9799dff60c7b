package walk

import (
	"minic/ast"
	"minic/report"
	"minic/types"
)

// walkBlock walks a statement block in a new local scope.
func (w *Walker) walkBlock(block *ast.Block) {
	w.pushScope(w.declareLocals(block))
	defer w.popScope()

	for _, stmt := range block.Stmts {
		w.walkStmt(stmt)
	}
}

// walkStmt walks a statement.  Errors that are fatal to the statement are
// caught here so that walking continues with the next statement.
func (w *Walker) walkStmt(stmt ast.Stmt) {
	defer w.rep.CatchErrors()

	switch v := stmt.(type) {
	case *ast.ExprStmt:
		if v.Expr != nil {
			w.walkExpr(v.Expr)
		}
	case *ast.SelStmt:
		w.walkTest(v.Test)
		w.walkStmt(v.Then)

		if v.Else != nil {
			w.walkStmt(v.Else)
		}
	case *ast.IterStmt:
		w.walkIter(v)
	case *ast.Block:
		w.walkBlock(v)
	case *ast.ReturnStmt:
		w.walkReturn(v)
	default:
		w.rep.ICE("walking not implemented for statement %T", stmt)
	}
}

// walkIter walks an iteration statement.
func (w *Walker) walkIter(iter *ast.IterStmt) {
	switch iter.Kind {
	case ast.LoopWhile:
		if iter.Cond == nil {
			w.error(report.KindUsage, iter.Span(), "while loop requires a condition")
		}

		w.walkTest(iter.Cond)
	case ast.LoopFor:
		if iter.Init != nil {
			w.walkExpr(iter.Init)
		}

		if iter.Cond != nil {
			w.walkTest(iter.Cond)
		}

		if iter.Post != nil {
			w.walkExpr(iter.Post)
		}
	default:
		w.rep.ICE("unknown loop kind %d", iter.Kind)
		return
	}

	w.walkStmt(iter.Body)
}

// walkTest walks the test expression of a selection or iteration statement.
func (w *Walker) walkTest(test ast.Expr) {
	if typ := w.walkExpr(test); typ != types.Bool && typ != types.Error {
		w.recError(report.KindTestNotBool, test.Span(), "test expression must have boolean type")
	}
}

// walkReturn walks a return statement.
func (w *Walker) walkReturn(ret *ast.ReturnStmt) {
	fd := w.enclosingFunc
	if fd == nil {
		w.error(report.KindUnexpectedReturn, ret.Span(), "unexpected return statement")
	}

	w.info.Returns[ret] = fd

	typ, span := types.Void, ret.Span()
	if ret.Expr != nil {
		typ = w.walkExpr(ret.Expr)

		if ret.Expr.Span() != nil {
			span = ret.Expr.Span()
		}
	}

	if typ != types.Error && typ != fd.ReturnType {
		w.recError(report.KindReturnMismatch, span, "incompatible return: %s given, %s expected", typ, fd.ReturnType)
	}
}
