package codegen

import "minic/ast"

// generateBlock generates the statements of a block.  Blocks reserve no stack
// space of their own: the function prologue reserves space for all locals.
func (g *Generator) generateBlock(block *ast.Block) {
	for _, stmt := range block.Stmts {
		g.generateStmt(stmt)
	}
}

// generateStmt generates a statement.
func (g *Generator) generateStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.ExprStmt:
		if v.Expr != nil {
			g.generateExpr(v.Expr)
		}
	case *ast.SelStmt:
		g.generateSel(v)
	case *ast.IterStmt:
		g.generateIter(v)
	case *ast.Block:
		g.generateBlock(v)
	case *ast.ReturnStmt:
		if g.info.Returns[v] != g.fn {
			g.rep.ICE("return statement in `%s` is bound to another function", g.fn.Name)
			break
		}

		if v.Expr != nil {
			g.generateExpr(v.Expr)
		}

		g.generateReturnSeq()
	default:
		g.rep.ICE("code generation not implemented for statement %T", stmt)
	}

	g.checkBalance(stmt)
}

// generateSel generates an if statement.
func (g *Generator) generateSel(sel *ast.SelStmt) {
	elseLabel := g.newLabel()

	g.generateExpr(sel.Test)
	g.emit("beqz $a0 %s", elseLabel)
	g.generateStmt(sel.Then)

	if sel.Else == nil {
		g.emitLabel(elseLabel)
		return
	}

	endLabel := g.newLabel()
	g.emit("j %s", endLabel)
	g.emitLabel(elseLabel)
	g.generateStmt(sel.Else)
	g.emitLabel(endLabel)
}

// generateIter generates a while or for loop.
func (g *Generator) generateIter(iter *ast.IterStmt) {
	var init, post ast.Expr
	switch iter.Kind {
	case ast.LoopWhile:
	case ast.LoopFor:
		init, post = iter.Init, iter.Post
	default:
		g.rep.ICE("unknown loop kind %d", iter.Kind)
		return
	}

	if init != nil {
		g.generateExpr(init)
	}

	startLabel, endLabel := g.newLabel(), g.newLabel()
	g.emitLabel(startLabel)

	if iter.Cond != nil {
		g.generateExpr(iter.Cond)
		g.emit("beqz $a0 %s", endLabel)
	}

	g.generateStmt(iter.Body)

	if post != nil {
		g.generateExpr(post)
	}

	g.emit("j %s", startLabel)
	g.emitLabel(endLabel)
}
