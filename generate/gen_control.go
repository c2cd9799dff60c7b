package generate

import (
	"minic/ast"

	"github.com/llir/llvm/ir"
)

// genBlock generates the statements of a block.
func (g *Generator) genBlock(b *ast.Block) {
	for _, stmt := range b.Stmts {
		g.genStmt(stmt)
	}
}

// genStmt generates a statement.
func (g *Generator) genStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.ExprStmt:
		if v.Expr != nil {
			g.genExpr(v.Expr)
		}
	case *ast.SelStmt:
		g.genSel(v)
	case *ast.IterStmt:
		g.genIter(v)
	case *ast.Block:
		g.genBlock(v)
	case *ast.ReturnStmt:
		g.genReturn(v)
	default:
		g.rep.ICE("LLVM generation not implemented for statement %T", stmt)
	}
}

// genSel generates an if statement.
func (g *Generator) genSel(sel *ast.SelStmt) {
	cond := g.genExpr(sel.Test)

	thenBlock := g.appendBlock()
	var elseBlock *ir.Block
	if sel.Else != nil {
		elseBlock = g.appendBlock()
	}
	endBlock := g.appendBlock()

	if elseBlock == nil {
		g.block.NewCondBr(cond, thenBlock, endBlock)
	} else {
		g.block.NewCondBr(cond, thenBlock, elseBlock)
	}

	g.block = thenBlock
	g.genStmt(sel.Then)
	g.branchTo(endBlock)

	if elseBlock != nil {
		g.block = elseBlock
		g.genStmt(sel.Else)
		g.branchTo(endBlock)
	}

	g.block = endBlock
}

// genIter generates a while or for loop.  A loop without a condition never
// exits through its header.
func (g *Generator) genIter(iter *ast.IterStmt) {
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
		g.genExpr(init)
	}

	headerBlock := g.appendBlock()
	g.block.NewBr(headerBlock)

	bodyBlock := g.appendBlock()
	endBlock := g.appendBlock()

	g.block = headerBlock
	if iter.Cond != nil {
		g.block.NewCondBr(g.genExpr(iter.Cond), bodyBlock, endBlock)
	} else {
		g.block.NewBr(bodyBlock)
	}

	g.block = bodyBlock
	g.genStmt(iter.Body)

	if post != nil {
		g.genExpr(post)
	}

	g.branchTo(headerBlock)
	g.block = endBlock
}

// genReturn generates a return statement.  Any code following it is placed in
// a fresh unreachable block.
func (g *Generator) genReturn(rs *ast.ReturnStmt) {
	if g.funcs[g.info.Returns[rs]] != g.enclosingFunc {
		g.rep.ICE("return statement in `%s` is bound to another function", g.enclosingFunc.Name())
		return
	}

	if rs.Expr == nil {
		g.block.NewRet(nil)
	} else {
		g.block.NewRet(g.genExpr(rs.Expr))
	}

	g.block = g.appendBlock()
}

// branchTo terminates the current block with a jump unless it is already
// terminated.
func (g *Generator) branchTo(target *ir.Block) {
	if g.block.Term == nil {
		g.block.NewBr(target)
	}
}
