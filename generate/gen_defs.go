package generate

import (
	"minic/ast"
	"minic/types"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genGlobalVar defines a zero-initialized global variable.
func (g *Generator) genGlobalVar(id *ast.Identifier) {
	var init constant.Constant
	if id.IsArray() {
		init = constant.NewZeroInitializer(g.convVarType(id))
	} else {
		init = g.zeroValue(id.Type)
	}

	g.globals[id] = g.mod.NewGlobalDef(id.Name, init)
}

// declareFunc declares the signature of a function.
func (g *Generator) declareFunc(fd *ast.FuncDecl) {
	params := make([]*ir.Param, len(fd.Params))
	for i, param := range fd.Params {
		params[i] = ir.NewParam(param.Name, g.convType(param.Type))
	}

	g.funcs[fd] = g.mod.NewFunc(fd.Name, g.convType(fd.ReturnType), params...)
}

// genFuncBody generates the body of a declared function.  Parameters are
// copied into stack slots so that they can be assigned like any local.
func (g *Generator) genFuncBody(fd *ast.FuncDecl) {
	if fd.Body == nil {
		g.rep.ICE("function `%s` has no body", fd.Name)
		return
	}

	g.enclosingFunc = g.funcs[fd]
	g.locals = make(map[*ast.Identifier]value.Value)

	g.varBlock = g.enclosingFunc.NewBlock("bb.entry")
	for i, param := range fd.Params {
		slot := g.varBlock.NewAlloca(g.convType(param.Type))
		g.varBlock.NewStore(g.enclosingFunc.Params[i], slot)
		g.locals[param] = slot
	}

	g.allocBlock(fd.Body)

	g.block = g.appendBlock()
	g.varBlock.NewBr(g.block)

	g.genBlock(fd.Body)

	// implicit return off the end of the function
	if g.block.Term == nil {
		if fd.ReturnType == types.Void {
			g.block.NewRet(nil)
		} else {
			g.block.NewRet(g.zeroValue(fd.ReturnType))
		}
	}
}

// allocBlock allocates the locals of a block and of every block nested in it.
func (g *Generator) allocBlock(b *ast.Block) {
	for _, id := range b.Vars {
		g.locals[id] = g.varBlock.NewAlloca(g.convVarType(id))
	}

	for _, stmt := range b.Stmts {
		g.allocStmt(stmt)
	}
}

func (g *Generator) allocStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.Block:
		g.allocBlock(v)
	case *ast.SelStmt:
		g.allocStmt(v.Then)
		if v.Else != nil {
			g.allocStmt(v.Else)
		}
	case *ast.IterStmt:
		g.allocStmt(v.Body)
	}
}

// zeroValue returns the zero value of a scalar type.
func (g *Generator) zeroValue(typ types.Type) constant.Constant {
	switch typ {
	case types.Int:
		return constant.NewInt(lltypes.I32, 0)
	case types.Float:
		return constant.NewFloat(lltypes.Float, 0)
	case types.Bool:
		return constant.False
	case types.Char:
		return constant.NewInt(lltypes.I8, 0)
	case types.String:
		return constant.NewNull(lltypes.I8Ptr)
	}

	g.rep.ICE("no zero value for `%s`", typ)
	return constant.NewInt(lltypes.I32, 0)
}
