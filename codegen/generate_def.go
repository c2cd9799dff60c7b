package codegen

import (
	"minic/ast"
	"minic/common"
	"minic/types"
)

// generateFunc generates a function: its prologue, its body and, if the body
// does not end by returning, an implicit return.
func (g *Generator) generateFunc(fd *ast.FuncDecl) {
	g.fn = fd
	defer func() {
		g.fn = nil
	}()

	g.emitLabel(g.frames.FuncLabel(fd))
	g.emit("move $fp $sp")

	// The return address is part of the frame rather than the operand stack.
	g.emit("addiu $sp $sp -4")
	g.emit("sw $ra 4($sp)")

	if fs := g.frames.FrameSize(fd.Body); fs > 0 {
		g.emit("addiu $sp $sp -%d", fs)
	}

	g.generateBlock(fd.Body)

	// Falling off the end of a function yields zero unless it returns void.
	if !endsInReturn(fd.Body) {
		if fd == g.entry || fd.ReturnType != types.Void {
			g.emit("li $a0 0")
		}

		g.generateReturnSeq()
	}
}

// generateReturnSeq generates the return sequence of the current function.
// The entry function ends the process with the accumulator as exit code.
func (g *Generator) generateReturnSeq() {
	if g.fn == g.entry {
		g.emit("li $v0 17")
		g.emit("syscall")
		return
	}

	g.emit("lw $ra 0($fp)")
	g.emit("addiu $sp $fp %d", common.VarSize+common.VarSize*len(g.fn.Params))
	g.emit("lw $fp 0($sp)")
	g.emit("jr $ra")
}

// endsInReturn returns whether the last statement of a block is a return.
func endsInReturn(block *ast.Block) bool {
	if len(block.Stmts) == 0 {
		return false
	}

	_, ok := block.Stmts[len(block.Stmts)-1].(*ast.ReturnStmt)
	return ok
}
