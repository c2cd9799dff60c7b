package codegen

import (
	"minic/ast"
	"minic/common"
)

// resolve returns the variable an access refers to.
func (g *Generator) resolve(acc *ast.Access) (*ast.Identifier, bool) {
	id, ok := g.info.Vars[acc]
	if !ok {
		g.rep.ICE("access to `%s` was never resolved", acc.Name)
	}

	return id, ok
}

// generateLoad loads the value of a variable or array element into the
// accumulator.
func (g *Generator) generateLoad(acc *ast.Access) {
	id, ok := g.resolve(acc)
	if !ok {
		return
	}

	if id.IsArray() {
		g.generateElemAddr(acc, id)
		g.emit("lw $a0 0($a0)")
	} else if label, ok := g.frames.Label(id); ok {
		g.emit("lw $a0 %s", label)
	} else if slot, ok := g.frames.Slot(id); ok {
		g.emit("lw $a0 %d($fp)", slot.Offset)
	} else {
		g.rep.ICE("variable `%s` has no storage", id.Name)
	}
}

// generateStore stores the accumulator into a variable or array element.  The
// accumulator keeps the stored value.
func (g *Generator) generateStore(acc *ast.Access) {
	id, ok := g.resolve(acc)
	if !ok {
		return
	}

	if id.IsArray() {
		g.push("$a0")
		g.generateElemAddr(acc, id)
		g.emit("lw $t1 4($sp)")
		g.emit("sw $t1 0($a0)")
		g.emit("move $a0 $t1")
		g.pop()
	} else if label, ok := g.frames.Label(id); ok {
		g.emit("sw $a0 %s", label)
	} else if slot, ok := g.frames.Slot(id); ok {
		g.emit("sw $a0 %d($fp)", slot.Offset)
	} else {
		g.rep.ICE("variable `%s` has no storage", id.Name)
	}
}

// generateElemAddr computes the address of an array element into the
// accumulator.  Arrays are stored in row-major order: each subscript is scaled
// by the product of the dimensions nested inside it and the running sum is
// kept on the operand stack.
func (g *Generator) generateElemAddr(acc *ast.Access, id *ast.Identifier) {
	last := len(acc.Subscripts) - 1
	for i, sub := range acc.Subscripts {
		g.generateExpr(sub)

		if stride := strideOf(id.Dims[i+1:]); stride != 1 {
			g.emit("li $t1 %d", stride)
			g.emit("mult $a0 $t1")
			g.emit("mflo $a0")
		}

		if i > 0 {
			g.emit("lw $t1 4($sp)")
			g.emit("add $a0 $a0 $t1")
			g.pop()
		}

		if i < last {
			g.push("$a0")
		}
	}

	g.emit("li $t1 %d", common.VarSize)
	g.emit("mult $a0 $t1")
	g.emit("mflo $a0")

	if label, ok := g.frames.Label(id); ok {
		g.emit("la $t1 %s", label)
		g.emit("add $a0 $a0 $t1")
	} else if slot, ok := g.frames.Slot(id); ok {
		g.emit("add $a0 $a0 $fp")
		g.emit("addiu $a0 $a0 %d", slot.Offset)
	} else {
		g.rep.ICE("array `%s` has no storage", id.Name)
	}
}

// strideOf returns the number of elements spanned by one step of a subscript
// whose nested dimensions are given.
func strideOf(innerDims []int) int {
	stride := 1
	for _, dim := range innerDims {
		stride *= dim
	}

	return stride
}
