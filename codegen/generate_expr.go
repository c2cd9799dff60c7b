package codegen

import (
	"math"

	"minic/ast"
	"minic/types"
)

// floatOne is the IEEE-754 single precision encoding of 1.0.
const floatOne = 0x3f800000

// generateExpr generates an expression leaving its value in the accumulator.
func (g *Generator) generateExpr(expr ast.Expr) {
	switch v := expr.(type) {
	case *ast.IntConst:
		g.emit("li $a0 %d", v.Value)
	case *ast.DoubleConst:
		g.emit("li $a0 0x%08x", math.Float32bits(float32(v.Value)))
	case *ast.BoolConst:
		if v.Value {
			g.emit("li $a0 1")
		} else {
			g.emit("li $a0 0")
		}
	case *ast.StringConst:
		g.emit("la $a0 %s", g.stringLabel(v.Value))
	case *ast.Access:
		g.generateLoad(v)
	case *ast.Call:
		g.generateCall(v)
	case *ast.OpExpr:
		if v.Op.Kind == ast.OpAssign {
			g.generateAssign(v)
		} else if v.IsUnary() {
			g.generateUnary(v)
		} else {
			g.generateBinary(v)
		}
	default:
		g.rep.ICE("code generation not implemented for expression %T", expr)
	}
}

// generateCall generates a function call.  The frame pointer and the
// arguments, last first, are pushed for the callee which pops them on return.
func (g *Generator) generateCall(call *ast.Call) {
	fd, ok := g.info.Funcs[call]
	if !ok {
		g.rep.ICE("call to `%s` was never resolved", call.Name)
		return
	}

	g.push("$fp")

	for i := len(call.Args) - 1; i > -1; i-- {
		g.generateExpr(call.Args[i])
		g.push("$a0")
	}

	g.emit("jal %s", g.frames.FuncLabel(fd))
	g.released(len(call.Args) + 1)
}

// generateAssign generates an assignment: the value is stored through the
// target's lvalue form and remains in the accumulator.  A float stored into
// an int target is truncated in memory only; the accumulator keeps the float
// result of the assignment.
func (g *Generator) generateAssign(oe *ast.OpExpr) {
	target, ok := oe.Lhs.(*ast.Access)
	if !ok {
		g.rep.ICE("assignment to %T reached code generation", oe.Lhs)
		return
	}

	g.generateExpr(oe.Rhs)

	lhsType, rhsType := g.info.TypeOf(oe.Lhs), g.info.TypeOf(oe.Rhs)
	switch {
	case lhsType == types.Float && rhsType == types.Int:
		g.intToFloat()
	case lhsType == types.Int && rhsType == types.Float:
		g.push("$a0")
		g.floatToInt()
		g.generateStore(target)
		g.emit("lw $a0 4($sp)")
		g.pop()
		return
	}

	g.generateStore(target)
}

// generateBinary generates a binary operator application.  The right operand
// is evaluated first and pushed; the left operand ends up in the accumulator
// and the right in `$t1`.
func (g *Generator) generateBinary(oe *ast.OpExpr) {
	lhsType, rhsType := g.info.TypeOf(oe.Lhs), g.info.TypeOf(oe.Rhs)
	useFloat := !oe.Op.Kind.IsLogical() && (lhsType == types.Float || rhsType == types.Float)

	g.generateExpr(oe.Rhs)
	if useFloat && rhsType == types.Int {
		g.intToFloat()
	}

	g.push("$a0")

	g.generateExpr(oe.Lhs)
	if useFloat && lhsType == types.Int {
		g.intToFloat()
	}

	g.emit("lw $t1 4($sp)")

	if useFloat {
		g.combineFloat(oe.Op.Kind)
	} else {
		g.combineInt(oe.Op.Kind)
	}

	g.pop()
}

// combineInt combines the integer operands in `$a0` and `$t1`.
func (g *Generator) combineInt(op ast.OperKind) {
	switch op {
	case ast.OpAdd:
		g.emit("add $a0 $a0 $t1")
	case ast.OpSub:
		g.emit("sub $a0 $a0 $t1")
	case ast.OpMul:
		g.emit("mult $a0 $t1")
		g.emit("mflo $a0")
	case ast.OpDiv:
		g.emit("div $a0 $t1")
		g.emit("mflo $a0")
	case ast.OpMod:
		g.emit("div $a0 $t1")
		g.emit("mfhi $a0")
	case ast.OpLT:
		g.emit("slt $a0 $a0 $t1")
	case ast.OpGT:
		g.emit("slt $a0 $t1 $a0")
	case ast.OpLE:
		g.emit("slt $a0 $t1 $a0")
		g.emit("xori $a0 $a0 1")
	case ast.OpGE:
		g.emit("slt $a0 $a0 $t1")
		g.emit("xori $a0 $a0 1")
	case ast.OpEQ:
		g.emitNotEqual()
		g.emit("xori $a0 $a0 1")
	case ast.OpNE:
		g.emitNotEqual()
	case ast.OpAnd:
		g.emit("and $a0 $a0 $t1")
	case ast.OpOr:
		g.emit("or $a0 $a0 $t1")
	default:
		g.rep.ICE("unknown binary operator `%s`", op)
	}
}

// emitNotEqual sets the accumulator to 1 if `$a0` and `$t1` differ and to 0
// otherwise using only comparisons.
func (g *Generator) emitNotEqual() {
	g.emit("slt $t2 $a0 $t1")
	g.emit("slt $t1 $t1 $a0")
	g.emit("or $a0 $t2 $t1")
}

// combineFloat combines the single precision operands in `$a0` and `$t1`.
func (g *Generator) combineFloat(op ast.OperKind) {
	g.emit("mtc1 $a0 $f0")
	g.emit("mtc1 $t1 $f2")

	switch op {
	case ast.OpAdd:
		g.emitFloatArith("add.s")
	case ast.OpSub:
		g.emitFloatArith("sub.s")
	case ast.OpMul:
		g.emitFloatArith("mul.s")
	case ast.OpDiv:
		g.emitFloatArith("div.s")
	case ast.OpMod:
		// a - trunc(a / b) * b
		g.emit("div.s $f4 $f0 $f2")
		g.emit("trunc.w.s $f4 $f4")
		g.emit("cvt.s.w $f4 $f4")
		g.emit("mul.s $f4 $f4 $f2")
		g.emit("sub.s $f0 $f0 $f4")
		g.emit("mfc1 $a0 $f0")
	case ast.OpLT:
		g.emitFloatCompare("c.lt.s $f0 $f2", "movt")
	case ast.OpGT:
		g.emitFloatCompare("c.lt.s $f2 $f0", "movt")
	case ast.OpLE:
		g.emitFloatCompare("c.le.s $f0 $f2", "movt")
	case ast.OpGE:
		g.emitFloatCompare("c.le.s $f2 $f0", "movt")
	case ast.OpEQ:
		g.emitFloatCompare("c.eq.s $f0 $f2", "movt")
	case ast.OpNE:
		g.emitFloatCompare("c.eq.s $f0 $f2", "movf")
	default:
		g.rep.ICE("unknown binary operator `%s`", op)
	}
}

func (g *Generator) emitFloatArith(opcode string) {
	g.emit("%s $f0 $f0 $f2", opcode)
	g.emit("mfc1 $a0 $f0")
}

// emitFloatCompare sets the accumulator from the FPU condition flag.
func (g *Generator) emitFloatCompare(compare, move string) {
	g.emit("%s", compare)
	g.emit("li $a0 0")
	g.emit("li $t2 1")
	g.emit("%s $a0 $t2", move)
}

// intToFloat converts the integer in the accumulator to single precision.
func (g *Generator) intToFloat() {
	g.emit("mtc1 $a0 $f0")
	g.emit("cvt.s.w $f0 $f0")
	g.emit("mfc1 $a0 $f0")
}

// floatToInt truncates the single precision value in the accumulator toward
// zero.
func (g *Generator) floatToInt() {
	g.emit("mtc1 $a0 $f0")
	g.emit("trunc.w.s $f0 $f0")
	g.emit("mfc1 $a0 $f0")
}

// generateUnary generates a unary operator application.  The operand is
// transformed in place in the accumulator.
func (g *Generator) generateUnary(oe *ast.OpExpr) {
	g.generateExpr(oe.Rhs)

	isFloat := g.info.TypeOf(oe.Rhs) == types.Float

	switch oe.Op.Kind {
	case ast.OpNot:
		g.emit("xori $a0 $a0 1")
	case ast.OpAdd:
	case ast.OpSub:
		if isFloat {
			g.emit("mtc1 $a0 $f0")
			g.emit("neg.s $f0 $f0")
			g.emit("mfc1 $a0 $f0")
		} else {
			g.emit("sub $a0 $zero $a0")
		}
	case ast.OpInc, ast.OpDec:
		step, opcode := 1, "add.s"
		if oe.Op.Kind == ast.OpDec {
			step, opcode = -1, "sub.s"
		}

		if isFloat {
			g.emit("li $t1 0x%08x", floatOne)
			g.emit("mtc1 $a0 $f0")
			g.emit("mtc1 $t1 $f2")
			g.emitFloatArith(opcode)
		} else {
			g.emit("addiu $a0 $a0 %d", step)
		}
	default:
		g.rep.ICE("unknown unary operator `%s`", oe.Op.Kind)
	}
}
