package generate

import (
	"minic/ast"
	"minic/types"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genExpr generates an expression and returns the value it produces.
func (g *Generator) genExpr(expr ast.Expr) value.Value {
	switch v := expr.(type) {
	case *ast.IntConst:
		return constant.NewInt(lltypes.I32, int64(v.Value))
	case *ast.DoubleConst:
		return constant.NewFloat(lltypes.Float, float64(float32(v.Value)))
	case *ast.BoolConst:
		return constant.NewBool(v.Value)
	case *ast.StringConst:
		return g.stringPtr(v.Value)
	case *ast.Access:
		ptr, elemType, ok := g.addrOf(v)
		if !ok {
			return constant.NewInt(lltypes.I32, 0)
		}

		return g.block.NewLoad(elemType, ptr)
	case *ast.Call:
		return g.genCall(v)
	case *ast.OpExpr:
		if v.Op.Kind == ast.OpAssign {
			return g.genAssign(v)
		} else if v.IsUnary() {
			return g.genUnary(v)
		}

		return g.genBinary(v)
	}

	g.rep.ICE("LLVM generation not implemented for expression %T", expr)
	return constant.NewInt(lltypes.I32, 0)
}

// addrOf returns a pointer to the storage an access names along with the type
// of the value stored there.
func (g *Generator) addrOf(acc *ast.Access) (value.Value, lltypes.Type, bool) {
	id, ok := g.info.Vars[acc]
	if !ok {
		g.rep.ICE("access to `%s` was never resolved", acc.Name)
		return nil, nil, false
	}

	var base value.Value
	if id.Global {
		base = g.globals[id]
	} else {
		base = g.locals[id]
	}

	if base == nil {
		g.rep.ICE("no storage allocated for `%s`", id.Name)
		return nil, nil, false
	}

	elemType := g.convType(id.Type)
	if !acc.Indexed() {
		return base, elemType, true
	}

	indices := []value.Value{constant.NewInt(lltypes.I32, 0)}
	for _, sub := range acc.Subscripts {
		indices = append(indices, g.genExpr(sub))
	}

	return g.block.NewGetElementPtr(g.convVarType(id), base, indices...), elemType, true
}

// genCall generates a function call.
func (g *Generator) genCall(call *ast.Call) value.Value {
	fd, ok := g.info.Funcs[call]
	if !ok {
		g.rep.ICE("call to `%s` was never resolved", call.Name)
		return constant.NewInt(lltypes.I32, 0)
	}

	args := make([]value.Value, len(call.Args))
	for i, arg := range call.Args {
		args[i] = g.genExpr(arg)
	}

	return g.block.NewCall(g.funcs[fd], args...)
}

// genAssign generates an assignment.  The assigned value is the value of the
// expression.
func (g *Generator) genAssign(oe *ast.OpExpr) value.Value {
	target, ok := oe.Lhs.(*ast.Access)
	if !ok {
		g.rep.ICE("assignment to %T reached LLVM generation", oe.Lhs)
		return constant.NewInt(lltypes.I32, 0)
	}

	val := g.genExpr(oe.Rhs)
	lhsType, rhsType := g.info.TypeOf(oe.Lhs), g.info.TypeOf(oe.Rhs)
	if lhsType == types.Float {
		val = g.toFloat(val, rhsType)
	}

	ptr, _, ok := g.addrOf(target)
	if !ok {
		return val
	}

	// The stored int is truncated; the assignment's value stays float.
	if lhsType == types.Int && rhsType == types.Float {
		g.block.NewStore(g.block.NewFPToSI(val, lltypes.I32), ptr)
		return val
	}

	g.block.NewStore(val, ptr)
	return val
}

// genUnary generates a unary operator application.  Increment and decrement
// yield the adjusted value without storing it.
func (g *Generator) genUnary(oe *ast.OpExpr) value.Value {
	operand := g.genExpr(oe.Rhs)
	isFloat := g.info.TypeOf(oe.Rhs) == types.Float

	switch oe.Op.Kind {
	case ast.OpNot:
		return g.block.NewXor(operand, constant.True)
	case ast.OpAdd:
		return operand
	case ast.OpSub:
		if isFloat {
			return g.block.NewFNeg(operand)
		}

		return g.block.NewSub(constant.NewInt(lltypes.I32, 0), operand)
	case ast.OpInc:
		if isFloat {
			return g.block.NewFAdd(operand, constant.NewFloat(lltypes.Float, 1))
		}

		return g.block.NewAdd(operand, constant.NewInt(lltypes.I32, 1))
	case ast.OpDec:
		if isFloat {
			return g.block.NewFSub(operand, constant.NewFloat(lltypes.Float, 1))
		}

		return g.block.NewSub(operand, constant.NewInt(lltypes.I32, 1))
	}

	g.rep.ICE("unknown unary operator `%s`", oe.Op.Kind)
	return operand
}

// genBinary generates a binary operator application.  Mixed int and float
// operands are promoted to float.
func (g *Generator) genBinary(oe *ast.OpExpr) value.Value {
	lhs, rhs := g.genExpr(oe.Lhs), g.genExpr(oe.Rhs)
	lhsType, rhsType := g.info.TypeOf(oe.Lhs), g.info.TypeOf(oe.Rhs)

	switch oe.Op.Kind {
	case ast.OpAnd:
		return g.block.NewAnd(lhs, rhs)
	case ast.OpOr:
		return g.block.NewOr(lhs, rhs)
	}

	if lhsType == types.Float || rhsType == types.Float {
		lhs, rhs = g.toFloat(lhs, lhsType), g.toFloat(rhs, rhsType)

		if pred, ok := floatPreds[oe.Op.Kind]; ok {
			return g.block.NewFCmp(pred, lhs, rhs)
		}

		switch oe.Op.Kind {
		case ast.OpAdd:
			return g.block.NewFAdd(lhs, rhs)
		case ast.OpSub:
			return g.block.NewFSub(lhs, rhs)
		case ast.OpMul:
			return g.block.NewFMul(lhs, rhs)
		case ast.OpDiv:
			return g.block.NewFDiv(lhs, rhs)
		case ast.OpMod:
			return g.block.NewFRem(lhs, rhs)
		}
	} else {
		if pred, ok := intPreds[oe.Op.Kind]; ok {
			return g.block.NewICmp(pred, lhs, rhs)
		}

		switch oe.Op.Kind {
		case ast.OpAdd:
			return g.block.NewAdd(lhs, rhs)
		case ast.OpSub:
			return g.block.NewSub(lhs, rhs)
		case ast.OpMul:
			return g.block.NewMul(lhs, rhs)
		case ast.OpDiv:
			return g.block.NewSDiv(lhs, rhs)
		case ast.OpMod:
			return g.block.NewSRem(lhs, rhs)
		}
	}

	g.rep.ICE("unknown binary operator `%s`", oe.Op.Kind)
	return lhs
}

// toFloat converts an int value to float.  Values of other types are returned
// unchanged.
func (g *Generator) toFloat(val value.Value, typ types.Type) value.Value {
	if typ == types.Int {
		return g.block.NewSIToFP(val, lltypes.Float)
	}

	return val
}

var intPreds = map[ast.OperKind]enum.IPred{
	ast.OpLT: enum.IPredSLT,
	ast.OpGT: enum.IPredSGT,
	ast.OpLE: enum.IPredSLE,
	ast.OpGE: enum.IPredSGE,
	ast.OpEQ: enum.IPredEQ,
	ast.OpNE: enum.IPredNE,
}

var floatPreds = map[ast.OperKind]enum.FPred{
	ast.OpLT: enum.FPredOLT,
	ast.OpGT: enum.FPredOGT,
	ast.OpLE: enum.FPredOLE,
	ast.OpGE: enum.FPredOGE,
	ast.OpEQ: enum.FPredOEQ,
	ast.OpNE: enum.FPredUNE,
}
