package walk

import (
	"testing"

	"minic/ast"
	"minic/report"
	"minic/types"

	"github.com/nalgeon/be"
)

var valueTypes = []types.Type{types.Void, types.Char, types.Int, types.Float, types.Bool, types.String}

// checkBin applies the coercion rules of a binary operator and returns the
// result type together with the number of diagnostics reported.
func checkBin(op ast.OperKind, lhs, rhs types.Type) (types.Type, int) {
	rep := report.NewReporter(report.LogLevelSilent, nil)
	w := newWalker(&ast.Program{}, rep, "main")

	got := w.checkBinary(bin(op, intLit(0), intLit(0)), lhs, rhs)
	return got, rep.ErrorCount()
}

func checkUn(op ast.OperKind, operand types.Type) (types.Type, int) {
	rep := report.NewReporter(report.LogLevelSilent, nil)
	w := newWalker(&ast.Program{}, rep, "main")

	got := w.checkUnary(un(op, intLit(0)), operand)
	return got, rep.ErrorCount()
}

func TestArithmeticCoercion(t *testing.T) {
	for _, op := range []ast.OperKind{ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpAssign} {
		for _, lhs := range valueTypes {
			for _, rhs := range valueTypes {
				want := types.Error
				switch {
				case lhs == types.Int && rhs == types.Int:
					want = types.Int
				case lhs.IsNumeric() && rhs.IsNumeric():
					want = types.Float
				}

				got, errs := checkBin(op, lhs, rhs)
				be.Equal(t, got, want)
				if want == types.Error {
					be.Equal(t, errs, 1)
				} else {
					be.Equal(t, errs, 0)
				}
			}
		}
	}
}

func TestAssignmentCoercion(t *testing.T) {
	tests := []struct {
		lhs, rhs types.Type
		want     types.Type
	}{
		{types.Int, types.Int, types.Int},
		{types.Int, types.Float, types.Float},
		{types.Float, types.Int, types.Float},
		{types.Float, types.Float, types.Float},
		{types.Bool, types.Bool, types.Error},
		{types.String, types.String, types.Error},
		{types.Char, types.Char, types.Error},
	}

	for _, test := range tests {
		got, _ := checkBin(ast.OpAssign, test.lhs, test.rhs)
		be.Equal(t, got, test.want)
	}
}

func TestRelationalCoercion(t *testing.T) {
	for _, op := range []ast.OperKind{ast.OpLT, ast.OpGT, ast.OpLE, ast.OpGE, ast.OpEQ, ast.OpNE} {
		for _, lhs := range valueTypes {
			for _, rhs := range valueTypes {
				compatible := lhs == rhs || lhs.IsNumeric() && rhs.IsNumeric()

				got, errs := checkBin(op, lhs, rhs)
				if compatible {
					be.Equal(t, got, types.Bool)
					be.Equal(t, errs, 0)
				} else {
					be.Equal(t, got, types.Error)
					be.Equal(t, errs, 1)
				}
			}
		}
	}
}

func TestLogicalCoercion(t *testing.T) {
	for _, op := range []ast.OperKind{ast.OpAnd, ast.OpOr} {
		for _, lhs := range valueTypes {
			for _, rhs := range valueTypes {
				got, errs := checkBin(op, lhs, rhs)
				if lhs == types.Bool && rhs == types.Bool {
					be.Equal(t, got, types.Bool)
					be.Equal(t, errs, 0)
				} else {
					be.Equal(t, got, types.Error)
					be.Equal(t, errs, 1)
				}
			}
		}
	}
}

func TestUnaryCoercion(t *testing.T) {
	for _, operand := range valueTypes {
		got, errs := checkUn(ast.OpNot, operand)
		if operand == types.Bool {
			be.Equal(t, got, types.Bool)
			be.Equal(t, errs, 0)
		} else {
			be.Equal(t, got, types.Error)
			be.Equal(t, errs, 1)
		}

		for _, op := range []ast.OperKind{ast.OpAdd, ast.OpSub, ast.OpInc, ast.OpDec} {
			got, errs := checkUn(op, operand)
			if operand.IsNumeric() {
				be.Equal(t, got, operand)
				be.Equal(t, errs, 0)
			} else {
				be.Equal(t, got, types.Error)
				be.Equal(t, errs, 1)
			}
		}
	}
}

func TestErrorIsAbsorbing(t *testing.T) {
	for _, op := range []ast.OperKind{ast.OpAdd, ast.OpLT, ast.OpAnd, ast.OpAssign} {
		for _, other := range append(valueTypes, types.Error) {
			got, errs := checkBin(op, types.Error, other)
			be.Equal(t, got, types.Error)
			be.Equal(t, errs, 0)

			got, errs = checkBin(op, other, types.Error)
			be.Equal(t, got, types.Error)
			be.Equal(t, errs, 0)
		}
	}

	got, errs := checkUn(ast.OpSub, types.Error)
	be.Equal(t, got, types.Error)
	be.Equal(t, errs, 0)
}
