package generate

import (
	"minic/ast"
	"minic/types"

	lltypes "github.com/llir/llvm/ir/types"
)

// convType converts a scalar language type into its LLVM type.
func (g *Generator) convType(typ types.Type) lltypes.Type {
	switch typ {
	case types.Int:
		return lltypes.I32
	case types.Float:
		return lltypes.Float
	case types.Bool:
		return lltypes.I1
	case types.Char:
		return lltypes.I8
	case types.String:
		return lltypes.I8Ptr
	case types.Void:
		return lltypes.Void
	}

	g.rep.ICE("no LLVM type for `%s`", typ)
	return lltypes.I32
}

// convVarType converts the type of a variable.  Arrays become nested LLVM
// arrays with the outermost dimension first.
func (g *Generator) convVarType(id *ast.Identifier) lltypes.Type {
	typ := g.convType(id.Type)

	for i := len(id.Dims) - 1; i >= 0; i-- {
		typ = lltypes.NewArray(uint64(id.Dims[i]), typ)
	}

	return typ
}
