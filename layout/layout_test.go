package layout

import (
	"testing"

	"minic/ast"
	"minic/report"
	"minic/types"
	"minic/walk"

	"github.com/nalgeon/be"
)

func variable(name string, typ types.Type, dims ...int) *ast.Identifier {
	return ast.NewArray(nil, name, typ, dims, false)
}

func computeFor(t *testing.T, decls ...ast.Decl) *Frames {
	t.Helper()

	rep := report.NewReporter(report.LogLevelSilent, nil)
	_, checked := walk.Check(&ast.Program{Decls: decls}, rep, "main")
	be.Equal(t, rep.Messages(), []string(nil))
	return Compute(checked)
}

func mainWith(body *ast.Block) *ast.FuncDecl {
	body.Stmts = append(body.Stmts, &ast.ReturnStmt{Expr: &ast.IntConst{Value: 0}})
	return &ast.FuncDecl{Name: "main", ReturnType: types.Int, Body: body}
}

func TestParamOffsets(t *testing.T) {
	a, b, c := variable("a", types.Int), variable("b", types.Float), variable("c", types.Bool)
	f := &ast.FuncDecl{Name: "f", ReturnType: types.Void, Params: []*ast.Identifier{a, b, c}, Body: &ast.Block{}}

	frames := computeFor(t, f, mainWith(&ast.Block{}))

	for i, param := range []*ast.Identifier{a, b, c} {
		slot, ok := frames.Slot(param)
		be.True(t, ok)
		be.Equal(t, slot, Slot{Offset: 4 + 4*i, Size: 1})
	}

	be.Equal(t, frames.FrameSize(f.Body), 0)
}

func TestLocalOffsets(t *testing.T) {
	x := variable("x", types.Int)
	arr := variable("arr", types.Int, 3, 4)
	y := variable("y", types.Char)
	body := &ast.Block{Vars: []*ast.Identifier{x, arr, y}}

	frames := computeFor(t, mainWith(body))

	slot, _ := frames.Slot(x)
	be.Equal(t, slot, Slot{Offset: -4, Size: 1})

	// arr occupies -8 down to -52 with its first element at the bottom.
	slot, _ = frames.Slot(arr)
	be.Equal(t, slot, Slot{Offset: -52, Size: 12})

	slot, _ = frames.Slot(y)
	be.Equal(t, slot, Slot{Offset: -56, Size: 1})

	be.Equal(t, frames.FrameSize(body), 56)
}

func TestGlobalLabels(t *testing.T) {
	g := ast.NewArray(nil, "counts", types.Int, []int{10}, true)
	frames := computeFor(t, g, mainWith(&ast.Block{}))

	label, ok := frames.Label(g)
	be.True(t, ok)
	be.Equal(t, label, "g_counts")

	_, ok = frames.Slot(g)
	be.True(t, !ok)
}

func TestFuncLabels(t *testing.T) {
	helper := &ast.FuncDecl{Name: "g_x", ReturnType: types.Void, Body: &ast.Block{}}
	main := mainWith(&ast.Block{})
	frames := computeFor(t, ast.NewArray(nil, "x", types.Int, nil, true), helper, main)

	be.Equal(t, frames.FuncLabel(main), "main")
	be.Equal(t, frames.FuncLabel(helper), "f_g_x")
}

func TestPrefixedEntryLabel(t *testing.T) {
	entry := &ast.FuncDecl{Name: "_start", ReturnType: types.Int, Body: &ast.Block{
		Stmts: []ast.Stmt{&ast.ReturnStmt{Expr: &ast.IntConst{Value: 0}}},
	}}

	rep := report.NewReporter(report.LogLevelSilent, nil)
	_, checked := walk.Check(&ast.Program{Decls: []ast.Decl{entry}}, rep, "_start")
	be.Equal(t, rep.Messages(), []string(nil))

	be.Equal(t, Compute(checked).FuncLabel(entry), "f__start")
}

func TestNoOverlappingOffsets(t *testing.T) {
	p := variable("p", types.Int)
	outer := variable("outer", types.Int, 2, 2)
	inner := variable("inner", types.Int)
	innerArr := variable("innerArr", types.Float, 5)
	loopVar := variable("i", types.Int)
	elseArr := variable("e", types.Bool, 3)

	innerBlock := &ast.Block{Vars: []*ast.Identifier{inner, innerArr}}
	loopBody := &ast.Block{Vars: []*ast.Identifier{loopVar}}
	elseBlock := &ast.Block{Vars: []*ast.Identifier{elseArr}}
	body := &ast.Block{
		Vars: []*ast.Identifier{outer},
		Stmts: []ast.Stmt{
			innerBlock,
			&ast.IterStmt{Kind: ast.LoopWhile, Cond: &ast.BoolConst{Value: true}, Body: loopBody},
			&ast.SelStmt{Test: &ast.BoolConst{Value: false}, Then: &ast.Block{}, Else: elseBlock},
		},
	}
	f := &ast.FuncDecl{Name: "f", ReturnType: types.Void, Params: []*ast.Identifier{p}, Body: body}

	frames := computeFor(t, f, mainWith(&ast.Block{}))

	all := []*ast.Identifier{p, outer, inner, innerArr, loopVar, elseArr}
	seen := make(map[int]*ast.Identifier)
	total := 0
	for _, id := range all {
		slot, ok := frames.Slot(id)
		be.True(t, ok)
		be.Equal(t, slot.Size, id.ElemCount())

		for k := 0; k < slot.Size; k++ {
			offset := slot.Offset + 4*k
			_, dup := seen[offset]
			be.True(t, !dup)
			seen[offset] = id
		}

		if !id.Global && id != p {
			total += 4 * slot.Size
			be.True(t, slot.Offset < 0)
			be.True(t, slot.Offset >= -frames.FrameSize(body))
		}
	}

	be.Equal(t, frames.FrameSize(body), total)
	be.Equal(t, frames.FrameSize(innerBlock), 0)
}
