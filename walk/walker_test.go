package walk

import (
	"testing"

	"minic/ast"
	"minic/report"
	"minic/types"

	"github.com/nalgeon/be"
)

func TestGlobalStoreAndLoad(t *testing.T) {
	x := global("x", types.Int)
	assign := bin(ast.OpAssign, acc("x"), intLit(3))
	load := acc("x")
	main := fn("main", types.Int, nil, block(nil, exprStmt(assign), ret(load)))

	info, checked, rep := check(x, main)
	be.Equal(t, rep.ErrorCount(), 0)
	be.True(t, checked != nil)
	be.Equal(t, checked.Entry(), main)
	be.Equal(t, info.TypeOf(assign), types.Int)
	be.Equal(t, info.Vars[load], x)
}

func TestUndeclaredCallReportsOnce(t *testing.T) {
	foo := call("foo", intLit(1), intLit(2))
	main := mainReturning(nil, exprStmt(foo))

	info, checked, rep := check(main)
	be.Equal(t, rep.Messages(), []string{"no declaration found for `foo`"})
	be.Equal(t, info.TypeOf(foo), types.Error)
	be.True(t, checked == nil)
}

func TestNonBoolTest(t *testing.T) {
	b := global("b", types.Int)
	sel := &ast.SelStmt{Test: acc("b"), Then: block(nil)}
	main := mainReturning(nil, sel)

	_, checked, rep := check(b, main)
	be.Equal(t, rep.Messages(), []string{"test expression must have boolean type"})
	be.True(t, checked == nil)
}

func TestLoopTests(t *testing.T) {
	i := local("i", types.Int)
	while := &ast.IterStmt{Kind: ast.LoopWhile, Cond: acc("i"), Body: block(nil)}
	forever := &ast.IterStmt{Kind: ast.LoopFor, Body: block(nil)}
	counted := &ast.IterStmt{
		Kind: ast.LoopFor,
		Init: bin(ast.OpAssign, acc("i"), intLit(0)),
		Cond: bin(ast.OpLT, acc("i"), intLit(10)),
		Post: bin(ast.OpAssign, acc("i"), bin(ast.OpAdd, acc("i"), intLit(1))),
		Body: block(nil),
	}
	main := mainReturning([]*ast.Identifier{i}, while, forever, counted)

	_, _, rep := check(main)
	be.Equal(t, rep.Messages(), []string{"test expression must have boolean type"})
}

func TestMissingEntry(t *testing.T) {
	_, checked, rep := check(fn("start", types.Void, nil, block(nil)))

	diags := rep.Diagnostics()
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Kind, report.KindNoEntry)
	be.Equal(t, diags[0].Message, "function `main` not defined")
	be.True(t, diags[0].Span == nil)
	be.True(t, checked == nil)
}

func TestEntryMustBeFunction(t *testing.T) {
	_, _, rep := check(global("main", types.Int))
	be.Equal(t, rep.Messages(), []string{"function `main` not defined"})
}

func TestEntryWithParamsWarns(t *testing.T) {
	main := fn("main", types.Int, []*ast.Identifier{local("argc", types.Int)}, block(nil, ret(intLit(0))))

	_, checked, rep := check(main)
	be.Equal(t, rep.ErrorCount(), 0)
	be.Equal(t, rep.WarningCount(), 1)
	be.True(t, checked != nil)
}

func TestGlobalRedeclaration(t *testing.T) {
	first := ast.NewIdentifier(line(1), "x", types.Int, true)
	second := ast.NewIdentifier(line(2), "x", types.Bool, true)
	load := acc("x")
	main := fn("main", types.Int, nil, block(nil, ret(load)))

	info, _, rep := check(first, second, main)
	be.Equal(t, rep.Messages(), []string{"declaration of `x` conflicts with declaration on line 1"})
	be.Equal(t, info.Vars[load], first)
	be.Equal(t, info.TypeOf(load), types.Int)
}

func TestLocalRedeclaration(t *testing.T) {
	first := ast.NewIdentifier(line(3), "y", types.Float, false)
	second := ast.NewIdentifier(line(4), "y", types.Int, false)
	load := acc("y")
	main := mainReturning([]*ast.Identifier{first, second}, exprStmt(load))

	info, _, rep := check(main)
	be.Equal(t, rep.Messages(), []string{"declaration of `y` conflicts with declaration on line 3"})
	be.Equal(t, info.Vars[load], first)

	body := main.Body
	be.Equal(t, info.Locals[body].Vars(), []*ast.Identifier{first})
}

func TestDuplicateParams(t *testing.T) {
	a := ast.NewIdentifier(line(1), "a", types.Int, false)
	b := ast.NewIdentifier(line(1), "a", types.Int, false)
	f := fn("f", types.Void, []*ast.Identifier{a, b}, block(nil))

	_, _, rep := check(f, mainReturning(nil))
	be.Equal(t, rep.Messages(), []string{"declaration of `a` conflicts with declaration on line 1"})
}

func TestScopeOrder(t *testing.T) {
	gx := global("x", types.String)

	// A local shadows a parameter which shadows a global, at every depth.
	px := local("x", types.Float)
	lx := local("x", types.Bool)
	inBody := acc("x")
	inNested := acc("x")
	inDeeper := acc("x")
	shadowed := fn("shadowed", types.Void, []*ast.Identifier{px}, block(
		[]*ast.Identifier{lx},
		exprStmt(inBody),
		block(nil, exprStmt(inNested), block(nil, exprStmt(inDeeper))),
	))

	qx := local("x", types.Int)
	inParamOnly := acc("x")
	paramOnly := fn("paramOnly", types.Void, []*ast.Identifier{qx}, block(nil, block(nil, exprStmt(inParamOnly))))

	nx := local("x", types.Char)
	inInner := acc("x")
	afterInner := acc("x")
	nested := fn("nested", types.Void, nil, block(nil,
		block([]*ast.Identifier{nx}, exprStmt(inInner)),
		exprStmt(afterInner),
	))

	info, _, rep := check(gx, shadowed, paramOnly, nested, mainReturning(nil))
	be.Equal(t, rep.ErrorCount(), 0)

	be.Equal(t, info.Vars[inBody], lx)
	be.Equal(t, info.Vars[inNested], lx)
	be.Equal(t, info.Vars[inDeeper], lx)
	be.Equal(t, info.Vars[inParamOnly], qx)
	be.Equal(t, info.Vars[inInner], nx)
	be.Equal(t, info.Vars[afterInner], gx)
}

func TestCallChecks(t *testing.T) {
	f := fn("f", types.Int, []*ast.Identifier{local("a", types.Int), local("b", types.Float)}, block(nil, ret(intLit(1))))

	good := call("f", intLit(1), floatLit(2))
	tooFew := call("f", intLit(1))
	badTypes := call("f", boolLit(true), intLit(2))
	onVar := call("v")
	noParens := acc("f")
	v := global("v", types.Int)

	main := mainReturning(nil, exprStmt(good), exprStmt(tooFew), exprStmt(badTypes), exprStmt(onVar), exprStmt(noParens))
	info, _, rep := check(v, f, main)

	be.Equal(t, rep.Messages(), []string{
		"function `f` expects 2 argument(s), 1 given",
		"incompatible argument at index 0: bool given, int expected",
		"incompatible argument at index 1: int given, float expected",
		"trying to call non-function: `v`",
		"trying to call function without parentheses: `f`",
	})
	be.Equal(t, info.TypeOf(good), types.Int)
	be.Equal(t, info.Funcs[good], f)
	be.Equal(t, info.TypeOf(tooFew), types.Error)
	be.Equal(t, info.TypeOf(badTypes), types.Error)
}

func TestCallArgumentsStillChecked(t *testing.T) {
	main := mainReturning(nil, exprStmt(call("missing", acc("alsoMissing"))))

	_, _, rep := check(main)
	be.Equal(t, rep.Messages(), []string{
		"no declaration found for `alsoMissing`",
		"no declaration found for `missing`",
	})
}

func TestArrayChecks(t *testing.T) {
	a := global("a", types.Int, 3, 4)
	s := global("s", types.Int)

	good := acc("a", intLit(1), intLit(2))
	main := mainReturning(nil,
		exprStmt(good),
		exprStmt(acc("a", intLit(1))),
		exprStmt(acc("s", intLit(0))),
		exprStmt(acc("a")),
		exprStmt(acc("a", intLit(1), boolLit(true))),
		exprStmt(acc("a", intLit(1), acc("nope"))),
	)

	info, _, rep := check(a, s, main)
	be.Equal(t, rep.Messages(), []string{
		"`a` expects 2 dimension(s), 1 given",
		"[] can only be applied to arrays",
		"accessing array variable `a` without []",
		"array subscript must be an integer",
		"no declaration found for `nope`",
	})
	be.Equal(t, info.TypeOf(good), types.Int)
}

func TestNonPositiveDimension(t *testing.T) {
	_, _, rep := check(global("a", types.Int, 3, 0), mainReturning(nil))
	be.Equal(t, rep.Messages(), []string{"array `a` has non-positive dimension 0"})
}

func TestVoidVariables(t *testing.T) {
	f := fn("f", types.Void, []*ast.Identifier{local("p", types.Void)}, block(nil))
	main := mainReturning([]*ast.Identifier{local("l", types.Void, 2)})

	_, checked, rep := check(global("g", types.Void), f, main)
	be.Equal(t, rep.Messages(), []string{
		"variable `g` cannot have type void",
		"variable `p` cannot have type void",
		"variable `l` cannot have type void",
	})
	be.Equal(t, rep.Diagnostics()[0].Kind, report.KindVoidVar)
	be.True(t, checked == nil)
}

func TestReturnChecks(t *testing.T) {
	v := fn("v", types.Void, nil, block(nil, ret(nil)))
	badVoid := fn("badVoid", types.Void, nil, block(nil, ret(intLit(1))))
	missing := fn("missing", types.Int, nil, block(nil, ret(nil)))
	widen := fn("widen", types.Float, nil, block(nil, ret(intLit(1))))

	_, _, rep := check(v, badVoid, missing, widen, mainReturning(nil))
	be.Equal(t, rep.Messages(), []string{
		"incompatible return: int given, void expected",
		"incompatible return: void given, int expected",
		"incompatible return: int given, float expected",
	})
}

func TestReturnOutsideFunction(t *testing.T) {
	rep := report.NewReporter(report.LogLevelSilent, nil)
	w := newWalker(&ast.Program{}, rep, "main")

	value := acc("undeclared")
	w.walkStmt(ret(value))

	diags := rep.Diagnostics()
	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Kind, report.KindUnexpectedReturn)

	// The statement is abandoned before its expression is checked.
	_, walked := w.info.Types[value]
	be.True(t, !walked)
}

func TestInvalidAssignment(t *testing.T) {
	x := global("x", types.Int)
	f := global("f", types.Float)
	b := global("b", types.Bool)
	s := global("s", types.String)
	narrow := bin(ast.OpAssign, acc("x"), floatLit(1.5))
	main := mainReturning(nil,
		exprStmt(bin(ast.OpAssign, intLit(3), acc("x"))),
		exprStmt(bin(ast.OpAssign, acc("f"), intLit(1))),
		exprStmt(narrow),
		exprStmt(bin(ast.OpAssign, acc("b"), boolLit(true))),
		exprStmt(bin(ast.OpAssign, acc("s"), strLit("hi"))),
		exprStmt(un(ast.OpAssign, acc("x"))),
	)

	info, _, rep := check(x, f, b, s, main)
	be.Equal(t, rep.Messages(), []string{
		"invalid assignment target",
		"incompatible operands: bool bool",
		"incompatible operands: string string",
		"`=` is not a unary operator",
	})
	be.Equal(t, info.TypeOf(narrow), types.Float)
}

func TestErrorDoesNotCascade(t *testing.T) {
	sum := bin(ast.OpAdd, bin(ast.OpMul, acc("nope"), intLit(2)), boolLit(true))
	neg := un(ast.OpNot, acc("nope"))
	main := mainReturning(nil, exprStmt(sum), exprStmt(neg), exprStmt(bin(ast.OpAdd, intLit(1), boolLit(false))))

	info, _, rep := check(main)
	be.Equal(t, rep.Messages(), []string{
		"no declaration found for `nope`",
		"no declaration found for `nope`",
		"incompatible operands: int bool",
	})
	be.Equal(t, info.TypeOf(sum), types.Error)
	be.Equal(t, info.TypeOf(neg), types.Error)
}

func TestStringsAndChars(t *testing.T) {
	s := global("s", types.String)
	c := global("c", types.Char)
	cmp := bin(ast.OpEQ, acc("s"), strLit("hi"))
	main := mainReturning(nil,
		exprStmt(cmp),
		exprStmt(bin(ast.OpAdd, acc("c"), intLit(1))),
	)

	info, _, rep := check(s, c, main)
	be.Equal(t, rep.Messages(), []string{"incompatible operands: char int"})
	be.Equal(t, info.TypeOf(cmp), types.Bool)
}
