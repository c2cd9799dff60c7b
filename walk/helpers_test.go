package walk

import (
	"minic/ast"
	"minic/report"
	"minic/types"
)

func line(n int) *report.TextSpan {
	return &report.TextSpan{StartLine: n - 1, EndLine: n - 1}
}

func intLit(v int32) *ast.IntConst {
	return &ast.IntConst{Value: v}
}

func floatLit(v float64) *ast.DoubleConst {
	return &ast.DoubleConst{Value: v}
}

func boolLit(v bool) *ast.BoolConst {
	return &ast.BoolConst{Value: v}
}

func strLit(v string) *ast.StringConst {
	return &ast.StringConst{Value: v}
}

func acc(name string, subs ...ast.Expr) *ast.Access {
	return &ast.Access{Name: name, Subscripts: subs}
}

func call(name string, args ...ast.Expr) *ast.Call {
	return &ast.Call{Name: name, Args: args}
}

func bin(op ast.OperKind, lhs, rhs ast.Expr) *ast.OpExpr {
	return &ast.OpExpr{Op: ast.Oper{Kind: op}, Lhs: lhs, Rhs: rhs}
}

func un(op ast.OperKind, operand ast.Expr) *ast.OpExpr {
	return &ast.OpExpr{Op: ast.Oper{Kind: op}, Rhs: operand}
}

func global(name string, typ types.Type, dims ...int) *ast.Identifier {
	return ast.NewArray(nil, name, typ, dims, true)
}

func local(name string, typ types.Type, dims ...int) *ast.Identifier {
	return ast.NewArray(nil, name, typ, dims, false)
}

func fn(name string, ret types.Type, params []*ast.Identifier, body *ast.Block) *ast.FuncDecl {
	return &ast.FuncDecl{Name: name, ReturnType: ret, Params: params, Body: body}
}

func block(vars []*ast.Identifier, stmts ...ast.Stmt) *ast.Block {
	return &ast.Block{Vars: vars, Stmts: stmts}
}

func exprStmt(e ast.Expr) *ast.ExprStmt {
	return &ast.ExprStmt{Expr: e}
}

func ret(e ast.Expr) *ast.ReturnStmt {
	return &ast.ReturnStmt{Expr: e}
}

// mainReturning wraps statements in an `int main()` whose body ends by
// returning zero.
func mainReturning(vars []*ast.Identifier, stmts ...ast.Stmt) *ast.FuncDecl {
	stmts = append(stmts, ret(intLit(0)))
	return fn("main", types.Int, nil, block(vars, stmts...))
}

func check(decls ...ast.Decl) (*Info, *Checked, *report.Reporter) {
	rep := report.NewReporter(report.LogLevelSilent, nil)
	info, checked := Check(&ast.Program{Decls: decls}, rep, "main")
	return info, checked, rep
}
