// Package syntax reads the S-expression form of a program handed over by the
// front end and converts it into an AST.
package syntax

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"minic/ast"
	"minic/report"
	"minic/types"
)

// LoadFile reads and converts the program stored at path.
func LoadFile(path string) (*ast.Program, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	prog, err := Load(string(buff))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// the front end may name the source file the spans refer to
	if prog.SourcePath == "" {
		prog.SourcePath = path
	} else if !filepath.IsAbs(prog.SourcePath) {
		prog.SourcePath = filepath.Join(filepath.Dir(path), prog.SourcePath)
	}

	return prog, nil
}

// Load parses and converts a program from its S-expression source text.
func Load(src string) (*ast.Program, error) {
	root, err := Parse(src)
	if err != nil {
		return nil, err
	}

	return Convert(root)
}

// loadError is raised while converting a malformed tree.  It is recovered by
// Convert and returned as an ordinary error.
type loadError struct {
	line int
	msg  string
}

func (le *loadError) Error() string {
	return fmt.Sprintf("line %d: %s", le.line, le.msg)
}

func fail(n *Node, format string, args ...interface{}) {
	panic(&loadError{line: n.Line, msg: fmt.Sprintf(format, args...)})
}

// Convert converts a parsed `(program ...)` tree into an AST.
func Convert(root *Node) (prog *ast.Program, err error) {
	defer func() {
		if x := recover(); x != nil {
			if le, ok := x.(*loadError); ok {
				prog, err = nil, le
				return
			}

			panic(x)
		}
	}()

	if root.Head() != "program" {
		fail(root, "expected `program` form, got %s", root)
	}

	prog = &ast.Program{}
	if src := root.Meta("source"); src != nil {
		if src.Type != NodeString {
			fail(src, "source path must be a string, got %s", src)
		}

		prog.SourcePath = src.Text
	}

	for _, item := range root.Items[1:] {
		switch item.Head() {
		case "var":
			prog.Decls = append(prog.Decls, convertVar(item, true))
		case "func":
			prog.Decls = append(prog.Decls, convertFunc(item))
		default:
			fail(item, "expected a top level declaration, got %s", item)
		}
	}

	return prog, nil
}

// spanOf builds the span described by a list's `line`, `col` and `end`
// metadata.  Lists without a line have no span.
func spanOf(n *Node) *report.TextSpan {
	lineNode := n.Meta("line")
	if lineNode == nil {
		return nil
	}

	line := metaInt(lineNode)
	col := 1
	if colNode := n.Meta("col"); colNode != nil {
		col = metaInt(colNode)
	}

	end := col
	if endNode := n.Meta("end"); endNode != nil {
		end = metaInt(endNode)
	}

	return &report.TextSpan{StartLine: line - 1, StartCol: col - 1, EndLine: line - 1, EndCol: end - 1}
}

func metaInt(n *Node) int {
	if n.Type != NodeInteger {
		fail(n, "expected an integer, got %s", n)
	}

	v, err := strconv.Atoi(n.Text)
	if err != nil || v < 1 {
		fail(n, "invalid position `%s`", n.Text)
	}

	return v
}

// expectArity checks that a list has between min and max operands after its
// head.  A negative max means unbounded.
func expectArity(n *Node, min, max int) {
	count := len(n.Items) - 1
	if count < min || (max >= 0 && count > max) {
		fail(n, "malformed `%s` form: %s", n.Head(), n)
	}
}

func symbolText(n *Node) string {
	if n.Type != NodeSymbol {
		fail(n, "expected a name, got %s", n)
	}

	return n.Text
}

func parseType(n *Node) types.Type {
	typ, ok := types.Parse(symbolText(n))
	if !ok {
		fail(n, "unknown type `%s`", n.Text)
	}

	return typ
}

// -----------------------------------------------------------------------------

// convertVar converts `(var T name ^{dims: [..]})`.
func convertVar(n *Node, global bool) *ast.Identifier {
	expectArity(n, 2, 2)
	typ := parseType(n.Items[1])
	name := symbolText(n.Items[2])

	var dims []int
	if dimsNode := n.Meta("dims"); dimsNode != nil {
		if dimsNode.Type != NodeArray {
			fail(n, "array dimensions must be an array, got %s", dimsNode)
		}

		// non-positive dimensions are kept for the checker to report
		for _, d := range dimsNode.Items {
			if d.Type != NodeInteger {
				fail(d, "array dimension must be an integer, got %s", d)
			}

			v, err := strconv.Atoi(d.Text)
			if err != nil {
				fail(d, "invalid array dimension `%s`", d.Text)
			}
			dims = append(dims, v)
		}
	}

	return ast.NewArray(spanOf(n), name, typ, dims, global)
}

// convertFunc converts `(func T name (params...) (block ...))`.
func convertFunc(n *Node) *ast.FuncDecl {
	expectArity(n, 4, 4)

	fd := &ast.FuncDecl{
		ASTBase:    ast.NewASTBaseOn(spanOf(n)),
		ReturnType: parseType(n.Items[1]),
		Name:       symbolText(n.Items[2]),
	}

	params := n.Items[3]
	if params.Type != NodeList || params.Head() != "" {
		fail(params, "expected a parameter list, got %s", params)
	}

	for _, p := range params.Items {
		if p.Head() != "param" {
			fail(p, "expected a `param` form, got %s", p)
		}

		expectArity(p, 2, 2)
		fd.Params = append(fd.Params, ast.NewIdentifier(spanOf(p), symbolText(p.Items[2]), parseType(p.Items[1]), false))
	}

	if n.Items[4].Head() != "block" {
		fail(n.Items[4], "function body must be a block, got %s", n.Items[4])
	}

	fd.Body = convertBlock(n.Items[4])
	return fd
}

// convertBlock converts `(block decls-and-stmts...)`.
func convertBlock(n *Node) *ast.Block {
	b := &ast.Block{ASTBase: ast.NewASTBaseOn(spanOf(n))}

	for _, item := range n.Items[1:] {
		if item.Head() == "var" {
			b.Vars = append(b.Vars, convertVar(item, false))
		} else {
			b.Stmts = append(b.Stmts, convertStmt(item))
		}
	}

	return b
}

func convertStmt(n *Node) ast.Stmt {
	span := spanOf(n)

	switch n.Head() {
	case "block":
		return convertBlock(n)
	case "expr":
		expectArity(n, 0, 1)
		return &ast.ExprStmt{ASTBase: ast.NewASTBaseOn(span), Expr: convertOptExpr(n, 1)}
	case "return":
		expectArity(n, 0, 1)
		return &ast.ReturnStmt{ASTBase: ast.NewASTBaseOn(span), Expr: convertOptExpr(n, 1)}
	case "if":
		expectArity(n, 2, 3)
		sel := &ast.SelStmt{
			ASTBase: ast.NewASTBaseOn(span),
			Test:    convertExpr(n.Items[1]),
			Then:    convertStmt(n.Items[2]),
		}

		if len(n.Items) == 4 {
			sel.Else = convertStmt(n.Items[3])
		}

		return sel
	case "while":
		expectArity(n, 2, 2)
		return &ast.IterStmt{
			ASTBase: ast.NewASTBaseOn(span),
			Kind:    ast.LoopWhile,
			Cond:    convertOptExpr(n, 1),
			Body:    convertStmt(n.Items[2]),
		}
	case "for":
		expectArity(n, 4, 4)
		return &ast.IterStmt{
			ASTBase: ast.NewASTBaseOn(span),
			Kind:    ast.LoopFor,
			Init:    convertOptExpr(n, 1),
			Cond:    convertOptExpr(n, 2),
			Post:    convertOptExpr(n, 3),
			Body:    convertStmt(n.Items[4]),
		}
	}

	fail(n, "expected a statement, got %s", n)
	return nil
}

// convertOptExpr converts the operand at index i of a list.  A missing operand
// or `_` yields nil.
func convertOptExpr(n *Node, i int) ast.Expr {
	if i >= len(n.Items) || n.Items[i].IsSymbol("_") {
		return nil
	}

	return convertExpr(n.Items[i])
}

func convertExpr(n *Node) ast.Expr {
	switch n.Type {
	case NodeInteger:
		return convertInt(n, n.Text, nil)
	case NodeFloat:
		return convertFloat(n, n.Text, nil)
	case NodeString:
		return &ast.StringConst{Value: n.Text}
	case NodeSymbol:
		switch n.Text {
		case "true":
			return &ast.BoolConst{Value: true}
		case "false":
			return &ast.BoolConst{Value: false}
		}
	case NodeList:
		return convertListExpr(n)
	}

	fail(n, "expected an expression, got %s", n)
	return nil
}

func convertListExpr(n *Node) ast.Expr {
	span := spanOf(n)
	head := n.Head()

	switch head {
	case "":
		fail(n, "expected an expression, got %s", n)
	case "int", "float", "string":
		expectArity(n, 1, 1)
		lit := n.Items[1]

		switch head {
		case "int":
			return convertInt(lit, lit.Text, span)
		case "float":
			return convertFloat(lit, lit.Text, span)
		default:
			if lit.Type != NodeString {
				fail(lit, "expected a string, got %s", lit)
			}

			return &ast.StringConst{ASTBase: ast.NewASTBaseOn(span), Value: lit.Text}
		}
	case "true", "false":
		expectArity(n, 0, 0)
		return &ast.BoolConst{ASTBase: ast.NewASTBaseOn(span), Value: head == "true"}
	case "access", "call":
		expectArity(n, 1, -1)
		name := symbolText(n.Items[1])

		var operands []ast.Expr
		for _, item := range n.Items[2:] {
			operands = append(operands, convertExpr(item))
		}

		if head == "access" {
			return &ast.Access{ASTBase: ast.NewASTBaseOn(span), Name: name, Subscripts: operands}
		}

		return &ast.Call{ASTBase: ast.NewASTBaseOn(span), Name: name, Args: operands}
	}

	kind, ok := ast.OperKindFromName(head)
	if !ok {
		fail(n, "unknown operator `%s`", head)
	}

	op := ast.Oper{Kind: kind, Span: span}
	switch len(n.Items) {
	case 2:
		oe := ast.NewUnaryOp(op, convertExpr(n.Items[1]))
		if span != nil {
			oe.ASTBase = ast.NewASTBaseOn(span)
		}

		return oe
	case 3:
		oe := ast.NewBinaryOp(op, convertExpr(n.Items[1]), convertExpr(n.Items[2]))
		if span != nil {
			oe.ASTBase = ast.NewASTBaseOn(span)
		}

		return oe
	}

	fail(n, "operator `%s` takes one or two operands", head)
	return nil
}

func convertInt(n *Node, text string, span *report.TextSpan) ast.Expr {
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		fail(n, "invalid integer literal `%s`", text)
	}

	return &ast.IntConst{ASTBase: ast.NewASTBaseOn(span), Value: int32(v)}
}

func convertFloat(n *Node, text string, span *report.TextSpan) ast.Expr {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		fail(n, "invalid float literal `%s`", text)
	}

	return &ast.DoubleConst{ASTBase: ast.NewASTBaseOn(span), Value: v}
}
