package walk

import (
	"minic/ast"
	"minic/types"
)

// Info holds the results of semantic analysis.  The AST itself is never
// mutated: every fact the checker establishes is recorded here keyed by node.
type Info struct {
	// The global symbol table.
	Globals *ast.GlobalTable

	// The local symbol table of every walked block.
	Locals map[*ast.Block]*ast.LocalTable

	// The checked type of every walked expression.
	Types map[ast.Expr]types.Type

	// The variable each successfully resolved access refers to.
	Vars map[*ast.Access]*ast.Identifier

	// The function each successfully resolved call refers to.
	Funcs map[*ast.Call]*ast.FuncDecl

	// The function enclosing each return statement.
	Returns map[*ast.ReturnStmt]*ast.FuncDecl
}

func newInfo() *Info {
	return &Info{
		Globals: ast.NewGlobalTable(),
		Locals:  make(map[*ast.Block]*ast.LocalTable),
		Types:   make(map[ast.Expr]types.Type),
		Vars:    make(map[*ast.Access]*ast.Identifier),
		Funcs:   make(map[*ast.Call]*ast.FuncDecl),
		Returns: make(map[*ast.ReturnStmt]*ast.FuncDecl),
	}
}

// TypeOf returns the checked type of an expression.  Expressions that were
// never walked have the error type.
func (info *Info) TypeOf(expr ast.Expr) types.Type {
	if typ, ok := info.Types[expr]; ok {
		return typ
	}

	return types.Error
}

// -----------------------------------------------------------------------------

// Checked is a program that passed semantic analysis without a single error.
// It can only be obtained from Check and is the sole input accepted by the
// later passes.
type Checked struct {
	prog  *ast.Program
	info  *Info
	entry *ast.FuncDecl
}

// Program returns the checked program.
func (c *Checked) Program() *ast.Program {
	return c.prog
}

// Info returns the analysis results for the program.
func (c *Checked) Info() *Info {
	return c.info
}

// Entry returns the program entry function.
func (c *Checked) Entry() *ast.FuncDecl {
	return c.entry
}
