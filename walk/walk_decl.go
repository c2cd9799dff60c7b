package walk

import (
	"fmt"

	"minic/ast"
	"minic/report"
	"minic/types"
)

// declareGlobals builds the global table from the program's top level
// declarations.  All globals are declared before any function body is walked
// so that functions may call functions declared after them.
func (w *Walker) declareGlobals() {
	for _, decl := range w.prog.Decls {
		if id, ok := decl.(*ast.Identifier); ok {
			w.checkVarDecl(id)
		}

		if prev, ok := w.info.Globals.Declare(ast.SymbolOf(decl)); !ok {
			w.reportConflict(decl, prev.DefSpan())
		}
	}
}

// checkEntry checks that the program declares its entry function and returns
// it.  It returns nil if no entry function exists.
func (w *Walker) checkEntry() *ast.FuncDecl {
	sym, ok := w.info.Globals.Lookup(w.entryName)
	if !ok || sym.Kind != ast.SymFunction {
		w.recError(report.KindNoEntry, nil, "function `%s` not defined", w.entryName)
		return nil
	}

	if len(sym.Func.Params) > 0 {
		w.warn(report.KindUsage, sym.Func.Span(), "entry function `%s` declares parameters that are never supplied", w.entryName)
	}

	return sym.Func
}

// walkFuncDecl walks a function declaration and catches any errors that occur.
func (w *Walker) walkFuncDecl(fd *ast.FuncDecl) {
	defer w.rep.CatchErrors()

	w.enclosingFunc = fd
	defer func() {
		w.enclosingFunc = nil
		w.scopes = nil
	}()

	seen := make(map[string]*ast.Identifier)
	for _, param := range fd.Params {
		w.checkVarDecl(param)

		if param.IsArray() {
			w.recError(report.KindUsage, param.Span(), "array parameter `%s` is not supported", param.Name)
		}

		if prev, ok := seen[param.Name]; ok {
			w.reportConflict(param, prev.Span())
		} else {
			seen[param.Name] = param
		}
	}

	if fd.Body == nil {
		w.rep.ICE("function `%s` has no body", fd.Name)
		return
	}

	w.walkBlock(fd.Body)
}

// declareLocals builds the local table of a block.
func (w *Walker) declareLocals(block *ast.Block) *ast.LocalTable {
	lt := ast.NewLocalTable()

	for _, id := range block.Vars {
		w.checkVarDecl(id)

		if prev, ok := lt.Declare(id); !ok {
			w.reportConflict(id, prev.Span())
		}
	}

	w.info.Locals[block] = lt
	return lt
}

// checkVarDecl checks that a variable has a value type and that every
// dimension of an array declaration is positive.
func (w *Walker) checkVarDecl(id *ast.Identifier) {
	if id.Type == types.Void {
		w.recError(report.KindVoidVar, id.Span(), "variable `%s` cannot have type void", id.Name)
	}

	for _, dim := range id.Dims {
		if dim < 1 {
			w.recError(report.KindBadDimension, id.Span(), "array `%s` has non-positive dimension %d", id.Name, dim)
			return
		}
	}
}

// reportConflict reports a declaration that conflicts with an earlier one.
func (w *Walker) reportConflict(decl ast.Decl, prevSpan *report.TextSpan) {
	where := "a previous declaration"
	if prevSpan != nil {
		where = fmt.Sprintf("declaration on line %d", prevSpan.Line())
	}

	w.recError(report.KindDeclConflict, decl.Span(), "declaration of `%s` conflicts with %s", decl.DeclName(), where)
}
