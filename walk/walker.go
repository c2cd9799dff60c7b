package walk

import (
	"minic/ast"
	"minic/report"
	"minic/types"
)

// Walker is responsible for walking a program and performing semantic analysis
// on its declarations: name resolution and type checking.
type Walker struct {
	prog *ast.Program
	rep  *report.Reporter
	info *Info

	// The name of the program entry function.
	entryName string

	// The stack of local scopes used to lookup symbols: one per enclosing
	// block, innermost last.
	scopes []*ast.LocalTable

	// The function being walked.  If this is `nil`, then there is no enclosing
	// function: ie. return statements are not valid.
	enclosingFunc *ast.FuncDecl
}

func newWalker(prog *ast.Program, rep *report.Reporter, entryName string) *Walker {
	return &Walker{
		prog:      prog,
		rep:       rep,
		info:      newInfo(),
		entryName: entryName,
	}
}

// Check semantically analyzes the given program.  The returned info is always
// populated as far as analysis got.  The checked program is nil if any error
// has been reported to rep.
func Check(prog *ast.Program, rep *report.Reporter, entryName string) (*Info, *Checked) {
	w := newWalker(prog, rep, entryName)

	w.declareGlobals()
	entry := w.checkEntry()

	for _, fd := range prog.Funcs() {
		w.walkFuncDecl(fd)
	}

	if !rep.ShouldProceed() {
		return w.info, nil
	}

	return w.info, &Checked{prog: prog, info: w.info, entry: entry}
}

// -----------------------------------------------------------------------------

// lookup looks up a symbol by name in all visible scopes: enclosing blocks
// innermost first, then the parameters of the enclosing function, then the
// global table.
func (w *Walker) lookup(name string) (*ast.Symbol, bool) {
	for i := len(w.scopes) - 1; i > -1; i-- {
		if id, ok := w.scopes[i].Lookup(name); ok {
			return &ast.Symbol{Kind: ast.SymVariable, Var: id}, true
		}
	}

	if w.enclosingFunc != nil {
		for _, param := range w.enclosingFunc.Params {
			if param.Name == name {
				return &ast.Symbol{Kind: ast.SymVariable, Var: param}, true
			}
		}
	}

	return w.info.Globals.Lookup(name)
}

// pushScope pushes a new local scope onto the scope stack.
func (w *Walker) pushScope(lt *ast.LocalTable) {
	w.scopes = append(w.scopes, lt)
}

// popScope removes the top local scope from the scope stack.
func (w *Walker) popScope() {
	w.scopes = w.scopes[:len(w.scopes)-1]
}

// -----------------------------------------------------------------------------

// error reports an error on the given span that should abort walking of the
// current statement.
func (w *Walker) error(kind report.Kind, span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(kind, span, msg, args...))
}

// recError reports a recoverable error on the given span.
func (w *Walker) recError(kind report.Kind, span *report.TextSpan, msg string, args ...interface{}) {
	w.rep.Error(kind, span, msg, args...)
}

// warn reports a compile warning.
func (w *Walker) warn(kind report.Kind, span *report.TextSpan, msg string, args ...interface{}) {
	w.rep.Warn(kind, span, msg, args...)
}

// setType records the checked type of an expression and returns it.
func (w *Walker) setType(expr ast.Expr, typ types.Type) types.Type {
	w.info.Types[expr] = typ
	return typ
}
