package ast

import "minic/report"

// SymbolKind is the kind of declaration a global symbol refers to.
type SymbolKind int

// Enumeration of symbol kinds.
const (
	SymVariable SymbolKind = iota
	SymFunction
)

// Symbol is an entry of the global table: exactly one of Var and Func is set
// according to Kind.
type Symbol struct {
	Kind SymbolKind
	Var  *Identifier
	Func *FuncDecl
}

// SymbolOf creates the symbol for a top level declaration.
func SymbolOf(decl Decl) *Symbol {
	switch v := decl.(type) {
	case *FuncDecl:
		return &Symbol{Kind: SymFunction, Func: v}
	case *Identifier:
		return &Symbol{Kind: SymVariable, Var: v}
	}

	return nil
}

// Decl returns the declaration the symbol refers to.
func (s *Symbol) Decl() Decl {
	if s.Kind == SymFunction {
		return s.Func
	}

	return s.Var
}

// Name returns the name of the symbol.
func (s *Symbol) Name() string {
	return s.Decl().DeclName()
}

// DefSpan returns where the symbol was declared.
func (s *Symbol) DefSpan() *report.TextSpan {
	return s.Decl().Span()
}

// -----------------------------------------------------------------------------

// GlobalTable maps the names of top level declarations to their symbols.  It
// iterates in declaration order.
type GlobalTable struct {
	symbols map[string]*Symbol
	order   []*Symbol
}

// NewGlobalTable creates a new empty global table.
func NewGlobalTable() *GlobalTable {
	return &GlobalTable{symbols: make(map[string]*Symbol)}
}

// Declare inserts a symbol into the table.  If a symbol by the same name is
// already declared, it is returned, the table is left unchanged and the
// returned flag is false.
func (gt *GlobalTable) Declare(sym *Symbol) (*Symbol, bool) {
	if prev, ok := gt.symbols[sym.Name()]; ok {
		return prev, false
	}

	gt.symbols[sym.Name()] = sym
	gt.order = append(gt.order, sym)
	return sym, true
}

// Lookup looks up a symbol by name.
func (gt *GlobalTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := gt.symbols[name]
	return sym, ok
}

// Symbols returns the symbols of the table in declaration order.
func (gt *GlobalTable) Symbols() []*Symbol {
	return gt.order
}

// Vars returns the global variables of the table in declaration order.
func (gt *GlobalTable) Vars() []*Identifier {
	var vars []*Identifier
	for _, sym := range gt.order {
		if sym.Kind == SymVariable {
			vars = append(vars, sym.Var)
		}
	}

	return vars
}

// -----------------------------------------------------------------------------

// LocalTable maps the names of a block's local variables to their
// declarations.  It iterates in declaration order.
type LocalTable struct {
	vars  map[string]*Identifier
	order []*Identifier
}

// NewLocalTable creates a new empty local table.
func NewLocalTable() *LocalTable {
	return &LocalTable{vars: make(map[string]*Identifier)}
}

// Declare inserts a variable into the table.  It behaves like
// GlobalTable.Declare: an existing binding is never replaced.
func (lt *LocalTable) Declare(id *Identifier) (*Identifier, bool) {
	if prev, ok := lt.vars[id.Name]; ok {
		return prev, false
	}

	lt.vars[id.Name] = id
	lt.order = append(lt.order, id)
	return id, true
}

// Lookup looks up a variable by name.
func (lt *LocalTable) Lookup(name string) (*Identifier, bool) {
	id, ok := lt.vars[name]
	return id, ok
}

// Vars returns the variables of the table in declaration order.
func (lt *LocalTable) Vars() []*Identifier {
	return lt.order
}

// Len returns the number of variables in the table.
func (lt *LocalTable) Len() int {
	return len(lt.order)
}
