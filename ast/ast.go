package ast

import "minic/report"

// The abstract interface for all AST nodes.
type ASTNode interface {
	// The text span of the AST.  This may be nil if the front end supplied no
	// position information for the node.
	Span() *report.TextSpan
}

// A utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// -----------------------------------------------------------------------------

// Program is the root of the AST handed over by the front end.
type Program struct {
	// The top level declarations in the order they appear in source.
	Decls []Decl

	// The path to the source file the program was parsed from.  It is used
	// only for diagnostics and may be empty.
	SourcePath string
}

// Funcs returns the function declarations of the program in source order.
func (p *Program) Funcs() []*FuncDecl {
	var funcs []*FuncDecl
	for _, decl := range p.Decls {
		if fd, ok := decl.(*FuncDecl); ok {
			funcs = append(funcs, fd)
		}
	}

	return funcs
}
