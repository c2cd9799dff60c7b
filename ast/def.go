package ast

import (
	"minic/report"
	"minic/types"
)

// Decl represents a named, source-located declaration.
type Decl interface {
	ASTNode

	// DeclName returns the name the declaration binds.
	DeclName() string
}

// Identifier is a variable or array declaration.
type Identifier struct {
	ASTBase

	Name string

	// The type of the variable or, for an array, of its elements.
	Type types.Type

	// The constant size of each array dimension, outermost first.  It is empty
	// for scalars.
	Dims []int

	// Whether the variable is declared at the top level.
	Global bool
}

// NewIdentifier creates a new scalar identifier.
func NewIdentifier(span *report.TextSpan, name string, typ types.Type, global bool) *Identifier {
	return &Identifier{ASTBase: NewASTBaseOn(span), Name: name, Type: typ, Global: global}
}

// NewArray creates a new array identifier with the given dimensions.
func NewArray(span *report.TextSpan, name string, elemType types.Type, dims []int, global bool) *Identifier {
	return &Identifier{ASTBase: NewASTBaseOn(span), Name: name, Type: elemType, Dims: dims, Global: global}
}

func (id *Identifier) DeclName() string {
	return id.Name
}

// IsArray returns whether the identifier names an array.
func (id *Identifier) IsArray() bool {
	return len(id.Dims) > 0
}

// ElemCount returns the number of elements the identifier holds: one for a
// scalar and the product of its dimensions for an array.
func (id *Identifier) ElemCount() int {
	n := 1
	for _, dim := range id.Dims {
		n *= dim
	}

	return n
}

// FuncDecl is a function declaration.
type FuncDecl struct {
	ASTBase

	Name       string
	ReturnType types.Type
	Params     []*Identifier
	Body       *Block
}

func (fd *FuncDecl) DeclName() string {
	return fd.Name
}
