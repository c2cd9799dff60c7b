// Package layout assigns stack frame offsets to parameters and local
// variables and computes how much stack space each block reserves.
package layout

import (
	"strings"

	"minic/ast"
	"minic/common"
	"minic/walk"
)

// Slot is the storage assigned to a parameter or local variable.
type Slot struct {
	// The frame pointer relative byte offset of the variable.  For an array,
	// this is the offset of its first element: the lowest address of the
	// range it occupies.  Elements ascend from it.
	Offset int

	// The number of stack slots the variable occupies.
	Size int
}

// Frames is the frame layout of a checked program.
type Frames struct {
	checked *walk.Checked

	slots      map[*ast.Identifier]Slot
	labels     map[*ast.Identifier]string
	funcLabels map[*ast.FuncDecl]string
	frameSizes map[*ast.Block]int
}

// Assembly label prefixes.  Each kind of label has its own prefix so labels of
// different kinds never collide.
const (
	// GlobalLabelPrefix prefixes the label of every global variable.
	GlobalLabelPrefix = "g_"

	// FuncLabelPrefix prefixes the label of every function except the entry.
	FuncLabelPrefix = "f_"

	// MintedLabelPrefix prefixes the labels the code generator mints for
	// control flow and string literals.
	MintedLabelPrefix = "_"
)

// Compute lays out every function of a checked program.
func Compute(checked *walk.Checked) *Frames {
	f := &Frames{
		checked:    checked,
		slots:      make(map[*ast.Identifier]Slot),
		labels:     make(map[*ast.Identifier]string),
		funcLabels: make(map[*ast.FuncDecl]string),
		frameSizes: make(map[*ast.Block]int),
	}

	for _, id := range checked.Info().Globals.Vars() {
		f.labels[id] = GlobalLabelPrefix + id.Name
	}

	for _, fd := range checked.Program().Funcs() {
		f.funcLabels[fd] = funcLabel(fd, fd == checked.Entry())
		f.layoutFunc(fd)
	}

	return f
}

// Checked returns the program the layout was computed for.
func (f *Frames) Checked() *walk.Checked {
	return f.checked
}

// Slot returns the stack slot of a parameter or local variable.
func (f *Frames) Slot(id *ast.Identifier) (Slot, bool) {
	slot, ok := f.slots[id]
	return slot, ok
}

// Label returns the assembly label of a global variable.
func (f *Frames) Label(id *ast.Identifier) (string, bool) {
	label, ok := f.labels[id]
	return label, ok
}

// FuncLabel returns the assembly label of a function.
func (f *Frames) FuncLabel(fd *ast.FuncDecl) string {
	return f.funcLabels[fd]
}

// funcLabel returns the label of a function.  The entry keeps its own name so
// it can be exported, unless that name could be mistaken for a prefixed label.
func funcLabel(fd *ast.FuncDecl, entry bool) string {
	if entry && !hasReservedPrefix(fd.Name) {
		return fd.Name
	}

	return FuncLabelPrefix + fd.Name
}

func hasReservedPrefix(name string) bool {
	for _, prefix := range []string{GlobalLabelPrefix, FuncLabelPrefix, MintedLabelPrefix} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}

	return false
}

// FrameSize returns the number of bytes a block reserves on entry.  The body of
// a function reserves the space of every block nested in it, so nested blocks
// reserve nothing.
func (f *Frames) FrameSize(block *ast.Block) int {
	return f.frameSizes[block]
}

// -----------------------------------------------------------------------------

// funcLayout is the state of laying out a single function.
type funcLayout struct {
	f *Frames

	// The next free offset below the frame pointer.
	next int
}

func (f *Frames) layoutFunc(fd *ast.FuncDecl) {
	for i, param := range fd.Params {
		f.slots[param] = Slot{Offset: common.OffsetFirstParam + i*common.VarSize, Size: 1}
	}

	fl := &funcLayout{f: f, next: common.OffsetFirstLocal}
	fl.layoutBlock(fd.Body)

	f.frameSizes[fd.Body] = common.OffsetFirstLocal - fl.next
}

// layoutBlock lays out the locals of a block in declaration order and then
// the blocks nested in it in traversal order.  Every local of a function gets
// its own slots.
func (fl *funcLayout) layoutBlock(block *ast.Block) {
	if lt, ok := fl.f.checked.Info().Locals[block]; ok {
		for _, id := range lt.Vars() {
			n := id.ElemCount()
			base := fl.next - (n-1)*common.VarSize

			fl.f.slots[id] = Slot{Offset: base, Size: n}
			fl.next = base - common.VarSize
		}
	}

	for _, stmt := range block.Stmts {
		fl.layoutStmt(stmt)
	}
}

func (fl *funcLayout) layoutStmt(stmt ast.Stmt) {
	switch v := stmt.(type) {
	case *ast.Block:
		fl.layoutBlock(v)
	case *ast.SelStmt:
		fl.layoutStmt(v.Then)

		if v.Else != nil {
			fl.layoutStmt(v.Else)
		}
	case *ast.IterStmt:
		fl.layoutStmt(v.Body)
	}
}
