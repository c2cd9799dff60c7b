// Package generate lowers a checked program into an LLVM module.  It is the
// alternate backend selected by the `llvm` build target.
package generate

import (
	"fmt"
	"io"

	"minic/ast"
	"minic/report"
	"minic/walk"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Generator is responsible for converting a checked program into an LLVM
// module.
type Generator struct {
	checked *walk.Checked
	info    *walk.Info
	rep     *report.Reporter

	// mod is the LLVM module being built
	mod *ir.Module

	// globals maps each global variable to its module-level definition
	globals map[*ast.Identifier]*ir.Global

	// funcs maps each function declaration to its LLVM function
	funcs map[*ast.FuncDecl]*ir.Func

	// locals maps each parameter and local of the enclosing function to its
	// stack allocation
	locals map[*ast.Identifier]value.Value

	// strs interns string literals: each distinct literal is stored once
	strs map[string]constant.Constant

	// enclosingFunc is the function whose body is being generated
	enclosingFunc *ir.Func

	// varBlock is the entry block of the enclosing function. All stack
	// allocations are placed in it.
	varBlock *ir.Block

	// block is the block instructions are currently appended to
	block *ir.Block
}

// Build generates the LLVM module of a checked program.  Any internal errors
// encountered are reported to rep.
func Build(checked *walk.Checked, rep *report.Reporter) *ir.Module {
	g := &Generator{
		checked: checked,
		info:    checked.Info(),
		rep:     rep,
		mod:     ir.NewModule(),
		globals: make(map[*ast.Identifier]*ir.Global),
		funcs:   make(map[*ast.FuncDecl]*ir.Func),
		strs:    make(map[string]constant.Constant),
	}

	// declare every global and function before generating any body so that
	// forward references resolve
	for _, id := range g.info.Globals.Vars() {
		g.genGlobalVar(id)
	}

	funcs := checked.Program().Funcs()
	for _, fd := range funcs {
		g.declareFunc(fd)
	}

	for _, fd := range funcs {
		g.genFuncBody(fd)
	}

	return g.mod
}

// Generate generates the LLVM module of a checked program and writes its
// source text to w.
func Generate(checked *walk.Checked, rep *report.Reporter, w io.Writer) error {
	errorsBefore := rep.ErrorCount()
	mod := Build(checked, rep)

	if n := rep.ErrorCount() - errorsBefore; n > 0 {
		return fmt.Errorf("LLVM generation failed with %d internal error(s)", n)
	}

	_, err := mod.WriteTo(w)
	return err
}

// appendBlock appends a new block to the enclosing function.  Block names
// contain a dot so they never clash with parameter names.
func (g *Generator) appendBlock() *ir.Block {
	return g.enclosingFunc.NewBlock(fmt.Sprintf("bb.%d", len(g.enclosingFunc.Blocks)))
}

// stringPtr returns a pointer to the first character of a string literal's
// global storage.
func (g *Generator) stringPtr(s string) constant.Constant {
	if ptr, ok := g.strs[s]; ok {
		return ptr
	}

	data := constant.NewCharArrayFromString(s + "\x00")
	def := g.mod.NewGlobalDef(fmt.Sprintf("__strlit.%d", len(g.strs)), data)
	def.Immutable = true

	zero := constant.NewInt(lltypes.I32, 0)
	ptr := constant.NewGetElementPtr(data.Typ, def, zero, zero)
	g.strs[s] = ptr
	return ptr
}
