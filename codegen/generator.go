// Package codegen generates MIPS assembly from a laid out program.  Code is
// generated for a stack machine: every expression leaves its value in the
// accumulator `$a0` and binary operators combine it with an operand pushed on
// the stack.
package codegen

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"minic/ast"
	"minic/layout"
	"minic/report"
	"minic/walk"
)

// Generator is responsible for generating the assembly of a program.
type Generator struct {
	frames *layout.Frames
	info   *walk.Info
	rep    *report.Reporter

	// The program entry function.
	entry *ast.FuncDecl

	// The text section being generated.
	text strings.Builder

	// The number of labels minted so far.  Every label is unique to the
	// compilation.
	labelCounter int

	// The string literals of the program in order of first use, and the label
	// assigned to each distinct literal.
	strs      []string
	strLabels map[string]string

	// The current depth of the operand stack in slots.
	depth int

	// The total number of push and pop operations emitted.
	pushes, pops int

	// The function being generated.
	fn *ast.FuncDecl
}

// Generate generates the assembly of a program and writes it to w.  Nothing
// is written if an internal compiler error occurs during generation.
func Generate(frames *layout.Frames, rep *report.Reporter, w io.Writer) error {
	g := newGenerator(frames, rep)

	errorsBefore := rep.ErrorCount()
	for _, fd := range frames.Checked().Program().Funcs() {
		g.generateFunc(fd)
	}

	if n := rep.ErrorCount() - errorsBefore; n > 0 {
		return fmt.Errorf("code generation failed with %d internal error(s)", n)
	}

	bw := bufio.NewWriter(w)
	g.writeData(bw)
	g.writeText(bw)
	return bw.Flush()
}

func newGenerator(frames *layout.Frames, rep *report.Reporter) *Generator {
	return &Generator{
		frames:    frames,
		info:      frames.Checked().Info(),
		rep:       rep,
		entry:     frames.Checked().Entry(),
		strLabels: make(map[string]string),
	}
}

// writeData writes the data section: storage for every global variable
// followed by every string literal.
func (g *Generator) writeData(w *bufio.Writer) {
	globals := g.info.Globals.Vars()
	if len(globals) == 0 && len(g.strs) == 0 {
		return
	}

	w.WriteString(".data\n")
	w.WriteString(".align 2\n")

	for _, id := range globals {
		label, _ := g.frames.Label(id)
		fmt.Fprintf(w, "%s:\n", label)

		if id.IsArray() {
			fmt.Fprintf(w, ".space %d\n", id.ElemCount()*4)
		} else {
			w.WriteString(".word 0\n")
		}
	}

	for _, s := range g.strs {
		fmt.Fprintf(w, "%s:\n", g.strLabels[s])
		fmt.Fprintf(w, ".asciiz %s\n", strconv.Quote(s))
	}
}

// writeText writes the text section preamble and the generated functions.
func (g *Generator) writeText(w *bufio.Writer) {
	w.WriteString(".text\n")
	w.WriteString(".align 2\n")
	fmt.Fprintf(w, ".globl %s\n", g.frames.FuncLabel(g.entry))
	w.WriteString(g.text.String())
}

// -----------------------------------------------------------------------------

// emit emits a single instruction.
func (g *Generator) emit(format string, args ...interface{}) {
	fmt.Fprintf(&g.text, format, args...)
	g.text.WriteByte('\n')
}

// emitLabel places a label at the current position.
func (g *Generator) emitLabel(label string) {
	g.text.WriteString(label)
	g.text.WriteString(":\n")
}

// newLabel mints a new unique label.
func (g *Generator) newLabel() string {
	label := fmt.Sprintf("%slabel%d", layout.MintedLabelPrefix, g.labelCounter)
	g.labelCounter++
	return label
}

// stringLabel returns the label of a string literal's storage.
func (g *Generator) stringLabel(s string) string {
	if label, ok := g.strLabels[s]; ok {
		return label
	}

	label := fmt.Sprintf("%sstr%d", layout.MintedLabelPrefix, len(g.strs))
	g.strs = append(g.strs, s)
	g.strLabels[s] = label
	return label
}

// push pushes a register onto the operand stack.
func (g *Generator) push(reg string) {
	g.emit("addiu $sp $sp -4")
	g.emit("sw %s 4($sp)", reg)
	g.depth++
	g.pushes++
}

// pop discards the top of the operand stack.
func (g *Generator) pop() {
	g.emit("addiu $sp $sp 4")
	g.depth--
	g.pops++
}

// released records that a callee popped n slots of the operand stack on its
// return.
func (g *Generator) released(n int) {
	g.depth -= n
	g.pops += n
}

// checkBalance checks that the operand stack is empty between statements.
func (g *Generator) checkBalance(stmt ast.Stmt) {
	if g.depth != 0 {
		g.rep.ICE("operand stack unbalanced by %d slot(s) after %T in `%s`", g.depth, stmt, g.fn.Name)
		g.depth = 0
	}
}
