package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"minic/ast"
	"minic/codegen"
	"minic/common"
	"minic/config"
	"minic/generate"
	"minic/layout"
	"minic/report"
	"minic/syntax"
	"minic/walk"

	"github.com/kr/pretty"
)

// Compiler represents the state of a single compilation.
type Compiler struct {
	// srcPath is the path to the S-expression file being compiled.
	srcPath string

	// profile is the build profile of the compilation.
	profile *config.Profile

	// rep is the reporter all diagnostics are sent to.
	rep *report.Reporter

	// sinkFor creates the sink diagnostics are displayed through once the
	// program's source file is known.  It may be nil.
	sinkFor func(prog *ast.Program) report.Sink

	// DumpAST receives a dump of the loaded AST when it is non-nil.
	DumpAST io.Writer
}

// NewCompiler creates a new compiler.
func NewCompiler(srcPath string, profile *config.Profile, sinkFor func(prog *ast.Program) report.Sink) *Compiler {
	return &Compiler{
		srcPath: srcPath,
		profile: profile,
		sinkFor: sinkFor,
	}
}

// Reporter returns the reporter of the compilation.  It is nil until the
// program has been loaded.
func (c *Compiler) Reporter() *report.Reporter {
	return c.rep
}

// Analyze loads and checks the program.  The checked program is nil if the
// program could not be loaded or contains errors.
func (c *Compiler) Analyze() *walk.Checked {
	prog, err := syntax.LoadFile(c.srcPath)
	if err != nil {
		if c.profile.LogLevel > report.LogLevelSilent {
			report.PrintErrorMessage("Load Error", err)
		}

		return nil
	}

	if c.DumpAST != nil {
		pretty.Fprintf(c.DumpAST, "%# v\n", prog)
	}

	var sink report.Sink
	if c.sinkFor != nil {
		sink = c.sinkFor(prog)
	}
	c.rep = report.NewReporter(c.profile.LogLevel, sink)

	c.rep.CompileHeader(common.MinicVersion, c.profile.Target)

	endPhase := c.rep.BeginPhase("Checking")
	_, checked := walk.Check(prog, c.rep, c.profile.Entry)
	endPhase()

	return checked
}

// Generate generates the output of a checked program for the profile's target
// and writes it to w.
func (c *Compiler) Generate(checked *walk.Checked, w io.Writer) error {
	endPhase := c.rep.BeginPhase("Generating")
	defer endPhase()

	switch c.profile.Target {
	case config.TargetMIPS:
		return codegen.Generate(layout.Compute(checked), c.rep, w)
	case config.TargetLLVM:
		return generate.Generate(checked, c.rep, w)
	}

	c.rep.ICE("no generator for target `%s`", c.profile.Target)
	return fmt.Errorf("unknown target `%s`", c.profile.Target)
}

// Build runs a full compilation writing the output file.  It returns whether
// compilation succeeded.
func (c *Compiler) Build() bool {
	checked := c.Analyze()
	if checked == nil {
		return c.finish()
	}

	outPath := c.profile.Output(c.srcPath)
	if err := c.writeOutput(checked, outPath); err != nil {
		report.PrintErrorMessage("Output Error", err)
		c.finish()
		return false
	}

	return c.finish()
}

// Check runs analysis only.  It returns whether the program is free of errors.
func (c *Compiler) Check() bool {
	c.Analyze()
	return c.finish()
}

// writeOutput generates into a temporary file that replaces the output file
// only once generation succeeded.
func (c *Compiler) writeOutput(checked *walk.Checked, outPath string) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}

	file, err := os.CreateTemp(filepath.Dir(outPath), "minic-out.*")
	if err != nil {
		return err
	}
	defer os.Remove(file.Name())

	bw := bufio.NewWriter(file)
	genErr := c.Generate(checked, bw)
	if genErr == nil {
		genErr = bw.Flush()
	}

	if err := file.Close(); genErr == nil {
		genErr = err
	}

	if genErr != nil {
		return genErr
	}

	return os.Rename(file.Name(), outPath)
}

// finish displays the concluding message of compilation and returns whether
// compilation succeeded.
func (c *Compiler) finish() bool {
	if c.rep == nil {
		return false
	}

	c.rep.Finished()
	return c.rep.ErrorCount() == 0
}
