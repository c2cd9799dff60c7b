package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"minic/ast"
	"minic/common"
	"minic/config"
	"minic/report"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main `minic` application and returns its exit code.
func Execute(args []string) int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("minic", "minic compiles checked programs to MIPS assembly or LLVM IR", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "compile a program", true)
	buildCmd.AddPrimaryArg("source-path", "the path to the S-expression program", true)
	buildCmd.AddStringArg("output", "o", "the output path", false)
	buildCmd.AddSelectorArg("target", "t", "the build target", false, []string{config.TargetMIPS, config.TargetLLVM})
	buildCmd.AddStringArg("config", "c", "the build profile file", false)

	checkCmd := cli.AddSubcommand("check", "check a program and output errors", true)
	checkCmd.AddPrimaryArg("source-path", "the path to the S-expression program", true)
	checkCmd.AddStringArg("config", "c", "the build profile file", false)
	checkCmd.AddFlag("dump-ast", "da", "print the loaded AST")

	cli.AddSubcommand("version", "print the minic version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, args)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		return 1
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build", "check":
		return execCompileCommand(subcmdName, subResult, result.Arguments["loglevel"].(string))
	case "version":
		report.PrintInfoMessage("minic Version", common.MinicVersion)
	}

	return 0
}

// execCompileCommand executes the build and check subcommands and handles all
// errors.
func execCompileCommand(name string, result *olive.ArgParseResult, loglevel string) int {
	srcPath, _ := result.PrimaryArg()
	if filepath.Ext(srcPath) != common.ASTFileExt {
		report.PrintErrorMessage("Path Error", fmt.Errorf("expected a `%s` file, got `%s`", common.ASTFileExt, srcPath))
		return 1
	}

	prof, err := loadProfile(result, srcPath, loglevel)
	if err != nil {
		report.PrintErrorMessage("Config Error", err)
		return 1
	}

	c := NewCompiler(srcPath, prof, consoleSink)
	if name == "check" && result.HasFlag("dump-ast") {
		c.DumpAST = os.Stdout
	}

	var ok bool
	if name == "build" {
		ok = c.Build()
	} else {
		ok = c.Check()
	}

	if !ok {
		return 1
	}

	return 0
}

// loadProfile loads the build profile selected on the command line or found
// beside the source file and applies the command line overrides to it.
func loadProfile(result *olive.ArgParseResult, srcPath, loglevel string) (*config.Profile, error) {
	var prof *config.Profile
	var err error

	if cfgPath, ok := result.Arguments["config"]; ok {
		prof, err = config.Load(cfgPath.(string))
	} else {
		prof, err = config.Find(filepath.Dir(srcPath))
	}

	if err != nil {
		return nil, err
	}

	// the log level argument always has a value: it only overrides the profile
	// when it differs from its default
	if loglevel != "verbose" {
		if err := prof.SetLogLevel(loglevel); err != nil {
			return nil, err
		}
	}

	if target, ok := result.Arguments["target"]; ok {
		if err := prof.SetTarget(target.(string)); err != nil {
			return nil, err
		}
	}

	if output, ok := result.Arguments["output"]; ok {
		prof.OutputPath = output.(string)
	}

	if err := prof.Validate(); err != nil {
		return nil, fmt.Errorf("invalid build profile: %w", err)
	}

	return prof, nil
}

// consoleSink creates the terminal sink for a loaded program.
func consoleSink(prog *ast.Program) report.Sink {
	absPath, err := filepath.Abs(prog.SourcePath)
	if err != nil {
		absPath = ""
	}

	return &report.ConsoleSink{AbsPath: absPath, ReprPath: prog.SourcePath}
}

// Main runs the application on the process arguments and exits with its exit
// code.
func Main() {
	os.Exit(Execute(os.Args))
}
