package config

import (
	"os"
	"path/filepath"
	"testing"

	"minic/report"

	"github.com/nalgeon/be"
)

func TestParseProfile(t *testing.T) {
	prof, err := Parse([]byte(`
[build]
entry = "start"
target = "llvm"
output = "out/prog.ll"
loglevel = "warn"
`))
	be.Err(t, err, nil)
	be.Equal(t, prof, &Profile{
		Entry:      "start",
		Target:     TargetLLVM,
		OutputPath: "out/prog.ll",
		LogLevel:   report.LogLevelWarn,
	})
}

func TestParseDefaults(t *testing.T) {
	prof, err := Parse([]byte(""))
	be.Err(t, err, nil)
	be.Equal(t, prof, Default())

	prof, err = Parse([]byte("[build]\ntarget = \"mips\"\n"))
	be.Err(t, err, nil)
	be.Equal(t, prof.Entry, "main")
	be.Equal(t, prof.LogLevel, report.LogLevelVerbose)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("[build]\ntarget = \"x86\"\n"))
	be.Err(t, err, "unknown build target `x86`")

	_, err = Parse([]byte("[build]\nloglevel = \"loud\"\n"))
	be.Err(t, err, "unknown log level `loud`")

	_, err = Parse([]byte("[build\n"))
	be.Err(t, err)
}

func TestValidate(t *testing.T) {
	prof := Default()
	prof.Entry = ""
	be.Err(t, prof.Validate(), "entry function name must not be empty")
}

func TestOutputPath(t *testing.T) {
	prof := Default()
	be.Equal(t, prof.Output("dir/prog.sexp"), "dir/prog.s")

	be.Err(t, prof.SetTarget(TargetLLVM), nil)
	be.Equal(t, prof.Output("dir/prog.sexp"), "dir/prog.ll")

	prof.OutputPath = "a.out"
	be.Equal(t, prof.Output("dir/prog.sexp"), "a.out")
}

func TestFind(t *testing.T) {
	dir := t.TempDir()

	prof, err := Find(dir)
	be.Err(t, err, nil)
	be.Equal(t, prof, Default())

	path := filepath.Join(dir, "minic.toml")
	be.Err(t, os.WriteFile(path, []byte("[build]\nentry = \"go\"\n"), 0o644), nil)

	prof, err = Find(dir)
	be.Err(t, err, nil)
	be.Equal(t, prof.Entry, "go")
}
