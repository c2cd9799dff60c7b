// Package config loads build profiles from `minic.toml` files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"minic/common"
	"minic/report"

	"github.com/pelletier/go-toml"
)

// Enumeration of build targets.
const (
	TargetMIPS = "mips"
	TargetLLVM = "llvm"
)

// targetExts maps each build target to the extension of its output file.
var targetExts = map[string]string{
	TargetMIPS: ".s",
	TargetLLVM: ".ll",
}

// Profile is a validated build profile.
type Profile struct {
	// The name of the program entry function.
	Entry string

	// The build target: one of the enumerated targets.
	Target string

	// The path the generated output is written to.  It is empty when the
	// output path should be derived from the source path.
	OutputPath string

	// The log level to compile with.
	LogLevel int
}

// tomlProfileFile represents the profile file as it is encoded in TOML
type tomlProfileFile struct {
	Build *tomlBuild `toml:"build"`
}

// tomlBuild represents the build table as it is encoded in TOML
type tomlBuild struct {
	Entry    string `toml:"entry"`
	Target   string `toml:"target"`
	Output   string `toml:"output,omitempty"`
	LogLevel string `toml:"loglevel"`
}

// Default returns the profile used in absence of a profile file.
func Default() *Profile {
	return &Profile{
		Entry:    common.EntryFuncName,
		Target:   TargetMIPS,
		LogLevel: report.LogLevelVerbose,
	}
}

// Load loads and validates the profile file at path.  Fields the file omits
// keep their default values.
func Load(path string) (*Profile, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(buff)
}

// Parse decodes and validates the contents of a profile file.
func Parse(buff []byte) (*Profile, error) {
	tpf := &tomlProfileFile{}
	if err := toml.Unmarshal(buff, tpf); err != nil {
		return nil, err
	}

	prof := Default()
	if tpf.Build == nil {
		return prof, nil
	}

	b := tpf.Build
	if b.Entry != "" {
		prof.Entry = b.Entry
	}

	if b.Target != "" {
		if err := prof.SetTarget(b.Target); err != nil {
			return nil, err
		}
	}

	if b.LogLevel != "" {
		if err := prof.SetLogLevel(b.LogLevel); err != nil {
			return nil, err
		}
	}

	prof.OutputPath = b.Output
	return prof, prof.Validate()
}

// Find looks for a profile file in dir.  The default profile is returned if
// the directory contains none.
func Find(dir string) (*Profile, error) {
	path := filepath.Join(dir, common.ProfileFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return Load(path)
}

// SetTarget sets the build target by name.
func (p *Profile) SetTarget(name string) error {
	if _, ok := targetExts[name]; !ok {
		return fmt.Errorf("unknown build target `%s`", name)
	}

	p.Target = name
	return nil
}

// SetLogLevel sets the log level by name.
func (p *Profile) SetLogLevel(name string) error {
	level, ok := report.LogLevelFromName(name)
	if !ok {
		return fmt.Errorf("unknown log level `%s`", name)
	}

	p.LogLevel = level
	return nil
}

// Validate checks the fields that command line overrides may have set.
func (p *Profile) Validate() error {
	if p.Entry == "" {
		return errors.New("entry function name must not be empty")
	}

	if _, ok := targetExts[p.Target]; !ok {
		return fmt.Errorf("unknown build target `%s`", p.Target)
	}

	return nil
}

// Output returns the output path for a source file: the configured path if
// there is one, otherwise the source path with the target's extension.
func (p *Profile) Output(srcPath string) string {
	if p.OutputPath != "" {
		return p.OutputPath
	}

	return strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + targetExts[p.Target]
}
