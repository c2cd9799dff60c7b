// Package golden extracts end-to-end compiler test cases from markdown
// documents.  Each case begins with a `Test: name` heading followed by one
// `ast` fence holding the program and any number of expectation fences.
package golden

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputFence is the language of the fence holding a case's program.
const InputFence = "ast"

// ExpectKind is the kind of an expectation fence.
type ExpectKind string

const (
	// ExpectErrors lists the expected error messages in report order.
	ExpectErrors ExpectKind = "errors"

	// ExpectWarnings lists the expected warning messages in report order.
	ExpectWarnings ExpectKind = "warnings"

	// ExpectAsm holds lines that must appear contiguously in the MIPS output.
	ExpectAsm ExpectKind = "asm"

	// ExpectLLVM holds lines that must each appear in the LLVM output.
	ExpectLLVM ExpectKind = "llvm"
)

// Expectation is a single expectation fence of a case.
type Expectation struct {
	Kind    ExpectKind
	Content string
	Line    int
}

// Lines returns the non-blank lines of the expectation with surrounding
// whitespace removed.
func (e Expectation) Lines() []string {
	var lines []string
	for _, line := range strings.Split(e.Content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

// Case is a complete test case extracted from markdown.
type Case struct {
	Name    string
	Input   string
	Expects []Expectation
}

// Extract parses a markdown document and extracts all its test cases.
func Extract(markdown string) ([]Case, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []Case
	var current *Case

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := extractText(n, source)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}

			if current != nil {
				if err := validateCase(current); err != nil {
					return ast.WalkStop, err
				}
				cases = append(cases, *current)
			}

			current = &Case{Name: strings.TrimPrefix(heading, "Test: ")}
		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			line := lineNumber(n, source)

			// unlabeled fences are commentary
			if language == "" {
				return ast.WalkContinue, nil
			}

			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, language)
			}

			content := strings.TrimRight(extractContent(n, source), "\n")

			if language == InputFence {
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences found in test '%s'", line, current.Name)
				}

				current.Input = content
			} else if isExpectFence(language) {
				current.Expects = append(current.Expects, Expectation{Kind: ExpectKind(language), Content: content, Line: line})
			} else {
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, language, current.Name)
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if current != nil {
		if err := validateCase(current); err != nil {
			return nil, err
		}
		cases = append(cases, *current)
	}

	return cases, nil
}

func isExpectFence(language string) bool {
	switch ExpectKind(language) {
	case ExpectErrors, ExpectWarnings, ExpectAsm, ExpectLLVM:
		return true
	}

	return false
}

// validateCase ensures a case has an input and at least one expectation.
func validateCase(c *Case) error {
	if c.Input == "" {
		return fmt.Errorf("test '%s' has no input fence", c.Name)
	}
	if len(c.Expects) == 0 {
		return fmt.Errorf("test '%s' has no expectation fences", c.Name)
	}
	return nil
}

func extractText(node ast.Node, source []byte) string {
	var buf bytes.Buffer

	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})

	return buf.String()
}

func extractContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer

	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}

	return buf.String()
}

// lineNumber returns the one-indexed line a fence's content begins on.
func lineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}

	start := node.Lines().At(0).Start
	return bytes.Count(source[:start], []byte("\n")) + 1
}

// ContainsRun reports whether want appears as a contiguous run of lines in
// got.  Lines are compared with surrounding whitespace removed.
func ContainsRun(got string, want []string) bool {
	if len(want) == 0 {
		return true
	}

	var lines []string
	for _, line := range strings.Split(got, "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}

outer:
	for i := 0; i+len(want) <= len(lines); i++ {
		for j, w := range want {
			if lines[i+j] != w {
				continue outer
			}
		}

		return true
	}

	return false
}
