package report

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console.
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintInfoMessage prints an informational message to the user.
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------

// ConsoleSink displays diagnostics on the terminal.  Diagnostics with a span
// are followed by the offending source text underlined with carets.
type ConsoleSink struct {
	// AbsPath is the absolute path to the source file the diagnostics refer
	// to.  It may be empty if the source text is unavailable.
	AbsPath string

	// ReprPath is the path displayed to the user.
	ReprPath string
}

func (cs *ConsoleSink) Display(d *Diagnostic) {
	cs.displayBanner(d)
	fmt.Println(d.Message)

	if d.Span != nil {
		if d.IsError {
			fmt.Printf("%s:%d:%d\n", cs.ReprPath, d.Span.StartLine+1, d.Span.StartCol+1)
		}

		if cs.AbsPath != "" {
			displaySourceText(cs.AbsPath, d.Span)
		}
	}
}

const icePostlude = `This error was not supposed to happen.
It is likely a bug in the compiler.`

func (cs *ConsoleSink) DisplayICE(message string) {
	fmt.Print("\n\n")
	ErrorStyleBG.Print("Internal Compiler Error ")
	ErrorColorFG.Println(" " + message)
	InfoColorFG.Println(icePostlude)
}

// displayBanner displays the banner on top of all compilation messages.
func (cs *ConsoleSink) displayBanner(d *Diagnostic) {
	fmt.Print("\n\n-- ")
	kindStr := d.Kind.String()
	kindLen := len(kindStr)
	if d.IsError {
		ErrorStyleBG.Print(kindStr + " Error")
		kindLen += 6
	} else {
		WarnStyleBG.Print(kindStr + " Warning")
		kindLen += 8
	}

	fmt.Print(" ")

	fileName := filepath.Base(cs.ReprPath)
	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(fileName) - kindLen - 1
	if dashCount < 2 {
		dashCount = 2
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(fileName)
}

// displaySourceText displays a segment of source text defined by a text span.
// Source text that cannot be read is silently skipped: the message itself has
// already been displayed.
func displaySourceText(absPath string, span *TextSpan) {
	file, err := os.Open(absPath)
	if err != nil {
		return
	}
	defer file.Close()

	// Collect all the source lines containing the given source text.
	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if sc.Err() != nil || len(lines) == 0 {
		return
	}

	// Calculate the minimum line indentation.
	minIndent := math.MaxInt
	for _, line := range lines {
		lineIndent := len(line) - len(strings.TrimLeft(line, " "))
		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	fmt.Println()
	for i, line := range lines {
		InfoColorFG.Print(fmt.Sprintf(lineNumFmtStr, i+span.StartLine+1))
		fmt.Println(line[minIndent:])

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		// Underlining starts at the start column on the first line and
		// continues from the indent on every other line.
		prefix := 0
		if i == 0 {
			prefix = span.StartCol - minIndent
		}

		// The last line stops underlining after the end column.
		end := len(line)
		if i == len(lines)-1 && span.EndCol+1 < end {
			end = span.EndCol + 1
		}

		count := end - minIndent - prefix
		if prefix < 0 || count < 1 {
			prefix, count = 0, 1
		}

		fmt.Print(strings.Repeat(" ", prefix))
		ErrorColorFG.Println(strings.Repeat("^", count))
	}

	fmt.Println()
}
