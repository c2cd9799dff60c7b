package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" reporting functions that will only run if the
// log level is verbose.  These provide additional information about the
// compilation process to the user so as to make the compiler more friendly.

// phase is the compilation phase currently being displayed.
type phase struct {
	name    string
	start   time.Time
	spinner *pterm.SpinnerPrinter
}

const maxPhaseLength = len("Generating")

// CompileHeader reports the pre-compilation header: the compiler version and
// the selected target.
func (r *Reporter) CompileHeader(version, target string) {
	if r.logLevel == LogLevelVerbose {
		fmt.Print("minic ")
		InfoColorFG.Print("v" + version)
		fmt.Print(" -- target: ")
		InfoColorFG.Println(target)
	}
}

// BeginPhase displays the beginning of a compilation phase.  The returned
// function must be called to end the phase.
func (r *Reporter) BeginPhase(name string) func() {
	if r.logLevel != LogLevelVerbose {
		return func() {}
	}

	p := &phase{name: name, start: time.Now()}
	p.spinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))
	p.spinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}
	p.spinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	p.spinner.Start(name + "..." + strings.Repeat(" ", maxPhaseLength-len(name)+2))

	errorsBefore := r.ErrorCount()
	return func() {
		padded := p.name + strings.Repeat(" ", maxPhaseLength-len(p.name)+2)
		if r.ErrorCount() == errorsBefore {
			p.spinner.Success(padded, fmt.Sprintf("(%.3fs)", time.Since(p.start).Seconds()))
		} else {
			p.spinner.Fail(padded)
		}
	}
}

// Finished reports the concluding message for compilation: all buffered
// warnings followed by a summary of the error and warning counts.
func (r *Reporter) Finished() {
	r.m.Lock()
	warnings := append([]*Diagnostic(nil), r.warnings...)
	errorCount := r.errorCount
	r.m.Unlock()

	if r.logLevel >= LogLevelWarn && r.sink != nil {
		for _, w := range warnings {
			r.sink.Display(w)
		}
	}

	if r.logLevel == LogLevelVerbose {
		displayCompilationFinished(errorCount == 0, errorCount, len(warnings))
	}
}

// displayCompilationFinished displays a compilation finished message.
func displayCompilationFinished(success bool, errorCount, warningCount int) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Println(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Println(" warning)")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Println(" warnings)")
	}
}
