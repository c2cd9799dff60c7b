package report

import (
	"fmt"
	"sync"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user during compilation.  The reporter respects the set log
// level and is synchronized: its methods can be safely called from multiple
// goroutines.  Every diagnostic of a compilation funnels through exactly one
// reporter which is passed explicitly to each pass.
type Reporter struct {
	// The mutex used to synchonize different error method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The sink diagnostics are displayed through.
	sink Sink

	// All the diagnostics reported so far in order.
	diagnostics []*Diagnostic

	errorCount int

	// Warnings are buffered and displayed at the end of compilation.
	warnings []*Diagnostic
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

var logLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarn,
	"verbose": LogLevelVerbose,
}

// LogLevelFromName converts the name of a log level to its value.
func LogLevelFromName(name string) (int, bool) {
	level, ok := logLevelNames[name]
	return level, ok
}

// Sink is the destination diagnostics are displayed through.
type Sink interface {
	// Display displays a compile error or warning.
	Display(d *Diagnostic)

	// DisplayICE displays an internal compiler error.
	DisplayICE(message string)
}

// NewReporter creates a new reporter with the given log level.  If sink is
// nil, nothing is ever displayed but diagnostics are still recorded.
func NewReporter(logLevel int, sink Sink) *Reporter {
	return &Reporter{
		m:        &sync.Mutex{},
		logLevel: logLevel,
		sink:     sink,
	}
}

// LogLevel returns the reporter's log level.
func (r *Reporter) LogLevel() int {
	return r.logLevel
}

// Error reports a compilation error: ie. erroneous input code.  The span may be
// nil in which case no position information will be displayed.
func (r *Reporter) Error(kind Kind, span *TextSpan, message string, args ...interface{}) {
	r.m.Lock()
	defer r.m.Unlock()

	d := &Diagnostic{Kind: kind, Span: span, Message: fmt.Sprintf(message, args...), IsError: true}
	r.diagnostics = append(r.diagnostics, d)
	r.errorCount++

	if r.logLevel > LogLevelSilent && r.sink != nil {
		r.sink.Display(d)
	}
}

// Warn reports a compilation warning.  Warnings are displayed when the
// compilation finishes.
func (r *Reporter) Warn(kind Kind, span *TextSpan, message string, args ...interface{}) {
	r.m.Lock()
	defer r.m.Unlock()

	d := &Diagnostic{Kind: kind, Span: span, Message: fmt.Sprintf(message, args...)}
	r.diagnostics = append(r.diagnostics, d)
	r.warnings = append(r.warnings, d)
}

// ICE reports an internal compiler error.  These are errors that specifically
// result from a bug or unexpected condition occurring within the compiler: they
// are not intended to ever happen.  They count as errors and are always
// displayed regardless of log level.
func (r *Reporter) ICE(message string, args ...interface{}) {
	r.m.Lock()
	defer r.m.Unlock()

	msg := fmt.Sprintf(message, args...)
	r.diagnostics = append(r.diagnostics, &Diagnostic{Kind: KindInternal, Message: msg, IsError: true})
	r.errorCount++

	if r.sink != nil {
		r.sink.DisplayICE(msg)
	}
}

// -----------------------------------------------------------------------------

// ErrorCount returns the number of errors reported so far.
func (r *Reporter) ErrorCount() int {
	r.m.Lock()
	defer r.m.Unlock()

	return r.errorCount
}

// WarningCount returns the number of warnings reported so far.
func (r *Reporter) WarningCount() int {
	r.m.Lock()
	defer r.m.Unlock()

	return len(r.warnings)
}

// ShouldProceed indicates whether or not there have been any errors that
// should cause compilation to stop at the current phase.
func (r *Reporter) ShouldProceed() bool {
	return r.ErrorCount() == 0
}

// Diagnostics returns a copy of every diagnostic reported so far in the order
// they were reported.
func (r *Reporter) Diagnostics() []*Diagnostic {
	r.m.Lock()
	defer r.m.Unlock()

	return append([]*Diagnostic(nil), r.diagnostics...)
}

// Messages returns the messages of every error reported so far.
func (r *Reporter) Messages() []string {
	var msgs []string
	for _, d := range r.Diagnostics() {
		if d.IsError {
			msgs = append(msgs, d.Message)
		}
	}

	return msgs
}
