package report

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

type recordingSink struct {
	shown []*Diagnostic
	ices  []string
}

func (rs *recordingSink) Display(d *Diagnostic) {
	rs.shown = append(rs.shown, d)
}

func (rs *recordingSink) DisplayICE(message string) {
	rs.ices = append(rs.ices, message)
}

func TestReporterCounts(t *testing.T) {
	sink := &recordingSink{}
	r := NewReporter(LogLevelError, sink)

	r.Error(KindNotDeclared, &TextSpan{StartLine: 2, StartCol: 4}, "no declaration found for `%s`", "x")
	r.Warn(KindUsage, nil, "unused")
	r.Error(KindNoEntry, nil, "function `main` not defined")

	be.Equal(t, r.ErrorCount(), 2)
	be.Equal(t, r.WarningCount(), 1)
	be.True(t, !r.ShouldProceed())
	be.Equal(t, r.Messages(), []string{"no declaration found for `x`", "function `main` not defined"})
	be.Equal(t, len(r.Diagnostics()), 3)

	// warnings are held back until compilation finishes
	be.Equal(t, len(sink.shown), 2)
	be.Equal(t, sink.shown[0].String(), "3:5: error: no declaration found for `x`")
	be.Equal(t, sink.shown[1].String(), "error: function `main` not defined")
}

func TestSilentReporter(t *testing.T) {
	sink := &recordingSink{}
	r := NewReporter(LogLevelSilent, sink)

	r.Error(KindUsage, nil, "hidden")
	r.Finished()

	be.Equal(t, len(sink.shown), 0)
	be.Equal(t, r.ErrorCount(), 1)
}

func TestFinishedShowsWarnings(t *testing.T) {
	sink := &recordingSink{}
	r := NewReporter(LogLevelWarn, sink)

	r.Warn(KindUsage, nil, "first")
	r.Warn(KindUsage, nil, "second")
	be.Equal(t, len(sink.shown), 0)

	r.Finished()
	be.Equal(t, len(sink.shown), 2)
	be.Equal(t, sink.shown[1].String(), "warning: second")
}

func TestCatchErrors(t *testing.T) {
	sink := &recordingSink{}
	r := NewReporter(LogLevelError, sink)

	func() {
		defer r.CatchErrors()
		panic(Raise(KindUnexpectedReturn, nil, "unexpected return statement"))
	}()

	func() {
		defer r.CatchErrors()
		panic(errors.New("index out of range"))
	}()

	func() {
		defer r.CatchErrors()
		panic(42)
	}()

	be.Equal(t, r.ErrorCount(), 3)

	diags := r.Diagnostics()
	be.Equal(t, diags[0].Kind, KindUnexpectedReturn)
	be.Equal(t, diags[1].Kind, KindInternal)
	be.Equal(t, sink.ices, []string{"index out of range", "42"})
}

func TestLogLevelFromName(t *testing.T) {
	level, ok := LogLevelFromName("warn")
	be.True(t, ok)
	be.Equal(t, level, LogLevelWarn)

	_, ok = LogLevelFromName("loud")
	be.True(t, !ok)
}

func TestSpanOver(t *testing.T) {
	start := &TextSpan{StartLine: 1, StartCol: 2, EndLine: 1, EndCol: 3}
	end := &TextSpan{StartLine: 4, StartCol: 0, EndLine: 5, EndCol: 6}

	be.Equal(t, NewSpanOver(start, end), &TextSpan{StartLine: 1, StartCol: 2, EndLine: 5, EndCol: 6})
	be.Equal(t, NewSpanOver(nil, end), end)
	be.Equal(t, NewSpanOver(start, nil), start)
	be.Equal(t, start.Line(), 2)
}
