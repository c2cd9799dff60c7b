package report

import "fmt"

// Kind classifies a diagnostic.
type Kind int

// Enumeration of diagnostic kinds.
const (
	KindDeclConflict Kind = iota
	KindNotDeclared
	KindInvalidCall
	KindNotFunction
	KindIncompatibleOperands
	KindArgCount
	KindArgType
	KindDimCount
	KindNotArray
	KindArrayWithoutSubscript
	KindSubscriptNotInt
	KindTestNotBool
	KindReturnMismatch
	KindUnexpectedReturn
	KindNoEntry
	KindInvalidAssign
	KindBadDimension
	KindVoidVar
	KindUsage
	KindInternal
)

// kindLabels are the banner labels displayed for each kind of diagnostic.
var kindLabels = map[Kind]string{
	KindDeclConflict:          "Definition",
	KindNotDeclared:           "Name",
	KindInvalidCall:           "Usage",
	KindNotFunction:           "Usage",
	KindIncompatibleOperands:  "Operator",
	KindArgCount:              "Argument",
	KindArgType:               "Argument",
	KindDimCount:              "Array",
	KindNotArray:              "Array",
	KindArrayWithoutSubscript: "Array",
	KindSubscriptNotInt:       "Array",
	KindTestNotBool:           "Type",
	KindReturnMismatch:        "Type",
	KindUnexpectedReturn:      "Usage",
	KindNoEntry:               "Linker",
	KindInvalidAssign:         "Usage",
	KindBadDimension:          "Array",
	KindVoidVar:               "Type",
	KindUsage:                 "Usage",
	KindInternal:              "Internal",
}

func (k Kind) String() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic is a single structured report produced during compilation.
type Diagnostic struct {
	Kind Kind

	// The span over which the diagnostic occurs.  This is nil for whole
	// program diagnostics such as a missing entry function.
	Span *TextSpan

	Message string
	IsError bool
}

func (d *Diagnostic) String() string {
	label := "warning"
	if d.IsError {
		label = "error"
	}

	if d.Span == nil {
		return fmt.Sprintf("%s: %s", label, d.Message)
	}

	return fmt.Sprintf("%d:%d: %s: %s", d.Span.StartLine+1, d.Span.StartCol+1, label, d.Message)
}

// -----------------------------------------------------------------------------

// LocalCompileError is a compilation error that occurs in a context in which
// the file is known by the error handler and thus doesn't need to be passed
// along with the error.
type LocalCompileError struct {
	Kind Kind

	// The error message.
	Message string

	// The span over which the error occurs.
	Span *TextSpan
}

func (lce *LocalCompileError) Error() string {
	return lce.Message
}

// Raise creates a new local compile error.
func Raise(kind Kind, span *TextSpan, msg string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}

// CatchErrors catches any errors thrown by a `panic` during a stage of
// compilation.  In effect, this handler determines when any errors
// "unrecoverable" within a given subsection of the compiler should stop
// bubbling.
// NB: This function must ALWAYS be deferred.
func (r *Reporter) CatchErrors() {
	if x := recover(); x != nil {
		if cerr, ok := x.(*LocalCompileError); ok {
			r.Error(cerr.Kind, cerr.Span, "%s", cerr.Message)
		} else if serr, ok := x.(error); ok {
			r.ICE("%s", serr)
		} else {
			r.ICE("%v", x)
		}
	}
}
