package types

// Type represents one of the fixed set of minic data types.
type Type int

// Enumeration of the different types.  Error is the type of any expression
// which failed to check: it is absorbing and never produces a new diagnostic
// when it flows into an operator.
const (
	Void Type = iota
	Char
	Int
	Float
	Bool
	String
	Error
)

var typeNames = [...]string{
	Void:   "void",
	Char:   "char",
	Int:    "int",
	Float:  "float",
	Bool:   "bool",
	String: "string",
	Error:  "error",
}

// Repr returns the representative string for the type.
func (t Type) Repr() string {
	if t < Void || t > Error {
		return "<invalid type>"
	}

	return typeNames[t]
}

func (t Type) String() string {
	return t.Repr()
}

// Parse returns the type with the given name.  The error type can not be
// named by source text.
func Parse(name string) (Type, bool) {
	for t, tname := range typeNames {
		if tname == name && Type(t) != Error {
			return Type(t), true
		}
	}

	return Error, false
}

// IsNumeric returns whether the type is int or float.
func (t Type) IsNumeric() bool {
	return t == Int || t == Float
}
