package common

// Frame layout constants shared by the layout and code generation passes.
const (
	// VarSize is the size in bytes of one stack slot.  Every scalar of every
	// type occupies exactly one slot.
	VarSize = 4

	// OffsetFirstParam is the frame pointer relative offset of the first
	// parameter.  Parameters live above the frame pointer.
	OffsetFirstParam = 4

	// OffsetFirstLocal is the frame pointer relative offset of the first local
	// variable.  Locals live below the frame pointer.
	OffsetFirstLocal = -4
)
