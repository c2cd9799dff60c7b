package common

// MinicVersion is the current minic version as a string.
const MinicVersion string = "0.2.0"

// ProfileFileName is the name of the optional build profile file.
const ProfileFileName string = "minic.toml"

// ASTFileExt is the file extension for an S-expression AST file produced by
// the front end.
const ASTFileExt string = ".sexp"

// EntryFuncName is the default name of the program entry function.
const EntryFuncName string = "main"
