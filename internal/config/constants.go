package config

import (
	"path/filepath"
	"strings"
)

const SourceFileExt = ".gale"

// BundleFileExt is the extension of lowered program snapshots written by `gale build`.
const BundleFileExt = ".galeb"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".gale"}

// Built-in function names
const (
	PrintFuncName    = "std.print"
	PrintlnFuncName  = "std.println"
	ReadFuncName     = "std.read"
	ToStringFuncName = "std.to_string"
)

// NativeParamName is the single parameter every native function reads.
const NativeParamName = "in"

// Built-in type names
const (
	UI8TypeName    = "ui8"
	UI64TypeName   = "ui64"
	I8TypeName     = "i8"
	I64TypeName    = "i64"
	BoolTypeName   = "bool"
	StringTypeName = "string"
	UnitTypeName   = "unit"
)

// EntryFuncName is the function the interpreter starts from.
const EntryFuncName = "main"

// EntrySeedValue is bound to every parameter of the entry function.
// Placeholder until real argument passing exists.
const EntrySeedValue int64 = 3

// AnonymousFuncPrefix prefixes the synthesized names of lambdas that are not bound by let.
const AnonymousFuncPrefix = "lambda#"

// HasSourceExt reports whether path ends in a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// TrimSourceExt removes a recognized source extension from name.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return strings.TrimSuffix(name, BundleFileExt)
}

// ModuleName derives a display name from a file path.
func ModuleName(path string) string {
	return TrimSourceExt(filepath.Base(path))
}
