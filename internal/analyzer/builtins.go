package analyzer

import (
	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/config"
	"github.com/galelang/gale/internal/symbols"
	"github.com/galelang/gale/internal/typesystem"
)

const prelude = "prelude"

// BuiltinTypes maps the built-in type names to their types.
func BuiltinTypes() map[ast.Name]typesystem.Type {
	return map[ast.Name]typesystem.Type{
		config.UI8TypeName:    typesystem.Atom(typesystem.UI8),
		config.UI64TypeName:   typesystem.Atom(typesystem.UI64),
		config.I8TypeName:     typesystem.Atom(typesystem.I8),
		config.I64TypeName:    typesystem.Atom(typesystem.I64),
		config.BoolTypeName:   typesystem.Atom(typesystem.Boolean),
		config.StringTypeName: typesystem.Atom(typesystem.Text),
		config.UnitTypeName:   typesystem.TUnit{},
	}
}

// NativeSignatures maps each native function to its type.
func NativeSignatures() map[ast.Name]typesystem.Type {
	text := typesystem.Atom(typesystem.Text)
	return map[ast.Name]typesystem.Type{
		config.PrintFuncName:    typesystem.Func(text, typesystem.TUnit{}),
		config.PrintlnFuncName:  typesystem.Func(text, typesystem.TUnit{}),
		config.ReadFuncName:     typesystem.Func(text, text),
		config.ToStringFuncName: typesystem.Func(typesystem.Atom(typesystem.UI8), text),
	}
}

// RegisterBuiltins defines the built-in types and native functions in table.
func RegisterBuiltins(table *symbols.SymbolTable) {
	for name, t := range BuiltinTypes() {
		table.DefineType(name, t, prelude)
	}
	for name, t := range NativeSignatures() {
		table.Define(name, t, nil, prelude)
	}
}
