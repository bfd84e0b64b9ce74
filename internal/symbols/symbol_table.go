// Package symbols holds the name tables the type checker resolves against:
// variables to types and type names to types, with nested scopes.
package symbols

import (
	"maps"
	"slices"

	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/typesystem"
)

type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	TypeSymbol
)

type ScopeType int

const (
	ScopePrelude  ScopeType = iota // Built-in symbols (types, native functions)
	ScopeGlobal                    // User code top-level
	ScopeFunction                  // Lambda parameters and the lets in its body
)

type Symbol struct {
	Name           ast.Name
	Type           typesystem.Type
	Kind           SymbolKind
	OriginModule   string   // "prelude" for built-ins
	DefinitionNode ast.Node // nil for built-ins
}

type SymbolTable struct {
	store     map[ast.Name]Symbol
	types     map[ast.Name]Symbol
	outer     *SymbolTable
	scopeType ScopeType
}

func NewEmptySymbolTable() *SymbolTable {
	return &SymbolTable{
		store:     make(map[ast.Name]Symbol),
		types:     make(map[ast.Name]Symbol),
		scopeType: ScopeGlobal,
	}
}

func NewEnclosedSymbolTable(outer *SymbolTable, scopeType ScopeType) *SymbolTable {
	st := NewEmptySymbolTable()
	st.outer = outer
	st.scopeType = scopeType
	return st
}

// Outer returns the outer scope symbol table
func (s *SymbolTable) Outer() *SymbolTable {
	return s.outer
}

func (s *SymbolTable) ScopeType() ScopeType {
	return s.scopeType
}

// Define binds a variable in this scope, replacing any previous binding here.
func (s *SymbolTable) Define(name ast.Name, t typesystem.Type, node ast.Node, origin string) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: VariableSymbol, DefinitionNode: node, OriginModule: origin}
}

// DefineType registers a named type in this scope.
func (s *SymbolTable) DefineType(name ast.Name, t typesystem.Type, origin string) {
	s.types[name] = Symbol{Name: name, Type: t, Kind: TypeSymbol, OriginModule: origin}
}

// Find resolves a variable through enclosing scopes.
func (s *SymbolTable) Find(name ast.Name) (Symbol, bool) {
	for st := s; st != nil; st = st.outer {
		if sym, ok := st.store[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// FindType resolves a type name through enclosing scopes.
func (s *SymbolTable) FindType(name ast.Name) (typesystem.Type, bool) {
	for st := s; st != nil; st = st.outer {
		if sym, ok := st.types[name]; ok {
			return sym.Type, true
		}
	}
	return nil, false
}

// LocalNames lists the variables defined directly in this scope, sorted.
func (s *SymbolTable) LocalNames() []ast.Name {
	return slices.Sorted(maps.Keys(s.store))
}
