package evaluator

import (
	"maps"
	"slices"

	"github.com/galelang/gale/internal/ast"
)

func NewEnvironment() *Environment {
	return &Environment{store: make(map[ast.Name]Value)}
}

// Environment maps names to values for one call. Calls do not see the
// caller's bindings.
type Environment struct {
	store map[ast.Name]Value
}

func (e *Environment) Get(name ast.Name) (Value, bool) {
	v, ok := e.store[name]
	return v, ok
}

func (e *Environment) Set(name ast.Name, val Value) Value {
	e.store[name] = val
	return val
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []ast.Name {
	return slices.Sorted(maps.Keys(e.store))
}
