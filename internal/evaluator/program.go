package evaluator

import (
	"maps"
	"slices"

	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/ir"
)

// Function is either a GaleFunction or a NativeFunction.
type Function interface {
	FunctionName() ast.Name
	ParameterNames() []ast.Name
}

// GaleFunction is a function defined in source. Its body is an arena node.
type GaleFunction struct {
	Name           ast.Name
	Parameters     []ast.Name
	Implementation ir.NodeId
}

func (f *GaleFunction) FunctionName() ast.Name     { return f.Name }
func (f *GaleFunction) ParameterNames() []ast.Name { return f.Parameters }

// NativeFn reads its arguments from env by parameter name.
type NativeFn func(in *Interpreter, env *Environment) (Value, error)

type NativeFunction struct {
	Name       ast.Name
	Parameters []ast.Name
	Fn         NativeFn
}

func (f *NativeFunction) FunctionName() ast.Name     { return f.Name }
func (f *NativeFunction) ParameterNames() []ast.Name { return f.Parameters }

// Program is the table of every callable function by name.
type Program struct {
	functions map[ast.Name]Function
}

func NewProgram() *Program {
	return &Program{functions: make(map[ast.Name]Function)}
}

// Extend adds f, replacing any function with the same name.
func (p *Program) Extend(f Function) {
	p.functions[f.FunctionName()] = f
}

func (p *Program) Lookup(name ast.Name) (Function, bool) {
	f, ok := p.functions[name]
	return f, ok
}

// Names returns the function names in sorted order.
func (p *Program) Names() []ast.Name {
	return slices.Sorted(maps.Keys(p.functions))
}
