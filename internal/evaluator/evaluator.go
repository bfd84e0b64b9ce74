// Package evaluator runs a lowered arena by walking it.
package evaluator

import (
	"fmt"
	"io"

	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/config"
	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/flattree"
	"github.com/galelang/gale/internal/ir"
	"github.com/galelang/gale/internal/token"
)

type Interpreter struct {
	tree    *ir.Tree
	program *Program
	Out     io.Writer

	// keys maps a Function node to the name it is registered under.
	keys map[ir.NodeId]ast.Name
}

// New registers every live Function of tree, then the natives. Functions
// listed by the file are registered by name, and the first of two with the
// same name wins. Nested named functions are registered as name#id so that
// equal names in different blocks stay apart.
func New(tree *ir.Tree, out io.Writer) (in *Interpreter, err error) {
	defer diagnostics.CatchInvariant(&err)
	if out == nil {
		out = io.Discard
	}
	in = &Interpreter{tree: tree, program: NewProgram(), Out: out, keys: make(map[ir.NodeId]ast.Name)}

	file, ok := in.node(flattree.RootID).(*ir.File)
	if !ok {
		diagnostics.Invariantf("root node is %s, not File", ir.Kind(in.node(flattree.RootID)))
	}
	seen := make(map[ir.NodeId]bool)
	for _, id := range file.Functions {
		in.register(id, in.function(id).Name)
		seen[id] = true
	}
	for id, n := range tree.All() {
		fn, ok := n.(*ir.Function)
		if !ok || seen[id] {
			continue
		}
		key := fn.Name
		if !fn.Anonymous {
			key = ast.Name(fmt.Sprintf("%s#%d", fn.Name, id))
		}
		in.register(id, key)
	}
	for _, f := range Natives() {
		in.program.Extend(f)
	}
	return in, nil
}

func (in *Interpreter) register(id ir.NodeId, key ast.Name) {
	fn := in.function(id)
	in.keys[id] = key
	if _, dup := in.program.Lookup(key); dup {
		return
	}
	params := make([]ast.Name, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = in.identifier(p)
	}
	in.program.Extend(&GaleFunction{Name: key, Parameters: params, Implementation: fn.Implementation})
}

func (in *Interpreter) function(id ir.NodeId) *ir.Function {
	fn, ok := in.node(id).(*ir.Function)
	if !ok {
		diagnostics.Invariantf("node %d is %s, not Function", id, ir.Kind(in.node(id)))
	}
	return fn
}

// resolve finds the function a free name refers to at node id. It looks
// through the enclosing blocks from the innermost outwards, then the file.
func (in *Interpreter) resolve(id ir.NodeId, name ast.Name) (ast.Name, bool) {
	for id != flattree.RootID {
		id = in.tree.Parent(id)
		var candidates []ir.NodeId
		switch n := in.node(id).(type) {
		case *ir.Seq:
			candidates = n.Elements
		case *ir.File:
			candidates = n.Functions
		}
		for _, c := range candidates {
			if fn, ok := in.node(c).(*ir.Function); ok && !fn.Anonymous && fn.Name == name {
				return in.keys[c], true
			}
		}
	}
	return "", false
}

func (in *Interpreter) Program() *Program {
	return in.program
}

// Run calls main with every parameter bound to config.EntrySeedValue. main
// runs in an environment that also holds a reference to every function.
func (in *Interpreter) Run() (result Value, err error) {
	defer diagnostics.CatchInvariant(&err)

	env := NewEnvironment()
	for _, name := range in.program.Names() {
		env.Set(name, &FunctionRef{Name: name})
	}
	f, ok := in.program.Lookup(config.EntryFuncName)
	if !ok {
		return nil, runtimeErrorf("no %s function", config.EntryFuncName)
	}
	for _, p := range f.ParameterNames() {
		env.Set(p, &Number{Value: config.EntrySeedValue})
	}
	return in.invoke(f, env)
}

// Eval evaluates the node id in env.
func (in *Interpreter) Eval(id ir.NodeId, env *Environment) (result Value, err error) {
	defer diagnostics.CatchInvariant(&err)
	return in.eval(id, env)
}

// Run builds an Interpreter for tree and returns what main returned.
func Run(tree *ir.Tree, out io.Writer) (Value, error) {
	in, err := New(tree, out)
	if err != nil {
		return nil, err
	}
	return in.Run()
}

func (in *Interpreter) invoke(f Function, env *Environment) (Value, error) {
	switch f := f.(type) {
	case *GaleFunction:
		return in.eval(f.Implementation, env)
	case *NativeFunction:
		return f.Fn(in, env)
	}
	diagnostics.Invariantf("unknown function kind %T", f)
	return nil, nil
}

func (in *Interpreter) node(id ir.NodeId) ir.Node {
	n, ok := in.tree.NodeValue(id)
	if !ok {
		diagnostics.Invariantf("node %d is not live", id)
	}
	return n
}

func (in *Interpreter) identifier(id ir.NodeId) ast.Name {
	ident, ok := in.node(id).(*ir.Identifier)
	if !ok {
		diagnostics.Invariantf("node %d is %s, not Identifier", id, ir.Kind(in.node(id)))
	}
	return ident.Name
}

func runtimeErrorf(format string, args ...interface{}) *diagnostics.DiagnosticError {
	return diagnostics.Errorf(diagnostics.ErrR001, token.Token{}, format, args...)
}
