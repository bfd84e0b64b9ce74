// Package analyzer type checks the surface tree.
//
// Checking is bidirectional. Each node is visited with an optional
// Constraint: when present the node must resolve to exactly that type, and
// when absent it synthesizes its own. The first failure aborts the check.
package analyzer

import (
	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/symbols"
	"github.com/galelang/gale/internal/typesystem"
)

// TypeMap records the type synthesized for each checked node.
type TypeMap map[ast.Node]typesystem.Type

// Analyzer performs semantic analysis on the AST.
type Analyzer struct {
	symbolTable *symbols.SymbolTable
	TypeMap     TypeMap
}

// New returns an analyzer whose global scope encloses the prelude.
func New() *Analyzer {
	prelude := symbols.NewEmptySymbolTable()
	RegisterBuiltins(prelude)
	return &Analyzer{
		symbolTable: symbols.NewEnclosedSymbolTable(prelude, symbols.ScopeGlobal),
		TypeMap:     make(TypeMap),
	}
}

// Analyze checks a whole file. Bindings made by its statements stay visible
// through Lookup afterwards.
func (a *Analyzer) Analyze(file *ast.File) (err error) {
	defer diagnostics.CatchInvariant(&err)
	for _, stmt := range file.Statements {
		if _, err := a.check(stmt, nil); err != nil {
			return err
		}
	}
	return nil
}

// CheckNode checks a single node under constraint c.
func (a *Analyzer) CheckNode(n ast.Node, c *Constraint) (t typesystem.Type, err error) {
	defer diagnostics.CatchInvariant(&err)
	return a.check(n, c)
}

// Lookup returns the type bound to a variable in the global scope or the prelude.
func (a *Analyzer) Lookup(name ast.Name) (typesystem.Type, bool) {
	sym, ok := a.symbolTable.Find(name)
	return sym.Type, ok
}

// Check type checks file with a fresh prelude and returns the inferred types.
func Check(file *ast.File) (TypeMap, error) {
	a := New()
	if err := a.Analyze(file); err != nil {
		return nil, err
	}
	return a.TypeMap, nil
}

func (a *Analyzer) check(n ast.Node, c *Constraint) (typesystem.Type, error) {
	var (
		t   typesystem.Type
		err error
	)
	switch n := n.(type) {
	case *ast.Let:
		t, err = a.checkLet(n)
	case *ast.Block:
		t, err = a.checkBlock(n, c)
	case *ast.Identifier:
		t, err = a.checkIdentifier(n)
	case *ast.BinOp:
		t, err = a.checkBinOp(n, c)
	case *ast.Lambda:
		t, err = a.checkLambda(n, c)
	case *ast.App:
		t, err = a.checkApp(n)
	case *ast.Number:
		t, err = a.checkNumber(n, c)
	case *ast.Boolean:
		t = typesystem.Atom(typesystem.Boolean)
	case *ast.Text:
		t = typesystem.Atom(typesystem.Text)
	case *ast.Tuple:
		t, err = a.checkTuple(n)
	case *ast.Array:
		t, err = a.checkArray(n, c)
	case ast.TypeNode:
		t, err = a.buildType(n)
	case *ast.File:
		diagnostics.Invariantf("nested file node")
	default:
		diagnostics.Invariantf("unknown surface node %T", n)
	}
	if err != nil {
		return nil, err
	}
	a.TypeMap[n] = t
	return t, nil
}
