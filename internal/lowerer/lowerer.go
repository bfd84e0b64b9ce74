// Package lowerer turns the surface tree into the arena IR.
//
// A node whose children need it as their parent is built in two phases: it is
// inserted with flattree.ErrorID in every child slot, the children are lowered
// under it, and then its value is replaced with the real child ids.
package lowerer

import (
	"fmt"

	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/config"
	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/flattree"
	"github.com/galelang/gale/internal/ir"
)

const pending = flattree.ErrorID

type Lowerer struct {
	tree *ir.Tree
}

// Lower builds the arena for a checked file. Every top-level statement must
// lower to a function.
func Lower(file *ast.File) (tree *ir.Tree, err error) {
	defer diagnostics.CatchInvariant(&err)

	l := &Lowerer{tree: flattree.NewWithRoot[ir.Node](&ir.File{})}
	var functions []ir.NodeId
	for _, stmt := range file.Statements {
		id := l.lower(stmt, flattree.RootID)
		node, _ := l.tree.NodeValue(id)
		if _, ok := node.(*ir.Function); !ok {
			return nil, diagnostics.Errorf(diagnostics.ErrL001, stmt.GetToken(),
				"top-level statement must define a function, got %s", ir.Kind(node))
		}
		functions = append(functions, id)
	}
	l.tree.SetNodeValue(flattree.RootID, &ir.File{Functions: functions})

	checkComplete(l.tree)
	return l.tree, nil
}

// LowerNode lowers a single surface node under a fresh File root. It is meant
// for evaluating expressions that are not part of a file.
func LowerNode(n ast.Node) (tree *ir.Tree, id ir.NodeId, err error) {
	defer diagnostics.CatchInvariant(&err)

	l := &Lowerer{tree: flattree.NewWithRoot[ir.Node](&ir.File{})}
	id = l.lower(n, flattree.RootID)
	checkComplete(l.tree)
	return l.tree, id, nil
}

func (l *Lowerer) lower(n ast.Node, parent ir.NodeId) ir.NodeId {
	switch n := n.(type) {
	case *ast.Let:
		if lambda, ok := n.Exp.(*ast.Lambda); ok {
			return l.lowerFunction(n.ID.Name, lambda, parent)
		}
		id := l.tree.NewNode(&ir.Let{ID: pending, ExpType: pending, Exp: pending}, parent)
		l.tree.SetNodeValue(id, &ir.Let{
			ID:      l.lower(n.ID, id),
			ExpType: l.lower(n.ExpType, id),
			Exp:     l.lower(n.Exp, id),
		})
		return id
	case *ast.Block:
		id := l.tree.NewNode(&ir.Seq{}, parent)
		l.tree.SetNodeValue(id, &ir.Seq{Elements: l.lowerAll(n.Statements, id)})
		return id
	case *ast.Identifier:
		return l.tree.NewNode(&ir.Identifier{Name: n.Name}, parent)
	case *ast.BinOp:
		id := l.tree.NewNode(&ir.BinOp{LHS: pending, RHS: pending, Op: n.Op}, parent)
		l.tree.SetNodeValue(id, &ir.BinOp{
			LHS: l.lower(n.LHS, id),
			RHS: l.lower(n.RHS, id),
			Op:  n.Op,
		})
		return id
	case *ast.Lambda:
		return l.lowerFunction("", n, parent)
	case *ast.App:
		id := l.tree.NewNode(&ir.Apply{Fn: pending, Param: pending}, parent)
		l.tree.SetNodeValue(id, &ir.Apply{
			Fn:    l.lower(n.Fn, id),
			Param: l.lower(n.Arg, id),
		})
		return id
	case *ast.Number:
		return l.tree.NewNode(&ir.Number{Value: n.Value}, parent)
	case *ast.Boolean:
		return l.tree.NewNode(&ir.Boolean{Value: n.Value}, parent)
	case *ast.Text:
		return l.tree.NewNode(&ir.Text{Value: n.Value}, parent)
	case *ast.Tuple:
		id := l.tree.NewNode(&ir.Tuple{}, parent)
		l.tree.SetNodeValue(id, &ir.Tuple{Elements: l.lowerAll(n.Elements, id)})
		return id
	case *ast.Array:
		id := l.tree.NewNode(&ir.Array{}, parent)
		l.tree.SetNodeValue(id, &ir.Array{Elements: l.lowerAll(n.Elements, id)})
		return id
	case ast.TypeNode:
		return l.lowerType(n, parent)
	}
	diagnostics.Invariantf("cannot lower %T", n)
	return pending
}

func (l *Lowerer) lowerAll(ns []ast.Node, parent ir.NodeId) []ir.NodeId {
	ids := make([]ir.NodeId, len(ns))
	for i, n := range ns {
		ids[i] = l.lower(n, parent)
	}
	return ids
}

// lowerFunction promotes a lambda to a Function node. An empty name marks an
// anonymous lambda, which is named after its own node id.
func (l *Lowerer) lowerFunction(name ast.Name, lambda *ast.Lambda, parent ir.NodeId) ir.NodeId {
	id := l.tree.NewNode(&ir.Function{Name: name, Implementation: pending}, parent)
	anonymous := name == ""
	if anonymous {
		name = ast.Name(fmt.Sprintf("%s%d", config.AnonymousFuncPrefix, id))
	}

	params := make([]ir.NodeId, len(lambda.Parameters))
	for i, p := range lambda.Parameters {
		params[i] = l.lower(p, id)
	}
	l.tree.SetNodeValue(id, &ir.Function{
		Name:           name,
		Parameters:     params,
		Implementation: l.lower(lambda.Body, id),
		Anonymous:      anonymous,
	})
	return id
}

func (l *Lowerer) lowerType(n ast.TypeNode, parent ir.NodeId) ir.NodeId {
	switch n := n.(type) {
	case *ast.IdentifierType:
		return l.tree.NewNode(&ir.IdentifierType{Name: n.Name}, parent)
	case *ast.UnitType:
		return l.tree.NewNode(&ir.UnitType{}, parent)
	case *ast.FunctionType:
		id := l.tree.NewNode(&ir.FunctionType{From: pending, To: pending}, parent)
		l.tree.SetNodeValue(id, &ir.FunctionType{
			From: l.lower(n.From, id),
			To:   l.lower(n.To, id),
		})
		return id
	case *ast.ArrayType:
		id := l.tree.NewNode(&ir.ArrayType{ValueType: pending, Length: n.Length}, parent)
		l.tree.SetNodeValue(id, &ir.ArrayType{
			ValueType: l.lower(n.ValueType, id),
			Length:    n.Length,
		})
		return id
	case *ast.ProductType:
		id := l.tree.NewNode(&ir.ProductType{}, parent)
		l.tree.SetNodeValue(id, &ir.ProductType{Elements: l.lowerTypes(n.Elements, id)})
		return id
	case *ast.SumType:
		id := l.tree.NewNode(&ir.SumType{}, parent)
		l.tree.SetNodeValue(id, &ir.SumType{Options: l.lowerTypes(n.Options, id)})
		return id
	}
	diagnostics.Invariantf("cannot lower type %T", n)
	return pending
}

func (l *Lowerer) lowerTypes(ns []ast.TypeNode, parent ir.NodeId) []ir.NodeId {
	ids := make([]ir.NodeId, len(ns))
	for i, n := range ns {
		ids[i] = l.lower(n, parent)
	}
	return ids
}

// checkComplete fails if any placeholder id is still referenced.
func checkComplete(tree *ir.Tree) {
	for id, node := range tree.All() {
		for _, ref := range ir.References(node) {
			if ref == pending {
				diagnostics.Invariantf("node %d (%s) still holds a placeholder child", id, ir.Kind(node))
			}
		}
	}
}
