package prettyprinter

import (
	"strconv"

	"github.com/xlab/treeprint"

	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/flattree"
	"github.com/galelang/gale/internal/ir"
)

// ASTTree renders the surface tree as an indented outline. Types are shown
// in source form on the node that carries them.
func ASTTree(file *ast.File) string {
	root := treeprint.New()
	branch := root.AddBranch("File " + file.Path)
	for _, stmt := range file.Statements {
		addAST(branch, stmt)
	}
	return root.String()
}

func addAST(t treeprint.Tree, n ast.Node) {
	switch n := n.(type) {
	case *ast.Let:
		b := t.AddBranch("Let " + string(n.ID.Name) + " : " + Code(n.ExpType))
		addAST(b, n.Exp)
	case *ast.Block:
		b := t.AddBranch("Block")
		for _, stmt := range n.Statements {
			addAST(b, stmt)
		}
	case *ast.BinOp:
		b := t.AddBranch("BinOp " + n.Op.String())
		addAST(b, n.LHS)
		addAST(b, n.RHS)
	case *ast.Lambda:
		b := t.AddBranch("Lambda")
		params := b.AddBranch("params")
		for _, param := range n.Parameters {
			params.AddNode(string(param.Name))
		}
		addAST(b, n.Body)
	case *ast.App:
		b := t.AddBranch("App")
		addAST(b, n.Fn)
		addAST(b, n.Arg)
	case *ast.Tuple:
		b := t.AddBranch("Tuple")
		for _, el := range n.Elements {
			addAST(b, el)
		}
	case *ast.Array:
		b := t.AddBranch("Array")
		for _, el := range n.Elements {
			addAST(b, el)
		}
	case *ast.Identifier:
		t.AddNode("Identifier " + string(n.Name))
	case *ast.Number:
		t.AddNode("Number " + strconv.FormatInt(n.Value, 10))
	case *ast.Boolean:
		t.AddNode("Boolean " + strconv.FormatBool(n.Value))
	case *ast.Text:
		t.AddNode("Text " + strconv.Quote(n.Value))
	case ast.TypeNode:
		t.AddNode("Type " + Code(n))
	default:
		t.AddNode("<???>")
	}
}

// IRTree renders the live nodes of an arena, each tagged with its id.
func IRTree(tree *ir.Tree) string {
	root := treeprint.New()
	addIR(root, tree, flattree.RootID)
	return root.String()
}

func addIR(t treeprint.Tree, tree *ir.Tree, id ir.NodeId) {
	n, ok := tree.NodeValue(id)
	if !ok {
		return
	}
	label := ir.Label(n)
	if fn, ok := n.(*ir.Function); ok && fn.Anonymous {
		label += " (anonymous)"
	}
	children := tree.Children(id)
	if len(children) == 0 {
		t.AddMetaNode(id, label)
		return
	}
	b := t.AddMetaBranch(id, label)
	for _, c := range children {
		addIR(b, tree, c)
	}
}
