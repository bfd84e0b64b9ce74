package analysis

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/config"
	"github.com/galelang/gale/internal/flattree"
	"github.com/galelang/gale/internal/graph"
	"github.com/galelang/gale/internal/ir"
	"github.com/galelang/gale/internal/lexer"
	"github.com/galelang/gale/internal/lowerer"
	"github.com/galelang/gale/internal/parser"
	"github.com/galelang/gale/internal/pipeline"
)

// letTree builds File -> Function main -> Seq -> Let x : ui8 = 3.
func letTree() (tree *ir.Tree, ids map[string]ir.NodeId) {
	tree = flattree.NewWithRoot[ir.Node](&ir.File{})
	fn := tree.NewNode(&ir.Function{Name: "main"}, flattree.RootID)
	seq := tree.NewNode(&ir.Seq{}, fn)
	let := tree.NewNode(&ir.Let{}, seq)
	id := tree.NewNode(&ir.Identifier{Name: "x"}, let)
	ty := tree.NewNode(&ir.IdentifierType{Name: "ui8"}, let)
	exp := tree.NewNode(&ir.Number{Value: 3}, let)
	tree.SetNodeValue(let, &ir.Let{ID: id, ExpType: ty, Exp: exp})
	tree.SetNodeValue(seq, &ir.Seq{Elements: []ir.NodeId{let}})
	tree.SetNodeValue(fn, &ir.Function{Name: "main", Implementation: seq})
	tree.SetNodeValue(flattree.RootID, &ir.File{Functions: []ir.NodeId{fn}})
	return tree, map[string]ir.NodeId{"fn": fn, "seq": seq, "let": let, "id": id, "type": ty, "exp": exp}
}

func lowerSource(t *testing.T, input string) *ir.Tree {
	t.Helper()
	p := parser.New(lexer.New(input))
	file := p.ParseFile()
	require.Nil(t, p.Err())
	tree, err := lowerer.Lower(file)
	require.NoError(t, err)
	return tree
}

func TestNodeGraphMirrorsTree(t *testing.T) {
	tree, ids := letTree()
	g := GenNodeGraph(tree)

	require.Equal(t, tree.LiveCount(), g.VertexCount())
	require.Equal(t, tree.LiveCount()-1, g.EdgeCount())
	require.True(t, g.HasEdge(graph.Vertex(flattree.RootID), graph.Vertex(ids["fn"])))
	require.True(t, g.HasEdge(graph.Vertex(ids["let"]), graph.Vertex(ids["exp"])))
	require.False(t, g.HasEdge(graph.Vertex(ids["exp"]), graph.Vertex(ids["let"])))
}

func TestNodeGraphSkipsDeletedNodes(t *testing.T) {
	tree, ids := letTree()
	tree.DeleteNode(ids["exp"])
	g := GenNodeGraph(tree)

	require.False(t, g.HasVertex(graph.Vertex(ids["exp"])))
	require.False(t, g.HasEdge(graph.Vertex(ids["let"]), graph.Vertex(ids["exp"])))
}

func TestDependenciesSkipDeletedNodes(t *testing.T) {
	tree, ids := letTree()
	tree.DeleteNode(ids["exp"])
	dg := GenTypeDependencies(GenNodeGraph(tree), tree)

	require.False(t, dg.Graph.HasVertex(graph.Vertex(ids["exp"])))
	require.False(t, dg.Graph.HasEdge(graph.Vertex(ids["exp"]), graph.Vertex(ids["type"])))
	require.True(t, dg.Graph.HasEdge(graph.Vertex(ids["id"]), graph.Vertex(ids["type"])))
	require.Equal(t, 1, dg.Graph.EdgeCount())
	for e := range dg.Graph.Edges() {
		require.True(t, dg.Graph.HasVertex(e.From), "edge %v", e)
		require.True(t, dg.Graph.HasVertex(e.To), "edge %v", e)
	}
}

func TestScopeGraph(t *testing.T) {
	tree, ids := letTree()
	sg := GenScopeGraph(tree)

	require.Equal(t, 3, sg.Graph.VertexCount())
	require.Equal(t, 2, sg.Graph.EdgeCount())
	require.True(t, sg.Graph.HasEdge(1, 0))
	require.True(t, sg.Graph.HasEdge(2, 1))

	scope := func(id ir.NodeId) graph.Vertex {
		s, ok := sg.ScopeOf(id)
		require.True(t, ok, "node %d has no scope", id)
		return s
	}
	require.Equal(t, graph.Vertex(0), scope(flattree.RootID))
	require.Equal(t, graph.Vertex(1), scope(ids["fn"]))
	require.Equal(t, graph.Vertex(2), scope(ids["seq"]))
	for _, name := range []string{"let", "id", "type", "exp"} {
		require.Equal(t, graph.Vertex(2), scope(ids[name]), name)
	}

	owner, ok := sg.Owners.Get(1)
	require.True(t, ok)
	require.Equal(t, ids["fn"], owner)
}

func TestScopeGraphFromSource(t *testing.T) {
	tree := lowerSource(t, `let main : ui8 -> ui8 = \x => { let y : ui8 = x; y };`)
	sg := GenScopeGraph(tree)

	// file, main, block
	require.Equal(t, 3, sg.Graph.VertexCount())
	for id := range tree.All() {
		_, ok := sg.ScopeOf(id)
		require.True(t, ok, "node %d has no scope", id)
	}
}

func TestDependenciesOfLet(t *testing.T) {
	tree, ids := letTree()
	dg := GenTypeDependencies(GenNodeGraph(tree), tree)

	require.Equal(t, tree.LiveCount(), dg.Graph.VertexCount())
	require.Equal(t, 2, dg.Graph.EdgeCount())

	kind, ok := dg.Kind(graph.Vertex(ids["exp"]), graph.Vertex(ids["type"]))
	require.True(t, ok)
	require.Equal(t, Equal, kind)

	kind, ok = dg.Kind(graph.Vertex(ids["id"]), graph.Vertex(ids["type"]))
	require.True(t, ok)
	require.Equal(t, Equal, kind)
}

func TestDependenciesOfArraysAndApplication(t *testing.T) {
	tree := flattree.NewWithRoot[ir.Node](&ir.File{})
	arr := tree.NewNode(&ir.Array{}, flattree.RootID)
	a := tree.NewNode(&ir.Number{Value: 1}, arr)
	b := tree.NewNode(&ir.Number{Value: 2}, arr)
	tree.SetNodeValue(arr, &ir.Array{Elements: []ir.NodeId{a, b}})

	at := tree.NewNode(&ir.ArrayType{}, flattree.RootID)
	elem := tree.NewNode(&ir.IdentifierType{Name: "ui8"}, at)
	tree.SetNodeValue(at, &ir.ArrayType{ValueType: elem, Length: 2})

	app := tree.NewNode(&ir.Apply{}, flattree.RootID)
	fn := tree.NewNode(&ir.Identifier{Name: "f"}, app)
	arg := tree.NewNode(&ir.Number{Value: 0}, app)
	tree.SetNodeValue(app, &ir.Apply{Fn: fn, Param: arg})

	idx := tree.NewNode(&ir.BinOp{}, flattree.RootID)
	lhs := tree.NewNode(&ir.Identifier{Name: "xs"}, idx)
	rhs := tree.NewNode(&ir.Number{Value: 0}, idx)
	tree.SetNodeValue(idx, &ir.BinOp{LHS: lhs, RHS: rhs, Op: ast.ArrIndex})

	dg := GenTypeDependencies(GenNodeGraph(tree), tree)

	check := func(from, to ir.NodeId, want DependencyKind) {
		t.Helper()
		kind, ok := dg.Kind(graph.Vertex(from), graph.Vertex(to))
		require.True(t, ok, "edge %d -> %d", from, to)
		require.Equal(t, want, kind)
	}
	check(a, arr, In)
	check(b, arr, In)
	check(at, elem, In)
	check(app, fn, Equal)

	require.True(t, dg.Graph.HasEdge(graph.Vertex(rhs), graph.Vertex(lhs)))
	require.False(t, dg.Graph.HasEdge(graph.Vertex(lhs), graph.Vertex(rhs)))
	_, tagged := dg.Kind(graph.Vertex(rhs), graph.Vertex(lhs))
	require.False(t, tagged)
}

func TestDependenciesOfArithmetic(t *testing.T) {
	tree := lowerSource(t, `let main : ui8 -> ui8 = \x => x + 1;`)
	dg := GenTypeDependencies(GenNodeGraph(tree), tree)

	var op *ir.BinOp
	for _, n := range tree.All() {
		if b, ok := n.(*ir.BinOp); ok {
			op = b
		}
	}
	require.NotNil(t, op)
	for _, e := range []graph.Edge{
		{From: graph.Vertex(op.LHS), To: graph.Vertex(op.RHS)},
		{From: graph.Vertex(op.RHS), To: graph.Vertex(op.LHS)},
	} {
		kind, ok := dg.Kinds.Get(e)
		require.True(t, ok)
		require.Equal(t, Equal, kind)
	}
}

func TestDependencyKindString(t *testing.T) {
	require.Equal(t, "=", Equal.String())
	require.Equal(t, "∈", In.String())
}

func TestAnalyze(t *testing.T) {
	tree, _ := letTree()
	res, err := Analyze(context.Background(), tree, nil)
	require.NoError(t, err)
	require.Equal(t, 0, res.Types.Len())
	require.Equal(t, 3, res.Scopes.Graph.VertexCount())

	dot, err := res.DOT(config.GraphDeps)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(dot, "digraph G {\n"))
	require.Contains(t, dot, `"6 Number 3" -> "5 IdentifierType ui8" [ label="=" ];`)

	dot, err = res.DOT(config.GraphScopes)
	require.NoError(t, err)
	require.Contains(t, dot, `"1 scope of Function main" -> "0 scope of File" [ label="" ];`)

	_, err = res.DOT("callgraph")
	require.Error(t, err)
}

func TestAnalyzeReportsBrokenTree(t *testing.T) {
	tree := flattree.NewWithRoot[ir.Node](&ir.Function{Name: "main"})
	_, err := Analyze(context.Background(), tree, nil)
	require.Error(t, err)
}

func TestProcessorEmitsGraphs(t *testing.T) {
	tree, _ := letTree()
	dir := t.TempDir()

	ctx := pipeline.NewPipelineContext("hello.gale", "")
	ctx.Tree = tree
	ctx.Project.Emit = []string{config.GraphScopes, config.GraphDeps}
	ctx.Project.OutDir = dir

	ctx = (&AnalysisProcessor{}).Process(ctx)
	require.False(t, ctx.Failed(), "%v", ctx.Errors)
	require.IsType(t, &Result{}, ctx.Analysis)

	for _, kind := range ctx.Project.Emit {
		data, err := os.ReadFile(filepath.Join(dir, "hello."+kind+".dot"))
		require.NoError(t, err)
		require.Contains(t, string(data), "digraph G {")
	}
}
