package analysis

import (
	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/flattree"
	"github.com/galelang/gale/internal/graph"
	"github.com/galelang/gale/internal/ir"
)

// ScopeGraph has one vertex per lexical scope and an edge from each scope to
// the scope directly enclosing it.
type ScopeGraph struct {
	Graph *graph.Graph

	// NodeScopes maps a node id (as a vertex) to the scope it belongs to.
	NodeScopes *graph.VertexProperty[graph.Vertex]

	// Owners maps a scope vertex back to the node that opened it.
	Owners *graph.VertexProperty[ir.NodeId]
}

// GenScopeGraph opens a scope for the file and for every Function and Seq.
// Every other node shares its parent's scope. Nodes are visited parents first
// so the parent's scope is always known.
func GenScopeGraph(tree *ir.Tree) *ScopeGraph {
	sg := &ScopeGraph{
		Graph:      graph.New(),
		NodeScopes: graph.NewVertexProperty[graph.Vertex](),
		Owners:     graph.NewVertexProperty[ir.NodeId](),
	}

	for id, n := range tree.PreOrder() {
		switch n.(type) {
		case *ir.File:
			scope := sg.Graph.NewVertex()
			sg.NodeScopes.Insert(graph.Vertex(id), scope)
			sg.Owners.Insert(scope, id)
		case *ir.Function, *ir.Seq:
			scope := sg.Graph.NewVertex()
			sg.Graph.NewEdge(scope, sg.parentScope(tree, id))
			sg.NodeScopes.Insert(graph.Vertex(id), scope)
			sg.Owners.Insert(scope, id)
		default:
			sg.NodeScopes.Insert(graph.Vertex(id), sg.parentScope(tree, id))
		}
	}
	return sg
}

func (sg *ScopeGraph) parentScope(tree *ir.Tree, id ir.NodeId) graph.Vertex {
	parent := tree.Parent(id)
	if id == flattree.RootID {
		diagnostics.Invariantf("root node %d is not a file", id)
	}
	scope, ok := sg.NodeScopes.Get(graph.Vertex(parent))
	if !ok {
		diagnostics.Invariantf("parent %d of node %d has no scope yet", parent, id)
	}
	return scope
}

// ScopeOf returns the scope a node belongs to.
func (sg *ScopeGraph) ScopeOf(id ir.NodeId) (graph.Vertex, bool) {
	return sg.NodeScopes.Get(graph.Vertex(id))
}
