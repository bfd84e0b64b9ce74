package analysis

import (
	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/graph"
	"github.com/galelang/gale/internal/ir"
)

// DependencyKind tags a type dependency edge.
type DependencyKind int

const (
	// Equal: both ends must have the same type.
	Equal DependencyKind = iota
	// In: the source is the element type of the destination.
	In
)

func (k DependencyKind) String() string {
	switch k {
	case Equal:
		return "="
	case In:
		return "∈"
	}
	return "?"
}

// DependencyGraph is a constraint graph over program points. Vertices are
// node ids; edges are type obligations between them.
type DependencyGraph struct {
	Graph *graph.Graph
	Kinds *graph.EdgeProperty[DependencyKind]
}

// GenTypeDependencies adds the type obligations implied by each node of nodes
// (a graph from GenNodeGraph) to a graph with the same vertices:
//
//	Let        exp -> type (=), id -> type (=)
//	ArrayType  self -> element type (∈)
//	Array      element -> self (∈)
//	Apply      self -> callee (=)
//	BinOp      lhs <-> rhs (=); for !! only rhs -> lhs, untagged
func GenTypeDependencies(nodes *graph.Graph, tree *ir.Tree) *DependencyGraph {
	dg := &DependencyGraph{
		Graph: graph.New(),
		Kinds: graph.NewEdgeProperty[DependencyKind](),
	}
	for v := range nodes.Vertices() {
		dg.Graph.MakeVertex(v)
	}

	for v := range nodes.Vertices() {
		n, ok := tree.NodeValue(ir.NodeId(v))
		if !ok {
			diagnostics.Invariantf("node graph vertex %d is not a live node", v)
		}
		switch n := n.(type) {
		case *ir.Let:
			dg.add(vertex(n.Exp), vertex(n.ExpType), Equal)
			dg.add(vertex(n.ID), vertex(n.ExpType), Equal)
		case *ir.ArrayType:
			dg.add(v, vertex(n.ValueType), In)
		case *ir.Array:
			for _, e := range n.Elements {
				dg.add(vertex(e), v, In)
			}
		case *ir.Apply:
			dg.add(v, vertex(n.Fn), Equal)
		case *ir.BinOp:
			if n.Op == ast.ArrIndex {
				dg.link(vertex(n.RHS), vertex(n.LHS))
				continue
			}
			dg.add(vertex(n.RHS), vertex(n.LHS), Equal)
			dg.add(vertex(n.LHS), vertex(n.RHS), Equal)
		}
	}
	return dg
}

func (dg *DependencyGraph) add(from, to graph.Vertex, kind DependencyKind) {
	if e, ok := dg.link(from, to); ok {
		dg.Kinds.Insert(e, kind)
	}
}

// link adds an untagged edge. References to deleted nodes have no vertex and
// are skipped.
func (dg *DependencyGraph) link(from, to graph.Vertex) (graph.Edge, bool) {
	if !dg.Graph.HasVertex(from) || !dg.Graph.HasVertex(to) {
		return graph.Edge{}, false
	}
	return dg.Graph.NewEdge(from, to), true
}

// Kind returns the tag of an edge. Untagged edges report false.
func (dg *DependencyGraph) Kind(from, to graph.Vertex) (DependencyKind, bool) {
	return dg.Kinds.Get(graph.Edge{From: from, To: to})
}

func vertex(id ir.NodeId) graph.Vertex {
	return graph.Vertex(id)
}
