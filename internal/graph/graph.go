// Package graph provides a directed graph over dense integer vertices with
// side tables for vertex and edge properties. Analyses build graphs on top of
// the arena tree; the graph never owns program semantics itself.
package graph

import (
	"iter"

	"github.com/RoaringBitmap/roaring"
	"github.com/google/btree"
)

type Vertex uint32

// Edge is an ordered vertex pair.
type Edge struct {
	From Vertex
	To   Vertex
}

func edgeLess(a, b Edge) bool {
	if a.From != b.From {
		return a.From < b.From
	}
	return a.To < b.To
}

type Graph struct {
	vertices   *roaring.Bitmap
	edges      *btree.BTreeG[Edge]
	nextVertex Vertex
}

func New() *Graph {
	return &Graph{
		vertices: roaring.NewBitmap(),
		edges:    btree.NewG[Edge](8, edgeLess),
	}
}

// NewVertex allocates the next unused vertex.
func (g *Graph) NewVertex() Vertex {
	v := g.nextVertex
	g.vertices.Add(uint32(v))
	g.nextVertex++
	return v
}

// MakeVertex inserts v and moves the allocator past it.
// It returns false if v already existed.
func (g *Graph) MakeVertex(v Vertex) bool {
	if v >= g.nextVertex {
		g.nextVertex = v + 1
	}
	if g.vertices.Contains(uint32(v)) {
		return false
	}
	g.vertices.Add(uint32(v))
	return true
}

func (g *Graph) HasVertex(v Vertex) bool {
	return g.vertices.Contains(uint32(v))
}

// NewEdge inserts a→b. Inserting an existing edge is a no-op.
func (g *Graph) NewEdge(a, b Vertex) Edge {
	e := Edge{From: a, To: b}
	g.edges.ReplaceOrInsert(e)
	return e
}

func (g *Graph) HasEdge(a, b Vertex) bool {
	return g.edges.Has(Edge{From: a, To: b})
}

func (g *Graph) VertexCount() int {
	return int(g.vertices.GetCardinality())
}

func (g *Graph) EdgeCount() int {
	return g.edges.Len()
}

// Vertices yields vertices in ascending order.
func (g *Graph) Vertices() iter.Seq[Vertex] {
	return func(yield func(Vertex) bool) {
		it := g.vertices.Iterator()
		for it.HasNext() {
			if !yield(Vertex(it.Next())) {
				return
			}
		}
	}
}

// Edges yields edges sorted by source, then destination.
func (g *Graph) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		g.edges.Ascend(func(e Edge) bool {
			return yield(e)
		})
	}
}

// OutEdges yields the edges leaving v.
func (g *Graph) OutEdges(v Vertex) iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		g.edges.AscendRange(Edge{From: v}, Edge{From: v + 1}, func(e Edge) bool {
			return yield(e)
		})
	}
}
