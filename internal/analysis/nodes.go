// Package analysis derives graphs from a lowered arena: the node graph
// mirroring parent/child structure, the scope graph and the type dependency
// graph. Builders only read the arena.
package analysis

import (
	"github.com/galelang/gale/internal/graph"
	"github.com/galelang/gale/internal/ir"
)

// GenNodeGraph returns a graph with one vertex per live node, numbered by
// node id, and an edge from every node to each of its children.
func GenNodeGraph(tree *ir.Tree) *graph.Graph {
	g := graph.New()
	for id := range tree.All() {
		g.MakeVertex(graph.Vertex(id))
		for _, child := range tree.Children(id) {
			g.NewEdge(graph.Vertex(id), graph.Vertex(child))
		}
	}
	return g
}
