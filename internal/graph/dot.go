package graph

import (
	"fmt"
	"io"
	"strings"
)

// DOT renders g as a graphviz digraph. Every edge becomes one line labelled
// with the vertex labels on both ends and the edge label. Edges are emitted in
// sorted order so the output is deterministic.
func DOT(g *Graph, vertexLabel func(Vertex) string, edgeLabel func(Edge) string) string {
	var sb strings.Builder
	_ = WriteDOT(&sb, g, vertexLabel, edgeLabel)
	return sb.String()
}

func WriteDOT(w io.Writer, g *Graph, vertexLabel func(Vertex) string, edgeLabel func(Edge) string) error {
	if vertexLabel == nil {
		vertexLabel = func(Vertex) string { return "" }
	}
	if edgeLabel == nil {
		edgeLabel = func(Edge) string { return "" }
	}
	if _, err := io.WriteString(w, "digraph G {\n"); err != nil {
		return err
	}
	for e := range g.Edges() {
		_, err := fmt.Fprintf(w, "  \"%d %s\" -> \"%d %s\" [ label=\"%s\" ];\n",
			e.From, escape(vertexLabel(e.From)), e.To, escape(vertexLabel(e.To)), escape(edgeLabel(e)))
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
