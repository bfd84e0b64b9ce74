package analysis

import (
	"github.com/galelang/gale/internal/graph"
	"github.com/galelang/gale/internal/typesystem"
)

// Solver resolves a type for the vertices of a dependency graph by
// propagating known types along its edges. Vertices it cannot resolve are
// left out of the result.
type Solver interface {
	Solve(deps *DependencyGraph) (*graph.VertexProperty[typesystem.Type], error)
}

// UnsolvedSolver resolves nothing. It is the default until a propagation
// algorithm exists.
type UnsolvedSolver struct{}

func (UnsolvedSolver) Solve(*DependencyGraph) (*graph.VertexProperty[typesystem.Type], error) {
	return graph.NewVertexProperty[typesystem.Type](), nil
}
