package analysis

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/galelang/gale/internal/config"
	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/graph"
	"github.com/galelang/gale/internal/ir"
	"github.com/galelang/gale/internal/logger"
	"github.com/galelang/gale/internal/typesystem"
)

// Result holds every graph built over one arena.
type Result struct {
	Tree         *ir.Tree
	Nodes        *graph.Graph
	Scopes       *ScopeGraph
	Dependencies *DependencyGraph

	// Types is what the solver resolved, keyed by node id.
	Types *graph.VertexProperty[typesystem.Type]
}

// Analyze builds the node graph, then the scope and dependency graphs
// concurrently, then runs solver over the dependencies. A nil solver means
// UnsolvedSolver. Progress is logged at debug level to the logger in ctx.
func Analyze(ctx context.Context, tree *ir.Tree, solver Solver) (res *Result, err error) {
	defer diagnostics.CatchInvariant(&err)
	if solver == nil {
		solver = UnsolvedSolver{}
	}

	res = &Result{Tree: tree, Nodes: GenNodeGraph(tree)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer diagnostics.CatchInvariant(&err)
		res.Scopes = GenScopeGraph(tree)
		return gctx.Err()
	})
	g.Go(func() (err error) {
		defer diagnostics.CatchInvariant(&err)
		res.Dependencies = GenTypeDependencies(res.Nodes, tree)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Types, err = solver.Solve(res.Dependencies)
	if err != nil {
		return nil, errors.Wrap(err, "solving type dependencies")
	}
	logger.FromContext(ctx).Debug("Type dependencies solved",
		zap.Int("vertices", res.Dependencies.Graph.VertexCount()),
		zap.Int("resolved", res.Types.Len()),
	)
	return res, nil
}

// Graph returns the graph of the given kind (config.GraphNodes, GraphScopes
// or GraphDeps).
func (r *Result) Graph(kind string) (*graph.Graph, error) {
	switch kind {
	case config.GraphNodes:
		return r.Nodes, nil
	case config.GraphScopes:
		return r.Scopes.Graph, nil
	case config.GraphDeps:
		return r.Dependencies.Graph, nil
	}
	return nil, errors.Errorf("unknown graph kind %q", kind)
}

// DOT renders the graph of the given kind. Node and dependency vertices are
// labelled with the node they stand for, scope vertices with the node that
// opened them. Dependency edges carry their kind.
func (r *Result) DOT(kind string) (string, error) {
	g, err := r.Graph(kind)
	if err != nil {
		return "", err
	}
	switch kind {
	case config.GraphScopes:
		return graph.DOT(g, r.scopeLabel, nil), nil
	case config.GraphDeps:
		return graph.DOT(g, r.nodeLabel, r.dependencyLabel), nil
	}
	return graph.DOT(g, r.nodeLabel, nil), nil
}

func (r *Result) nodeLabel(v graph.Vertex) string {
	n, ok := r.Tree.NodeValue(ir.NodeId(v))
	if !ok {
		return "<dead>"
	}
	return ir.Label(n)
}

func (r *Result) scopeLabel(v graph.Vertex) string {
	owner, ok := r.Scopes.Owners.Get(v)
	if !ok {
		return "scope"
	}
	return "scope of " + r.nodeLabel(graph.Vertex(owner))
}

func (r *Result) dependencyLabel(e graph.Edge) string {
	kind, ok := r.Dependencies.Kinds.Get(e)
	if !ok {
		return ""
	}
	return kind.String()
}
