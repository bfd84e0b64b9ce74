package analysis

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/galelang/gale/internal/config"
	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/logger"
	"github.com/galelang/gale/internal/pipeline"
)

// AnalysisProcessor builds the graphs over ctx.Tree and writes the DOT files
// the project asks for.
type AnalysisProcessor struct {
	Solver Solver
}

func (ap *AnalysisProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() || ctx.Tree == nil {
		return ctx
	}
	actx := logger.NewContextWithLogger(context.Background(), ctx.Log())
	res, err := Analyze(actx, ctx.Tree, ap.Solver)
	if err != nil {
		ctx.AddError(diagnostics.FromError(err, diagnostics.ErrI001))
		return ctx
	}
	ctx.Analysis = res
	ctx.Log().Debug("Graphs built",
		zap.Int("nodes", res.Nodes.VertexCount()),
		zap.Int("scopes", res.Scopes.Graph.VertexCount()),
		zap.Int("dependencies", res.Dependencies.Graph.EdgeCount()),
	)

	if ctx.Project == nil {
		return ctx
	}
	for _, kind := range ctx.Project.Emit {
		path, err := ap.emit(res, kind, ctx.Project.OutDir, config.ModuleName(ctx.FilePath))
		if err != nil {
			ctx.AddError(diagnostics.FromError(err, diagnostics.ErrI001))
			return ctx
		}
		ctx.Log().Info("Graph written", zap.String("kind", kind), zap.String("path", path))
	}
	return ctx
}

func (ap *AnalysisProcessor) emit(res *Result, kind, dir, module string) (string, error) {
	dot, err := res.DOT(kind)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, module+"."+kind+".dot")
	return path, os.WriteFile(path, []byte(dot), 0o644)
}
