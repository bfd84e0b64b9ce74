package analyzer

import (
	"go.uber.org/zap"

	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/pipeline"
)

type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() || ctx.AstRoot == nil {
		return ctx
	}
	if ctx.Project != nil && !ctx.Project.CheckEnabled() {
		ctx.Log().Debug("Type check disabled by project config")
		return ctx
	}

	a := New()
	if err := a.Analyze(ctx.AstRoot); err != nil {
		ctx.AddError(diagnostics.FromError(err, diagnostics.ErrA001))
		return ctx
	}
	ctx.TypeMap = a.TypeMap
	ctx.Log().Debug("Type check passed", zap.Int("typed_nodes", len(a.TypeMap)))
	return ctx
}
