package lowerer

import (
	"go.uber.org/zap"

	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/pipeline"
)

type LowererProcessor struct{}

func (lp *LowererProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() || ctx.AstRoot == nil {
		return ctx
	}
	tree, err := Lower(ctx.AstRoot)
	if err != nil {
		ctx.AddError(diagnostics.FromError(err, diagnostics.ErrL001))
		return ctx
	}
	ctx.Tree = tree
	ctx.Log().Debug("Lowered", zap.Int("nodes", tree.Len()))
	return ctx
}
