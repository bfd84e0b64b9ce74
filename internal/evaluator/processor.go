package evaluator

import (
	"go.uber.org/zap"

	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/pipeline"
)

type EvaluatorProcessor struct{}

func (ep *EvaluatorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() || ctx.Tree == nil {
		return ctx
	}
	result, err := Run(ctx.Tree, ctx.Stdout)
	if err != nil {
		ctx.AddError(diagnostics.FromError(err, diagnostics.ErrR001))
		return ctx
	}
	ctx.Result = result
	ctx.Log().Debug("Evaluated", zap.String("result", result.Inspect()))
	return ctx
}
