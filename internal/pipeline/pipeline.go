package pipeline

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Processor is one stage of the compiler pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. It stops after the first stage that records an error.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	log := ctx.Log()
	for _, processor := range p.processors {
		stage := stageName(processor)
		start := time.Now()
		log.Debug("Stage started", zap.String("stage", stage))
		ctx = processor.Process(ctx)
		log.Debug("Stage finished",
			zap.String("stage", stage),
			zap.Duration("elapsed", time.Since(start)),
			zap.Int("errors", len(ctx.Errors)))
		if ctx.Failed() {
			break
		}
	}
	return ctx
}

// stageName turns *lexer.LexerProcessor into "lexer".
func stageName(p Processor) string {
	name := fmt.Sprintf("%T", p)
	name = strings.TrimPrefix(name, "*")
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name
}
