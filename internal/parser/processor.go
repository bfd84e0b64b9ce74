package parser

import (
	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/pipeline"
	"github.com/galelang/gale/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	if ctx.TokenStream == nil {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "parser: token stream is nil"))
		return ctx
	}

	p := New(ctx.TokenStream)
	file := p.ParseFile()
	if err := p.Err(); err != nil {
		ctx.AddError(err)
		return ctx
	}
	file.Path = ctx.FilePath
	ctx.AstRoot = file
	return ctx
}
