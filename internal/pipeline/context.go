package pipeline

import (
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/config"
	"github.com/galelang/gale/internal/diagnostics"
	"github.com/galelang/gale/internal/ir"
	"github.com/galelang/gale/internal/token"
	"github.com/galelang/gale/internal/typesystem"
)

// TokenStream is consumed by the parser.
type TokenStream interface {
	NextToken() token.Token
}

// PipelineContext carries the state of one compilation through every stage.
type PipelineContext struct {
	RunID      string
	FilePath   string
	SourceCode string
	Project    *config.Project
	Logger     *zap.Logger

	// Stdout receives what the print natives write.
	Stdout io.Writer

	TokenStream TokenStream
	AstRoot     *ast.File

	// TypeMap holds the type synthesized for each checked surface node.
	TypeMap map[ast.Node]typesystem.Type

	Tree *ir.Tree

	// Analysis holds the graphs built over Tree (*analysis.Result, use type assertion).
	Analysis interface{}

	// Result is the value main returned (evaluator.Value, use type assertion).
	Result interface{}

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(filePath, source string) *PipelineContext {
	return &PipelineContext{
		RunID:      uuid.NewString(),
		FilePath:   filePath,
		SourceCode: source,
		Project:    config.DefaultProject(),
		Logger:     zap.NewNop(),
		Stdout:     io.Discard,
	}
}

// Log returns the context logger tagged with the run id and file.
func (ctx *PipelineContext) Log() *zap.Logger {
	l := ctx.Logger
	if l == nil {
		l = zap.NewNop()
	}
	return l.With(zap.String("run_id", ctx.RunID), zap.String("file", ctx.FilePath))
}

// Failed reports whether any stage recorded an error.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}

// AddError records err and fills in the file path when the stage did not.
func (ctx *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, err)
}

// Err returns the first recorded error, or nil.
func (ctx *PipelineContext) Err() error {
	if len(ctx.Errors) == 0 {
		return nil
	}
	return ctx.Errors[0]
}
