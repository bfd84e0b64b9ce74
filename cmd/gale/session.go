package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/galelang/gale/internal/analysis"
	"github.com/galelang/gale/internal/analyzer"
	"github.com/galelang/gale/internal/config"
	"github.com/galelang/gale/internal/lexer"
	"github.com/galelang/gale/internal/logger"
	"github.com/galelang/gale/internal/lowerer"
	"github.com/galelang/gale/internal/parser"
	"github.com/galelang/gale/internal/pipeline"
)

// Stage lists for the subcommands.
func frontend() []pipeline.Processor {
	return []pipeline.Processor{
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
	}
}

func throughLowering() []pipeline.Processor {
	return append(frontend(), &lowerer.LowererProcessor{})
}

func throughAnalysis() []pipeline.Processor {
	return append(throughLowering(), &analysis.AnalysisProcessor{})
}

// resolveInput turns a directory argument into the project's entry file and
// loads the nearest gale.yaml.
func resolveInput(path string) (string, *config.Project, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, err
	}
	dir := path
	if !info.IsDir() {
		dir = filepath.Dir(path)
	}

	project := config.DefaultProject()
	projectFile, err := config.FindProject(dir)
	if err != nil {
		return "", nil, err
	}
	if projectFile != "" {
		if project, err = config.LoadProject(projectFile); err != nil {
			return "", nil, err
		}
	}

	if info.IsDir() {
		if project.Entry == "" {
			return "", nil, errors.Errorf("%s is a directory and %s names no entry", path, config.ProjectFileName)
		}
		path = filepath.Join(filepath.Dir(projectFile), project.Entry)
	}
	return path, project, nil
}

// newContext reads the source at path and prepares a pipeline context with
// the logger and project settings the flags ask for.
func (g *globalFlags) newContext(cmd *cobra.Command, path string) (*pipeline.PipelineContext, error) {
	path, project, err := resolveInput(path)
	if err != nil {
		return nil, err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading source file")
	}
	return g.contextFor(cmd, path, string(source), project)
}

func (g *globalFlags) contextFor(cmd *cobra.Command, path, source string, project *config.Project) (*pipeline.PipelineContext, error) {
	if g.noCheck {
		check := false
		project.Check = &check
	}

	format := g.v.GetString(logFormatKey)
	if format == "" {
		format = project.Log.Format
	}
	level := g.v.GetString(logLevelKey)
	if level == "" {
		level = project.Log.Level
	}
	lc, err := logger.ParseConfig(format, level)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cmd.ErrOrStderr(), lc)
	if err != nil {
		return nil, err
	}

	ctx := pipeline.NewPipelineContext(path, source)
	ctx.Project = project
	ctx.Logger = log
	ctx.Stdout = cmd.OutOrStdout()
	return ctx, nil
}

// runStages runs the pipeline and reports every recorded error to stderr.
func runStages(cmd *cobra.Command, ctx *pipeline.PipelineContext, stages []pipeline.Processor) (*pipeline.PipelineContext, error) {
	ctx = pipeline.New(stages...).Run(ctx)
	if !ctx.Failed() {
		return ctx, nil
	}
	reportErrors(cmd.ErrOrStderr(), ctx)
	return ctx, ctx.Err()
}

func reportErrors(w io.Writer, ctx *pipeline.PipelineContext) {
	fmt.Fprintln(w, "Processing failed with errors:")
	for _, err := range ctx.Errors {
		fmt.Fprintf(w, "- %s\n", err.Error())
	}
	first := ctx.Errors[0]
	ctx.Log().Error("Pipeline failed",
		zap.String("stage", first.Code.Stage()),
		zap.String("code", string(first.Code)),
		zap.Int("errors", len(ctx.Errors)),
	)
}
