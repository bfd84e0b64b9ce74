package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/galelang/gale/internal/analysis"
	"github.com/galelang/gale/internal/ast"
	"github.com/galelang/gale/internal/bundle"
	"github.com/galelang/gale/internal/config"
	"github.com/galelang/gale/internal/evaluator"
	"github.com/galelang/gale/internal/pipeline"
	"github.com/galelang/gale/internal/prettyprinter"
)

func newRunCommand(g *globalFlags) *cobra.Command {
	var emit []string
	cmd := &cobra.Command{
		Use:   "run <file|dir|bundle>",
		Short: "Check, lower and interpret a program, or run a built bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stages, err := g.runContext(cmd, args[0])
			if err != nil {
				return err
			}
			if len(emit) > 0 {
				ctx.Project.Emit = emit
			}
			ctx, err = runStages(cmd, ctx, stages)
			if err != nil {
				return err
			}
			result := ctx.Result.(evaluator.Value)
			fmt.Fprintf(cmd.OutOrStdout(), "Exit value: %s\n", result.Inspect())
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&emit, "emit", nil, "Graph kinds to write as DOT files (nodes, scopes, deps).")
	return cmd
}

// runContext loads a source file or a bundle and returns the stages that
// take it to a result.
func (g *globalFlags) runContext(cmd *cobra.Command, path string) (*pipeline.PipelineContext, []pipeline.Processor, error) {
	isBundle := strings.HasSuffix(path, config.BundleFileExt)
	if !isBundle {
		if data, err := os.ReadFile(path); err == nil && bundle.IsBundle(data) {
			isBundle = true
		}
	}
	if !isBundle {
		ctx, err := g.newContext(cmd, path)
		if err != nil {
			return nil, nil, err
		}
		return ctx, append(throughAnalysis(), &evaluator.EvaluatorProcessor{}), nil
	}

	path, project, err := resolveInput(path)
	if err != nil {
		return nil, nil, err
	}
	b, err := bundle.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	ctx, err := g.contextFor(cmd, path, "", project)
	if err != nil {
		return nil, nil, err
	}
	ctx.Tree = b.Tree
	return ctx, []pipeline.Processor{&analysis.AnalysisProcessor{}, &evaluator.EvaluatorProcessor{}}, nil
}

func newCheckCommand(g *globalFlags) *cobra.Command {
	var showTypes bool
	cmd := &cobra.Command{
		Use:   "check <file|dir>",
		Short: "Parse and type check a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := g.newContext(cmd, args[0])
			if err != nil {
				return err
			}
			if ctx, err = runStages(cmd, ctx, frontend()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if showTypes && ctx.TypeMap != nil {
				for _, stmt := range ctx.AstRoot.Statements {
					if let, ok := stmt.(*ast.Let); ok {
						fmt.Fprintf(out, "%s : %s\n", let.ID.Name, ctx.TypeMap[let.Exp])
					}
				}
			}
			fmt.Fprintf(out, "%s: ok\n", ctx.FilePath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showTypes, "types", false, "Print the type of every top-level binding.")
	return cmd
}

func newGraphCommand(g *globalFlags) *cobra.Command {
	var kind, output string
	cmd := &cobra.Command{
		Use:   "graph <file|dir>",
		Short: "Print the node, scope or type dependency graph in DOT format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch kind {
			case config.GraphNodes, config.GraphScopes, config.GraphDeps:
			default:
				return errors.Errorf("unknown graph kind %q", kind)
			}
			ctx, err := g.newContext(cmd, args[0])
			if err != nil {
				return err
			}
			if ctx, err = runStages(cmd, ctx, throughAnalysis()); err != nil {
				return err
			}
			dot, err := ctx.Analysis.(*analysis.Result).DOT(kind)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, dot)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", config.GraphDeps, "Graph to print (nodes, scopes, deps).")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout.")
	return cmd
}

func newDumpCommand(g *globalFlags) *cobra.Command {
	var showAST, showIR, showCode bool
	cmd := &cobra.Command{
		Use:   "dump <file|dir>",
		Short: "Print the surface tree (default), the source form or the lowered arena",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := 0
			for _, on := range []bool{showAST, showIR, showCode} {
				if on {
					selected++
				}
			}
			if selected > 1 {
				return errors.New("only one of --ast, --ir or --code may be given")
			}
			ctx, err := g.newContext(cmd, args[0])
			if err != nil {
				return err
			}
			stages := frontend()
			if showIR {
				stages = throughLowering()
			}
			if ctx, err = runStages(cmd, ctx, stages); err != nil {
				return err
			}
			switch {
			case showIR:
				return writeOutput(cmd, "", prettyprinter.IRTree(ctx.Tree))
			case showCode:
				return writeOutput(cmd, "", prettyprinter.Code(ctx.AstRoot))
			}
			return writeOutput(cmd, "", prettyprinter.ASTTree(ctx.AstRoot))
		},
	}
	cmd.Flags().BoolVar(&showAST, "ast", false, "Print the surface tree (the default).")
	cmd.Flags().BoolVar(&showIR, "ir", false, "Print the lowered arena.")
	cmd.Flags().BoolVar(&showCode, "code", false, "Print the surface tree as source.")
	return cmd
}

func newBuildCommand(g *globalFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "build <file|dir>",
		Short: "Check and lower a program into a " + config.BundleFileExt + " bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := g.newContext(cmd, args[0])
			if err != nil {
				return err
			}
			if ctx, err = runStages(cmd, ctx, throughLowering()); err != nil {
				return err
			}
			if output == "" {
				output = filepath.Join(ctx.Project.OutDir, config.ModuleName(ctx.FilePath)+config.BundleFileExt)
			}
			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return err
			}
			if err := bundle.WriteFile(output, &bundle.Bundle{SourceFile: ctx.FilePath, Tree: ctx.Tree}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Built %s -> %s\n", ctx.FilePath, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Bundle path (default <out_dir>/<name>"+config.BundleFileExt+").")
	return cmd
}

func writeOutput(cmd *cobra.Command, path, text string) error {
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	return errors.Wrapf(os.WriteFile(path, []byte(text), 0o644), "writing %s", path)
}
