package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/taskpipe/taskpipe/internal/ctxlog"
	"github.com/taskpipe/taskpipe/internal/hclspec"
	"github.com/taskpipe/taskpipe/internal/pipeline"
)

// ErrRunFailed is returned by Run when the pipeline executed but at least
// one node failed. The CLI maps it to a non-zero exit code.
var ErrRunFailed = errors.New("pipeline run failed")

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	src, err := os.ReadFile(a.config.PipelinePath)
	if err != nil {
		return fmt.Errorf("failed to read pipeline file: %w", err)
	}

	def, err := hclspec.ParseDefinition(ctx, a.config.PipelinePath, src)
	if err != nil {
		return fmt.Errorf("failed to parse pipeline: %w", err)
	}
	a.logger.Debug("Pipeline definition parsed.", "pipeline", def.PipelineName, "node_count", len(def.Nodes))

	if a.config.ExportPath != "" {
		if err := a.exportDefinition(def); err != nil {
			return err
		}
	}

	graph, err := hclspec.Resolve(def, a.registry)
	if err != nil {
		return fmt.Errorf("failed to build pipeline graph: %w", err)
	}

	fmt.Fprintln(a.outW, graph.Visualize())
	if a.config.VisualizeOnly {
		return nil
	}

	opts := []pipeline.Option{}
	if !a.config.StopOnError {
		opts = append(opts, pipeline.ContinueOnError())
	}

	a.logger.Info("🚀 Starting pipeline execution...", "pipeline", graph.Name())
	report := pipeline.NewRunner(graph, opts...).Run(ctx, a.config.ContextValues)
	a.logger.Info("🏁 Execution finished.", "status", report.Status)

	fmt.Fprint(a.outW, report.Summary())

	if report.Status == pipeline.StatusFailed {
		return ErrRunFailed
	}
	return nil
}

// exportDefinition writes the structural JSON form of the pipeline to the
// configured path. Bodies are referenced by name only, never serialized.
func (a *App) exportDefinition(def *pipeline.Definition) error {
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode pipeline export: %w", err)
	}
	if err := os.WriteFile(a.config.ExportPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write pipeline export: %w", err)
	}
	a.logger.Info("Pipeline exported.", "path", a.config.ExportPath)
	return nil
}
