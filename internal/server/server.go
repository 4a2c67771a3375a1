// Package server exposes the pipeline store and the execution engine over
// HTTP. Stored definitions are structural only; running one resolves its
// body references against the registry at request time.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/taskpipe/taskpipe/internal/hclspec"
	"github.com/taskpipe/taskpipe/internal/pipeline"
	"github.com/taskpipe/taskpipe/internal/registry"
	"github.com/taskpipe/taskpipe/internal/store"
)

// New builds the fiber application over the given store and registry.
func New(st store.Store, reg *registry.Registry) *fiber.App {
	app := fiber.New()

	// ── Schema ────────────────────────────────────────────────────────
	app.Post("/schema", func(c fiber.Ctx) error {
		if err := st.CreateSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema created"})
	})

	app.Delete("/schema", func(c fiber.Ctx) error {
		if err := st.DropSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema dropped"})
	})

	// ── Pipelines ─────────────────────────────────────────────────────
	app.Post("/pipelines", func(c fiber.Ctx) error {
		var def pipeline.Definition
		if err := c.Bind().JSON(&def); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		if def.PipelineName == "" {
			return c.Status(400).JSON(fiber.Map{"error": "pipelineName is required"})
		}
		if err := st.SavePipeline(c.Context(), &def); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(fiber.Map{"name": def.PipelineName})
	})

	app.Get("/pipelines", func(c fiber.Ctx) error {
		names, err := st.ListPipelines(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(names)
	})

	app.Get("/pipelines/:name", func(c fiber.Ctx) error {
		def, err := st.GetPipeline(c.Context(), c.Params("name"))
		if errors.Is(err, store.ErrPipelineNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "pipeline not found"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(def)
	})

	app.Delete("/pipelines/:name", func(c fiber.Ctx) error {
		err := st.DeletePipeline(c.Context(), c.Params("name"))
		if errors.Is(err, store.ErrPipelineNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "pipeline not found"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.SendStatus(204)
	})

	// ── Runs ──────────────────────────────────────────────────────────
	app.Post("/pipelines/:name/run", func(c fiber.Ctx) error {
		def, err := st.GetPipeline(c.Context(), c.Params("name"))
		if errors.Is(err, store.ErrPipelineNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "pipeline not found"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}

		g, err := hclspec.Resolve(def, reg)
		if err != nil {
			// The structure is fine but its body references cannot be
			// satisfied by this server's registry.
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}

		var initial map[string]any
		if len(c.Body()) > 0 {
			if err := c.Bind().JSON(&initial); err != nil {
				return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
			}
		}

		var opts []pipeline.Option
		if c.Query("stopOnError") == "false" {
			opts = append(opts, pipeline.ContinueOnError())
		}

		report := pipeline.NewRunner(g, opts...).Run(c.Context(), initial)

		id, err := st.SaveRun(c.Context(), &store.RunRecord{
			Pipeline: def.PipelineName,
			Report:   report,
		})
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(fiber.Map{"id": id, "report": report})
	})

	app.Get("/runs/:id", func(c fiber.Ctx) error {
		run, err := st.GetRun(c.Context(), c.Params("id"))
		if errors.Is(err, store.ErrRunNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "run not found"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(run)
	})

	app.Get("/pipelines/:name/runs", func(c fiber.Ctx) error {
		runs, err := st.ListRuns(c.Context(), c.Params("name"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(runs)
	})

	return app
}
