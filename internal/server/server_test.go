package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpipe/taskpipe/internal/pipeline"
	"github.com/taskpipe/taskpipe/internal/registry"
	"github.com/taskpipe/taskpipe/internal/store/memory"
)

func testApp() *fiber.App {
	st := memory.New()
	reg := registry.New()
	reg.Register("seed", pipeline.Func(func(ctx context.Context, args map[string]any) (any, error) {
		return map[string]any{"x": 1.0}, nil
	}))
	reg.Register("double", pipeline.Func(func(ctx context.Context, args map[string]any) (any, error) {
		x := args["x"].(float64)
		return map[string]any{"doubled": x * 2}, nil
	}, pipeline.Required("x")))
	return New(st, reg)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func sampleDefinition() *pipeline.Definition {
	return &pipeline.Definition{
		PipelineName: "doubler",
		Nodes: []pipeline.NodeDef{
			{Name: "seed", Body: "seed"},
			{Name: "double", Body: "double"},
		},
		Edges:      []pipeline.EdgeDef{{From: "seed", To: "double"}},
		StartNodes: []string{"seed"},
	}
}

func TestPipelineCRUD(t *testing.T) {
	app := testApp()

	resp := doJSON(t, app, "POST", "/pipelines", sampleDefinition())
	assert.Equal(t, 201, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/pipelines/doubler", nil)
	require.Equal(t, 200, resp.StatusCode)
	var def pipeline.Definition
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&def))
	assert.Equal(t, "doubler", def.PipelineName)
	assert.Len(t, def.Nodes, 2)

	resp = doJSON(t, app, "GET", "/pipelines", nil)
	require.Equal(t, 200, resp.StatusCode)
	var names []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&names))
	assert.Equal(t, []string{"doubler"}, names)

	resp = doJSON(t, app, "DELETE", "/pipelines/doubler", nil)
	assert.Equal(t, 204, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/pipelines/doubler", nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestPipelineValidation(t *testing.T) {
	app := testApp()

	resp := doJSON(t, app, "POST", "/pipelines", &pipeline.Definition{})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestRunStoredPipeline(t *testing.T) {
	app := testApp()

	resp := doJSON(t, app, "POST", "/pipelines", sampleDefinition())
	require.Equal(t, 201, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/pipelines/doubler/run", nil)
	require.Equal(t, 201, resp.StatusCode)

	var result struct {
		ID     string          `json:"id"`
		Report pipeline.Report `json:"report"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, pipeline.StatusSucceeded, result.Report.Status)
	assert.Equal(t, 2.0, result.Report.FinalContext["doubled"])

	resp = doJSON(t, app, "GET", "/runs/"+result.ID, nil)
	assert.Equal(t, 200, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/pipelines/doubler/runs", nil)
	require.Equal(t, 200, resp.StatusCode)
}

func TestRunWithInitialContext(t *testing.T) {
	app := testApp()

	def := &pipeline.Definition{
		PipelineName: "seeded",
		Nodes:        []pipeline.NodeDef{{Name: "double", Body: "double"}},
		StartNodes:   []string{"double"},
	}
	resp := doJSON(t, app, "POST", "/pipelines", def)
	require.Equal(t, 201, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/pipelines/seeded/run", map[string]any{"x": 21.0})
	require.Equal(t, 201, resp.StatusCode)

	var result struct {
		Report pipeline.Report `json:"report"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, pipeline.StatusSucceeded, result.Report.Status)
	assert.Equal(t, 42.0, result.Report.FinalContext["doubled"])
}

func TestRunUnresolvableBody(t *testing.T) {
	app := testApp()

	def := sampleDefinition()
	def.PipelineName = "ghostly"
	def.Nodes[0].Body = "ghost"

	resp := doJSON(t, app, "POST", "/pipelines", def)
	require.Equal(t, 201, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/pipelines/ghostly/run", nil)
	assert.Equal(t, 422, resp.StatusCode)
}

func TestRunUnknownPipeline(t *testing.T) {
	app := testApp()
	resp := doJSON(t, app, "POST", "/pipelines/missing/run", nil)
	assert.Equal(t, 404, resp.StatusCode)
}
