package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportFixture(t *testing.T) *Graph {
	t.Helper()
	g := New("gait", "full gait analysis")
	require.NoError(t, g.AddStartNode(
		NewNode("load", noopBody()).
			WithDescription("load trial data").
			WithInputs(map[string]any{"filepath": "/data/trial.c3d"}),
	))
	require.NoError(t, g.AddNode(NewNode("scale", noopBody()).WithDescription("scale model")))
	require.NoError(t, g.AddNode(NewNode("report", noopBody())))
	require.NoError(t, g.Connect("load", "scale"))
	require.NoError(t, g.Connect("scale", "report"))
	return g
}

func TestExportRoundTrip(t *testing.T) {
	g := exportFixture(t)

	data, err := g.ExportJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "body", "bodies are not data and must not be serialized")

	def, err := ParseDefinition(data)
	require.NoError(t, err)

	assert.Equal(t, "gait", def.PipelineName)
	assert.Equal(t, "full gait analysis", def.Description)
	assert.Equal(t, []string{"load"}, def.StartNodes)
	assert.Equal(t, []EdgeDef{{From: "load", To: "scale"}, {From: "scale", To: "report"}}, def.Edges)

	require.Len(t, def.Nodes, 3)
	assert.Equal(t, "load", def.Nodes[0].Name)
	assert.Equal(t, "load trial data", def.Nodes[0].Description)
	assert.Equal(t, map[string]any{"filepath": "/data/trial.c3d"}, def.Nodes[0].FixedInputs)
}

func TestDefinitionBuildRequiresBodies(t *testing.T) {
	def := exportFixture(t).Export()

	t.Run("missing body fails", func(t *testing.T) {
		_, err := def.Build(map[string]Body{"load": noopBody()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"scale"`)
	})

	t.Run("complete bodies rebuild an executable graph", func(t *testing.T) {
		bodies := map[string]Body{
			"load":   emit(map[string]any{"x": 1}),
			"scale":  noopBody(),
			"report": noopBody(),
		}
		g, err := def.Build(bodies)
		require.NoError(t, err)

		assert.Equal(t, []string{"load"}, g.StartNodes())
		assert.Equal(t, []string{"scale"}, g.Successors("load"))

		report := NewRunner(g).Run(context.Background(), nil)
		assert.Equal(t, StatusSucceeded, report.Status)
		assert.Equal(t, 1, report.FinalContext["x"])
	})
}

func TestDefinitionBuildUnknownStartNode(t *testing.T) {
	def := &Definition{
		PipelineName: "broken",
		Nodes:        []NodeDef{{Name: "a"}},
		StartNodes:   []string{"ghost"},
	}

	_, err := def.Build(map[string]Body{"a": noopBody()})
	var unknown *UnknownNodeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ghost", unknown.Name)
}
