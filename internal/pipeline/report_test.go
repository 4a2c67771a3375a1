package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportSummary(t *testing.T) {
	g := New("summary", "")
	require.NoError(t, g.AddStartNode(NewNode("ok", emit(map[string]any{"x": 1}))))
	require.NoError(t, g.AddStartNode(NewNode("bad", Func(func(ctx context.Context, args map[string]any) (any, error) {
		return nil, errors.New("kaput")
	}))))
	require.NoError(t, g.AddNode(NewNode("untouched", noopBody())))
	require.NoError(t, g.Connect("bad", "untouched"))

	report := NewRunner(g, ContinueOnError()).Run(context.Background(), nil)
	out := report.Summary()

	assert.Contains(t, out, "Pipeline: summary")
	assert.Contains(t, out, "Status: failed")
	assert.Contains(t, out, "✓ ok: succeeded")
	assert.Contains(t, out, "✗ bad: failed")
	assert.Contains(t, out, "Error: ")
	assert.Contains(t, out, "kaput")
}

func TestReportNodeOutputs(t *testing.T) {
	g := New("outputs", "")
	require.NoError(t, g.AddStartNode(NewNode("a", emit(map[string]any{"rows": 100}))))

	report := NewRunner(g).Run(context.Background(), nil)

	assert.Equal(t, map[string]any{"rows": 100}, report.Nodes["a"].Output)
	assert.Equal(t, map[string]any{"rows": 100}, report.FinalContext)
}
