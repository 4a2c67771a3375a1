package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse([]string{"pipeline.hcl"}, out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "pipeline.hcl", cfg.PipelinePath)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.StopOnError)
	assert.Empty(t, cfg.ExportPath)
	assert.False(t, cfg.VisualizeOnly)
	assert.Empty(t, cfg.ContextValues)
}

func TestParseShorthandPath(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, _, err := Parse([]string{"-p", "demo.hcl"}, out)
	require.NoError(t, err)
	assert.Equal(t, "demo.hcl", cfg.PipelinePath)
}

func TestParseContextValues(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, _, err := Parse([]string{"-set", "region=eu-west-1", "-set", "retries=3", "pipeline.hcl"}, out)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"region": "eu-west-1", "retries": "3"}, cfg.ContextValues)
}

func TestParseInvalidSetValue(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, _, err := Parse([]string{"-set", "no-equals-sign", "pipeline.hcl"}, out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseInvalidLogFormat(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, _, err := Parse([]string{"-log-format", "yaml", "pipeline.hcl"}, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log-format")
}

func TestParseNoPathPrintsUsage(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, shouldExit, err := Parse(nil, out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseStopOnErrorFlag(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, _, err := Parse([]string{"-stop-on-error=false", "pipeline.hcl"}, out)
	require.NoError(t, err)
	assert.False(t, cfg.StopOnError)
}
