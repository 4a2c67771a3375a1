package shell

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpipe/taskpipe/internal/registry"
)

func TestShellCapturesStdout(t *testing.T) {
	reg := registry.New()
	(&Module{}).Register(reg)
	body, ok := reg.Lookup("shell")
	require.True(t, ok)

	out, err := body.Call(context.Background(), map[string]any{"command": "echo hello", "dir": ""})
	require.NoError(t, err)

	result, ok := out.(*Output)
	require.True(t, ok)
	assert.Equal(t, "hello\n", result.Stdout)
	assert.Equal(t, 0, result.ExitCode)
}

func TestShellFailureIncludesStderr(t *testing.T) {
	reg := registry.New()
	(&Module{}).Register(reg)
	body, _ := reg.Lookup("shell")

	_, err := body.Call(context.Background(), map[string]any{"command": "echo oops >&2; exit 3", "dir": ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oops")
}
