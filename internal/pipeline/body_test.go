package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInput struct {
	Path    string  `pipe:"path"`
	Scale   float64 `pipe:"scale,optional"`
	Skipped string
	hidden  string `pipe:"hidden"`
}

func newStubInput() any {
	return &stubInput{Scale: 1.5}
}

func TestTypedParams(t *testing.T) {
	body := Typed(newStubInput, func(ctx context.Context, in *stubInput) (any, error) {
		return nil, nil
	})

	params := body.Params()
	require.Len(t, params, 2)

	assert.Equal(t, "path", params[0].Name)
	assert.False(t, params[0].HasDefault)

	assert.Equal(t, "scale", params[1].Name)
	assert.True(t, params[1].HasDefault)
	assert.Equal(t, 1.5, params[1].Default)
}

func TestTypedCall(t *testing.T) {
	t.Run("binds declared fields", func(t *testing.T) {
		var got *stubInput
		body := Typed(newStubInput, func(ctx context.Context, in *stubInput) (any, error) {
			got = in
			return nil, nil
		})

		_, err := body.Call(context.Background(), map[string]any{"path": "/data/in.c3d", "scale": 2.0})
		require.NoError(t, err)
		assert.Equal(t, "/data/in.c3d", got.Path)
		assert.Equal(t, 2.0, got.Scale)
	})

	t.Run("converts compatible types", func(t *testing.T) {
		var got *stubInput
		body := Typed(newStubInput, func(ctx context.Context, in *stubInput) (any, error) {
			got = in
			return nil, nil
		})

		// An int from the context lands in a float64 field.
		_, err := body.Call(context.Background(), map[string]any{"path": "p", "scale": 3})
		require.NoError(t, err)
		assert.Equal(t, 3.0, got.Scale)
	})

	t.Run("rejects incompatible types", func(t *testing.T) {
		body := Typed(newStubInput, func(ctx context.Context, in *stubInput) (any, error) {
			return nil, nil
		})

		_, err := body.Call(context.Background(), map[string]any{"path": []int{1}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `input "path"`)
	})
}

func TestTypedPanicsOnMalformedHandler(t *testing.T) {
	assert.Panics(t, func() {
		Typed(func() any { return "not a struct pointer" }, func(ctx context.Context, in *stubInput) (any, error) {
			return nil, nil
		})
	})

	assert.Panics(t, func() {
		Typed(newStubInput, func(in *stubInput) (any, error) { return nil, nil })
	})
}

func TestNormalizeOutput(t *testing.T) {
	t.Run("map passes through", func(t *testing.T) {
		out, ok := normalizeOutput(map[string]any{"a": 1})
		require.True(t, ok)
		assert.Equal(t, map[string]any{"a": 1}, out)
	})

	t.Run("nil means no output", func(t *testing.T) {
		out, ok := normalizeOutput(nil)
		require.True(t, ok)
		assert.Empty(t, out)
	})

	t.Run("tagged struct is flattened", func(t *testing.T) {
		type result struct {
			Rows  int    `pipe:"rows"`
			Label string `pipe:"label"`
			Raw   []byte
		}
		out, ok := normalizeOutput(&result{Rows: 100, Label: "gait"})
		require.True(t, ok)
		assert.Equal(t, map[string]any{"rows": 100, "label": "gait"}, out)
	})

	t.Run("scalar violates the contract", func(t *testing.T) {
		_, ok := normalizeOutput("just a string")
		assert.False(t, ok)
	})
}
