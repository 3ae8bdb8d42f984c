package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Render(t *testing.T) {
	engine := New()

	t.Run("plain variables", func(t *testing.T) {
		out, err := engine.Render("t", "env={{ .environment }} debug={{ .debug }}", map[string]any{
			"environment": "dev",
			"debug":       false,
		})
		require.NoError(t, err)
		assert.Equal(t, "env=dev debug=false", out)
	})

	t.Run("sprig functions", func(t *testing.T) {
		out, err := engine.Render("t", `{{ .environment | upper }}-{{ .namespace | default "tests" }}`, map[string]any{
			"environment": "dev",
			"namespace":   "",
		})
		require.NoError(t, err)
		assert.Equal(t, "DEV-tests", out)
	})

	t.Run("missing variable", func(t *testing.T) {
		_, err := engine.Render("t", "{{ .missing }}", map[string]any{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to render template t")
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := engine.Render("broken", "{{ .environment ", map[string]any{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse template broken")
	})
}

func TestEngine_Replace(t *testing.T) {
	engine := New()
	context := map[string]any{"environment": "dev"}

	out, err := engine.Replace(map[string]any{
		"name":  "app-{{ .environment }}",
		"plain": "unchanged",
		"port":  8080,
		"list":  []any{"{{ .environment | title }}", true},
	}, context)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name":  "app-dev",
		"plain": "unchanged",
		"port":  8080,
		"list":  []any{"Dev", true},
	}, out)

	_, err = engine.Replace(map[string]any{"nested": []any{"{{ .missing }}"}}, context)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error in key 'nested'")
	assert.Contains(t, err.Error(), "error at index 0")
}

func TestMergeContexts(t *testing.T) {
	merged := MergeContexts(
		map[string]any{"a": 1, "b": 1},
		nil,
		map[string]any{"b": 2, "c": 3},
	)
	assert.Equal(t, map[string]any{"a": 1, "b": 2, "c": 3}, merged)
}
