package testcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetServerVariable(t *testing.T) {
	SetServerVariable(t, "BUNDLETEST_OUTER", "outer")

	t.Run("overrides and restores", func(t *testing.T) {
		SetServerVariable(t, "BUNDLETEST_OUTER", "inner")
		SetServerVariable(t, "BUNDLETEST_INNER", "inner")

		value, ok := ServerVariable("BUNDLETEST_OUTER")
		assert.True(t, ok)
		assert.Equal(t, "inner", value)
	})

	value, ok := ServerVariable("BUNDLETEST_OUTER")
	assert.True(t, ok)
	assert.Equal(t, "outer", value)

	_, ok = ServerVariable("BUNDLETEST_INNER")
	assert.False(t, ok)
}

func TestParseAssignments(t *testing.T) {
	assert.Equal(t, map[string]string{
		"APP_ENV":   "bar",
		"APP_DEBUG": "1",
		"FOO":       "",
		"QUERY":     "a=b",
	}, ParseAssignments("APP_ENV=bar", "APP_DEBUG=1", "FOO", "QUERY=a=b"))

	assert.Empty(t, ParseAssignments())
}

func TestLookupVariable(t *testing.T) {
	const name = "BUNDLETEST_LOOKUP"
	clearVariables(t)

	t.Run("unset", func(t *testing.T) {
		_, ok := lookupVariable(name)
		assert.False(t, ok)
	})

	t.Run("server variable", func(t *testing.T) {
		ApplyGlobals(t, Globals{Server: ParseAssignments(name + "=server")})

		value, ok := lookupVariable(name)
		assert.True(t, ok)
		assert.Equal(t, "server", value)
	})

	t.Run("environment wins over server", func(t *testing.T) {
		ApplyGlobals(t, Globals{
			Env:    ParseAssignments(name + "=env"),
			Server: ParseAssignments(name + "=server"),
		})

		value, ok := lookupVariable(name)
		assert.True(t, ok)
		assert.Equal(t, "env", value)
	})

	t.Run("empty environment value is set", func(t *testing.T) {
		ApplyGlobals(t, Globals{Env: ParseAssignments(name)})

		value, ok := lookupVariable(name)
		assert.True(t, ok)
		assert.Empty(t, value)
	})
}

func TestDebugFromVariables(t *testing.T) {
	tests := []struct {
		name    string
		value   *string
		want    bool
		wantErr bool
	}{
		{name: "unset uses fallback", want: true},
		{name: "zero", value: ptr("0"), want: false},
		{name: "one", value: ptr("1"), want: true},
		{name: "true", value: ptr("true"), want: true},
		{name: "empty", value: ptr(""), want: false},
		{name: "invalid", value: ptr("maybe"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearVariables(t)
			if tt.value != nil {
				t.Setenv(EnvAppDebug, *tt.value)
			}

			got, err := debugFromVariables(true)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
