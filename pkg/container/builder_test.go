package container

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExtension struct {
	alias    string
	received [][]map[string]any
	load     func(configs []map[string]any, b *Builder) error
}

func (e *recordingExtension) Alias() string {
	return e.alias
}

func (e *recordingExtension) Load(configs []map[string]any, b *Builder) error {
	e.received = append(e.received, configs)
	if e.load != nil {
		return e.load(configs, b)
	}
	return nil
}

func constant(v any) Factory {
	return func(Resolver) (any, error) { return v, nil }
}

func TestBuilder_RegisterIsPrivateByDefault(t *testing.T) {
	b := NewBuilder()
	def := b.Register("mailer", constant("mailer"))

	assert.False(t, def.IsPublic())
	assert.True(t, b.HasDefinition("mailer"))
	assert.Same(t, def, b.Definition("mailer"))
	assert.Nil(t, b.Definition("unknown"))
}

func TestBuilder_AliasAndDefinitionReplaceEachOther(t *testing.T) {
	b := NewBuilder()
	b.Register("logger", constant("logger"))
	b.Register("app.logger", constant("old"))

	b.SetAlias("app.logger", "logger")

	assert.False(t, b.HasDefinition("app.logger"))
	require.True(t, b.HasAlias("app.logger"))
	assert.Equal(t, "logger", b.Alias("app.logger").Target())

	b.Register("app.logger", constant("new"))
	assert.False(t, b.HasAlias("app.logger"))
}

func TestBuilder_FindTaggedServiceIDs(t *testing.T) {
	b := NewBuilder()
	b.Register("b.listener", constant(1)).AddTag("listener")
	b.Register("a.listener", constant(2)).AddTag("listener").AddTag("listener")
	b.Register("other", constant(3))

	assert.Equal(t, []string{"a.listener", "b.listener"}, b.FindTaggedServiceIDs("listener"))
	assert.Equal(t, []string{"listener"}, b.Definition("a.listener").Tags())
	assert.Equal(t, []string{"a.listener", "b.listener", "other"}, b.DefinitionIDs())
}

func TestBuilder_RegisterExtension(t *testing.T) {
	b := NewBuilder()

	require.NoError(t, b.RegisterExtension(&recordingExtension{alias: "foo"}))
	assert.True(t, b.HasExtension("foo"))

	err := b.RegisterExtension(&recordingExtension{alias: "foo"})
	assert.EqualError(t, err, `extension "foo" already registered`)

	err = b.RegisterExtension(&recordingExtension{alias: ""})
	assert.Error(t, err)
}

func TestBuilder_CompileLoadsEveryExtension(t *testing.T) {
	foo := &recordingExtension{alias: "foo"}
	bar := &recordingExtension{alias: "bar"}

	b := NewBuilder()
	require.NoError(t, b.RegisterExtension(foo))
	require.NoError(t, b.RegisterExtension(bar))
	b.LoadFromExtension("foo", map[string]any{"enabled": true})
	b.LoadFromExtension("foo", map[string]any{"enabled": false})

	_, err := b.Compile()
	require.NoError(t, err)

	require.Len(t, foo.received, 1)
	assert.Equal(t, []map[string]any{{"enabled": true}, {"enabled": false}}, foo.received[0])
	require.Len(t, bar.received, 1)
	assert.Empty(t, bar.received[0])
	assert.NotNil(t, bar.received[0])
}

func TestBuilder_CompileRejectsUnknownExtension(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.RegisterExtension(&recordingExtension{alias: "foo"}))
	b.LoadFromExtension("baz", map[string]any{})

	_, err := b.Compile()

	require.Error(t, err)
	assert.True(t, IsExtensionNotFound(err))
	assert.Contains(t, err.Error(), `"baz"`)
	assert.Contains(t, err.Error(), "[foo]")
}

func TestBuilder_CompilePropagatesExtensionErrors(t *testing.T) {
	boom := errors.New("boom")
	b := NewBuilder()
	require.NoError(t, b.RegisterExtension(&recordingExtension{
		alias: "foo",
		load:  func([]map[string]any, *Builder) error { return boom },
	}))

	_, err := b.Compile()

	assert.ErrorIs(t, err, boom)
}

func TestBuilder_CompilerPassesRunInOrderAfterExtensions(t *testing.T) {
	var calls []string

	b := NewBuilder()
	require.NoError(t, b.RegisterExtension(&recordingExtension{
		alias: "foo",
		load: func(_ []map[string]any, b *Builder) error {
			calls = append(calls, "extension")
			b.Register("foo", constant("foo"))
			return nil
		},
	}))
	b.AddCompilerPass(CompilerPassFunc(func(b *Builder) error {
		calls = append(calls, "first")
		if b.HasDefinition("foo") {
			b.Definition("foo").SetPublic(true)
		}
		return nil
	}))
	b.AddCompilerPass(CompilerPassFunc(func(*Builder) error {
		calls = append(calls, "second")
		return nil
	}))

	c, err := b.Compile()
	require.NoError(t, err)

	assert.Equal(t, []string{"extension", "first", "second"}, calls)
	assert.True(t, c.Has("foo"))
}

func TestBuilder_CompileValidatesReferences(t *testing.T) {
	t.Run("missing reference", func(t *testing.T) {
		b := NewBuilder()
		b.Register("mailer", constant("mailer")).AddReference("transport")

		_, err := b.Compile()

		assert.EqualError(t, err, `service "mailer" references non-existent service "transport"`)
	})

	t.Run("alias to missing service", func(t *testing.T) {
		b := NewBuilder()
		b.SetAlias("app.mailer", "mailer")

		_, err := b.Compile()

		assert.EqualError(t, err, `service "app.mailer" references non-existent service "mailer"`)
	})

	t.Run("circular reference", func(t *testing.T) {
		b := NewBuilder()
		b.Register("a", constant("a")).AddReference("b")
		b.Register("b", constant("b")).AddReference("a")

		_, err := b.Compile()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "circular reference detected")
	})
}
