package container

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"bundletest/internal/dependency"
	"bundletest/pkg/logging"
)

// Extension loads a module's configuration trees into the builder.
type Extension interface {
	// Alias is the configuration key the extension answers to, e.g. "foo".
	Alias() string

	// Load receives every tree recorded for Alias, in load order. It is
	// called once per compilation, with an empty slice if nothing was
	// configured.
	Load(configs []map[string]any, b *Builder) error
}

// CompilerPass runs after extensions are loaded and before the container is
// compiled.
type CompilerPass interface {
	Process(b *Builder) error
}

// CompilerPassFunc adapts a function to the CompilerPass interface.
type CompilerPassFunc func(b *Builder) error

// Process calls f(b).
func (f CompilerPassFunc) Process(b *Builder) error {
	return f(b)
}

// Builder accumulates the container configuration.
type Builder struct {
	definitions      map[string]*Definition
	aliases          map[string]*Alias
	parameters       map[string]any
	extensions       map[string]Extension
	extensionOrder   []string
	extensionConfigs map[string][]map[string]any
	configOrder      []string
	passes           []CompilerPass
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		definitions:      make(map[string]*Definition),
		aliases:          make(map[string]*Alias),
		parameters:       make(map[string]any),
		extensions:       make(map[string]Extension),
		extensionConfigs: make(map[string][]map[string]any),
	}
}

// Register defines a private service and returns its definition for further
// configuration. An existing definition or alias with the same id is replaced.
func (b *Builder) Register(id string, factory Factory) *Definition {
	return b.SetDefinition(id, NewDefinition(factory))
}

// SetDefinition stores definition under id.
func (b *Builder) SetDefinition(id string, definition *Definition) *Definition {
	delete(b.aliases, id)
	b.definitions[id] = definition
	return definition
}

// HasDefinition reports whether id is a definition (aliases excluded).
func (b *Builder) HasDefinition(id string) bool {
	_, ok := b.definitions[id]
	return ok
}

// Definition returns the definition for id, or nil.
func (b *Builder) Definition(id string) *Definition {
	return b.definitions[id]
}

// DefinitionIDs returns the defined service ids, sorted.
func (b *Builder) DefinitionIDs() []string {
	return slices.Sorted(maps.Keys(b.definitions))
}

// FindTaggedServiceIDs returns the ids of definitions carrying tag, sorted.
func (b *Builder) FindTaggedServiceIDs(tag string) []string {
	var ids []string
	for id, def := range b.definitions {
		if slices.Contains(def.tags, tag) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// SetAlias points alias to target. An existing definition with the same id is
// replaced.
func (b *Builder) SetAlias(alias, target string) *Alias {
	delete(b.definitions, alias)
	a := NewAlias(target)
	b.aliases[alias] = a
	return a
}

// HasAlias reports whether id is an alias.
func (b *Builder) HasAlias(id string) bool {
	_, ok := b.aliases[id]
	return ok
}

// Alias returns the alias for id, or nil.
func (b *Builder) Alias(id string) *Alias {
	return b.aliases[id]
}

// SetParameter stores a parameter.
func (b *Builder) SetParameter(name string, value any) {
	b.parameters[name] = value
}

// Parameter returns a parameter and whether it is set.
func (b *Builder) Parameter(name string) (any, bool) {
	v, ok := b.parameters[name]
	return v, ok
}

// RegisterExtension makes an extension available for configuration loading.
func (b *Builder) RegisterExtension(ext Extension) error {
	alias := ext.Alias()
	if alias == "" {
		return fmt.Errorf("extension %T has an empty alias", ext)
	}
	if _, exists := b.extensions[alias]; exists {
		return fmt.Errorf("extension %q already registered", alias)
	}
	b.extensions[alias] = ext
	b.extensionOrder = append(b.extensionOrder, alias)
	return nil
}

// HasExtension reports whether an extension answers to name.
func (b *Builder) HasExtension(name string) bool {
	_, ok := b.extensions[name]
	return ok
}

// LoadFromExtension records a configuration tree for the extension answering
// to name. Unknown names are reported by Compile, so that configuration may be
// recorded before the owning module registers its extension.
func (b *Builder) LoadFromExtension(name string, config map[string]any) {
	if _, seen := b.extensionConfigs[name]; !seen {
		b.configOrder = append(b.configOrder, name)
	}
	b.extensionConfigs[name] = append(b.extensionConfigs[name], config)
}

// ExtensionConfig returns the trees recorded for name, in load order.
func (b *Builder) ExtensionConfig(name string) []map[string]any {
	return slices.Clone(b.extensionConfigs[name])
}

// AddCompilerPass appends a compiler pass.
func (b *Builder) AddCompilerPass(pass CompilerPass) {
	b.passes = append(b.passes, pass)
}

// Compile loads extensions, runs compiler passes, validates references and
// returns the compiled container.
func (b *Builder) Compile() (*Container, error) {
	for _, name := range b.configOrder {
		if _, ok := b.extensions[name]; !ok {
			return nil, &ExtensionNotFoundError{Name: name, Available: slices.Clone(b.extensionOrder)}
		}
	}

	for _, name := range b.extensionOrder {
		configs := b.ExtensionConfig(name)
		if configs == nil {
			configs = []map[string]any{}
		}
		if err := b.extensions[name].Load(configs, b); err != nil {
			return nil, fmt.Errorf("failed to load extension %q: %w", name, err)
		}
		logging.Debug("Container", "Loaded extension %s with %d configuration trees", name, len(configs))
	}

	for i, pass := range b.passes {
		if err := pass.Process(b); err != nil {
			return nil, fmt.Errorf("compiler pass %d (%T) failed: %w", i, pass, err)
		}
	}

	if err := b.validate(); err != nil {
		return nil, err
	}

	logging.Debug("Container", "Compiled container with %d definitions and %d aliases", len(b.definitions), len(b.aliases))

	return newContainer(b), nil
}

func (b *Builder) validate() error {
	graph := dependency.New()
	for id, def := range b.definitions {
		deps := make([]dependency.NodeID, 0, len(def.references))
		for _, ref := range def.references {
			deps = append(deps, dependency.NodeID(ref))
		}
		graph.AddNode(dependency.Node{ID: dependency.NodeID(id), Kind: dependency.KindDefinition, DependsOn: deps})
	}
	for id, alias := range b.aliases {
		graph.AddNode(dependency.Node{
			ID:        dependency.NodeID(id),
			Kind:      dependency.KindAlias,
			DependsOn: []dependency.NodeID{dependency.NodeID(alias.target)},
		})
	}

	missing := graph.Missing()
	if len(missing) > 0 {
		ids := make([]string, 0, len(missing))
		for id := range missing {
			ids = append(ids, string(id))
		}
		sort.Strings(ids)
		first := ids[0]
		return fmt.Errorf("service %q references non-existent service %q", first, missing[dependency.NodeID(first)][0])
	}

	if _, err := graph.Sort(); err != nil {
		return err
	}
	return nil
}
