package container

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ServiceKind tells how an id is backed.
type ServiceKind string

const (
	KindService   ServiceKind = "service"
	KindAlias     ServiceKind = "alias"
	KindSynthetic ServiceKind = "synthetic"
)

// ServiceInfo describes one id of a compiled container.
type ServiceInfo struct {
	ID     string      `json:"id" yaml:"id"`
	Kind   ServiceKind `json:"kind" yaml:"kind"`
	Public bool        `json:"public" yaml:"public"`
	Target string      `json:"target,omitempty" yaml:"target,omitempty"`
	Tags   []string    `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Container is a compiled, read-mostly view over a Builder.
type Container struct {
	mu          sync.Mutex
	definitions map[string]*Definition
	aliases     map[string]*Alias
	parameters  map[string]any
	instances   map[string]any
	synthetic   map[string]any
	loading     map[string]bool
}

func newContainer(b *Builder) *Container {
	definitions := make(map[string]*Definition, len(b.definitions))
	for id, def := range b.definitions {
		copied := *def
		copied.references = slices.Clone(def.references)
		copied.tags = slices.Clone(def.tags)
		definitions[id] = &copied
	}
	aliases := make(map[string]*Alias, len(b.aliases))
	for id, alias := range b.aliases {
		copied := *alias
		aliases[id] = &copied
	}

	return &Container{
		definitions: definitions,
		aliases:     aliases,
		parameters:  maps.Clone(b.parameters),
		instances:   make(map[string]any),
		synthetic:   make(map[string]any),
		loading:     make(map[string]bool),
	}
}

// Has reports whether id can be fetched with Get.
func (c *Container) Has(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.visible(id)
}

// Get returns the public service id, constructing it on first use.
func (c *Container) Get(id string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.visible(id) {
		return nil, &ServiceNotFoundError{ID: id}
	}
	return c.resolve(id)
}

// Set injects a service instance under id. Ids backed by a definition or an
// alias cannot be replaced.
func (c *Container) Set(id string, service any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.definitions[id]; ok {
		return fmt.Errorf("the %q service is already defined and cannot be replaced", id)
	}
	if _, ok := c.aliases[id]; ok {
		return fmt.Errorf("the %q id is an alias and cannot be replaced", id)
	}
	c.synthetic[id] = service
	return nil
}

// Parameter returns a parameter and whether it is set.
func (c *Container) Parameter(name string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.parameters[name]
	return v, ok
}

// Initialized reports whether the service id has been constructed or set.
func (c *Container) Initialized(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if alias, ok := c.aliases[id]; ok {
		id = alias.target
	}
	_, constructed := c.instances[id]
	_, injected := c.synthetic[id]
	return constructed || injected
}

// Reset drops constructed instances and injected services. Definitions,
// aliases and parameters stay.
func (c *Container) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.instances = make(map[string]any)
	c.synthetic = make(map[string]any)
	c.loading = make(map[string]bool)
}

// PublicIDs returns every id Has answers true for, sorted.
func (c *Container) PublicIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var ids []string
	for id := range c.definitions {
		if c.visible(id) {
			ids = append(ids, id)
		}
	}
	for id := range c.aliases {
		if c.visible(id) {
			ids = append(ids, id)
		}
	}
	for id := range c.synthetic {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Describe lists every id of the container, private ones included, sorted.
func (c *Container) Describe() []ServiceInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	infos := make([]ServiceInfo, 0, len(c.definitions)+len(c.aliases)+len(c.synthetic))
	for id, def := range c.definitions {
		infos = append(infos, ServiceInfo{ID: id, Kind: KindService, Public: def.public, Tags: slices.Clone(def.tags)})
	}
	for id, alias := range c.aliases {
		infos = append(infos, ServiceInfo{ID: id, Kind: KindAlias, Public: alias.public, Target: alias.target})
	}
	for id := range c.synthetic {
		infos = append(infos, ServiceInfo{ID: id, Kind: KindSynthetic, Public: true})
	}
	slices.SortFunc(infos, func(a, b ServiceInfo) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return infos
}

func (c *Container) visible(id string) bool {
	if _, ok := c.synthetic[id]; ok {
		return true
	}
	if def, ok := c.definitions[id]; ok {
		return def.public
	}
	if alias, ok := c.aliases[id]; ok {
		return alias.public
	}
	return false
}

// resolve must be called with c.mu held. Visibility is not checked: factories
// may depend on private services.
func (c *Container) resolve(id string) (any, error) {
	if service, ok := c.synthetic[id]; ok {
		return service, nil
	}
	if alias, ok := c.aliases[id]; ok {
		return c.resolve(alias.target)
	}
	if service, ok := c.instances[id]; ok {
		return service, nil
	}

	def, ok := c.definitions[id]
	if !ok {
		return nil, &ServiceNotFoundError{ID: id}
	}
	if def.factory == nil {
		return nil, fmt.Errorf("service %q has no factory", id)
	}
	if c.loading[id] {
		return nil, fmt.Errorf("circular reference detected while constructing service %q", id)
	}

	c.loading[id] = true
	defer delete(c.loading, id)

	service, err := def.factory(resolver{c: c})
	if err != nil {
		return nil, fmt.Errorf("failed to construct service %q: %w", id, err)
	}
	c.instances[id] = service
	return service, nil
}

// resolver is handed to factories while c.mu is held by the outer Get.
type resolver struct {
	c *Container
}

func (r resolver) Get(id string) (any, error) {
	return r.c.resolve(id)
}

func (r resolver) Parameter(name string) (any, bool) {
	v, ok := r.c.parameters[name]
	return v, ok
}
