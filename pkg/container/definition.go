package container

import "slices"

// Factory constructs a service. The resolver gives access to every service of
// the container, private ones included, and to parameters.
type Factory func(r Resolver) (any, error)

// Resolver is what factories see of the container while it is constructing a
// service.
type Resolver interface {
	Get(id string) (any, error)
	Parameter(name string) (any, bool)
}

// Definition describes how to construct a service.
type Definition struct {
	factory    Factory
	references []string
	public     bool
	tags       []string
}

// NewDefinition creates a private definition for factory.
func NewDefinition(factory Factory) *Definition {
	return &Definition{factory: factory}
}

// SetPublic changes the visibility of the service.
func (d *Definition) SetPublic(public bool) *Definition {
	d.public = public
	return d
}

// IsPublic reports whether the service is visible from the compiled container.
func (d *Definition) IsPublic() bool {
	return d.public
}

// AddReference declares ids the factory resolves. Declared references are
// checked for existence and cycles at compile time.
func (d *Definition) AddReference(ids ...string) *Definition {
	d.references = append(d.references, ids...)
	return d
}

// References returns the declared references.
func (d *Definition) References() []string {
	return slices.Clone(d.references)
}

// AddTag attaches a tag to the definition.
func (d *Definition) AddTag(tag string) *Definition {
	if !slices.Contains(d.tags, tag) {
		d.tags = append(d.tags, tag)
	}
	return d
}

// Tags returns the tags attached to the definition.
func (d *Definition) Tags() []string {
	return slices.Clone(d.tags)
}

// Alias points an id to another service id.
type Alias struct {
	target string
	public bool
}

// NewAlias creates a private alias for target.
func NewAlias(target string) *Alias {
	return &Alias{target: target}
}

// Target returns the aliased service id.
func (a *Alias) Target() string {
	return a.target
}

// SetPublic changes the visibility of the alias.
func (a *Alias) SetPublic(public bool) *Alias {
	a.public = public
	return a
}

// IsPublic reports whether the alias is visible from the compiled container.
func (a *Alias) IsPublic() bool {
	return a.public
}
