package kernel

import (
	"reflect"

	"bundletest/pkg/container"
)

// Module is a unit of functionality plugged into a kernel.
type Module interface {
	// Build runs before container configuration is loaded. Modules use it to
	// register compiler passes or services that do not depend on
	// configuration.
	Build(b *container.Builder) error

	// Extension returns the module's configuration loader, or nil.
	Extension() container.Extension

	// Boot runs once the container is compiled.
	Boot(c *container.Container) error

	// Shutdown runs when the kernel shuts down.
	Shutdown() error
}

// Named is implemented by modules that pick their own kernel name instead of
// the unqualified type name.
type Named interface {
	Name() string
}

// BaseModule provides no-op implementations of the Module interface for
// embedding.
type BaseModule struct{}

func (BaseModule) Build(*container.Builder) error { return nil }

func (BaseModule) Extension() container.Extension { return nil }

func (BaseModule) Boot(*container.Container) error { return nil }

func (BaseModule) Shutdown() error { return nil }

// ModuleName returns the name a kernel indexes m under: Name() when m is
// Named, the unqualified type name otherwise.
func ModuleName(m Module) string {
	if named, ok := m.(Named); ok {
		return named.Name()
	}
	return moduleType(m).Name()
}

// ModuleTypeName returns the package-qualified type name of m, e.g.
// "bundletest/internal/testing/fixtures.FooModule". It identifies the module
// class, not the instance.
func ModuleTypeName(m Module) string {
	t := moduleType(m)
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

func moduleType(m Module) reflect.Type {
	t := reflect.TypeOf(m)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
