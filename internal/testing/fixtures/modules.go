package fixtures

import (
	"fmt"
	"sync/atomic"

	"bundletest/pkg/container"
	"bundletest/pkg/kernel"
	"bundletest/pkg/kerneltest"
)

const (
	// FooServiceID is registered by FooModule when enabled.
	FooServiceID = "fixtures.foo"
	// FooAliasID points to FooServiceID.
	FooAliasID = "fixtures.foo_alias"
	// BarServiceID is always registered by BarModule.
	BarServiceID = "fixtures.bar"
)

func init() {
	kerneltest.MustRegisterModule("fixtures.FooModule", func() kernel.Module { return &FooModule{} })
	kerneltest.MustRegisterModule("fixtures.BarModule", func() kernel.Module { return &BarModule{} })
}

// Foo is the service FooModule registers.
type Foo struct {
	List []string
}

// FooModule is configured through the "foo" extension:
//
//	foo:
//	  enabled: true
//	  list: [a, b]
type FooModule struct {
	kernel.BaseModule
}

// Extension returns the "foo" extension.
func (m *FooModule) Extension() container.Extension {
	return fooExtension{}
}

const fooSchema = `
#Config: {
	enabled: bool | *false
	list: [...string] | *[]
}
`

type fooConfig struct {
	Enabled bool     `json:"enabled"`
	List    []string `json:"list"`
}

type fooExtension struct{}

func (fooExtension) Alias() string { return "foo" }

func (fooExtension) Load(configs []map[string]any, b *container.Builder) error {
	cfg, err := container.ProcessConfiguration[fooConfig](fooSchema, "#Config", configs)
	if err != nil {
		return err
	}
	if !cfg.Enabled {
		return nil
	}

	list := cfg.List
	b.Register(FooServiceID, func(container.Resolver) (any, error) {
		return &Foo{List: list}, nil
	})
	b.SetAlias(FooAliasID, FooServiceID)
	return nil
}

// Bar is the service BarModule registers.
type Bar struct {
	Environment string
}

// BarModule has no extension. It counts its boots and shutdowns.
type BarModule struct {
	kernel.BaseModule

	boots     atomic.Int32
	shutdowns atomic.Int32
}

// Build registers BarServiceID.
func (m *BarModule) Build(b *container.Builder) error {
	b.Register(BarServiceID, func(r container.Resolver) (any, error) {
		env, ok := r.Parameter("kernel.environment")
		if !ok {
			return nil, fmt.Errorf("kernel.environment is not set")
		}
		return &Bar{Environment: fmt.Sprint(env)}, nil
	})
	return nil
}

// Boot implements kernel.Module.
func (m *BarModule) Boot(*container.Container) error {
	m.boots.Add(1)
	return nil
}

// Shutdown implements kernel.Module.
func (m *BarModule) Shutdown() error {
	m.shutdowns.Add(1)
	return nil
}

// Boots returns how many times the module was booted.
func (m *BarModule) Boots() int {
	return int(m.boots.Load())
}

// Shutdowns returns how many times the module was shut down.
func (m *BarModule) Shutdowns() int {
	return int(m.shutdowns.Load())
}
