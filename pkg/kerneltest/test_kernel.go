package kerneltest

import (
	"maps"
	"slices"

	"bundletest/pkg/container"
	"bundletest/pkg/kernel"
	"bundletest/pkg/logging"
)

// TestKernelInterface is satisfied by *TestKernel and by every type
// embedding it. Builders only create kernels of this shape.
type TestKernelInterface interface {
	kernel.Kernel
	Configuration() Configuration
	isTestKernel()
}

// TestKernel is a kernel driven entirely by a Configuration: its modules,
// directories and extension configuration all come from it.
//
// Kernels customizing the boot embed *TestKernel and rebind the hooks:
//
//	type AppKernel struct{ *kerneltest.TestKernel }
//
//	func NewAppKernel(cfg kerneltest.Configuration) *AppKernel {
//		k := &AppKernel{TestKernel: kerneltest.NewTestKernel(cfg)}
//		k.Bind(k)
//		return k
//	}
type TestKernel struct {
	*kernel.Base
	configuration Configuration
}

// NewTestKernel creates an unbooted kernel for cfg.
func NewTestKernel(cfg Configuration) *TestKernel {
	k := &TestKernel{configuration: cfg}
	k.Base = kernel.NewBase(cfg.Environment(), cfg.IsDebug(), k)
	return k
}

func (k *TestKernel) isTestKernel() {}

// Configuration returns the configuration the kernel was created with.
func (k *TestKernel) Configuration() Configuration {
	return k.configuration
}

// RegisterModules returns the configured modules in insertion order.
func (k *TestKernel) RegisterModules() []kernel.Module {
	return k.configuration.Modules()
}

// CacheDir returns the configuration's cache directory.
func (k *TestKernel) CacheDir() string {
	return k.configuration.CacheDir()
}

// LogDir returns the configuration's log directory.
func (k *TestKernel) LogDir() string {
	return k.configuration.LogDir()
}

// RegisterContainerConfiguration loads every configured extension tree and
// registers the pass exposing the configured service ids.
func (k *TestKernel) RegisterContainerConfiguration(loader kernel.Loader) error {
	return loader.Load(func(b *container.Builder) error {
		configurations := k.configuration.AllModuleConfigurations()
		for _, name := range slices.Sorted(maps.Keys(configurations)) {
			b.LoadFromExtension(name, configurations[name])
		}

		b.AddCompilerPass(ExposeServicesPass{IDs: k.configuration.ExposedServiceIDs()})
		return nil
	})
}

// ExposeServicesPass makes the listed definitions and aliases public. Ids
// that are neither are skipped.
type ExposeServicesPass struct {
	IDs []string
}

// Process implements container.CompilerPass.
func (p ExposeServicesPass) Process(b *container.Builder) error {
	for _, id := range p.IDs {
		switch {
		case b.HasDefinition(id):
			b.Definition(id).SetPublic(true)
		case b.HasAlias(id):
			b.Alias(id).SetPublic(true)
		default:
			logging.Debug("KernelTest", "Not exposing unknown service %q", id)
		}
	}
	return nil
}
