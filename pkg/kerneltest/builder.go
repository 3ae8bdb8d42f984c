package kerneltest

import (
	"context"
	"fmt"

	"bundletest/pkg/kernel"
	"bundletest/pkg/logging"
)

// Builder assembles a Configuration and creates kernels from it. Its methods
// modify the builder and return it for chaining.
type Builder struct {
	kernelClass   string
	configuration Configuration
}

// NewBuilder returns a builder for DefaultKernel with a default
// configuration in namespace.
func NewBuilder(namespace ...string) *Builder {
	return &Builder{
		kernelClass:   DefaultKernel,
		configuration: NewConfiguration(namespace...),
	}
}

// WithKernelClass selects the registered kernel name. It fails with
// ClassNotFoundError for unknown names and KernelNotSupportedError for
// kernels that do not embed TestKernel; the builder is unchanged then.
func (b *Builder) WithKernelClass(name string) (*Builder, error) {
	if _, err := lookupKernel(name); err != nil {
		return b, err
	}
	b.kernelClass = name
	return b, nil
}

// WithEnvironment sets the kernel environment.
func (b *Builder) WithEnvironment(environment string) *Builder {
	b.configuration = b.configuration.WithEnvironment(environment)
	return b
}

// WithDebug sets the debug flag.
func (b *Builder) WithDebug(debug bool) *Builder {
	b.configuration = b.configuration.WithDebug(debug)
	return b
}

// WithModule appends module.
func (b *Builder) WithModule(module kernel.Module) *Builder {
	b.configuration = b.configuration.WithModule(module)
	return b
}

// WithModules appends modules in order.
func (b *Builder) WithModules(modules ...kernel.Module) *Builder {
	b.configuration = b.configuration.WithModules(modules...)
	return b
}

// WithModuleConfiguration merges overlay into the tree of extension name.
func (b *Builder) WithModuleConfiguration(name string, overlay map[string]any) *Builder {
	b.configuration = b.configuration.WithModuleConfiguration(name, overlay)
	return b
}

// WithExposedServiceID exposes id.
func (b *Builder) WithExposedServiceID(id string) *Builder {
	b.configuration = b.configuration.WithExposedServiceID(id)
	return b
}

// WithExposedServiceIDs exposes ids.
func (b *Builder) WithExposedServiceIDs(ids ...string) *Builder {
	b.configuration = b.configuration.WithExposedServiceIDs(ids...)
	return b
}

// WithTempDir roots the kernel directories at dir.
func (b *Builder) WithTempDir(dir string) *Builder {
	b.configuration = b.configuration.WithTempDir(dir)
	return b
}

// KernelClass returns the selected kernel name.
func (b *Builder) KernelClass() string {
	return b.kernelClass
}

// Configuration returns the current configuration.
func (b *Builder) Configuration() Configuration {
	return b.configuration
}

// CreateKernel instantiates the selected kernel without booting it.
func (b *Builder) CreateKernel() (TestKernelInterface, error) {
	entry, err := lookupKernel(b.kernelClass)
	if err != nil {
		return nil, err
	}

	k, ok := entry.ctor(b.configuration).(TestKernelInterface)
	if !ok {
		return nil, &KernelNotSupportedError{Class: b.kernelClass, Supported: DefaultKernel}
	}

	logging.Debug("KernelTest", "Created %s kernel (env=%s, debug=%t, hash=%s)",
		b.kernelClass, b.configuration.Environment(), b.configuration.IsDebug(), b.configuration.Hash())
	return k, nil
}

// BootKernel creates the selected kernel and boots it.
func (b *Builder) BootKernel(ctx context.Context) (TestKernelInterface, error) {
	k, err := b.CreateKernel()
	if err != nil {
		return nil, err
	}
	if err := k.Boot(ctx); err != nil {
		return nil, fmt.Errorf("failed to boot %s kernel: %w", b.kernelClass, err)
	}
	return k, nil
}
