package fixtures

import (
	"bundletest/pkg/container"
	"bundletest/pkg/kernel"
	"bundletest/pkg/kerneltest"
)

const (
	CustomKernelClass = "fixtures.CustomKernel"
	DummyKernelClass  = "fixtures.DummyKernel"

	// CustomKernelParameter is set to true by CustomKernel.
	CustomKernelParameter = "fixtures.custom_kernel"
)

func init() {
	kerneltest.MustRegisterKernel(CustomKernelClass, NewCustomKernel)
	kerneltest.MustRegisterKernel(DummyKernelClass, NewDummyKernel)
}

// CustomKernel extends TestKernel with an extra container parameter.
type CustomKernel struct {
	*kerneltest.TestKernel
}

// NewCustomKernel creates a CustomKernel for cfg.
func NewCustomKernel(cfg kerneltest.Configuration) *CustomKernel {
	k := &CustomKernel{TestKernel: kerneltest.NewTestKernel(cfg)}
	k.Bind(k)
	return k
}

// RegisterContainerConfiguration adds CustomKernelParameter on top of the
// TestKernel configuration.
func (k *CustomKernel) RegisterContainerConfiguration(loader kernel.Loader) error {
	if err := k.TestKernel.RegisterContainerConfiguration(loader); err != nil {
		return err
	}
	return loader.Load(func(b *container.Builder) error {
		b.SetParameter(CustomKernelParameter, true)
		return nil
	})
}

// DummyKernel is a complete kernel that does not embed TestKernel.
type DummyKernel struct {
	*kernel.Base
	dir string
}

// NewDummyKernel creates a DummyKernel. Only the environment and debug flag
// of cfg are used.
func NewDummyKernel(cfg kerneltest.Configuration) *DummyKernel {
	k := &DummyKernel{dir: cfg.TempDir()}
	k.Base = kernel.NewBase(cfg.Environment(), cfg.IsDebug(), k)
	return k
}

func (k *DummyKernel) RegisterModules() []kernel.Module { return nil }

func (k *DummyKernel) CacheDir() string { return "" }

func (k *DummyKernel) LogDir() string { return k.dir }

func (k *DummyKernel) RegisterContainerConfiguration(kernel.Loader) error { return nil }

