package kerneltest

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"

	"bundletest/pkg/kernel"
)

// DefaultKernel is the registered name of TestKernel.
const DefaultKernel = "kerneltest.TestKernel"

// kernelEntry is a registered kernel constructor and the type it returns.
type kernelEntry struct {
	name string
	typ  reflect.Type
	ctor func(Configuration) kernel.Kernel
}

var (
	registryMu sync.RWMutex
	kernels    = make(map[string]kernelEntry)
	modules    = make(map[string]func() kernel.Module)
)

func init() {
	MustRegisterKernel(DefaultKernel, NewTestKernel)
}

// RegisterKernel makes a kernel type available to Builder.WithKernelClass
// under name. Descent from TestKernel is not checked here but when the name
// is selected.
func RegisterKernel[K kernel.Kernel](name string, ctor func(Configuration) K) error {
	if name == "" {
		return errors.New("kernel name cannot be empty")
	}
	if ctor == nil {
		return fmt.Errorf("kernel %q has no constructor", name)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := kernels[name]; exists {
		return fmt.Errorf("kernel %q is already registered", name)
	}
	kernels[name] = kernelEntry{
		name: name,
		typ:  reflect.TypeFor[K](),
		ctor: func(cfg Configuration) kernel.Kernel { return ctor(cfg) },
	}
	return nil
}

// MustRegisterKernel is like RegisterKernel but panics on error. It is meant
// for init functions.
func MustRegisterKernel[K kernel.Kernel](name string, ctor func(Configuration) K) {
	if err := RegisterKernel(name, ctor); err != nil {
		panic(err)
	}
}

// RegisteredKernels returns the registered kernel names, sorted.
func RegisteredKernels() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(kernels))
}

// RegisterModule makes a module constructor available by name, for kernel
// files and other places where modules are picked by string.
func RegisterModule(name string, ctor func() kernel.Module) error {
	if name == "" {
		return errors.New("module name cannot be empty")
	}
	if ctor == nil {
		return fmt.Errorf("module %q has no constructor", name)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := modules[name]; exists {
		return fmt.Errorf("module %q is already registered", name)
	}
	modules[name] = ctor
	return nil
}

// MustRegisterModule is like RegisterModule but panics on error.
func MustRegisterModule(name string, ctor func() kernel.Module) {
	if err := RegisterModule(name, ctor); err != nil {
		panic(err)
	}
}

// NewModule returns a new instance of the module registered under name.
func NewModule(name string) (kernel.Module, error) {
	registryMu.RLock()
	ctor, ok := modules[name]
	registryMu.RUnlock()

	if !ok {
		return nil, &ClassNotFoundError{Class: name}
	}
	return ctor(), nil
}

// RegisteredModules returns the registered module names, sorted.
func RegisteredModules() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return slices.Sorted(maps.Keys(modules))
}

// lookupKernel resolves name to a kernel entry that descends from TestKernel.
func lookupKernel(name string) (kernelEntry, error) {
	registryMu.RLock()
	entry, ok := kernels[name]
	registryMu.RUnlock()

	if !ok {
		return kernelEntry{}, &ClassNotFoundError{Class: name}
	}
	if !entry.typ.Implements(reflect.TypeFor[TestKernelInterface]()) {
		return kernelEntry{}, &KernelNotSupportedError{Class: name, Supported: DefaultKernel}
	}
	return entry, nil
}
