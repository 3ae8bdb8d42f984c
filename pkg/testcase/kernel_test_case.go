package testcase

import (
	"context"
	"fmt"

	"bundletest/pkg/kerneltest"
	"bundletest/pkg/logging"

	"github.com/spf13/cast"
)

// KernelTestCase boots test kernels for a single test. Create it with New.
type KernelTestCase struct {
	t      TB
	kernel kerneltest.TestKernelInterface

	// builder creates the kernel builder for one boot. ConfigurableKernelTestCase
	// replaces it to reuse its own builder.
	builder func(o options) (*kerneltest.Builder, error)
}

// TB is the part of testing.TB a test case uses.
type TB interface {
	Helper()
	Name() string
	Cleanup(func())
	Context() context.Context
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
}

// New returns a test case for t. The kernel it boots is shut down when the
// test ends.
func New(t TB) *KernelTestCase {
	tc := &KernelTestCase{t: t}
	tc.builder = tc.defaultBuilder
	t.Cleanup(tc.EnsureKernelShutdown)
	return tc
}

// Kernel returns the kernel booted by BootKernel, or nil.
func (tc *KernelTestCase) Kernel() kerneltest.TestKernelInterface {
	return tc.kernel
}

// BootKernel shuts down the previously booted kernel, then creates and boots a
// new one. It fails the test if the kernel cannot be booted.
func (tc *KernelTestCase) BootKernel(opts ...Option) kerneltest.TestKernelInterface {
	tc.t.Helper()

	tc.EnsureKernelShutdown()

	b, err := tc.builder(newOptions(opts))
	if err != nil {
		tc.t.Fatalf("failed to configure kernel: %v", err)
		return nil
	}

	k, err := b.BootKernel(tc.t.Context())
	if err != nil {
		tc.t.Fatalf("failed to boot kernel: %v", err)
		return nil
	}

	tc.kernel = k
	return k
}

// CreateKernel creates a kernel without booting it. The test case does not
// keep track of it.
func (tc *KernelTestCase) CreateKernel(opts ...Option) kerneltest.TestKernelInterface {
	tc.t.Helper()

	b, err := tc.builder(newOptions(opts))
	if err != nil {
		tc.t.Fatalf("failed to configure kernel: %v", err)
		return nil
	}

	k, err := b.CreateKernel()
	if err != nil {
		tc.t.Fatalf("failed to create kernel: %v", err)
		return nil
	}
	return k
}

// EnsureKernelShutdown shuts down the booted kernel, if any, and resets its
// container.
func (tc *KernelTestCase) EnsureKernelShutdown() {
	if tc.kernel == nil {
		return
	}

	c := tc.kernel.Container()
	if err := tc.kernel.Shutdown(context.Background()); err != nil {
		tc.t.Errorf("failed to shut down kernel: %v", err)
	}
	if c != nil {
		c.Reset()
	}
}

func (tc *KernelTestCase) booted() bool {
	return tc.kernel != nil
}

func (tc *KernelTestCase) defaultBuilder(o options) (*kerneltest.Builder, error) {
	b := kerneltest.NewBuilder()

	kernelClass := kerneltest.DefaultKernel
	if value, ok := lookupVariable(EnvKernelClass); ok {
		kernelClass = value
	}
	if o.kernelClass != nil {
		kernelClass = *o.kernelClass
	}
	if _, err := b.WithKernelClass(kernelClass); err != nil {
		return nil, err
	}

	environment := kerneltest.DefaultEnvironment
	if value, ok := lookupVariable(EnvAppEnv); ok {
		environment = value
	}
	if o.environment != nil {
		environment = *o.environment
	}
	b.WithEnvironment(environment)

	debug, err := debugFromVariables(true)
	if err != nil {
		return nil, err
	}
	if o.debug != nil {
		debug = *o.debug
	}
	b.WithDebug(debug)

	logging.Debug("TestCase", "Configured %s kernel for %s (env=%s, debug=%t)", kernelClass, tc.t.Name(), environment, debug)
	return b, nil
}

// debugFromVariables reads APP_DEBUG, returning fallback when it is unset.
func debugFromVariables(fallback bool) (bool, error) {
	value, ok := lookupVariable(EnvAppDebug)
	if !ok {
		return fallback, nil
	}
	if value == "" {
		return false, nil
	}
	debug, err := cast.ToBoolE(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", EnvAppDebug, value, err)
	}
	return debug, nil
}
