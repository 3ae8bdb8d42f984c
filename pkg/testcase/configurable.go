package testcase

import (
	"errors"
	"strings"
	"unicode"

	"bundletest/internal/config"
	"bundletest/pkg/kernel"
	"bundletest/pkg/kerneltest"
)

// ErrKernelBooted is reported when the configuration changes after the kernel
// was booted.
var ErrKernelBooted = errors.New("configuration cannot be changed once kernel is booted")

// ConfigurableKernelTestCase is a KernelTestCase whose kernel is shaped with
// Given* methods before it boots. Each test gets its own namespace, derived
// from the test name, so kernels of different tests never share a cache
// directory.
type ConfigurableKernelTestCase struct {
	*KernelTestCase
	kernelBuilder *kerneltest.Builder
}

// NewConfigurable returns a configurable test case for t. APP_ENV, APP_DEBUG
// and KERNEL_CLASS are read once, here; Given* methods and boot options take
// precedence over them.
func NewConfigurable(t TB) *ConfigurableKernelTestCase {
	t.Helper()

	tc := &ConfigurableKernelTestCase{
		KernelTestCase: New(t),
		kernelBuilder:  kerneltest.NewBuilder(TestNamespace(t.Name())),
	}
	tc.builder = tc.configuredBuilder

	if kernelClass, ok := lookupVariable(EnvKernelClass); ok {
		if _, err := tc.kernelBuilder.WithKernelClass(kernelClass); err != nil {
			t.Fatalf("invalid %s: %v", EnvKernelClass, err)
			return tc
		}
	}
	if environment, ok := lookupVariable(EnvAppEnv); ok {
		tc.kernelBuilder.WithEnvironment(environment)
	}
	if _, ok := lookupVariable(EnvAppDebug); ok {
		debug, err := debugFromVariables(true)
		if err != nil {
			t.Fatalf("%v", err)
			return tc
		}
		tc.kernelBuilder.WithDebug(debug)
	}
	return tc
}

// TestNamespace derives a kernel namespace from a test name by dropping every
// character that is not a letter or a digit.
func TestNamespace(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, name)
}

// KernelBuilder returns the builder the next kernel is created from.
func (tc *ConfigurableKernelTestCase) KernelBuilder() *kerneltest.Builder {
	return tc.kernelBuilder
}

// GivenEnvironment sets the kernel environment.
func (tc *ConfigurableKernelTestCase) GivenEnvironment(environment string) *ConfigurableKernelTestCase {
	tc.t.Helper()
	if tc.ensureKernelNotBooted() {
		tc.kernelBuilder.WithEnvironment(environment)
	}
	return tc
}

// GivenDebugIsEnabled enables the debug flag.
func (tc *ConfigurableKernelTestCase) GivenDebugIsEnabled() *ConfigurableKernelTestCase {
	tc.t.Helper()
	if tc.ensureKernelNotBooted() {
		tc.kernelBuilder.WithDebug(true)
	}
	return tc
}

// GivenDebugIsDisabled disables the debug flag.
func (tc *ConfigurableKernelTestCase) GivenDebugIsDisabled() *ConfigurableKernelTestCase {
	tc.t.Helper()
	if tc.ensureKernelNotBooted() {
		tc.kernelBuilder.WithDebug(false)
	}
	return tc
}

// GivenKernel selects the registered kernel name.
func (tc *ConfigurableKernelTestCase) GivenKernel(kernelClass string) *ConfigurableKernelTestCase {
	tc.t.Helper()
	if !tc.ensureKernelNotBooted() {
		return tc
	}
	if _, err := tc.kernelBuilder.WithKernelClass(kernelClass); err != nil {
		tc.t.Fatalf("%v", err)
	}
	return tc
}

// GivenModuleConfiguration merges configuration into the tree of the
// extension name.
func (tc *ConfigurableKernelTestCase) GivenModuleConfiguration(name string, configuration map[string]any) *ConfigurableKernelTestCase {
	tc.t.Helper()
	if tc.ensureKernelNotBooted() {
		tc.kernelBuilder.WithModuleConfiguration(name, configuration)
	}
	return tc
}

// GivenModuleConfigurationFile renders the YAML template at path and merges
// it into the tree of the extension name. The template sees the environment,
// debug flag, namespace and temp directory configured so far.
func (tc *ConfigurableKernelTestCase) GivenModuleConfigurationFile(name, path string) *ConfigurableKernelTestCase {
	tc.t.Helper()
	if !tc.ensureKernelNotBooted() {
		return tc
	}

	tree, err := config.LoadModuleConfiguration(path, config.TemplateParameters(tc.kernelBuilder.Configuration()))
	if err != nil {
		tc.t.Fatalf("%v", err)
		return tc
	}
	tc.kernelBuilder.WithModuleConfiguration(name, tree)
	return tc
}

// GivenExposedServiceID makes the private service or alias id public.
func (tc *ConfigurableKernelTestCase) GivenExposedServiceID(id string) *ConfigurableKernelTestCase {
	tc.t.Helper()
	if tc.ensureKernelNotBooted() {
		tc.kernelBuilder.WithExposedServiceID(id)
	}
	return tc
}

// GivenExposedServiceIDs makes every id public.
func (tc *ConfigurableKernelTestCase) GivenExposedServiceIDs(ids ...string) *ConfigurableKernelTestCase {
	tc.t.Helper()
	if tc.ensureKernelNotBooted() {
		tc.kernelBuilder.WithExposedServiceIDs(ids...)
	}
	return tc
}

// GivenModulesAreEnabled appends modules.
func (tc *ConfigurableKernelTestCase) GivenModulesAreEnabled(modules ...kernel.Module) *ConfigurableKernelTestCase {
	tc.t.Helper()
	if tc.ensureKernelNotBooted() {
		tc.kernelBuilder.WithModules(modules...)
	}
	return tc
}

// GivenModuleIsEnabled appends module.
func (tc *ConfigurableKernelTestCase) GivenModuleIsEnabled(module kernel.Module) *ConfigurableKernelTestCase {
	tc.t.Helper()
	if tc.ensureKernelNotBooted() {
		tc.kernelBuilder.WithModule(module)
	}
	return tc
}

// GivenTempDir roots the kernel directories at dir.
func (tc *ConfigurableKernelTestCase) GivenTempDir(dir string) *ConfigurableKernelTestCase {
	tc.t.Helper()
	if tc.ensureKernelNotBooted() {
		tc.kernelBuilder.WithTempDir(dir)
	}
	return tc
}

// ensureKernelNotBooted fails the test and returns false once a kernel was
// booted.
func (tc *ConfigurableKernelTestCase) ensureKernelNotBooted() bool {
	tc.t.Helper()
	if tc.booted() {
		tc.t.Fatalf("%v", ErrKernelBooted)
		return false
	}
	return true
}

func (tc *ConfigurableKernelTestCase) configuredBuilder(o options) (*kerneltest.Builder, error) {
	if o.environment != nil {
		tc.kernelBuilder.WithEnvironment(*o.environment)
	}
	if o.debug != nil {
		tc.kernelBuilder.WithDebug(*o.debug)
	}
	if o.kernelClass != nil {
		if _, err := tc.kernelBuilder.WithKernelClass(*o.kernelClass); err != nil {
			return nil, err
		}
	}
	return tc.kernelBuilder, nil
}
