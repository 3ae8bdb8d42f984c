package kerneltest

import (
	"os"
	"path/filepath"
	"slices"

	"bundletest/pkg/kernel"
)

const (
	// DefaultEnvironment is the environment of a new Configuration.
	DefaultEnvironment = "test"
	// DefaultNamespace scopes cache directories when no namespace is given.
	DefaultNamespace = "tests"
)

// Configuration describes a test kernel. It is an immutable value: every
// With* method returns a modified copy and leaves the receiver untouched.
// Create one with NewConfiguration.
type Configuration struct {
	environment          string
	debug                bool
	modules              []kernel.Module
	moduleConfigurations map[string]map[string]any
	namespace            string
	tempDir              *string
	exposedServiceIDs    []string
}

// NewConfiguration returns the default configuration: environment "test",
// debug enabled, no modules. The first non-empty namespace is used, falling
// back to DefaultNamespace.
func NewConfiguration(namespace ...string) Configuration {
	ns := DefaultNamespace
	for _, n := range namespace {
		if n != "" {
			ns = n
			break
		}
	}

	return Configuration{
		environment:          DefaultEnvironment,
		debug:                true,
		moduleConfigurations: make(map[string]map[string]any),
		namespace:            ns,
	}
}

// WithEnvironment returns a copy using environment.
func (c Configuration) WithEnvironment(environment string) Configuration {
	c.environment = environment
	return c
}

// WithDebug returns a copy with the debug flag set to debug.
func (c Configuration) WithDebug(debug bool) Configuration {
	c.debug = debug
	return c
}

// WithModule returns a copy with module appended to the module list.
func (c Configuration) WithModule(module kernel.Module) Configuration {
	c.modules = append(slices.Clone(c.modules), module)
	return c
}

// WithModules returns a copy with modules appended, in order.
func (c Configuration) WithModules(modules ...kernel.Module) Configuration {
	for _, m := range modules {
		c = c.WithModule(m)
	}
	return c
}

// WithModuleConfiguration returns a copy with overlay merged into the
// configuration tree of the extension name. Repeated calls for the same name
// merge recursively: nested maps merge key by key and colliding values
// accumulate into lists.
func (c Configuration) WithModuleConfiguration(name string, overlay map[string]any) Configuration {
	configurations := make(map[string]map[string]any, len(c.moduleConfigurations)+1)
	for n, tree := range c.moduleConfigurations {
		configurations[n] = tree
	}
	configurations[name] = mergeRecursive(c.moduleConfigurations[name], overlay)

	c.moduleConfigurations = configurations
	return c
}

// WithTempDir returns a copy rooting cache and log directories at dir instead
// of the system temp directory.
func (c Configuration) WithTempDir(dir string) Configuration {
	c.tempDir = &dir
	return c
}

// WithExposedServiceID returns a copy that makes the service or alias id
// public when the container is compiled.
func (c Configuration) WithExposedServiceID(id string) Configuration {
	c.exposedServiceIDs = append(slices.Clone(c.exposedServiceIDs), id)
	return c
}

// WithExposedServiceIDs returns a copy exposing every id, in order.
func (c Configuration) WithExposedServiceIDs(ids ...string) Configuration {
	for _, id := range ids {
		c = c.WithExposedServiceID(id)
	}
	return c
}

// Environment returns the kernel environment.
func (c Configuration) Environment() string {
	return c.environment
}

// IsDebug returns the debug flag.
func (c Configuration) IsDebug() bool {
	return c.debug
}

// Modules returns the modules in insertion order.
func (c Configuration) Modules() []kernel.Module {
	return slices.Clone(c.modules)
}

// ModuleConfiguration returns a copy of the tree configured for the extension
// name, or nil.
func (c Configuration) ModuleConfiguration(name string) map[string]any {
	tree, ok := c.moduleConfigurations[name]
	if !ok {
		return nil
	}
	return copyTree(tree)
}

// AllModuleConfigurations returns a copy of every configured tree keyed by
// extension name.
func (c Configuration) AllModuleConfigurations() map[string]map[string]any {
	all := make(map[string]map[string]any, len(c.moduleConfigurations))
	for name, tree := range c.moduleConfigurations {
		all[name] = copyTree(tree)
	}
	return all
}

// Namespace returns the namespace scoping the cache directories.
func (c Configuration) Namespace() string {
	return c.namespace
}

// ExposedServiceIDs returns the ids to expose, in order.
func (c Configuration) ExposedServiceIDs() []string {
	return slices.Clone(c.exposedServiceIDs)
}

// TempDir returns the temp directory override, or the system temp directory.
func (c Configuration) TempDir() string {
	if c.tempDir != nil {
		return *c.tempDir
	}
	return os.TempDir()
}

// CacheDir returns {tempRoot}/{namespace}/{hash}/var/cache/{environment}.
func (c Configuration) CacheDir() string {
	return filepath.Join(c.varDir(), "cache", c.environment)
}

// LogDir returns {tempRoot}/{namespace}/{hash}/var/log.
func (c Configuration) LogDir() string {
	return filepath.Join(c.varDir(), "log")
}

func (c Configuration) varDir() string {
	return filepath.Join(c.TempDir(), c.namespace, c.Hash(), "var")
}
