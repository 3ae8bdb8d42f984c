package kernel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"bundletest/pkg/container"
	"bundletest/pkg/logging"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ManifestFileName is the file Boot writes into the cache directory.
const ManifestFileName = "container.yaml"

// State is the lifecycle state of a kernel.
type State string

const (
	StateUnbuilt  State = "unbuilt"
	StateBooted   State = "booted"
	StateShutDown State = "shut down"
)

// Kernel is the contract every kernel satisfies.
type Kernel interface {
	Environment() string
	IsDebug() bool
	Boot(ctx context.Context) error
	Shutdown(ctx context.Context) error
	// Container returns the compiled container, or nil unless booted.
	Container() *container.Container
	// Modules returns the booted modules keyed by ModuleName.
	Modules() map[string]Module
	CacheDir() string
	LogDir() string
	State() State
}

// Hooks is what the embedding kernel provides to Base. Hooks may call the
// kernel's accessors; during Boot the kernel reports StateUnbuilt.
type Hooks interface {
	RegisterModules() []Module
	CacheDir() string
	LogDir() string
	RegisterContainerConfiguration(loader Loader) error
}

// Loader hands container configuration callbacks the builder being compiled.
type Loader interface {
	Load(fn func(b *container.Builder) error) error
}

type builderLoader struct {
	builder *container.Builder
}

func (l builderLoader) Load(fn func(b *container.Builder) error) error {
	return fn(l.builder)
}

// Manifest is written to the cache directory on boot.
type Manifest struct {
	Environment string                  `yaml:"environment"`
	Debug       bool                    `yaml:"debug"`
	BootID      string                  `yaml:"bootId"`
	Modules     []string                `yaml:"modules"`
	Services    []container.ServiceInfo `yaml:"services"`
}

// Base implements the kernel lifecycle on top of Hooks.
type Base struct {
	// lifecycle serializes Boot and Shutdown. mu guards the fields below and
	// is never held while hooks or modules run, so they may call accessors.
	lifecycle   sync.Mutex
	mu          sync.Mutex
	environment string
	debug       bool
	hooks       Hooks
	state       State
	container   *container.Container
	modules     map[string]Module
	moduleOrder []Module
	bootID      string
	startTime   time.Time
}

// NewBase creates an unbuilt kernel for environment and debug, delegating the
// module list, directories and container configuration to hooks.
func NewBase(environment string, debug bool, hooks Hooks) *Base {
	return &Base{
		environment: environment,
		debug:       debug,
		hooks:       hooks,
		state:       StateUnbuilt,
	}
}

// Bind replaces the hooks. It is meant for kernels embedding another
// concrete kernel and must be called before Boot.
func (k *Base) Bind(hooks Hooks) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.hooks = hooks
}

// Environment returns the kernel environment.
func (k *Base) Environment() string {
	return k.environment
}

// IsDebug returns the debug flag.
func (k *Base) IsDebug() bool {
	return k.debug
}

// State returns the lifecycle state.
func (k *Base) State() State {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state
}

// BootID returns the id of the current boot, or "" unless booted.
func (k *Base) BootID() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.bootID
}

// StartTime returns when the last boot started.
func (k *Base) StartTime() time.Time {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.startTime
}

// Container returns the compiled container, or nil unless booted.
func (k *Base) Container() *container.Container {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.container
}

// Modules returns the booted modules keyed by name. It is empty unless booted.
func (k *Base) Modules() map[string]Module {
	k.mu.Lock()
	defer k.mu.Unlock()

	modules := make(map[string]Module, len(k.modules))
	for name, m := range k.modules {
		modules[name] = m
	}
	return modules
}

// Boot builds the container and boots the modules. Booting a booted kernel is
// a no-op. Hooks, extensions and modules run without the kernel lock held and
// observe the kernel as not yet booted.
func (k *Base) Boot(ctx context.Context) error {
	k.lifecycle.Lock()
	defer k.lifecycle.Unlock()

	k.mu.Lock()
	state, hooks := k.state, k.hooks
	k.mu.Unlock()

	if state == StateBooted {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("boot canceled: %w", err)
	}
	if hooks == nil {
		return errors.New("kernel has no hooks bound")
	}

	startTime := time.Now()
	bootID := uuid.NewString()

	modules, order, err := initializeModules(hooks)
	if err != nil {
		return err
	}

	c, err := k.buildContainer(hooks, order, bootID)
	if err != nil {
		return err
	}

	if err := k.writeManifest(hooks, c, order, bootID); err != nil {
		return err
	}

	for i, m := range order {
		if err := m.Boot(c); err != nil {
			_ = shutdownModules(order[:i])
			return fmt.Errorf("failed to boot module %s: %w", ModuleName(m), err)
		}
	}

	k.mu.Lock()
	k.modules = modules
	k.moduleOrder = order
	k.container = c
	k.bootID = bootID
	k.startTime = startTime
	k.state = StateBooted
	k.mu.Unlock()

	logging.Debug("Kernel", "Booted %s kernel (debug=%t) with %d modules in %s", k.environment, k.debug, len(order), time.Since(startTime))
	return nil
}

// Shutdown stops the modules in reverse registration order and resets the
// container. Shutting down a kernel that is not booted is a no-op.
func (k *Base) Shutdown(ctx context.Context) error {
	k.lifecycle.Lock()
	defer k.lifecycle.Unlock()

	k.mu.Lock()
	if k.state != StateBooted {
		k.mu.Unlock()
		return nil
	}
	order, c := k.moduleOrder, k.container
	k.mu.Unlock()

	err := shutdownModules(order)
	c.Reset()

	k.mu.Lock()
	k.container = nil
	k.modules = nil
	k.moduleOrder = nil
	k.bootID = ""
	k.state = StateShutDown
	k.mu.Unlock()

	logging.Debug("Kernel", "Shut down %s kernel", k.environment)
	return err
}

func initializeModules(hooks Hooks) (map[string]Module, []Module, error) {
	registered := hooks.RegisterModules()
	modules := make(map[string]Module, len(registered))
	order := make([]Module, 0, len(registered))

	for _, m := range registered {
		name := ModuleName(m)
		if _, exists := modules[name]; exists {
			return nil, nil, fmt.Errorf("trying to register two modules with the same name %q", name)
		}
		modules[name] = m
		order = append(order, m)
	}
	return modules, order, nil
}

func (k *Base) buildContainer(hooks Hooks, modules []Module, bootID string) (*container.Container, error) {
	b := container.NewBuilder()

	names := make([]string, 0, len(modules))
	for _, m := range modules {
		names = append(names, ModuleName(m))
	}

	b.SetParameter("kernel.environment", k.environment)
	b.SetParameter("kernel.debug", k.debug)
	b.SetParameter("kernel.cache_dir", hooks.CacheDir())
	b.SetParameter("kernel.logs_dir", hooks.LogDir())
	b.SetParameter("kernel.modules", names)
	b.SetParameter("kernel.boot_id", bootID)

	for _, m := range modules {
		if ext := m.Extension(); ext != nil {
			if err := b.RegisterExtension(ext); err != nil {
				return nil, fmt.Errorf("module %s: %w", ModuleName(m), err)
			}
		}
	}
	for _, m := range modules {
		if err := m.Build(b); err != nil {
			return nil, fmt.Errorf("failed to build module %s: %w", ModuleName(m), err)
		}
	}

	if err := hooks.RegisterContainerConfiguration(builderLoader{builder: b}); err != nil {
		return nil, fmt.Errorf("failed to register container configuration: %w", err)
	}

	c, err := b.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile container: %w", err)
	}
	return c, nil
}

func (k *Base) writeManifest(hooks Hooks, c *container.Container, modules []Module, bootID string) error {
	cacheDir := hooks.CacheDir()
	if cacheDir == "" {
		return nil
	}

	names := make([]string, 0, len(modules))
	for _, m := range modules {
		names = append(names, ModuleTypeName(m))
	}

	data, err := yaml.Marshal(Manifest{
		Environment: k.environment,
		Debug:       k.debug,
		BootID:      bootID,
		Modules:     names,
		Services:    c.Describe(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode container manifest: %w", err)
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", cacheDir, err)
	}
	path := filepath.Join(cacheDir, ManifestFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write container manifest: %w", err)
	}
	return nil
}

func shutdownModules(modules []Module) error {
	var errs []error
	for _, m := range slices.Backward(modules) {
		if err := m.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("module %s: %w", ModuleName(m), err))
		}
	}
	return errors.Join(errs...)
}
