package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"bundletest/internal/template"
	"bundletest/pkg/kerneltest"
	"bundletest/pkg/logging"

	"gopkg.in/yaml.v3"
)

// LoadKernelFile reads and decodes the kernel file at path.
func LoadKernelFile(path string) (KernelFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return KernelFile{}, newConfigurationError(path, ErrorTypeIO, "kernel file not found", err)
		}
		return KernelFile{}, newConfigurationError(path, ErrorTypeIO, "failed to read kernel file", err)
	}

	var file KernelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return KernelFile{}, newConfigurationError(path, ErrorTypeParse, "malformed kernel file", err)
	}
	file.path = path

	logging.Debug("ConfigLoader", "Loaded kernel file %s (%d modules)", path, len(file.Modules))
	return file, nil
}

// Builder turns the kernel file into a kernel builder. Module names are
// resolved through the kerneltest module registry.
func (f KernelFile) Builder() (*kerneltest.Builder, error) {
	b := kerneltest.NewBuilder(f.Namespace)

	if f.Kernel != "" {
		if _, err := b.WithKernelClass(f.Kernel); err != nil {
			return nil, newConfigurationError(f.path, ErrorTypeValidation, "invalid kernel", err)
		}
	}
	if f.Environment != "" {
		b.WithEnvironment(f.Environment)
	}
	if f.Debug != nil {
		b.WithDebug(*f.Debug)
	}
	if f.TempDir != "" {
		b.WithTempDir(f.TempDir)
	}

	for _, name := range f.Modules {
		m, err := kerneltest.NewModule(name)
		if err != nil {
			return nil, newConfigurationError(f.path, ErrorTypeValidation, "invalid module", err)
		}
		b.WithModule(m)
	}

	params := template.MergeContexts(f.Parameters, TemplateParameters(b.Configuration()))
	engine := template.New()
	for _, name := range slices.Sorted(maps.Keys(f.Configuration)) {
		tree, err := engine.Replace(f.Configuration[name], params)
		if err != nil {
			return nil, newConfigurationError(f.path, ErrorTypeTemplate, fmt.Sprintf("failed to render %s configuration", name), err)
		}
		b.WithModuleConfiguration(name, tree.(map[string]any))
	}

	for _, name := range slices.Sorted(maps.Keys(f.ConfigurationFiles)) {
		path := f.ConfigurationFiles[name]
		if !filepath.IsAbs(path) && f.path != "" {
			path = filepath.Join(filepath.Dir(f.path), path)
		}
		tree, err := LoadModuleConfiguration(path, params)
		if err != nil {
			return nil, err
		}
		b.WithModuleConfiguration(name, tree)
	}

	return b.WithExposedServiceIDs(f.ExposedServices...), nil
}

// TemplateParameters returns what module configuration templates see of cfg.
func TemplateParameters(cfg kerneltest.Configuration) map[string]any {
	return map[string]any{
		"environment": cfg.Environment(),
		"debug":       cfg.IsDebug(),
		"namespace":   cfg.Namespace(),
		"tempDir":     cfg.TempDir(),
	}
}

// LoadModuleConfiguration renders the template at path with params and
// decodes the result as a YAML mapping. An empty document yields an empty
// tree.
func LoadModuleConfiguration(path string, params map[string]any) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newConfigurationError(path, ErrorTypeIO, "failed to read module configuration", err)
	}

	rendered, err := template.New().Render(filepath.Base(path), string(data), params)
	if err != nil {
		return nil, newConfigurationError(path, ErrorTypeTemplate, "failed to render module configuration", err)
	}

	tree := make(map[string]any)
	if err := yaml.Unmarshal([]byte(rendered), &tree); err != nil {
		return nil, newConfigurationError(path, ErrorTypeParse, "malformed module configuration", err)
	}
	if tree == nil {
		tree = make(map[string]any)
	}

	logging.Debug("ConfigLoader", "Loaded module configuration %s", path)
	return tree, nil
}

