package formatting

import (
	"bundletest/pkg/container"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct {
	options Options
}

// FormatPaths writes paths as a YAML mapping.
func (f *YAMLFormatter) FormatPaths(paths Paths) error {
	return f.encode(paths)
}

// FormatServices writes services as a YAML sequence.
func (f *YAMLFormatter) FormatServices(services []container.ServiceInfo) error {
	if services == nil {
		services = []container.ServiceInfo{}
	}
	return f.encode(services)
}

// FormatRegistry writes the registered names as a YAML mapping.
func (f *YAMLFormatter) FormatRegistry(registry Registry) error {
	if registry.Modules == nil {
		registry.Modules = []string{}
	}
	if registry.Kernels == nil {
		registry.Kernels = []string{}
	}
	return f.encode(registry)
}

func (f *YAMLFormatter) encode(v any) error {
	enc := yaml.NewEncoder(f.options.Output)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
