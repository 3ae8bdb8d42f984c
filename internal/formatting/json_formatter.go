package formatting

import (
	"encoding/json"

	"bundletest/pkg/container"
)

// JSONFormatter provides JSON output formatting
type JSONFormatter struct {
	options Options
}

// FormatPaths writes paths as a JSON object.
func (f *JSONFormatter) FormatPaths(paths Paths) error {
	return f.encode(paths)
}

// FormatServices writes services as a JSON array.
func (f *JSONFormatter) FormatServices(services []container.ServiceInfo) error {
	if services == nil {
		services = []container.ServiceInfo{}
	}
	return f.encode(services)
}

// FormatRegistry writes the registered names as a JSON object.
func (f *JSONFormatter) FormatRegistry(registry Registry) error {
	if registry.Modules == nil {
		registry.Modules = []string{}
	}
	if registry.Kernels == nil {
		registry.Kernels = []string{}
	}
	return f.encode(registry)
}

func (f *JSONFormatter) encode(v any) error {
	enc := json.NewEncoder(f.options.Output)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
