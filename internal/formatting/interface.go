// Package formatting renders command output for the bundletest CLI.
//
// Every command supports the same output formats (table, JSON, YAML); the
// Formatter for a format is picked with NewFormatter.
package formatting

import (
	"fmt"
	"io"
	"os"

	"bundletest/pkg/container"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Rich table output
	FormatJSON  OutputFormat = "json"  // JSON output
	FormatYAML  OutputFormat = "yaml"  // YAML output
)

// Formats lists the supported output formats.
var Formats = []OutputFormat{FormatTable, FormatJSON, FormatYAML}

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Output io.Writer // Defaults to os.Stdout
	Quiet  bool      // Suppress decorative elements
}

// Paths describes where a kernel keeps its files.
type Paths struct {
	Kernel      string `json:"kernel" yaml:"kernel"`
	Environment string `json:"environment" yaml:"environment"`
	Namespace   string `json:"namespace" yaml:"namespace"`
	Hash        string `json:"hash" yaml:"hash"`
	CacheDir    string `json:"cacheDir" yaml:"cacheDir"`
	LogDir      string `json:"logDir" yaml:"logDir"`
}

// Registry lists the names kernel files can refer to.
type Registry struct {
	Modules []string `json:"modules" yaml:"modules"`
	Kernels []string `json:"kernels" yaml:"kernels"`
}

// Formatter renders command results.
type Formatter interface {
	FormatPaths(paths Paths) error
	FormatServices(services []container.ServiceInfo) error
	FormatRegistry(registry Registry) error
}

// NewFormatter creates the formatter for options.Format.
func NewFormatter(options Options) (Formatter, error) {
	if options.Output == nil {
		options.Output = os.Stdout
	}

	switch options.Format {
	case FormatTable, "":
		return &TableFormatter{options: options}, nil
	case FormatJSON:
		return &JSONFormatter{options: options}, nil
	case FormatYAML:
		return &YAMLFormatter{options: options}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q, expected one of %v", options.Format, Formats)
	}
}
