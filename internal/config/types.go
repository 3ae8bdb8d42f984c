package config

// KernelFile is the decoded form of a kernel file.
type KernelFile struct {
	Kernel             string                    `yaml:"kernel,omitempty"`
	Environment        string                    `yaml:"environment,omitempty"`
	Debug              *bool                     `yaml:"debug,omitempty"`
	Namespace          string                    `yaml:"namespace,omitempty"`
	TempDir            string                    `yaml:"tempDir,omitempty"`
	Modules            []string                  `yaml:"modules,omitempty"`
	Configuration      map[string]map[string]any `yaml:"configuration,omitempty"`
	ConfigurationFiles map[string]string         `yaml:"configurationFiles,omitempty"`
	ExposedServices    []string                  `yaml:"exposedServices,omitempty"`
	// Parameters are extra template variables. Kernel parameters of the same
	// name take precedence.
	Parameters map[string]any `yaml:"parameters,omitempty"`

	// path is where the file was loaded from.
	path string
}

// Path returns the path the file was loaded from, or "".
func (f KernelFile) Path() string {
	return f.path
}
