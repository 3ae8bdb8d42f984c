// Package config loads kernel files: YAML documents describing a test kernel
// for the bundletest command line.
//
// # Kernel File
//
//	kernel: kerneltest.TestKernel   # optional registered kernel name
//	environment: dev                # default "test"
//	debug: false                    # default true
//	namespace: Fixtures             # default "tests"
//	tempDir: /tmp/kernels           # default os.TempDir()
//	modules:                        # registered module names, in order
//	  - fixtures.FooModule
//	configuration:                  # extension name -> tree
//	  foo:
//	    enabled: true
//	configurationFiles:             # extension name -> template path
//	  foo: foo.yaml.tmpl
//	exposedServices:
//	  - fixtures.foo
//	parameters:                     # extra template variables
//	  region: eu
//
// Relative configuration file paths are resolved against the directory of the
// kernel file. Configuration files are rendered as Go templates with the sprig
// functions before being decoded as YAML; the template sees the kernel
// parameters returned by TemplateParameters on top of the file's parameters.
// String values of inline configuration are rendered the same way. Inline
// configuration is merged before file configuration.
package config
