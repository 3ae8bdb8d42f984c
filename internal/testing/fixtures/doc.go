// Package fixtures provides modules and kernels for kernel tests.
//
// Importing the package registers:
//
//   - fixtures.FooModule and fixtures.BarModule in the module registry
//   - fixtures.CustomKernel, a kernel embedding kerneltest.TestKernel
//   - fixtures.DummyKernel, a kernel that does not, for rejection tests
//
// The testdata directory holds a kernel file and a module configuration
// template, available as KernelFile and FooConfigurationTemplate:
//
//	path := fixtures.WriteFile(t, "kernel.yaml", fixtures.KernelFile)
package fixtures
