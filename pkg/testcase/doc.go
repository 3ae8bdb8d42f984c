// Package testcase manages test kernels across the lifetime of a test.
//
// KernelTestCase boots a kerneltest kernel on demand and shuts it down when
// the test ends:
//
//	func TestSomething(t *testing.T) {
//		tc := testcase.New(t)
//		k := tc.BootKernel(testcase.WithEnvironment("dev"))
//		...
//	}
//
// Options left unset fall back to the APP_ENV, APP_DEBUG and KERNEL_CLASS
// variables. Process environment variables take precedence over server
// variables (see SetServerVariable), which take precedence over the defaults:
// "test", debug enabled and kerneltest.DefaultKernel.
//
// ConfigurableKernelTestCase adds Given* methods that shape the kernel before
// it boots:
//
//	tc := testcase.NewConfigurable(t)
//	tc.GivenModuleIsEnabled(&FooModule{}).
//		GivenModuleConfiguration("foo", map[string]any{"enabled": true}).
//		GivenExposedServiceID("foo.service")
//	k := tc.BootKernel()
//
// Changing the configuration after the kernel is booted fails the test with
// ErrKernelBooted.
package testcase
