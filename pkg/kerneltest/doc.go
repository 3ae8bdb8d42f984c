// Package kerneltest boots minimally-configured kernels from tests.
//
// Exercising a module usually needs a whole application around it: a kernel
// listing the module, configuration for its extension, and a way to reach the
// services it registers. kerneltest replaces that skeleton with three pieces:
//
//   - Configuration, an immutable value describing the kernel to build
//     (environment, debug flag, modules, extension configuration, temp
//     directory, namespace and services to expose);
//   - TestKernel, a kernel reading everything from a Configuration;
//   - Builder, which picks the kernel type by name and creates or boots it.
//
// # Usage
//
//	k, err := kerneltest.NewBuilder().
//	    WithModule(&foo.Module{}).
//	    WithModuleConfiguration("foo", map[string]any{"enabled": true}).
//	    WithExposedServiceID("foo.client").
//	    BootKernel(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer k.Shutdown(ctx)
//
//	client, err := k.Container().Get("foo.client")
//
// # Cache Directories
//
// Each distinct configuration gets its own cache and log directories under
// {tempRoot}/{namespace}/{hash}/var, where the hash is derived from every
// field of the configuration. Kernels with the same configuration share
// directories; kernels with different ones never collide.
//
// # Kernel Types
//
// Go cannot load a type from its name, so kernel types are registered once,
// usually from init, with RegisterKernel. Builder.WithKernelClass accepts any
// registered name whose type is *TestKernel or embeds it, and reports
// ClassNotFoundError or KernelNotSupportedError otherwise.
package kerneltest
