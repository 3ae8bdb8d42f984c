// Package kernel provides the module kernel: the piece that turns an ordered
// list of modules into a compiled dependency-injection container.
//
// # Lifecycle
//
// A kernel starts unbuilt. Boot registers the modules returned by the
// embedding kernel, lets each module contribute its extension and build step,
// asks the embedding kernel for container configuration, compiles the
// container, writes a manifest into the cache directory and boots the
// modules. Shutdown stops the modules in reverse order and resets the
// container:
//
//	unbuilt --Boot--> booted --Shutdown--> shut down --Boot--> booted
//
// # Embedding
//
// Go has no virtual methods, so concrete kernels embed *Base and hand
// themselves over as Hooks:
//
//	type AppKernel struct {
//	    *kernel.Base
//	}
//
//	func NewAppKernel() *AppKernel {
//	    k := &AppKernel{}
//	    k.Base = kernel.NewBase("prod", false, k)
//	    return k
//	}
//
// A kernel that embeds another concrete kernel and overrides one of its hooks
// rebinds with Bind.
package kernel
