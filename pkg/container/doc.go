// Package container implements the dependency-injection container the kernel
// builds on boot.
//
// A Builder collects service definitions, aliases, parameters, extension
// configuration and compiler passes. Compile loads every registered extension
// with the configuration trees recorded for it, runs the compiler passes in
// registration order, validates service references and returns a Container.
//
// Definitions and aliases are private by default. A compiled Container only
// answers Has and Get for public ids and for services injected with Set;
// private services stay reachable to factories through the Resolver they
// receive. Compiler passes are the place to flip visibility, which is how test
// kernels expose private services for assertions:
//
//	b.AddCompilerPass(container.CompilerPassFunc(func(b *container.Builder) error {
//	    if b.HasDefinition("mailer") {
//	        b.Definition("mailer").SetPublic(true)
//	    }
//	    return nil
//	}))
//
// Services are lazily constructed singletons. Reset drops constructed
// instances and injected services so a shut down kernel leaves nothing behind.
package container
