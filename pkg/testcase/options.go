package testcase

// Option overrides part of the kernel configuration for one boot.
type Option func(*options)

type options struct {
	environment *string
	debug       *bool
	kernelClass *string
}

// WithEnvironment boots the kernel in environment.
func WithEnvironment(environment string) Option {
	return func(o *options) {
		o.environment = &environment
	}
}

// WithDebug sets the debug flag of the kernel.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = &debug
	}
}

// WithKernelClass boots the kernel registered under name.
func WithKernelClass(name string) Option {
	return func(o *options) {
		o.kernelClass = &name
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
