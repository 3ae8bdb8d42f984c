package kerneltest

import (
	"errors"
	"fmt"
)

// ClassNotFoundError is returned when a kernel or module name was never
// registered.
type ClassNotFoundError struct {
	Class string
}

func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("class `%s` does not exist or is not registered", e.Class)
}

// IsClassNotFound checks if an error is or wraps a ClassNotFoundError.
func IsClassNotFound(err error) bool {
	var notFound *ClassNotFoundError
	return errors.As(err, &notFound)
}

// KernelNotSupportedError is returned when a registered kernel type is
// neither the supported kernel nor embeds it.
type KernelNotSupportedError struct {
	Class     string
	Supported string
}

func (e *KernelNotSupportedError) Error() string {
	return fmt.Sprintf("only the `%s` kernel implementations are supported, but `%s` was given", e.Supported, e.Class)
}

// IsKernelNotSupported checks if an error is or wraps a
// KernelNotSupportedError.
func IsKernelNotSupported(err error) bool {
	var notSupported *KernelNotSupportedError
	return errors.As(err, &notSupported)
}
