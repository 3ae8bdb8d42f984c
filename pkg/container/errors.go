package container

import (
	"errors"
	"fmt"
)

// ServiceNotFoundError is returned when a service id is neither defined,
// aliased nor injected, or when it is not visible from the caller.
type ServiceNotFoundError struct {
	ID string
}

func (e *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("service %q not found", e.ID)
}

// IsServiceNotFound checks if an error is or wraps a ServiceNotFoundError.
func IsServiceNotFound(err error) bool {
	var notFound *ServiceNotFoundError
	return errors.As(err, &notFound)
}

// ExtensionNotFoundError is returned by Compile when configuration was loaded
// for an extension that no module registered.
type ExtensionNotFoundError struct {
	Name      string
	Available []string
}

func (e *ExtensionNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("there is no extension able to load the configuration for %q", e.Name)
	}
	return fmt.Sprintf("there is no extension able to load the configuration for %q, looked for namespaces %v", e.Name, e.Available)
}

// IsExtensionNotFound checks if an error is or wraps an ExtensionNotFoundError.
func IsExtensionNotFound(err error) bool {
	var notFound *ExtensionNotFoundError
	return errors.As(err, &notFound)
}
