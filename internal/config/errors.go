package config

import (
	"errors"
	"fmt"
)

// Error types reported by ConfigurationError.
const (
	ErrorTypeIO         = "io"
	ErrorTypeParse      = "parse"
	ErrorTypeTemplate   = "template"
	ErrorTypeValidation = "validation"
)

// ConfigurationError represents a structured error that occurs while loading
// a kernel file or a module configuration file.
type ConfigurationError struct {
	FilePath  string // Full path to the file that caused the error
	ErrorType string // One of the ErrorType constants
	Message   string // Human-readable error message
	Err       error  // Underlying error, if any
}

// Error implements the error interface
func (ce *ConfigurationError) Error() string {
	if ce.Err != nil {
		return fmt.Sprintf("%s error in %s: %s: %v", ce.ErrorType, ce.FilePath, ce.Message, ce.Err)
	}
	return fmt.Sprintf("%s error in %s: %s", ce.ErrorType, ce.FilePath, ce.Message)
}

// Unwrap returns the underlying error.
func (ce *ConfigurationError) Unwrap() error {
	return ce.Err
}

// IsConfigurationError checks if an error is or wraps a ConfigurationError
// of errorType. An empty errorType matches any type.
func IsConfigurationError(err error, errorType string) bool {
	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		return false
	}
	return errorType == "" || configErr.ErrorType == errorType
}

func newConfigurationError(path, errorType, message string, err error) *ConfigurationError {
	return &ConfigurationError{
		FilePath:  path,
		ErrorType: errorType,
		Message:   message,
		Err:       err,
	}
}
