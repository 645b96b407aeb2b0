// Package errors provides a lightweight structured error type (IncludeError)
// for category-based classification of page-build failures in the engine and CLI.
package errors

import (
	"fmt"
)

// Category represents the classification of an mdinclude error.
type Category string

const (
	// User-facing configuration and directive errors
	CategoryConfig    Category = "config"
	CategoryDirective Category = "directive"

	// Target resolution errors
	CategoryResolution Category = "resolution"

	// I/O errors
	CategoryFilesystem Category = "filesystem"
	CategoryNetwork    Category = "network"

	// Everything else
	CategoryInternal Category = "internal"
)

// Severity indicates how critical an error is.
type Severity string

const (
	SeverityFatal   Severity = "fatal"   // Aborts the page build
	SeverityError   Severity = "error"   // Error, but not fatal
	SeverityWarning Severity = "warning" // Continues with degraded output
)

// IncludeError is a structured error with category, severity and cause.
type IncludeError struct {
	Category Category
	Severity Severity
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *IncludeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling.
func (e *IncludeError) Unwrap() error {
	return e.Cause
}

// New creates a new IncludeError.
func New(category Category, severity Severity, message string) *IncludeError {
	return &IncludeError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new IncludeError that wraps an existing error.
func Wrap(err error, category Category, severity Severity, message string) *IncludeError {
	return &IncludeError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category.
func IsCategory(err error, category Category) bool {
	if ie, ok := err.(*IncludeError); ok {
		return ie.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns
// CategoryInternal if it is not an IncludeError.
func GetCategory(err error) Category {
	if ie, ok := err.(*IncludeError); ok {
		return ie.Category
	}
	return CategoryInternal
}
