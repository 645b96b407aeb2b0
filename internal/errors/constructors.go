package errors

import "fmt"

// Directivef creates a fatal directive-syntax error. The message should name
// the directive, the offending argument and a path:line locator.
func Directivef(format string, args ...any) *IncludeError {
	return New(CategoryDirective, SeverityFatal, fmt.Sprintf(format, args...))
}

// Resolutionf creates a fatal target-resolution error.
func Resolutionf(format string, args ...any) *IncludeError {
	return New(CategoryResolution, SeverityFatal, fmt.Sprintf(format, args...))
}

// Filesystemf creates a fatal file I/O error wrapping its cause.
func Filesystemf(err error, format string, args ...any) *IncludeError {
	return Wrap(err, CategoryFilesystem, SeverityFatal, fmt.Sprintf(format, args...))
}

// Networkf creates a fatal URL-fetch error wrapping its cause.
func Networkf(err error, format string, args ...any) *IncludeError {
	return Wrap(err, CategoryNetwork, SeverityFatal, fmt.Sprintf(format, args...))
}

// Configf creates a configuration error.
func Configf(format string, args ...any) *IncludeError {
	return New(CategoryConfig, SeverityFatal, fmt.Sprintf(format, args...))
}
