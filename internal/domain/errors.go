// Package domain defines domain-specific errors.
// These errors represent failures of collaborators and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that adapters can return.
var (
	// ErrSourceNotFound is returned when a slide library directory does not exist.
	ErrSourceNotFound = errors.New("slide source not found")

	// ErrNotADirectory is returned when a slide library path is a regular file.
	ErrNotADirectory = errors.New("slide source is not a directory")

	// ErrUnsupportedFormat is returned when a file cannot be turned into a slide.
	ErrUnsupportedFormat = errors.New("unsupported slide format")

	// ErrWatcherClosed is returned when a closed watcher is reused.
	ErrWatcherClosed = errors.New("watcher closed")
)

// SourceError represents an error from an item source.
type SourceError struct {
	Op   string // Operation that failed (e.g., "scan", "read", "watch")
	Path string // File or directory path
	Err  error  // Underlying error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("slide source %s failed for '%s': %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError.
func NewSourceError(op, path string, err error) *SourceError {
	return &SourceError{Op: op, Path: path, Err: err}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string      // Field that failed validation
	Value   interface{} // Value that failed validation
	Message string      // Error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// RepositoryError represents an error from an attribute repository.
type RepositoryError struct {
	Op      string // Operation that failed (e.g., "set", "load")
	Key     string // Attribute key
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s failed for %s: %s", e.Op, e.Key, e.Message)
}

// Unwrap returns the underlying error.
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new RepositoryError.
func NewRepositoryError(op, key, message string, err error) *RepositoryError {
	return &RepositoryError{Op: op, Key: key, Message: message, Err: err}
}
