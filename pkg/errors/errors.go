// Package errors provides custom error types for the labelkit system.
// These errors enable programmatic error checking with errors.Is/errors.As
// and carry enough context to explain which registry, field, or instance
// an operation failed against.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the labelkit system
var (
	// ErrNotFound indicates that a requested record or resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a record already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownInstance indicates that a named registry instance cannot be resolved
	ErrUnknownInstance = errors.New("unknown instance")

	// ErrMissingContext indicates that a registry requires disambiguating
	// context (e.g. organism) that the caller did not supply
	ErrMissingContext = errors.New("missing context")

	// ErrIntegrity indicates that a persistence call silently stored nothing
	// when at least one stored record was expected
	ErrIntegrity = errors.New("integrity violation")

	// ErrInputShape indicates that a caller passed a value of an unsupported shape
	ErrInputShape = errors.New("unsupported input shape")

	// ErrReadOnly indicates an attempt to modify a read-only registry
	ErrReadOnly = errors.New("read only")
)

// NotFoundError represents an error when a record or resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// UnknownInstanceError represents a failure to resolve a named registry instance
type UnknownInstanceError struct {
	Instance string
}

// Error implements the error interface
func (e *UnknownInstanceError) Error() string {
	return fmt.Sprintf("registry instance %q cannot be resolved", e.Instance)
}

// Is implements errors.Is support
func (e *UnknownInstanceError) Is(target error) bool {
	return target == ErrUnknownInstance
}

// NewUnknownInstanceError creates a new UnknownInstanceError
func NewUnknownInstanceError(instance string) *UnknownInstanceError {
	return &UnknownInstanceError{Instance: instance}
}

// MissingContextError indicates a registry kind requires context the caller
// did not supply. Raised before any round trip to the backing store.
type MissingContextError struct {
	Kind string // registry kind, e.g. "gene"
	Key  string // required context key, e.g. "organism"
}

// Error implements the error interface
func (e *MissingContextError) Error() string {
	return fmt.Sprintf("registry %q requires %s context, none supplied", e.Kind, e.Key)
}

// Is implements errors.Is support
func (e *MissingContextError) Is(target error) bool {
	return target == ErrMissingContext
}

// NewMissingContextError creates a new MissingContextError
func NewMissingContextError(kind, key string) *MissingContextError {
	return &MissingContextError{Kind: kind, Key: key}
}

// IntegrityError represents a persistence call that was expected to store at
// least one record but stored none. Assertion-grade: never retried.
type IntegrityError struct {
	Operation string
	Resource  string
	Expected  int
	Stored    int
}

// Error implements the error interface
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s of %s stored %d of %d expected records", e.Operation, e.Resource, e.Stored, e.Expected)
}

// Is implements errors.Is support
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// NewIntegrityError creates a new IntegrityError
func NewIntegrityError(operation, resource string, expected, stored int) *IntegrityError {
	return &IntegrityError{Operation: operation, Resource: resource, Expected: expected, Stored: stored}
}

// InputShapeError indicates a caller passed data of an unsupported shape,
// e.g. neither a tabular frame nor an annotated matrix.
type InputShapeError struct {
	Operation string
	Got       string // description of what was actually passed
	Want      string // description of the supported shapes
}

// Error implements the error interface
func (e *InputShapeError) Error() string {
	return fmt.Sprintf("%s: got %s, want %s", e.Operation, e.Got, e.Want)
}

// Is implements errors.Is support
func (e *InputShapeError) Is(target error) bool {
	return target == ErrInputShape
}

// NewInputShapeError creates a new InputShapeError
func NewInputShapeError(operation, got, want string) *InputShapeError {
	return &InputShapeError{Operation: operation, Got: got, Want: want}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ResourceError represents an error during registry resource operations
type ResourceError struct {
	Operation string // "create", "save", "filter", "link"
	Resource  string // "label", "feature", "gene", "artifact"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// APIError represents an error from the hub identity service
type APIError struct {
	Service    string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Service, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new APIError
func NewAPIError(service string, statusCode int, message string) *APIError {
	return &APIError{Service: service, StatusCode: statusCode, Message: message}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "yaml", "csv", "env"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "stat"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnknownInstance checks if an error is an unknown instance error
func IsUnknownInstance(err error) bool {
	return errors.Is(err, ErrUnknownInstance)
}

// IsMissingContext checks if an error is a missing context error
func IsMissingContext(err error) bool {
	return errors.Is(err, ErrMissingContext)
}

// IsIntegrity checks if an error is an integrity violation
func IsIntegrity(err error) bool {
	return errors.Is(err, ErrIntegrity)
}

// IsInputShape checks if an error is an unsupported input shape error
func IsInputShape(err error) bool {
	return errors.Is(err, ErrInputShape)
}

// Helper wrapping functions for common patterns

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}
