// Package apperrors defines the error taxonomy shared by services and
// handlers. Services return typed errors; handlers translate them into
// HTTP responses with errors.As. Every category is recoverable: a
// failure aborts the single in-flight operation and nothing else.
package apperrors

import "fmt"

// ValidationError reports rule-violating or malformed input, scoped to a
// field. Handlers map it to HTTP 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError reports uniqueness or occupancy conflicts at the entity
// level. Handlers map it to HTTP 409.
type ConflictError struct {
	Entity  string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Message)
}

func Conflict(entity, message string) *ConflictError {
	return &ConflictError{Entity: entity, Message: message}
}

// AuthenticationError means no valid principal was presented. Handlers
// map it to HTTP 401 with a redirect hint to the login endpoint.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

func Unauthenticated(message string) *AuthenticationError {
	return &AuthenticationError{Message: message}
}

// AuthorizationError means an authenticated principal holds the wrong
// role for the operation. Handlers map it to HTTP 403.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

func Forbidden(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

// NotFoundError reports a missing entity. Handlers map it to HTTP 404.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func NotFound(entity string) *NotFoundError {
	return &NotFoundError{Entity: entity}
}
