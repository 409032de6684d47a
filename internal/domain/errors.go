package domain

import (
	"errors"
	"net/http"
)

// HTTPError is implemented by errors that carry their own HTTP status code.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors, matched with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

type (
	// NotFoundError indicates an id that does not resolve
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates malformed input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates a missing or invalid identity
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates an authenticated caller that is not allowed
	// to act on the resource (not the owner, or forking their own UI)
	ForbiddenError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
func (e *ForbiddenError) Is(target error) bool    { return target == ErrForbidden }

// ConflictError represents a uniqueness conflict on a stored resource.
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // "subprompt", "like", ...
	ResourceID   string // ID (or key) of the conflicting resource
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements HTTPError
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// StatusCode returns the HTTP status for any error, defaulting to 500.
// Wrapped sentinels are honored so fmt.Errorf("...: %w", ErrNotFound) maps to 404.
func StatusCode(err error) int {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.StatusCode()
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
