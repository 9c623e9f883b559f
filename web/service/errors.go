package service

import (
	"errors"
	"strings"
)

var (
	// ErrUnauthenticated means the request carries no usable identity.
	ErrUnauthenticated = errors.New("authentication failed")
	// ErrForbidden means the identity lacks the role an operation needs.
	ErrForbidden       = errors.New("insufficient permissions")
	// ErrNotFound covers both missing records and records the caller does not own.
	ErrNotFound        = errors.New("todo not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrConflict        = errors.New("username or email already registered")
	ErrBadCredentials  = errors.New("could not validate user")
	ErrInvalidToken    = errors.New("invalid or expired token")
)

// FieldError describes one failed field constraint.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// ValidationError is returned when a draft or path parameter violates its
// constraints.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Msg: msg}}}
}
