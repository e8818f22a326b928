package service

import (
	"errors"
	"fmt"
)

// Error categories. Handlers map each one to an HTTP status.
var (
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
)

// Error is a failure that is safe to show to the caller.
type Error struct {
	kind    error
	message string
}

// NewError creates an Error of the given kind with a client-facing message.
func NewError(kind error, format string, args ...any) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.kind
}

// Message returns the client-facing message of err, or fallback when err does not carry one.
func Message(err error, fallback string) string {
	var se *Error
	if errors.As(err, &se) {
		return se.message
	}
	return fallback
}
