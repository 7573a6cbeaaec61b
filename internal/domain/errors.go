package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an error so callers (and ultimately the UI) can react
// to the specific failure rather than a generic message.
type ErrorKind string

const (
	KindNotFound           ErrorKind = "not_found"
	KindForbidden          ErrorKind = "forbidden"
	KindInvalidTransition  ErrorKind = "invalid_transition"
	KindPreconditionFailed ErrorKind = "precondition_failed"
	KindValidation         ErrorKind = "validation_error"
	KindConflict           ErrorKind = "conflict"
)

// Error is the single error type crossing the service boundary. State-machine
// and policy-gate failures are never swallowed; they carry their kind up to
// the transport layer.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFoundError(format string, args ...any) *Error {
	return NewError(KindNotFound, format, args...)
}

func ForbiddenError(format string, args ...any) *Error {
	return NewError(KindForbidden, format, args...)
}

func InvalidTransitionError(format string, args ...any) *Error {
	return NewError(KindInvalidTransition, format, args...)
}

func PreconditionFailedError(format string, args ...any) *Error {
	return NewError(KindPreconditionFailed, format, args...)
}

func ValidationError(format string, args ...any) *Error {
	return NewError(KindValidation, format, args...)
}

func ConflictError(format string, args ...any) *Error {
	return NewError(KindConflict, format, args...)
}

// KindOf returns the kind of err, or "" when err is not a domain Error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err is a domain Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
