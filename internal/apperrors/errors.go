package apperrors

import (
	"errors"
	"fmt"
)

// Kind categorizes a failure so handlers can map it to a stable
// response code without matching on message text.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindNotRunning
	KindStorage
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindNotRunning:
		return "not_running"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is a typed application error with an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Validation reports invalid caller input (empty task name, bad date).
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound reports a missing resource, including entries owned by a
// different user, which must be indistinguishable from absent ones.
func NotFound(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found: %s", resource, id)}
}

// Conflict reports a violated single-active-timer constraint.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NotRunning reports a stop with no active timer.
func NotRunning(message string) *Error {
	return &Error{Kind: KindNotRunning, Message: message}
}

// Storage wraps a transient persistence failure. This is the only kind
// a caller may retry.
func Storage(operation string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: fmt.Sprintf("storage operation failed: %s", operation), Cause: cause}
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// UserMessage returns the message to surface to the caller verbatim.
// Storage causes are kept out of responses; everything else reports
// exactly what went wrong.
func UserMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
