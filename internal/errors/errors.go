package errors

import (
	"errors"
	"fmt"
)

// Kind categorizes a domain error. The set is closed: the use-case layer
// branches on Kind only and never invents new ones.
type Kind string

const (
	// KindGeneric indicates an unspecified internal failure.
	KindGeneric Kind = "generic_error"
	// KindNotFound indicates a missing entity.
	KindNotFound Kind = "not_found"
	// KindNotImplemented indicates an operation the adapter does not support.
	KindNotImplemented Kind = "not_implemented"
	// KindFormat indicates malformed input or undecodable stored data.
	KindFormat Kind = "format_error"
	// KindUnauthorized indicates a failed or missing authentication.
	KindUnauthorized Kind = "unauthorized"
)

// DomainError is the single error type crossing service and use-case
// boundaries. It supports error wrapping and unwrapping for use with
// errors.Is and errors.As.
type DomainError struct {
	// Kind categorizes the error
	Kind Kind
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this one (optional); it is
	// carried for logging and never inspected by callers.
	Cause error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NotImplemented creates a new NotImplemented error.
func NotImplemented(message string) *DomainError {
	return &DomainError{Kind: KindNotImplemented, Message: message}
}

// Format creates a new Format error.
func Format(message string) *DomainError {
	return &DomainError{Kind: KindFormat, Message: message}
}

// Formatf creates a new Format error with formatted message.
func Formatf(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindFormat, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized creates a new Unauthorized error.
func Unauthorized(message string) *DomainError {
	return &DomainError{Kind: KindUnauthorized, Message: message}
}

// Generic creates a new Generic error.
func Generic(message string) *DomainError {
	return &DomainError{Kind: KindGeneric, Message: message}
}

// Genericf creates a new Generic error with formatted message.
func Genericf(format string, args ...any) *DomainError {
	return &DomainError{Kind: KindGeneric, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with a DomainError, preserving the cause.
func Wrap(err error, kind Kind, message string) *DomainError {
	if err == nil {
		return nil
	}
	return &DomainError{Kind: kind, Message: message, Cause: err}
}

// Wrapf wraps an existing error with a DomainError and formatted message.
func Wrapf(err error, kind Kind, format string, args ...any) *DomainError {
	if err == nil {
		return nil
	}
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: err}
}

// isKind checks if an error has a specific kind.
func isKind(err error, kind Kind) bool {
	var derr *DomainError
	return errors.As(err, &derr) && derr.Kind == kind
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isKind(err, KindNotFound)
}

// IsNotImplemented checks if an error is a NotImplemented error.
func IsNotImplemented(err error) bool {
	return isKind(err, KindNotImplemented)
}

// IsFormat checks if an error is a Format error.
func IsFormat(err error) bool {
	return isKind(err, KindFormat)
}

// IsUnauthorized checks if an error is an Unauthorized error.
func IsUnauthorized(err error) bool {
	return isKind(err, KindUnauthorized)
}

// IsGeneric checks if an error is a Generic error.
func IsGeneric(err error) bool {
	return isKind(err, KindGeneric)
}

// GetKind returns the Kind from an error, or empty string if it is not a
// DomainError.
func GetKind(err error) Kind {
	var derr *DomainError
	if errors.As(err, &derr) {
		return derr.Kind
	}
	return ""
}
