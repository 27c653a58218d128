package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the response envelope.
type Kind int

const (
	KindUnexpected Kind = iota
	KindUnauthenticated
	KindValidation
	KindDuplicateName
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindValidation:
		return "validation"
	case KindDuplicateName:
		return "duplicate_name"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unexpected"
	}
}

// Error is the only error type handlers translate into a client response.
// Message is safe to show to the client; Err carries the internal cause.
type Error struct {
	Kind    Kind
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

const (
	msgUnauthenticated = "No autenticado"
	msgUnexpected      = "Error interno del servidor"
)

func Unauthenticated(cause error) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msgUnauthenticated, Err: cause}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func DuplicateName(message string) *Error {
	return &Error{Kind: KindDuplicateName, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Unexpected wraps an internal failure. The cause is logged, never sent.
func Unexpected(operation string, cause error) *Error {
	return &Error{Kind: KindUnexpected, Message: operation, Err: cause}
}

// KindOf reports the kind of err; anything that is not an *Error is unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Status maps an error to its HTTP status.
func Status(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindValidation, KindDuplicateName, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message that may be shown to the client.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return msgUnexpected
	}
	switch e.Kind {
	case KindUnexpected:
		return msgUnexpected
	case KindUnauthenticated:
		return msgUnauthenticated
	default:
		return e.Message
	}
}
