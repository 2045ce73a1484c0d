// Package apperr defines the error taxonomy shared by every service layer.
// Handlers branch on Kind, never on message text.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindProvider
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindProvider:
		return "provider"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}

// Error carries a taxonomy kind alongside the message. Upstream provider
// text is propagated inside the message for diagnosability but never parsed.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Validation reports a missing or malformed required field.
func Validation(message string) *Error { return New(KindValidation, message) }

// NotFound reports that no matching voice or referenced asset exists.
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Provider reports a failed upstream TTS or catalog call.
func Provider(message string, cause error) *Error { return Wrap(KindProvider, message, cause) }

// Storage reports a failed persistence step after successful synthesis.
func Storage(message string, cause error) *Error { return Wrap(KindStorage, message, cause) }

// Auth reports a request without an authenticated caller.
func Auth(message string) *Error { return New(KindAuth, message) }

// KindOf extracts the taxonomy kind from any error chain.
// Errors outside the taxonomy map to KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps a taxonomy kind to the response status used at the
// request boundary.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
