// Package apierr classifies every failure the backend boundary can produce
// into the three classes the stores and the view distinguish.
package apierr

import (
	"errors"
	"net/http"
)

// Kind partitions failures by how the caller may react to them.
type Kind int

const (
	// KindNetwork covers transport failures and 5xx responses. Retryable.
	KindNetwork Kind = iota
	// KindAuth is a 401. The gateway fires the global logout hook before
	// surfacing it; not retryable with the current session.
	KindAuth
	// KindValidation is a 4xx business-rule rejection, including 409
	// conflicts and response bodies that do not match the declared shape.
	// Not retryable without changing the input.
	KindValidation
)

// Error is a tagged backend failure. Message is human-readable and safe to
// display directly.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, status int, message string) *Error {
	return &Error{Kind: kind, Status: status, Message: message}
}

// Network wraps a transport-level failure that never produced a response.
func Network(message string) *Error {
	return &Error{Kind: KindNetwork, Message: message}
}

// Validation builds a local validation failure, issued before any request.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message}
}

// FromStatus maps a non-2xx response to its class. The server's own error
// message is kept when present.
func FromStatus(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	switch {
	case status == http.StatusUnauthorized:
		return &Error{Kind: KindAuth, Status: status, Message: message}
	case status >= 400 && status < 500:
		return &Error{Kind: KindValidation, Status: status, Message: message}
	default:
		return &Error{Kind: KindNetwork, Status: status, Message: message}
	}
}

func kindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsAuth reports whether err is a 401-class failure.
func IsAuth(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindAuth
}

// IsValidation reports whether err is a business-rule rejection.
func IsValidation(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindValidation
}

// IsRetryable reports whether a user-initiated retry of the same input can
// succeed. Only network/server failures qualify.
func IsRetryable(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindNetwork
}
