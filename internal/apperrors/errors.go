// Package apperrors holds the error taxonomy shared by the services and the
// HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindInvalidCredentials
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error carries a Kind and a message that is safe to show to the caller.
// Err holds the underlying cause, if any, and is never sent to the client.
type Error struct {
	Kind    Kind
	Message string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

const internalMessage = "Internal server error"

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// InvalidCredentials uses one message for unknown email and wrong password.
func InvalidCredentials() error {
	return &Error{Kind: KindInvalidCredentials, Message: "Invalid email or password"}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal wraps an unexpected failure. op names the failed operation for the
// server log.
func Internal(op string, err error) error {
	return &Error{Kind: KindInternal, Message: internalMessage, Op: op, Err: err}
}

// KindOf reports the Kind of err. Errors outside the taxonomy are internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MapErrorToHTTP maps err to a status code and a body that leaks no internals.
func MapErrorToHTTP(err error) (int, ErrorResponse) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, ErrorResponse{Error: internalMessage}
	}

	switch appErr.Kind {
	case KindValidation, KindConflict, KindInvalidCredentials:
		return http.StatusBadRequest, ErrorResponse{Error: appErr.Message}
	case KindNotFound:
		return http.StatusNotFound, ErrorResponse{Error: appErr.Message}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: internalMessage}
	}
}
