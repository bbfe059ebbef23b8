// Package apperr defines the single error shape every console layer hands to views.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes console errors.
type Kind int

const (
	// KindTransport indicates no usable response was received.
	KindTransport Kind = iota
	// KindRemote indicates the remote collaborator answered with a non-2xx status.
	KindRemote
	// KindValidation indicates a client-side check failed before any network call.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRemote:
		return "remote"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// UnexpectedMessage prefixes every transport failure.
const UnexpectedMessage = "unexpected error"

// Error is an error with a human-readable message.
type Error struct {
	Kind    Kind
	Status  int // HTTP status for KindRemote, zero otherwise
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Kind == KindTransport && e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsNotFound returns true if the remote collaborator reported 404.
func (e *Error) IsNotFound() bool {
	return e.Kind == KindRemote && e.Status == http.StatusNotFound
}

// IsConflict returns true if the remote collaborator reported 409, e.g. a stale version.
func (e *Error) IsConflict() bool {
	return e.Kind == KindRemote && e.Status == http.StatusConflict
}

// IsValidation returns true for client-side validation failures.
func (e *Error) IsValidation() bool {
	return e.Kind == KindValidation
}

// Remote builds a remote rejection. An empty detail is replaced by a message
// carrying the status code.
func Remote(status int, detail string) *Error {
	if detail == "" {
		detail = fmt.Sprintf("http error: status %d", status)
	}
	return &Error{Kind: KindRemote, Status: status, Message: detail}
}

// Transport wraps a failure that produced no usable response.
func Transport(cause error) *Error {
	return &Error{Kind: KindTransport, Message: UnexpectedMessage, Cause: cause}
}

// Validation builds a client-side validation failure.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Invalid wraps a sentinel rule violation so errors.Is keeps working.
func Invalid(rule error) *Error {
	return &Error{Kind: KindValidation, Message: rule.Error(), Cause: rule}
}

// Normalize converts any error into an *Error. Errors that are not already
// console errors are treated as transport failures.
func Normalize(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Transport(err)
}

// Message returns the text a view renders for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}

// HTTPStatus maps an error onto the status the console surface answers with.
func HTTPStatus(err error) int {
	e := Normalize(err)
	switch {
	case e.IsValidation():
		return http.StatusBadRequest
	case e.IsNotFound():
		return http.StatusNotFound
	case e.IsConflict():
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
