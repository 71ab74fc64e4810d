// Package apierrors defines the client-visible error taxonomy of the notes API.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an APIError.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindAuthentication Kind = "authentication"
	KindNotFound       Kind = "not_found"
	KindUnexpected     Kind = "unexpected"
)

// APIError is an error whose message is safe to return to the client.
type APIError struct {
	Kind     Kind
	HTTPCode int
	Message  string
	Err      error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// As extracts an *APIError from the error chain.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == kind
}

func newError(kind Kind, code int, message string) *APIError {
	return &APIError{Kind: kind, HTTPCode: code, Message: message}
}

func NewErrValidation(message string) *APIError {
	return newError(KindValidation, http.StatusBadRequest, message)
}

func NewErrMissingCredentials() *APIError {
	return NewErrValidation("Email and password are required")
}

func NewErrPasswordTooLong() *APIError {
	return NewErrValidation("Password must be at most 72 bytes")
}

func NewErrInvalidRequestBody() *APIError {
	return NewErrValidation("Invalid request body")
}

func NewErrRequestTooLarge() *APIError {
	return newError(KindValidation, http.StatusRequestEntityTooLarge, "Request body too large")
}

func NewErrTitleRequired() *APIError {
	return NewErrValidation("Title is required")
}

// NewErrUserExists is reported with status 400 to stay compatible with
// existing clients.
func NewErrUserExists() *APIError {
	return newError(KindConflict, http.StatusBadRequest, "User already exists. Try logging in instead.")
}

// NewErrInvalidCredentials is shared by the unknown-email and wrong-password
// outcomes of login.
func NewErrInvalidCredentials() *APIError {
	return newError(KindAuthentication, http.StatusUnauthorized, "Invalid email or password")
}

func NewErrMissingAuthorizationToken() *APIError {
	return newError(KindAuthentication, http.StatusUnauthorized, "missing or malformed token")
}

func NewErrInvalidAuthorizationToken() *APIError {
	return newError(KindAuthentication, http.StatusUnauthorized, "invalid or expired token")
}

func NewErrNoteNotFound() *APIError {
	return newError(KindNotFound, http.StatusNotFound, "Note not found")
}

func NewErrExportNotFound() *APIError {
	return newError(KindNotFound, http.StatusNotFound, "Export not found")
}

// NewErrInternalServerError hides err behind message. The wrapped error is
// kept for logging only.
func NewErrInternalServerError(message string, err error) *APIError {
	e := newError(KindUnexpected, http.StatusInternalServerError, message)
	e.Err = err
	return e
}

func NewErrRouteNotFound() *APIError {
	return newError(KindNotFound, http.StatusNotFound, "Not found")
}

func NewErrMethodNotAllowed() *APIError {
	return newError(KindValidation, http.StatusMethodNotAllowed, "Method not allowed")
}
