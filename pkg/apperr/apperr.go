// Package apperr defines the error taxonomy shared by services and
// controllers.
//
// Services return one of the typed constructors; the HTTP layer maps the
// status with StatusOf and writes the message. Anything that is not an
// *apperr.Error collapses to a generic 500; the wrapped cause is for
// server-side logs only and never reaches a client.
package apperr

import (
	"errors"
	"net/http"
)

// Error carries an HTTP status and a client-safe message.
type Error struct {
	Status  int
	Message string
	Err     error // underlying cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation builds a 400 error for a missing or malformed field.
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Unauthorized builds a 401 error for a missing or invalid credential.
func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Forbidden builds a 403 error for an authenticated non-owner.
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// NotFound builds a 404 error for an absent resource.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Wrap attaches a cause to e and returns e.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// StatusOf extracts the HTTP status from err, defaulting to 500.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// MessageOf extracts the client-safe message from err. Unexpected errors get
// a generic message so no internal detail leaks.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Internal Server Error"
}

// IsStatus reports whether err maps to the given HTTP status.
func IsStatus(err error, status int) bool {
	return StatusOf(err) == status
}
