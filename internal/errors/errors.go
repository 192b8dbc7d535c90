// Package errors provides the client-side error taxonomy for the Rentify client.
//
// Every failure surfaced to the page layer is one of four kinds:
//
//	CodeNetwork    the request never completed (DNS, refused connection,
//	               cross-origin rejection)
//	CodeAPI        the server answered with a non-success status
//	CodeParse      a success response carried a body that was expected to
//	               be JSON but was not
//	CodeValidation rejected client-side before any network call was made
//
// Usage:
//
//	// In the REST client - return typed errors
//	return errors.APIStatus(resp.StatusCode, "unable to load listing", detail)
//
//	// In the CLI - check with errors.Is
//	if errors.Is(err, errors.ErrValidation) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
	New    = errors.New
)

// Code represents a machine-readable error kind.
type Code string

// Error codes used throughout the client.
const (
	CodeNetwork    Code = "NETWORK"
	CodeAPI        Code = "API"
	CodeParse      Code = "PARSE"
	CodeValidation Code = "VALIDATION"
)

// Error is a client error with a kind, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	// Status is the HTTP status code for CodeAPI errors, 0 otherwise.
	Status  int   `json:"status,omitempty"`
	Details any   `json:"details,omitempty"`
	cause   error // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Status:  e.Status,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNetwork    = &Error{Code: CodeNetwork, Message: "network error"}
	ErrAPI        = &Error{Code: CodeAPI, Message: "api error"}
	ErrParse      = &Error{Code: CodeParse, Message: "invalid response format"}
	ErrValidation = &Error{Code: CodeValidation, Message: "validation error"}
)

// Network creates a network error.
func Network(msg string) *Error {
	return &Error{Code: CodeNetwork, Message: msg}
}

// Networkf creates a network error with formatted message.
func Networkf(format string, args ...any) *Error {
	return &Error{Code: CodeNetwork, Message: fmt.Sprintf(format, args...)}
}

// API creates an api error.
func API(msg string) *Error {
	return &Error{Code: CodeAPI, Message: msg}
}

// APIStatus creates an api error carrying the responding HTTP status and a
// message enriched by the status class. fallback names the failed operation
// from the user's point of view ("unable to load listings").
func APIStatus(status int, fallback, serverDetail string) *Error {
	msg := fallback
	switch {
	case status == 404:
		msg = fallback + ": endpoint not found"
	case status == 500:
		msg = fallback + ": server error"
	case status >= 400 && status < 500:
		msg = fmt.Sprintf("%s: client error (%d)", fallback, status)
	case serverDetail != "":
		msg = fallback + ": " + serverDetail
	}
	return &Error{Code: CodeAPI, Message: msg, Status: status, Details: serverDetail}
}

// Parse creates a parse error.
func Parse(msg string) *Error {
	return &Error{Code: CodeParse, Message: msg}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}
