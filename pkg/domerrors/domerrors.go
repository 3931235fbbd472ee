// Package domerrors defines the coded domain errors shared by services and
// the HTTP layer. Stores return pkg/sentinel errors; services wrap or
// translate them into these so handlers can map a code straight onto an
// HTTP status and error envelope.
package domerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for callers and the transport layer.
type Code string

const (
	// CodeBadRequest marks a request missing required fields. Never retried;
	// the client must resubmit.
	CodeBadRequest Code = "bad_request"
	// CodeUnknownApplication marks an application name absent from the
	// registry. Distinct from CodeNotFound so callers can tell a bad route
	// from a user without a status row.
	CodeUnknownApplication Code = "unknown_application"
	// CodeNotFound marks a missing entity (no status row for the user).
	CodeNotFound Code = "not_found"
	// CodeAlreadyExists marks a create attempted on an existing row.
	CodeAlreadyExists Code = "already_exists"
	// CodeAuditFailure marks a ledger intent or outcome write that failed.
	// Surfaced distinctly because the audit trail may now be incomplete.
	CodeAuditFailure Code = "audit_failure"
	CodeUnauthorized Code = "unauthorized"
	CodeInternal     Code = "internal_error"
)

// Error is a coded domain error. Message is safe to show to API callers;
// Err carries the wrapped cause for logs.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a domain error with a code and caller-facing message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or anything it wraps) is a domain error with
// the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// unclassified errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the caller-facing message from err. Unclassified errors
// get a generic message so internals never leak to API callers.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// ToHTTPStatus maps a domain error code onto an HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnknownApplication, CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeAuditFailure, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
