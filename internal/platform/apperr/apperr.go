// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the typed errors lotmarket services return.

An [AppError] names its HTTP status, a machine-readable code and a message
that is safe to show to API clients. Services construct them with the helpers
below; respond.Error turns them into responses. Anything else reaching the
HTTP layer is treated as an internal error.

	var ErrNotOwner = apperr.Forbidden("Only the owner may modify this lot")
*/
package apperr

import (
	"errors"
	"net/http"
)

// AppError is a client-facing failure.
//
// Cause is kept for server-side logs and is never serialised.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError is one failed validation rule, keyed by JSON field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause returns a copy of e that records cause for logging.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func newError(status int, code, msg string) *AppError {
	return &AppError{Code: code, Message: msg, HTTPStatus: status}
}

// # 4xx

// BadRequest is a 400 for a rejected business rule, e.g. wrong credentials.
func BadRequest(code, msg string) *AppError {
	return newError(http.StatusBadRequest, code, msg)
}

// ValidationError is a 400 VALIDATION_ERROR carrying per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	e := newError(http.StatusBadRequest, "VALIDATION_ERROR", msg)
	e.Details = details
	return e
}

func Unauthorized(msg string) *AppError {
	return newError(http.StatusUnauthorized, "UNAUTHORIZED", msg)
}

func Forbidden(msg string) *AppError {
	return newError(http.StatusForbidden, "FORBIDDEN", msg)
}

// NotFound is a 404 whose message names the resource: NotFound("User") reads "User not found".
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, "NOT_FOUND", resource+" not found")
}

func Conflict(msg string) *AppError {
	return ConflictCode("CONFLICT", msg)
}

// ConflictCode is a 409 with a specific code such as INVALID_STATUS_TRANSITION.
func ConflictCode(code, msg string) *AppError {
	return newError(http.StatusConflict, code, msg)
}

// TooManyRequests is a 429 for a client over its rate limit.
func TooManyRequests(msg string) *AppError {
	return newError(http.StatusTooManyRequests, "TOO_MANY_REQUESTS", msg)
}

// # 5xx

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	e := newError(http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	e.Cause = cause
	return e
}

// ServiceUnavailable reports a disabled or unreachable dependency.
func ServiceUnavailable(msg string) *AppError {
	return newError(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", msg)
}

// # Inspection

// IsAppError reports whether err's chain contains an [*AppError].
func IsAppError(err error) bool {
	return As(err) != nil
}

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
