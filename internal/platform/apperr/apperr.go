// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

// Package apperr is the error vocabulary of the API. Services return an
// [*AppError] (or wrap one), and the respond package maps it straight onto an
// HTTP response. The Cause field stays server-side: clients only ever see
// the Code, Message, and Details.
package apperr

import (
	"errors"
	"net/http"
)

// AppError pairs a machine-readable code and client-safe message with the
// HTTP status it should produce.
type AppError struct {
	// Code identifies the failure class, e.g. "NOT_FOUND" or "CONFLICT".
	Code string `json:"code"`
	// Message is safe to show to the client verbatim.
	Message string `json:"error"`
	// HTTPStatus is the response status this error maps to.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, kept for logs only. Never serialized.
	Cause error `json:"-"`
	// Details lists per-field failures on VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

// Unwrap lets errors.Is and errors.As walk into the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause attaches the underlying error and returns the receiver, so the
// call chains inline at the return site.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NotFound is a 404 for the named resource, e.g. NotFound("Employee")
// reads "Employee not found".
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized is a 401 for missing, invalid, expired, or revoked
// credentials.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden is a 403: the caller is known but lacks the privilege.
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict is for unique-constraint violations such as duplicate
// registration. It maps to 400 rather than 409: the public contract treats a
// taken email the same as any other rejected input.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ValidationError is a 422 carrying zero or more per-field failures.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

// Internal is a 500. The cause is retained for the log; the client gets
// only a generic message.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// As digs the [*AppError] out of err's chain, or returns nil.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
