// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

/*
Package apperr defines the centralized error handling framework for Edura.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Payloads: Idempotency rejections (already completed / already issued) carry the
    existing state so callers can act on it instead of re-querying.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type for the Edura API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "ALREADY_ISSUED").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
	// Data carries existing state for idempotency rejections
	// (e.g. the previously issued certificate's artifact location).
	Data any `json:"data,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// WithData attaches an existing-state payload and returns the error for chaining.
func (e *AppError) WithData(data any) *AppError {
	e.Data = data
	return e
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Course") // Returns "Course not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// Unprocessable creates a 422 [AppError] for semantically invalid input.
func Unprocessable(msg string) *AppError {
	return &AppError{
		Code:       "UNPROCESSABLE",
		Message:    msg,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// # Learning Domain Errors

// PrerequisiteNotMet creates a 422 [AppError] for a sequential-order violation.
//
// It names the first unmet chapter (title and position) so the client can
// render "complete X first".
func PrerequisiteNotMet(chapterTitle string, position int) *AppError {
	return &AppError{
		Code:       "PREREQUISITE_NOT_MET",
		Message:    fmt.Sprintf("Complete chapter %d (%s) first", position, chapterTitle),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// AlreadyCompleted creates a 409 [AppError] for a repeated chapter completion.
//
// This is an idempotency rejection, not a server error: the completion record
// already exists and is never duplicated.
func AlreadyCompleted(chapterTitle string) *AppError {
	return &AppError{
		Code:       "ALREADY_COMPLETED",
		Message:    fmt.Sprintf("Chapter %q is already completed", chapterTitle),
		HTTPStatus: http.StatusConflict,
	}
}

// AlreadyIssued creates a 409 [AppError] for a repeated certificate issuance.
//
// Callers should attach the existing certificate via [AppError.WithData] so the
// client receives the original artifact location (idempotent-read semantics).
func AlreadyIssued() *AppError {
	return &AppError{
		Code:       "ALREADY_ISSUED",
		Message:    "Certificate already issued for this course",
		HTTPStatus: http.StatusConflict,
	}
}

// NotEligible creates a 422 [AppError] for a certificate requested before all
// chapters of the course are complete.
func NotEligible(completed, total int) *AppError {
	return &AppError{
		Code:       "NOT_ELIGIBLE",
		Message:    fmt.Sprintf("Course not complete: %d of %d chapters finished", completed, total),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServiceUnavailable creates a 503 [AppError] for maintenance mode.
func ServiceUnavailable(msg string) *AppError {
	return &AppError{
		Code:       "SERVICE_UNAVAILABLE",
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err is an [*AppError] with the given code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
