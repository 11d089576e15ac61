// Package errors provides application-level error types and utilities.
// It defines the failure taxonomy shared by the report lifecycle, the
// capability registry, and the parent portal: forbidden, invalid transition,
// incomplete report, conflict, portal auth failures, not found, and
// collaborator errors.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation         ErrorType = "validation_error"
	ErrorTypeNotFound           ErrorType = "not_found"
	ErrorTypeConflict           ErrorType = "conflict"
	ErrorTypeForbidden          ErrorType = "forbidden"
	ErrorTypeInvalidTransition  ErrorType = "invalid_transition"
	ErrorTypeIncompleteReport   ErrorType = "incomplete_report"
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeSessionExpired     ErrorType = "session_expired"
	ErrorTypeUnauthenticated    ErrorType = "unauthenticated"
	ErrorTypeRateLimited        ErrorType = "rate_limited"
	ErrorTypeCollaborator       ErrorType = "collaborator_error"
)

// AppError represents an application error with structured context.
// Details carries enough information (entity id, attempted transition,
// missing capability) for the caller to render an actionable message
// without re-deriving it.
type AppError struct {
	Type    ErrorType      `json:"type"`
	Message string         `json:"message"`
	Code    int            `json:"code"`
	Details map[string]any `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithDetail attaches a structured detail field and returns the error.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

func newAppError(errType ErrorType, message string, code int) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    code,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return newAppError(ErrorTypeValidation, message, http.StatusBadRequest)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return newAppError(ErrorTypeNotFound, message, http.StatusNotFound)
}

// NewConflictError creates a new optimistic-version conflict error
func NewConflictError(message string) *AppError {
	return newAppError(ErrorTypeConflict, message, http.StatusConflict)
}

// NewForbiddenError creates an error for a missing capability. The
// capability name is recorded in the details so the caller can say
// exactly what was required.
func NewForbiddenError(message string, capability string) *AppError {
	return newAppError(ErrorTypeForbidden, message, http.StatusForbidden).
		WithDetail("required_capability", capability)
}

// NewInvalidTransitionError creates an error for a status change not
// present in the lifecycle transition table.
func NewInvalidTransitionError(reportID uint, from, to string) *AppError {
	return newAppError(
		ErrorTypeInvalidTransition,
		fmt.Sprintf("cannot transition report from %s to %s", from, to),
		http.StatusUnprocessableEntity,
	).
		WithDetail("report_id", reportID).
		WithDetail("from_status", from).
		WithDetail("to_status", to)
}

// NewIncompleteReportError creates an error for a submit attempt with
// incomplete mandatory sections, naming the first incomplete one.
func NewIncompleteReportError(reportID uint, sectionKey, sectionTitle string) *AppError {
	return newAppError(
		ErrorTypeIncompleteReport,
		fmt.Sprintf("section %q is incomplete", sectionTitle),
		http.StatusUnprocessableEntity,
	).
		WithDetail("report_id", reportID).
		WithDetail("section_key", sectionKey).
		WithDetail("section_title", sectionTitle)
}

// NewInvalidCredentialsError creates a portal login failure. The message
// is fixed so a caller cannot learn whether the PIN exists.
func NewInvalidCredentialsError() *AppError {
	return newAppError(ErrorTypeInvalidCredentials, "invalid PIN", http.StatusUnauthorized)
}

// NewSessionExpiredError creates an error for an expired portal session.
func NewSessionExpiredError() *AppError {
	return newAppError(ErrorTypeSessionExpired, "session expired", http.StatusUnauthorized)
}

// NewUnauthenticatedError creates an error for a missing or unknown token.
func NewUnauthenticatedError(message string) *AppError {
	return newAppError(ErrorTypeUnauthenticated, message, http.StatusUnauthorized)
}

// NewRateLimitedError creates an error for a client exceeding the login
// attempt budget.
func NewRateLimitedError() *AppError {
	return newAppError(ErrorTypeRateLimited, "too many attempts, try again later", http.StatusTooManyRequests)
}

// NewCollaboratorError wraps a persistence or clock collaborator failure.
// It is always distinguishable from domain-rule failures so the caller can
// decide retry vs. surface-to-user.
func NewCollaboratorError(operation string, cause error) *AppError {
	err := newAppError(
		ErrorTypeCollaborator,
		fmt.Sprintf("collaborator failure during %s", operation),
		http.StatusInternalServerError,
	).WithDetail("operation", operation)
	err.cause = cause
	return err
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsForbiddenError checks if the error is a capability failure
func IsForbiddenError(err error) bool { return isType(err, ErrorTypeForbidden) }

// IsInvalidTransitionError checks if the error is a state machine violation
func IsInvalidTransitionError(err error) bool { return isType(err, ErrorTypeInvalidTransition) }

// IsIncompleteReportError checks if the error is a progress precondition failure
func IsIncompleteReportError(err error) bool { return isType(err, ErrorTypeIncompleteReport) }

// IsConflictError checks if the error is an optimistic-version conflict
func IsConflictError(err error) bool { return isType(err, ErrorTypeConflict) }

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool { return isType(err, ErrorTypeNotFound) }

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool { return isType(err, ErrorTypeValidation) }

// IsSessionExpiredError checks if the error is an expired portal session
func IsSessionExpiredError(err error) bool { return isType(err, ErrorTypeSessionExpired) }

// IsInvalidCredentialsError checks if the error is a portal login failure
func IsInvalidCredentialsError(err error) bool { return isType(err, ErrorTypeInvalidCredentials) }

// IsUnauthenticatedError checks if the error is a missing/unknown token failure
func IsUnauthenticatedError(err error) bool { return isType(err, ErrorTypeUnauthenticated) }

// IsRateLimitedError checks if the error is a login rate limit rejection
func IsRateLimitedError(err error) bool { return isType(err, ErrorTypeRateLimited) }

// IsCollaboratorError checks if the error came from a collaborator, not a domain rule
func IsCollaboratorError(err error) bool { return isType(err, ErrorTypeCollaborator) }
