// Package errors provides standardized error handling for the support-chat service.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Bad user input. Surfaced inline, blocks only the current submission.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Remote chat/translate/email service returned a non-success result.
	ErrCodeUpstreamError ErrorCode = "UPSTREAM_ERROR"

	// Transport-level failure reaching an upstream. Treated like UPSTREAM_ERROR
	// for anything user-visible.
	ErrCodeNetworkError ErrorCode = "NETWORK_ERROR"

	// Local or remote persistence failed. Always swallowed at the store
	// boundary, logged only.
	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewValidationError creates a non-retryable bad-input error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamError creates an error for a failed upstream service call.
// The chat turn treats it as terminal: no retry, at-most-once per turn.
func NewUpstreamError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamError,
		Message:   fmt.Sprintf("Upstream service '%s' error", service),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNetworkError creates an error for a transport-level failure.
func NewNetworkError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetworkError,
		Message:   fmt.Sprintf("Network error reaching '%s'", service),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageUnavailableError creates an error for a failed persistence
// operation. Callers log it and degrade, they never propagate it to users.
func NewStorageUnavailableError(backend string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageUnavailable,
		Message:   fmt.Sprintf("Storage backend '%s' unavailable", backend),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// AsStandard unwraps err to a StandardError, or nil.
func AsStandard(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return nil
}

// CodeOf extracts the ErrorCode from err, or empty when err is not a
// StandardError.
func CodeOf(err error) ErrorCode {
	if stdErr := AsStandard(err); stdErr != nil {
		return stdErr.Code
	}
	return ""
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidationFailed
}

// IsStorageUnavailable reports whether err is a swallowed-class storage failure.
func IsStorageUnavailable(err error) bool {
	return CodeOf(err) == ErrCodeStorageUnavailable
}

// IsUpstream reports whether err is an upstream or network failure; both are
// presented to users the same way.
func IsUpstream(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeUpstreamError || code == ErrCodeNetworkError
}
