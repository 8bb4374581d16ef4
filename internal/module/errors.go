package module

import (
	"fmt"
	"time"
)

// ModuleError represents a failure raised by a calculation module or by the
// machinery invoking it.
type ModuleError struct {
	Code    ErrorCode
	Message string
	Stage   string
	Cause   error
}

// ErrorCode classifies a module failure.
type ErrorCode string

const (
	// ErrCodeTransient indicates a retryable failure (network, 5xx, load).
	ErrCodeTransient ErrorCode = "TRANSIENT_ERROR"
	// ErrCodeData indicates malformed or inconsistent input data.
	ErrCodeData ErrorCode = "DATA_ERROR"
	// ErrCodeTimeout indicates the stage exceeded its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT_ERROR"
	// ErrCodeNotFound indicates no module is registered for a stage.
	ErrCodeNotFound ErrorCode = "MODULE_NOT_FOUND"
)

// Error implements the error interface.
func (e *ModuleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ModuleError) Unwrap() error {
	return e.Cause
}

// NewTransientError creates a retryable failure.
func NewTransientError(stage, message string, cause error) *ModuleError {
	return &ModuleError{
		Code:    ErrCodeTransient,
		Message: message,
		Stage:   stage,
		Cause:   cause,
	}
}

// NewDataError creates a failure caused by bad input data.
func NewDataError(stage, message string, cause error) *ModuleError {
	return &ModuleError{
		Code:    ErrCodeData,
		Message: message,
		Stage:   stage,
		Cause:   cause,
	}
}

// NewTimeoutError creates a failure for a stage that exceeded its deadline.
func NewTimeoutError(stage string, timeout time.Duration) *ModuleError {
	return &ModuleError{
		Code:    ErrCodeTimeout,
		Message: fmt.Sprintf("stage timed out after %v", timeout),
		Stage:   stage,
	}
}

// NewNotFoundError creates a failure for a missing module registration.
func NewNotFoundError(stage string) *ModuleError {
	return &ModuleError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("no module registered for stage: %s", stage),
		Stage:   stage,
	}
}

// CodeOf returns the taxonomy code of err, or ErrCodeData for untyped errors.
func CodeOf(err error) ErrorCode {
	if modErr, ok := err.(*ModuleError); ok {
		return modErr.Code
	}
	return ErrCodeData
}

// IsTransientError checks if the error is retryable.
func IsTransientError(err error) bool {
	if modErr, ok := err.(*ModuleError); ok {
		return modErr.Code == ErrCodeTransient
	}
	return false
}

// IsDataError checks if the error is a data failure.
func IsDataError(err error) bool {
	if modErr, ok := err.(*ModuleError); ok {
		return modErr.Code == ErrCodeData
	}
	return false
}

// IsTimeoutError checks if the error is a timeout.
func IsTimeoutError(err error) bool {
	if modErr, ok := err.(*ModuleError); ok {
		return modErr.Code == ErrCodeTimeout
	}
	return false
}

// IsNotFoundError checks if the error is a missing registration.
func IsNotFoundError(err error) bool {
	if modErr, ok := err.(*ModuleError); ok {
		return modErr.Code == ErrCodeNotFound
	}
	return false
}
