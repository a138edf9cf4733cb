// Package errors provides coded errors for projclone.
//
// Every failure the clone tooling reports carries a stable ErrorCode so that
// callers and tests can branch on the kind of failure without matching on
// message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// Topology errors
	ErrMarkerRead  ErrorCode = "MARKER_READ"
	ErrMarkerParse ErrorCode = "MARKER_PARSE"
	ErrMarkerWrite ErrorCode = "MARKER_WRITE"
	ErrLock        ErrorCode = "LOCK"

	// Materialization errors
	ErrSamePath   ErrorCode = "SAME_PATH"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
	ErrLinkCreate ErrorCode = "LINK_CREATE"
	ErrCancelled  ErrorCode = "CANCELLED"

	// Lifecycle errors
	ErrProjectOpen         ErrorCode = "PROJECT_OPEN"
	ErrDelete              ErrorCode = "DELETE"
	ErrLaunch              ErrorCode = "LAUNCH"
	ErrUnsupportedPlatform ErrorCode = "UNSUPPORTED_PLATFORM"
)

// ProjectError represents a structured error with code and details
type ProjectError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ProjectError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ProjectError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a ProjectError with the same code
func (e *ProjectError) Is(target error) bool {
	var targetErr *ProjectError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ProjectError with the given code and message
func New(code ErrorCode, message string) *ProjectError {
	return &ProjectError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ProjectError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ProjectError {
	return &ProjectError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ProjectError. It returns nil for a nil err.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &ProjectError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ProjectError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ProjectError) WithDetail(key string, value interface{}) *ProjectError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var projectErr *ProjectError
	if errors.As(err, &projectErr) {
		return projectErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ProjectError
func GetErrorCode(err error) ErrorCode {
	var projectErr *ProjectError
	if errors.As(err, &projectErr) {
		return projectErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ProjectError
func GetErrorDetails(err error) map[string]interface{} {
	var projectErr *ProjectError
	if errors.As(err, &projectErr) {
		return projectErr.Details
	}
	return nil
}
