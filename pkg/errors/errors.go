package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPermission   ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Wiki errors
	ErrWikiNotFound ErrorCode = "WIKI_NOT_FOUND"
	ErrWikiExists   ErrorCode = "WIKI_EXISTS"

	// Sync preconditions. Per-entry copy/delete failures are never
	// surfaced as errors; they land in the sync report instead.
	ErrDestCreate    ErrorCode = "DEST_CREATE"
	ErrSourceInvalid ErrorCode = "SOURCE_INVALID"

	// Build errors
	ErrRenderFailed  ErrorCode = "RENDER_FAILED"
	ErrListingFailed ErrorCode = "LISTING_FAILED"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"

	// Server errors
	ErrServe ErrorCode = "SERVE"
)

// MillError represents a structured error with code and details
type MillError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MillError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MillError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MillError) Is(target error) bool {
	var targetErr *MillError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MillError with the given code and message
func New(code ErrorCode, message string) *MillError {
	return &MillError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MillError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MillError {
	return &MillError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MillError
func Wrap(err error, code ErrorCode, message string) *MillError {
	if err == nil {
		return nil
	}
	return &MillError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MillError {
	if err == nil {
		return nil
	}
	return &MillError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MillError) WithDetail(key string, value interface{}) *MillError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var millErr *MillError
	if errors.As(err, &millErr) {
		return millErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MillError
func GetErrorCode(err error) ErrorCode {
	var millErr *MillError
	if errors.As(err, &millErr) {
		return millErr.Code
	}
	return ErrUnknown
}
