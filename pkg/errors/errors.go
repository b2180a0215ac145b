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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrAborted       ErrorCode = "ABORTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
	ErrImportCycle ErrorCode = "IMPORT_CYCLE"

	// Generation store errors
	ErrOutOfRange         ErrorCode = "OUT_OF_RANGE"
	ErrGenerationNotFound ErrorCode = "GENERATION_NOT_FOUND"
	ErrNoGenerations      ErrorCode = "NO_GENERATIONS"
	ErrPointerMissing     ErrorCode = "POINTER_MISSING"
	ErrPointerCorrupt     ErrorCode = "POINTER_CORRUPT"

	// Package manager errors
	ErrManagerNotFound ErrorCode = "MANAGER_NOT_FOUND"
	ErrManagerInvalid  ErrorCode = "MANAGER_INVALID"
	ErrCommandFailed   ErrorCode = "COMMAND_FAILED"
	ErrHookFailed      ErrorCode = "HOOK_FAILED"

	// Process lock errors
	ErrLockHeld ErrorCode = "LOCK_HELD"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// HostgenError represents a structured error with code and details
type HostgenError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *HostgenError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HostgenError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *HostgenError) Is(target error) bool {
	var targetErr *HostgenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new HostgenError with the given code and message
func New(code ErrorCode, message string) *HostgenError {
	return &HostgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new HostgenError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *HostgenError {
	return &HostgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a HostgenError.
// Callers must not pass a nil err where the result is used as an error value.
func Wrap(err error, code ErrorCode, message string) *HostgenError {
	if err == nil {
		return nil
	}
	return &HostgenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HostgenError {
	if err == nil {
		return nil
	}
	return &HostgenError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *HostgenError) WithDetail(key string, value interface{}) *HostgenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *HostgenError) WithDetails(details map[string]interface{}) *HostgenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode reports whether any error in err's chain carries code.
func IsErrorCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, &HostgenError{Code: code})
}

// GetErrorCode returns the outermost error code, or ErrUnknown if err is not a HostgenError
func GetErrorCode(err error) ErrorCode {
	var hgErr *HostgenError
	if errors.As(err, &hgErr) {
		return hgErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a HostgenError
func GetErrorDetails(err error) map[string]interface{} {
	var hgErr *HostgenError
	if errors.As(err, &hgErr) {
		return hgErr.Details
	}
	return nil
}
