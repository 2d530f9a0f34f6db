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

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrMissingOption ErrorCode = "MISSING_REQUIRED_OPTION"

	// Task errors
	ErrTaskNotFound ErrorCode = "TASK_NOT_FOUND"
	ErrTaskInvalid  ErrorCode = "TASK_INVALID"
	ErrStepExecute  ErrorCode = "STEP_EXECUTE"
	ErrCondition    ErrorCode = "CONDITION"

	// Document errors
	ErrMalformedDocument ErrorCode = "MALFORMED_DOCUMENT"
	ErrKindMismatch      ErrorCode = "KIND_MISMATCH"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"

	// Installer errors
	ErrInstallFailure ErrorCode = "INSTALL_FAILURE"
)

// DetailPath is the detail key holding the file an error refers to.
const DetailPath = "path"

// ProjsyncError represents a structured error with code and details
type ProjsyncError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ProjsyncError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ProjsyncError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ProjsyncError) Is(target error) bool {
	var targetErr *ProjsyncError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ProjsyncError with the given code and message
func New(code ErrorCode, message string) *ProjsyncError {
	return &ProjsyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ProjsyncError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ProjsyncError {
	return &ProjsyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ProjsyncError
func Wrap(err error, code ErrorCode, message string) *ProjsyncError {
	if err == nil {
		return nil
	}
	return &ProjsyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ProjsyncError {
	if err == nil {
		return nil
	}
	return &ProjsyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ProjsyncError) WithDetail(key string, value interface{}) *ProjsyncError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithPath records the file the error refers to.
func (e *ProjsyncError) WithPath(path string) *ProjsyncError {
	return e.WithDetail(DetailPath, path)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pe *ProjsyncError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ProjsyncError
func GetErrorCode(err error) ErrorCode {
	var pe *ProjsyncError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ProjsyncError
func GetErrorDetails(err error) map[string]interface{} {
	var pe *ProjsyncError
	if errors.As(err, &pe) {
		return pe.Details
	}
	return nil
}

// GetPath returns the path detail of the outermost ProjsyncError carrying one.
func GetPath(err error) (string, bool) {
	for err != nil {
		var pe *ProjsyncError
		if !errors.As(err, &pe) {
			return "", false
		}
		if p, ok := pe.Details[DetailPath].(string); ok && p != "" {
			return p, true
		}
		err = pe.Wrapped
	}
	return "", false
}
