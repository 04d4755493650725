package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	ErrCodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrCodeInternalError  ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation     ErrorCode = "VALIDATION_ERROR"
	ErrCodeRemoteRejected ErrorCode = "REMOTE_REJECTED"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode
	Message string
	// Status is the HTTP status returned by the backend, set for REMOTE_REJECTED.
	Status int
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with an AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Rejected creates an error for a request the backend refused with a 4xx status
func Rejected(status int, message string) *AppError {
	return &AppError{
		Code:    ErrCodeRemoteRejected,
		Message: message,
		Status:  status,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or "" if there is none
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsUnauthorized checks if error is Unauthorized
func IsUnauthorized(err error) bool {
	return CodeOf(err) == ErrCodeUnauthorized
}

// IsValidation checks if error is a validation failure
func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

// IsRemoteRejected checks if error is a 4xx answer from the backend
func IsRemoteRejected(err error) bool {
	return CodeOf(err) == ErrCodeRemoteRejected
}
