package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeInvalid  ErrorCode = "INVALID"
	ErrCodeFormat   ErrorCode = "FORMAT"
	ErrCodeConflict ErrorCode = "CONFLICT"
	ErrCodeStorage  ErrorCode = "STORAGE"
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error hides the wrapped sentinel for not-found and conflict errors so the
// message stays the one the client sees.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil && !isSentinel(e.Err) {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrTaskNotFound   = NewError(ErrCodeNotFound, "task not found")
	ErrTaskExists     = NewError(ErrCodeConflict, "task already exists")
	ErrInvalidPayload = NewError(ErrCodeInvalid, "invalid payload")
)

func isSentinel(err error) bool {
	return err == ErrTaskNotFound || err == ErrTaskExists || err == ErrInvalidPayload
}

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// Storage classifies a backend failure, keeping the driver error for logs.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var dErr *Error
	if errors.As(err, &dErr) {
		return err
	}
	return WrapError(ErrCodeStorage, op, err)
}
