// Package errors provides structured error types for svgmapper.
//
// Every refusal the editing core reports (a vertex delete that would leave a
// room with fewer than three points, a draft operation outside the drawing
// state, an unreadable background) carries a machine-readable [Code] so the
// UI layer can decide between a modal warning and silent recovery.
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: refused operations and bad input
//   - *_NOT_FOUND: missing files or entities
//   - IO_ERROR / TRANSACTION_FAILED / INTERNAL_ERROR: unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidGeometry, "polygon must have at least %d points", 3)
//	if errors.Is(err, errors.ErrCodeInvalidGeometry) {
//	    // show a warning, nothing was changed
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Refused operations and input validation
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"
	ErrCodeInvalidState    Code = "INVALID_STATE"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Format errors
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"

	// Script expectations
	ErrCodeAssertion Code = "ASSERTION_FAILED"

	// Unexpected failures
	ErrCodeIO                Code = "IO_ERROR"
	ErrCodeTransactionFailed Code = "TRANSACTION_FAILED"
	ErrCodeInternal          Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsRefusal reports whether err is a refused edit that left the document
// unchanged. Callers surface these as warnings rather than failures.
func IsRefusal(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidGeometry, ErrCodeInvalidState, ErrCodeInvalidInput:
		return true
	}
	return false
}

// TransactionError describes a panic recovered from an undo or redo action.
type TransactionError struct {
	Op          string // "undo" or "redo"
	Description string // entry description, may be empty
	Recovered   any    // value passed to panic
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s %q failed: %v", e.Op, e.Description, e.Recovered)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Recovered)
}

// Code returns the error code for this error type.
func (e *TransactionError) Code() Code {
	return ErrCodeTransactionFailed
}
