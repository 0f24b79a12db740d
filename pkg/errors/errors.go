// Package errors provides structured error types for the Bindery application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and web server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every malformed-input failure in the imposition pipeline carries
// ErrCodeInvalidInput: negative flyleaf counts, non-positive signature
// lengths, misaligned page sequences, unknown page tokens, bad paper sizes.
// There is no retryable kind; a validation failure is a hard stop signaling
// a caller error.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "flyleaf sets must be >= 0, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodePDF, origErr, "failed to read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// ErrCodeInvalidInput covers every malformed-input case: negative
	// counts, non-positive signature lengths, page sequences not padded
	// to a multiple of four, unrecognized page tokens, unknown paper
	// sizes or scaling modes.
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// ErrCodeNotFound is returned when a requested artifact or file
	// does not exist.
	ErrCodeNotFound Code = "NOT_FOUND"

	// ErrCodePDF is returned when a source document cannot be read or
	// written as a PDF (corrupt file, encrypted file, writer failure).
	ErrCodePDF Code = "PDF_ERROR"

	// ErrCodeIO is returned for filesystem failures around artifacts.
	ErrCodeIO Code = "IO_ERROR"

	// ErrCodeInternal is returned for unexpected internal errors.
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
