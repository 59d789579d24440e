// Package errors provides structured error types for the lifeline engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine packages and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Precondition and input validation failures
//   - NOT_FOUND: A referenced lifeline or activity bar does not exist
//   - RELOCATION_DIVERGED: The cascade relocator exceeded its pass limit
//   - INTERNAL_*: Unexpected internal errors
//
// A RELOCATION_DIVERGED error signals a defect in the placement rules, not
// a recoverable condition. Callers must abort the edit rather than apply a
// partial layout.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidGeometry, "rectangle %s has negative width", r)
//	if errors.Is(err, errors.ErrCodeInvalidGeometry) {
//	    // Reject the edit
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode scene %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidID       Code = "INVALID_ID"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Engine defects
	ErrCodeRelocationDiverged Code = "RELOCATION_DIVERGED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// It unwraps the error chain looking for an *Error or *DivergedError with a
// matching code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var d *DivergedError
	if errors.As(err, &d) {
		return d.Code()
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

// DivergedError reports that cascade relocation did not reach a fixed
// point within its pass limit.
type DivergedError struct {
	Bar    string // Bar whose edit started the cascade
	Passes int    // Passes executed before giving up
	Limit  int    // Configured pass limit
}

// Error implements the error interface.
func (e *DivergedError) Error() string {
	if e.Bar != "" {
		return fmt.Sprintf("relocation diverged: no fixed point after %d passes (limit %d) moving %s", e.Passes, e.Limit, e.Bar)
	}
	return fmt.Sprintf("relocation diverged: no fixed point after %d passes (limit %d)", e.Passes, e.Limit)
}

// Code returns the error code for this error type.
func (e *DivergedError) Code() Code {
	return ErrCodeRelocationDiverged
}

// IsDiverged reports whether err is or wraps a *DivergedError.
func IsDiverged(err error) bool {
	var d *DivergedError
	return errors.As(err, &d)
}
