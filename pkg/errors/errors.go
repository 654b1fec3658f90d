// Package errors provides structured error types for netdraw.
//
// Every failure in the import and rendering pipeline is terminal for the run.
// Errors carry a machine-readable [Code] so that callers (the CLI, tests) can
// tell a corrupt flow file from a missing input without matching on strings.
//
// # Error Codes
//
// Codes are grouped by the stage that detects them:
//   - MALFORMED_*, DUPLICATE_*, UNRESOLVED_*, NEGATIVE_*: graph import
//   - FLOW_FILE_CORRUPT: flow table validation
//   - UNRECOGNIZED_FORMAT, FINGERPRINT_MISMATCH: rendering setup
//   - FILE_NOT_FOUND, INVALID_INPUT, INTERNAL_ERROR: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateVertex, "vertex %d seen twice", id)
//	if errors.Is(err, errors.ErrCodeDuplicateVertex) {
//	    // Handle the duplicate
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Graph import errors
	ErrCodeMalformedHeader    Code = "MALFORMED_HEADER"
	ErrCodeDuplicateVertex    Code = "DUPLICATE_VERTEX"
	ErrCodeUnresolvedEndpoint Code = "UNRESOLVED_ENDPOINT"
	ErrCodeMalformedNumber    Code = "MALFORMED_NUMBER"
	ErrCodeNegativeField      Code = "NEGATIVE_FIELD"

	// Flow data errors
	ErrCodeFlowFileCorrupt Code = "FLOW_FILE_CORRUPT"

	// Rendering setup errors
	ErrCodeUnrecognizedFormat  Code = "UNRECOGNIZED_FORMAT"
	ErrCodeFingerprintMismatch Code = "FINGERPRINT_MISMATCH"

	// Generic errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
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
// For *Error types, returns the message (and cause) without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
