// Package errors provides structured error types for the treegraph engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, HTTP API and library
//   - Machine-readable error codes for programmatic handling
//   - Separation of fatal pass errors from recoverable warnings
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Fatal codes abort a layout pass: no nodes or links are emitted and the
// error is surfaced to the caller. Warning codes describe conditions the
// pass recovered from; they are collected on the pass result and logged.
//
//   - CYCLIC_STRUCTURE, DUPLICATE_NODE, INVALID_*: fatal input errors
//   - MISSING_PARENT, ORPHANED_SUBTREE: recoverable warnings
//   - UNKNOWN_LAYOUT, NOT_FOUND, INTERNAL_ERROR: caller errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeCyclicStructure, "cycle through %q", id)
//	if errors.Is(err, errors.ErrCodeCyclicStructure) {
//	    // Abort the pass
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidOption, origErr, "decode %s", path)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidOption Code = "INVALID_OPTION"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidNodeID Code = "INVALID_NODE_ID"

	// Structural errors (fatal to a layout pass)
	ErrCodeDuplicateNode   Code = "DUPLICATE_NODE"
	ErrCodeCyclicStructure Code = "CYCLIC_STRUCTURE"

	// Recoverable structural conditions (surfaced as warnings)
	ErrCodeMissingParent   Code = "MISSING_PARENT"
	ErrCodeOrphanedSubtree Code = "ORPHANED_SUBTREE"

	// Lookup errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeUnknownLayout Code = "UNKNOWN_LAYOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// warningCodes lists the codes that never abort a pass.
var warningCodes = map[Code]bool{
	ErrCodeMissingParent:   true,
	ErrCodeOrphanedSubtree: true,
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	NodeID  string // Offending node, if any
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

// ForNode creates a new Error attached to a node id.
func ForNode(code Code, id string, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.NodeID = id
	return e
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// WrapNode is [Wrap] for an error attached to a node id.
func WrapNode(code Code, id string, cause error, format string, args ...any) *Error {
	e := Wrap(code, cause, format, args...)
	e.NodeID = id
	return e
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

// IsWarning reports whether err carries a recoverable warning code.
func IsWarning(err error) bool {
	return warningCodes[GetCode(err)]
}

// IsFatal reports whether err must abort a layout pass.
// Nil errors and warnings are not fatal.
func IsFatal(err error) bool {
	return err != nil && !IsWarning(err)
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
