package layout

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// CodeContractViolation marks invalid input or misuse by the caller:
	// NaN constraints, wrong owner goroutine, nil nodes. Never retried.
	CodeContractViolation Code = "CONTRACT_VIOLATION"

	// CodeRecursionLimit marks nested Measure/Arrange calls deeper than the
	// configured ceiling. Never retried.
	CodeRecursionLimit Code = "RECURSION_LIMIT"

	// CodeResourceExhausted marks a request allocation past MaxRequests.
	// The triggering node is recorded as the fault anchor first.
	CodeResourceExhausted Code = "RESOURCE_EXHAUSTED"

	// CodeInvalidConfig marks a config file that cannot be read, parsed or
	// validated.
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Limit   int    // Configured ceiling, set for CodeRecursionLimit and CodeResourceExhausted
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

// NewError creates a new Error with the given code and formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError creates a new Error wrapping an existing error.
func WrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsCode reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func IsCode(err error, code Code) bool {
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

// IsFatal reports whether err is one the scheduler will not attempt to
// recover from: contract violations and recursion-limit breaches.
// Failures returned by a node's own MeasureOverride/ArrangeOverride are not
// fatal; the scheduler revalidates the node's tree on the next pass.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case CodeContractViolation, CodeRecursionLimit:
		return true
	}
	return false
}

func contractViolation(format string, args ...any) *Error {
	return NewError(CodeContractViolation, format, args...)
}
