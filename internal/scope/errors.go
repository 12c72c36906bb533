package scope

import (
	"errors"
	"fmt"
)

// ScopeError represents a misuse of the scope stack. Like construction
// errors these are programmer-error-class failures: synchronous, fatal
// to the offending call, never retried internally.
type ScopeError struct {
	// Code identifies the error category.
	Code ScopeErrorCode

	// Message is a human-readable description.
	Message string

	// Token identifies the program involved, when known.
	Token string
}

// ScopeErrorCode categorizes scope errors.
type ScopeErrorCode string

const (
	// ErrCodeInvalidProgram indicates a nil program was pushed.
	ErrCodeInvalidProgram ScopeErrorCode = "INVALID_PROGRAM"

	// ErrCodeEmptyStack indicates a pop from an empty stack.
	ErrCodeEmptyStack ScopeErrorCode = "EMPTY_STACK"

	// ErrCodeNoActiveProgram indicates Current was called with no
	// program entered.
	ErrCodeNoActiveProgram ScopeErrorCode = "NO_ACTIVE_PROGRAM"

	// ErrCodeScopeMismatch indicates a guard tried to exit out of LIFO
	// order: the program on top was not the one the guard entered.
	ErrCodeScopeMismatch ScopeErrorCode = "SCOPE_MISMATCH"
)

// Error implements the error interface.
func (e *ScopeError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: %s (program=%s)", e.Code, e.Message, e.Token)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsScopeMismatch reports whether err is an out-of-order guard exit.
// Uses errors.As to handle wrapped errors.
func IsScopeMismatch(err error) bool {
	var se *ScopeError
	if errors.As(err, &se) {
		return se.Code == ErrCodeScopeMismatch
	}
	return false
}

// IsNoActiveProgram reports whether err came from querying an empty
// stack. Uses errors.As to handle wrapped errors.
func IsNoActiveProgram(err error) bool {
	var se *ScopeError
	if errors.As(err, &se) {
		return se.Code == ErrCodeNoActiveProgram
	}
	return false
}
