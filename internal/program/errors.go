package program

import (
	"errors"
	"fmt"
)

// BuildError represents a misuse of the construction API. These are
// programmer-error-class failures, surfaced synchronously at the
// offending call and never retried or recovered internally.
type BuildError struct {
	// Code identifies the error category.
	Code BuildErrorCode

	// Message is a human-readable description.
	Message string

	// Name is the offending value name, when there is one.
	Name string

	// Token identifies the affected program.
	Token string
}

// BuildErrorCode categorizes construction errors.
type BuildErrorCode string

const (
	// ErrCodeNameConflict indicates a user-declared value name was
	// registered twice in the same program.
	ErrCodeNameConflict BuildErrorCode = "NAME_CONFLICT"

	// ErrCodeEmptyOutputs indicates an operation was recorded with no
	// output names.
	ErrCodeEmptyOutputs BuildErrorCode = "EMPTY_OUTPUTS"

	// ErrCodeInvalidName indicates an empty value name, or a placeholder
	// declared with the reserved anonymous prefix.
	ErrCodeInvalidName BuildErrorCode = "INVALID_NAME"
)

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (name=%q, program=%s)", e.Code, e.Message, e.Name, e.Token)
	}
	return fmt.Sprintf("%s: %s (program=%s)", e.Code, e.Message, e.Token)
}

// IsNameConflict reports whether err is a duplicate-name registration
// failure. Uses errors.As to handle wrapped errors.
func IsNameConflict(err error) bool {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Code == ErrCodeNameConflict
	}
	return false
}

func newNameConflict(name, token string) *BuildError {
	return &BuildError{
		Code:    ErrCodeNameConflict,
		Message: "value name already registered",
		Name:    name,
		Token:   token,
	}
}
