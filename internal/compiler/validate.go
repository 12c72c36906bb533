package compiler

import (
	"fmt"

	"github.com/dagforge/dagforge/internal/ir"
)

// Validation error codes (E100-E199).
const (
	ErrRecordNoOutputs = "E101" // operation has no outputs
	ErrUnknownInput    = "E102" // input has no producer and is not a placeholder
	ErrDuplicateOutput = "E103" // same name twice in one record's outputs
	ErrEmptyOpClass    = "E104" // operation with empty op class
	ErrEmptyValueName  = "E105" // empty string used as a value name
)

// ValidationError represents a structural problem in a pending log.
type ValidationError struct {
	Code    string `json:"code"`
	Record  int    `json:"record"` // position of the offending record
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("[%s] record %d: %s: %s", e.Code, e.Record, e.Name, e.Message)
	}
	return fmt.Sprintf("[%s] record %d: %s", e.Code, e.Record, e.Message)
}

// Validate checks a snapshot against the IR's structural rules and
// returns all problems found (it does not fail fast).
//
// Construction through program.Program cannot produce most of these, but
// snapshots also arrive from compiled flow specs, where a typo'd input
// name or an empty output list is an easy mistake.
func Validate(snap ir.Snapshot) []ValidationError {
	var errs []ValidationError
	idx := buildProducerIndex(snap.Records)

	for _, r := range snap.Records {
		if r.OpClass == "" {
			errs = append(errs, ValidationError{
				Code:    ErrEmptyOpClass,
				Record:  r.Pos,
				Message: "operation has empty op class",
			})
		}
		if len(r.Outputs) == 0 {
			errs = append(errs, ValidationError{
				Code:    ErrRecordNoOutputs,
				Record:  r.Pos,
				Message: "operation must produce at least one output",
			})
		}

		seen := make(map[string]struct{}, len(r.Outputs))
		for _, out := range r.Outputs {
			if out == "" {
				errs = append(errs, ValidationError{
					Code:    ErrEmptyValueName,
					Record:  r.Pos,
					Message: "empty output name",
				})
				continue
			}
			if _, dup := seen[out]; dup {
				errs = append(errs, ValidationError{
					Code:    ErrDuplicateOutput,
					Record:  r.Pos,
					Name:    out,
					Message: "output name repeated within one operation",
				})
			}
			seen[out] = struct{}{}
		}

		for _, in := range r.Inputs {
			if in == "" {
				errs = append(errs, ValidationError{
					Code:    ErrEmptyValueName,
					Record:  r.Pos,
					Message: "empty input name",
				})
				continue
			}
			if idx.latestBefore(in, r.Pos) < 0 {
				errs = append(errs, ValidationError{
					Code:    ErrUnknownInput,
					Record:  r.Pos,
					Name:    in,
					Message: "input has no producer at this point and is not a declared placeholder",
				})
			}
		}
	}

	return errs
}
