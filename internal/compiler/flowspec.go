package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/dagforge/dagforge/internal/ir"
)

// CompileFlow parses a CUE value into a FlowSpec. Uses the CUE SDK's Go
// API directly (not a CLI subprocess).
//
// The CUE value should be the flow struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`flow: pipeline: { ... }`)
//	spec, err := CompileFlow(v.LookupPath(cue.ParsePath("flow.pipeline")))
//
// Expected shape:
//
//	flow: <name>: {
//		placeholders?: [...string]
//		ops: [...{op: string, in?: [...string], out: [...string]}]
//	}
func CompileFlow(v cue.Value) (*ir.FlowSpec, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	spec := &ir.FlowSpec{}

	// Flow name comes from the struct label (the path selector).
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		spec.Name = labels[len(labels)-1].String()
	}

	// placeholders (optional)
	phVal := v.LookupPath(cue.ParsePath("placeholders"))
	if phVal.Exists() {
		names, err := stringList(phVal, "placeholders")
		if err != nil {
			return nil, err
		}
		spec.Placeholders = names
	}

	// ops (required, at least one)
	opsVal := v.LookupPath(cue.ParsePath("ops"))
	if !opsVal.Exists() {
		return nil, &CompileError{
			Field:   "ops",
			Message: "ops is required",
			Pos:     v.Pos(),
		}
	}
	iter, err := opsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for i := 0; iter.Next(); i++ {
		decl, declErr := compileOpDecl(iter.Value(), i)
		if declErr != nil {
			return nil, declErr
		}
		spec.Ops = append(spec.Ops, *decl)
	}
	if len(spec.Ops) == 0 {
		return nil, &CompileError{
			Field:   "ops",
			Message: "at least one op is required",
			Pos:     opsVal.Pos(),
		}
	}

	return spec, nil
}

// compileOpDecl parses one op entry: {op: string, in?: [...], out: [...]}.
func compileOpDecl(v cue.Value, index int) (*ir.OpDecl, error) {
	decl := &ir.OpDecl{}

	opVal := v.LookupPath(cue.ParsePath("op"))
	if !opVal.Exists() {
		return nil, &CompileError{
			Field:   fmt.Sprintf("ops[%d].op", index),
			Message: "op class is required",
			Pos:     v.Pos(),
		}
	}
	opClass, err := opVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	if opClass == "" {
		return nil, &CompileError{
			Field:   fmt.Sprintf("ops[%d].op", index),
			Message: "op class must be non-empty",
			Pos:     opVal.Pos(),
		}
	}
	decl.OpClass = opClass

	inVal := v.LookupPath(cue.ParsePath("in"))
	if inVal.Exists() {
		decl.Inputs, err = stringList(inVal, fmt.Sprintf("ops[%d].in", index))
		if err != nil {
			return nil, err
		}
	}

	outVal := v.LookupPath(cue.ParsePath("out"))
	if !outVal.Exists() {
		return nil, &CompileError{
			Field:   fmt.Sprintf("ops[%d].out", index),
			Message: "out is required: every op produces at least one output",
			Pos:     v.Pos(),
		}
	}
	decl.Outputs, err = stringList(outVal, fmt.Sprintf("ops[%d].out", index))
	if err != nil {
		return nil, err
	}
	if len(decl.Outputs) == 0 {
		return nil, &CompileError{
			Field:   fmt.Sprintf("ops[%d].out", index),
			Message: "out must contain at least one name",
			Pos:     outVal.Pos(),
		}
	}

	return decl, nil
}

// stringList decodes a CUE list of strings.
func stringList(v cue.Value, field string) ([]string, error) {
	iter, err := v.List()
	if err != nil {
		return nil, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("expected a list of strings: %v", err),
			Pos:     v.Pos(),
		}
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{
				Field:   field,
				Message: fmt.Sprintf("expected a string element: %v", err),
				Pos:     iter.Value().Pos(),
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// CompileError is a flow-spec compilation failure with CUE position
// information when available.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return firstErr
}
