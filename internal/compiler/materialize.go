package compiler

import (
	"fmt"

	"github.com/dagforge/dagforge/internal/ir"
	"github.com/dagforge/dagforge/internal/program"
	"github.com/dagforge/dagforge/internal/scope"
)

// Materialize constructs a Program from a compiled flow spec:
// placeholders first, then each op in declaration order.
//
// Construction is driven through a scope.Stack rather than a direct
// program pointer — the same path a nested builder takes — so the scope
// discipline gets exercised on every CLI build. The first time a name
// appears in an op's outputs it is a declaration; a later op producing
// the same name is a reassignment that shadows the earlier producer.
func Materialize(spec *ir.FlowSpec, gen program.TokenGenerator) (prog *program.Program, err error) {
	if spec == nil {
		return nil, fmt.Errorf("materialize: nil flow spec")
	}

	stack := scope.NewStack()
	prog = program.NewWithToken(gen.Generate())

	guard, err := stack.Enter(prog)
	if err != nil {
		return nil, err
	}
	defer func() {
		if exitErr := guard.Exit(); exitErr != nil && err == nil {
			err = exitErr
			prog = nil
		}
	}()

	for _, name := range spec.Placeholders {
		if err := declarePlaceholder(stack, name); err != nil {
			return nil, err
		}
	}

	declared := make(map[string]bool, len(spec.Placeholders))
	for _, name := range spec.Placeholders {
		declared[name] = true
	}

	for i, op := range spec.Ops {
		if err := bindStep(stack, op, i, declared); err != nil {
			return nil, err
		}
	}

	return prog, nil
}

// declarePlaceholder records one external input against the current
// program.
func declarePlaceholder(stack *scope.Stack, name string) error {
	prog, err := stack.Current()
	if err != nil {
		return err
	}
	return prog.Placeholder(name)
}

// bindStep records one op declaration against the current program,
// choosing declaration vs reassignment per output name.
func bindStep(stack *scope.Stack, op ir.OpDecl, index int, declared map[string]bool) error {
	prog, err := stack.Current()
	if err != nil {
		return err
	}

	anyDeclared := false
	for _, out := range op.Outputs {
		if declared[out] {
			anyDeclared = true
		}
	}

	switch {
	case !anyDeclared:
		if err := prog.BindAll(op.Outputs, op.OpClass, op.Inputs...); err != nil {
			return err
		}
	case len(op.Outputs) == 1:
		if err := prog.Rebind(op.Outputs[0], op.OpClass, op.Inputs...); err != nil {
			return err
		}
	default:
		// Reassigning through a multi-output op is ambiguous: part of
		// the tuple would be a declaration and part a shadow.
		return &CompileError{
			Field:   fmt.Sprintf("ops[%d].out", index),
			Message: "multi-output op reassigns an already-bound name; split the op or rename the outputs",
		}
	}

	for _, out := range op.Outputs {
		if !ir.IsAnon(out) {
			declared[out] = true
		}
	}
	return nil
}
