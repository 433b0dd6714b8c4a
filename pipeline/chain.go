package pipeline

import (
	"fmt"
	"reflect"

	"github.com/kbukum/contentgen/errors"
)

// CheckChain verifies the declared types of a stage chain. in is the source
// item type and out the sink item type; either may be nil when unknown.
//
// Only certain mismatches fail: a concrete type handed to a stage whose
// declared input it can never satisfy. Untyped stages and interface-typed
// values are left to the check each typed stage makes when invoked.
func CheckChain(in reflect.Type, stages []Stage, out reflect.Type) error {
	prev := in
	for i, s := range stages {
		if s == nil {
			return errors.InvalidConfig(fmt.Sprintf("stages[%d]", i), "stage is nil")
		}
		typed, ok := s.(Typed)
		if !ok {
			prev = nil
			continue
		}
		if incompatible(prev, typed.InputType()) {
			return errors.InvalidConfig(fmt.Sprintf("stages[%d]", i),
				fmt.Sprintf("%s cannot accept %s", s.Name(), prev)).
				WithCause(errors.TypeMismatch(s.Name(), typed.InputType().String(), prev.String()))
		}
		prev = typed.OutputType()
	}
	if incompatible(prev, out) {
		return errors.InvalidConfig("sink", fmt.Sprintf("sink cannot accept %s", prev)).
			WithCause(errors.TypeMismatch("sink", out.String(), prev.String()))
	}
	return nil
}

// incompatible reports whether a value of type got can never be asserted to want.
func incompatible(got, want reflect.Type) bool {
	if got == nil || want == nil || got.Kind() == reflect.Interface {
		return false
	}
	if want.Kind() == reflect.Interface {
		return !got.Implements(want)
	}
	return !got.AssignableTo(want)
}
