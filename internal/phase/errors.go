package phase

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDefinition marks structural misuse of the phase contract: a malformed
// registration, missing required arguments, a non-bool status, or too few
// outputs. Runners treat anything matching this sentinel as a hard error to
// surface, distinct from a work unit failing on its own terms.
var ErrDefinition = errors.New("invalid phase definition")

// MissingArgsError reports required argument names absent from the pool.
// All missing names are collected before the phase fails, and the work unit
// is never invoked.
type MissingArgsError struct {
	Phase   string
	Missing []string
}

func (e *MissingArgsError) Error() string {
	return fmt.Sprintf("the following arguments are required by phase %q: %s",
		e.Phase, strings.Join(e.Missing, ", "))
}

func (e *MissingArgsError) Unwrap() error { return ErrDefinition }

// ContractError reports a work unit whose first result was not a bool.
type ContractError struct {
	Phase string
	Value any
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("phase %q must return a bool as its first value or return nothing, got %T",
		e.Phase, e.Value)
}

func (e *ContractError) Unwrap() error { return ErrDefinition }

// MissingOutputsError reports a work unit that returned fewer positional
// values than the phase's declared outputs.
type MissingOutputsError struct {
	Phase    string
	Expected []string
	Returned []any
}

func (e *MissingOutputsError) Error() string {
	returned := make([]string, len(e.Returned))
	for i, v := range e.Returned {
		returned[i] = fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("expected return values for phase %q: %s; the work unit only returned: %s",
		e.Phase, strings.Join(e.Expected, ", "), strings.Join(returned, ", "))
}

func (e *MissingOutputsError) Unwrap() error { return ErrDefinition }
