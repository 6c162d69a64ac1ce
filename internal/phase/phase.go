// Package phase implements the individual named phase: one unit of work
// bound to the shared argument pool through declared required, optional and
// output argument names.
package phase

import (
	"context"
	"fmt"
	"reflect"

	"github.com/crouilla/phaserunner/internal/pool"
)

// Args is the named-argument set assembled from the pool and handed to a
// work unit. Absent optional arguments are omitted entirely rather than
// passed as nil.
type Args map[string]any

// Func is a work unit. Any Go function qualifies whose parameters are drawn,
// in order, from context.Context and Args (each optional), and whose results
// are one of:
//
//   - nothing: the phase is a utility, treated as passed;
//   - a single bool: the phase status, no outputs;
//   - a bool followed by positional output values, one per declared output.
//
// Any of these shapes may additionally end with an error. A non-nil error is
// the work unit failing mid-flight: it is never a contract violation, and the
// owning runner decides via its stop-on-failure policy whether the run
// continues.
type Func = any

// Spec describes one phase to register on a runner.
type Spec struct {
	// Name identifies the phase; unique within a runner, compared
	// case-insensitively.
	Name string
	// Fn is the work unit. See Func for the accepted shapes.
	Fn Func
	// Required argument names; any that are absent from the pool fail the
	// phase before the work unit is invoked.
	Required []string
	// Optional argument names; absent ones are silently omitted.
	Optional []string
	// Outputs names the work unit's positional results beyond the status.
	// The Nth output name binds to the Nth non-status return value.
	Outputs []string
	// StopOnFail overrides the runner-wide flag for this phase when set.
	StopOnFail *bool
}

// Status is the tri-state outcome of a phase's most recent execution.
type Status int

const (
	// NotRun means the phase has not executed yet in this runner's lifetime.
	NotRun Status = iota
	// Passed means the last execution reported success.
	Passed
	// Failed means the last execution reported failure.
	Failed
)

// String returns the human-readable form used in the end-of-run report.
func (s Status) String() string {
	switch s {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "not run"
	}
}

// Phase wraps one work unit together with its argument contract and its
// execution state. Phases are created by a runner and share its pool.
type Phase struct {
	name       string
	fn         reflect.Value
	takesCtx   bool
	takesArgs  bool
	returnsErr bool
	required   []string
	optional   []string
	outputs    []string
	stopOnFail bool
	pool       *pool.Pool
	status     Status
}

var (
	ctxType  = reflect.TypeOf((*context.Context)(nil)).Elem()
	argsType = reflect.TypeOf(Args(nil))
	errType  = reflect.TypeOf((*error)(nil)).Elem()
)

// New builds a Phase from its spec, bound to the shared pool. The work
// unit's parameter list is validated here so a malformed registration
// surfaces immediately instead of at run time. defaultStopOnFail applies
// when the spec leaves StopOnFail unset.
func New(spec Spec, p *pool.Pool, defaultStopOnFail bool) (*Phase, error) {
	if spec.Fn == nil {
		return nil, fmt.Errorf("phase %q: work unit must not be nil: %w", spec.Name, ErrDefinition)
	}
	fn := reflect.ValueOf(spec.Fn)
	if fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("phase %q: work unit must be a function, got %T: %w", spec.Name, spec.Fn, ErrDefinition)
	}

	ph := &Phase{
		name:       spec.Name,
		fn:         fn,
		required:   spec.Required,
		optional:   spec.Optional,
		outputs:    spec.Outputs,
		stopOnFail: defaultStopOnFail,
		pool:       p,
	}
	if spec.StopOnFail != nil {
		ph.stopOnFail = *spec.StopOnFail
	}

	t := fn.Type()
	if t.IsVariadic() {
		return nil, fmt.Errorf("phase %q: variadic work units are not supported: %w", spec.Name, ErrDefinition)
	}
	next := 0
	if next < t.NumIn() && t.In(next) == ctxType {
		ph.takesCtx = true
		next++
	}
	if next < t.NumIn() && t.In(next) == argsType {
		ph.takesArgs = true
		next++
	}
	if next != t.NumIn() {
		return nil, fmt.Errorf("phase %q: work unit parameters must be (context.Context) and/or (phase.Args), got %s: %w",
			spec.Name, t, ErrDefinition)
	}
	ph.returnsErr = t.NumOut() > 0 && t.Out(t.NumOut()-1) == errType

	return ph, nil
}

// Name returns the phase name.
func (ph *Phase) Name() string { return ph.name }

// StopOnFail reports the phase-local stop-on-failure flag.
func (ph *Phase) StopOnFail() bool { return ph.stopOnFail }

// Status returns the outcome of the phase's most recent execution.
func (ph *Phase) Status() Status { return ph.status }

// Outputs returns the declared output names in positional order.
func (ph *Phase) Outputs() []string { return ph.outputs }

// Run executes the phase against the shared pool and returns the status the
// work unit reported.
//
// Structural misuse of the phase contract comes back as an error wrapping
// ErrDefinition: required arguments missing from the pool, a non-bool first
// result, or fewer results than declared outputs. Those errors leave the
// recorded status untouched, and for missing arguments the work unit is
// never invoked.
//
// A work unit failing on its own terms (non-nil trailing error, or a panic)
// is not structural: Run returns (false, err) with an error that does not
// match ErrDefinition, and likewise leaves the recorded status untouched.
func (ph *Phase) Run(ctx context.Context) (bool, error) {
	args, err := ph.bindArgs()
	if err != nil {
		return false, err
	}

	results, err := ph.invoke(ctx, args)
	if err != nil {
		return false, err
	}

	// A work unit that returns nothing is a utility; assume it passed.
	if len(results) == 0 {
		results = []any{true}
	}
	status, ok := results[0].(bool)
	if !ok {
		return false, &ContractError{Phase: ph.name, Value: results[0]}
	}

	if len(ph.outputs) > 0 {
		if len(results)-1 < len(ph.outputs) {
			return false, &MissingOutputsError{Phase: ph.name, Expected: ph.outputs, Returned: results[1:]}
		}
		// The Nth declared output takes the Nth non-status result. This
		// happens whenever the shape check passed, even for a false status.
		for i, name := range ph.outputs {
			ph.pool.Set(name, results[i+1])
		}
	}

	if status {
		ph.status = Passed
	} else {
		ph.status = Failed
	}
	return status, nil
}

// bindArgs assembles the work unit's argument set from the pool. Every
// missing required name is collected before failing, so the error reports
// them all at once.
func (ph *Phase) bindArgs() (Args, error) {
	args := make(Args)
	var missing []string
	for _, name := range ph.required {
		v, ok := ph.pool.Get(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		args[name] = v
	}
	if len(missing) > 0 {
		return nil, &MissingArgsError{Phase: ph.name, Missing: missing}
	}
	for _, name := range ph.optional {
		if v, ok := ph.pool.Get(name); ok {
			args[name] = v
		}
	}
	return args, nil
}

// invoke calls the work unit, converting a panic or a non-nil trailing error
// into a returned error. The trailing error never counts as an output.
func (ph *Phase) invoke(ctx context.Context, args Args) (results []any, err error) {
	defer func() {
		if r := recover(); r != nil {
			results = nil
			err = fmt.Errorf("work unit panicked: %v", r)
		}
	}()

	in := make([]reflect.Value, 0, 2)
	if ph.takesCtx {
		in = append(in, reflect.ValueOf(ctx))
	}
	if ph.takesArgs {
		in = append(in, reflect.ValueOf(args))
	}

	out := ph.fn.Call(in)
	if ph.returnsErr {
		last := out[len(out)-1]
		out = out[:len(out)-1]
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
	}
	for _, v := range out {
		results = append(results, v.Interface())
	}
	return results, nil
}
