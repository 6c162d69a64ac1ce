// Package runner implements the sequential phase executor. A Runner owns an
// ordered, append-only sequence of uniquely-named phases and the argument
// pool they share, resolves named sub-ranges, and drives execution under the
// stop-on-failure policy.
package runner

import (
	"context"
	"errors"
	"strings"

	"github.com/crouilla/phaserunner/internal/namedrange"
	"github.com/crouilla/phaserunner/internal/phase"
	"github.com/crouilla/phaserunner/internal/pool"
)

// Hook is an optional pre-run or post-run callable. A non-nil error (or a
// panic, which is recovered) counts as the hook failing; hook failures are
// recorded and drive the runner-wide stop-on-failure policy, never
// propagated.
type Hook func(context.Context) error

// Runner executes its registered phases in insertion order. Phases cannot be
// removed or reordered once added.
type Runner struct {
	phases     []*phase.Phase
	pool       *pool.Pool
	stopOnFail bool

	// Sticky range configured ahead of Run, e.g. from CLI selection.
	// Explicit Run arguments take precedence over these.
	firstPhase string
	lastPhase  string

	// PreRun and PostRun, when set, wrap the phase sequence. They are
	// explicit fields rather than anything discovered by introspection.
	PreRun  Hook
	PostRun Hook
}

// PhaseStatus pairs a phase name with its recorded execution status.
type PhaseStatus struct {
	Name   string
	Status phase.Status
}

// New creates a Runner with a fresh, empty argument pool. Stop-on-failure
// defaults to on.
func New() *Runner {
	return NewWithPool(pool.New())
}

// NewWithPool creates a Runner sharing a caller-owned pool.
func NewWithPool(p *pool.Pool) *Runner {
	return &Runner{pool: p, stopOnFail: true}
}

// AddPhase registers a phase at the end of the sequence. The name must be
// unique within the runner under case-insensitive comparison; a collision
// returns a *DuplicatePhaseError.
func (r *Runner) AddPhase(spec phase.Spec) error {
	if r.Exists(spec.Name) {
		return &DuplicatePhaseError{Name: spec.Name}
	}
	ph, err := phase.New(spec, r.pool, r.stopOnFail)
	if err != nil {
		return err
	}
	r.phases = append(r.phases, ph)
	return nil
}

// SetArgs merges the given mapping into the shared argument pool.
func (r *Runner) SetArgs(args map[string]any) {
	r.pool.Merge(args)
}

// Args returns the shared argument pool.
func (r *Runner) Args() *pool.Pool {
	return r.pool
}

// PhaseNames returns the registered phase names in execution order.
func (r *Runner) PhaseNames() []string {
	names := make([]string, len(r.phases))
	for i, ph := range r.phases {
		names[i] = ph.Name()
	}
	return names
}

// Exists reports whether a phase with the given name is registered,
// compared case-insensitively.
func (r *Runner) Exists(name string) bool {
	for _, ph := range r.phases {
		if strings.EqualFold(ph.Name(), name) {
			return true
		}
	}
	return false
}

// StopOnFail reports the runner-wide stop-on-failure flag.
func (r *Runner) StopOnFail() bool { return r.stopOnFail }

// SetStopOnFail sets the runner-wide stop-on-failure flag. It does not
// change the phase-local flags already resolved at registration.
func (r *Runner) SetStopOnFail(v bool) { r.stopOnFail = v }

// SetRange configures a sticky execution range by phase name. Empty strings
// mean the start or end of the full list. Explicit Run arguments override
// the configured range.
func (r *Runner) SetRange(first, last string) {
	r.firstPhase = first
	r.lastPhase = last
}

// Statuses returns the recorded status of every registered phase, in
// execution order.
func (r *Runner) Statuses() []PhaseStatus {
	out := make([]PhaseStatus, len(r.phases))
	for i, ph := range r.phases {
		out[i] = PhaseStatus{Name: ph.Name(), Status: ph.Status()}
	}
	return out
}

// ResolveRange maps first/last phase names onto the registered sequence and
// returns the phases to execute, end-inclusive. Empty names mean the start
// or end of the list. An unknown name returns a *UnknownPhaseError; a last
// phase that precedes the first returns a *namedrange.InvalidRangeError.
func (r *Runner) ResolveRange(first, last string) ([]*phase.Phase, error) {
	lo, hi, err := namedrange.Resolve(r.PhaseNames(), bound(first), bound(last))
	if err != nil {
		var notFound *namedrange.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &UnknownPhaseError{Name: notFound.Name, Known: r.PhaseNames()}
		}
		return nil, err
	}
	return r.phases[lo:hi], nil
}

// bound converts an optional phase name into a namedrange bound.
func bound(name string) namedrange.Bound {
	if name == "" {
		return namedrange.Open()
	}
	return namedrange.Name(name)
}
