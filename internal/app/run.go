package app

import (
	"context"
	"fmt"

	"github.com/crouilla/phaserunner/internal/ctxlog"
	"github.com/crouilla/phaserunner/internal/phase"
	"github.com/crouilla/phaserunner/internal/runner"
)

// UsageError reports a selection the user asked for that cannot apply to the
// loaded plan, e.g. a start phase that is not declared. The entrypoint maps
// it to exit code 2.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// Run builds the phase runner from the loaded plan and executes it. The
// boolean is the run's overall outcome; errors are structural problems that
// must reach the caller.
func (a *App) Run(ctx context.Context) (bool, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	r, err := a.buildRunner()
	if err != nil {
		return false, err
	}

	if a.config.ListPhases {
		for _, name := range r.PhaseNames() {
			fmt.Fprintln(a.outW, name)
		}
		return true, nil
	}

	if err := a.applySelection(r); err != nil {
		return false, err
	}

	a.logger.Info("🚀 Starting phase run...", "phases", len(r.PhaseNames()))
	ok, err := r.Run(ctx, "", "")
	if err != nil {
		return false, fmt.Errorf("run failed: %w", err)
	}
	a.logger.Info("🏁 Phase run finished.", "passed", ok)
	return ok, nil
}

// buildRunner translates the plan model into a configured runner, binding
// every declared phase to its registered Go handler.
func (a *App) buildRunner() (*runner.Runner, error) {
	plan := a.model.Plan

	r := runner.New()
	if plan.StopOnFail != nil {
		r.SetStopOnFail(*plan.StopOnFail)
	}
	r.SetArgs(plan.Args)
	r.SetArgs(a.config.Args)

	for _, ph := range plan.Phases {
		fn, ok := a.registry.Handler(ph.Handler)
		if !ok {
			// Already validated at startup; kept as a guard for direct use.
			return nil, fmt.Errorf("phase %q references unknown handler %q", ph.Name, ph.Handler)
		}
		if err := r.AddPhase(phase.Spec{
			Name:       ph.Name,
			Fn:         fn,
			Required:   ph.Required,
			Optional:   ph.Optional,
			Outputs:    ph.Outputs,
			StopOnFail: ph.StopOnFail,
		}); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// applySelection configures the sticky run range: the plan's selection
// first, then the command line's on top of it. Selection names are checked
// against the declared phase list before the run starts.
func (a *App) applySelection(r *runner.Runner) error {
	plan := a.model.Plan

	first, last := plan.StartWith, plan.EndWith
	if plan.Exact != "" {
		first, last = plan.Exact, plan.Exact
	}
	if a.config.StartWith != "" {
		first = a.config.StartWith
	}
	if a.config.EndWith != "" {
		last = a.config.EndWith
	}
	if a.config.Exact != "" {
		first, last = a.config.Exact, a.config.Exact
	}

	for _, sel := range []struct{ kind, name string }{
		{"start", first},
		{"end", last},
	} {
		if sel.name != "" && !r.Exists(sel.name) {
			return &UsageError{Message: fmt.Sprintf("%s phase %q not in declared phases: %v",
				sel.kind, sel.name, r.PhaseNames())}
		}
	}

	r.SetRange(first, last)
	return nil
}
