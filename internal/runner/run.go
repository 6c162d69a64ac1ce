package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/crouilla/phaserunner/internal/ctxlog"
	"github.com/crouilla/phaserunner/internal/phase"
)

// Run executes the resolved range of phases in order and returns the overall
// outcome.
//
// Range precedence is explicit arguments > the range configured with
// SetRange > the full list. Empty strings mean "unspecified".
//
// The boolean result is false as soon as any abort condition triggers (a
// failed hook or phase under the stop-on-failure policy); otherwise it is
// the status of whichever step executed last. No aggregate "all passed"
// value is synthesized beyond that.
//
// Structural errors are returned and never swallowed: an unknown or inverted
// range, and any phase error matching phase.ErrDefinition. A work unit
// failing on its own terms is logged, recorded, and handled by policy only.
func (r *Runner) Run(ctx context.Context, first, last string) (bool, error) {
	logger := ctxlog.FromContext(ctx)

	if first == "" {
		first = r.firstPhase
	}
	if last == "" {
		last = r.lastPhase
	}
	phases, err := r.ResolveRange(first, last)
	if err != nil {
		return false, err
	}

	ok := true

	if r.PreRun != nil {
		logger.Info("▶️ Running pre-run hook...")
		ok = r.runHook(ctx, "pre-run", r.PreRun)
		if !ok && r.stopOnFail {
			logger.Error("Pre-run failed and stop-on-fail is set. Stopping run.")
			return false, nil
		}
	}

	for _, ph := range phases {
		logger.Info("▶️ Running phase...", "phase", ph.Name())
		ok, err = ph.Run(ctx)
		if err != nil {
			if errors.Is(err, phase.ErrDefinition) {
				return false, fmt.Errorf("phase %q: %w", ph.Name(), err)
			}
			logger.Error("Error in phase.", "phase", ph.Name(), "error", err)
			ok = false
		}
		logger.Info("Phase complete.", "phase", ph.Name(), "passed", ok)

		if !ok {
			if r.stopOnFail && ph.StopOnFail() {
				logger.Error("Phase failed and stop-on-fail is set. Stopping run.", "phase", ph.Name())
				return false, nil
			}
			logger.Info("Phase failed, but stop-on-fail not set for both runner and phase. Run continuing.",
				"phase", ph.Name())
		}
	}

	if r.PostRun != nil {
		logger.Info("▶️ Running post-run hook...")
		ok = r.runHook(ctx, "post-run", r.PostRun)
		if !ok && r.stopOnFail {
			logger.Error("Post-run failed and stop-on-fail is set. Stopping run.")
			return false, nil
		}
	}

	logger.Info("🏁 Run complete. Phase status:")
	for _, ph := range phases {
		logger.Info("  phase result", "phase", ph.Name(), "status", ph.Status().String())
	}

	return ok, nil
}

// runHook invokes a hook, converting a panic or a returned error into a
// failed outcome. Hook errors are logged, never propagated.
func (r *Runner) runHook(ctx context.Context, name string, hook Hook) (ok bool) {
	logger := ctxlog.FromContext(ctx)
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Hook panicked.", "hook", name, "panic", rec)
			ok = false
		}
	}()

	if err := hook(ctx); err != nil {
		logger.Error("Error in hook.", "hook", name, "error", err)
		return false
	}
	return true
}
