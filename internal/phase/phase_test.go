package phase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/crouilla/phaserunner/internal/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPhase(t *testing.T, spec Spec, p *pool.Pool) *Phase {
	t.Helper()
	ph, err := New(spec, p, true)
	require.NoError(t, err)
	return ph
}

func TestRunNothingReturnedIsSuccess(t *testing.T) {
	p := pool.New()
	ph := newPhase(t, Spec{Name: "util", Fn: func() {}}, p)

	ok, err := ph.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Passed, ph.Status())
}

func TestRunSingleBoolIsTheStatus(t *testing.T) {
	p := pool.New()
	ph := newPhase(t, Spec{Name: "check", Fn: func() bool { return false }}, p)

	ok, err := ph.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Failed, ph.Status())
}

func TestRunRequiredArgsArePassed(t *testing.T) {
	p := pool.FromMap(map[string]any{"number": 19})
	var got any
	ph := newPhase(t, Spec{
		Name:     "a",
		Fn:       func(args Args) bool { got = args["number"]; return true },
		Required: []string{"number"},
	}, p)

	ok, err := ph.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 19, got)
}

func TestRunMissingRequiredArgsCollectedAndFnNotInvoked(t *testing.T) {
	p := pool.FromMap(map[string]any{"present": 1})
	invoked := false
	ph := newPhase(t, Spec{
		Name:     "needs",
		Fn:       func(Args) { invoked = true },
		Required: []string{"x", "present", "y"},
	}, p)

	ok, err := ph.Run(context.Background())
	assert.False(t, ok)
	assert.False(t, invoked, "work unit must never run with missing required args")
	assert.Equal(t, NotRun, ph.Status())

	var missing *MissingArgsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"x", "y"}, missing.Missing, "all missing names must be collected")
	assert.ErrorIs(t, err, ErrDefinition)
}

func TestRunAbsentOptionalArgsAreOmitted(t *testing.T) {
	p := pool.FromMap(map[string]any{"verbose": true})
	var got Args
	ph := newPhase(t, Spec{
		Name:     "opt",
		Fn:       func(args Args) { got = args },
		Optional: []string{"verbose", "quiet"},
	}, p)

	_, err := ph.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Args{"verbose": true}, got)
	_, present := got["quiet"]
	assert.False(t, present, "absent optional args must be omitted, not nil")
}

func TestRunOutputsWrittenPositionally(t *testing.T) {
	p := pool.FromMap(map[string]any{"number": 19})
	ph := newPhase(t, Spec{
		Name:     "a",
		Fn:       func(Args) (bool, string) { return true, "mystring" },
		Required: []string{"number"},
		Outputs:  []string{"a_string"},
	}, p)

	ok, err := ph.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	v, found := p.Get("a_string")
	require.True(t, found)
	assert.Equal(t, "mystring", v)
}

// Outputs are written whenever enough values came back, even when the
// status itself is false. That behavior is intentional and pinned down here.
func TestRunOutputsWrittenEvenOnFalseStatus(t *testing.T) {
	p := pool.New()
	ph := newPhase(t, Spec{
		Name:    "quirk",
		Fn:      func() (bool, string) { return false, "still written" },
		Outputs: []string{"out"},
	}, p)

	ok, err := ph.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	v, found := p.Get("out")
	require.True(t, found)
	assert.Equal(t, "still written", v)
}

func TestRunTooFewOutputs(t *testing.T) {
	p := pool.New()
	ph := newPhase(t, Spec{
		Name:    "short",
		Fn:      func() bool { return true },
		Outputs: []string{"first", "second"},
	}, p)

	ok, err := ph.Run(context.Background())
	assert.False(t, ok)

	var missing *MissingOutputsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"first", "second"}, missing.Expected)
	assert.ErrorIs(t, err, ErrDefinition)
	assert.Equal(t, NotRun, ph.Status())
}

func TestRunNothingReturnedWithDeclaredOutputs(t *testing.T) {
	p := pool.New()
	ph := newPhase(t, Spec{
		Name:    "silent",
		Fn:      func() {},
		Outputs: []string{"needed"},
	}, p)

	_, err := ph.Run(context.Background())
	var missing *MissingOutputsError
	require.ErrorAs(t, err, &missing)
}

func TestRunNonBoolFirstResult(t *testing.T) {
	p := pool.New()
	ph := newPhase(t, Spec{
		Name: "broken",
		Fn:   func() (int, string) { return 1, "y" },
	}, p)

	ok, err := ph.Run(context.Background())
	assert.False(t, ok)

	var contract *ContractError
	require.ErrorAs(t, err, &contract)
	assert.Equal(t, 1, contract.Value)
	assert.ErrorIs(t, err, ErrDefinition)
}

func TestRunTrailingErrorIsSoftFailure(t *testing.T) {
	p := pool.New()
	boom := errors.New("backend unavailable")
	ph := newPhase(t, Spec{
		Name: "flaky",
		Fn:   func() (bool, error) { return false, boom },
	}, p)

	ok, err := ph.Run(context.Background())
	assert.False(t, ok)
	require.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, ErrDefinition), "a work unit error is not a contract violation")
	assert.Equal(t, NotRun, ph.Status())
}

func TestRunNilTrailingErrorIsStripped(t *testing.T) {
	p := pool.New()
	ph := newPhase(t, Spec{
		Name:    "ok",
		Fn:      func() (bool, string, error) { return true, "value", nil },
		Outputs: []string{"out"},
	}, p)

	ok, err := ph.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	v, _ := p.Get("out")
	assert.Equal(t, "value", v)
}

func TestRunPanicIsSoftFailure(t *testing.T) {
	p := pool.New()
	ph := newPhase(t, Spec{
		Name: "panicky",
		Fn:   func() { panic("kaboom") },
	}, p)

	ok, err := ph.Run(context.Background())
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
	assert.False(t, errors.Is(err, ErrDefinition))
}

func TestRunContextIsForwarded(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")
	p := pool.New()
	var seen any
	ph := newPhase(t, Spec{
		Name: "ctx",
		Fn: func(ctx context.Context, args Args) bool {
			seen = ctx.Value(ctxKey{})
			return true
		},
	}, p)

	_, err := ph.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "marker", seen)
}

func TestNewRejectsBadWorkUnits(t *testing.T) {
	tests := []struct {
		name string
		fn   any
	}{
		{"nil work unit", nil},
		{"not a function", 42},
		{"unsupported parameter", func(s string) bool { return true }},
		{"variadic", func(args ...any) {}},
		{"args before context", func(a Args, ctx context.Context) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Spec{Name: "bad", Fn: tt.fn}, pool.New(), true)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDefinition)
		})
	}
}

func TestStopOnFailDefaults(t *testing.T) {
	off := false

	inherited, err := New(Spec{Name: "a", Fn: func() {}}, pool.New(), true)
	require.NoError(t, err)
	assert.True(t, inherited.StopOnFail())

	overridden, err := New(Spec{Name: "b", Fn: func() {}, StopOnFail: &off}, pool.New(), true)
	require.NoError(t, err)
	assert.False(t, overridden.StopOnFail())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "not run", NotRun.String())
	assert.Equal(t, "passed", Passed.String())
	assert.Equal(t, "failed", Failed.String())
}

func ExamplePhase_Run() {
	p := pool.FromMap(map[string]any{"number": 19})
	ph, _ := New(Spec{
		Name:     "extract",
		Fn:       func(args Args) (bool, string) { return true, fmt.Sprintf("got %v", args["number"]) },
		Required: []string{"number"},
		Outputs:  []string{"a_string"},
	}, p, true)

	ok, _ := ph.Run(context.Background())
	out, _ := p.Get("a_string")
	fmt.Println(ok, out)
	// Output: true got 19
}
