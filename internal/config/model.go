// Package config defines the format-agnostic plan model and the Loader
// interface that concrete formats (HCL today) implement.
package config

// Model is the unified representation of everything loaded from plan files.
type Model struct {
	Plan *Plan
}

// Plan describes one declarative run: the phase sequence, the initial
// argument pool, and the optional sticky range selection.
type Plan struct {
	// StopOnFail is the runner-wide policy flag. Unset means the runner
	// default (on).
	StopOnFail *bool
	// StartWith and EndWith select a sticky, end-inclusive range by phase
	// name. Exact selects a single phase and excludes the pair.
	StartWith string
	EndWith   string
	Exact     string
	// Args seeds the argument pool before the run.
	Args map[string]any
	// Phases in declaration order, which is execution order.
	Phases []*Phase
}

// Phase is the format-agnostic declaration of a single phase.
type Phase struct {
	Name       string
	Handler    string
	Required   []string
	Optional   []string
	Outputs    []string
	StopOnFail *bool
}

// NewModel creates an empty model with an initialized plan.
func NewModel() *Model {
	return &Model{Plan: &Plan{Args: make(map[string]any)}}
}
