// Package schema declares the HCL block structures of a plan file.
package schema

import "github.com/hashicorp/hcl/v2"

// ArgsBlock holds the raw body of an 'args' block. Its attributes are
// arbitrary seed values for the argument pool, so they are evaluated by the
// loader rather than decoded into a fixed struct.
type ArgsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Phase represents a `phase` block: one named unit of work bound to a
// registered Go handler.
type Phase struct {
	Name       string   `hcl:"name,label"`
	Handler    string   `hcl:"handler"`
	Required   []string `hcl:"required,optional"`
	Optional   []string `hcl:"optional,optional"`
	Outputs    []string `hcl:"outputs,optional"`
	StopOnFail *bool    `hcl:"stop_on_fail,optional"`
}

// Plan represents a `plan` block: the phase sequence plus run-wide settings.
type Plan struct {
	StopOnFail *bool      `hcl:"stop_on_fail,optional"`
	StartWith  string     `hcl:"start_with,optional"`
	EndWith    string     `hcl:"end_with,optional"`
	Exact      string     `hcl:"exact,optional"`
	Args       *ArgsBlock `hcl:"args,block"`
	Phases     []*Phase   `hcl:"phase,block"`
}
