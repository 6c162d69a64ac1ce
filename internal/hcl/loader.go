// Package hcl implements the config.Loader interface for HCL plan files.
package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/crouilla/phaserunner/internal/config"
	"github.com/crouilla/phaserunner/internal/ctxlog"
	"github.com/crouilla/phaserunner/internal/fsutil"
	"github.com/crouilla/phaserunner/internal/schema"
)

// Loader is the HCL-specific implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL plan loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes the top-level blocks of a plan file.
type fileRoot struct {
	Plans  []*schema.Plan `hcl:"plan,block"`
	Remain hcl.Body       `hcl:",remain"`
}

// Load parses every .hcl file under the given paths and merges their plan
// blocks into one model. Phases accumulate in file order; scalar settings
// are last-writer-wins; args merge with overwrite-on-conflict.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := config.NewModel()

	var planFiles []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to discover plan files under %s: %w", path, err)
		}
		planFiles = append(planFiles, found...)
	}
	logger.Debug("Discovered plan files.", "count", len(planFiles))

	parser := hclparse.NewParser()
	for _, file := range planFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse plan file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode plan file %s: %w", file, diags)
		}

		for _, plan := range root.Plans {
			if err := l.mergePlan(ctx, model.Plan, plan); err != nil {
				return nil, fmt.Errorf("invalid plan in %s: %w", file, err)
			}
		}
	}

	if err := validatePlan(model.Plan); err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.", "phases", len(model.Plan.Phases), "args", len(model.Plan.Args))
	return model, nil
}

// mergePlan folds one decoded plan block into the accumulated model plan.
func (l *Loader) mergePlan(ctx context.Context, dst *config.Plan, src *schema.Plan) error {
	if src.StopOnFail != nil {
		dst.StopOnFail = src.StopOnFail
	}
	if src.StartWith != "" {
		dst.StartWith = src.StartWith
	}
	if src.EndWith != "" {
		dst.EndWith = src.EndWith
	}
	if src.Exact != "" {
		dst.Exact = src.Exact
	}

	if src.Args != nil {
		args, err := decodeArgs(ctx, src.Args.Body)
		if err != nil {
			return err
		}
		for k, v := range args {
			dst.Args[k] = v
		}
	}

	for _, ph := range src.Phases {
		dst.Phases = append(dst.Phases, &config.Phase{
			Name:       ph.Name,
			Handler:    ph.Handler,
			Required:   ph.Required,
			Optional:   ph.Optional,
			Outputs:    ph.Outputs,
			StopOnFail: ph.StopOnFail,
		})
	}
	return nil
}

// validatePlan rejects settings the runner would misinterpret.
func validatePlan(plan *config.Plan) error {
	if plan.Exact != "" && (plan.StartWith != "" || plan.EndWith != "") {
		return fmt.Errorf("plan cannot set both 'exact' and 'start_with'/'end_with'")
	}
	return nil
}
