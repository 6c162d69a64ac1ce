// Package print provides a utility phase that dumps its bound arguments.
package print

import (
	"context"
	"fmt"
	"sort"

	"github.com/crouilla/phaserunner/internal/ctxlog"
	"github.com/crouilla/phaserunner/internal/phase"
	"github.com/crouilla/phaserunner/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunPrint prints every argument the phase was bound to, sorted by key.
// It is a utility phase: it returns nothing, so it always passes.
func OnRunPrint(ctx context.Context, args phase.Args) {
	ctxlog.FromContext(ctx).Info("Printing bound arguments.", "count", len(args))

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("      %s = %v\n", k, args[k])
	}
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("OnRunPrint", OnRunPrint)
}
