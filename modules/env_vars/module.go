// Package env_vars provides a phase that captures the process environment
// into the argument pool.
package env_vars

import (
	"os"
	"strings"

	"github.com/crouilla/phaserunner/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunEnvVars captures the process environment. Declare one output to
// receive the variable map, e.g. outputs = ["env"].
func OnRunEnvVars() (bool, map[string]string) {
	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = pair[1]
		}
	}
	return true, envMap
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("OnRunEnvVars", OnRunEnvVars)
}
