// Package registry maps handler names to Go work-unit functions so that
// declarative plan files can refer to compiled phase implementations.
package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/crouilla/phaserunner/internal/phase"
)

// Module is the interface a package of phase handlers implements to be
// registered on an application instance.
type Module interface {
	Register(r *Registry)
}

// Registry holds the named work-unit handlers for a single application
// instance. Registration collisions are programmer errors and panic.
type Registry struct {
	handlers map[string]phase.Func
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]phase.Func)}
}

// RegisterHandler registers a work unit under a handler name.
func (r *Registry) RegisterHandler(name string, fn phase.Func) {
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("handler with name '%s' already registered", name))
	}
	slog.Debug("Registering phase handler.", "name", name)
	r.handlers[name] = fn
}

// Handler looks up a work unit by handler name.
func (r *Registry) Handler(name string) (phase.Func, bool) {
	fn, ok := r.handlers[name]
	return fn, ok
}

// Names returns the registered handler names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
