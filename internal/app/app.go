// Package app is the composition root: it wires the logger, the handler
// registry, the plan loader and the phase runner into a runnable instance.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/crouilla/phaserunner/internal/config"
	"github.com/crouilla/phaserunner/internal/ctxlog"
	"github.com/crouilla/phaserunner/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	model    *config.Model
}

// NewApp constructs a fully initialized App: isolated logger, populated
// registry, and the plan loaded through the given loader. Failing to load
// the plan, or a plan phase naming an unregistered handler, is a fatal
// startup error and panics; the entrypoint recovers it into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All phase handler modules registered.", "count", len(modules))

	model, err := loader.Load(ctx, appConfig.PlanPath)
	if err != nil {
		panic(fmt.Errorf("failed to load plan: %w", err))
	}
	logger.Debug("Plan loaded into unified model.", "phases", len(model.Plan.Phases))

	for _, ph := range model.Plan.Phases {
		if _, ok := reg.Handler(ph.Handler); !ok {
			panic(fmt.Errorf("phase %q references unknown handler %q (registered: %v)",
				ph.Name, ph.Handler, reg.Names()))
		}
	}
	logger.Debug("Plan handler validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		registry: reg,
		model:    model,
	}
}

// Registry returns the application's handler registry. Primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
