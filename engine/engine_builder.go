package engine

import (
	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/loader"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer"
	"github.com/Carmen-Shannon/oxy-assets/engine/settings"
	log "github.com/sirupsen/logrus"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithConfig sets the application configuration. Defaults to settings.DefaultAppConfig().
//
// Parameters:
//   - conf: the configuration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(conf settings.AppConfig) EngineBuilderOption {
	return func(e *engine) {
		e.conf = conf
	}
}

// WithRenderer sets the renderer creating device resources. Without one, pipelines are
// registered without device objects and every load that needs the device fails.
//
// Parameters:
//   - r: the renderer, owned by the engine from now on
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithCatalog sets a prepared catalog instead of reading the descriptor lists from the configuration.
//
// Parameters:
//   - c: the catalog
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCatalog(c asset.Catalog) EngineBuilderOption {
	return func(e *engine) {
		e.catalog = c
	}
}

// WithLogger sets the logger shared by every engine component.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger log.FieldLogger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithGeometryBackends replaces the geometry source backends for the given formats.
//
// Parameters:
//   - backends: the backends keyed by format
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithGeometryBackends(backends map[loader.LoaderBackendType]loader.LoaderBackend) EngineBuilderOption {
	return func(e *engine) {
		for t, b := range backends {
			e.backends[t] = b
		}
	}
}

// WithProfiling enables the load report logged at the end of Start.
//
// Parameters:
//   - enabled: if true, Start logs the profiler report
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}
