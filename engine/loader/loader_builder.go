package loader

import (
	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/profiler"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer"
	"github.com/Carmen-Shannon/oxy-assets/engine/store"
	log "github.com/sirupsen/logrus"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithRenderer is an option builder that sets the Renderer used by the Loader.
//
// Parameters:
//   - r: the renderer instance
//
// Returns:
//   - LoaderBuilderOption: a function that applies the renderer option to a loader
func WithRenderer(r renderer.Renderer) LoaderBuilderOption {
	return func(l *loader) {
		l.renderer = r
	}
}

// WithCatalog is an option builder that sets the catalog descriptors are resolved from.
//
// Parameters:
//   - c: the catalog
//
// Returns:
//   - LoaderBuilderOption: a function that applies the catalog option to a loader
func WithCatalog(c asset.Catalog) LoaderBuilderOption {
	return func(l *loader) {
		if c != nil {
			l.catalog = c
		}
	}
}

// WithStore is an option builder that sets the store materialized resources are cached in.
//
// Parameters:
//   - s: the store
//
// Returns:
//   - LoaderBuilderOption: a function that applies the store option to a loader
func WithStore(s store.Store) LoaderBuilderOption {
	return func(l *loader) {
		if s != nil {
			l.store = s
		}
	}
}

// WithTexturesDirectory is an option builder that sets the directory texture paths are relative to.
//
// Parameters:
//   - dir: the textures directory
//
// Returns:
//   - LoaderBuilderOption: a function that applies the directory option to a loader
func WithTexturesDirectory(dir string) LoaderBuilderOption {
	return func(l *loader) {
		l.texturesDirectory = dir
	}
}

// WithMeshesDirectory is an option builder that sets the directory mesh sources are relative to.
//
// Parameters:
//   - dir: the meshes directory
//
// Returns:
//   - LoaderBuilderOption: a function that applies the directory option to a loader
func WithMeshesDirectory(dir string) LoaderBuilderOption {
	return func(l *loader) {
		l.meshesDirectory = dir
	}
}

// WithBackend is an option builder that replaces the backend used for one mesh source format.
//
// Parameters:
//   - t: the source format
//   - b: the backend decoding that format
//
// Returns:
//   - LoaderBuilderOption: a function that installs the backend on a loader
func WithBackend(t LoaderBackendType, b LoaderBackend) LoaderBuilderOption {
	return func(l *loader) {
		l.backends[t] = b
	}
}

// WithLogger is an option builder that sets the logger the Loader reports to.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger log.FieldLogger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithProfiler is an option builder that records every materialization in a Profiler.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - LoaderBuilderOption: a function that applies the profiler option to a loader
func WithProfiler(p *profiler.Profiler) LoaderBuilderOption {
	return func(l *loader) {
		l.profiler = p
	}
}
