package engine

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/loader"
	"github.com/Carmen-Shannon/oxy-assets/engine/profiler"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-assets/engine/scene"
	"github.com/Carmen-Shannon/oxy-assets/engine/settings"
	"github.com/Carmen-Shannon/oxy-assets/engine/store"
	log "github.com/sirupsen/logrus"
)

// engine implements the Engine interface.
// Wires configuration, catalog, store, loader and scene together.
type engine struct {
	conf     settings.AppConfig
	renderer renderer.Renderer
	catalog  asset.Catalog
	backends map[loader.LoaderBackendType]loader.LoaderBackend

	logger           log.FieldLogger
	profiler         *profiler.Profiler
	profilingEnabled bool

	loader loader.Loader
	scene  scene.Scene

	startOnce   sync.Once
	startErr    error
	releaseOnce sync.Once
}

// Engine is the main entry point of the asset engine.
// It owns the renderer it was given and releases it with Release.
type Engine interface {
	// Start registers the configured pipelines, then preloads the configured scene.
	// Objects whose model fails to load are logged and skipped. Only the first call has
	// an effect; later calls return its result.
	//
	// Returns:
	//   - error: error if a pipeline cannot be registered
	Start() error

	// Config returns the configuration the engine was built with.
	//
	// Returns:
	//   - settings.AppConfig: the configuration
	Config() settings.AppConfig

	// Loader returns the resource loader.
	//
	// Returns:
	//   - loader.Loader: the loader
	Loader() loader.Loader

	// Store returns the resource store the loader caches into.
	//
	// Returns:
	//   - store.Store: the store
	Store() store.Store

	// Scene returns the scene built from the configuration.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Profiler returns the load profiler.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler
	Profiler() *profiler.Profiler

	// Release stops the scene workers and releases the renderer. Safe to call multiple times.
	Release()
}

// NewEngine creates a new Engine. Unless WithCatalog is given, the descriptor lists named by
// the configuration are read into a new catalog.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: error if the descriptor lists cannot be loaded
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		conf:     settings.DefaultAppConfig(),
		backends: make(map[loader.LoaderBackendType]loader.LoaderBackend),
		logger:   log.StandardLogger(),
	}

	for _, option := range options {
		option(e)
	}

	if e.catalog == nil {
		catalog, err := settings.LoadCatalog(e.conf.Resources)
		if err != nil {
			return nil, fmt.Errorf("failed to load asset catalog: %w", err)
		}
		e.catalog = catalog
	}
	e.logger.WithField("descriptors", e.catalog.Len()).Info("asset catalog loaded")

	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))

	loaderOptions := []loader.LoaderBuilderOption{
		loader.WithCatalog(e.catalog),
		loader.WithTexturesDirectory(e.conf.Resources.TexturesDirectory),
		loader.WithMeshesDirectory(e.conf.Resources.MeshesDirectory),
		loader.WithLogger(e.logger),
		loader.WithProfiler(e.profiler),
	}
	if e.renderer != nil {
		loaderOptions = append(loaderOptions, loader.WithRenderer(e.renderer))
	}
	for t, b := range e.backends {
		loaderOptions = append(loaderOptions, loader.WithBackend(t, b))
	}
	e.loader = loader.NewLoader(loaderOptions...)

	objects := make([]scene.Object, 0, len(e.conf.Scene.Objects))
	for _, oc := range e.conf.Scene.Objects {
		obj := scene.NewObject(oc.Name, asset.ModelName(oc.Model))
		obj.Position = oc.Position
		obj.Scale = oc.Scale
		objects = append(objects, obj)
	}
	e.scene = scene.NewScene("main",
		scene.WithObjects(objects...),
		scene.WithPreloadWorkers(e.conf.Workers),
		scene.WithLogger(e.logger),
	)
	return e, nil
}

func (e *engine) Start() error {
	e.startOnce.Do(func() {
		pipelines := make([]pipeline.Pipeline, 0, len(e.conf.Pipelines))
		for _, pc := range e.conf.Pipelines {
			opts := []pipeline.PipelineBuilderOption{pipeline.WithMaterialKinds(pc.MaterialKinds...)}
			if pc.Shader != "" {
				opts = append(opts, pipeline.WithShader(pc.Shader))
			}
			pipelines = append(pipelines, pipeline.NewPipeline(pc.Name, opts...))
		}
		if err := e.loader.RegisterPipelines(pipelines...); err != nil {
			e.startErr = err
			return
		}

		e.scene.Preload(e.loader)
		if e.profilingEnabled {
			e.profiler.Report()
		}
	})
	return e.startErr
}

func (e *engine) Config() settings.AppConfig {
	return e.conf
}

func (e *engine) Loader() loader.Loader {
	return e.loader
}

func (e *engine) Store() store.Store {
	return e.loader.Store()
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) Release() {
	e.releaseOnce.Do(func() {
		e.scene.Release()
		if e.renderer != nil {
			e.renderer.Release()
		}
		e.logger.Info("engine released")
	})
}
