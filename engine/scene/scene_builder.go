package scene

import (
	log "github.com/sirupsen/logrus"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects adds initial objects to the scene, keeping their order.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...Object) SceneBuilderOption {
	return func(s *scene) {
		s.objects = append(s.objects, objects...)
	}
}

// WithPreloadWorkers sets the number of worker goroutines resolving models during Preload.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of preload workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPreloadWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.preloadWorkers = n
	}
}

// WithLogger sets the logger receiving preload warnings.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger log.FieldLogger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}
