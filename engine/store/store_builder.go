package store

import "github.com/Carmen-Shannon/oxy-assets/engine/renderer/pipeline"

// StoreBuilderOption is a functional option for configuring a Store via NewStore.
type StoreBuilderOption func(*store)

// WithPipelines pre-registers pipelines in the store.
//
// Parameters:
//   - pipelines: the pipelines to register
//
// Returns:
//   - StoreBuilderOption: a function that registers the pipelines
func WithPipelines(pipelines ...pipeline.Pipeline) StoreBuilderOption {
	return func(s *store) {
		for _, p := range pipelines {
			s.AddPipeline(p)
		}
	}
}
