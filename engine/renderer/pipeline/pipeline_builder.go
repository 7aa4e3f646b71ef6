package pipeline

import (
	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithMaterialKinds sets the material kinds this pipeline accepts.
// Duplicates are dropped, declaration order is kept.
//
// Parameters:
//   - kinds: the accepted material kinds
//
// Returns:
//   - PipelineBuilderOption: a function that sets the accepted kinds
func WithMaterialKinds(kinds ...asset.MaterialKind) PipelineBuilderOption {
	return func(p *pipeline) {
		p.materialKinds = p.materialKinds[:0]
		seen := make(map[asset.MaterialKind]bool, len(kinds))
		for _, k := range kinds {
			if !seen[k] {
				seen[k] = true
				p.materialKinds = append(p.materialKinds, k)
			}
		}
	}
}

// WithShader overrides the built-in WGSL source of this pipeline.
//
// Parameters:
//   - source: the WGSL source with vs_main and fs_main entry points
//
// Returns:
//   - PipelineBuilderOption: a function that sets the shader source
func WithShader(source string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.shader = source
	}
}

// WithResource sets the compiled device pipeline.
//
// Parameters:
//   - res: the pipeline resource
//
// Returns:
//   - PipelineBuilderOption: a function that sets the pipeline resource
func WithResource(res renderer.Resource) PipelineBuilderOption {
	return func(p *pipeline) {
		p.resource = res
	}
}
