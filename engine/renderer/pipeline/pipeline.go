package pipeline

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	// name is the unique identifier models refer to the pipeline by
	name string
	// materialKinds lists the material kinds the pipeline binds, empty when it draws bare geometry
	materialKinds []asset.MaterialKind
	// shader optionally overrides the built-in WGSL source
	shader string
	// resource is the compiled device pipeline, nil when registered without a device
	resource renderer.Resource
}

// Pipeline defines the interface for a named render pipeline and the material kinds it accepts.
// Models reference pipelines by name; the pipeline decides whether a model needs materials
// and which kinds it may use.
type Pipeline interface {
	// Name returns the unique name of this pipeline.
	//
	// Returns:
	//   - string: the pipeline name
	Name() string

	// SupportedMaterialKinds returns the material kinds this pipeline can bind.
	//
	// Returns:
	//   - []asset.MaterialKind: the accepted kinds, empty when no material is bound
	SupportedMaterialKinds() []asset.MaterialKind

	// NeedsMaterial reports whether models drawn by this pipeline must supply materials.
	//
	// Returns:
	//   - bool: true if at least one material kind is supported
	NeedsMaterial() bool

	// CanUse reports whether a material of the given kind can be bound by this pipeline.
	//
	// Parameters:
	//   - kind: the material kind
	//
	// Returns:
	//   - bool: true if the kind is supported
	CanUse(kind asset.MaterialKind) bool

	// Spec returns the device description of this pipeline.
	//
	// Returns:
	//   - renderer.PipelineSpec: the spec passed to the renderer
	Spec() renderer.PipelineSpec

	// Resource returns the compiled device pipeline.
	//
	// Returns:
	//   - renderer.Resource: the pipeline resource, or nil if none was created
	Resource() renderer.Resource

	// SetResource stores the compiled device pipeline.
	//
	// Parameters:
	//   - res: the pipeline resource
	SetResource(res renderer.Resource)
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a new Pipeline with the provided options.
//
// Parameters:
//   - name: the unique pipeline name
//   - options: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance
func NewPipeline(name string, options ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		name: name,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *pipeline) Name() string {
	return p.name
}

func (p *pipeline) SupportedMaterialKinds() []asset.MaterialKind {
	return slices.Clone(p.materialKinds)
}

func (p *pipeline) NeedsMaterial() bool {
	return len(p.materialKinds) > 0
}

func (p *pipeline) CanUse(kind asset.MaterialKind) bool {
	return slices.Contains(p.materialKinds, kind)
}

func (p *pipeline) Spec() renderer.PipelineSpec {
	return renderer.PipelineSpec{
		Name:          p.name,
		MaterialKinds: slices.Clone(p.materialKinds),
		Shader:        p.shader,
	}
}

func (p *pipeline) Resource() renderer.Resource {
	return p.resource
}

func (p *pipeline) SetResource(res renderer.Resource) {
	p.resource = res
}
