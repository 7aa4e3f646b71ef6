package model

import (
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/pipeline"
)

// ModelBuilderOption is a functional option used to configure a Model during construction.
type ModelBuilderOption func(*model)

// WithPipeline sets the pipeline drawing the model.
//
// Parameters:
//   - p: the pipeline
//
// Returns:
//   - ModelBuilderOption: a function that applies the pipeline option to a model
func WithPipeline(p pipeline.Pipeline) ModelBuilderOption {
	return func(m *model) {
		m.pipeline = p
	}
}

// WithMesh sets the mesh of the model.
//
// Parameters:
//   - mesh: the uploaded mesh
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(mesh Mesh) ModelBuilderOption {
	return func(m *model) {
		m.mesh = mesh
	}
}

// WithMaterials sets the materials of the model, one per geometry in mesh order.
//
// Parameters:
//   - mats: the materials
//
// Returns:
//   - ModelBuilderOption: a function that applies the materials option to a model
func WithMaterials(mats ...material.Material) ModelBuilderOption {
	return func(m *model) {
		m.materials = mats
	}
}
