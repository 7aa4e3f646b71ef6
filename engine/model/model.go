package model

import (
	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/pipeline"
)

// model is the implementation of the Model interface.
type model struct {
	name      asset.ModelName
	pipeline  pipeline.Pipeline
	mesh      Mesh
	materials []material.Material
}

// Model defines the interface for a fully resolved drawable: a mesh, the pipeline drawing
// it and one material per geometry.
//
// Materials()[i] is bound when drawing Mesh().Geometries()[i]. A model whose pipeline needs
// no material has no materials at all.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - asset.ModelName: the model name
	Name() asset.ModelName

	// Pipeline retrieves the pipeline drawing this model.
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline
	Pipeline() pipeline.Pipeline

	// Mesh retrieves the mesh of this model.
	//
	// Returns:
	//   - Mesh: the mesh
	Mesh() Mesh

	// Materials retrieves the materials in mesh geometry order.
	//
	// Returns:
	//   - []material.Material: the materials, empty when the pipeline takes none
	Materials() []material.Material

	// MaterialFor retrieves the material bound to a geometry.
	//
	// Parameters:
	//   - geometry: the geometry name
	//
	// Returns:
	//   - material.Material: the material
	//   - bool: false if the geometry is unknown or the model has no materials
	MaterialFor(geometry asset.GeometryName) (material.Material, bool)
}

var _ Model = &model{}

// NewModel creates a new Model instance configured with the provided options.
//
// Parameters:
//   - name: the model identifier
//   - options: variadic list of ModelBuilderOption functions to configure the model
//
// Returns:
//   - Model: a new Model instance
func NewModel(name asset.ModelName, options ...ModelBuilderOption) Model {
	m := &model{name: name}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() asset.ModelName {
	return m.name
}

func (m *model) Pipeline() pipeline.Pipeline {
	return m.pipeline
}

func (m *model) Mesh() Mesh {
	return m.mesh
}

func (m *model) Materials() []material.Material {
	out := make([]material.Material, len(m.materials))
	copy(out, m.materials)
	return out
}

func (m *model) MaterialFor(geometry asset.GeometryName) (material.Material, bool) {
	if m.mesh == nil || len(m.materials) == 0 {
		return nil, false
	}
	for i, name := range m.mesh.GeometryNames() {
		if name == geometry && i < len(m.materials) {
			return m.materials[i], true
		}
	}
	return nil, false
}
