package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
)

// PipelineNotFoundInStoreError is returned when a model references a pipeline that was never registered.
type PipelineNotFoundInStoreError struct {
	Model    asset.ModelName
	Pipeline string
}

func (e *PipelineNotFoundInStoreError) Error() string {
	return fmt.Sprintf("pipeline %s not found in store while trying to build %s", e.Pipeline, e.Model)
}

// InvalidMaterialCountError is returned when a model pairs a different number of materials
// than its mesh has geometries.
type InvalidMaterialCountError struct {
	Model                    asset.ModelName
	Mesh                     asset.MeshName
	DescriptorMaterialsCount int
	ModelGeometriesCount     int
}

func (e *InvalidMaterialCountError) Error() string {
	return fmt.Sprintf("materials count (%d) does not match geometries count (%d) for %s (mesh: %s)",
		e.DescriptorMaterialsCount, e.ModelGeometriesCount, e.Model, e.Mesh)
}

// InvalidMaterialAndPipelineError is returned when the model's materials contradict its pipeline.
type InvalidMaterialAndPipelineError struct {
	Model    asset.ModelName
	Pipeline string
	Reason   string
}

func (e *InvalidMaterialAndPipelineError) Error() string {
	return fmt.Sprintf("invalid materials configuration for %s using pipeline %s: %s", e.Model, e.Pipeline, e.Reason)
}

// MaterialNotSetForGeometryError is returned when a mesh geometry has no material pair in the model.
type MaterialNotSetForGeometryError struct {
	Geometry asset.GeometryName
	Model    asset.ModelName
}

func (e *MaterialNotSetForGeometryError) Error() string {
	return fmt.Sprintf("material not set for geometry %s for %s", e.Geometry, e.Model)
}

// DanglingGeometryError is returned when a model pairs a material with a geometry its mesh does not declare.
type DanglingGeometryError struct {
	Model    asset.ModelName
	Mesh     asset.MeshName
	Geometry asset.GeometryName
}

func (e *DanglingGeometryError) Error() string {
	return fmt.Sprintf("%s pairs a material with geometry %s, which %s does not declare", e.Model, e.Geometry, e.Mesh)
}

// IncompatibleMaterialError is returned when a material's kind is not accepted by the model's pipeline.
type IncompatibleMaterialError struct {
	Model    asset.ModelName
	Pipeline string
	Material asset.MaterialName
	Kind     asset.MaterialKind
}

func (e *IncompatibleMaterialError) Error() string {
	return fmt.Sprintf("pipeline %s used by %s cannot bind %s of kind %s", e.Pipeline, e.Model, e.Material, e.Kind)
}

// UnexpectedGeometryError is returned when a mesh source contains a geometry the mesh descriptor does not declare.
type UnexpectedGeometryError struct {
	Mesh     asset.MeshName
	Geometry asset.GeometryName
}

func (e *UnexpectedGeometryError) Error() string {
	return fmt.Sprintf("expected geometry does not match file loaded: %s contains undeclared geometry %s", e.Mesh, e.Geometry)
}

// MissingGeometryError is returned when a geometry declared by a mesh descriptor is absent from its source.
type MissingGeometryError struct {
	Mesh     asset.MeshName
	Geometry asset.GeometryName
}

func (e *MissingGeometryError) Error() string {
	return fmt.Sprintf("expected geometry does not match file loaded: %s is missing declared geometry %s", e.Mesh, e.Geometry)
}
