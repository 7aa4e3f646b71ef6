package model

import (
	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer"
)

// geometry is the implementation of the Geometry interface.
type geometry struct {
	name       asset.GeometryName
	indexCount int
	resource   renderer.Resource
}

// mesh is the implementation of the Mesh interface.
type mesh struct {
	name       asset.MeshName
	geometries []Geometry
}

// Geometry is one uploaded sub-mesh: a vertex and index buffer drawn with a single material.
type Geometry interface {
	// Name returns the geometry name declared in the mesh descriptor.
	//
	// Returns:
	//   - asset.GeometryName: the geometry name
	Name() asset.GeometryName

	// IndexCount returns the number of indices to draw.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Resource returns the device buffers of the geometry.
	//
	// Returns:
	//   - renderer.Resource: the GPU geometry
	Resource() renderer.Resource
}

// Mesh is an uploaded mesh source file. Its geometries follow the order declared in the
// mesh descriptor, which is the order model materials are matched against.
type Mesh interface {
	// Name returns the mesh identifier.
	//
	// Returns:
	//   - asset.MeshName: the mesh name
	Name() asset.MeshName

	// Geometries returns the geometries in declared order.
	//
	// Returns:
	//   - []Geometry: the geometries
	Geometries() []Geometry

	// GeometryCount returns the number of geometries.
	//
	// Returns:
	//   - int: the geometry count
	GeometryCount() int

	// GeometryNames returns the geometry names in declared order.
	//
	// Returns:
	//   - []asset.GeometryName: the names
	GeometryNames() []asset.GeometryName
}

var (
	_ Geometry = &geometry{}
	_ Mesh     = &mesh{}
)

// NewGeometry creates a Geometry around an uploaded buffer pair.
//
// Parameters:
//   - name: the geometry name
//   - indexCount: the number of indices
//   - resource: the device buffers
//
// Returns:
//   - Geometry: the new geometry
func NewGeometry(name asset.GeometryName, indexCount int, resource renderer.Resource) Geometry {
	return &geometry{name: name, indexCount: indexCount, resource: resource}
}

// NewMesh creates a Mesh from geometries already sorted in declared order.
//
// Parameters:
//   - name: the mesh name
//   - geometries: the geometries
//
// Returns:
//   - Mesh: the new mesh
func NewMesh(name asset.MeshName, geometries ...Geometry) Mesh {
	return &mesh{name: name, geometries: geometries}
}

func (g *geometry) Name() asset.GeometryName    { return g.name }
func (g *geometry) IndexCount() int             { return g.indexCount }
func (g *geometry) Resource() renderer.Resource { return g.resource }

func (m *mesh) Name() asset.MeshName {
	return m.name
}

func (m *mesh) Geometries() []Geometry {
	out := make([]Geometry, len(m.geometries))
	copy(out, m.geometries)
	return out
}

func (m *mesh) GeometryCount() int {
	return len(m.geometries)
}

func (m *mesh) GeometryNames() []asset.GeometryName {
	names := make([]asset.GeometryName, len(m.geometries))
	for i, g := range m.geometries {
		names[i] = g.Name()
	}
	return names
}
