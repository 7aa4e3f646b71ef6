// Package store holds every resource the loader has materialized, one cache per kind.
package store

import (
	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/model"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/texture"
)

// Kind names a cache in the store, for reporting.
type Kind string

const (
	KindTextures  Kind = "textures"
	KindMaterials Kind = "materials"
	KindMeshes    Kind = "meshes"
	KindPipelines Kind = "pipelines"
	KindModels    Kind = "models"
)

// store is the implementation of the Store interface.
type store struct {
	textures  *cache[texture.Texture]
	materials *cache[material.Material]
	meshes    *cache[model.Mesh]
	pipelines *cache[pipeline.Pipeline]
	models    *cache[model.Model]
}

// Store keeps materialized resources by plain name. Each kind lives in its own cache, so
// a texture and a material can share a name. Entries are never removed; adding a name
// twice replaces the first entry.
//
// Store is safe for concurrent use. It does not prevent two goroutines from building the
// same resource; the loader coordinates that.
type Store interface {
	// ContainsTexture reports whether a texture is cached.
	//
	// Parameters:
	//   - name: the texture name
	//
	// Returns:
	//   - bool: true if cached
	ContainsTexture(name asset.TextureName) bool

	// Texture returns a cached texture.
	//
	// Parameters:
	//   - name: the texture name
	//
	// Returns:
	//   - texture.Texture: the texture
	//   - bool: false if not cached
	Texture(name asset.TextureName) (texture.Texture, bool)

	// AddTexture caches a texture under its own name.
	//
	// Parameters:
	//   - t: the texture
	AddTexture(t texture.Texture)

	// ContainsMaterial reports whether a material is cached.
	//
	// Parameters:
	//   - name: the material name
	//
	// Returns:
	//   - bool: true if cached
	ContainsMaterial(name asset.MaterialName) bool

	// Material returns a cached material.
	//
	// Parameters:
	//   - name: the material name
	//
	// Returns:
	//   - material.Material: the material
	//   - bool: false if not cached
	Material(name asset.MaterialName) (material.Material, bool)

	// AddMaterial caches a material under its own name.
	//
	// Parameters:
	//   - m: the material
	AddMaterial(m material.Material)

	// ContainsMesh reports whether a mesh is cached.
	//
	// Parameters:
	//   - name: the mesh name
	//
	// Returns:
	//   - bool: true if cached
	ContainsMesh(name asset.MeshName) bool

	// Mesh returns a cached mesh.
	//
	// Parameters:
	//   - name: the mesh name
	//
	// Returns:
	//   - model.Mesh: the mesh
	//   - bool: false if not cached
	Mesh(name asset.MeshName) (model.Mesh, bool)

	// AddMesh caches a mesh under its own name.
	//
	// Parameters:
	//   - m: the mesh
	AddMesh(m model.Mesh)

	// ContainsPipeline reports whether a pipeline is registered.
	//
	// Parameters:
	//   - name: the pipeline name
	//
	// Returns:
	//   - bool: true if registered
	ContainsPipeline(name string) bool

	// Pipeline returns a registered pipeline.
	//
	// Parameters:
	//   - name: the pipeline name
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline
	//   - bool: false if not registered
	Pipeline(name string) (pipeline.Pipeline, bool)

	// AddPipeline registers a pipeline under its own name.
	//
	// Parameters:
	//   - p: the pipeline
	AddPipeline(p pipeline.Pipeline)

	// ContainsModel reports whether a model is cached.
	//
	// Parameters:
	//   - name: the model name
	//
	// Returns:
	//   - bool: true if cached
	ContainsModel(name asset.ModelName) bool

	// Model returns a cached model.
	//
	// Parameters:
	//   - name: the model name
	//
	// Returns:
	//   - model.Model: the model
	//   - bool: false if not cached
	Model(name asset.ModelName) (model.Model, bool)

	// AddModel caches a model under its own name.
	//
	// Parameters:
	//   - m: the model
	AddModel(m model.Model)

	// PipelineNames returns the registered pipeline names in sorted order.
	//
	// Returns:
	//   - []string: the names
	PipelineNames() []string

	// Counts returns the number of cached entries per kind.
	//
	// Returns:
	//   - map[Kind]int: entry counts
	Counts() map[Kind]int
}

var _ Store = &store{}

// NewStore creates an empty Store.
//
// Parameters:
//   - options: a variadic list of StoreBuilderOption functions
//
// Returns:
//   - Store: the new store
func NewStore(options ...StoreBuilderOption) Store {
	s := &store{
		textures:  newCache[texture.Texture](),
		materials: newCache[material.Material](),
		meshes:    newCache[model.Mesh](),
		pipelines: newCache[pipeline.Pipeline](),
		models:    newCache[model.Model](),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *store) ContainsTexture(name asset.TextureName) bool {
	return s.textures.contains(string(name))
}

func (s *store) Texture(name asset.TextureName) (texture.Texture, bool) {
	return s.textures.get(string(name))
}

func (s *store) AddTexture(t texture.Texture) {
	s.textures.add(string(t.Name()), t)
}

func (s *store) ContainsMaterial(name asset.MaterialName) bool {
	return s.materials.contains(string(name))
}

func (s *store) Material(name asset.MaterialName) (material.Material, bool) {
	return s.materials.get(string(name))
}

func (s *store) AddMaterial(m material.Material) {
	s.materials.add(string(m.Name()), m)
}

func (s *store) ContainsMesh(name asset.MeshName) bool {
	return s.meshes.contains(string(name))
}

func (s *store) Mesh(name asset.MeshName) (model.Mesh, bool) {
	return s.meshes.get(string(name))
}

func (s *store) AddMesh(m model.Mesh) {
	s.meshes.add(string(m.Name()), m)
}

func (s *store) ContainsPipeline(name string) bool {
	return s.pipelines.contains(name)
}

func (s *store) Pipeline(name string) (pipeline.Pipeline, bool) {
	return s.pipelines.get(name)
}

func (s *store) AddPipeline(p pipeline.Pipeline) {
	s.pipelines.add(p.Name(), p)
}

func (s *store) ContainsModel(name asset.ModelName) bool {
	return s.models.contains(string(name))
}

func (s *store) Model(name asset.ModelName) (model.Model, bool) {
	return s.models.get(string(name))
}

func (s *store) AddModel(m model.Model) {
	s.models.add(string(m.Name()), m)
}

func (s *store) PipelineNames() []string {
	return s.pipelines.names()
}

func (s *store) Counts() map[Kind]int {
	return map[Kind]int{
		KindTextures:  s.textures.len(),
		KindMaterials: s.materials.len(),
		KindMeshes:    s.meshes.len(),
		KindPipelines: s.pipelines.len(),
		KindModels:    s.models.len(),
	}
}
