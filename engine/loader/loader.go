package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Carmen-Shannon/oxy-assets/common"
	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/model"
	"github.com/Carmen-Shannon/oxy-assets/engine/profiler"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-assets/engine/store"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// loader is the implementation of the Loader interface.
type loader struct {
	renderer renderer.Renderer
	catalog  asset.Catalog
	store    store.Store
	backends map[LoaderBackendType]LoaderBackend

	texturesDirectory string
	meshesDirectory   string

	logger   log.FieldLogger
	profiler *profiler.Profiler

	// one flight group per kind, keyed by plain name, so a name is materialized at most once
	textures  singleflight.Group
	materials singleflight.Group
	meshes    singleflight.Group
	models    singleflight.Group
}

// Loader defines the public-facing interface for resolving catalog descriptors into
// materialized resources. Every Load method returns the cached resource when one exists,
// otherwise resolves the descriptor, recursively loads what it references, asks the renderer
// to create the device objects, caches the result and returns it.
//
// Loader is safe for concurrent use: concurrent requests for the same name share one
// materialization. A failed load caches nothing for that name, but sub-resources loaded
// before the failure stay cached.
type Loader interface {
	// LoadTexture materializes a texture.
	//
	// Parameters:
	//   - name: the texture name
	//
	// Returns:
	//   - texture.Texture: the cached or newly created texture
	//   - error: catalog, decode or device error
	LoadTexture(name asset.TextureName) (texture.Texture, error)

	// LoadMaterial materializes a material and, for texture materials, both of its textures.
	//
	// Parameters:
	//   - name: the material name
	//
	// Returns:
	//   - material.Material: the cached or newly created material
	//   - error: catalog, texture or device error
	LoadMaterial(name asset.MaterialName) (material.Material, error)

	// LoadMesh materializes a mesh. The source file must contain exactly the declared
	// geometries; geometries are uploaded in declared order.
	//
	// Parameters:
	//   - name: the mesh name
	//
	// Returns:
	//   - model.Mesh: the cached or newly created mesh
	//   - error: catalog, parse, geometry mismatch or device error
	LoadMesh(name asset.MeshName) (model.Mesh, error)

	// LoadModel materializes a model: its mesh, its registered pipeline and one material per
	// mesh geometry, ordered like the mesh geometries.
	//
	// Parameters:
	//   - name: the model name
	//
	// Returns:
	//   - model.Model: the cached or newly created model
	//   - error: catalog, mesh, pipeline, material pairing or material error
	LoadModel(name asset.ModelName) (model.Model, error)

	// Resolve dispatches a kind-qualified name to the matching Load method.
	//
	// Parameters:
	//   - name: the kind-qualified asset name
	//
	// Returns:
	//   - any: the texture.Texture, material.Material, model.Mesh or model.Model
	//   - error: the error of the underlying Load method
	Resolve(name asset.AssetName) (any, error)

	// RegisterPipelines adds pipelines to the store so models can reference them by name.
	// A device pipeline is compiled for each one through the renderer. Names already
	// registered are skipped.
	//
	// Parameters:
	//   - pipelines: the pipelines to register
	//
	// Returns:
	//   - error: error if a device pipeline cannot be created
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Store returns the store the loader caches into.
	//
	// Returns:
	//   - store.Store: the store
	Store() store.Store
}

var _ Loader = &loader{}

// ErrNoRenderer is returned when a resource must be created but the Loader was built without WithRenderer.
var ErrNoRenderer = errors.New("loader has no renderer")

// NewLoader creates a new Loader with the OBJ and glTF backends installed and options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided options
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		catalog: asset.NewCatalog(),
		store:   store.NewStore(),
		backends: map[LoaderBackendType]LoaderBackend{
			BackendTypeOBJ:  newOBJLoaderBackend(),
			BackendTypeGLTF: newGLTFLoaderBackend(),
		},
		logger: log.StandardLogger(),
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Store() store.Store {
	return l.store
}

func (l *loader) LoadTexture(name asset.TextureName) (texture.Texture, error) {
	return load(l, &l.textures, name, l.store.Texture, func() (texture.Texture, error) {
		if l.renderer == nil {
			return nil, ErrNoRenderer
		}
		desc, err := l.catalog.Texture(name)
		if err != nil {
			return nil, err
		}
		if err := desc.Validate(); err != nil {
			return nil, err
		}

		path := filepath.Join(l.texturesDirectory, desc.Path)
		staging, err := (&common.ImportedTexture{Name: string(name), Path: path}).Decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s from %s: %w", name, path, err)
		}

		res, err := l.renderer.CreateTexture(string(name), staging, renderer.TextureFormatFor(desc.Kind))
		if err != nil {
			return nil, fmt.Errorf("failed to upload %s: %w", name, err)
		}

		tex := texture.NewTexture(name,
			texture.WithKind(desc.Kind),
			texture.WithSize(staging.Width, staging.Height),
			texture.WithResource(res),
		)
		l.store.AddTexture(tex)
		return tex, nil
	})
}

func (l *loader) LoadMaterial(name asset.MaterialName) (material.Material, error) {
	return load(l, &l.materials, name, l.store.Material, func() (material.Material, error) {
		if l.renderer == nil {
			return nil, ErrNoRenderer
		}
		desc, err := l.catalog.Material(name)
		if err != nil {
			return nil, err
		}
		if err := desc.Validate(); err != nil {
			return nil, err
		}

		var mat material.Material
		switch desc.Kind() {
		case asset.MaterialKindColor:
			uniform := material.NewColorUniform(desc.Color.Ambient, desc.Color.Diffuse, desc.Color.Specular)
			res, err := l.renderer.CreateColorMaterial(string(name), uniform.Marshal())
			if err != nil {
				return nil, fmt.Errorf("failed to upload %s: %w", name, err)
			}
			mat = material.NewColorMaterial(name, uniform, material.WithResource(res))

		case asset.MaterialKindTexture:
			diffuse, err := l.LoadTexture(desc.Texture.Diffuse)
			if err != nil {
				return nil, err
			}
			normal, err := l.LoadTexture(desc.Texture.Normal)
			if err != nil {
				return nil, err
			}
			res, err := l.renderer.CreateTextureMaterial(string(name), diffuse.Resource(), normal.Resource())
			if err != nil {
				return nil, fmt.Errorf("failed to upload %s: %w", name, err)
			}
			mat = material.NewTextureMaterial(name, diffuse, normal, material.WithResource(res))
		}

		l.store.AddMaterial(mat)
		return mat, nil
	})
}

func (l *loader) LoadMesh(name asset.MeshName) (model.Mesh, error) {
	return load(l, &l.meshes, name, l.store.Mesh, func() (model.Mesh, error) {
		if l.renderer == nil {
			return nil, ErrNoRenderer
		}
		desc, err := l.catalog.Mesh(name)
		if err != nil {
			return nil, err
		}
		if err := desc.Validate(); err != nil {
			return nil, err
		}

		backendType := backendTypeFor(desc.Source)
		backend, ok := l.backends[backendType]
		if !ok {
			return nil, fmt.Errorf("no %s backend installed to load %s", backendType, name)
		}

		path := filepath.Join(l.meshesDirectory, desc.Source.Path())
		decoded, err := backend.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s from %s: %w", name, path, err)
		}

		byName := make(map[asset.GeometryName]model.GeometryVertices, len(decoded))
		for _, g := range decoded {
			if !desc.HasGeometry(g.Name) {
				return nil, &UnexpectedGeometryError{Mesh: name, Geometry: g.Name}
			}
			byName[g.Name] = g
		}

		for _, geometryName := range desc.GeometryNames() {
			if _, ok := byName[geometryName]; !ok {
				return nil, &MissingGeometryError{Mesh: name, Geometry: geometryName}
			}
		}

		geometries := make([]model.Geometry, 0, desc.CountGeometries())
		for _, geometryName := range desc.GeometryNames() {
			g := byName[geometryName]
			label := fmt.Sprintf("%s/%s", string(name), string(geometryName))
			res, err := l.renderer.CreateGeometry(label, model.MarshalVertices(g.Vertices), model.MarshalIndices(g.Indices), len(g.Indices))
			if err != nil {
				return nil, fmt.Errorf("failed to upload %s: %w", label, err)
			}
			geometries = append(geometries, model.NewGeometry(geometryName, len(g.Indices), res))
		}

		mesh := model.NewMesh(name, geometries...)
		l.store.AddMesh(mesh)
		return mesh, nil
	})
}

func (l *loader) LoadModel(name asset.ModelName) (model.Model, error) {
	return load(l, &l.models, name, l.store.Model, func() (model.Model, error) {
		desc, err := l.catalog.Model(name)
		if err != nil {
			return nil, err
		}
		if err := desc.Validate(); err != nil {
			return nil, err
		}

		meshDesc, err := l.catalog.Mesh(desc.Mesh)
		if err != nil {
			return nil, err
		}
		mesh, err := l.LoadMesh(desc.Mesh)
		if err != nil {
			return nil, err
		}

		p, ok := l.store.Pipeline(desc.Pipeline)
		if !ok {
			return nil, &PipelineNotFoundInStoreError{Model: name, Pipeline: desc.Pipeline}
		}

		materials, err := l.modelMaterials(desc, meshDesc, p)
		if err != nil {
			return nil, err
		}

		m := model.NewModel(name,
			model.WithMesh(mesh),
			model.WithPipeline(p),
			model.WithMaterials(materials...),
		)
		l.store.AddModel(m)
		return m, nil
	})
}

// modelMaterials checks the model's geometry/material pairs against its mesh and pipeline
// and loads one material per mesh geometry, in mesh order.
func (l *loader) modelMaterials(desc *asset.ModelDescriptor, meshDesc *asset.MeshDescriptor, p pipeline.Pipeline) ([]material.Material, error) {
	pairs := len(desc.GeometriesMaterials)

	switch {
	case pairs == 0 && !p.NeedsMaterial():
		return nil, nil
	case !p.NeedsMaterial():
		return nil, &InvalidMaterialAndPipelineError{
			Model:    desc.Name,
			Pipeline: desc.Pipeline,
			Reason:   "pipeline does not expect material",
		}
	case pairs != meshDesc.CountGeometries():
		return nil, &InvalidMaterialCountError{
			Model:                    desc.Name,
			Mesh:                     desc.Mesh,
			DescriptorMaterialsCount: pairs,
			ModelGeometriesCount:     meshDesc.CountGeometries(),
		}
	}

	for _, gm := range desc.GeometriesMaterials {
		if !meshDesc.HasGeometry(gm.Geometry) {
			return nil, &DanglingGeometryError{Model: desc.Name, Mesh: desc.Mesh, Geometry: gm.Geometry}
		}
	}

	materials := make([]material.Material, 0, pairs)
	for _, geometry := range meshDesc.GeometryNames() {
		materialName, ok := desc.MaterialFor(geometry)
		if !ok {
			return nil, &MaterialNotSetForGeometryError{Geometry: geometry, Model: desc.Name}
		}
		mat, err := l.LoadMaterial(materialName)
		if err != nil {
			return nil, err
		}
		if !p.CanUse(mat.Kind()) {
			return nil, &IncompatibleMaterialError{
				Model:    desc.Name,
				Pipeline: desc.Pipeline,
				Material: materialName,
				Kind:     mat.Kind(),
			}
		}
		materials = append(materials, mat)
	}
	return materials, nil
}

func (l *loader) Resolve(name asset.AssetName) (any, error) {
	switch name.Kind {
	case asset.KindTexture:
		return l.LoadTexture(asset.TextureName(name.Name))
	case asset.KindMaterial:
		return l.LoadMaterial(asset.MaterialName(name.Name))
	case asset.KindMesh:
		return l.LoadMesh(asset.MeshName(name.Name))
	case asset.KindModel:
		return l.LoadModel(asset.ModelName(name.Name))
	default:
		return nil, fmt.Errorf("cannot resolve %s: unknown kind", name)
	}
}

func (l *loader) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		if l.store.ContainsPipeline(p.Name()) {
			l.logger.WithField("pipeline", p.Name()).Debug("pipeline already registered")
			continue
		}
		if p.Resource() == nil && l.renderer != nil {
			res, err := l.renderer.CreatePipeline(p.Spec())
			if err != nil {
				return fmt.Errorf("failed to register pipeline %s: %w", p.Name(), err)
			}
			p.SetResource(res)
		}
		l.store.AddPipeline(p)
		l.logger.WithFields(log.Fields{
			"pipeline": p.Name(),
			"kinds":    p.SupportedMaterialKinds(),
		}).Info("registered pipeline")
	}
	return nil
}

// load runs the shared cache-check / materialize / cache protocol for one kind.
// The cache is checked again inside the flight, because a flight that finished between the
// first check and Do has already stored the resource.
func load[N asset.Named, T any](l *loader, group *singleflight.Group, name N, cached func(N) (T, bool), build func() (T, error)) (T, error) {
	key := name.AssetName()
	if v, ok := cached(name); ok {
		l.logger.WithFields(log.Fields{"asset": key.Name, "kind": key.Kind}).Debug("cache hit")
		return v, nil
	}

	v, err, _ := group.Do(key.Name, func() (any, error) {
		if v, ok := cached(name); ok {
			return v, nil
		}
		start := time.Now()
		built, err := build()
		if err != nil {
			return nil, err
		}
		if l.profiler != nil {
			l.profiler.Track(key.Kind.String(), start)
		}
		l.logger.WithFields(log.Fields{"asset": key.Name, "kind": key.Kind}).Info("materialized")
		return built, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
