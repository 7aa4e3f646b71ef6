package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-assets/common"
	log "github.com/sirupsen/logrus"
)

// ResourceType identifies the category of a GPU resource created through the Renderer.
type ResourceType string

const (
	ResourceTypeTexture         ResourceType = "texture"
	ResourceTypeColorMaterial   ResourceType = "color_material"
	ResourceTypeTextureMaterial ResourceType = "texture_material"
	ResourceTypeGeometry        ResourceType = "geometry"
	ResourceTypePipeline        ResourceType = "pipeline"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu sync.Mutex

	backend RendererBackend
	logger  log.FieldLogger

	resources []Resource
	created   map[ResourceType]int
	released  bool
}

// Renderer is the device collaborator used to materialize assets. It forwards creation
// requests to a RendererBackend, owns every resource it hands out and frees them all on
// Release.
//
// The Renderer never caches: calling a Create method twice creates two GPU objects.
// Deduplication is the job of the loader and its store.
type Renderer interface {
	// CreateTexture uploads RGBA pixels as a sampled 2D texture.
	//
	// Parameters:
	//   - label: debug label for the texture
	//   - data: decoded RGBA pixels
	//   - format: the pixel format to store the texture in
	//
	// Returns:
	//   - Resource: the texture resource
	//   - error: error if the pixel data is inconsistent or the backend fails
	CreateTexture(label string, data common.TextureStagingData, format TextureFormat) (Resource, error)

	// CreateColorMaterial uploads a color material uniform block.
	//
	// Parameters:
	//   - label: debug label for the material
	//   - uniform: the serialized uniform block
	//
	// Returns:
	//   - Resource: the material resource
	//   - error: error if the backend fails
	CreateColorMaterial(label string, uniform []byte) (Resource, error)

	// CreateTextureMaterial binds a diffuse and a normal texture into one material resource.
	//
	// Parameters:
	//   - label: debug label for the material
	//   - diffuse: the diffuse texture resource
	//   - normal: the normal map resource
	//
	// Returns:
	//   - Resource: the material resource
	//   - error: error if the backend fails
	CreateTextureMaterial(label string, diffuse, normal Resource) (Resource, error)

	// CreateGeometry uploads one geometry's vertex and index buffers.
	//
	// Parameters:
	//   - label: debug label for the geometry
	//   - vertexData: packed vertex data
	//   - indexData: packed uint32 indices
	//   - indexCount: number of indices
	//
	// Returns:
	//   - Resource: the geometry resource
	//   - error: error if the data is empty or the backend fails
	CreateGeometry(label string, vertexData, indexData []byte, indexCount int) (Resource, error)

	// CreatePipeline compiles a render pipeline on the device.
	//
	// Parameters:
	//   - spec: the pipeline description
	//
	// Returns:
	//   - Resource: the pipeline resource
	//   - error: error if the backend fails
	CreatePipeline(spec PipelineSpec) (Resource, error)

	// Created returns how many resources of the given type were created so far.
	//
	// Parameters:
	//   - t: the resource type
	//
	// Returns:
	//   - int: the creation count
	Created(t ResourceType) int

	// Release frees every resource created through this Renderer, then the backend.
	// Calling it more than once is a no-op.
	Release()
}

var _ Renderer = &renderer{}

// ErrRendererReleased is returned by every Create method once the Renderer was released.
var ErrRendererReleased = errors.New("renderer released")

// NewRenderer creates a Renderer delegating to the given backend.
//
// Parameters:
//   - backend: the device backend performing the actual GPU work
//   - options: a variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the new renderer
func NewRenderer(backend RendererBackend, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		backend: backend,
		logger:  log.StandardLogger(),
		created: make(map[ResourceType]int),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *renderer) CreateTexture(label string, data common.TextureStagingData, format TextureFormat) (Resource, error) {
	if data.Width == 0 || data.Height == 0 {
		return nil, fmt.Errorf("texture %s has zero size %dx%d", label, data.Width, data.Height)
	}
	if want := int(data.RowPitch() * data.Height); len(data.Pixels) != want {
		return nil, fmt.Errorf("texture %s expects %d bytes of pixels, got %d", label, want, len(data.Pixels))
	}
	return r.create(ResourceTypeTexture, label, func() (Resource, error) {
		return r.backend.CreateTexture(label, data, format)
	})
}

func (r *renderer) CreateColorMaterial(label string, uniform []byte) (Resource, error) {
	return r.create(ResourceTypeColorMaterial, label, func() (Resource, error) {
		return r.backend.CreateColorMaterial(label, uniform)
	})
}

func (r *renderer) CreateTextureMaterial(label string, diffuse, normal Resource) (Resource, error) {
	if diffuse == nil || normal == nil {
		return nil, fmt.Errorf("texture material %s needs both a diffuse and a normal texture", label)
	}
	return r.create(ResourceTypeTextureMaterial, label, func() (Resource, error) {
		return r.backend.CreateTextureMaterial(label, diffuse, normal)
	})
}

func (r *renderer) CreateGeometry(label string, vertexData, indexData []byte, indexCount int) (Resource, error) {
	if len(vertexData) == 0 || len(indexData) == 0 || indexCount == 0 {
		return nil, fmt.Errorf("geometry %s has no vertex or index data", label)
	}
	return r.create(ResourceTypeGeometry, label, func() (Resource, error) {
		return r.backend.CreateGeometry(label, vertexData, indexData, indexCount)
	})
}

func (r *renderer) CreatePipeline(spec PipelineSpec) (Resource, error) {
	return r.create(ResourceTypePipeline, spec.Name, func() (Resource, error) {
		return r.backend.CreatePipeline(spec)
	})
}

func (r *renderer) Created(t ResourceType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created[t]
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	for i := len(r.resources) - 1; i >= 0; i-- {
		r.resources[i].Release()
	}
	r.resources = nil
	r.backend.Release()
	r.released = true
}

// create serializes access to the backend and records the resource for Release.
func (r *renderer) create(t ResourceType, label string, fn func() (Resource, error)) (Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return nil, ErrRendererReleased
	}

	res, err := fn()
	if err != nil {
		return nil, fmt.Errorf("failed to create %s %s: %w", t, label, err)
	}
	r.resources = append(r.resources, res)
	r.created[t]++
	r.logger.WithFields(log.Fields{"resource": t, "label": label}).Debug("created GPU resource")
	return res, nil
}
