package renderer

import (
	"github.com/Carmen-Shannon/oxy-assets/common"
	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
)

// TextureFormat selects the pixel format of an uploaded texture.
type TextureFormat int

const (
	// TextureFormatRGBA8UnormSrgb stores color data that is gamma-decoded on sampling.
	TextureFormatRGBA8UnormSrgb TextureFormat = iota
	// TextureFormatRGBA8Unorm stores linear data such as normal maps.
	TextureFormatRGBA8Unorm
)

func (f TextureFormat) String() string {
	switch f {
	case TextureFormatRGBA8UnormSrgb:
		return "RGBA8UnormSrgb"
	case TextureFormatRGBA8Unorm:
		return "RGBA8Unorm"
	default:
		return "Unknown"
	}
}

// TextureFormatFor returns the pixel format used for a texture of the given kind.
// Normal maps hold vectors, not colors, so they must not be gamma-decoded.
//
// Parameters:
//   - kind: the texture kind from the descriptor
//
// Returns:
//   - TextureFormat: the format to upload the texture with
func TextureFormatFor(kind asset.TextureKind) TextureFormat {
	if kind == asset.TextureKindNormal {
		return TextureFormatRGBA8Unorm
	}
	return TextureFormatRGBA8UnormSrgb
}

// Resource is an opaque GPU object produced by a RendererBackend. Only the backend that
// created it knows its concrete type.
type Resource interface {
	// Label returns the debug label given at creation.
	Label() string

	// Release frees the GPU memory held by the resource.
	Release()
}

// PipelineSpec describes a render pipeline to create on the device.
type PipelineSpec struct {
	// Name is the key the pipeline is registered under.
	Name string

	// MaterialKinds lists the material kinds the pipeline can bind. Empty means the pipeline
	// draws geometry without any material.
	MaterialKinds []asset.MaterialKind

	// Shader optionally overrides the built-in WGSL source selected from MaterialKinds.
	Shader string
}

// RendererBackend is the device-level interface a concrete GPU API implements.
// Every method creates new GPU objects; caching is the caller's concern.
type RendererBackend interface {
	// CreateTexture uploads RGBA pixels to a sampled 2D texture with its own sampler.
	//
	// Parameters:
	//   - label: debug label for the GPU objects
	//   - data: decoded RGBA pixels
	//   - format: the pixel format to store the texture in
	//
	// Returns:
	//   - Resource: the texture resource
	//   - error: error if the device rejects the texture
	CreateTexture(label string, data common.TextureStagingData, format TextureFormat) (Resource, error)

	// CreateColorMaterial uploads a color material uniform and builds its bind group.
	//
	// Parameters:
	//   - label: debug label for the GPU objects
	//   - uniform: the serialized uniform block
	//
	// Returns:
	//   - Resource: the material resource
	//   - error: error if buffer or bind group creation fails
	CreateColorMaterial(label string, uniform []byte) (Resource, error)

	// CreateTextureMaterial builds a bind group sampling a diffuse and a normal texture.
	// Both resources must have been created by the same backend's CreateTexture.
	//
	// Parameters:
	//   - label: debug label for the GPU objects
	//   - diffuse: the diffuse texture resource
	//   - normal: the normal map resource
	//
	// Returns:
	//   - Resource: the material resource
	//   - error: error if the textures are foreign or bind group creation fails
	CreateTextureMaterial(label string, diffuse, normal Resource) (Resource, error)

	// CreateGeometry uploads vertex and index data.
	//
	// Parameters:
	//   - label: debug label for the GPU objects
	//   - vertexData: the packed vertex buffer contents
	//   - indexData: the packed uint32 index buffer contents
	//   - indexCount: the number of indices to draw
	//
	// Returns:
	//   - Resource: the geometry resource
	//   - error: error if buffer creation fails
	CreateGeometry(label string, vertexData, indexData []byte, indexCount int) (Resource, error)

	// CreatePipeline compiles a render pipeline.
	//
	// Parameters:
	//   - spec: the pipeline description
	//
	// Returns:
	//   - Resource: the pipeline resource
	//   - error: error if shader compilation or pipeline creation fails
	CreatePipeline(spec PipelineSpec) (Resource, error)

	// Release tears down the device.
	Release()
}
