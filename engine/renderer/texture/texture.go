package texture

import (
	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer"
)

// texture is the implementation of the Texture interface.
type texture struct {
	name     asset.TextureName
	kind     asset.TextureKind
	width    uint32
	height   uint32
	resource renderer.Resource
}

// Texture is a decoded image uploaded to the device. Textures are immutable once built
// and shared by every material that references them.
type Texture interface {
	// Name retrieves the texture identifier.
	//
	// Returns:
	//   - asset.TextureName: the name of the texture
	Name() asset.TextureName

	// Kind retrieves whether the texture holds color or normal data.
	//
	// Returns:
	//   - asset.TextureKind: the texture kind
	Kind() asset.TextureKind

	// Width retrieves the texture width in pixels.
	//
	// Returns:
	//   - uint32: the width
	Width() uint32

	// Height retrieves the texture height in pixels.
	//
	// Returns:
	//   - uint32: the height
	Height() uint32

	// Resource retrieves the device handle of the texture.
	//
	// Returns:
	//   - renderer.Resource: the GPU texture
	Resource() renderer.Resource
}

var _ Texture = &texture{}

// NewTexture creates a new Texture configured with the provided options.
//
// Parameters:
//   - name: the texture identifier
//   - options: variadic list of TextureBuilderOption functions
//
// Returns:
//   - Texture: a new Texture instance
func NewTexture(name asset.TextureName, options ...TextureBuilderOption) Texture {
	t := &texture{
		name: name,
		kind: asset.TextureKindDiffuse,
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

func (t *texture) Name() asset.TextureName {
	return t.name
}

func (t *texture) Kind() asset.TextureKind {
	return t.kind
}

func (t *texture) Width() uint32 {
	return t.width
}

func (t *texture) Height() uint32 {
	return t.height
}

func (t *texture) Resource() renderer.Resource {
	return t.resource
}
