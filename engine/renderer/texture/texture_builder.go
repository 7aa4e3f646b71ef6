package texture

import (
	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer"
)

// TextureBuilderOption is a function that configures a texture instance during construction.
type TextureBuilderOption func(*texture)

// WithKind sets whether the texture holds color or normal data.
//
// Parameters:
//   - kind: the texture kind
//
// Returns:
//   - TextureBuilderOption: a function that applies the kind option to a texture
func WithKind(kind asset.TextureKind) TextureBuilderOption {
	return func(t *texture) {
		t.kind = kind
	}
}

// WithSize sets the pixel dimensions of the texture.
//
// Parameters:
//   - width: the width in pixels
//   - height: the height in pixels
//
// Returns:
//   - TextureBuilderOption: a function that applies the size option to a texture
func WithSize(width, height uint32) TextureBuilderOption {
	return func(t *texture) {
		t.width = width
		t.height = height
	}
}

// WithResource sets the device handle backing the texture.
//
// Parameters:
//   - res: the GPU texture
//
// Returns:
//   - TextureBuilderOption: a function that applies the resource option to a texture
func WithResource(res renderer.Resource) TextureBuilderOption {
	return func(t *texture) {
		t.resource = res
	}
}
