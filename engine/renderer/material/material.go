package material

import (
	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/texture"
)

// material holds the fields shared by every material kind.
type material struct {
	name     asset.MaterialName
	kind     asset.MaterialKind
	resource renderer.Resource
}

// colorMaterial is the implementation of the ColorMaterial interface.
type colorMaterial struct {
	material
	uniform ColorUniform
}

// textureMaterial is the implementation of the TextureMaterial interface.
type textureMaterial struct {
	material
	diffuse texture.Texture
	normal  texture.Texture
}

// Material defines the interface for a materialized surface description, ready to be
// bound by any pipeline that accepts its kind.
//
// The GPU layout behind Resource differs per kind; callers that need the kind-specific
// data type-assert to ColorMaterial or TextureMaterial after checking Kind.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - asset.MaterialName: the name of the material
	Name() asset.MaterialName

	// Kind retrieves the material variant, which decides pipeline compatibility.
	//
	// Returns:
	//   - asset.MaterialKind: the material kind
	Kind() asset.MaterialKind

	// Resource retrieves the bind group holding the material on the device.
	//
	// Returns:
	//   - renderer.Resource: the GPU material
	Resource() renderer.Resource
}

// ColorMaterial is a Material described by flat colors.
type ColorMaterial interface {
	Material

	// Uniform retrieves the uniform block uploaded for this material.
	//
	// Returns:
	//   - ColorUniform: the uniform block
	Uniform() ColorUniform
}

// TextureMaterial is a Material sampling a diffuse texture and a normal map.
type TextureMaterial interface {
	Material

	// Diffuse retrieves the color texture.
	//
	// Returns:
	//   - texture.Texture: the diffuse texture
	Diffuse() texture.Texture

	// Normal retrieves the normal map.
	//
	// Returns:
	//   - texture.Texture: the normal texture
	Normal() texture.Texture
}

var (
	_ ColorMaterial   = &colorMaterial{}
	_ TextureMaterial = &textureMaterial{}
)

// NewColorMaterial creates a new color Material.
//
// Parameters:
//   - name: the material identifier
//   - uniform: the uniform block uploaded for the material
//   - options: variadic list of MaterialBuilderOption functions
//
// Returns:
//   - ColorMaterial: a new color material
func NewColorMaterial(name asset.MaterialName, uniform ColorUniform, options ...MaterialBuilderOption) ColorMaterial {
	m := &colorMaterial{
		material: material{name: name, kind: asset.MaterialKindColor},
		uniform:  uniform,
	}
	for _, opt := range options {
		opt(&m.material)
	}
	return m
}

// NewTextureMaterial creates a new texture Material.
//
// Parameters:
//   - name: the material identifier
//   - diffuse: the color texture
//   - normal: the normal map
//   - options: variadic list of MaterialBuilderOption functions
//
// Returns:
//   - TextureMaterial: a new texture material
func NewTextureMaterial(name asset.MaterialName, diffuse, normal texture.Texture, options ...MaterialBuilderOption) TextureMaterial {
	m := &textureMaterial{
		material: material{name: name, kind: asset.MaterialKindTexture},
		diffuse:  diffuse,
		normal:   normal,
	}
	for _, opt := range options {
		opt(&m.material)
	}
	return m
}

func (m *material) Name() asset.MaterialName {
	return m.name
}

func (m *material) Kind() asset.MaterialKind {
	return m.kind
}

func (m *material) Resource() renderer.Resource {
	return m.resource
}

func (m *colorMaterial) Uniform() ColorUniform {
	return m.uniform
}

func (m *textureMaterial) Diffuse() texture.Texture {
	return m.diffuse
}

func (m *textureMaterial) Normal() texture.Texture {
	return m.normal
}
