package wgpu_renderer

import (
	"github.com/Carmen-Shannon/oxy-assets/engine/model"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
)

// Bindings used by the texture material bind group.
const (
	bindingDiffuseView    = 0
	bindingDiffuseSampler = 1
	bindingNormalView     = 2
	bindingNormalSampler  = 3
)

// colorMaterialLayout describes group 0 of the color pipeline: one fragment uniform block.
func colorMaterialLayout() wgpu.BindGroupLayoutDescriptor {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageFragment,
	}
	entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	entry.Buffer.MinBindingSize = material.ColorUniformSize

	return wgpu.BindGroupLayoutDescriptor{
		Label:   "Color Material Layout",
		Entries: []wgpu.BindGroupLayoutEntry{entry},
	}
}

// textureMaterialLayout describes group 0 of the texture pipeline: diffuse and normal
// views, each followed by its sampler.
func textureMaterialLayout() wgpu.BindGroupLayoutDescriptor {
	view := func(binding uint32) wgpu.BindGroupLayoutEntry {
		e := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: wgpu.ShaderStageFragment}
		e.Texture.SampleType = wgpu.TextureSampleTypeFloat
		e.Texture.ViewDimension = wgpu.TextureViewDimension2D
		return e
	}
	sampler := func(binding uint32) wgpu.BindGroupLayoutEntry {
		e := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: wgpu.ShaderStageFragment}
		e.Sampler.Type = wgpu.SamplerBindingTypeFiltering
		return e
	}

	return wgpu.BindGroupLayoutDescriptor{
		Label: "Texture Material Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			view(bindingDiffuseView),
			sampler(bindingDiffuseSampler),
			view(bindingNormalView),
			sampler(bindingNormalSampler),
		},
	}
}

// vertexLayout matches model.ModelVertex field for field.
func vertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: model.VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 20, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 32, ShaderLocation: 3},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 44, ShaderLocation: 4},
		},
	}
}
