package wgpu_renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-assets/common"
	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuRendererBackendImpl struct {
	mu     sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter

	forceFallbackAdapter bool
	powerPreference      wgpu.PowerPreference
	targetFormat         wgpu.TextureFormat

	colorLayout   *wgpu.BindGroupLayout
	textureLayout *wgpu.BindGroupLayout
}

var _ renderer.RendererBackend = &wgpuRendererBackendImpl{}

// NewWGPURendererBackend requests a headless adapter and device and prepares the material
// bind group layouts shared by every pipeline.
//
// Parameters:
//   - options: a variadic list of WGPURendererBackendOption functions
//
// Returns:
//   - renderer.RendererBackend: the wgpu backend
//   - error: error if no adapter or device is available
func NewWGPURendererBackend(options ...WGPURendererBackendOption) (renderer.RendererBackend, error) {
	b := &wgpuRendererBackendImpl{
		powerPreference: wgpu.PowerPreferenceHighPerformance,
		targetFormat:    wgpu.TextureFormatRGBA8UnormSrgb,
	}
	for _, option := range options {
		option(b)
	}

	b.instance = wgpu.CreateInstance(nil)
	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: b.forceFallbackAdapter,
		PowerPreference:      b.powerPreference,
	})
	if err != nil {
		b.instance.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Asset Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		b.adapter.Release()
		b.instance.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	colorDesc := colorMaterialLayout()
	if b.colorLayout, err = b.device.CreateBindGroupLayout(&colorDesc); err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to create color material layout: %w", err)
	}
	textureDesc := textureMaterialLayout()
	if b.textureLayout, err = b.device.CreateBindGroupLayout(&textureDesc); err != nil {
		b.Release()
		return nil, fmt.Errorf("failed to create texture material layout: %w", err)
	}

	return b, nil
}

func (b *wgpuRendererBackendImpl) CreateTexture(label string, data common.TextureStagingData, format renderer.TextureFormat) (renderer.Resource, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	size := wgpu.Extent3D{
		Width:              data.Width,
		Height:             data.Height,
		DepthOrArrayLayers: 1,
	}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label + " Texture",
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        textureFormat(format),
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  data.RowPitch(),
			RowsPerImage: data.Height,
		},
		&size,
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label + " Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0.0,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		view.Release()
		tex.Release()
		return nil, err
	}

	provider := bind_group_provider.NewBindGroupProvider(label)
	provider.SetTexture(0, tex, view)
	provider.SetSampler(0, samp)
	return provider, nil
}

func (b *wgpuRendererBackendImpl) CreateColorMaterial(label string, uniform []byte) (renderer.Resource, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Uniform Buffer",
		Size:  uint64(len(uniform)),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(buf, 0, uniform)

	provider := bind_group_provider.NewBindGroupProvider(label, bind_group_provider.WithBuffer(0, buf))
	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: b.colorLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		provider.Release()
		return nil, err
	}
	provider.SetBindGroup(bindGroup)
	return provider, nil
}

func (b *wgpuRendererBackendImpl) CreateTextureMaterial(label string, diffuse, normal renderer.Resource) (renderer.Resource, error) {
	diffuseProvider, ok := diffuse.(bind_group_provider.BindGroupProvider)
	if !ok || diffuseProvider.TextureView(0) == nil {
		return nil, fmt.Errorf("diffuse texture %s was not created by the wgpu backend", diffuse.Label())
	}
	normalProvider, ok := normal.(bind_group_provider.BindGroupProvider)
	if !ok || normalProvider.TextureView(0) == nil {
		return nil, fmt.Errorf("normal texture %s was not created by the wgpu backend", normal.Label())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	provider := bind_group_provider.NewBindGroupProvider(label)
	provider.Borrow(bindingDiffuseView, bindingDiffuseSampler, diffuseProvider)
	provider.Borrow(bindingNormalView, bindingNormalSampler, normalProvider)

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " Bind Group",
		Layout: b.textureLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: bindingDiffuseView, TextureView: provider.TextureView(bindingDiffuseView)},
			{Binding: bindingDiffuseSampler, Sampler: provider.Sampler(bindingDiffuseSampler)},
			{Binding: bindingNormalView, TextureView: provider.TextureView(bindingNormalView)},
			{Binding: bindingNormalSampler, Sampler: provider.Sampler(bindingNormalSampler)},
		},
	})
	if err != nil {
		return nil, err
	}
	provider.SetBindGroup(bindGroup)
	return provider, nil
}

func (b *wgpuRendererBackendImpl) CreateGeometry(label string, vertexData, indexData []byte, indexCount int) (renderer.Resource, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	vertexBuf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label + " Vertex Buffer",
		Size:             uint64(len(vertexData)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(vertexBuf, 0, vertexData)

	indexBuf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label + " Index Buffer",
		Size:             uint64(len(indexData)),
		Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		vertexBuf.Release()
		return nil, err
	}
	b.queue.WriteBuffer(indexBuf, 0, indexData)

	return bind_group_provider.NewBindGroupProvider(label,
		bind_group_provider.WithMeshBuffers(vertexBuf, indexBuf, indexCount),
	), nil
}

func (b *wgpuRendererBackendImpl) CreatePipeline(spec renderer.PipelineSpec) (renderer.Resource, error) {
	var (
		source  string
		layouts []*wgpu.BindGroupLayout
	)
	switch {
	case len(spec.MaterialKinds) == 0:
		source = lightShader
	case len(spec.MaterialKinds) > 1:
		return nil, errors.New("a wgpu pipeline binds a single material layout")
	case spec.MaterialKinds[0] == asset.MaterialKindColor:
		source = colorShader
		layouts = []*wgpu.BindGroupLayout{b.colorLayout}
	case spec.MaterialKinds[0] == asset.MaterialKindTexture:
		source = textureShader
		layouts = []*wgpu.BindGroupLayout{b.textureLayout}
	default:
		return nil, fmt.Errorf("unknown material kind %s", spec.MaterialKinds[0])
	}
	source = common.Coalesce(spec.Shader, source)

	b.mu.Lock()
	defer b.mu.Unlock()

	res := &pipelineResource{label: spec.Name}
	var err error
	res.module, err = b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: spec.Name + " Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return nil, err
	}

	res.layout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            spec.Name,
		BindGroupLayouts: layouts,
	})
	if err != nil {
		res.Release()
		return nil, err
	}

	res.pipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  spec.Name + " Render Pipeline",
		Layout: res.layout,
		Vertex: wgpu.VertexState{
			Module:     res.module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     res.module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    b.targetFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		res.Release()
		return nil, err
	}

	return res, nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.textureLayout != nil {
		b.textureLayout.Release()
		b.textureLayout = nil
	}
	if b.colorLayout != nil {
		b.colorLayout.Release()
		b.colorLayout = nil
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

func textureFormat(format renderer.TextureFormat) wgpu.TextureFormat {
	if format == renderer.TextureFormatRGBA8Unorm {
		return wgpu.TextureFormatRGBA8Unorm
	}
	return wgpu.TextureFormatRGBA8UnormSrgb
}
