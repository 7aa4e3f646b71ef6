package wgpu_renderer

import "github.com/cogentcore/webgpu/wgpu"

// WGPURendererBackendOption is a functional option applied to the wgpu backend before the device is requested.
type WGPURendererBackendOption func(*wgpuRendererBackendImpl)

// WithForceFallbackAdapter requests the software fallback adapter, for machines without a GPU.
//
// Parameters:
//   - force: whether to force the fallback adapter
//
// Returns:
//   - WGPURendererBackendOption: a function that applies the adapter option
func WithForceFallbackAdapter(force bool) WGPURendererBackendOption {
	return func(b *wgpuRendererBackendImpl) {
		b.forceFallbackAdapter = force
	}
}

// WithPowerPreference selects between integrated and discrete adapters.
//
// Parameters:
//   - preference: the adapter power preference
//
// Returns:
//   - WGPURendererBackendOption: a function that applies the power preference
func WithPowerPreference(preference wgpu.PowerPreference) WGPURendererBackendOption {
	return func(b *wgpuRendererBackendImpl) {
		b.powerPreference = preference
	}
}

// WithTargetFormat sets the color attachment format pipelines are compiled for.
//
// Parameters:
//   - format: the render target format
//
// Returns:
//   - WGPURendererBackendOption: a function that applies the target format
func WithTargetFormat(format wgpu.TextureFormat) WGPURendererBackendOption {
	return func(b *wgpuRendererBackendImpl) {
		b.targetFormat = format
	}
}
