package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBuffer sets a uniform buffer for a specific binding index.
//
// Parameters:
//   - binding: the binding index for this buffer
//   - buf: the buffer to associate with this binding
//
// Returns:
//   - BindGroupProviderOption: a function that sets the buffer for the specified binding
func WithBuffer(binding int, buf *wgpu.Buffer) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.buffers[binding] = buf
	}
}

// WithMeshBuffers sets the vertex and index buffers of a geometry handle.
//
// Parameters:
//   - vertex: the vertex buffer
//   - index: the index buffer
//   - indexCount: the number of indices in index
//
// Returns:
//   - BindGroupProviderOption: a function that sets the mesh buffers for this provider
func WithMeshBuffers(vertex, index *wgpu.Buffer, indexCount int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.SetMeshBuffers(vertex, index, indexCount)
	}
}
