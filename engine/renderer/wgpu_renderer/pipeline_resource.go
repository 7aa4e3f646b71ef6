package wgpu_renderer

import "github.com/cogentcore/webgpu/wgpu"

// pipelineResource owns the compiled objects of one render pipeline.
type pipelineResource struct {
	label    string
	module   *wgpu.ShaderModule
	layout   *wgpu.PipelineLayout
	pipeline *wgpu.RenderPipeline
}

func (p *pipelineResource) Label() string {
	return p.label
}

// RenderPipeline returns the compiled pipeline, for the draw loop.
func (p *pipelineResource) RenderPipeline() *wgpu.RenderPipeline {
	return p.pipeline
}

func (p *pipelineResource) Release() {
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
	if p.layout != nil {
		p.layout.Release()
		p.layout = nil
	}
	if p.module != nil {
		p.module.Release()
		p.module = nil
	}
}
