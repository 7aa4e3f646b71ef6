// Package renderertest provides an in-memory renderer.RendererBackend for tests that
// need a device without a GPU.
package renderertest

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-assets/common"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer"
)

// Resource is the handle type created by Backend.
type Resource struct {
	label    string
	released atomic.Bool

	// Format is set for textures.
	Format renderer.TextureFormat
	// Width and Height are set for textures.
	Width, Height uint32
	// Data holds the uniform block, or the vertex data for geometries.
	Data []byte
	// IndexCount is set for geometries.
	IndexCount int
	// Textures holds the diffuse and normal resources of a texture material.
	Textures []renderer.Resource
	// Spec is set for pipelines.
	Spec renderer.PipelineSpec
}

func (r *Resource) Label() string { return r.label }

func (r *Resource) Release() { r.released.Store(true) }

// Released reports whether Release was called.
func (r *Resource) Released() bool { return r.released.Load() }

// Backend records every creation call. It is safe for concurrent use.
type Backend struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]error

	// Delay is slept inside every Create call, to widen race windows in concurrency tests.
	Delay time.Duration

	released atomic.Bool
}

var _ renderer.RendererBackend = &Backend{}

// NewBackend creates an empty Backend.
func NewBackend() *Backend {
	return &Backend{
		calls: make(map[string]int),
		fail:  make(map[string]error),
	}
}

// FailOn makes every Create call for label return err.
func (b *Backend) FailOn(label string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail[label] = err
}

// Calls returns how many Create calls were made for label.
func (b *Backend) Calls(label string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[label]
}

// TotalCalls returns the number of Create calls across all labels.
func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for _, n := range b.calls {
		total += n
	}
	return total
}

// Released reports whether Release was called.
func (b *Backend) Released() bool { return b.released.Load() }

func (b *Backend) record(label string) error {
	if b.Delay > 0 {
		time.Sleep(b.Delay)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[label]++
	return b.fail[label]
}

func (b *Backend) CreateTexture(label string, data common.TextureStagingData, format renderer.TextureFormat) (renderer.Resource, error) {
	if err := b.record(label); err != nil {
		return nil, err
	}
	return &Resource{label: label, Format: format, Width: data.Width, Height: data.Height}, nil
}

func (b *Backend) CreateColorMaterial(label string, uniform []byte) (renderer.Resource, error) {
	if err := b.record(label); err != nil {
		return nil, err
	}
	return &Resource{label: label, Data: append([]byte(nil), uniform...)}, nil
}

func (b *Backend) CreateTextureMaterial(label string, diffuse, normal renderer.Resource) (renderer.Resource, error) {
	if err := b.record(label); err != nil {
		return nil, err
	}
	for _, tex := range []renderer.Resource{diffuse, normal} {
		if _, ok := tex.(*Resource); !ok {
			return nil, fmt.Errorf("texture %s was not created by this backend", tex.Label())
		}
	}
	return &Resource{label: label, Textures: []renderer.Resource{diffuse, normal}}, nil
}

func (b *Backend) CreateGeometry(label string, vertexData, indexData []byte, indexCount int) (renderer.Resource, error) {
	if err := b.record(label); err != nil {
		return nil, err
	}
	return &Resource{label: label, Data: append([]byte(nil), vertexData...), IndexCount: indexCount}, nil
}

func (b *Backend) CreatePipeline(spec renderer.PipelineSpec) (renderer.Resource, error) {
	if err := b.record(spec.Name); err != nil {
		return nil, err
	}
	return &Resource{label: spec.Name, Spec: spec}, nil
}

func (b *Backend) Release() { b.released.Store(true) }
