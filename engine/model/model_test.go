package model

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer/material"
)

func TestModelVertexLayout(t *testing.T) {
	v := ModelVertex{
		Position:  [3]float32{1, 2, 3},
		TexCoords: [2]float32{4, 5},
		Normal:    [3]float32{6, 7, 8},
		Tangent:   [3]float32{9, 10, 11},
		Bitangent: [3]float32{12, 13, 14},
	}
	if v.Size() != VertexStride {
		t.Fatalf("expected size %d, got %d", VertexStride, v.Size())
	}

	buf := v.Marshal()
	if len(buf) != VertexStride {
		t.Fatalf("expected %d bytes, got %d", VertexStride, len(buf))
	}
	for i := 0; i < 14; i++ {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != float32(i+1) {
			t.Errorf("float %d: expected %v, got %v", i, i+1, got)
		}
	}

	packed := MarshalVertices([]ModelVertex{v, v})
	if !bytes.Equal(packed[:VertexStride], buf) || !bytes.Equal(packed[VertexStride:], buf) {
		t.Error("expected MarshalVertices to concatenate vertex encodings")
	}
	if got := len(MarshalIndices([]uint32{0, 1, 2})); got != 12 {
		t.Errorf("expected 12 index bytes, got %d", got)
	}
}

func TestComputeTangents(t *testing.T) {
	g := GeometryVertices{
		Name: "quad",
		Vertices: []ModelVertex{
			{Position: [3]float32{0, 0, 0}, TexCoords: [2]float32{0, 0}},
			{Position: [3]float32{1, 0, 0}, TexCoords: [2]float32{1, 0}},
			{Position: [3]float32{0, 1, 0}, TexCoords: [2]float32{0, 1}},
		},
		Indices: []uint32{0, 1, 2},
	}
	g.ComputeTangents()

	for i, v := range g.Vertices {
		if v.Tangent != [3]float32{1, 0, 0} {
			t.Errorf("vertex %d: expected tangent +X, got %v", i, v.Tangent)
		}
		if v.Bitangent != [3]float32{0, 1, 0} {
			t.Errorf("vertex %d: expected bitangent +Y, got %v", i, v.Bitangent)
		}
	}
}

func TestComputeTangentsDegenerateUV(t *testing.T) {
	g := GeometryVertices{
		Vertices: make([]ModelVertex, 3),
		Indices:  []uint32{0, 1, 2},
	}
	g.Vertices[1].Position = [3]float32{1, 0, 0}
	g.ComputeTangents()
	if g.Vertices[0].Tangent != [3]float32{} {
		t.Errorf("expected zero tangent, got %v", g.Vertices[0].Tangent)
	}
}

func TestModelMaterialFor(t *testing.T) {
	mesh := NewMesh("zod", NewGeometry("a", 3, nil), NewGeometry("b", 6, nil))
	red := material.NewColorMaterial("red", material.ColorUniform{})
	blue := material.NewColorMaterial("blue", material.ColorUniform{})
	m := NewModel("zodiac", WithMesh(mesh), WithMaterials(red, blue))

	if got, ok := m.MaterialFor("b"); !ok || got.Name() != "blue" {
		t.Errorf("expected blue for geometry b, got %v", got)
	}
	if _, ok := m.MaterialFor("c"); ok {
		t.Error("expected no material for an unknown geometry")
	}
	if names := mesh.GeometryNames(); len(names) != 2 || names[0] != asset.GeometryName("a") {
		t.Errorf("unexpected geometry names %v", names)
	}

	bare := NewModel("bare", WithMesh(mesh))
	if _, ok := bare.MaterialFor("a"); ok {
		t.Error("expected no material on a model without materials")
	}
}
