package model

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-assets/common"
)

// VertexStride is the byte size of one ModelVertex in a vertex buffer.
const VertexStride = 56

// ModelVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct of the built-in pipelines: locations 0 to 4 in field order.
// Size: 56 bytes, tightly packed.
type ModelVertex struct {
	Position  [3]float32 // offset  0: vertex position in model space (12 bytes)
	TexCoords [2]float32 // offset 12: UV texture coordinate (8 bytes)
	Normal    [3]float32 // offset 20: vertex normal for lighting (12 bytes)
	Tangent   [3]float32 // offset 32: tangent for normal mapping (12 bytes)
	Bitangent [3]float32 // offset 44: bitangent for normal mapping (12 bytes)
}

// Size returns the size of the ModelVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *ModelVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the ModelVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 56-byte buffer ready for GPU upload.
func (g *ModelVertex) Marshal() []byte {
	return g.appendTo(make([]byte, 0, VertexStride))
}

func (g *ModelVertex) appendTo(buf []byte) []byte {
	for _, field := range [][]float32{g.Position[:], g.TexCoords[:], g.Normal[:], g.Tangent[:], g.Bitangent[:]} {
		for _, v := range field {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
	}
	return buf
}

// MarshalVertices serializes a vertex slice into one contiguous vertex buffer.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: len(vertices)*VertexStride bytes
func MarshalVertices(vertices []ModelVertex) []byte {
	buf := make([]byte, 0, len(vertices)*VertexStride)
	for i := range vertices {
		buf = vertices[i].appendTo(buf)
	}
	return buf
}

// MarshalIndices returns a uint32 index buffer view of indices.
// The returned slice shares memory with indices.
//
// Parameters:
//   - indices: the triangle indices
//
// Returns:
//   - []byte: the index buffer contents
func MarshalIndices(indices []uint32) []byte {
	return common.SliceToBytes(indices)
}
