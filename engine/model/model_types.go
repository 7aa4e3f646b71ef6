package model

import (
	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/go-gl/mathgl/mgl32"
)

// --- Import Types ---

// GeometryVertices is one named geometry decoded from a mesh source file, before upload.
// This is the universal format the geometry backends (OBJ, glTF) produce.
type GeometryVertices struct {
	// Name is the geometry identifier as found in the source file.
	Name asset.GeometryName

	// Vertices are the de-duplicated vertices of the geometry.
	Vertices []ModelVertex

	// Indices are the triangle list indices into Vertices.
	Indices []uint32
}

// ComputeTangents fills the tangent and bitangent of every vertex from positions and UVs.
// Contributions of triangles sharing a vertex are summed and normalized. Vertices whose
// triangles have degenerate UVs keep a zero tangent frame.
func (g *GeometryVertices) ComputeTangents() {
	tangents := make([]mgl32.Vec3, len(g.Vertices))
	bitangents := make([]mgl32.Vec3, len(g.Vertices))

	for i := 0; i+2 < len(g.Indices); i += 3 {
		i0, i1, i2 := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		if int(i0) >= len(g.Vertices) || int(i1) >= len(g.Vertices) || int(i2) >= len(g.Vertices) {
			continue
		}
		v0, v1, v2 := g.Vertices[i0], g.Vertices[i1], g.Vertices[i2]

		p0 := mgl32.Vec3(v0.Position)
		e1 := mgl32.Vec3(v1.Position).Sub(p0)
		e2 := mgl32.Vec3(v2.Position).Sub(p0)

		uv0 := mgl32.Vec2(v0.TexCoords)
		d1 := mgl32.Vec2(v1.TexCoords).Sub(uv0)
		d2 := mgl32.Vec2(v2.TexCoords).Sub(uv0)

		det := d1.X()*d2.Y() - d2.X()*d1.Y()
		if det == 0 {
			continue
		}
		r := 1 / det
		tangent := e1.Mul(d2.Y()).Sub(e2.Mul(d1.Y())).Mul(r)
		bitangent := e2.Mul(d1.X()).Sub(e1.Mul(d2.X())).Mul(r)

		for _, idx := range []uint32{i0, i1, i2} {
			tangents[idx] = tangents[idx].Add(tangent)
			bitangents[idx] = bitangents[idx].Add(bitangent)
		}
	}

	for i := range g.Vertices {
		if tangents[i].Len() > 0 {
			g.Vertices[i].Tangent = tangents[i].Normalize()
		}
		if bitangents[i].Len() > 0 {
			g.Vertices[i].Bitangent = bitangents[i].Normalize()
		}
	}
}
