package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/model"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct{}

// gltfLoaderBackend is a LoaderBackend implementation for glTF/GLB files.
// Each triangle primitive becomes one geometry named after its mesh; meshes with several
// primitives name them "<mesh>.<index>".
type gltfLoaderBackend interface {
	LoaderBackend

	// LoadDocument extracts geometries from an already decoded document.
	//
	// Parameters:
	//   - doc: the glTF document
	//
	// Returns:
	//   - []model.GeometryVertices: the decoded geometries
	//   - error: error if an accessor cannot be read
	LoadDocument(doc *gltf.Document) ([]model.GeometryVertices, error)
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Returns:
//   - gltfLoaderBackend: the loader backend for glTF/GLB files
func newGLTFLoaderBackend() gltfLoaderBackend {
	return &gltfLoaderBackendImpl{}
}

func (b *gltfLoaderBackendImpl) Load(path string) ([]model.GeometryVertices, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read gltf %s", path)
	}
	return b.LoadDocument(doc)
}

func (b *gltfLoaderBackendImpl) LoadDocument(doc *gltf.Document) ([]model.GeometryVertices, error) {
	var geometries []model.GeometryVertices
	for meshIndex, mesh := range doc.Meshes {
		meshName := mesh.Name
		if meshName == "" {
			meshName = fmt.Sprintf("mesh%d", meshIndex)
		}

		for primIndex, primitive := range mesh.Primitives {
			if primitive.Mode != gltf.PrimitiveTriangles {
				continue
			}
			name := asset.GeometryName(meshName)
			if len(mesh.Primitives) > 1 {
				name = asset.GeometryName(fmt.Sprintf("%s.%d", meshName, primIndex))
			}

			g, err := readPrimitive(doc, primitive)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read primitive %s", name)
			}
			g.Name = name
			g.ComputeTangents()
			geometries = append(geometries, g)
		}
	}
	return geometries, nil
}

func readPrimitive(doc *gltf.Document, primitive *gltf.Primitive) (model.GeometryVertices, error) {
	var g model.GeometryVertices

	positionIndex, ok := primitive.Attributes["POSITION"]
	if !ok {
		return g, errors.New("primitive has no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[positionIndex], nil)
	if err != nil {
		return g, errors.Wrap(err, "failed to read positions")
	}

	var normals [][3]float32
	if idx, ok := primitive.Attributes["NORMAL"]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return g, errors.Wrap(err, "failed to read normals")
		}
	}

	var texCoords [][2]float32
	if idx, ok := primitive.Attributes["TEXCOORD_0"]; ok {
		if texCoords, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return g, errors.Wrap(err, "failed to read texture coordinates")
		}
	}

	g.Vertices = make([]model.ModelVertex, len(positions))
	for i, p := range positions {
		g.Vertices[i].Position = p
		if i < len(normals) {
			g.Vertices[i].Normal = normals[i]
		}
		if i < len(texCoords) {
			g.Vertices[i].TexCoords = texCoords[i]
		}
	}

	if primitive.Indices != nil {
		if g.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil); err != nil {
			return g, errors.Wrap(err, "failed to read indices")
		}
	} else {
		g.Indices = make([]uint32, len(positions))
		for i := range g.Indices {
			g.Indices[i] = uint32(i)
		}
	}
	return g, nil
}
