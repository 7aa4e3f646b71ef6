package loader

import (
	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/model"
)

// LoaderBackendType identifies the mesh file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeOBJ selects the Wavefront OBJ loader backend.
	BackendTypeOBJ LoaderBackendType = iota
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF
)

func (t LoaderBackendType) String() string {
	switch t {
	case BackendTypeOBJ:
		return "obj"
	case BackendTypeGLTF:
		return "gltf"
	default:
		return "unknown"
	}
}

// backendTypeFor selects the backend matching the variant set on a vertices source.
func backendTypeFor(source asset.VerticesSource) LoaderBackendType {
	if source.GLTF != "" {
		return BackendTypeGLTF
	}
	return BackendTypeOBJ
}

// LoaderBackend defines the generic interface for decoding mesh source files.
// Concrete implementations (objLoaderBackend, gltfLoaderBackend) handle format-specific details.
type LoaderBackend interface {
	// Load decodes every named geometry in the file at path.
	// Geometries are returned in file order with tangents already computed.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - []model.GeometryVertices: the decoded geometries
	//   - error: error if reading or parsing fails
	Load(path string) ([]model.GeometryVertices, error)
}
