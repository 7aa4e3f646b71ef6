// Package asset holds the declarative side of the engine: typed asset names, the
// descriptors parsed from configuration and the Catalog that indexes them.
package asset

import "fmt"

// AssetKind identifies which family of descriptor a name belongs to.
type AssetKind int

const (
	KindTexture AssetKind = iota
	KindMaterial
	KindMesh
	KindModel
)

// String returns the display name of the kind.
func (k AssetKind) String() string {
	switch k {
	case KindTexture:
		return "Texture"
	case KindMaterial:
		return "Material"
	case KindMesh:
		return "Mesh"
	case KindModel:
		return "Model"
	default:
		return fmt.Sprintf("AssetKind(%d)", int(k))
	}
}

// AssetName is a kind-qualified asset key. Two names are equal only when both the kind
// and the plain name match, so a texture and a material may share the same string.
type AssetName struct {
	Kind AssetKind
	Name string
}

// String renders the name as Kind(name).
func (n AssetName) String() string {
	return fmt.Sprintf("%s(%s)", n.Kind, n.Name)
}

// Named is implemented by every typed name and converts it to its kind-qualified key.
type Named interface {
	AssetName() AssetName
}

// TextureName names a texture descriptor.
type TextureName string

// MaterialName names a material descriptor.
type MaterialName string

// MeshName names a mesh descriptor.
type MeshName string

// ModelName names a model descriptor.
type ModelName string

// GeometryName names one geometry (sub-mesh) inside a mesh source.
// Geometries are not catalog entries, so GeometryName does not implement Named.
type GeometryName string

var (
	_ Named = TextureName("")
	_ Named = MaterialName("")
	_ Named = MeshName("")
	_ Named = ModelName("")
	_ Named = AssetName{}
)

func (n TextureName) AssetName() AssetName  { return AssetName{Kind: KindTexture, Name: string(n)} }
func (n MaterialName) AssetName() AssetName { return AssetName{Kind: KindMaterial, Name: string(n)} }
func (n MeshName) AssetName() AssetName     { return AssetName{Kind: KindMesh, Name: string(n)} }
func (n ModelName) AssetName() AssetName    { return AssetName{Kind: KindModel, Name: string(n)} }

// AssetName returns the name itself so an AssetName can be passed wherever a Named is expected.
func (n AssetName) AssetName() AssetName { return n }

func (n TextureName) String() string  { return n.AssetName().String() }
func (n MaterialName) String() string { return n.AssetName().String() }
func (n MeshName) String() string     { return n.AssetName().String() }
func (n ModelName) String() string    { return n.AssetName().String() }

// String renders the geometry name as Geometry(name).
func (n GeometryName) String() string {
	return fmt.Sprintf("Geometry(%s)", string(n))
}
