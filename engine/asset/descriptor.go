package asset

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-assets/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Descriptor is the closed union of catalog entries: *TextureDescriptor, *MaterialDescriptor,
// *MeshDescriptor and *ModelDescriptor. It cannot be implemented outside this package.
type Descriptor interface {
	// AssetName returns the kind-qualified key the descriptor is stored under.
	AssetName() AssetName

	// Validate reports structural problems that make the descriptor unusable.
	Validate() error

	descriptor()
}

var (
	_ Descriptor = &TextureDescriptor{}
	_ Descriptor = &MaterialDescriptor{}
	_ Descriptor = &MeshDescriptor{}
	_ Descriptor = &ModelDescriptor{}
)

// TextureKind selects how a texture's pixels are interpreted.
type TextureKind int

const (
	// TextureKindDiffuse is a color texture sampled in sRGB space.
	TextureKindDiffuse TextureKind = iota
	// TextureKindNormal is a normal map sampled as linear data.
	TextureKindNormal
)

func (k TextureKind) String() string {
	switch k {
	case TextureKindDiffuse:
		return "diffuse"
	case TextureKindNormal:
		return "normal"
	default:
		return fmt.Sprintf("TextureKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k TextureKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case-insensitive.
func (k *TextureKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "diffuse":
		*k = TextureKindDiffuse
	case "normal":
		*k = TextureKindNormal
	default:
		return fmt.Errorf("unknown texture kind %q", string(text))
	}
	return nil
}

// MaterialKind tags a material with the binding layout it produces. Pipelines declare
// which kinds they accept.
type MaterialKind int

const (
	MaterialKindColor MaterialKind = iota
	MaterialKindTexture
)

func (k MaterialKind) String() string {
	switch k {
	case MaterialKindColor:
		return "color"
	case MaterialKindTexture:
		return "texture"
	default:
		return fmt.Sprintf("MaterialKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k MaterialKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case-insensitive.
func (k *MaterialKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "color":
		*k = MaterialKindColor
	case "texture":
		*k = MaterialKindTexture
	default:
		return fmt.Errorf("unknown material kind %q", string(text))
	}
	return nil
}

// TextureDescriptor describes an image file to upload as a texture.
type TextureDescriptor struct {
	Name TextureName `yaml:"name"`
	// Path is relative to the configured textures directory.
	Path string      `yaml:"path"`
	Kind TextureKind `yaml:"kind"`
}

func (d *TextureDescriptor) AssetName() AssetName { return d.Name.AssetName() }

func (d *TextureDescriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("texture descriptor has no name")
	}
	if d.Path == "" {
		return fmt.Errorf("%s has no path", d.Name)
	}
	return nil
}

func (d *TextureDescriptor) String() string {
	return fmt.Sprintf("TextureDescriptor:%q of type %s from %q", string(d.Name), d.Kind, d.Path)
}

func (*TextureDescriptor) descriptor() {}

// ColorMaterialDescriptor holds the scalar lighting terms of a flat-colored material.
type ColorMaterialDescriptor struct {
	Ambient  mgl32.Vec3 `yaml:"ambient"`
	Diffuse  mgl32.Vec3 `yaml:"diffuse"`
	Specular mgl32.Vec3 `yaml:"specular"`
}

// TextureMaterialDescriptor references the two textures a textured material samples.
type TextureMaterialDescriptor struct {
	Diffuse TextureName `yaml:"diffuse"`
	Normal  TextureName `yaml:"normal"`
}

// MaterialDescriptor describes a material. Exactly one of Color or Texture is set.
type MaterialDescriptor struct {
	Name    MaterialName               `yaml:"name"`
	Color   *ColorMaterialDescriptor   `yaml:"color,omitempty"`
	Texture *TextureMaterialDescriptor `yaml:"texture,omitempty"`
}

// NewColorMaterialDescriptor builds a Color variant material descriptor.
func NewColorMaterialDescriptor(name MaterialName, ambient, diffuse, specular mgl32.Vec3) *MaterialDescriptor {
	return &MaterialDescriptor{
		Name:  name,
		Color: &ColorMaterialDescriptor{Ambient: ambient, Diffuse: diffuse, Specular: specular},
	}
}

// NewTextureMaterialDescriptor builds a Texture variant material descriptor.
func NewTextureMaterialDescriptor(name MaterialName, diffuse, normal TextureName) *MaterialDescriptor {
	return &MaterialDescriptor{
		Name:    name,
		Texture: &TextureMaterialDescriptor{Diffuse: diffuse, Normal: normal},
	}
}

// Kind returns the variant of the material. A descriptor that fails Validate reports
// MaterialKindColor when Color is set and MaterialKindTexture otherwise.
func (d *MaterialDescriptor) Kind() MaterialKind {
	if d.Color != nil {
		return MaterialKindColor
	}
	return MaterialKindTexture
}

func (d *MaterialDescriptor) AssetName() AssetName { return d.Name.AssetName() }

func (d *MaterialDescriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("material descriptor has no name")
	}
	switch {
	case d.Color != nil && d.Texture != nil:
		return fmt.Errorf("%s declares both color and texture variants", d.Name)
	case d.Color == nil && d.Texture == nil:
		return fmt.Errorf("%s declares neither a color nor a texture variant", d.Name)
	case d.Texture != nil && (d.Texture.Diffuse == "" || d.Texture.Normal == ""):
		return fmt.Errorf("%s must reference both a diffuse and a normal texture", d.Name)
	}
	return nil
}

func (*MaterialDescriptor) descriptor() {}

// VerticesSource names the file a mesh's geometries are read from. Exactly one field is set.
type VerticesSource struct {
	// Obj is a Wavefront .obj path relative to the meshes directory.
	Obj string `yaml:"obj,omitempty"`
	// GLTF is a .gltf or .glb path relative to the meshes directory.
	GLTF string `yaml:"gltf,omitempty"`
}

// Path returns whichever source path is set.
func (s VerticesSource) Path() string {
	return common.Coalesce(s.Obj, s.GLTF)
}

func (s VerticesSource) String() string {
	switch {
	case s.Obj != "":
		return fmt.Sprintf("Obj(%s)", s.Obj)
	case s.GLTF != "":
		return fmt.Sprintf("GLTF(%s)", s.GLTF)
	default:
		return "None"
	}
}

// GeometryDescriptor declares one named geometry expected in a mesh source.
type GeometryDescriptor struct {
	Name GeometryName `yaml:"name"`
}

// MeshDescriptor describes a mesh: a vertex source and the ordered list of geometries
// it must contain.
type MeshDescriptor struct {
	Name       MeshName             `yaml:"name"`
	Source     VerticesSource       `yaml:"source"`
	Geometries []GeometryDescriptor `yaml:"geometries"`
}

// CountGeometries returns the number of declared geometries.
func (d *MeshDescriptor) CountGeometries() int {
	return len(d.Geometries)
}

// GeometryNames returns the declared geometry names in declaration order.
func (d *MeshDescriptor) GeometryNames() []GeometryName {
	names := make([]GeometryName, len(d.Geometries))
	for i, g := range d.Geometries {
		names[i] = g.Name
	}
	return names
}

// HasGeometry reports whether name is among the declared geometries.
func (d *MeshDescriptor) HasGeometry(name GeometryName) bool {
	for _, g := range d.Geometries {
		if g.Name == name {
			return true
		}
	}
	return false
}

func (d *MeshDescriptor) AssetName() AssetName { return d.Name.AssetName() }

func (d *MeshDescriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("mesh descriptor has no name")
	}
	if (d.Source.Obj == "") == (d.Source.GLTF == "") {
		return fmt.Errorf("%s must declare exactly one vertices source", d.Name)
	}
	seen := make(map[GeometryName]struct{}, len(d.Geometries))
	for _, g := range d.Geometries {
		if g.Name == "" {
			return fmt.Errorf("%s declares a geometry without a name", d.Name)
		}
		if _, ok := seen[g.Name]; ok {
			return fmt.Errorf("%s declares %s twice", d.Name, g.Name)
		}
		seen[g.Name] = struct{}{}
	}
	return nil
}

func (*MeshDescriptor) descriptor() {}

// GeometryMaterial pairs a mesh geometry with the material drawn on it.
type GeometryMaterial struct {
	Geometry GeometryName `yaml:"geometry"`
	Material MaterialName `yaml:"material"`
}

// ModelDescriptor describes a model: one mesh, the materials applied to its geometries and
// the name of the pipeline that draws it. Pipelines are registered imperatively, so the
// pipeline is referenced by plain name.
type ModelDescriptor struct {
	Name                ModelName          `yaml:"name"`
	Mesh                MeshName           `yaml:"mesh"`
	GeometriesMaterials []GeometryMaterial `yaml:"geometries_materials"`
	Pipeline            string             `yaml:"pipeline"`
}

// MaterialFor returns the material declared for geometry, if any.
func (d *ModelDescriptor) MaterialFor(geometry GeometryName) (MaterialName, bool) {
	for _, gm := range d.GeometriesMaterials {
		if gm.Geometry == geometry {
			return gm.Material, true
		}
	}
	return "", false
}

func (d *ModelDescriptor) AssetName() AssetName { return d.Name.AssetName() }

func (d *ModelDescriptor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("model descriptor has no name")
	}
	if d.Mesh == "" {
		return fmt.Errorf("%s has no mesh", d.Name)
	}
	if d.Pipeline == "" {
		return fmt.Errorf("%s has no pipeline", d.Name)
	}
	return nil
}

func (*ModelDescriptor) descriptor() {}
