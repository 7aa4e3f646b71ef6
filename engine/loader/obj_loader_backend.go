package loader

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/model"
	"github.com/pkg/errors"
)

// defaultOBJGeometry names faces that appear before any o or g statement.
const defaultOBJGeometry asset.GeometryName = "default"

// objLoaderBackendImpl is the implementation of objLoaderBackend.
type objLoaderBackendImpl struct{}

// objLoaderBackend is a LoaderBackend for Wavefront OBJ files. Every o and g statement
// starts a named geometry; polygons are triangulated as fans and each distinct
// position/uv/normal triple becomes one vertex.
type objLoaderBackend interface {
	LoaderBackend

	// LoadReader decodes OBJ text from a reader.
	//
	// Parameters:
	//   - r: the reader providing OBJ text
	//
	// Returns:
	//   - []model.GeometryVertices: the decoded geometries
	//   - error: error if the text is malformed
	LoadReader(r io.Reader) ([]model.GeometryVertices, error)
}

var _ objLoaderBackend = &objLoaderBackendImpl{}

// newOBJLoaderBackend creates a new OBJ loader backend.
//
// Returns:
//   - objLoaderBackend: the loader backend for OBJ files
func newOBJLoaderBackend() objLoaderBackend {
	return &objLoaderBackendImpl{}
}

func (b *objLoaderBackendImpl) Load(path string) ([]model.GeometryVertices, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer file.Close()

	geometries, err := b.LoadReader(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	return geometries, nil
}

// objVertexKey identifies one face corner; missing attributes are -1.
type objVertexKey struct {
	position, texCoord, normal int
}

// objGeometryBuilder accumulates one named geometry.
type objGeometryBuilder struct {
	geometry model.GeometryVertices
	vertices map[objVertexKey]uint32
}

// objParser holds the shared attribute pools while geometries are being built.
type objParser struct {
	positions [][3]float32
	texCoords [][2]float32
	normals   [][3]float32

	builders []*objGeometryBuilder
	byName   map[asset.GeometryName]*objGeometryBuilder
	current  *objGeometryBuilder
}

func (b *objLoaderBackendImpl) LoadReader(r io.Reader) ([]model.GeometryVertices, error) {
	p := &objParser{byName: make(map[asset.GeometryName]*objGeometryBuilder)}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if err := p.parseLine(fields[0], fields[1:]); err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read obj data")
	}

	geometries := make([]model.GeometryVertices, 0, len(p.builders))
	for _, builder := range p.builders {
		if len(builder.geometry.Indices) == 0 {
			continue
		}
		builder.geometry.ComputeTangents()
		geometries = append(geometries, builder.geometry)
	}
	return geometries, nil
}

func (p *objParser) parseLine(ident string, val []string) error {
	switch ident {
	case "v", "vn":
		v, err := parseFloats(val, 3)
		if err != nil {
			return err
		}
		if ident == "v" {
			p.positions = append(p.positions, [3]float32{v[0], v[1], v[2]})
		} else {
			p.normals = append(p.normals, [3]float32{v[0], v[1], v[2]})
		}
	case "vt":
		v, err := parseFloats(val, 1)
		if err != nil {
			return err
		}
		uv := [2]float32{v[0], 0}
		if len(v) > 1 {
			uv[1] = v[1]
		}
		p.texCoords = append(p.texCoords, uv)
	case "o", "g":
		name := asset.GeometryName(strings.Join(val, " "))
		if name == "" {
			name = defaultOBJGeometry
		}
		p.selectGeometry(name)
	case "f":
		return p.parseFace(val)
	}
	// mtllib, usemtl, s and l carry nothing a geometry needs
	return nil
}

func (p *objParser) selectGeometry(name asset.GeometryName) {
	if builder, ok := p.byName[name]; ok {
		p.current = builder
		return
	}
	builder := &objGeometryBuilder{
		geometry: model.GeometryVertices{Name: name},
		vertices: make(map[objVertexKey]uint32),
	}
	p.builders = append(p.builders, builder)
	p.byName[name] = builder
	p.current = builder
}

func (p *objParser) parseFace(val []string) error {
	if len(val) < 3 {
		return errors.Errorf("face needs at least 3 vertices, got %d", len(val))
	}
	if p.current == nil {
		p.selectGeometry(defaultOBJGeometry)
	}

	corners := make([]uint32, len(val))
	for i, ref := range val {
		key, err := p.parseCorner(ref)
		if err != nil {
			return err
		}
		corners[i] = p.current.vertex(key, p)
	}

	// fan triangulation around the first corner
	for i := 1; i+1 < len(corners); i++ {
		p.current.geometry.Indices = append(p.current.geometry.Indices, corners[0], corners[i], corners[i+1])
	}
	return nil
}

// parseCorner resolves a v, v/vt, v//vn or v/vt/vn reference into zero-based indices.
func (p *objParser) parseCorner(ref string) (objVertexKey, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return objVertexKey{}, errors.Errorf("malformed face vertex %q", ref)
	}

	key := objVertexKey{position: -1, texCoord: -1, normal: -1}
	var err error
	if key.position, err = resolveIndex(parts[0], len(p.positions)); err != nil {
		return key, errors.Wrapf(err, "face vertex %q", ref)
	}
	if len(parts) > 1 && parts[1] != "" {
		if key.texCoord, err = resolveIndex(parts[1], len(p.texCoords)); err != nil {
			return key, errors.Wrapf(err, "face vertex %q", ref)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if key.normal, err = resolveIndex(parts[2], len(p.normals)); err != nil {
			return key, errors.Wrapf(err, "face vertex %q", ref)
		}
	}
	return key, nil
}

// vertex returns the index of the vertex for key, adding it on first use.
func (b *objGeometryBuilder) vertex(key objVertexKey, p *objParser) uint32 {
	if idx, ok := b.vertices[key]; ok {
		return idx
	}

	var v model.ModelVertex
	v.Position = p.positions[key.position]
	if key.texCoord >= 0 {
		v.TexCoords = p.texCoords[key.texCoord]
	}
	if key.normal >= 0 {
		v.Normal = p.normals[key.normal]
	}

	idx := uint32(len(b.geometry.Vertices))
	b.geometry.Vertices = append(b.geometry.Vertices, v)
	b.vertices[key] = idx
	return idx
}

// resolveIndex converts a one-based or negative relative OBJ index into a zero-based index.
func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid index %q", s)
	}
	switch {
	case n > 0 && n <= count:
		return n - 1, nil
	case n < 0 && -n <= count:
		return count + n, nil
	default:
		return 0, errors.Errorf("index %d out of range (%d defined)", n, count)
	}
}

func parseFloats(val []string, min int) ([]float32, error) {
	if len(val) < min {
		return nil, errors.Errorf("expected at least %d values, got %d", min, len(val))
	}
	out := make([]float32, len(val))
	for i, s := range val {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid number %q", s)
		}
		out[i] = float32(f)
	}
	return out, nil
}
