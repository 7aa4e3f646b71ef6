package material

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-assets/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ColorUniformSize is the byte size of ColorUniform on the device.
const ColorUniformSize = 32

// ColorUniform is the GPU-aligned uniform for the color material fragment shader.
// Matches the WGSL ColorMaterial struct layout exactly: the scalar specular term fills the
// padding after the ambient vec3.
// Size: 32 bytes (two vec4<f32> slots).
type ColorUniform struct {
	Ambient  [3]float32 // offset 0: ambient color (12 bytes)
	Specular float32    // offset 12: mean specular intensity (4 bytes)
	Diffuse  [3]float32 // offset 16: diffuse color (12 bytes)
	_        float32    // offset 28: padding (4 bytes)
}

// NewColorUniform builds the uniform block from descriptor colors. The specular color is
// reduced to the mean of its three channels.
//
// Parameters:
//   - ambient: the ambient color
//   - diffuse: the diffuse color
//   - specular: the specular color
//
// Returns:
//   - ColorUniform: the uniform block
func NewColorUniform(ambient, diffuse, specular mgl32.Vec3) ColorUniform {
	return ColorUniform{
		Ambient:  ambient,
		Specular: common.Mean(specular[0], specular[1], specular[2]),
		Diffuse:  diffuse,
	}
}

// Size returns the size of the ColorUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *ColorUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the ColorUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *ColorUniform) Marshal() []byte {
	buf := make([]byte, ColorUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Ambient[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Ambient[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Ambient[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Specular))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Diffuse[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Diffuse[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Diffuse[2]))
	return buf
}
