package scene

import (
	"cmp"
	"slices"

	"github.com/Carmen-Shannon/oxy-assets/engine/asset"
	"github.com/Carmen-Shannon/oxy-assets/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// Object places one instance of a model in the scene.
type Object struct {
	Name        string
	Model       asset.ModelName
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	Scale       float32
	Opacity     float32
}

// NewObject creates an Object at the origin with identity orientation, unit scale and full opacity.
//
// Parameters:
//   - name: the object name
//   - modelName: the model drawn for this object
//
// Returns:
//   - Object: the new object
func NewObject(name string, modelName asset.ModelName) Object {
	return Object{
		Name:        name,
		Model:       modelName,
		Orientation: mgl32.QuatIdent(),
		Scale:       1,
		Opacity:     1,
	}
}

// Transform returns the model matrix of the object: scale, then rotation, then translation.
func (o Object) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z()).
		Mul4(o.Orientation.Mat4()).
		Mul4(mgl32.Scale3D(o.Scale, o.Scale, o.Scale))
}

// LinkedObject is an Object whose model has been materialized.
type LinkedObject struct {
	Object Object
	Model  model.Model
}

// SortByPipeline orders linked objects by pipeline name, then by mesh name, so objects
// drawn with the same pipeline and vertex buffers end up adjacent. The sort is stable.
//
// Parameters:
//   - objects: the linked objects to sort in place
func SortByPipeline(objects []LinkedObject) {
	slices.SortStableFunc(objects, func(a, b LinkedObject) int {
		return cmp.Or(
			cmp.Compare(a.Model.Pipeline().Name(), b.Model.Pipeline().Name()),
			cmp.Compare(a.Model.Mesh().Name(), b.Model.Mesh().Name()),
		)
	})
}
