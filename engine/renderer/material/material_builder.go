package material

import (
	"github.com/Carmen-Shannon/oxy-assets/engine/renderer"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithResource is an option builder that sets the device handle of the material.
//
// Parameters:
//   - res: the bind group resource created for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the resource option to a material
func WithResource(res renderer.Resource) MaterialBuilderOption {
	return func(m *material) {
		m.resource = res
	}
}
