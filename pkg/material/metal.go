package material

import (
	"github.com/df07/go-skycube-pathtracer/pkg/core"
)

// Mirror represents a perfect specular reflector
type Mirror struct {
	Albedo core.Vec3 // Mirror tint
}

// NewMirror creates a new mirror material
func NewMirror(albedo core.Vec3) *Mirror {
	return &Mirror{Albedo: albedo}
}

// Emit implements the Material interface; mirrors do not emit
func (m *Mirror) Emit(hit *SurfaceInteraction, direction core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Scatter implements the Material interface for mirror scattering
func (m *Mirror) Scatter(hit *SurfaceInteraction, outgoing core.Vec3, sampler core.Sampler) (ScatterResult, bool) {
	reflected := reflectVector(outgoing.Negate(), hit.Normal).Normalize()
	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Direction: reflected,
		Weight:    m.Albedo, // No π or cosine factor for a delta lobe
	}, true
}

// EvaluateBRDF evaluates the BRDF for specific incoming/outgoing directions
func (m *Mirror) EvaluateBRDF(hit *SurfaceInteraction, incoming, outgoing core.Vec3) core.Vec3 {
	// Delta function - no finite part
	return core.Vec3{}
}

// Impulses returns the single mirror direction
func (m *Mirror) Impulses(hit *SurfaceInteraction, outgoing core.Vec3) []Impulse {
	reflected := reflectVector(outgoing.Negate(), hit.Normal).Normalize()
	return []Impulse{{Direction: reflected}}
}

// reflectVector calculates the reflection of a vector v off a surface with normal n
func reflectVector(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
