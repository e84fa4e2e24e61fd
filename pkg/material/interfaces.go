package material

import (
	"github.com/df07/go-skycube-pathtracer/pkg/core"
)

// Material is the scattering capability of a surface. Directions follow one convention
// throughout: every direction points away from the surface. "outgoing" is the direction
// toward the viewer (the negated incoming ray direction), "incoming" is the direction
// light arrives from.
type Material interface {
	// Emit returns the radiance emitted from the surface toward direction
	Emit(hit *SurfaceInteraction, direction core.Vec3) core.Vec3

	// Scatter samples one incoming direction for the given outgoing direction.
	// The weight is the scattering density times cosine divided by the sampling density.
	Scatter(hit *SurfaceInteraction, outgoing core.Vec3, sampler core.Sampler) (ScatterResult, bool)

	// EvaluateBRDF returns the finite part of the scattering density for a direction pair
	EvaluateBRDF(hit *SurfaceInteraction, incoming, outgoing core.Vec3) core.Vec3

	// Impulses enumerates the delta (mirror/refraction) directions for outgoing
	Impulses(hit *SurfaceInteraction, outgoing core.Vec3) []Impulse
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Direction core.Vec3 // Sampled incoming direction (unit length)
	Weight    core.Vec3 // Importance weight along Direction
}

// Impulse is one specular scattering direction. The integrator counts every impulse
// at full weight.
type Impulse struct {
	Direction core.Vec3
}

// SurfaceInteraction contains information about a ray-surface intersection
type SurfaceInteraction struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Shading normal, facing the side the ray arrived from
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *SurfaceInteraction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// EmittedRadiance returns the radiance the surface emits toward direction
func (h *SurfaceInteraction) EmittedRadiance(direction core.Vec3) core.Vec3 {
	if h.Material == nil {
		return core.Vec3{}
	}
	return h.Material.Emit(h, direction)
}

// SampleScatter samples an incoming direction for the path to continue along
func (h *SurfaceInteraction) SampleScatter(outgoing core.Vec3, sampler core.Sampler) (ScatterResult, bool) {
	if h.Material == nil {
		return ScatterResult{}, false
	}
	return h.Material.Scatter(h, outgoing, sampler)
}

// ScatteringDensity evaluates the finite scattering density between two directions
func (h *SurfaceInteraction) ScatteringDensity(incoming, outgoing core.Vec3) core.Vec3 {
	if h.Material == nil {
		return core.Vec3{}
	}
	return h.Material.EvaluateBRDF(h, incoming, outgoing)
}

// SpecularImpulses enumerates the specular directions for outgoing
func (h *SurfaceInteraction) SpecularImpulses(outgoing core.Vec3) []Impulse {
	if h.Material == nil {
		return nil
	}
	return h.Material.Impulses(h, outgoing)
}
