package material

import (
	"github.com/df07/go-skycube-pathtracer/pkg/core"
)

// Emissive represents a one-sided light-emitting material
type Emissive struct {
	Emission core.Vec3 // Emitted radiance
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// Emit returns the emitted radiance on the front side only
func (e *Emissive) Emit(hit *SurfaceInteraction, direction core.Vec3) core.Vec3 {
	if !hit.FrontFace || direction.Dot(hit.Normal) <= 0 {
		return core.Vec3{}
	}
	return e.Emission
}

// Scatter implements the Material interface for emissive materials
// Emissive materials don't scatter rays - they only emit light
func (e *Emissive) Scatter(hit *SurfaceInteraction, outgoing core.Vec3, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// EvaluateBRDF evaluates the BRDF for specific incoming/outgoing directions
func (e *Emissive) EvaluateBRDF(hit *SurfaceInteraction, incoming, outgoing core.Vec3) core.Vec3 {
	// Lights don't reflect - they only emit
	return core.Vec3{}
}

// Impulses implements the Material interface
func (e *Emissive) Impulses(hit *SurfaceInteraction, outgoing core.Vec3) []Impulse {
	return nil
}
