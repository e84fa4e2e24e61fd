package material

import (
	"math"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Emit implements the Material interface; diffuse surfaces do not emit
func (l *Lambertian) Emit(hit *SurfaceInteraction, direction core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(hit *SurfaceInteraction, outgoing core.Vec3, sampler core.Sampler) (ScatterResult, bool) {
	// Cosine-weighted sampling: (albedo/π)·cosθ / (cosθ/π) = albedo
	direction, pdf := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
	if pdf <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Direction: direction,
		Weight:    l.Albedo,
	}, true
}

// EvaluateBRDF evaluates the BRDF for specific incoming/outgoing directions
func (l *Lambertian) EvaluateBRDF(hit *SurfaceInteraction, incoming, outgoing core.Vec3) core.Vec3 {
	// Both directions must lie on the lit side
	if incoming.Dot(hit.Normal) <= 0 || outgoing.Dot(hit.Normal) <= 0 {
		return core.Vec3{}
	}
	return l.Albedo.Multiply(1.0 / math.Pi)
}

// Impulses implements the Material interface; diffuse surfaces have none
func (l *Lambertian) Impulses(hit *SurfaceInteraction, outgoing core.Vec3) []Impulse {
	return nil
}
