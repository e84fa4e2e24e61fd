package material

import (
	"math"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Emit implements the Material interface; glass does not emit
func (d *Dielectric) Emit(hit *SurfaceInteraction, direction core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Scatter chooses reflection or refraction with probability equal to the Fresnel reflectance,
// so the weight stays white either way
func (d *Dielectric) Scatter(hit *SurfaceInteraction, outgoing core.Vec3, sampler core.Sampler) (ScatterResult, bool) {
	unitDirection := outgoing.Negate().Normalize()
	ratio := d.refractionRatio(hit)

	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	var direction core.Vec3
	if ratio*sinTheta > 1.0 || Reflectance(cosTheta, ratio) > sampler.Get1D() {
		direction = reflectVector(unitDirection, hit.Normal)
	} else {
		direction = refractVector(unitDirection, hit.Normal, ratio)
	}

	return ScatterResult{
		Direction: direction.Normalize(),
		Weight:    core.NewVec3(1.0, 1.0, 1.0),
	}, true
}

// EvaluateBRDF evaluates the BRDF for specific incoming/outgoing directions
func (d *Dielectric) EvaluateBRDF(hit *SurfaceInteraction, incoming, outgoing core.Vec3) core.Vec3 {
	return core.Vec3{} // Delta function materials
}

// Impulses returns the reflection and (unless totally internally reflected) refraction directions
func (d *Dielectric) Impulses(hit *SurfaceInteraction, outgoing core.Vec3) []Impulse {
	unitDirection := outgoing.Negate().Normalize()
	ratio := d.refractionRatio(hit)

	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	reflected := reflectVector(unitDirection, hit.Normal).Normalize()
	if ratio*sinTheta > 1.0 {
		return []Impulse{{Direction: reflected}}
	}

	return []Impulse{
		{Direction: reflected},
		{Direction: refractVector(unitDirection, hit.Normal, ratio).Normalize()},
	}
}

func (d *Dielectric) refractionRatio(hit *SurfaceInteraction) float64 {
	if hit.FrontFace {
		return 1.0 / d.RefractiveIndex // entering
	}
	return d.RefractiveIndex
}

// refractVector calculates the refraction of a vector using Snell's law
func refractVector(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(-uv.Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
