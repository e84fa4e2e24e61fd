package integrator

import (
	"fmt"
	"math"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
	"github.com/df07/go-skycube-pathtracer/pkg/material"
)

const (
	// rayEpsilon offsets secondary ray origins off the surface
	rayEpsilon = 1e-3
	// maxRadiance bounds each channel returned by Trace
	maxRadiance = 10.0
)

// PathTracingIntegrator estimates radiance with recursive path tracing, sampling
// area lights, specular impulses and the environment at every hit
type PathTracingIntegrator struct {
	settings Settings
	world    World
}

// NewPathTracingIntegrator creates a path tracer over world. The settings are copied.
func NewPathTracingIntegrator(settings Settings, world World) (*PathTracingIntegrator, error) {
	if world == nil {
		return nil, fmt.Errorf("path tracer needs a world")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if settings.EnvironmentLighting && world.Environment() == nil {
		return nil, fmt.Errorf("environment lighting is enabled but the scene has no environment")
	}
	if settings.DebugBackground != nil {
		bg := *settings.DebugBackground
		settings.DebugBackground = &bg
	}
	return &PathTracingIntegrator{settings: settings, world: world}, nil
}

// Settings returns the settings the integrator was created with
func (pt *PathTracingIntegrator) Settings() Settings {
	return pt.settings
}

// Trace returns the radiance estimate along ray, each channel clamped to [0, 10]
func (pt *PathTracingIntegrator) Trace(ray core.Ray, sampler core.Sampler) core.Vec3 {
	return pt.estimate(ray, 0, sampler).Clamp(0, maxRadiance)
}

// estimate is the recursive radiance estimator
func (pt *PathTracingIntegrator) estimate(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	if depth > pt.settings.MaxDepth {
		return core.Vec3{}
	}

	hit, isHit := pt.world.Intersect(ray)
	if !isHit {
		return pt.background(ray)
	}

	outgoing := ray.Direction.Negate()
	radiance := core.Vec3{}

	// Emission reaches the eye only from the first hit; later bounces see emitters
	// through area light sampling
	if depth == 0 && pt.settings.Emitted {
		radiance = radiance.Add(hit.EmittedRadiance(outgoing))
	}

	radiance = radiance.Add(pt.directLighting(hit, ray, depth, sampler))

	if scatter, ok := hit.SampleScatter(outgoing, sampler); ok {
		// Russian roulette on the mean weight
		r := scatter.Weight.Mean()
		if r > 0 && sampler.Get1D() < r {
			next := core.NewRay(offsetOrigin(hit, scatter.Direction), scatter.Direction)
			indirect := pt.estimate(next, depth+1, sampler)
			radiance = radiance.Add(indirect.MultiplyVec(scatter.Weight).Multiply(1.0 / r))
		}
	}

	if pt.settings.MediumAttenuation {
		if medium := pt.world.Medium(); medium != nil {
			radiance = radiance.MultiplyVec(medium.Transmittance(hit.T))
		}
	}
	return radiance
}

// background is the radiance of a ray that escapes the scene
func (pt *PathTracingIntegrator) background(ray core.Ray) core.Vec3 {
	if pt.settings.EnvironmentLighting {
		return pt.world.Environment().Lookup(ray)
	}
	if pt.settings.DebugBackground != nil {
		return *pt.settings.DebugBackground
	}
	return core.Vec3{}
}

// directLighting samples light arriving straight from emitters or the sky. With both
// present it picks one of the two strategies with equal probability.
func (pt *PathTracingIntegrator) directLighting(hit *material.SurfaceInteraction, ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	if !pt.settings.EnvironmentLighting {
		return pt.areaLighting(hit, ray, depth, sampler)
	}
	if !pt.world.HasEmitters() {
		return pt.environmentLighting(hit, sampler)
	}
	if sampler.Get1D() < 0.5 {
		return pt.areaLighting(hit, ray, depth, sampler).Multiply(0.5)
	}
	return pt.environmentLighting(hit, sampler).Multiply(0.5)
}

// environmentLighting samples the sky along a cosine-weighted direction about the normal.
// The cosine is taken against the reversed sample direction, so sky light reaching the
// surface is carried by escaping bounces in estimate and never counted here as well.
func (pt *PathTracingIntegrator) environmentLighting(hit *material.SurfaceInteraction, sampler core.Sampler) core.Vec3 {
	direction, pdf := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
	if pdf <= 0 {
		return core.Vec3{}
	}

	shadowRay := core.NewRay(offsetOrigin(hit, direction), direction)
	if _, blocked := pt.world.Intersect(shadowRay); blocked {
		return core.Vec3{}
	}

	cosine := clamp01(direction.Negate().Dot(hit.Normal))
	return pt.world.Environment().Lookup(shadowRay).Multiply(pdf * cosine)
}

// areaLighting samples one point on an emissive triangle
func (pt *PathTracingIntegrator) areaLighting(hit *material.SurfaceInteraction, ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	light, ok := pt.world.SampleEmissivePoint(sampler)
	if !ok || light.Prob <= 0 {
		return core.Vec3{}
	}

	toLight := light.Point.Subtract(hit.Point)
	distance := toLight.Length()
	if distance == 0 {
		return core.Vec3{}
	}
	lightDir := toLight.Multiply(1.0 / distance)

	origin := offsetOrigin(hit, lightDir)
	shadowRay := core.NewRay(origin, lightDir)
	if pt.world.Occluded(shadowRay, light.Point.Subtract(origin).Length()-rayEpsilon) {
		return core.Vec3{}
	}

	outgoing := ray.Direction.Negate()
	cosSurface := clamp01(lightDir.Dot(hit.Normal))
	cosLight := clamp01(light.Normal.Dot(lightDir.Negate()))

	// Radiance to power density at the receiver
	emitted := light.Radiance(lightDir.Negate()).Multiply(1.0 / (math.Pi * light.Area * distance * distance))
	density := hit.ScatteringDensity(lightDir, outgoing)

	radiance := core.Vec3{}
	contribution := emitted.MultiplyVec(density).Multiply(cosSurface * cosLight / light.Prob)
	if depth == 0 && pt.settings.DirectDiffuse {
		radiance = radiance.Add(contribution)
	} else if depth > 0 && pt.settings.Indirect {
		radiance = radiance.Add(contribution)
	}

	if pt.settings.DirectSpecular && !emitted.IsBlack() {
		radiance = radiance.Add(pt.specular(hit, ray))
	}
	return radiance
}

// specular adds emitters seen directly along each specular impulse, at full weight
func (pt *PathTracingIntegrator) specular(hit *material.SurfaceInteraction, ray core.Ray) core.Vec3 {
	radiance := core.Vec3{}
	for _, impulse := range hit.SpecularImpulses(ray.Direction.Negate()) {
		impulseRay := core.NewRay(offsetOrigin(hit, impulse.Direction), impulse.Direction)
		if surface, ok := pt.world.Intersect(impulseRay); ok {
			radiance = radiance.Add(surface.EmittedRadiance(impulse.Direction.Negate()))
		}
	}
	return radiance
}

// offsetOrigin moves a hit point off the surface on the side direction leaves through
func offsetOrigin(hit *material.SurfaceInteraction, direction core.Vec3) core.Vec3 {
	if direction.Dot(hit.Normal) < 0 {
		return hit.Point.Subtract(hit.Normal.Multiply(rayEpsilon))
	}
	return hit.Point.Add(hit.Normal.Multiply(rayEpsilon))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
