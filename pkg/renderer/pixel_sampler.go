package renderer

import (
	"image"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
	"github.com/df07/go-skycube-pathtracer/pkg/integrator"
)

// RayGenerator produces eye rays for image points
type RayGenerator interface {
	PrimaryRay(px, py float64, viewport image.Rectangle) core.Ray
	DOFRay(px, py, lensX, lensY float64, viewport image.Rectangle, focusDistance float64) core.Ray
}

// PixelSampler turns one pixel into one radiance sample per pass
type PixelSampler struct {
	camera   RayGenerator
	tracer   integrator.Integrator
	settings integrator.Settings
}

// NewPixelSampler creates a pixel sampler. Only the pixel sampling fields of settings are used.
func NewPixelSampler(camera RayGenerator, tracer integrator.Integrator, settings integrator.Settings) *PixelSampler {
	return &PixelSampler{camera: camera, tracer: tracer, settings: settings}
}

// SamplePixel returns the average radiance of the eye rays generated for pixel (x, y).
// Depth of field takes precedence over super sampling.
func (ps *PixelSampler) SamplePixel(x, y int, viewport image.Rectangle, sampler core.Sampler) core.Vec3 {
	px, py := float64(x), float64(y)

	switch {
	case ps.settings.DOFEnabled:
		n := ps.settings.DOFSamples
		sum := core.Vec3{}
		for i := 0; i < n; i++ {
			// Polar lens sampling concentrates rays toward the lens center
			lens := core.SamplePolarDisk(ps.settings.LensRadius/2, sampler.Get2D())
			jitter := sampler.Get2D()
			ray := ps.camera.DOFRay(px+jitter.X, py+jitter.Y, lens.X, lens.Y, viewport, ps.settings.FocusDistance)
			sum = sum.Add(ps.tracer.Trace(ray, sampler))
		}
		return sum.Multiply(1.0 / float64(n))

	case ps.settings.SuperSamples <= 1:
		jitter := sampler.Get2D()
		return ps.tracer.Trace(ps.camera.PrimaryRay(px+jitter.X, py+jitter.Y, viewport), sampler)

	default:
		// Regular n×n grid anchored at each stratum's corner
		n := ps.settings.SuperSamples
		step := 1.0 / float64(n)
		sum := core.Vec3{}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				ray := ps.camera.PrimaryRay(px+float64(i)*step, py+float64(j)*step, viewport)
				sum = sum.Add(ps.tracer.Trace(ray, sampler))
			}
		}
		return sum.Multiply(1.0 / float64(n*n))
	}
}
