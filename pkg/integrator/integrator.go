package integrator

import (
	"fmt"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
	"github.com/df07/go-skycube-pathtracer/pkg/lights"
	"github.com/df07/go-skycube-pathtracer/pkg/material"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace returns the radiance arriving along ray, clamped per channel
	Trace(ray core.Ray, sampler core.Sampler) core.Vec3
}

// World is the read-only scene a render samples. Implementations must be safe for
// concurrent use by every worker.
type World interface {
	// Intersect returns the nearest surface along ray
	Intersect(ray core.Ray) (*material.SurfaceInteraction, bool)

	// Occluded reports whether anything lies along ray closer than maxDistance
	Occluded(ray core.Ray, maxDistance float64) bool

	// HasEmitters reports whether the scene contains emissive geometry
	HasEmitters() bool

	// SampleEmissivePoint picks a point on an emissive triangle
	SampleEmissivePoint(sampler core.Sampler) (lights.EmissiveSample, bool)

	// Environment returns the sky seen by escaping rays, or nil
	Environment() Environment

	// Medium returns the participating medium filling the scene, or nil for vacuum
	Medium() Medium
}

// Environment gives the radiance arriving from infinitely far away along a ray
type Environment interface {
	Lookup(ray core.Ray) core.Vec3
}

// Medium attenuates radiance travelling through it
type Medium interface {
	// Transmittance returns the fraction of radiance that survives distance
	Transmittance(distance float64) core.Vec3
}

// Settings selects the light transport terms and pixel sampling of one render.
// It is copied into the integrator when the render starts.
type Settings struct {
	Emitted             bool // Emission seen directly from the eye
	DirectDiffuse       bool // Area light sampling at the first hit
	DirectSpecular      bool // Emitters seen through mirror and glass impulses
	Indirect            bool // Area light sampling after one or more bounces
	EnvironmentLighting bool // Cube map sky for escaping rays and sky sampling
	MediumAttenuation   bool // Beer-Lambert attenuation through the scene medium

	SuperSamples int // n for an n×n stratified grid per pixel, 1 for a single jittered ray
	MaxDepth     int // Bounce cap

	DOFEnabled    bool
	DOFSamples    int
	LensRadius    float64
	FocusDistance float64

	// DebugBackground replaces black for escaping rays when environment lighting is off
	DebugBackground *core.Vec3
}

// DefaultSettings returns every light transport term enabled without depth of field
func DefaultSettings() Settings {
	return Settings{
		Emitted:        true,
		DirectDiffuse:  true,
		DirectSpecular: true,
		Indirect:       true,
		SuperSamples:   1,
		MaxDepth:       64,
		DOFSamples:     5,
		LensRadius:     0.2,
		FocusDistance:  4.8,
	}
}

// Validate rejects settings a render cannot start with
func (s Settings) Validate() error {
	if s.SuperSamples < 1 {
		return fmt.Errorf("super samples must be at least 1, got %d", s.SuperSamples)
	}
	if s.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1, got %d", s.MaxDepth)
	}
	if s.DOFEnabled {
		if s.DOFSamples < 1 {
			return fmt.Errorf("depth of field needs at least 1 sample, got %d", s.DOFSamples)
		}
		if s.LensRadius < 0 || s.FocusDistance <= 0 {
			return fmt.Errorf("invalid lens: radius %g, focus distance %g", s.LensRadius, s.FocusDistance)
		}
	}
	return nil
}
