package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
	"github.com/df07/go-skycube-pathtracer/pkg/envmap"
	"github.com/df07/go-skycube-pathtracer/pkg/geometry"
	"github.com/df07/go-skycube-pathtracer/pkg/integrator"
	"github.com/df07/go-skycube-pathtracer/pkg/lights"
	"github.com/df07/go-skycube-pathtracer/pkg/material"
	"github.com/df07/go-skycube-pathtracer/pkg/renderer"
)

// rayEpsilon is the nearest distance an intersection may report
const rayEpsilon = 1e-4

// Scene is an immutable snapshot of everything a render reads. It implements
// integrator.World and is shared by all workers without locking.
type Scene struct {
	Name         string
	CameraConfig renderer.CameraConfig
	Camera       *renderer.Camera
	Triangles    []*geometry.Triangle

	bvh         *geometry.BVH
	emitters    *lights.EmitterSet
	environment *envmap.CubeMap
	medium      *HomogeneousMedium
}

var _ integrator.World = (*Scene)(nil)

// NewScene builds the acceleration structure and emitter set for a list of triangles
func NewScene(name string, cameraConfig renderer.CameraConfig, triangles []*geometry.Triangle, logger core.Logger) (*Scene, error) {
	if len(triangles) == 0 {
		return nil, fmt.Errorf("scene %q has no geometry", name)
	}

	s := &Scene{
		Name:         name,
		CameraConfig: cameraConfig,
		Camera:       renderer.NewCamera(cameraConfig),
		Triangles:    triangles,
		bvh:          geometry.NewBVH(geometry.Shapes(triangles)),
		emitters:     lights.NewEmitterSet(triangles),
	}

	if logger != nil {
		logger.Printf("%d triangle(s) in scene %q\n", len(triangles), name)
		logger.Printf("%d light-emitting triangle(s) in scene\n", s.emitters.Len())
	}
	return s, nil
}

// WithEnvironment returns a copy of the scene lit by a cube map sky
func (s *Scene) WithEnvironment(cube *envmap.CubeMap) *Scene {
	c := *s
	c.environment = cube
	return &c
}

// WithMedium returns a copy of the scene filled with a homogeneous medium
func (s *Scene) WithMedium(medium *HomogeneousMedium) *Scene {
	c := *s
	c.medium = medium
	return &c
}

// Intersect returns the nearest surface along ray
func (s *Scene) Intersect(ray core.Ray) (*material.SurfaceInteraction, bool) {
	return s.bvh.Hit(ray, rayEpsilon, math.Inf(1))
}

// Occluded reports whether any surface lies along ray closer than maxDistance
func (s *Scene) Occluded(ray core.Ray, maxDistance float64) bool {
	if maxDistance <= rayEpsilon {
		return false
	}
	return s.bvh.Occluded(ray, rayEpsilon, maxDistance)
}

// HasEmitters reports whether the scene contains emissive triangles
func (s *Scene) HasEmitters() bool {
	return s.emitters.Len() > 0
}

// SampleEmissivePoint picks a uniformly distributed point on a random emissive triangle
func (s *Scene) SampleEmissivePoint(sampler core.Sampler) (lights.EmissiveSample, bool) {
	return s.emitters.SampleEmissivePoint(sampler)
}

// Emitters returns the emissive triangles of the scene
func (s *Scene) Emitters() *lights.EmitterSet {
	return s.emitters
}

// Environment returns the cube map sky, or nil when the scene has none
func (s *Scene) Environment() integrator.Environment {
	if s.environment == nil {
		return nil
	}
	return s.environment
}

// Medium returns the participating medium, or nil for vacuum
func (s *Scene) Medium() integrator.Medium {
	if s.medium == nil {
		return nil
	}
	return s.medium
}
