package lights

import (
	"github.com/df07/go-skycube-pathtracer/pkg/core"
	"github.com/df07/go-skycube-pathtracer/pkg/geometry"
	"github.com/df07/go-skycube-pathtracer/pkg/material"
)

// EmissiveSample is a point chosen on an emissive triangle
type EmissiveSample struct {
	Point    core.Vec3          // Sampled point on the emitter
	Triangle *geometry.Triangle // Triangle containing Point
	Normal   core.Vec3          // Face normal of Triangle
	Prob     float64            // Selection density 1 / (emitterCount × area)
	Area     float64            // Area of Triangle
}

// Radiance returns the radiance the sampled point emits toward direction
func (s EmissiveSample) Radiance(direction core.Vec3) core.Vec3 {
	if s.Triangle == nil {
		return core.Vec3{}
	}
	hit := &material.SurfaceInteraction{
		Point:     s.Point,
		Normal:    s.Normal,
		FrontFace: direction.Dot(s.Normal) > 0,
		Material:  s.Triangle.Material,
	}
	return hit.EmittedRadiance(direction)
}

// EmitterSet holds the emissive triangles of a scene and samples points on them
type EmitterSet struct {
	triangles []*geometry.Triangle
}

// NewEmitterSet collects the triangles whose material emits light from their front face
func NewEmitterSet(tris []*geometry.Triangle) *EmitterSet {
	set := &EmitterSet{}
	for _, tri := range tris {
		if IsEmissive(tri) {
			set.triangles = append(set.triangles, tri)
		}
	}
	return set
}

// IsEmissive reports whether a triangle emits non-black radiance along its normal
func IsEmissive(tri *geometry.Triangle) bool {
	if tri.Material == nil || tri.Area() == 0 {
		return false
	}
	probe := &material.SurfaceInteraction{
		Point:     tri.PointAt(1.0/3.0, 1.0/3.0, 1.0/3.0),
		Normal:    tri.Normal(),
		FrontFace: true,
		Material:  tri.Material,
	}
	return !probe.EmittedRadiance(tri.Normal()).IsBlack()
}

// Len returns the number of emissive triangles
func (e *EmitterSet) Len() int {
	return len(e.triangles)
}

// Triangles returns the emissive triangles
func (e *EmitterSet) Triangles() []*geometry.Triangle {
	return e.triangles
}

// SampleEmissivePoint picks a uniformly random emissive triangle, then a uniformly
// distributed point inside it. Returns false when the set is empty.
func (e *EmitterSet) SampleEmissivePoint(sampler core.Sampler) (EmissiveSample, bool) {
	n := len(e.triangles)
	if n == 0 {
		return EmissiveSample{}, false
	}

	index := int(sampler.Get1D() * float64(n))
	if index >= n {
		index = n - 1
	}
	tri := e.triangles[index]

	a, b, c := core.UniformTriangleBarycentrics(sampler.Get2D())
	return EmissiveSample{
		Point:    tri.PointAt(a, b, c),
		Triangle: tri,
		Normal:   tri.Normal(),
		Prob:     1.0 / (float64(n) * tri.Area()),
		Area:     tri.Area(),
	}, true
}
