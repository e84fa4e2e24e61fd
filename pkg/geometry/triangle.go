package geometry

import (
	"github.com/df07/go-skycube-pathtracer/pkg/core"
	"github.com/df07/go-skycube-pathtracer/pkg/material"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3         // The three vertices
	Material   material.Material // Material of the triangle
	normal     core.Vec3         // Cached normal vector
	area       float64           // Cached area
	bbox       AABB              // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices. The front face is the side
// the counter-clockwise winding V0→V1→V2 faces.
func NewTriangle(v0, v1, v2 core.Vec3, material material.Material) *Triangle {
	cross := v1.Subtract(v0).Cross(v2.Subtract(v0))
	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
		normal:   cross.Normalize(),
		area:     0.5 * cross.Length(),
		bbox:     NewAABBFromPoints(v0, v1, v2),
	}
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	const epsilon = 1e-12

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tParam := f * edge2.Dot(q)
	if tParam < tMin || tParam > tMax {
		return nil, false
	}

	hit := &material.SurfaceInteraction{
		T:        tParam,
		Point:    ray.At(tParam),
		Material: t.Material,
	}
	hit.SetFaceNormal(ray, t.normal)
	return hit, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() AABB {
	return t.bbox
}

// Normal returns the triangle's face normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Area returns the triangle's surface area
func (t *Triangle) Area() float64 {
	return t.area
}

// PointAt returns the point with barycentric weights (a, b, c) on V0, V1, V2
func (t *Triangle) PointAt(a, b, c float64) core.Vec3 {
	return t.V0.Multiply(a).Add(t.V1.Multiply(b)).Add(t.V2.Multiply(c))
}
