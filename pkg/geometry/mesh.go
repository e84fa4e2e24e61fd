package geometry

import (
	"github.com/df07/go-skycube-pathtracer/pkg/core"
	"github.com/df07/go-skycube-pathtracer/pkg/material"
)

// NewQuad splits the parallelogram corner + s·u + t·v into two triangles.
// The front face points along u × v.
func NewQuad(corner, u, v core.Vec3, mat material.Material) []*Triangle {
	p1 := corner.Add(u)
	p2 := corner.Add(u).Add(v)
	p3 := corner.Add(v)
	return []*Triangle{
		NewTriangle(corner, p1, p2, mat),
		NewTriangle(corner, p2, p3, mat),
	}
}

// NewBox creates an axis-aligned box spanning min..max with outward-facing triangles
func NewBox(min, max core.Vec3, mat material.Material) []*Triangle {
	d := max.Subtract(min)
	dx := core.NewVec3(d.X, 0, 0)
	dy := core.NewVec3(0, d.Y, 0)
	dz := core.NewVec3(0, 0, d.Z)

	var tris []*Triangle
	tris = append(tris, NewQuad(min, dz, dy, mat)...)                               // -X
	tris = append(tris, NewQuad(core.NewVec3(max.X, min.Y, min.Z), dy, dz, mat)...) // +X
	tris = append(tris, NewQuad(min, dx, dz, mat)...)                               // -Y
	tris = append(tris, NewQuad(core.NewVec3(min.X, max.Y, min.Z), dz, dx, mat)...) // +Y
	tris = append(tris, NewQuad(min, dy, dx, mat)...)                               // -Z
	tris = append(tris, NewQuad(core.NewVec3(min.X, min.Y, max.Z), dx, dy, mat)...) // +Z
	return tris
}

// Shapes converts triangles to the Shape interface for BVH construction
func Shapes(tris []*Triangle) []Shape {
	shapes := make([]Shape, len(tris))
	for i, tri := range tris {
		shapes[i] = tri
	}
	return shapes
}
