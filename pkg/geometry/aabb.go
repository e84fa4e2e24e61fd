package geometry

import (
	"math"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min core.Vec3 // Minimum corner
	Max core.Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max core.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...core.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	lo := points[0]
	hi := points[0]
	for _, point := range points[1:] {
		lo = core.NewVec3(math.Min(lo.X, point.X), math.Min(lo.Y, point.Y), math.Min(lo.Z, point.Z))
		hi = core.NewVec3(math.Max(hi.X, point.X), math.Max(hi.Y, point.Y), math.Max(hi.Z, point.Z))
	}

	return AABB{Min: lo, Max: hi}
}

// Hit tests if a ray intersects with this AABB using the slab method
func (aabb AABB) Hit(ray core.Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		lo := aabb.Min.Component(axis)
		hi := aabb.Max.Component(axis)
		origin := ray.Origin.Component(axis)
		direction := ray.Direction.Component(axis)

		// Ray parallel to this slab
		if math.Abs(direction) < 1e-12 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (lo - origin) * invDirection
		t2 := (hi - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}

// Union returns an AABB that bounds both boxes
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: core.NewVec3(math.Min(aabb.Min.X, other.Min.X), math.Min(aabb.Min.Y, other.Min.Y), math.Min(aabb.Min.Z, other.Min.Z)),
		Max: core.NewVec3(math.Max(aabb.Max.X, other.Max.X), math.Max(aabb.Max.Y, other.Max.Y), math.Max(aabb.Max.Z, other.Max.Z)),
	}
}

// Center returns the center point of the box
func (aabb AABB) Center() core.Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Max.Subtract(aabb.Min)
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}
