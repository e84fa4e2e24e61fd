package geometry

import (
	"sort"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
	"github.com/df07/go-skycube-pathtracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape // Multiple shapes for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It is immutable after construction and safe for concurrent queries.
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{Root: nil}
	}

	// Sorting happens in place, so work on a copy
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{
		Root: buildBVH(shapesCopy),
	}
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// buildBVH recursively builds the BVH with a median split along the longest axis
func buildBVH(shapes []Shape) *BVHNode {
	boundingBox := shapes[0].BoundingBox()
	for i := 1; i < len(shapes); i++ {
		boundingBox = boundingBox.Union(shapes[i].BoundingBox())
	}

	if len(shapes) <= leafThreshold {
		return &BVHNode{
			BoundingBox: boundingBox,
			Shapes:      shapes,
		}
	}

	axis := boundingBox.LongestAxis()
	sort.Slice(shapes, func(i, j int) bool {
		return shapes[i].BoundingBox().Center().Component(axis) < shapes[j].BoundingBox().Center().Component(axis)
	})

	mid := len(shapes) / 2
	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(shapes[:mid]),
		Right:       buildBVH(shapes[mid:]),
	}
}

// Hit finds the nearest intersection within [tMin, tMax]
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.hitNode(bvh.Root, ray, tMin, tMax)
}

// hitNode recursively tests ray intersection with BVH nodes
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil, false
	}

	var closestHit *material.SurfaceInteraction
	closestSoFar := tMax

	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
				closestSoFar = hit.T
				closestHit = hit
			}
		}
		return closestHit, closestHit != nil
	}

	for _, child := range []*BVHNode{node.Left, node.Right} {
		if child == nil {
			continue
		}
		if hit, isHit := bvh.hitNode(child, ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// Occluded reports whether any shape intersects the ray within [tMin, tMax].
// It stops at the first hit rather than searching for the nearest one.
func (bvh *BVH) Occluded(ray core.Ray, tMin, tMax float64) bool {
	if bvh.Root == nil {
		return false
	}
	return bvh.occludedNode(bvh.Root, ray, tMin, tMax)
}

func (bvh *BVH) occludedNode(node *BVHNode, ray core.Ray, tMin, tMax float64) bool {
	if node == nil || !node.BoundingBox.Hit(ray, tMin, tMax) {
		return false
	}
	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if _, isHit := shape.Hit(ray, tMin, tMax); isHit {
				return true
			}
		}
		return false
	}
	return bvh.occludedNode(node.Left, ray, tMin, tMax) || bvh.occludedNode(node.Right, ray, tMin, tMax)
}
