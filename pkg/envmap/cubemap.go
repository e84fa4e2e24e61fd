package envmap

import (
	"fmt"
	"math"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
	"github.com/df07/go-skycube-pathtracer/pkg/loaders"
)

// HalfExtent is the half side length of the environment cube centered at the origin
const HalfExtent = 3.0

// Face identifies one side of the environment cube
type Face int

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

var faceNames = [6]string{"+x", "-x", "+y", "-y", "+z", "-z"}

func (f Face) String() string {
	if f < FacePosX || f > FaceNegZ {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceNames[f]
}

// CubeMap is an environment of six face images around the scene. It is never
// mutated after construction and may be read from any number of goroutines.
type CubeMap struct {
	faces      [6]*loaders.ImageData
	set        SkySet
	halfExtent float64
}

// NewCubeMap builds a cube map from face images in +x, -x, +y, -y, +z, -z order
func NewCubeMap(faces [6]*loaders.ImageData, set SkySet) (*CubeMap, error) {
	for i, face := range faces {
		if face == nil || face.Width == 0 || face.Height == 0 {
			return nil, fmt.Errorf("cube map face %s has no image", Face(i))
		}
	}
	return &CubeMap{faces: faces, set: set, halfExtent: HalfExtent}, nil
}

// Set returns which sky set the faces came from
func (c *CubeMap) Set() SkySet {
	return c.set
}

// Face returns the image of one face
func (c *CubeMap) Face(f Face) *loaders.ImageData {
	return c.faces[f]
}

// Lookup returns the radiance of the environment seen along ray. Directions that
// select no face return white.
func (c *CubeMap) Lookup(ray core.Ray) core.Vec3 {
	face, p, ok := SelectFace(ray, c.halfExtent)
	if !ok {
		return core.NewVec3(1, 1, 1)
	}
	return c.texel(face, p)
}

// SelectFace finds the face a ray leaves the cube of half extent d through and the
// in-plane point where it crosses that face. Only the face on the side of each nonzero
// direction component is tested, in x, y, z order; the first in-bounds point wins.
func SelectFace(ray core.Ray, d float64) (Face, core.Vec2, bool) {
	o, dir := ray.Origin, ray.Direction

	for axis := 0; axis < 3; axis++ {
		component := dir.Component(axis)
		if component == 0 {
			continue
		}

		face := Face(2 * axis)
		plane := d
		if component < 0 {
			face++
			plane = -d
		}

		t := (plane - o.Component(axis)) / component
		hit := o.Add(dir.Multiply(t))
		p := facePoint(face, hit)

		if inBounds(p, d) {
			return face, p, true
		}
	}
	return 0, core.Vec2{}, false
}

// facePoint projects a point on a face plane to that face's 2-D image orientation
func facePoint(face Face, p core.Vec3) core.Vec2 {
	switch face {
	case FacePosX:
		return core.NewVec2(p.Z, p.Y)
	case FaceNegX:
		return core.NewVec2(-p.Z, p.Y)
	case FacePosY, FaceNegY:
		return core.NewVec2(p.X, p.Z)
	case FacePosZ:
		return core.NewVec2(-p.X, p.Y)
	default:
		return core.NewVec2(p.X, p.Y)
	}
}

func inBounds(p core.Vec2, d float64) bool {
	return p.X >= -d && p.X <= d && p.Y >= -d && p.Y <= d
}

// texel samples a face at an in-plane point. Row 0 is the top of the face; the
// outermost row and column on every side are never sampled.
func (c *CubeMap) texel(face Face, p core.Vec2) core.Vec3 {
	img := c.faces[face]
	d := c.halfExtent

	tx := p.X + d
	ty := d - p.Y

	x := clampTexel(int(math.Floor(tx*float64(img.Width)/(2*d))), img.Width)
	y := clampTexel(int(math.Floor(ty*float64(img.Height)/(2*d))), img.Height)
	return img.At(x, y)
}

// clampTexel keeps an index inside [1, size-2], falling back to the valid range
// for faces too small to have an interior
func clampTexel(i, size int) int {
	lo, hi := 1, size-2
	if hi < lo {
		lo, hi = 0, size-1
	}
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}
