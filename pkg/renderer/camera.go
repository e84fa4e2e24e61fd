package renderer

import (
	"image"
	"math"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera is looking at
	Up     core.Vec3 // Up direction (usually (0,1,0))
	VFov   float64   // Vertical field of view in degrees
}

// Camera is a pinhole camera. Pixel coordinates run right and down from the
// viewport's minimum corner; the aspect ratio follows the viewport.
type Camera struct {
	origin     core.Vec3
	u, v, w    core.Vec3 // Right, up and backward unit vectors
	halfHeight float64   // tan(vfov/2)
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180.0
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	return &Camera{
		origin:     config.Center,
		u:          u,
		v:          v,
		w:          w,
		halfHeight: math.Tan(theta / 2),
	}
}

// Forward returns the viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// direction returns the unit direction through the image point (px, py)
func (c *Camera) direction(px, py float64, viewport image.Rectangle) core.Vec3 {
	width := float64(viewport.Dx())
	height := float64(viewport.Dy())
	halfWidth := c.halfHeight * width / height

	sx := (2*(px-float64(viewport.Min.X))/width - 1) * halfWidth
	sy := (1 - 2*(py-float64(viewport.Min.Y))/height) * c.halfHeight

	return c.u.Multiply(sx).Add(c.v.Multiply(sy)).Subtract(c.w).Normalize()
}

// PrimaryRay returns the eye ray through the image point (px, py)
func (c *Camera) PrimaryRay(px, py float64, viewport image.Rectangle) core.Ray {
	return core.NewRay(c.origin, c.direction(px, py, viewport))
}

// DOFRay returns a ray from the lens offset (lensX, lensY) through the point where the
// pinhole ray for (px, py) meets the focus plane at focusDistance along the view axis
func (c *Camera) DOFRay(px, py, lensX, lensY float64, viewport image.Rectangle, focusDistance float64) core.Ray {
	dir := c.direction(px, py, viewport)
	focus := c.origin.Add(dir.Multiply(focusDistance / dir.Dot(c.Forward())))

	lens := c.origin.Add(c.u.Multiply(lensX)).Add(c.v.Multiply(lensY))
	return core.NewRay(lens, focus.Subtract(lens).Normalize())
}
