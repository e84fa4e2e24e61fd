package renderer

import (
	"image"
	"math"
	"testing"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
)

func newTestCamera() *Camera {
	return NewCamera(CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90.0,
	})
}

func vecClose(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance && math.Abs(a.Y-b.Y) <= tolerance && math.Abs(a.Z-b.Z) <= tolerance
}

func TestCamera_PrimaryRay(t *testing.T) {
	camera := newTestCamera()
	viewport := image.Rect(0, 0, 200, 100)
	s2 := 1 / math.Sqrt(2)
	s5 := 1 / math.Sqrt(5)
	s6 := 1 / math.Sqrt(6)

	tests := []struct {
		name   string
		px, py float64
		want   core.Vec3
	}{
		{"center", 100, 50, core.NewVec3(0, 0, -1)},
		// vfov 90 gives a half height of 1; the 2:1 viewport a half width of 2
		{"top edge", 100, 0, core.NewVec3(0, s2, -s2)},
		{"bottom edge", 100, 100, core.NewVec3(0, -s2, -s2)},
		{"left edge", 0, 50, core.NewVec3(-2*s5, 0, -s5)},
		{"top right corner", 200, 0, core.NewVec3(2*s6, s6, -s6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.PrimaryRay(tt.px, tt.py, viewport)
			if ray.Origin != (core.Vec3{}) {
				t.Errorf("Expected origin at camera center, got %v", ray.Origin)
			}
			if !vecClose(ray.Direction, tt.want, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.want, ray.Direction)
			}
		})
	}
}

func TestCamera_ViewportOffset(t *testing.T) {
	camera := newTestCamera()
	a := camera.PrimaryRay(10, 20, image.Rect(0, 0, 64, 64))
	b := camera.PrimaryRay(110, 70, image.Rect(100, 50, 164, 114))
	if !vecClose(a.Direction, b.Direction, 1e-12) {
		t.Errorf("Same relative pixel should give the same ray: %v vs %v", a.Direction, b.Direction)
	}
}

func TestCamera_DOFRay(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center: core.NewVec3(0, 1, 5),
		LookAt: core.NewVec3(0, 1, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	})
	viewport := image.Rect(0, 0, 80, 60)
	const focus = 4.8

	t.Run("centered lens matches pinhole", func(t *testing.T) {
		pinhole := camera.PrimaryRay(13.5, 40.25, viewport)
		dof := camera.DOFRay(13.5, 40.25, 0, 0, viewport, focus)
		if !vecClose(pinhole.Origin, dof.Origin, 1e-12) || !vecClose(pinhole.Direction, dof.Direction, 1e-12) {
			t.Errorf("Expected %v, got %v", pinhole, dof)
		}
	})

	t.Run("offset lens converges on focus plane", func(t *testing.T) {
		pinhole := camera.PrimaryRay(60, 10, viewport)
		// Point where the pinhole ray crosses the plane focus units in front of the camera
		tFocus := focus / pinhole.Direction.Dot(camera.Forward())
		target := pinhole.At(tFocus)

		for _, lens := range []core.Vec2{core.NewVec2(0.05, 0), core.NewVec2(-0.03, 0.04), core.NewVec2(0, -0.1)} {
			ray := camera.DOFRay(60, 10, lens.X, lens.Y, viewport, focus)
			if math.Abs(ray.Direction.Length()-1) > 1e-12 {
				t.Errorf("Direction not normalized: %v", ray.Direction)
			}
			if vecClose(ray.Origin, pinhole.Origin, 1e-6) {
				t.Errorf("Lens offset %v did not move the origin", lens)
			}
			// Distance from target to the ray's line
			toTarget := target.Subtract(ray.Origin)
			along := toTarget.Dot(ray.Direction)
			miss := toTarget.Subtract(ray.Direction.Multiply(along)).Length()
			if miss > 1e-9 {
				t.Errorf("Lens offset %v: ray misses the focus point by %g", lens, miss)
			}
		}
	})
}
