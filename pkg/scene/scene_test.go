package scene

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
	"github.com/df07/go-skycube-pathtracer/pkg/envmap"
	"github.com/df07/go-skycube-pathtracer/pkg/geometry"
	"github.com/df07/go-skycube-pathtracer/pkg/loaders"
	"github.com/df07/go-skycube-pathtracer/pkg/material"
	"github.com/df07/go-skycube-pathtracer/pkg/renderer"
)

type testLogger struct {
	lines []string
}

func (l *testLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

func testCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center: core.NewVec3(0, 0, 2),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40,
	}
}

func wallScene(t *testing.T) *Scene {
	t.Helper()
	wall := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	light := material.NewEmissive(core.NewVec3(4, 4, 4))
	tris := geometry.NewQuad(core.NewVec3(-1, -1, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), wall)
	tris = append(tris, geometry.NewQuad(core.NewVec3(-1, 2, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), light)...)

	s, err := NewScene("wall", testCamera(), tris, nil)
	if err != nil {
		t.Fatalf("NewScene failed: %v", err)
	}
	return s
}

func TestNewScene_Empty(t *testing.T) {
	_, err := NewScene("empty", testCamera(), nil, nil)
	if err == nil {
		t.Fatal("expected error for scene without geometry")
	}
}

func TestNewScene_LogsEmitterCount(t *testing.T) {
	logger := &testLogger{}
	light := material.NewEmissive(core.NewVec3(1, 1, 1))
	tris := geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), light)

	if _, err := NewScene("lit", testCamera(), tris, logger); err != nil {
		t.Fatalf("NewScene failed: %v", err)
	}

	found := false
	for _, line := range logger.lines {
		if strings.Contains(line, "light-emitting") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected emitter count to be logged, got %v", logger.lines)
	}
}

func TestScene_Intersect(t *testing.T) {
	s := wallScene(t)

	hit, ok := s.Intersect(core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("expected ray to hit the wall")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("expected t=2, got %f", hit.T)
	}

	if _, ok := s.Intersect(core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, 1))); ok {
		t.Error("expected ray pointing away to miss")
	}
}

func TestScene_Occluded(t *testing.T) {
	s := wallScene(t)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	tests := []struct {
		name        string
		maxDistance float64
		expected    bool
	}{
		{"wall before max distance", 3, true},
		{"wall beyond max distance", 1.5, false},
		{"zero distance", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Occluded(ray, tt.maxDistance); got != tt.expected {
				t.Errorf("Occluded(%f) = %v, want %v", tt.maxDistance, got, tt.expected)
			}
		})
	}
}

func TestScene_SampleEmissivePoint(t *testing.T) {
	s := wallScene(t)
	if !s.HasEmitters() {
		t.Fatal("expected scene to have emitters")
	}
	if s.Emitters().Len() != 2 {
		t.Errorf("expected 2 emissive triangles, got %d", s.Emitters().Len())
	}

	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	for i := 0; i < 100; i++ {
		sample, ok := s.SampleEmissivePoint(sampler)
		if !ok {
			t.Fatal("expected a sample")
		}
		if math.Abs(sample.Point.Y-2) > 1e-9 {
			t.Fatalf("sample %v not on the light", sample.Point)
		}
	}
}

func TestScene_NoEnvironmentOrMedium(t *testing.T) {
	s := wallScene(t)

	// Interfaces must be untyped nil so integrator checks work
	if s.Environment() != nil {
		t.Error("expected nil environment")
	}
	if s.Medium() != nil {
		t.Error("expected nil medium")
	}
}

func TestScene_WithEnvironmentAndMedium(t *testing.T) {
	s := wallScene(t)

	var faces [6]*loaders.ImageData
	for i := range faces {
		pixels := make([]core.Vec3, 16)
		for j := range pixels {
			pixels[j] = core.NewVec3(0.2, 0.4, 0.6)
		}
		faces[i] = &loaders.ImageData{Width: 4, Height: 4, Pixels: pixels}
	}
	cube, err := envmap.NewCubeMap(faces, envmap.Sponza)
	if err != nil {
		t.Fatalf("NewCubeMap failed: %v", err)
	}
	fog, err := NewHomogeneousMedium(core.NewVec3(0.1, 0.1, 0.1))
	if err != nil {
		t.Fatalf("NewHomogeneousMedium failed: %v", err)
	}

	lit := s.WithEnvironment(cube).WithMedium(fog)
	if lit.Environment() == nil || lit.Medium() == nil {
		t.Fatal("expected environment and medium to be set")
	}
	if s.Environment() != nil || s.Medium() != nil {
		t.Error("original scene should be unchanged")
	}

	color := lit.Environment().Lookup(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)))
	if color != core.NewVec3(0.2, 0.4, 0.6) {
		t.Errorf("unexpected sky color %v", color)
	}
}
