package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestSampleCosineHemisphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(0, 0, -1),
		NewVec3(1, 1, 1).Normalize(),
	}

	for _, normal := range normals {
		for i := 0; i < 500; i++ {
			direction, pdf := SampleCosineHemisphere(normal, sampler.Get2D())

			if math.Abs(direction.Length()-1.0) > 1e-9 {
				t.Fatalf("Direction should be unit length, got %f", direction.Length())
			}

			cosTheta := direction.Dot(normal)
			if cosTheta < -1e-9 {
				t.Fatalf("Direction %v below hemisphere of %v", direction, normal)
			}

			if math.Abs(pdf-cosTheta/math.Pi) > 1e-9 {
				t.Fatalf("PDF mismatch: got %f, expected %f", pdf, cosTheta/math.Pi)
			}
		}
	}
}

func TestSamplePolarDisk(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(7)))
	radius := 0.1

	inner := 0
	const n = 10000
	for i := 0; i < n; i++ {
		p := SamplePolarDisk(radius, sampler.Get2D())
		r := math.Sqrt(p.X*p.X + p.Y*p.Y)
		if r > radius+1e-12 {
			t.Fatalf("Point %v outside disk of radius %f", p, radius)
		}
		if r < radius/2 {
			inner++
		}
	}

	// Uniform radius puts half the samples inside r/2 (area-uniform would give a quarter)
	fraction := float64(inner) / n
	if math.Abs(fraction-0.5) > 0.03 {
		t.Errorf("Expected ~50%% of samples inside half radius, got %.3f", fraction)
	}
}

func TestUniformTriangleBarycentrics(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(3)))
	for i := 0; i < 1000; i++ {
		a, b, c := UniformTriangleBarycentrics(sampler.Get2D())
		if a < 0 || b < 0 || c < 0 {
			t.Fatalf("Negative barycentric (%f, %f, %f)", a, b, c)
		}
		if math.Abs(a+b+c-1.0) > 1e-12 {
			t.Fatalf("Barycentrics should sum to 1, got %f", a+b+c)
		}
	}

	a, b, c := UniformTriangleBarycentrics(NewVec2(0.5, 0))
	if a != 1 || b != 0 || c != 0 {
		t.Errorf("t=0 should map to first vertex, got (%f, %f, %f)", a, b, c)
	}
}
