package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// SampleCosineHemisphere generates a cosine-weighted random direction in hemisphere around normal.
// The returned pdf is cos(θ)/π.
func SampleCosineHemisphere(normal Vec3, sample Vec2) (Vec3, float64) {
	a := 2.0 * math.Pi * sample.X
	z := sample.Y
	r := math.Sqrt(z)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	zCoord := math.Sqrt(1.0 - z)

	tangent, bitangent := OrthonormalBasis(normal)

	direction := tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(zCoord))
	return direction, zCoord / math.Pi
}

// OrthonormalBasis returns two unit vectors perpendicular to normal and to each other
func OrthonormalBasis(normal Vec3) (Vec3, Vec3) {
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}
	tangent := nt.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)
	return tangent, bitangent
}

// SamplePolarDisk maps a sample pair to a point in a disk of the given radius using
// a uniform radius and a uniform angle. Points cluster toward the center.
func SamplePolarDisk(radius float64, sample Vec2) Vec2 {
	r := sample.X * radius
	theta := sample.Y * 2.0 * math.Pi
	return NewVec2(r*math.Cos(theta), r*math.Sin(theta))
}

// UniformTriangleBarycentrics returns area-uniform barycentric weights (a, b, c)
// using a = 1-√t, b = (1-s)√t, c = s√t.
func UniformTriangleBarycentrics(sample Vec2) (float64, float64, float64) {
	s, t := sample.X, sample.Y
	sqrtT := math.Sqrt(t)
	return 1.0 - sqrtT, (1.0 - s) * sqrtT, s * sqrtT
}
