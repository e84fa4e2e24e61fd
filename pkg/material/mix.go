package material

import (
	"math"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
)

// Mix represents a material that probabilistically chooses between two materials
type Mix struct {
	Material1 Material
	Material2 Material
	Ratio     float64 // 0.0 = all material1, 1.0 = all material2
}

// NewMix creates a new mix material
func NewMix(material1, material2 Material, ratio float64) *Mix {
	ratio = math.Max(0.0, math.Min(ratio, 1.0))

	return &Mix{
		Material1: material1,
		Material2: material2,
		Ratio:     ratio,
	}
}

// Emit blends the emission of both materials
func (m *Mix) Emit(hit *SurfaceInteraction, direction core.Vec3) core.Vec3 {
	e1 := m.Material1.Emit(hit, direction)
	e2 := m.Material2.Emit(hit, direction)
	return e1.Multiply(1.0 - m.Ratio).Add(e2.Multiply(m.Ratio))
}

// Scatter picks one of the two materials; the selection probability cancels against the
// blend weight so the chosen material's weight is returned unchanged
func (m *Mix) Scatter(hit *SurfaceInteraction, outgoing core.Vec3, sampler core.Sampler) (ScatterResult, bool) {
	if sampler.Get1D() < m.Ratio {
		return m.Material2.Scatter(hit, outgoing, sampler)
	}
	return m.Material1.Scatter(hit, outgoing, sampler)
}

// EvaluateBRDF evaluates the BRDF for specific incoming/outgoing directions
func (m *Mix) EvaluateBRDF(hit *SurfaceInteraction, incoming, outgoing core.Vec3) core.Vec3 {
	brdf1 := m.Material1.EvaluateBRDF(hit, incoming, outgoing)
	brdf2 := m.Material2.EvaluateBRDF(hit, incoming, outgoing)
	return brdf1.Multiply(1.0 - m.Ratio).Add(brdf2.Multiply(m.Ratio))
}

// Impulses returns the impulses of both materials
func (m *Mix) Impulses(hit *SurfaceInteraction, outgoing core.Vec3) []Impulse {
	var impulses []Impulse
	impulses = append(impulses, m.Material1.Impulses(hit, outgoing)...)
	return append(impulses, m.Material2.Impulses(hit, outgoing)...)
}
