package scene

import (
	"fmt"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
)

// HomogeneousMedium absorbs light at the same rate everywhere in the scene
type HomogeneousMedium struct {
	Extinction core.Vec3 // Per-channel extinction coefficient σ per unit distance
}

// NewHomogeneousMedium creates a medium with per-channel extinction coefficients
func NewHomogeneousMedium(extinction core.Vec3) (*HomogeneousMedium, error) {
	if extinction.X < 0 || extinction.Y < 0 || extinction.Z < 0 {
		return nil, fmt.Errorf("extinction must not be negative, got %v", extinction)
	}
	return &HomogeneousMedium{Extinction: extinction}, nil
}

// Transmittance returns exp(-σ·d)
func (m *HomogeneousMedium) Transmittance(distance float64) core.Vec3 {
	return m.Extinction.Multiply(-distance).Exp()
}
