package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
)

func TestMirror_Reflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	mirror := NewMirror(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	hit := &SurfaceInteraction{Normal: core.NewVec3(0, 1, 0), FrontFace: true, Material: mirror}
	// Viewer up and to the left; reflection goes up and to the right
	outgoing := core.NewVec3(-1, 1, 0).Normalize()
	expected := core.NewVec3(1, 1, 0).Normalize()

	scatter, ok := mirror.Scatter(hit, outgoing, sampler)
	if !ok {
		t.Fatal("Mirror should scatter")
	}
	if scatter.Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected reflection %v, got %v", expected, scatter.Direction)
	}
	if scatter.Weight != albedo {
		t.Errorf("Expected weight %v, got %v", albedo, scatter.Weight)
	}

	impulses := hit.SpecularImpulses(outgoing)
	if len(impulses) != 1 {
		t.Fatalf("Expected one impulse, got %d", len(impulses))
	}
	if impulses[0].Direction.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Impulse direction %v does not match reflection %v", impulses[0].Direction, expected)
	}

	if !mirror.EvaluateBRDF(hit, expected, outgoing).IsBlack() {
		t.Error("Mirror has no finite scattering density")
	}
}
