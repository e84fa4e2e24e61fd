package scene

import (
	"github.com/df07/go-skycube-pathtracer/pkg/core"
	"github.com/df07/go-skycube-pathtracer/pkg/geometry"
	"github.com/df07/go-skycube-pathtracer/pkg/material"
	"github.com/df07/go-skycube-pathtracer/pkg/renderer"
)

// NewCornellScene creates a Cornell box spanning [-1, 1] on every axis with its open
// side facing +Z, a ceiling light, a mirror block and a glass block
func NewCornellScene(logger core.Logger) (*Scene, error) {
	config := renderer.CameraConfig{
		Center: core.NewVec3(0, 0, 2.9), // Inside the sky cube, looking into the box
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40.0,
	}

	// Create materials
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewEmissive(core.NewVec3(15, 15, 15))
	mirror := material.NewMirror(core.NewVec3(0.9, 0.9, 0.9))
	glass := material.NewDielectric(1.5)

	var tris []*geometry.Triangle

	// Walls face into the box
	tris = append(tris, geometry.NewQuad(core.NewVec3(-1, -1, -1), core.NewVec3(0, 0, 2), core.NewVec3(2, 0, 0), white)...) // floor
	tris = append(tris, geometry.NewQuad(core.NewVec3(-1, 1, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), white)...)  // ceiling
	tris = append(tris, geometry.NewQuad(core.NewVec3(-1, -1, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), white)...) // back
	tris = append(tris, geometry.NewQuad(core.NewVec3(-1, -1, -1), core.NewVec3(0, 2, 0), core.NewVec3(0, 0, 2), red)...)   // left
	tris = append(tris, geometry.NewQuad(core.NewVec3(1, -1, -1), core.NewVec3(0, 0, 2), core.NewVec3(0, 2, 0), green)...)  // right

	// Ceiling light just below the ceiling, facing down
	tris = append(tris, geometry.NewQuad(core.NewVec3(-0.25, 0.999, -0.25), core.NewVec3(0.5, 0, 0), core.NewVec3(0, 0, 0.5), light)...)

	tris = append(tris, geometry.NewBox(core.NewVec3(-0.7, -1, -0.6), core.NewVec3(-0.1, 0.2, 0), mirror)...)
	tris = append(tris, geometry.NewBox(core.NewVec3(0.15, -1, 0.1), core.NewVec3(0.65, -0.5, 0.6), glass)...)

	return NewScene("cornell", config, tris, logger)
}
