package scene

import (
	"github.com/df07/go-skycube-pathtracer/pkg/core"
	"github.com/df07/go-skycube-pathtracer/pkg/geometry"
	"github.com/df07/go-skycube-pathtracer/pkg/material"
	"github.com/df07/go-skycube-pathtracer/pkg/renderer"
)

// NewSkylitScene creates an open ground plane with a few blocks and no emitters,
// meant to be lit by a cube map sky
func NewSkylitScene(logger core.Logger) (*Scene, error) {
	config := renderer.CameraConfig{
		Center: core.NewVec3(0, 0.6, 2.5),
		LookAt: core.NewVec3(0, -0.4, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   50.0,
	}

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	clay := material.NewLambertian(core.NewVec3(0.8, 0.45, 0.3))
	chrome := material.NewMirror(core.NewVec3(0.95, 0.95, 0.95))
	glass := material.NewDielectric(1.5)
	blend := material.NewMix(clay, chrome, 0.3)

	var tris []*geometry.Triangle

	// Ground quad facing up, kept inside the sky cube
	tris = append(tris, geometry.NewQuad(core.NewVec3(-2.5, -1, -2.5), core.NewVec3(0, 0, 5), core.NewVec3(5, 0, 0), ground)...)

	tris = append(tris, geometry.NewBox(core.NewVec3(-1.2, -1, -0.8), core.NewVec3(-0.5, 0.1, -0.1), clay)...)
	tris = append(tris, geometry.NewBox(core.NewVec3(-0.2, -1, -0.4), core.NewVec3(0.4, -0.4, 0.2), glass)...)
	tris = append(tris, geometry.NewBox(core.NewVec3(0.7, -1, -1.0), core.NewVec3(1.3, -0.1, -0.4), chrome)...)
	tris = append(tris, geometry.NewBox(core.NewVec3(0.5, -1, 0.4), core.NewVec3(0.9, -0.6, 0.8), blend)...)

	return NewScene("skylit", config, tris, logger)
}
