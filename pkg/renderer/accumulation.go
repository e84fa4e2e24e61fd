package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-skycube-pathtracer/pkg/core"
)

// AccumulationBuffer holds the running mean of every pass for each pixel. Each row
// is written by a single worker during a pass; readers must wait for the pass to end.
type AccumulationBuffer struct {
	width, height int
	pixels        []core.Vec3
}

// NewAccumulationBuffer creates a black buffer of the given size
func NewAccumulationBuffer(width, height int) *AccumulationBuffer {
	return &AccumulationBuffer{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the buffer width in pixels
func (b *AccumulationBuffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels
func (b *AccumulationBuffer) Height() int {
	return b.height
}

// Accumulate folds the sample of pass (0-indexed) into the running mean of pixel (x, y)
func (b *AccumulationBuffer) Accumulate(x, y, pass int, sample core.Vec3) {
	i := y*b.width + x
	n := float64(pass)
	b.pixels[i] = b.pixels[i].Multiply(n / (n + 1)).Add(sample.Multiply(1 / (n + 1)))
}

// Color returns the current mean of pixel (x, y)
func (b *AccumulationBuffer) Color(x, y int) core.Vec3 {
	return b.pixels[y*b.width+x]
}

// Image converts the buffer to 8-bit color with gamma 2
func (b *AccumulationBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			img.SetRGBA(x, y, vec3ToColor(b.Color(x, y)))
		}
	}
	return img
}

// vec3ToColor converts a linear radiance value to a display color
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	// Clamp to valid color range
	colorVec = colorVec.Clamp(0.0, 1.0)

	// Apply gamma correction (gamma = 2.0)
	colorVec = colorVec.GammaCorrect(2.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
