package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Framebuffer holds linear radiance per pixel. Row 0 is the top of the image
// and x grows to the right.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, len == Width*Height
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the radiance of pixel (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

// Set stores the radiance of pixel (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[y*fb.Width+x] = c
}

// ToRGBA tone maps every pixel into an 8-bit image with the same orientation
func (fb *Framebuffer) ToRGBA(tm ToneMapper) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, toRGBA(tm.Map(fb.At(x, y))))
		}
	}
	return img
}
