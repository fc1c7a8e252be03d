package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 is the top of the image
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the texture at given UV coordinates using bilinear filtering.
// UV is clamped to [0, 1]; V=0 is the bottom row and V=1 the top row of the image.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return core.Vec3{}
	}

	u := math.Max(0, math.Min(1, uv.X))
	v := math.Max(0, math.Min(1, uv.Y))

	// Continuous pixel coordinates, flipping V for top-left image origin
	fx := u * float64(t.Width-1)
	fy := (1.0 - v) * float64(t.Height-1)

	x0 := int(fx)
	y0 := int(fy)
	x1 := min(x0+1, t.Width-1)
	y1 := min(y0+1, t.Height-1)

	tx := fx - float64(x0)
	ty := fy - float64(y0)

	c00 := t.pixel(x0, y0)
	c10 := t.pixel(x1, y0)
	c01 := t.pixel(x0, y1)
	c11 := t.pixel(x1, y1)

	top := c00.Multiply(1 - tx).Add(c10.Multiply(tx))
	bottom := c01.Multiply(1 - tx).Add(c11.Multiply(tx))
	return top.Multiply(1 - ty).Add(bottom.Multiply(ty))
}

func (t *ImageTexture) pixel(x, y int) core.Vec3 {
	return t.Pixels[y*t.Width+x]
}
