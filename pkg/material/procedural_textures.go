package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CheckerTexture is a solid 3D checkerboard evaluated at the hit point, so it
// tiles evenly regardless of how the surface is parameterized
type CheckerTexture struct {
	Size  float64 // Edge length of one cube
	Even  core.Vec3
	Odd   core.Vec3
	Shift core.Vec3 // Offset applied to the point, keeps cube faces off flat surfaces
}

// NewCheckerTexture creates a solid checkerboard with cubes of the given size
func NewCheckerTexture(size float64, even, odd core.Vec3) *CheckerTexture {
	return &CheckerTexture{
		Size:  size,
		Even:  even,
		Odd:   odd,
		Shift: core.NewVec3(1e-4, 1e-4, 1e-4),
	}
}

// Evaluate returns Even or Odd depending on the parity of the cell containing point
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if c.Size <= 0 {
		return c.Even
	}

	p := point.Add(c.Shift).Multiply(1 / c.Size)
	sum := int(math.Floor(p.X)) + int(math.Floor(p.Y)) + int(math.Floor(p.Z))
	if sum%2 == 0 {
		return c.Even
	}
	return c.Odd
}

// NewCheckerboardTexture creates an image checkerboard of checkSize-pixel squares
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/checkSize+y/checkSize)%2 == 0 {
				pixels[y*width+x] = color1
			} else {
				pixels[y*width+x] = color2
			}
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewUVDebugTexture creates a texture showing texture coordinates as colors.
// u maps to red and v to green, with v = 0 along the bottom row.
func NewUVDebugTexture(width, height int) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			u := float64(x) / float64(max(1, width-1))
			v := 1 - float64(y)/float64(max(1, height-1))
			pixels[y*width+x] = core.NewVec3(u, v, 0.0)
		}
	}

	return NewImageTexture(width, height, pixels)
}
