package renderer

import (
	"fmt"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DisplayGamma is the gamma applied after tone mapping
const DisplayGamma = 2.2

// ToneMapper converts unbounded linear radiance to display values in [0, 1]
type ToneMapper interface {
	Map(c core.Vec3) core.Vec3
}

// ReinhardToneMapper scales every channel by e/(e+L) where L is the pixel
// luminance, so bright pixels are compressed while hue is preserved.
type ReinhardToneMapper struct {
	Exposure float64
	Gamma    float64
}

// NewReinhardToneMapper creates a Reinhard operator with display gamma
func NewReinhardToneMapper(exposure float64) *ReinhardToneMapper {
	return &ReinhardToneMapper{Exposure: exposure, Gamma: DisplayGamma}
}

// Map applies the operator to one linear color
func (r *ReinhardToneMapper) Map(c core.Vec3) core.Vec3 {
	c = c.Clamp(0, maxFinite)
	denom := r.Exposure + c.Luminance()
	if denom <= 0 {
		return core.Vec3{}
	}

	mapped := c.Multiply(r.Exposure / denom)
	return mapped.Clamp(0, 1).GammaCorrect(r.Gamma)
}

// ClampToneMapper scales by exposure and clips each channel to [0, 1]
type ClampToneMapper struct {
	Exposure float64
	Gamma    float64
}

// NewClampToneMapper creates a clamping operator with display gamma
func NewClampToneMapper(exposure float64) *ClampToneMapper {
	return &ClampToneMapper{Exposure: exposure, Gamma: DisplayGamma}
}

// Map applies the operator to one linear color
func (c *ClampToneMapper) Map(radiance core.Vec3) core.Vec3 {
	return radiance.Multiply(c.Exposure).Clamp(0, 1).GammaCorrect(c.Gamma)
}

// maxFinite keeps infinities out of the luminance sum
const maxFinite = 1e300

// NewToneMapper returns the operator registered under name
func NewToneMapper(name string, exposure float64) (ToneMapper, error) {
	switch name {
	case "", scene.ToneMapReinhard:
		return NewReinhardToneMapper(exposure), nil
	case scene.ToneMapClamp:
		return NewClampToneMapper(exposure), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownToneMapper, name)
	}
}

// toRGBA quantizes a display color in [0, 1] to 8 bits per channel
func toRGBA(c core.Vec3) color.RGBA {
	c = c.Clamp(0, 1)
	return color.RGBA{
		R: uint8(255*c.X + 0.5),
		G: uint8(255*c.Y + 0.5),
		B: uint8(255*c.Z + 0.5),
		A: 255,
	}
}
