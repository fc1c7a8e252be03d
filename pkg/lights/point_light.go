package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight emits the same intensity in every direction from a single point.
// Intensity does not fall off with distance.
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{
		Position:  position,
		Intensity: intensity,
	}
}

// Type returns the light type
func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Sample returns the direction and intensity of the light as seen from point
func (pl *PointLight) Sample(point core.Vec3) LightSample {
	toLight := pl.Position.Subtract(point)
	return LightSample{
		Point:     pl.Position,
		Direction: toLight.Normalize(),
		Distance:  toLight.Length(),
		Emission:  pl.Intensity,
	}
}
