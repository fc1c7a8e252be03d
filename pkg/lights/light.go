package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint LightType = "point"
)

// Light is a source of direct illumination
type Light interface {
	Type() LightType

	// Sample returns the light arriving at point
	Sample(point core.Vec3) LightSample
}

// LightSample describes the light arriving at a shading point
type LightSample struct {
	Point     core.Vec3 // Position of the light
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light
	Emission  core.Vec3 // Intensity arriving at the shading point
}
