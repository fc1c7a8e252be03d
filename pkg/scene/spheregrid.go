package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	lp := l + 0.3963377774*a + 0.2158037573*b
	mp := l - 0.1055613458*a - 0.0638541728*b
	sp := l - 0.0894841775*a - 1.2914855480*b
	lp, mp, sp = lp*lp*lp, mp*mp*mp, sp*sp*sp

	// LMS to linear RGB
	return core.NewVec3(
		+4.0767416621*lp-3.3077115913*mp+0.2309699292*sp,
		-1.2684380046*lp+2.6097574011*mp-0.3413193965*sp,
		-0.0041960863*lp-0.7034186147*mp+1.7076147010*sp,
	).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of colored spheres. It has enough
// primitives to make the BVH worthwhile.
func NewSphereGridScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := mergeCameraConfig(geometry.CameraConfig{
		Position: core.NewVec3(4.5, 6, 18),
		LookAt:   core.NewVec3(4.5, 0.8, 4.5),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40.0,
		Width:    640,
		Height:   360,
	}, cameraOverrides)

	s := NewScene(cameraConfig)
	s.Background = core.NewVec3(0.5, 0.7, 1.0)
	s.SamplingConfig.SamplesPerPixel = 2
	s.SamplingConfig.MaxDepth = 3
	s.SplitStrategy = geometry.SplitLongestAxis

	addGroundTriangles(s, core.NewVec3(4.5, 0, 4.5), 60,
		material.NewPhong(0.2, 0.7, 0, 1, core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(1, 1, 1)))

	gridSize := 20
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			// Hue varies along X, chroma along Z
			hue := float64(i) / float64(gridSize-1) * 360.0
			chroma := 0.05 + float64(j)/float64(gridSize-1)*0.2
			lightness := 0.65 + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			mat := material.NewPhong(0.1, 0.7, 0.5, 48, color, core.NewVec3(1, 1, 1))
			if (i+j)%3 == 0 {
				mat = mat.WithReflection(0.5)
			}
			s.Add(geometry.NewSphere(core.NewVec3(x, radius, z), radius, mat))
		}
	}

	s.AddPointLight(core.NewVec3(20, 25, 20), core.NewVec3(0.9, 0.88, 0.8))

	return s
}
