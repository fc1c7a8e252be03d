package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCylinderScene creates a scene with open cylinders in several orientations
func NewCylinderScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := mergeCameraConfig(geometry.CameraConfig{
		Position: core.NewVec3(0, 1.5, 4),
		LookAt:   core.NewVec3(0, 1, 0),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     50.0,
		Width:    400,
		Height:   300,
	}, cameraOverrides)

	s := NewScene(cameraConfig)
	s.Background = core.NewVec3(0.1, 0.1, 0.15)
	s.SamplingConfig.SamplesPerPixel = 4
	s.SamplingConfig.MaxDepth = 4

	white := core.NewVec3(1, 1, 1)
	gray := material.NewPhong(0.2, 0.7, 0.0, 1, core.NewVec3(0.5, 0.5, 0.5), white)
	red := material.NewPhong(0.1, 0.8, 0.3, 24, core.NewVec3(0.8, 0.2, 0.2), white)
	// The lying cylinder shows its (u, v) mapping as red and green
	uvMapped := material.NewPhong(0.1, 0.8, 0.3, 24, core.NewVec3(0.2, 0.2, 0.8), white).
		WithTexture(material.NewUVDebugTexture(64, 64))
	gold := material.NewPhong(0.1, 0.5, 0.8, 64, core.NewVec3(0.8, 0.6, 0.2), core.NewVec3(1, 0.9, 0.6)).
		WithReflection(0.4)
	glass := material.NewPhong(0, 0.05, 0.9, 256, white, white).WithRefraction(1.5)

	addGroundTriangles(s, core.NewVec3(0, 0, 0), 30, gray)

	s.Add(
		// Gold tube pointing toward the camera so its open end is visible
		geometry.NewCylinder(core.NewVec3(-0.15, 1.1, 0.25), core.NewVec3(0.3, 0.2, 3.5), 0.35, 1.75, gold),
		// Upright
		geometry.NewCylinder(core.NewVec3(1.8, 1, 0), core.NewVec3(0, 1, 0), 0.5, 1, red),
		// Lying along X
		geometry.NewCylinder(core.NewVec3(-2, 0.3, 0), core.NewVec3(1, 0, 0), 0.3, 0.5, uvMapped),
		// Short glass cylinder in front
		geometry.NewCylinder(core.NewVec3(0.5, 0.3, 1), core.NewVec3(0, 1, 0), 0.2, 0.3, glass),
	)

	s.AddPointLight(core.NewVec3(3, 5, 3), core.NewVec3(0.9, 0.9, 0.9))

	return s
}
