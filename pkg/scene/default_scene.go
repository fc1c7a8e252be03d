package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates a scene with a matte, a mirror and a glass sphere on a floor
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := mergeCameraConfig(geometry.CameraConfig{
		Position: core.NewVec3(0, 1.2, 4.5),
		LookAt:   core.NewVec3(0, 0.6, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     45.0,
		Width:    400,
		Height:   300,
	}, cameraOverrides)

	s := NewScene(cameraConfig)
	s.Background = core.NewVec3(0.25, 0.35, 0.5)
	s.SamplingConfig.SamplesPerPixel = 4
	s.SamplingConfig.MaxDepth = 5

	white := core.NewVec3(1, 1, 1)
	red := material.NewPhong(0.1, 0.8, 0.4, 32, core.NewVec3(0.8, 0.2, 0.15), white)
	mirror := material.NewPhong(0.05, 0.1, 0.8, 128, core.NewVec3(0.9, 0.9, 0.9), white).WithReflection(0.85)
	glass := material.NewPhong(0.0, 0.05, 0.9, 256, core.NewVec3(1, 1, 1), white).
		WithReflection(0.1).
		WithRefraction(1.5)
	floor := material.NewPhong(0.15, 0.7, 0.1, 8, core.NewVec3(0.6, 0.6, 0.55), white).
		WithTexture(material.NewCheckerTexture(1, core.NewVec3(0.65, 0.65, 0.6), core.NewVec3(0.25, 0.25, 0.3)))

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0.6, -1), 0.6, red),
		geometry.NewSphere(core.NewVec3(-1.4, 0.5, -1.4), 0.5, mirror),
		geometry.NewSphere(core.NewVec3(1.1, 0.45, 0), 0.45, glass),
		geometry.NewTriangle(
			core.NewVec3(-0.6, 0, 0.6),
			core.NewVec3(0.2, 0, 0.9),
			core.NewVec3(-0.2, 0.8, 0.7),
			material.NewPhong(0.1, 0.8, 0.2, 16, core.NewVec3(0.2, 0.6, 0.3), white),
		),
	)
	addGroundTriangles(s, core.NewVec3(0, 0, -1), 20, floor)

	s.AddPointLight(core.NewVec3(4, 6, 4), core.NewVec3(0.8, 0.8, 0.75))
	s.AddPointLight(core.NewVec3(-5, 4, 1), core.NewVec3(0.3, 0.3, 0.35))

	return s
}

// NewBinaryScene renders the default scene geometry as a hit mask
func NewBinaryScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := NewDefaultScene(cameraOverrides...)
	s.Mode = ModeBinary
	s.Background = core.Vec3{}
	s.SamplingConfig.SamplesPerPixel = 1
	s.SamplingConfig.MaxDepth = 1
	return s
}
