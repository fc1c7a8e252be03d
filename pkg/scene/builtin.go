package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrUnknownScene is returned when a scene name matches no built-in scene or scene file
var ErrUnknownScene = errors.New("unknown scene")

// Builder creates a built-in scene, optionally overriding parts of its camera
type Builder func(cameraOverrides ...geometry.CameraConfig) *Scene

var builtins = map[string]Builder{
	"default":    NewDefaultScene,
	"cylinders":  NewCylinderScene,
	"spheregrid": NewSphereGridScene,
	"binary":     NewBinaryScene,
}

// BuiltinNames returns the names of all built-in scenes in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBuiltin creates the named built-in scene
func NewBuiltin(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	builder, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return builder(cameraOverrides...), nil
}

// mergeCameraConfig replaces every non-zero field of defaults with the override's value
func mergeCameraConfig(defaults geometry.CameraConfig, overrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(overrides) == 0 {
		return defaults
	}

	merged := defaults
	override := overrides[0]
	if !override.Position.IsZero() {
		merged.Position = override.Position
	}
	if !override.LookAt.IsZero() {
		merged.LookAt = override.LookAt
	}
	if !override.Up.IsZero() {
		merged.Up = override.Up
	}
	if override.VFov > 0 {
		merged.VFov = override.VFov
	}
	if override.Width > 0 {
		merged.Width = override.Width
	}
	if override.Height > 0 {
		merged.Height = override.Height
	}
	if override.Aperture > 0 {
		merged.Aperture = override.Aperture
	}
	if override.FocusDistance > 0 {
		merged.FocusDistance = override.FocusDistance
	}
	return merged
}

// addGroundTriangles adds a square floor of two upward-facing triangles centered at center
func addGroundTriangles(s *Scene, center core.Vec3, size float64, mat *material.Material) {
	h := size / 2
	nearLeft := center.Add(core.NewVec3(-h, 0, h))
	nearRight := center.Add(core.NewVec3(h, 0, h))
	farLeft := center.Add(core.NewVec3(-h, 0, -h))
	farRight := center.Add(core.NewVec3(h, 0, -h))

	s.Add(
		geometry.NewTriangle(farLeft, nearLeft, nearRight, mat),
		geometry.NewTriangle(farLeft, nearRight, farRight, mat),
	)
}
