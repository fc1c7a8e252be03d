package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func testCameraConfig() CameraConfig {
	return CameraConfig{
		Position: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     90,
		Width:    100,
		Height:   100,
	}
}

func TestCamera_Orientation(t *testing.T) {
	camera := NewCamera(testCameraConfig())

	tests := []struct {
		name     string
		u, v     float64
		expected core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"top edge", 0.5, 0, core.NewVec3(0, 1, -1)},
		{"bottom edge", 0.5, 1, core.NewVec3(0, -1, -1)},
		{"left edge", 0, 0.5, core.NewVec3(-1, 0, -1)},
		{"right edge", 1, 0.5, core.NewVec3(1, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.u, tt.v, nil)
			if !vecNear(ray.Direction, tt.expected, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
			if !vecNear(ray.Origin, core.NewVec3(0, 0, 0), 0) {
				t.Errorf("Pinhole ray must start at the camera position, got %v", ray.Origin)
			}
		})
	}
}

func TestCamera_AspectRatio(t *testing.T) {
	config := testCameraConfig()
	config.Width = 200
	camera := NewCamera(config)

	ray := camera.GetRay(1, 0.5, nil)
	if !vecNear(ray.Direction, core.NewVec3(2, 0, -1), 1e-9) {
		t.Errorf("Expected horizontal extent scaled by aspect, got %v", ray.Direction)
	}
}

func TestCamera_ThinLensConvergesAtFocalPlane(t *testing.T) {
	config := testCameraConfig()
	config.Aperture = 0.5
	config.FocusDistance = 4
	camera := NewCamera(config)

	if camera.FocusDistance() != 4 {
		t.Fatalf("Expected focus distance 4, got %f", camera.FocusDistance())
	}

	sampler := core.NewSeededSampler(1, 0)
	focalPoint := core.NewVec3(0.4*4, -0.2*4, -4)
	moved := false
	for i := 0; i < 50; i++ {
		ray := camera.GetRay(0.7, 0.6, sampler)

		if ray.Origin.Length() > 0.25+1e-9 || math.Abs(ray.Origin.Z) > 1e-12 {
			t.Fatalf("Lens origin %v outside the aperture", ray.Origin)
		}
		if !ray.Origin.IsZero() {
			moved = true
		}
		if !vecNear(ray.At(1), focalPoint, 1e-9) {
			t.Fatalf("Expected ray through focal point %v, got %v", focalPoint, ray.At(1))
		}
	}
	if !moved {
		t.Error("Expected lens sampling to move ray origins")
	}
}

func TestCamera_DefaultFocusDistance(t *testing.T) {
	config := testCameraConfig()
	config.LookAt = core.NewVec3(0, 0, -7)
	config.Aperture = 0.1
	camera := NewCamera(config)

	if math.Abs(camera.FocusDistance()-7) > 1e-12 {
		t.Errorf("Expected focus distance |lookAt - position| = 7, got %f", camera.FocusDistance())
	}
}

func TestCamera_UpParallelToView(t *testing.T) {
	config := testCameraConfig()
	config.Up = core.NewVec3(0, 0, 1)
	camera := NewCamera(config)

	ray := camera.GetRay(0.3, 0.8, nil)
	if math.IsNaN(ray.Direction.X) || math.IsNaN(ray.Direction.Y) || math.IsNaN(ray.Direction.Z) {
		t.Fatalf("Expected finite direction, got %v", ray.Direction)
	}
}
