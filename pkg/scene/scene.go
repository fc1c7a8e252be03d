package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/log"
)

var logger = log.New("scene")

// RenderMode selects what the shader computes at a hit point
type RenderMode string

const (
	// ModeBinary marks every hit with a flat color, useful to check geometry
	ModeBinary RenderMode = "binary"
	// ModePhong runs full Phong shading with shadows, reflection and refraction
	ModePhong RenderMode = "phong"
)

// Tone mapping operators understood by the renderer
const (
	ToneMapReinhard = "reinhard"
	ToneMapClamp    = "clamp"
)

// Scene contains all the elements needed for rendering. It must not be
// modified once Preprocess has run.
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Primitives     []geometry.Primitive // Every primitive, addressed by index
	Lights         []lights.Light
	Background     core.Vec3
	Mode           RenderMode
	SamplingConfig SamplingConfig

	Accelerate    bool                   // Use a BVH instead of a linear scan
	SplitStrategy geometry.SplitStrategy // BVH construction strategy

	Intersector geometry.Intersector // Built by Preprocess
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int     // Image width
	Height          int     // Image height
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	Seed            int64   // Seed for jitter and lens sampling
	Exposure        float64 // Tone mapping exposure
	ToneMapping     string  // Tone mapping operator
}

// DefaultSamplingConfig returns the settings used when a scene document leaves them out
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          300,
		SamplesPerPixel: 1,
		MaxDepth:        1,
		Seed:            1,
		Exposure:        1.0,
		ToneMapping:     ToneMapReinhard,
	}
}

// NewScene creates an empty scene with default settings
func NewScene(cameraConfig geometry.CameraConfig) *Scene {
	sampling := DefaultSamplingConfig()
	if cameraConfig.Width > 0 && cameraConfig.Height > 0 {
		sampling.Width = cameraConfig.Width
		sampling.Height = cameraConfig.Height
	} else {
		cameraConfig.Width = sampling.Width
		cameraConfig.Height = sampling.Height
	}

	return &Scene{
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		Primitives:     make([]geometry.Primitive, 0),
		Lights:         make([]lights.Light, 0),
		Mode:           ModePhong,
		SamplingConfig: sampling,
		Accelerate:     true,
		SplitStrategy:  geometry.SplitArrayOrder,
	}
}

// Add appends primitives to the scene
func (s *Scene) Add(primitives ...geometry.Primitive) {
	s.Primitives = append(s.Primitives, primitives...)
}

// AddPointLight adds a point light to the scene
func (s *Scene) AddPointLight(position, intensity core.Vec3) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, intensity))
}

// SetResolution changes the image size and rebuilds the camera to match
func (s *Scene) SetResolution(width, height int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = height
	s.CameraConfig.Width = width
	s.CameraConfig.Height = height
	s.Camera = geometry.NewCamera(s.CameraConfig)
}

// Preprocess builds the intersector used for all ray queries
func (s *Scene) Preprocess() error {
	if !s.Accelerate {
		s.Intersector = geometry.NewList(s.Primitives)
		logger.Debugf("using linear scan over %d primitives", len(s.Primitives))
		return nil
	}

	bvh := geometry.NewBVH(s.Primitives, s.SplitStrategy)
	stats := bvh.Stats()
	logger.Debugf("built BVH (%s) over %d primitives: %d nodes, max depth %d, avg leaf depth %.1f",
		s.SplitStrategy, len(s.Primitives), stats.TotalNodes, stats.MaxDepth, stats.AvgDepth)
	s.Intersector = bvh
	return nil
}

// GetPrimitiveCount returns the number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Primitives)
}
