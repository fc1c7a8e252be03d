package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Position      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	VFov          float64   // Full vertical field of view in degrees
	Width         int       // Image width in pixels
	Height        int       // Image height in pixels
	Aperture      float64   // Lens diameter, 0 for a pinhole camera
	FocusDistance float64   // Distance to the focal plane, 0 means |LookAt - Position|
}

// Camera generates primary rays. (u, v) = (0, 0) is the top-left corner of the
// image, u grows to the right and v grows downward.
type Camera struct {
	config CameraConfig

	position core.Vec3
	forward  core.Vec3
	right    core.Vec3
	up       core.Vec3

	halfWidth     float64
	halfHeight    float64
	focusDistance float64
	lensRadius    float64
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	forward := config.LookAt.Subtract(config.Position).Normalize()

	right := forward.Cross(config.Up).Normalize()
	if right.IsZero() {
		// Up is parallel to the view direction; choose any perpendicular
		right, _ = core.OrthonormalBasis(forward)
	}
	up := right.Cross(forward)

	halfHeight := math.Tan(config.VFov * math.Pi / 180 / 2)
	aspect := 1.0
	if config.Height > 0 {
		aspect = float64(config.Width) / float64(config.Height)
	}

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookAt.Subtract(config.Position).Length()
	}

	return &Camera{
		config:        config,
		position:      config.Position,
		forward:       forward,
		right:         right,
		up:            up,
		halfWidth:     aspect * halfHeight,
		halfHeight:    halfHeight,
		focusDistance: focusDistance,
		lensRadius:    config.Aperture / 2,
	}
}

// GetRay generates a ray through image coordinates (u, v) in [0, 1].
// sampler is only consulted when the camera has a lens.
func (c *Camera) GetRay(u, v float64, sampler core.Sampler) core.Ray {
	// Direction to the image plane one unit in front of the camera
	direction := c.forward.
		Add(c.right.Multiply((2*u - 1) * c.halfWidth)).
		Add(c.up.Multiply((1 - 2*v) * c.halfHeight))

	if c.lensRadius <= 0 || sampler == nil {
		return core.NewRay(c.position, direction)
	}

	// Re-aim from a point on the lens at the in-focus point of the pinhole ray
	focalPoint := c.position.Add(direction.Multiply(c.focusDistance))
	disk := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
	origin := c.position.Add(c.right.Multiply(disk.X)).Add(c.up.Multiply(disk.Y))

	return core.NewRay(origin, focalPoint.Subtract(origin))
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.config.Width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.config.Height
}

// FocusDistance returns the distance to the plane in perfect focus
func (c *Camera) FocusDistance() float64 {
	return c.focusDistance
}
