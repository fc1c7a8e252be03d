package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Cylinder represents a finite open tube (no caps). It is stored in canonical
// form: Base is the center of one end, Axis is unit length and Height is the
// full length of the tube along Axis.
type Cylinder struct {
	Base     core.Vec3
	Axis     core.Vec3
	Radius   float64
	Height   float64
	Material *material.Material

	// Basis perpendicular to Axis, used for texture coordinates
	tangent   core.Vec3
	bitangent core.Vec3
}

// NewCylinder creates a cylinder centered at center that extends halfHeight
// along axis in both directions
func NewCylinder(center, axis core.Vec3, radius, halfHeight float64, mat *material.Material) *Cylinder {
	unitAxis := axis.Normalize()
	tangent, bitangent := core.OrthonormalBasis(unitAxis)
	return &Cylinder{
		Base:      center.Subtract(unitAxis.Multiply(halfHeight)),
		Axis:      unitAxis,
		Radius:    radius,
		Height:    2 * halfHeight,
		Material:  mat,
		tangent:   tangent,
		bitangent: bitangent,
	}
}

func (c *Cylinder) primitive() {}

// Intersect tests if a ray intersects with the cylinder wall
func (c *Cylinder) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	// Vector from ray origin to base center
	delta := ray.Origin.Subtract(c.Base)

	DV := ray.Direction.Dot(c.Axis)
	deltaV := delta.Dot(c.Axis)

	// Quadratic in t for the distance to the axis:
	// a = |D|² - (D·V)²
	// b = 2[Δ·D - (Δ·V)(D·V)]
	// cc = |Δ|² - (Δ·V)² - r²
	a := ray.Direction.LengthSquared() - DV*DV
	b := 2.0 * (delta.Dot(ray.Direction) - deltaV*DV)
	cc := delta.LengthSquared() - deltaV*deltaV - c.Radius*c.Radius

	// Ray parallel to the axis never crosses the wall
	const epsilon = 1e-8
	if math.Abs(a) < epsilon {
		return 0, false
	}

	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	if t1 > t2 {
		t1, t2 = t2, t1
	}

	for _, t := range [2]float64{t1, t2} {
		if t <= tMin || t >= tMax {
			continue
		}
		// Height of the hit along the axis must lie within the tube
		h := deltaV + t*DV
		if h >= 0 && h <= c.Height {
			return t, true
		}
	}

	return 0, false
}

// NormalAt returns the outward normal, perpendicular to the axis
func (c *Cylinder) NormalAt(point core.Vec3) core.Vec3 {
	toPoint := point.Subtract(c.Base)
	h := toPoint.Dot(c.Axis)
	return toPoint.Subtract(c.Axis.Multiply(h)).Normalize()
}

// TextureCoords returns the angle around the axis as u and the height along it as v
func (c *Cylinder) TextureCoords(point core.Vec3) (float64, float64) {
	toPoint := point.Subtract(c.Base)
	h := toPoint.Dot(c.Axis)
	phi := math.Atan2(toPoint.Dot(c.bitangent), toPoint.Dot(c.tangent)) + math.Pi

	v := 0.0
	if c.Height > 0 {
		v = h / c.Height
	}
	return phi / (2 * math.Pi), v
}

// BoundingBox returns the axis-aligned bounding box for this cylinder.
// Each end disc extends r*sqrt(1 - axis_i²) along coordinate axis i.
func (c *Cylinder) BoundingBox() AABB {
	top := c.Base.Add(c.Axis.Multiply(c.Height))
	extent := core.NewVec3(
		c.Radius*math.Sqrt(math.Max(0, 1-c.Axis.X*c.Axis.X)),
		c.Radius*math.Sqrt(math.Max(0, 1-c.Axis.Y*c.Axis.Y)),
		c.Radius*math.Sqrt(math.Max(0, 1-c.Axis.Z*c.Axis.Z)),
	)
	ends := NewAABBFromPoints(c.Base, top)
	return NewAABB(ends.Min.Subtract(extent), ends.Max.Add(extent))
}

// GetMaterial returns the cylinder's material
func (c *Cylinder) GetMaterial() *material.Material {
	return c.Material
}
