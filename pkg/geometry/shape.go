package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// HitRecord contains information about a ray-primitive intersection
type HitRecord struct {
	T         float64   // Parameter t along the ray
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always facing against the ray
	FrontFace bool      // Whether ray hit the outward side of the surface
	U, V      float64   // Texture coordinates

	Primitive Primitive
	Material  *material.Material
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Primitive is a renderable surface. The set of primitives is closed:
// only *Sphere, *Cylinder and *Triangle implement it.
type Primitive interface {
	// Intersect returns the smallest t in (tMin, tMax) at which the ray meets the surface
	Intersect(ray core.Ray, tMin, tMax float64) (float64, bool)
	// NormalAt returns the unit outward normal at a point on the surface
	NormalAt(point core.Vec3) core.Vec3
	// TextureCoords returns the (u, v) parameterization of a point on the surface
	TextureCoords(point core.Vec3) (float64, float64)
	BoundingBox() AABB
	GetMaterial() *material.Material

	primitive()
}

// Intersector answers nearest-hit and any-hit queries over a set of primitives
type Intersector interface {
	Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool)
	Occluded(ray core.Ray, tMin, tMax float64) bool
}

// newHitRecord fills in the surface details of a hit at parameter t
func newHitRecord(ray core.Ray, t float64, p Primitive) *HitRecord {
	point := ray.At(t)
	u, v := p.TextureCoords(point)
	hit := &HitRecord{
		T:         t,
		Point:     point,
		U:         u,
		V:         v,
		Primitive: p,
		Material:  p.GetMaterial(),
	}
	hit.SetFaceNormal(ray, p.NormalAt(point))
	return hit
}
