package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// triangleEpsilon rejects rays that lie (nearly) in the triangle's plane
const triangleEpsilon = 1e-5

// triangleBoxPadding gives axis-aligned triangles a non-empty bounding box
const triangleBoxPadding = 1e-4

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices
	Material   *material.Material
	normal     core.Vec3 // Cached normal vector, zero when degenerate
	bbox       AABB      // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat *material.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
	}

	// Counter-clockwise winding faces the viewer
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	t.normal = edge1.Cross(edge2).Normalize()
	t.bbox = NewAABBFromPoints(v0, v1, v2).Expand(triangleBoxPadding)

	return t
}

func (t *Triangle) primitive() {}

// IsDegenerate reports whether the triangle has zero area
func (t *Triangle) IsDegenerate() bool {
	return t.normal.IsZero()
}

// Intersect tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	if t.IsDegenerate() {
		return 0, false
	}

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -triangleEpsilon && a < triangleEpsilon {
		return 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	tHit := f * edge2.Dot(q)
	if tHit <= tMin || tHit >= tMax {
		return 0, false
	}

	return tHit, true
}

// NormalAt returns the triangle's face normal
func (t *Triangle) NormalAt(point core.Vec3) core.Vec3 {
	return t.normal
}

// TextureCoords returns the barycentric weights of V1 and V2 at point
func (t *Triangle) TextureCoords(point core.Vec3) (float64, float64) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	toPoint := point.Subtract(t.V0)

	d00 := edge1.Dot(edge1)
	d01 := edge1.Dot(edge2)
	d11 := edge2.Dot(edge2)
	d20 := toPoint.Dot(edge1)
	d21 := toPoint.Dot(edge2)

	denom := d00*d11 - d01*d01
	if denom == 0 {
		return 0, 0
	}
	return (d11*d20 - d01*d21) / denom, (d00*d21 - d01*d20) / denom
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() AABB {
	return t.bbox
}

// GetMaterial returns the triangle's material
func (t *Triangle) GetMaterial() *material.Material {
	return t.Material
}
