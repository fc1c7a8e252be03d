package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// List is an Intersector that tests every primitive in order
type List struct {
	Primitives []Primitive
}

// NewList creates a linear-scan intersector over primitives
func NewList(primitives []Primitive) *List {
	return &List{Primitives: primitives}
}

// Hit returns the nearest intersection in (tMin, tMax)
func (l *List) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	closest := tMax
	var nearest Primitive
	for _, p := range l.Primitives {
		if t, ok := p.Intersect(ray, tMin, closest); ok {
			closest = t
			nearest = p
		}
	}

	if nearest == nil {
		return nil, false
	}
	return newHitRecord(ray, closest, nearest), true
}

// Occluded reports whether any primitive intersects the ray in (tMin, tMax)
func (l *List) Occluded(ray core.Ray, tMin, tMax float64) bool {
	for _, p := range l.Primitives {
		if _, ok := p.Intersect(ray, tMin, tMax); ok {
			return true
		}
	}
	return false
}
