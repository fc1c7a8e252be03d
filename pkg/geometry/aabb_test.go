package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		tMax      float64
		expected  bool
	}{
		{"straight on", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), math.Inf(1), true},
		{"negative direction", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), math.Inf(1), true},
		{"zero component outside slab", core.NewVec3(2, 0, -5), core.NewVec3(0, 0, 1), math.Inf(1), false},
		{"zero component inside slab", core.NewVec3(0.5, 0.5, -5), core.NewVec3(0, 0, 1), math.Inf(1), true},
		{"diagonal", core.NewVec3(-5, -5, -5), core.NewVec3(1, 1, 1), math.Inf(1), true},
		{"diagonal miss", core.NewVec3(-5, 5, -5), core.NewVec3(1, 1, 1), math.Inf(1), false},
		{"box behind ray", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1), math.Inf(1), false},
		{"box beyond tMax", core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), 3, false},
		{"origin inside", core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := box.Hit(core.NewRay(tt.origin, tt.direction), 0.001, tt.tMax)
			if got != tt.expected {
				t.Errorf("Expected %t, got %t", tt.expected, got)
			}
		})
	}
}

func TestAABB_UnionAndLongestAxis(t *testing.T) {
	a := NewAABB(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	b := NewAABB(core.NewVec3(-2, 0.5, 0), core.NewVec3(0, 2, 0.5))
	u := a.Union(b)

	if !vecNear(u.Min, core.NewVec3(-2, 0, 0), 0) || !vecNear(u.Max, core.NewVec3(1, 2, 1), 0) {
		t.Errorf("Unexpected union %v - %v", u.Min, u.Max)
	}
	if axis := u.LongestAxis(); axis != 0 {
		t.Errorf("Expected longest axis X, got %d", axis)
	}
	if !vecNear(u.Center(), core.NewVec3(-0.5, 1, 0.5), 1e-12) {
		t.Errorf("Unexpected center %v", u.Center())
	}
}
