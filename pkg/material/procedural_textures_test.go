package material

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCheckerTexture_AlternatesAcrossCells(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0, 0, 0)
	checker := NewCheckerTexture(1, even, odd)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		{"origin cell", core.NewVec3(0.5, 0.5, 0.5), even},
		{"step in x", core.NewVec3(1.5, 0.5, 0.5), odd},
		{"step in x and z", core.NewVec3(1.5, 0.5, 1.5), even},
		{"negative cell", core.NewVec3(-0.5, 0.5, 0.5), odd},
		{"on a flat floor at y=0", core.NewVec3(2.5, 0, 0.5), even},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Evaluate(core.Vec2{}, tt.point); got != tt.expected {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestCheckerTexture_ZeroSize(t *testing.T) {
	even := core.NewVec3(0.2, 0.4, 0.6)
	checker := NewCheckerTexture(0, even, core.Vec3{})
	if got := checker.Evaluate(core.Vec2{}, core.NewVec3(3.7, -1, 2)); got != even {
		t.Errorf("Expected the even color for a zero cell size, got %v", got)
	}
}

func TestUVDebugTexture_Corners(t *testing.T) {
	texture := NewUVDebugTexture(8, 8)

	tests := []struct {
		uv       core.Vec2
		expected core.Vec3
	}{
		{core.NewVec2(0, 0), core.NewVec3(0, 0, 0)},
		{core.NewVec2(1, 0), core.NewVec3(1, 0, 0)},
		{core.NewVec2(0, 1), core.NewVec3(0, 1, 0)},
		{core.NewVec2(1, 1), core.NewVec3(1, 1, 0)},
	}

	for _, tt := range tests {
		if got := texture.Evaluate(tt.uv, core.Vec3{}); !colorClose(got, tt.expected) {
			t.Errorf("UV%v: expected %v, got %v", tt.uv, tt.expected, got)
		}
	}
}
