package core

import (
	"math"
	"testing"
)

func vecClose(a, b Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"scalar multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"component multiply", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"clamp", NewVec3(-1, 0.5, 2).Clamp(0, 1), NewVec3(0, 0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecClose(tt.got, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if a.Dot(b) != 12 {
		t.Errorf("Expected dot 12, got %f", a.Dot(b))
	}
	if a.LengthSquared() != 14 {
		t.Errorf("Expected squared length 14, got %f", a.LengthSquared())
	}
}

func TestVec3_NormalizeZeroVector(t *testing.T) {
	n := Vec3{}.Normalize()
	if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsNaN(n.Z) {
		t.Fatalf("Normalizing the zero vector produced NaN: %v", n)
	}
	if !n.IsZero() {
		t.Errorf("Expected zero vector, got %v", n)
	}

	unit := NewVec3(3, 0, 4).Normalize()
	if math.Abs(unit.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", unit.Length())
	}
}

func TestVec3_Luminance(t *testing.T) {
	if l := NewVec3(1, 1, 1).Luminance(); math.Abs(l-1) > 1e-12 {
		t.Errorf("Expected white luminance 1, got %f", l)
	}
	if l := NewVec3(0, 1, 0).Luminance(); math.Abs(l-0.7152) > 1e-12 {
		t.Errorf("Expected green luminance 0.7152, got %f", l)
	}
}

func TestReflect_Idempotent(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	directions := []Vec3{
		NewVec3(1, -1, 0),
		NewVec3(0.3, -0.8, 0.52),
		NewVec3(-2, -0.1, 5),
		NewVec3(0, -1, 0),
	}

	for _, d := range directions {
		reflected := Reflect(d, normal)
		if reflected.Y < 0 {
			t.Errorf("Reflection of %v should point away from the surface, got %v", d, reflected)
		}
		back := Reflect(reflected, normal)
		if !vecClose(back, d, 1e-12) {
			t.Errorf("Reflecting twice should restore %v, got %v", d, back)
		}
	}
}

func TestRefract(t *testing.T) {
	normal := NewVec3(0, 1, 0)

	t.Run("matched index passes straight through", func(t *testing.T) {
		incident := NewVec3(1, -1, 0).Normalize()
		refracted := Refract(incident, normal, 1.0)
		if !vecClose(refracted, incident, 1e-12) {
			t.Errorf("Expected %v, got %v", incident, refracted)
		}
	})

	t.Run("entering denser medium bends toward normal", func(t *testing.T) {
		incident := NewVec3(1, -1, 0).Normalize()
		refracted := Refract(incident, normal, 1.0/1.5)
		sinIn := math.Abs(incident.X)
		sinOut := math.Abs(refracted.X) / refracted.Length()
		if math.Abs(sinIn/sinOut-1.5) > 1e-9 {
			t.Errorf("Snell's law violated: sinIn/sinOut = %f", sinIn/sinOut)
		}
	})

	t.Run("total internal reflection stays finite", func(t *testing.T) {
		incident := NewVec3(1, -0.1, 0).Normalize()
		refracted := Refract(incident, normal, 1.5)
		if math.IsNaN(refracted.X) || math.IsNaN(refracted.Y) || math.IsNaN(refracted.Z) {
			t.Errorf("Expected finite direction, got %v", refracted)
		}
	})
}
