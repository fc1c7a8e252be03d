package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material holds the Phong shading coefficients of a surface together with its
// reflection and refraction properties. Reflectivity and the refraction weight
// (1 - Reflectivity) are not normalized against the local terms, so a surface
// may return more energy than it receives.
type Material struct {
	Ka               float64 // Ambient coefficient
	Kd               float64 // Diffuse coefficient
	Ks               float64 // Specular coefficient
	SpecularExponent float64

	DiffuseColor  core.Vec3
	SpecularColor core.Vec3
	AmbientColor  core.Vec3 // Tint applied to the ambient term, white by default

	Reflective   bool
	Reflectivity float64

	Refractive      bool
	RefractiveIndex float64

	// Texture replaces DiffuseColor when set
	Texture ColorSource
}

// NewPhong creates an opaque, non-reflective Phong material
func NewPhong(ka, kd, ks, specularExponent float64, diffuse, specular core.Vec3) *Material {
	return &Material{
		Ka:               ka,
		Kd:               kd,
		Ks:               ks,
		SpecularExponent: specularExponent,
		DiffuseColor:     diffuse,
		SpecularColor:    specular,
		AmbientColor:     core.NewVec3(1, 1, 1),
		RefractiveIndex:  1.0,
	}
}

// Default returns the material used for shapes that do not specify one
func Default() *Material {
	return NewPhong(0.2, 0.8, 0.0, 1.0, core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(1, 1, 1))
}

// WithReflection returns a copy of the material that mirrors incoming light
func (m Material) WithReflection(reflectivity float64) *Material {
	m.Reflective = reflectivity > 0
	m.Reflectivity = reflectivity
	return &m
}

// WithRefraction returns a copy of the material that transmits light with the given index
func (m Material) WithRefraction(refractiveIndex float64) *Material {
	m.Refractive = refractiveIndex > 0
	m.RefractiveIndex = refractiveIndex
	return &m
}

// WithTexture returns a copy of the material whose diffuse color comes from texture
func (m Material) WithTexture(texture ColorSource) *Material {
	m.Texture = texture
	return &m
}

// DiffuseAt returns the diffuse color at the given texture coordinates
func (m *Material) DiffuseAt(uv core.Vec2, point core.Vec3) core.Vec3 {
	if m.Texture != nil {
		return m.Texture.Evaluate(uv, point)
	}
	return m.DiffuseColor
}

// Ambient returns the ambient term for a surface with the given diffuse color
func (m *Material) Ambient(diffuse core.Vec3) core.Vec3 {
	return diffuse.MultiplyVec(m.AmbientColor).Multiply(m.Ka)
}

// IsReflective reports whether reflection rays should be spawned
func (m *Material) IsReflective() bool {
	return m.Reflective && m.Reflectivity > 0
}

// IsRefractive reports whether refraction rays should be spawned
func (m *Material) IsRefractive() bool {
	return m.Refractive && m.RefractiveIndex > 0
}
