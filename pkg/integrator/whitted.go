package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// MinHitDistance is the smallest t accepted for any ray
	MinHitDistance = 1e-4
	// ShadowBias offsets shadow ray origins along the normal
	ShadowBias = 1e-3
	// ReflectionBias offsets reflected ray origins along the normal
	ReflectionBias = 1e-3
	// RefractionBias offsets refracted ray origins against the normal
	RefractionBias = 1e-3
)

// BinaryMarker is the color of every hit in binary mode
var BinaryMarker = core.NewVec3(1, 0, 0)

// WhittedIntegrator implements recursive Whitted ray tracing: Phong direct
// lighting from point lights with hard shadows, plus perfect mirror
// reflection and Snell refraction up to a bounce limit.
type WhittedIntegrator struct{}

// NewWhittedIntegrator creates a new Whitted integrator
func NewWhittedIntegrator() *WhittedIntegrator {
	return &WhittedIntegrator{}
}

// RayColor shades a camera ray with the scene's bounce limit
func (w *WhittedIntegrator) RayColor(ray core.Ray, scn *scene.Scene) core.Vec3 {
	return w.Shade(ray, scn.SamplingConfig.MaxDepth, scn)
}

// Shade returns the color seen along ray with depth bounces remaining
func (w *WhittedIntegrator) Shade(ray core.Ray, depth int, scn *scene.Scene) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := scn.Intersector.Hit(ray, MinHitDistance, math.Inf(1))
	if !isHit {
		return scn.Background
	}

	if scn.Mode == scene.ModeBinary {
		return BinaryMarker
	}

	color := w.directLighting(ray, hit, scn)

	mat := hit.Material
	if mat.IsReflective() {
		color = color.Add(w.reflect(ray, hit, depth, scn).Multiply(mat.Reflectivity))
	}
	if mat.IsRefractive() {
		color = color.Add(w.refract(ray, hit, depth, scn).Multiply(1 - mat.Reflectivity))
	}

	return color
}

// directLighting evaluates the ambient term once and Phong diffuse and
// specular terms for every unshadowed light
func (w *WhittedIntegrator) directLighting(ray core.Ray, hit *geometry.HitRecord, scn *scene.Scene) core.Vec3 {
	mat := hit.Material
	diffuse := mat.DiffuseAt(core.NewVec2(hit.U, hit.V), hit.Point)

	color := mat.Ambient(diffuse)
	viewDir := ray.Origin.Subtract(hit.Point).Normalize()
	shadowOrigin := hit.Point.Add(hit.Normal.Multiply(ShadowBias))

	for _, light := range scn.Lights {
		sample := light.Sample(hit.Point)

		// Unit direction so the bias is a world-space distance however far the light is
		shadowRay := core.NewRay(shadowOrigin, sample.Point.Subtract(shadowOrigin).Normalize())
		if scn.Intersector.Occluded(shadowRay, ShadowBias, sample.Distance) {
			continue
		}

		lightDir := sample.Direction
		halfway := viewDir.Add(lightDir).Normalize()

		diffuseFactor := math.Max(0, hit.Normal.Dot(lightDir))
		specularFactor := math.Pow(math.Max(0, hit.Normal.Dot(halfway)), mat.SpecularExponent)

		color = color.Add(diffuse.MultiplyVec(sample.Emission).Multiply(diffuseFactor * mat.Kd))
		color = color.Add(mat.SpecularColor.MultiplyVec(sample.Emission).Multiply(specularFactor * mat.Ks))
	}

	return color
}

// reflect traces the mirror direction about the face normal
func (w *WhittedIntegrator) reflect(ray core.Ray, hit *geometry.HitRecord, depth int, scn *scene.Scene) core.Vec3 {
	direction := core.Reflect(ray.Direction.Normalize(), hit.Normal).Normalize()
	origin := hit.Point.Add(hit.Normal.Multiply(ReflectionBias))
	return w.Shade(core.NewRay(origin, direction), depth-1, scn)
}

// refract traces the transmitted direction, entering or leaving the surface
// depending on which face was hit
func (w *WhittedIntegrator) refract(ray core.Ray, hit *geometry.HitRecord, depth int, scn *scene.Scene) core.Vec3 {
	eta := hit.Material.RefractiveIndex
	etaRatio := eta
	if hit.FrontFace {
		etaRatio = 1.0 / eta
	}

	direction := core.Refract(ray.Direction.Normalize(), hit.Normal, etaRatio).Normalize()
	origin := hit.Point.Subtract(hit.Normal.Multiply(RefractionBias))
	return w.Shade(core.NewRay(origin, direction), depth-1, scn)
}
