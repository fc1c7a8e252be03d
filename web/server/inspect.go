package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	UV           [2]float64             `json:"uv"`
	Color        [3]float64             `json:"color"` // Linear radiance of the pixel centre
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// handleInspect reports what the centre ray of pixel (x, y) hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sceneID := query.Get("scene")
	if sceneID == "" {
		sceneID = defaultSceneID
	}

	width, err := parseIntParam(query, "width", 0, minDimension, maxDimension)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	height, err := parseIntParam(query, "height", 0, minDimension, maxDimension)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sceneObj, err := s.loadScene(sceneID, geometry.CameraConfig{Width: width, Height: height})
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	x, err := parseIntParam(query, "x", -1, 0, sceneObj.Camera.Width()-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := parseIntParam(query, "y", -1, 0, sceneObj.Camera.Height()-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if x < 0 || y < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("x and y are required"))
		return
	}

	if err := sceneObj.Preprocess(); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, x, y))
}

// inspectPixel casts the centre ray of a pixel and describes the first hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResponse {
	camera := sceneObj.Camera
	u := (float64(pixelX) + 0.5) / float64(camera.Width())
	v := (float64(pixelY) + 0.5) / float64(camera.Height())
	ray := camera.GetRay(u, v, nil)

	color := integrator.NewWhittedIntegrator().RayColor(ray, sceneObj)
	response := InspectResponse{Color: vec3Array(color)}

	hit, isHit := sceneObj.Intersector.Hit(ray, integrator.MinHitDistance, math.Inf(1))
	if !isHit {
		return response
	}

	response.Hit = true
	response.GeometryType = geometryType(hit.Primitive)
	response.Point = vec3Array(hit.Point)
	response.Normal = vec3Array(hit.Normal)
	response.Distance = hit.T * ray.Direction.Length()
	response.FrontFace = hit.FrontFace
	response.UV = [2]float64{hit.U, hit.V}
	response.Properties = materialProperties(hit.Material, hit)
	return response
}

func geometryType(prim geometry.Primitive) string {
	switch prim.(type) {
	case *geometry.Sphere:
		return "sphere"
	case *geometry.Cylinder:
		return "cylinder"
	case *geometry.Triangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// materialProperties extracts the shading parameters of mat at a hit
func materialProperties(mat *material.Material, hit *geometry.HitRecord) map[string]interface{} {
	diffuse := mat.DiffuseAt(core.NewVec2(hit.U, hit.V), hit.Point)
	display := diffuse.Clamp(0, 1)
	hex := fmt.Sprintf("#%02x%02x%02x", int(display.X*255), int(display.Y*255), int(display.Z*255))

	properties := map[string]interface{}{
		"ka":               mat.Ka,
		"kd":               mat.Kd,
		"ks":               mat.Ks,
		"specularExponent": mat.SpecularExponent,
		"diffuse":          vec3Array(diffuse),
		"color":            hex,
		"textured":         mat.Texture != nil,
	}
	if mat.IsReflective() {
		properties["reflectivity"] = mat.Reflectivity
	}
	if mat.IsRefractive() {
		properties["refractiveIndex"] = mat.RefractiveIndex
	}
	return properties
}

func vec3Array(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
