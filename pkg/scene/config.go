package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Document is the JSON form of a scene. Pointer fields distinguish a missing
// key from a zero value.
type Document struct {
	NBounces   *int           `json:"nbounces"`
	RenderMode *string        `json:"rendermode"`
	Samples    *int           `json:"samples"`
	Seed       *int64         `json:"seed"`
	Accelerate *bool          `json:"accelerate"`
	BVHSplit   *string        `json:"bvhsplit"`
	ToneMap    *string        `json:"tonemap"`
	Camera     *CameraDoc     `json:"camera"`
	Scene      *SceneContents `json:"scene"`
}

// CameraDoc is the "camera" section of a scene document
type CameraDoc struct {
	Type          string    `json:"type"`
	Width         *int      `json:"width"`
	Height        *int      `json:"height"`
	Position      []float64 `json:"position"`
	LookAt        []float64 `json:"lookAt"`
	UpVector      []float64 `json:"upVector"`
	FOV           *float64  `json:"fov"`
	Exposure      *float64  `json:"exposure"`
	Aperture      float64   `json:"aperture"`
	FocusDistance float64   `json:"focusDistance"`
}

// SceneContents is the "scene" section of a scene document
type SceneContents struct {
	BackgroundColor []float64         `json:"backgroundcolor"`
	LightSources    []json.RawMessage `json:"lightsources"`
	Shapes          []json.RawMessage `json:"shapes"`
}

type lightDoc struct {
	Type      *string   `json:"type"`
	Position  []float64 `json:"position"`
	Intensity []float64 `json:"intensity"`
}

type shapeDoc struct {
	Type     *string      `json:"type"`
	Center   []float64    `json:"center"`
	Radius   *float64     `json:"radius"`
	Axis     []float64    `json:"axis"`
	Height   *float64     `json:"height"`
	V0       []float64    `json:"v0"`
	V1       []float64    `json:"v1"`
	V2       []float64    `json:"v2"`
	Material *materialDoc `json:"material"`
}

type materialDoc struct {
	Ks               *float64  `json:"ks"`
	Kd               *float64  `json:"kd"`
	Ka               *float64  `json:"ka"`
	SpecularExponent *float64  `json:"specularexponent"`
	DiffuseColor     []float64 `json:"diffusecolor"`
	SpecularColor    []float64 `json:"specularcolor"`
	AmbientColor     []float64 `json:"ambientcolor"`
	IsReflective     bool      `json:"isreflective"`
	Reflectivity     float64   `json:"reflectivity"`
	IsRefractive     bool      `json:"isrefractive"`
	RefractiveIndex  *float64  `json:"refractiveindex"`
	Texture          string    `json:"texture"`
}

// LoadFile reads and parses a scene document. Texture paths are resolved
// relative to the document's directory.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse builds a scene from a JSON document. Every structural problem is
// reported as a *FieldError before any geometry is created.
func Parse(data []byte, baseDir string) (*Scene, error) {
	return parse(data, assetDir{dir: baseDir})
}

// ParseConfined is Parse for untrusted documents: texture paths must be
// relative and stay inside baseDir.
func ParseConfined(data []byte, baseDir string) (*Scene, error) {
	return parse(data, assetDir{dir: baseDir, confined: true})
}

func parse(data []byte, assets assetDir) (*Scene, error) {
	var doc Document
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode scene document: %w", err)
	}
	return doc.build(assets)
}

// assetDir resolves the texture paths named in a document
type assetDir struct {
	dir      string
	confined bool // Only relative paths inside dir are accepted
}

func (a assetDir) resolve(path, name string) (string, error) {
	if a.confined {
		if !filepath.IsLocal(name) {
			return "", invalidField(path, "must be a relative path inside the scene directory, got %q", name)
		}
		return filepath.Join(a.dir, name), nil
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	return filepath.Join(a.dir, name), nil
}

// Build converts a decoded document into a scene. Relative texture paths are
// resolved against baseDir.
func (doc *Document) Build(baseDir string) (*Scene, error) {
	return doc.build(assetDir{dir: baseDir})
}

func (doc *Document) build(assets assetDir) (*Scene, error) {
	if doc.RenderMode == nil {
		return nil, missingField("rendermode")
	}
	mode := RenderMode(strings.ToLower(*doc.RenderMode))
	if mode != ModeBinary && mode != ModePhong {
		return nil, invalidField("rendermode", "must be %q or %q, got %q", ModeBinary, ModePhong, *doc.RenderMode)
	}

	if doc.Camera == nil {
		return nil, missingField("camera")
	}
	cameraConfig, exposure, err := doc.Camera.build()
	if err != nil {
		return nil, err
	}
	if doc.Scene == nil {
		return nil, missingField("scene")
	}

	s := NewScene(cameraConfig)
	s.Mode = mode
	s.SamplingConfig.Exposure = exposure

	if doc.NBounces != nil {
		if *doc.NBounces < 0 {
			return nil, invalidField("nbounces", "must not be negative")
		}
		s.SamplingConfig.MaxDepth = *doc.NBounces
	}
	if doc.Samples != nil {
		if *doc.Samples < 1 {
			return nil, invalidField("samples", "must be at least 1")
		}
		s.SamplingConfig.SamplesPerPixel = *doc.Samples
	}
	if doc.Seed != nil {
		s.SamplingConfig.Seed = *doc.Seed
	}
	if doc.Accelerate != nil {
		s.Accelerate = *doc.Accelerate
	}
	if doc.BVHSplit != nil {
		strategy, err := ParseSplitStrategy(*doc.BVHSplit)
		if err != nil {
			return nil, invalidField("bvhsplit", "%v", err)
		}
		s.SplitStrategy = strategy
	}
	if doc.ToneMap != nil {
		switch *doc.ToneMap {
		case ToneMapReinhard, ToneMapClamp:
			s.SamplingConfig.ToneMapping = *doc.ToneMap
		default:
			return nil, invalidField("tonemap", "unknown operator %q", *doc.ToneMap)
		}
	}

	if err := doc.Scene.populate(s, assets); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseSplitStrategy converts a BVH strategy name into its value
func ParseSplitStrategy(name string) (geometry.SplitStrategy, error) {
	switch name {
	case "", geometry.SplitArrayOrder.String():
		return geometry.SplitArrayOrder, nil
	case geometry.SplitLongestAxis.String():
		return geometry.SplitLongestAxis, nil
	default:
		return 0, fmt.Errorf("unknown split strategy %q", name)
	}
}

func (c *CameraDoc) build() (geometry.CameraConfig, float64, error) {
	var config geometry.CameraConfig

	if c.Type != "" && c.Type != "pinhole" {
		logger.Warningf("unsupported camera type %q, using pinhole", c.Type)
	}

	if c.Width == nil {
		return config, 0, missingField("camera.width")
	}
	if c.Height == nil {
		return config, 0, missingField("camera.height")
	}
	if *c.Width <= 0 || *c.Height <= 0 {
		return config, 0, invalidField("camera", "resolution must be positive, got %dx%d", *c.Width, *c.Height)
	}

	position, err := requireVec3("camera.position", c.Position)
	if err != nil {
		return config, 0, err
	}
	lookAt, err := requireVec3("camera.lookAt", c.LookAt)
	if err != nil {
		return config, 0, err
	}
	up, err := requireVec3("camera.upVector", c.UpVector)
	if err != nil {
		return config, 0, err
	}
	if lookAt.Subtract(position).IsZero() {
		return config, 0, invalidField("camera.lookAt", "must differ from camera.position")
	}

	if c.FOV == nil {
		return config, 0, missingField("camera.fov")
	}
	if *c.FOV <= 0 || *c.FOV >= 180 {
		return config, 0, invalidField("camera.fov", "must be in (0, 180) degrees, got %g", *c.FOV)
	}
	if c.Aperture < 0 {
		return config, 0, invalidField("camera.aperture", "must not be negative")
	}

	exposure := 1.0
	if c.Exposure != nil {
		if *c.Exposure <= 0 {
			return config, 0, invalidField("camera.exposure", "must be positive")
		}
		exposure = *c.Exposure
	}

	config = geometry.CameraConfig{
		Position:      position,
		LookAt:        lookAt,
		Up:            up,
		VFov:          *c.FOV,
		Width:         *c.Width,
		Height:        *c.Height,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
	}
	return config, exposure, nil
}

func (sc *SceneContents) populate(s *Scene, assets assetDir) error {
	if sc.BackgroundColor == nil {
		logger.Warning("no scene.backgroundcolor given, using black")
	} else {
		background, err := requireVec3("scene.backgroundcolor", sc.BackgroundColor)
		if err != nil {
			return err
		}
		s.Background = background
	}

	for i, raw := range sc.LightSources {
		path := fmt.Sprintf("scene.lightsources[%d]", i)
		var light lightDoc
		if err := json.Unmarshal(raw, &light); err != nil {
			return invalidField(path, "%v", err)
		}
		if light.Type == nil {
			logger.Warningf("%s has no type, skipping", path)
			continue
		}
		if *light.Type != "pointlight" {
			logger.Warningf("%s: unsupported light type %q, skipping", path, *light.Type)
			continue
		}

		position, err := requireVec3(path+".position", light.Position)
		if err != nil {
			return err
		}
		intensity, err := requireVec3(path+".intensity", light.Intensity)
		if err != nil {
			return err
		}
		s.AddPointLight(position, intensity)
	}

	for i, raw := range sc.Shapes {
		path := fmt.Sprintf("scene.shapes[%d]", i)
		var shape shapeDoc
		if err := json.Unmarshal(raw, &shape); err != nil {
			return invalidField(path, "%v", err)
		}
		primitive, err := shape.build(path, assets)
		if err != nil {
			return err
		}
		if primitive != nil {
			s.Add(primitive)
		}
	}

	return nil
}

// build returns nil without error for shapes that are skipped
func (sd *shapeDoc) build(path string, assets assetDir) (geometry.Primitive, error) {
	if sd.Type == nil {
		logger.Warningf("%s has no type, skipping", path)
		return nil, nil
	}

	mat := material.Default()
	if sd.Material != nil {
		var err error
		if mat, err = sd.Material.build(path+".material", assets); err != nil {
			return nil, err
		}
	}

	switch *sd.Type {
	case "sphere":
		center, err := requireVec3(path+".center", sd.Center)
		if err != nil {
			return nil, err
		}
		radius, err := requirePositive(path+".radius", sd.Radius)
		if err != nil {
			return nil, err
		}
		return geometry.NewSphere(center, radius, mat), nil

	case "cylinder":
		center, err := requireVec3(path+".center", sd.Center)
		if err != nil {
			return nil, err
		}
		axis, err := requireVec3(path+".axis", sd.Axis)
		if err != nil {
			return nil, err
		}
		if axis.IsZero() {
			return nil, invalidField(path+".axis", "must not be the zero vector")
		}
		radius, err := requirePositive(path+".radius", sd.Radius)
		if err != nil {
			return nil, err
		}
		height, err := requirePositive(path+".height", sd.Height)
		if err != nil {
			return nil, err
		}
		return geometry.NewCylinder(center, axis, radius, height, mat), nil

	case "triangle":
		v0, err := requireVec3(path+".v0", sd.V0)
		if err != nil {
			return nil, err
		}
		v1, err := requireVec3(path+".v1", sd.V1)
		if err != nil {
			return nil, err
		}
		v2, err := requireVec3(path+".v2", sd.V2)
		if err != nil {
			return nil, err
		}
		triangle := geometry.NewTriangle(v0, v1, v2, mat)
		if triangle.IsDegenerate() {
			logger.Warningf("%s is degenerate and will never be hit", path)
		}
		return triangle, nil

	default:
		logger.Warningf("%s: unsupported shape type %q, skipping", path, *sd.Type)
		return nil, nil
	}
}

func (md *materialDoc) build(path string, assets assetDir) (*material.Material, error) {
	diffuse, err := requireVec3(path+".diffusecolor", md.DiffuseColor)
	if err != nil {
		return nil, err
	}
	specular, err := requireVec3(path+".specularcolor", md.SpecularColor)
	if err != nil {
		return nil, err
	}

	mat := material.NewPhong(
		valueOr(md.Ka, 0.2),
		valueOr(md.Kd, 0.8),
		valueOr(md.Ks, 0.0),
		valueOr(md.SpecularExponent, 1.0),
		diffuse,
		specular,
	)

	if md.AmbientColor != nil {
		if mat.AmbientColor, err = requireVec3(path+".ambientcolor", md.AmbientColor); err != nil {
			return nil, err
		}
	}

	mat.Reflective = md.IsReflective
	mat.Reflectivity = md.Reflectivity
	if md.Reflectivity < 0 || md.Reflectivity > 1 {
		return nil, invalidField(path+".reflectivity", "must be in [0, 1], got %g", md.Reflectivity)
	}

	mat.Refractive = md.IsRefractive
	mat.RefractiveIndex = valueOr(md.RefractiveIndex, 1.0)

	if md.Texture != "" {
		texturePath, err := assets.resolve(path+".texture", md.Texture)
		if err != nil {
			return nil, err
		}
		texture, err := loaders.LoadTexture(texturePath)
		if err != nil {
			logger.Warningf("%s.texture: %v; rendering untextured", path, err)
		} else {
			mat.Texture = texture
		}
	}

	return mat, nil
}

func requireVec3(path string, values []float64) (core.Vec3, error) {
	if values == nil {
		return core.Vec3{}, missingField(path)
	}
	if len(values) != 3 {
		return core.Vec3{}, invalidField(path, "expected 3 components, got %d", len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

func requirePositive(path string, value *float64) (float64, error) {
	if value == nil {
		return 0, missingField(path)
	}
	if *value <= 0 {
		return 0, invalidField(path, "must be positive, got %g", *value)
	}
	return *value, nil
}

func valueOr(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}
