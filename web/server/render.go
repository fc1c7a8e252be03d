package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/imageio"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	defaultSceneID  = "default"
	minDimension    = 1
	maxDimension    = 2000
	maxSamples      = 1024
	maxDepth        = 32
	maxRequestBytes = 4 << 20
)

var contentTypes = map[imageio.Format]string{
	imageio.FormatPNG:      "image/png",
	imageio.FormatPPM:      "image/x-portable-pixmap",
	imageio.FormatPPMASCII: "image/x-portable-pixmap",
	imageio.FormatBMP:      "image/bmp",
	imageio.FormatTIFF:     "image/tiff",
}

// RenderRequest represents the query parameters of a render request. Zero
// values keep the scene's own settings.
type RenderRequest struct {
	Scene    string         // Scene id, ignored when a document is posted
	Width    int            // Image width
	Height   int            // Image height
	Samples  int            // Samples per pixel
	MaxDepth int            // Maximum recursion depth
	Seed     *int64         // Sampler seed
	Exposure float64        // Tone mapping exposure
	ToneMap  string         // Tone mapping operator
	Mode     string         // Render mode override
	Format   imageio.Format // Output encoding
}

// handleRender renders a scene and responds with the encoded image. GET
// renders a built-in scene or a document from the scenes directory; POST
// renders the scene document in the request body. The render is cancelled
// when the client disconnects.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}

	var sceneObj *scene.Scene
	if r.Method == http.MethodPost {
		sceneObj, err = s.parsePostedScene(w, r, req)
	} else {
		sceneObj, err = s.loadScene(req.Scene, geometry.CameraConfig{Width: req.Width, Height: req.Height})
	}
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	if err := applyRenderRequest(sceneObj, req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rt := renderer.NewRaytracer(sceneObj, s.config)
	toneMapper, err := rt.ToneMapper()
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	fb, stats, err := rt.Render(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.Infof("render of %q abandoned: %v", req.Scene, err)
			return
		}
		writeError(w, statusForError(err), err)
		return
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, fb.ToRGBA(toneMapper), req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[req.Format])
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.RenderTime.Milliseconds(), 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warningf("failed to write render response: %v", err)
	}
}

// parseRenderRequest parses and validates the query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{
		Scene:   values.Get("scene"),
		ToneMap: values.Get("tonemap"),
		Mode:    values.Get("mode"),
	}
	if req.Scene == "" {
		req.Scene = defaultSceneID
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 0, 0, maxDepth); err != nil {
		return nil, err
	}
	if req.Exposure, err = parseFloatParam(values, "exposure", 0, 0.001, 1000); err != nil {
		return nil, err
	}
	if value := values.Get("seed"); value != "" {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
		req.Seed = &seed
	}

	req.Format = imageio.FormatPNG
	if value := values.Get("format"); value != "" {
		if req.Format, err = imageio.ParseFormat(value); err != nil {
			return nil, err
		}
	}

	if req.Width*req.Height > 800*600 && req.Samples > 64 {
		logger.Warning("large image with high sample count may render slowly")
	}

	return req, nil
}

// parsePostedScene builds a scene from the JSON document in the request body.
// Textures may only come from the scenes directory.
func (s *Server) parsePostedScene(w http.ResponseWriter, r *http.Request, req *RenderRequest) (*scene.Scene, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read scene document: %w", err)
	}

	sceneObj, err := scene.ParseConfined(body, s.scenesDir)
	if err != nil {
		return nil, err
	}

	if req.Width > 0 || req.Height > 0 {
		width, height := sceneObj.Camera.Width(), sceneObj.Camera.Height()
		if req.Width > 0 {
			width = req.Width
		}
		if req.Height > 0 {
			height = req.Height
		}
		sceneObj.SetResolution(width, height)
	}
	req.Scene = "posted document"
	return sceneObj, nil
}

// loadScene resolves a built-in name or "json:<name>" in the scenes
// directory. File paths are rejected so clients cannot read arbitrary files.
func (s *Server) loadScene(id string, overrides ...geometry.CameraConfig) (*scene.Scene, error) {
	if name, ok := strings.CutPrefix(id, scene.TypeFile+":"); ok {
		if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
			return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, id)
		}
	} else if !slices.Contains(scene.BuiltinNames(), id) {
		return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, id)
	}

	return scene.Load(id, s.scenesDir, overrides...)
}

// applyRenderRequest overrides scene settings with the request parameters
func applyRenderRequest(sceneObj *scene.Scene, req *RenderRequest) error {
	cfg := &sceneObj.SamplingConfig
	if req.Samples > 0 {
		cfg.SamplesPerPixel = req.Samples
	}
	if req.MaxDepth > 0 {
		cfg.MaxDepth = req.MaxDepth
	}
	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}
	if req.Exposure > 0 {
		cfg.Exposure = req.Exposure
	}
	if req.ToneMap != "" {
		cfg.ToneMapping = req.ToneMap
	}

	switch scene.RenderMode(req.Mode) {
	case "":
	case scene.ModeBinary, scene.ModePhong:
		sceneObj.Mode = scene.RenderMode(req.Mode)
	default:
		return fmt.Errorf("unknown render mode %q", req.Mode)
	}
	return nil
}
