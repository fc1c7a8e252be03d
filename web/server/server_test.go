package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// sphereDocument is a 20x16 scene with a unit sphere straight ahead of the camera
const sphereDocument = `{
  "name": "Test Sphere",
  "group": "Tests",
  "rendermode": "phong",
  "camera": {
    "width": 20, "height": 16,
    "position": [0, 0, 5], "lookAt": [0, 0, 0], "upVector": [0, 1, 0], "fov": 45
  },
  "scene": {
    "backgroundcolor": [0, 0, 0.2],
    "lightsources": [ { "type": "pointlight", "position": [0, 5, 5], "intensity": [1, 1, 1] } ],
    "shapes": [
      { "type": "sphere", "center": [0, 0, 0], "radius": 1,
        "material": { "diffusecolor": [0.8, 0.2, 0.2], "specularcolor": [1, 1, 1] } }
    ]
  }
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sphere.json"), []byte(sphereDocument), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return NewServer(0, dir)
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := serve(newTestServer(t), httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleScenes_ListsBuiltinsAndFiles(t *testing.T) {
	rec := serve(newTestServer(t), httptest.NewRequest(http.MethodGet, "/api/scenes", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body struct {
		Groups []struct {
			Name   string `json:"name"`
			Scenes []struct {
				ID   string `json:"id"`
				Type string `json:"type"`
			} `json:"scenes"`
		} `json:"groups"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	ids := make(map[string]string)
	for _, group := range body.Groups {
		for _, sc := range group.Scenes {
			ids[sc.ID] = group.Name
		}
	}
	if _, ok := ids["default"]; !ok {
		t.Errorf("Expected built-in default scene, got %v", ids)
	}
	if group := ids["json:sphere"]; group != "Tests" {
		t.Errorf("Expected json:sphere in group Tests, got %q", group)
	}
}

func TestHandleRender_PNG(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/render?scene=json:sphere&samples=1", nil)
	rec := serve(newTestServer(t), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 16 {
		t.Errorf("Expected 20x16, got %v", img.Bounds())
	}
}

func TestHandleRender_PPMWithResolutionOverride(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/render?scene=binary&width=8&height=6&format=ppm", nil)
	rec := serve(newTestServer(t), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := rec.Body.Bytes()
	header := []byte("P6\n8 6\n255\n")
	if !bytes.HasPrefix(body, header) {
		t.Fatalf("Expected PPM header %q, got %q", header, body[:min(len(body), 16)])
	}
	if len(body) != len(header)+8*6*3 {
		t.Errorf("Expected %d bytes, got %d", len(header)+8*6*3, len(body))
	}
}

func TestHandleRender_PostedDocument(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/render?width=10&height=8", strings.NewReader(sphereDocument))
	rec := serve(newTestServer(t), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 8 {
		t.Errorf("Expected 10x8, got %v", img.Bounds())
	}
}

// texturedDocument is a one-sphere document whose material names texture
func texturedDocument(texture string) string {
	return `{"rendermode": "phong",
	  "camera": {"width": 4, "height": 4, "position": [0,0,5], "lookAt": [0,0,0], "upVector": [0,1,0], "fov": 45},
	  "scene": {"shapes": [{"type": "sphere", "center": [0,0,0], "radius": 1,
	    "material": {"diffusecolor": [1,1,1], "specularcolor": [1,1,1], "texture": "` + texture + `"}}]}}`
}

func TestHandleRender_SamplesParameter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/render?scene=json:sphere&samples=3", nil)
	rec := serve(newTestServer(t), req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Render-Samples"); got != "960" {
		t.Errorf("Expected 20*16*3 = 960 samples, got %q", got)
	}
}

func TestHandleRender_PostedTextureInsideScenesDir(t *testing.T) {
	s := newTestServer(t)
	// A missing texture inside the directory only renders untextured
	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(texturedDocument("textures/missing.png")))
	rec := serve(s, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleRender_Errors(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		expected int
	}{
		{"unknown scene", http.MethodGet, "/api/render?scene=nope", "", http.StatusNotFound},
		{"path traversal", http.MethodGet, "/api/render?scene=json:../sphere", "", http.StatusNotFound},
		{"file path", http.MethodGet, "/api/render?scene=/etc/passwd", "", http.StatusNotFound},
		{"width out of range", http.MethodGet, "/api/render?width=0", "", http.StatusBadRequest},
		{"bad format", http.MethodGet, "/api/render?format=exr", "", http.StatusBadRequest},
		{"bad mode", http.MethodGet, "/api/render?scene=binary&width=4&height=4&mode=wireframe", "", http.StatusBadRequest},
		{"bad tonemap", http.MethodGet, "/api/render?scene=binary&width=4&height=4&tonemap=filmic", "", http.StatusBadRequest},
		{"missing camera", http.MethodPost, "/api/render", `{"rendermode": "phong", "scene": {}}`, http.StatusBadRequest},
		{"posted texture outside scenes dir", http.MethodPost, "/api/render", texturedDocument("../outside.png"), http.StatusBadRequest},
		{"posted absolute texture", http.MethodPost, "/api/render", texturedDocument("/etc/outside.png"), http.StatusBadRequest},
		{"samples out of range", http.MethodGet, "/api/render?scene=binary&samples=0", "", http.StatusBadRequest},
		{"wrong method", http.MethodDelete, "/api/render", "", http.StatusMethodNotAllowed},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			rec := serve(s, req)
			if rec.Code != tt.expected {
				t.Fatalf("Expected %d, got %d: %s", tt.expected, rec.Code, rec.Body.String())
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body["error"] == "" {
				t.Errorf("Expected a JSON error body, got %v (err %v)", body, err)
			}
		})
	}
}

func TestHandleRender_CancelledRequestWritesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/render?scene=json:sphere", nil).WithContext(ctx)
	rec := serve(newTestServer(t), req)
	if rec.Body.Len() != 0 {
		t.Errorf("Expected an empty response for a cancelled render, got %d bytes", rec.Body.Len())
	}
}

func TestHandleInspect(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/inspect?scene=json:sphere&x=10&y=8", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var hit InspectResponse
	if err := json.NewDecoder(rec.Body).Decode(&hit); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !hit.Hit || hit.GeometryType != "sphere" || !hit.FrontFace {
		t.Errorf("Expected a front-face sphere hit, got %+v", hit)
	}
	if hit.Normal[2] <= 0 {
		t.Errorf("Expected the normal to face the camera, got %v", hit.Normal)
	}

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/inspect?scene=json:sphere&x=0&y=0", nil))
	var miss InspectResponse
	if err := json.NewDecoder(rec.Body).Decode(&miss); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if miss.Hit {
		t.Errorf("Expected the corner pixel to miss, got %+v", miss)
	}
	if miss.Color != [3]float64{0, 0, 0.2} {
		t.Errorf("Expected the background color, got %v", miss.Color)
	}

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/api/inspect?scene=json:sphere&x=99&y=0", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an out of range pixel, got %d", rec.Code)
	}
}

func TestHandleSceneConfig(t *testing.T) {
	rec := serve(newTestServer(t), httptest.NewRequest(http.MethodGet, "/api/scene-config?scene=json:sphere", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Defaults struct {
			Width      int    `json:"width"`
			Height     int    `json:"height"`
			RenderMode string `json:"renderMode"`
		} `json:"defaults"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if body.Defaults.Width != 20 || body.Defaults.Height != 16 || body.Defaults.RenderMode != "phong" {
		t.Errorf("Unexpected defaults %+v", body.Defaults)
	}
}
