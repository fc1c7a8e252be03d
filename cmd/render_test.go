package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/imageio"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const documentWithTriangle = `{
  "rendermode": "binary",
  "camera": {
    "width": 12, "height": 10,
    "position": [0, 0, 5], "lookAt": [0, 0, 0], "upVector": [0, 1, 0], "fov": 45
  },
  "scene": {
    "backgroundcolor": [0, 0, 0],
    "shapes": [ { "type": "triangle", "v0": [-1, 0.5, 0], "v1": [1, 0.5, 0], "v2": [0, 1.5, 0] } ]
  }
}`

func TestApplyRenderOptions(t *testing.T) {
	sc, err := scene.NewBuiltin("default")
	if err != nil {
		t.Fatalf("NewBuiltin failed: %v", err)
	}

	opts := RenderOptions{
		Samples:  3,
		MaxDepth: 7,
		Seed:     0,
		SeedSet:  true,
		Exposure: 2,
		ToneMap:  scene.ToneMapClamp,
		NoBVH:    true,
		BVHSplit: "longest-axis",
		Mode:     "binary",
	}
	if err := applyRenderOptions(sc, opts); err != nil {
		t.Fatalf("applyRenderOptions failed: %v", err)
	}

	cfg := sc.SamplingConfig
	if cfg.SamplesPerPixel != 3 || cfg.MaxDepth != 7 || cfg.Seed != 0 || cfg.Exposure != 2 || cfg.ToneMapping != scene.ToneMapClamp {
		t.Errorf("Unexpected sampling config %+v", cfg)
	}
	if sc.Accelerate {
		t.Error("Expected BVH to be disabled")
	}
	if sc.SplitStrategy != geometry.SplitLongestAxis {
		t.Errorf("Expected longest-axis strategy, got %s", sc.SplitStrategy)
	}
	if sc.Mode != scene.ModeBinary {
		t.Errorf("Expected binary mode, got %q", sc.Mode)
	}
}

func TestApplyRenderOptions_ZeroValuesKeepScene(t *testing.T) {
	sc, err := scene.NewBuiltin("default")
	if err != nil {
		t.Fatalf("NewBuiltin failed: %v", err)
	}
	before := sc.SamplingConfig

	if err := applyRenderOptions(sc, RenderOptions{}); err != nil {
		t.Fatalf("applyRenderOptions failed: %v", err)
	}
	if sc.SamplingConfig != before {
		t.Errorf("Expected sampling config %+v to be unchanged, got %+v", before, sc.SamplingConfig)
	}
	if !sc.Accelerate || sc.Mode != scene.ModePhong {
		t.Error("Expected acceleration and phong mode to be kept")
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		opts     RenderOptions
		expected imageio.Format
		wantErr  bool
	}{
		{RenderOptions{Out: "frame.png"}, imageio.FormatPNG, false},
		{RenderOptions{Out: "frame.ppm"}, imageio.FormatPPM, false},
		{RenderOptions{Out: "frame.png", Format: "ppm3"}, imageio.FormatPPMASCII, false},
		{RenderOptions{Out: "frame"}, "", true},
	}

	for _, tt := range tests {
		got, err := outputFormat(tt.opts)
		if tt.wantErr {
			if !errors.Is(err, imageio.ErrUnknownFormat) {
				t.Errorf("%+v: expected ErrUnknownFormat, got %v", tt.opts, err)
			}
			continue
		}
		if err != nil || got != tt.expected {
			t.Errorf("%+v: expected %s, got %s (err %v)", tt.opts, tt.expected, got, err)
		}
	}
}

func TestRender_SceneDocumentOrientation(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "triangle.json")
	if err := os.WriteFile(docPath, []byte(documentWithTriangle), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	out := filepath.Join(dir, "frame.ppm")

	stats, err := Render(context.Background(), RenderOptions{SceneID: docPath, Out: out, Format: "ppm3", Workers: 2})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if stats.TotalPixels != 120 {
		t.Errorf("Expected 120 pixels, got %d", stats.TotalPixels)
	}
	// A black background with a few marker pixels
	if stats.AverageLuma <= 0 || stats.AverageLuma >= 0.5 {
		t.Errorf("Expected a dim frame with some marker pixels, got average luminance %f", stats.AverageLuma)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "P3" || lines[1] != "12 10" || lines[2] != "255" {
		t.Fatalf("Unexpected header %q", lines[:3])
	}

	// Pixel lines follow the header, one per pixel, top row first
	pixels := lines[3:]
	if len(pixels) != 120 {
		t.Fatalf("Expected 120 pixel lines, got %d", len(pixels))
	}
	var top, bottom int
	for i, line := range pixels {
		if line == "0 0 0" {
			continue
		}
		if i/12 < 5 {
			top++
		} else {
			bottom++
		}
	}
	if top == 0 || bottom != 0 {
		t.Errorf("Expected the triangle only in the top rows, got %d top and %d bottom pixels", top, bottom)
	}
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(t.TempDir(), "frame.png")
	_, err := Render(ctx, RenderOptions{SceneID: "binary", Out: out, Width: 16, Height: 16})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("Expected no output file, got %v", err)
	}
}

func TestWriteSceneTable(t *testing.T) {
	response, err := scene.ListAllScenes(t.TempDir())
	if err != nil {
		t.Fatalf("ListAllScenes failed: %v", err)
	}

	var buf bytes.Buffer
	if err := writeSceneTable(&buf, response); err != nil {
		t.Fatalf("writeSceneTable failed: %v", err)
	}
	for _, name := range scene.BuiltinNames() {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("Expected %q in table:\n%s", name, buf.String())
		}
	}
}

func TestSceneStats(t *testing.T) {
	sc, err := scene.NewBuiltin("cylinders")
	if err != nil {
		t.Fatalf("NewBuiltin failed: %v", err)
	}

	stats := sceneStats(sc)
	for _, expected := range []string{"Cylinders", "BVH nodes", "Lights", "Focus distance"} {
		if !strings.Contains(stats, expected) {
			t.Errorf("Expected %q in scene stats:\n%s", expected, stats)
		}
	}
}
