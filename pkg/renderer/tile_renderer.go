package renderer

import (
	"context"
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(scn *scene.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      scn,
		integrator: integratorInst,
	}
}

// RenderTileBounds renders every pixel inside bounds into fb. Tiles never
// overlap so concurrent calls write disjoint pixels. The context is checked
// between scanlines; on cancellation the tile is left partially rendered and
// ctx.Err() is returned.
func (tr *TileRenderer) RenderTileBounds(ctx context.Context, bounds image.Rectangle, fb *Framebuffer, sampler core.Sampler, samplesPerPixel int) (int, error) {
	samplesPerPixel = max(1, samplesPerPixel)
	samples := 0

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			return samples, err
		}

		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			fb.Set(i, j, tr.samplePixel(i, j, fb.Width, fb.Height, sampler, samplesPerPixel))
			samples += samplesPerPixel
		}
	}

	return samples, nil
}

// samplePixel averages samplesPerPixel camera rays through pixel (i, j).
// A single sample goes through the pixel centre; more samples are jittered.
func (tr *TileRenderer) samplePixel(i, j, width, height int, sampler core.Sampler, samplesPerPixel int) core.Vec3 {
	camera := tr.scene.Camera
	var ps PixelStats

	for s := 0; s < samplesPerPixel; s++ {
		offset := core.NewVec2(0.5, 0.5)
		if samplesPerPixel > 1 {
			offset = sampler.Get2D()
		}

		u := (float64(i) + offset.X) / float64(width)
		v := (float64(j) + offset.Y) / float64(height)

		ray := camera.GetRay(u, v, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, tr.scene))
	}

	return ps.GetColor()
}
