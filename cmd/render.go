package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/imageio"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// RenderOptions collects the render command's flags. Zero values leave the
// scene's own settings untouched.
type RenderOptions struct {
	SceneID   string
	ScenesDir string
	Out       string
	Format    string

	Width    int
	Height   int
	Samples  int
	MaxDepth int
	Seed     int64
	SeedSet  bool
	Exposure float64
	ToneMap  string
	NoBVH    bool
	BVHSplit string
	Mode     string
	Workers  int
	TileSize int
}

// RenderFrame renders a single frame and writes it to disk.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := RenderOptions{
		SceneID:   ctx.String("scene"),
		ScenesDir: ctx.String("scenes-dir"),
		Out:       ctx.String("out"),
		Format:    ctx.String("format"),
		Width:     ctx.Int("width"),
		Height:    ctx.Int("height"),
		Samples:   ctx.Int("spp"),
		MaxDepth:  ctx.Int("depth"),
		Seed:      ctx.Int64("seed"),
		SeedSet:   ctx.IsSet("seed"),
		Exposure:  ctx.Float64("exposure"),
		ToneMap:   ctx.String("tonemap"),
		NoBVH:     ctx.Bool("no-bvh"),
		BVHSplit:  ctx.String("bvh-split"),
		Mode:      ctx.String("mode"),
		Workers:   ctx.Int("workers"),
		TileSize:  ctx.Int("tile-size"),
	}
	if ctx.NArg() > 0 {
		opts.SceneID = ctx.Args().First()
	}

	// Ctrl+C stops the workers and discards the partial frame
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stats, err := Render(runCtx, opts)
	if err != nil {
		return err
	}

	displayRenderStats(stats)
	return nil
}

// Render loads the scene, applies opts, renders it and saves the image.
func Render(ctx context.Context, opts RenderOptions) (renderer.RenderStats, error) {
	format, err := outputFormat(opts)
	if err != nil {
		return renderer.RenderStats{}, err
	}

	sc, err := scene.Load(opts.SceneID, opts.ScenesDir, geometry.CameraConfig{Width: opts.Width, Height: opts.Height})
	if err != nil {
		return renderer.RenderStats{}, err
	}
	if err := applyRenderOptions(sc, opts); err != nil {
		return renderer.RenderStats{}, err
	}

	logger.Noticef("rendering scene %q (%d primitives, %d lights) at %dx%d",
		opts.SceneID, sc.GetPrimitiveCount(), len(sc.Lights), sc.Camera.Width(), sc.Camera.Height())

	config := renderer.DefaultConfig()
	if opts.Workers > 0 {
		config.NumWorkers = opts.Workers
	}
	if opts.TileSize > 0 {
		config.TileSize = opts.TileSize
	}

	rt := renderer.NewRaytracer(sc, config)
	toneMapper, err := rt.ToneMapper()
	if err != nil {
		return renderer.RenderStats{}, err
	}

	fb, stats, err := rt.Render(ctx)
	if err != nil {
		return stats, err
	}

	img := fb.ToRGBA(toneMapper)
	if err := imageio.Save(opts.Out, img, format); err != nil {
		return stats, err
	}
	stats.AverageLuma = renderer.CalculateAverageLuminance(img)
	logger.Noticef("wrote frame to %s (average luminance %.3f)", opts.Out, stats.AverageLuma)

	return stats, nil
}

// applyRenderOptions overrides scene settings with the flags that were given
func applyRenderOptions(sc *scene.Scene, opts RenderOptions) error {
	cfg := &sc.SamplingConfig
	if opts.Samples > 0 {
		cfg.SamplesPerPixel = opts.Samples
	}
	if opts.MaxDepth > 0 {
		cfg.MaxDepth = opts.MaxDepth
	}
	if opts.SeedSet {
		cfg.Seed = opts.Seed
	}
	if opts.Exposure > 0 {
		cfg.Exposure = opts.Exposure
	}
	if opts.ToneMap != "" {
		cfg.ToneMapping = opts.ToneMap
	}
	if opts.NoBVH {
		sc.Accelerate = false
	}
	if opts.BVHSplit != "" {
		strategy, err := scene.ParseSplitStrategy(opts.BVHSplit)
		if err != nil {
			return err
		}
		sc.SplitStrategy = strategy
	}

	switch scene.RenderMode(opts.Mode) {
	case "":
	case scene.ModeBinary, scene.ModePhong:
		sc.Mode = scene.RenderMode(opts.Mode)
	default:
		return fmt.Errorf("unknown render mode %q", opts.Mode)
	}

	return nil
}

// outputFormat picks the explicit format or infers it from the output path
func outputFormat(opts RenderOptions) (imageio.Format, error) {
	if opts.Format != "" {
		return imageio.ParseFormat(opts.Format)
	}
	return imageio.FormatFromPath(opts.Out)
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Tiles", "Pixels", "% of frame", "Samples", "Render time"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", stat.ID),
			fmt.Sprintf("%d", stat.Tiles),
			fmt.Sprintf("%d", stat.Pixels),
			fmt.Sprintf("%02.1f %%", stat.FramePercent(stats.TotalPixels)),
			fmt.Sprintf("%d", stat.Samples),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{
		"", fmt.Sprintf("%d", stats.Tiles), fmt.Sprintf("%d", stats.TotalPixels),
		"TOTAL", fmt.Sprintf("%d", stats.TotalSamples), stats.RenderTime.String(),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
