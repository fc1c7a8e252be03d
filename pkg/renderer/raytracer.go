package renderer

import (
	"context"
	"runtime"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var logger = log.New("renderer")

// DefaultTileSize is the edge length of a square tile in pixels
const DefaultTileSize = 32

// Config contains parallel rendering configuration
type Config struct {
	TileSize   int // Size of each tile in pixels
	NumWorkers int // Number of parallel workers (0 = auto-detect)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   DefaultTileSize,
		NumWorkers: runtime.NumCPU(),
	}
}

// Raytracer renders a scene into a framebuffer using a pool of tile workers
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config
}

// NewRaytracer creates a raytracer for scn using the Whitted integrator
func NewRaytracer(scn *scene.Scene, config Config) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}

	return &Raytracer{
		scene:      scn,
		integrator: integrator.NewWhittedIntegrator(),
		config:     config,
	}
}

// Render traces every pixel of the scene and returns linear radiance. The
// scene is treated as read-only for the duration of the call. Cancelling ctx
// stops the workers between scanlines and Render returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	scn := rt.scene
	if scn.Camera == nil {
		return nil, RenderStats{}, ErrNoCamera
	}

	width, height := scn.Camera.Width(), scn.Camera.Height()
	if width <= 0 || height <= 0 {
		return nil, RenderStats{}, ErrInvalidResolution
	}

	if scn.Intersector == nil {
		if err := scn.Preprocess(); err != nil {
			return nil, RenderStats{}, err
		}
	}

	spp := max(1, scn.SamplingConfig.SamplesPerPixel)
	fb := NewFramebuffer(width, height)
	tiles := NewTileGrid(width, height, rt.config.TileSize)

	logger.Infof("rendering %dx%d at %d spp, max depth %d, %d tiles on %d workers",
		width, height, spp, scn.SamplingConfig.MaxDepth, len(tiles), rt.config.NumWorkers)

	start := time.Now()
	tileRenderer := NewTileRenderer(scn, rt.integrator)
	pool := NewWorkerPool(tileRenderer, fb, scn.SamplingConfig.Seed, spp, rt.config.NumWorkers, len(tiles))
	pool.Start(ctx)

	for taskID, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: taskID})
	}

	stats := RenderStats{
		SamplesPerPixel: spp,
		Tiles:           len(tiles),
		Workers:         make([]WorkerStats, pool.GetNumWorkers()),
	}
	for i := range stats.Workers {
		stats.Workers[i].ID = i
	}

	var renderErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = ErrWorkerPoolExhausted
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}

		ws := &stats.Workers[result.WorkerID]
		ws.Tiles++
		ws.Pixels += result.Pixels
		ws.Samples += result.Samples
		ws.RenderTime += result.RenderTime

		stats.TotalPixels += result.Pixels
		stats.TotalSamples += result.Samples
	}
	pool.Stop()

	stats.RenderTime = time.Since(start)
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}

	if renderErr != nil {
		logger.Warningf("render aborted after %s: %v", stats.RenderTime, renderErr)
		return nil, stats, renderErr
	}

	logger.Infof("rendered %d pixels (%d samples) in %s", stats.TotalPixels, stats.TotalSamples, stats.RenderTime)
	return fb, stats, nil
}

// ToneMapper returns the operator selected by the scene's sampling config
func (rt *Raytracer) ToneMapper() (ToneMapper, error) {
	cfg := rt.scene.SamplingConfig
	return NewToneMapper(cfg.ToneMapping, cfg.Exposure)
}
