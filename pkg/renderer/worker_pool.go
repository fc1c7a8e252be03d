package renderer

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int // For deterministic ordering
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID     int
	WorkerID   int
	Pixels     int
	Samples    int
	RenderTime time.Duration
	Error      error
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID              int
	tileRenderer    *TileRenderer
	framebuffer     *Framebuffer
	seed            int64
	samplesPerPixel int
	taskQueue       chan TileTask
	resultQueue     chan TileResult
}

// NewWorkerPool creates a worker pool that renders tiles of fb. maxTasks
// bounds the queues so submitting never blocks.
func NewWorkerPool(tileRenderer *TileRenderer, fb *Framebuffer, seed int64, samplesPerPixel, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTasks),
		resultQueue: make(chan TileResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:              i,
			tileRenderer:    tileRenderer,
			framebuffer:     fb,
			seed:            seed,
			samplesPerPixel: samplesPerPixel,
			taskQueue:       wp.taskQueue,
			resultQueue:     wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. Once the context is cancelled remaining tasks
// are drained without rendering so the pool can shut down promptly.
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		result := TileResult{TaskID: task.TaskID, WorkerID: w.ID}
		if err := ctx.Err(); err != nil {
			result.Error = err
			w.resultQueue <- result
			continue
		}

		// The sampler depends only on seed and tile so output does not depend
		// on which worker picks the tile up
		sampler := core.NewSeededSampler(w.seed, task.Tile.ID)

		start := time.Now()
		samples, err := w.tileRenderer.RenderTileBounds(ctx, task.Tile.Bounds, w.framebuffer, sampler, w.samplesPerPixel)
		result.RenderTime = time.Since(start)
		result.Samples = samples
		result.Error = err
		if err == nil {
			result.Pixels = task.Tile.Bounds.Dx() * task.Tile.Bounds.Dy()
		}

		w.resultQueue <- result
	}
}
