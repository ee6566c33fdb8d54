package renderer

import (
	"context"
	"sync"
	"time"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// BandResult contains the result from rendering a band
type BandResult struct {
	Band     Band
	Pixels   []core.Vec3 // Owned by the worker until Wait returns
	Duration time.Duration
	Error    error
}

// WorkerPool renders a fixed set of bands with one goroutine per band.
// Workers are started once and joined once; there is no work stealing.
type WorkerPool struct {
	renderer *BandRenderer
	workers  []*Worker
	results  []BandResult // Indexed by band, not completion order
	logger   core.Logger
	wg       sync.WaitGroup
}

// Worker renders a single band with its own random source
type Worker struct {
	ID      int
	band    Band
	sampler *core.RandomSampler
	pool    *WorkerPool
}

// NewWorkerPool creates one worker per band
func NewWorkerPool(renderer *BandRenderer, bands []Band, seed int64, logger core.Logger) *WorkerPool {
	wp := &WorkerPool{
		renderer: renderer,
		results:  make([]BandResult, len(bands)),
		logger:   logger,
	}

	for i, band := range bands {
		wp.workers = append(wp.workers, &Worker{
			ID:   i,
			band: band,
			// Reseeded per pixel during rendering; the initial seed only keeps sources distinct
			sampler: core.NewSeededSampler(core.PixelSeed(seed, -1-i)),
			pool:    wp,
		})
	}

	return wp
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return len(wp.workers)
}

// Start launches every worker
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Wait blocks until every worker has finished and returns the results in band order
func (wp *WorkerPool) Wait() []BandResult {
	wp.wg.Wait()
	return wp.results
}

// run renders the worker's band into its private slot of the result array
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	start := time.Now()
	pixels, err := w.pool.renderer.RenderBand(ctx, w.band, w.sampler)

	// Each worker writes only its own index, so no lock is needed
	w.pool.results[w.band.Index] = BandResult{
		Band:     w.band,
		Pixels:   pixels,
		Duration: time.Since(start),
		Error:    err,
	}

	if err == nil {
		w.pool.logger.Printf("Finished rendering lines %d to %d\n", w.band.StartRow, w.band.EndRow)
	}
}
