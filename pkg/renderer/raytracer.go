package renderer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/integrator"
)

// ErrInvalidConfig is returned when sampling settings cannot produce an image
var ErrInvalidConfig = errors.New("invalid render config")

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Number of scanline bands / workers (0 = use CPU count)
	Seed            int64 // Base seed; every pixel derives its own stream from it
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Validate checks the configuration. NumWorkers of 0 is accepted and means auto-detect.
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel %d must be positive", ErrInvalidConfig, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth %d must not be negative", ErrInvalidConfig, c.MaxDepth)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count %d must not be negative", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() Camera
	GetWorld() integrator.World
	GetBackground() integrator.Background
}

// Raytracer splits an image into scanline bands, renders them in parallel
// and reassembles the result in band order
type Raytracer struct {
	scene      Scene
	config     SamplingConfig
	integrator *integrator.PathTracingIntegrator
	logger     core.Logger
}

// NewRaytracer validates the configuration and creates a raytracer.
// All validation happens here, before any worker exists.
func NewRaytracer(scene Scene, config SamplingConfig, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if scene == nil || scene.GetCamera() == nil || scene.GetWorld() == nil {
		return nil, fmt.Errorf("%w: scene needs a camera and a world", ErrInvalidConfig)
	}
	if config.NumWorkers == 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = NewNopLogger()
	}

	integratorConfig := integrator.Config{
		MaxDepth:   config.MaxDepth,
		ShadowBias: integrator.DefaultShadowBias,
		Background: scene.GetBackground(),
	}
	if err := integratorConfig.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &Raytracer{
		scene:      scene,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(integratorConfig),
		logger:     logger,
	}, nil
}

// Config returns the effective configuration, with the worker count resolved
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// Render renders the whole image. Cancelling ctx stops workers at the next
// scanline boundary and returns the context error.
func (rt *Raytracer) Render(ctx context.Context) (*Image, RenderStats, error) {
	bands := NewBands(rt.config.Height, rt.config.NumWorkers)

	bandRenderer := NewBandRenderer(
		rt.scene.GetCamera(),
		rt.scene.GetWorld(),
		rt.integrator,
		rt.config.Width,
		rt.config.Height,
		rt.config.SamplesPerPixel,
		rt.config.Seed,
	)

	pool := NewWorkerPool(bandRenderer, bands, rt.config.Seed, rt.logger)
	rt.logger.Printf("Rendering %dx%d on %d workers (%d lines per band)\n",
		rt.config.Width, rt.config.Height, pool.GetNumWorkers(), bands[0].Rows())
	integratorConfig := rt.integrator.Config()
	rt.logger.Printf("Path tracing to depth %d (shadow bias %g)\n", integratorConfig.MaxDepth, integratorConfig.ShadowBias)
	for _, band := range bands {
		rt.logger.Printf("Started rendering on lines %d to %d\n", band.StartRow, band.EndRow)
	}

	startTime := time.Now()
	pool.Start(ctx)
	results := pool.Wait()

	img, err := assemble(results, rt.config)
	if err != nil {
		return nil, RenderStats{}, err
	}

	stats := newRenderStats(results, rt.config.Width, rt.config.SamplesPerPixel, time.Since(startTime))
	rt.logger.Printf("%d pixels written\nFinished rendering in %v\n", stats.TotalPixels, stats.Duration)
	if stats.NonFinitePixels > 0 {
		rt.logger.Printf("Warning: %d pixels have non-finite color and will be written black\n", stats.NonFinitePixels)
	}

	return img, stats, nil
}

// assemble concatenates band buffers in band index order
func assemble(results []BandResult, config SamplingConfig) (*Image, error) {
	img := NewImage(config.Width, config.Height, config.SamplesPerPixel)

	for _, result := range results {
		if result.Error != nil {
			return nil, fmt.Errorf("band %d (lines %d-%d): %w",
				result.Band.Index, result.Band.StartRow, result.Band.EndRow, result.Error)
		}
		if want := result.Band.Rows() * config.Width; len(result.Pixels) != want {
			return nil, fmt.Errorf("band %d returned %d pixels, expected %d", result.Band.Index, len(result.Pixels), want)
		}
		img.Pixels = append(img.Pixels, result.Pixels...)
	}

	return img, nil
}
