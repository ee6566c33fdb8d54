package renderer

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

func TestNewRenderStats(t *testing.T) {
	bands := NewBands(10, 4)
	results := make([]BandResult, len(bands))
	for i, band := range bands {
		results[i] = BandResult{
			Band:     band,
			Pixels:   make([]core.Vec3, band.Rows()*8),
			Duration: time.Duration(i+1) * time.Millisecond,
		}
	}

	stats := newRenderStats(results, 8, 16, time.Second)

	if stats.TotalPixels != 80 {
		t.Errorf("Expected 80 pixels, got %d", stats.TotalPixels)
	}
	if stats.TotalSamples != 80*16 {
		t.Errorf("Expected %d samples, got %d", 80*16, stats.TotalSamples)
	}
	if stats.NumBands != 4 {
		t.Errorf("Expected 4 bands, got %d", stats.NumBands)
	}
	if stats.Duration != time.Second {
		t.Errorf("Expected 1s duration, got %v", stats.Duration)
	}

	// Last band is truncated to a single row
	last := stats.Bands[3]
	if last.StartRow != 9 || last.EndRow != 10 || last.Pixels != 8 {
		t.Errorf("Unexpected last band stats: %+v", last)
	}
	if last.Duration != 4*time.Millisecond {
		t.Errorf("Expected 4ms for last band, got %v", last.Duration)
	}
}

func TestNewRenderStats_CountsNonFinitePixels(t *testing.T) {
	results := []BandResult{
		{Band: Band{Index: 0, StartRow: 0, EndRow: 1}, Pixels: []core.Vec3{
			core.NewVec3(1, 1, 1), core.NewVec3(math.NaN(), 0, 0),
		}},
		{Band: Band{Index: 1, StartRow: 1, EndRow: 2}, Pixels: []core.Vec3{
			core.NewVec3(0, math.Inf(1), 0), core.NewVec3(0.5, 0.5, 0.5),
		}},
	}

	stats := newRenderStats(results, 2, 1, time.Millisecond)
	if stats.NonFinitePixels != 2 {
		t.Errorf("Expected 2 non-finite pixels, got %d", stats.NonFinitePixels)
	}
}

func TestAssemble_BandOrder(t *testing.T) {
	config := SamplingConfig{Width: 2, Height: 5, SamplesPerPixel: 1}
	bands := NewBands(config.Height, 3)

	// Fill each band with its own index so reassembly order is visible
	results := make([]BandResult, len(bands))
	for i, band := range bands {
		pixels := make([]core.Vec3, 0, band.Rows()*config.Width)
		for p := 0; p < band.Rows()*config.Width; p++ {
			pixels = append(pixels, core.NewVec3(float64(band.Index), 0, 0))
		}
		results[i] = BandResult{Band: band, Pixels: pixels}
	}

	img, err := assemble(results, config)
	if err != nil {
		t.Fatal(err)
	}

	expectedBand := []float64{0, 0, 1, 1, 2}
	for y := 0; y < config.Height; y++ {
		for x := 0; x < config.Width; x++ {
			if got := img.Sum(x, y).X; got != expectedBand[y] {
				t.Errorf("Row %d: expected pixels from band %v, got %v", y, expectedBand[y], got)
			}
		}
	}
}

func TestAssemble_PropagatesBandError(t *testing.T) {
	config := SamplingConfig{Width: 2, Height: 2, SamplesPerPixel: 1}
	results := []BandResult{
		{Band: Band{Index: 0, StartRow: 0, EndRow: 1}, Pixels: make([]core.Vec3, 2)},
		{Band: Band{Index: 1, StartRow: 1, EndRow: 2}, Error: context.Canceled},
	}

	if _, err := assemble(results, config); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected wrapped context.Canceled, got %v", err)
	}
}

func TestAssemble_RejectsShortBuffer(t *testing.T) {
	config := SamplingConfig{Width: 3, Height: 1, SamplesPerPixel: 1}
	results := []BandResult{
		{Band: Band{Index: 0, StartRow: 0, EndRow: 1}, Pixels: make([]core.Vec3, 2)},
	}

	if _, err := assemble(results, config); err == nil {
		t.Error("Expected an error for a short band buffer")
	}
}
