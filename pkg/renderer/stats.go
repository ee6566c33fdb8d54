package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera samples taken
	SamplesPerPixel int           // Samples taken for every pixel
	NumBands        int           // Number of scanline bands (and workers)
	Duration        time.Duration // Wall time from worker start to reassembly
	NonFinitePixels int           // Pixels whose sum holds a NaN or Inf; encoded as black
	Bands           []BandStats   // Per-band timings in band order
}

// BandStats records how one band was rendered
type BandStats struct {
	Index    int
	StartRow int
	EndRow   int
	Pixels   int
	Duration time.Duration
}

// newRenderStats builds statistics from the band results of a finished render
func newRenderStats(results []BandResult, width, samplesPerPixel int, duration time.Duration) RenderStats {
	stats := RenderStats{
		SamplesPerPixel: samplesPerPixel,
		NumBands:        len(results),
		Duration:        duration,
		Bands:           make([]BandStats, 0, len(results)),
	}

	for _, result := range results {
		pixels := result.Band.Rows() * width
		stats.TotalPixels += pixels
		stats.Bands = append(stats.Bands, BandStats{
			Index:    result.Band.Index,
			StartRow: result.Band.StartRow,
			EndRow:   result.Band.EndRow,
			Pixels:   pixels,
			Duration: result.Duration,
		})
		for _, p := range result.Pixels {
			if !p.IsFinite() {
				stats.NonFinitePixels++
			}
		}
	}
	stats.TotalSamples = stats.TotalPixels * samplesPerPixel

	return stats
}
