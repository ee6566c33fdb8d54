package renderer

import (
	"context"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/integrator"
)

// Camera maps normalized image-plane coordinates to primary rays
type Camera interface {
	GetRay(s, t float64, sampler core.Sampler) core.Ray
}

// BandRenderer takes the per-pixel samples for a band of scanlines.
// It holds only read-only state and can be shared by every worker.
type BandRenderer struct {
	camera     Camera
	world      integrator.World
	integrator integrator.Integrator
	width      int
	height     int
	samples    int
	seed       int64
}

// NewBandRenderer creates a band renderer for an image of the given size
func NewBandRenderer(camera Camera, world integrator.World, integratorInst integrator.Integrator, width, height, samplesPerPixel int, seed int64) *BandRenderer {
	return &BandRenderer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		width:      width,
		height:     height,
		samples:    samplesPerPixel,
		seed:       seed,
	}
}

// RenderBand returns the summed samples for every pixel of the band, in
// top-to-bottom, left-to-right order. The sampler is reseeded per pixel from
// the renderer seed and the pixel index, so a pixel's value never depends on
// which band or worker produced it. The context is checked once per scanline.
func (br *BandRenderer) RenderBand(ctx context.Context, band Band, sampler *core.RandomSampler) ([]core.Vec3, error) {
	buf := make([]core.Vec3, 0, br.width*band.Rows())

	for y := band.StartRow; y < band.EndRow; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for x := 0; x < br.width; x++ {
			sampler.Reseed(core.PixelSeed(br.seed, y*br.width+x))
			buf = append(buf, br.samplePixel(x, y, sampler))
		}
	}

	return buf, nil
}

// samplePixel sums jittered samples for pixel (x, y), y counted from the top
func (br *BandRenderer) samplePixel(x, y int, sampler core.Sampler) core.Vec3 {
	// Image-plane rows run bottom-up
	j := br.height - 1 - y

	colorAccum := core.Vec3{}
	for s := 0; s < br.samples; s++ {
		u := (float64(x) + sampler.Get1D()) / planeExtent(br.width)
		v := (float64(j) + sampler.Get1D()) / planeExtent(br.height)

		ray := br.camera.GetRay(u, v, sampler)
		colorAccum = colorAccum.Add(br.integrator.RayColor(ray, br.world, sampler))
	}
	return colorAccum
}

// planeExtent is the divisor mapping pixel indices onto [0,1]; a single-pixel
// dimension would otherwise divide by zero
func planeExtent(n int) float64 {
	if n <= 1 {
		return 1
	}
	return float64(n - 1)
}
