package renderer

import "github.com/df07/go-scanline-raytracer/pkg/core"

// Image holds per-pixel sample sums in row-major order, top scanline first.
// The sums are divided by SamplesPerPixel only at encoding time.
type Image struct {
	Width           int
	Height          int
	SamplesPerPixel int
	Pixels          []core.Vec3
}

// NewImage allocates an image of black pixels
func NewImage(width, height, samplesPerPixel int) *Image {
	return &Image{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samplesPerPixel,
		Pixels:          make([]core.Vec3, 0, width*height),
	}
}

// Sum returns the accumulated color of pixel (x, y), y counted from the top
func (img *Image) Sum(x, y int) core.Vec3 {
	return img.Pixels[y*img.Width+x]
}

