package output

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"

	"github.com/df07/go-scanline-raytracer/pkg/renderer"
)

// newCanvas draws the image onto a gg context using the same per-channel
// conversion as the PPM writer
func newCanvas(img *renderer.Image) (*gg.Context, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}

	dc := gg.NewContext(img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := ToRGB8(img.Sum(x, y), img.SamplesPerPixel)
			dc.SetRGB255(r, g, b)
			dc.SetPixel(x, y)
		}
	}
	return dc, nil
}

// WritePNG encodes the image as PNG
func WritePNG(w io.Writer, img *renderer.Image) error {
	dc, err := newCanvas(img)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
