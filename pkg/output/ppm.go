package output

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
)

// maxIntensity keeps 256·x below 256 so the truncated channel fits in a byte
const maxIntensity = 0.999

// ToRGB8 converts a sample sum into 8-bit channels: divide by the sample
// count, gamma-correct with a square root, clamp to [0, 0.999], scale by
// 256 and truncate.
func ToRGB8(sum core.Vec3, samplesPerPixel int) (r, g, b int) {
	scale := 1.0 / float64(samplesPerPixel)
	return toByte(sum.X * scale), toByte(sum.Y * scale), toByte(sum.Z * scale)
}

func toByte(x float64) int {
	return int(256 * clamp(math.Sqrt(x), 0, maxIntensity))
}

// clamp also maps NaN to min
func clamp(x, min, max float64) float64 {
	if !(x >= min) {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// WritePPM encodes the image as plain-text PPM (P3), top scanline first
func WritePPM(w io.Writer, img *renderer.Image) error {
	if err := checkImage(img); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height)

	for _, sum := range img.Pixels {
		r, g, b := ToRGB8(sum, img.SamplesPerPixel)
		fmt.Fprintf(bw, "%d %d %d\n", r, g, b)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}
