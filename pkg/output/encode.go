package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/df07/go-scanline-raytracer/pkg/renderer"
)

// ErrUnknownFormat is returned for an unsupported output format name
var ErrUnknownFormat = errors.New("unknown output format")

// ErrInvalidImage is returned when an image cannot be encoded
var ErrInvalidImage = errors.New("invalid image")

// Format selects the image encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// ParseFormat accepts a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatPPM, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (expected ppm or png)", ErrUnknownFormat, name)
	}
}

// FormatForPath guesses the format from a file extension, falling back to def
func FormatForPath(path string, def Format) Format {
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".png"):
		return FormatPNG
	case strings.HasSuffix(strings.ToLower(path), ".ppm"):
		return FormatPPM
	default:
		return def
	}
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img *renderer.Image, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, img)
	case FormatPNG:
		return WritePNG(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func checkImage(img *renderer.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	if img.Width <= 0 || img.Height <= 0 || img.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: %dx%d with %d samples per pixel", ErrInvalidImage, img.Width, img.Height, img.SamplesPerPixel)
	}
	if len(img.Pixels) != img.Width*img.Height {
		return fmt.Errorf("%w: %d pixels for a %dx%d image", ErrInvalidImage, len(img.Pixels), img.Width, img.Height)
	}
	return nil
}
