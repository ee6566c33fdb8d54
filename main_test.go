package main

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-scanline-raytracer/pkg/output"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
	"github.com/df07/go-scanline-raytracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		aspect      float64
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", 0, false},
		{"random scene", "random", 0, false},
		{"simple scene", "simple", 0, false},
		{"default scene square", "default", 1, false},

		// Scene files
		{"json scene", "scenes/three-spheres.json", 0, false},

		// Invalid scenes
		{"unknown scene", "nonexistent", 0, true},
		{"missing json path", "scenes/nonexistent.json", 0, true},
		{"empty scene name", "", 0, true},
		{"negative aspect", "default", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, 42, tt.aspect)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.Camera == nil {
				t.Error("Scene should have a camera")
			}
			if s.GetPrimitiveCount() == 0 {
				t.Error("Scene should have spheres")
			}
			if tt.aspect > 0 && s.CameraConfig.AspectRatio != tt.aspect {
				t.Errorf("Expected aspect %g, got %g", tt.aspect, s.CameraConfig.AspectRatio)
			}
		})
	}
}

func TestRenderConfig_Overrides(t *testing.T) {
	s, err := scene.NewDefaultScene()
	if err != nil {
		t.Fatal(err)
	}

	config := renderConfig(s, &options{width: 160, spp: 3, depth: 0, workers: 4, seed: 9})
	expected := renderer.SamplingConfig{Width: 160, Height: 90, SamplesPerPixel: 3, MaxDepth: 0, NumWorkers: 4, Seed: 9}
	if config != expected {
		t.Errorf("Expected %+v, got %+v", expected, config)
	}

	config = renderConfig(s, &options{depth: -1})
	if config.Width != 400 || config.Height != 225 || config.MaxDepth != 50 {
		t.Errorf("Expected scene defaults, got %+v", config)
	}
}

func TestRun_PPMToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"-scene", "default", "-width", "16", "-spp", "2", "-depth", "3", "-workers", "3"}

	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v\nstderr:\n%s", err, stderr.String())
	}

	if !strings.HasPrefix(stdout.String(), "P3\n16 9\n255\n") {
		t.Errorf("Unexpected PPM header: %q", stdout.String()[:min(20, stdout.Len())])
	}
	if lines := strings.Count(stdout.String(), "\n"); lines != 3+16*9 {
		t.Errorf("Expected %d lines, got %d", 3+16*9, lines)
	}

	// Progress never goes to the image stream
	for _, want := range []string{
		"Finished rendering lines",
		"Done (4 spheres: 2 lambertian, 1 metal, 1 dielectric)",
		"(vfov 20, aperture 2)",
	} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("Expected %q on stderr, got:\n%s", want, stderr.String())
		}
	}
	if strings.Contains(stdout.String(), "Finished") {
		t.Error("Progress leaked into the image stream")
	}
}

func TestRun_WorkerCountDoesNotChangeImage(t *testing.T) {
	render := func(workers string) string {
		var stdout, stderr bytes.Buffer
		args := []string{"-scene", "simple", "-width", "20", "-spp", "3", "-depth", "5", "-workers", workers, "-seed", "5"}
		if err := run(context.Background(), args, &stdout, &stderr); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return stdout.String()
	}

	if render("1") != render("4") {
		t.Error("1-worker and 4-worker renders differ for the same seed")
	}
}

func TestRun_PNGFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "render.png")
	var stdout, stderr bytes.Buffer
	args := []string{"-scene", "simple", "-width", "12", "-aspect", "1.5", "-spp", "1", "-depth", "2", "-output", path}

	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected nothing on stdout when writing a file, got %d bytes", stdout.Len())
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 8 {
		t.Errorf("Expected 12x8 image, got %v", b)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"zero samples", []string{"-spp", "-1"}, renderer.ErrInvalidConfig},
		{"negative depth", []string{"-depth", "-5"}, renderer.ErrInvalidConfig},
		{"negative workers", []string{"-workers", "-2"}, renderer.ErrInvalidConfig},
		{"negative width", []string{"-width", "-10"}, renderer.ErrInvalidConfig},
		{"unknown format", []string{"-format", "gif"}, output.ErrUnknownFormat},
		{"unknown scene", []string{"-scene", "nope"}, scene.ErrUnknownScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args, &stdout, &stderr)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if stdout.Len() != 0 {
				t.Error("Nothing should be written to stdout on a configuration error")
			}
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	err := run(ctx, []string{"-width", "16", "-spp", "1"}, &stdout, &stderr)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if stdout.Len() != 0 {
		t.Error("A cancelled render should not write an image")
	}
}
