package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/material"
	"github.com/df07/go-scanline-raytracer/pkg/output"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
	"github.com/df07/go-scanline-raytracer/pkg/scene"
)

const scenesDir = "scenes"

// options holds parsed command line flags. Zero values (and -1 for depth)
// mean "use the scene's default".
type options struct {
	sceneName string
	width     int
	aspect    float64
	spp       int
	depth     int
	workers   int
	seed      int64
	format    string
	output    string
	help      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.sceneName, "scene", "default", "Scene name ('default', 'random', 'simple') or path to a .json scene file")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.Float64Var(&opts.aspect, "aspect", 0, "Aspect ratio width/height (0 = scene default)")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", -1, "Maximum ray bounce depth (-1 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of scanline bands rendered in parallel (0 = CPU count)")
	fs.Int64Var(&opts.seed, "seed", renderer.DefaultSamplingConfig().Seed, "Random seed; equal seeds give identical images")
	fs.StringVar(&opts.format, "format", "", "Output format: 'ppm' or 'png' (default from -output extension, else ppm)")
	fs.StringVar(&opts.output, "output", "-", "Output file, '-' for stdout")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.help {
		fs.SetOutput(os.Stdout)
		printHelp(fs)
		return nil, flag.ErrHelp
	}
	return opts, nil
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("Scanline Raytracer")
	fmt.Println("Usage: raytracer [options] > image.ppm")
	fmt.Println()
	fmt.Println("Options:")
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	scenes, err := scene.ListScenes(scenesDir)
	if err != nil {
		fmt.Printf("  (failed to list scenes: %v)\n", err)
		return
	}
	for _, s := range scenes {
		fmt.Printf("  %-10s - %s\n", s.ID, s.Description)
	}
	fmt.Println()
	fmt.Println("The image goes to stdout (or -output); progress goes to stderr.")
}

// createScene builds the named scene, applying an aspect ratio override if set
func createScene(sceneName string, seed int64, aspect float64) (*scene.Scene, error) {
	if aspect < 0 {
		return nil, fmt.Errorf("%w: aspect ratio %g must be positive", geometry.ErrInvalidCamera, aspect)
	}
	return scene.Create(sceneName, seed, geometry.CameraConfig{AspectRatio: aspect})
}

// describeMaterials summarizes the scene's spheres by material kind
func describeMaterials(s *scene.Scene) string {
	counts := s.MaterialCounts()
	var parts []string
	for _, kind := range []material.Kind{material.KindLambertian, material.KindMetal, material.KindDielectric} {
		if n := counts[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %v", n, kind))
		}
	}
	return strings.Join(parts, ", ")
}

// renderConfig merges flag overrides onto the scene's defaults
func renderConfig(s *scene.Scene, opts *options) renderer.SamplingConfig {
	config := s.RenderConfig()
	if opts.width != 0 {
		config.Width = opts.width
		config.Height = s.ImageHeight(opts.width)
	}
	if opts.spp != 0 {
		config.SamplesPerPixel = opts.spp
	}
	if opts.depth != -1 {
		config.MaxDepth = opts.depth
	}
	config.NumWorkers = opts.workers
	config.Seed = opts.seed
	return config
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	format := output.FormatForPath(opts.output, output.FormatPPM)
	if opts.format != "" {
		if format, err = output.ParseFormat(opts.format); err != nil {
			return err
		}
	}

	logger := renderer.NewDefaultLogger(stderr)
	logger.Printf("Setting up the world... ")

	selectedScene, err := createScene(opts.sceneName, opts.seed, opts.aspect)
	if err != nil {
		return err
	}
	logger.Printf("Done (%d spheres: %s)\n", selectedScene.GetPrimitiveCount(), describeMaterials(selectedScene))
	cam := selectedScene.Camera.Config()
	logger.Printf("Camera at %v looking at %v (vfov %g, aperture %g)\n", cam.LookFrom, cam.LookAt, cam.VFov, cam.Aperture)

	// All configuration is validated here, before any worker starts
	raytracer, err := renderer.NewRaytracer(selectedScene, renderConfig(selectedScene, opts), logger)
	if err != nil {
		return err
	}

	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}
	logger.Printf("Samples per pixel: %d, total samples: %d\n", stats.SamplesPerPixel, stats.TotalSamples)

	if opts.output == "-" {
		return output.Encode(stdout, img, format)
	}
	return writeFile(opts.output, img, format, logger)
}

func writeFile(path string, img *renderer.Image, format output.Format, logger core.Logger) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	if err := output.Encode(file, img, format); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", path)
	return nil
}
