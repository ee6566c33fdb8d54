package scene

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/integrator"
	"github.com/df07/go-scanline-raytracer/pkg/material"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
)

var _ renderer.Scene = (*Scene)(nil)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	World          *geometry.HittableList
	Background     integrator.Background
	SamplingConfig SamplingConfig
}

// SamplingConfig holds the image settings a scene is tuned for.
// The height follows from the width and the camera aspect ratio.
type SamplingConfig struct {
	Width           int // Image width
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// newScene builds an empty scene, applying any camera overrides on top of
// the scene's own camera configuration
func newScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig, cameraOverrides []geometry.CameraConfig) (*Scene, error) {
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	camera, err := geometry.NewCamera(cameraConfig)
	if err != nil {
		return nil, err
	}

	return &Scene{
		Camera:         camera,
		CameraConfig:   cameraConfig,
		World:          geometry.NewHittableList(),
		Background:     integrator.DefaultBackground(),
		SamplingConfig: samplingConfig,
	}, nil
}

// AddSphere adds a sphere to the world
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat *material.Material) error {
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		return err
	}
	s.World.Add(sphere)
	return nil
}

// GetCamera returns the camera, or nil when the scene has none
func (s *Scene) GetCamera() renderer.Camera {
	if s.Camera == nil {
		return nil
	}
	return s.Camera
}

// GetWorld returns the scene's objects, or nil when the scene has none
func (s *Scene) GetWorld() integrator.World {
	if s.World == nil {
		return nil
	}
	return s.World
}

// GetBackground returns the color gradient for escaping rays
func (s *Scene) GetBackground() integrator.Background {
	return s.Background
}

// GetPrimitiveCount returns the number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	if s.World == nil {
		return 0
	}
	return s.World.Len()
}

// MaterialCounts returns how many spheres use each kind of material
func (s *Scene) MaterialCounts() map[material.Kind]int {
	counts := make(map[material.Kind]int)
	if s.World == nil {
		return counts
	}
	for _, shape := range s.World.Shapes() {
		if sphere, ok := shape.(*geometry.Sphere); ok {
			counts[sphere.Material.Kind]++
		}
	}
	return counts
}

// ImageHeight returns the image height for a width at the camera's aspect
// ratio, truncated and never less than one row
func (s *Scene) ImageHeight(width int) int {
	return max(int(float64(width)/s.CameraConfig.AspectRatio), 1)
}

// RenderConfig returns renderer settings from the scene's defaults.
// A depth of 0 is a valid setting and is passed through.
func (s *Scene) RenderConfig() renderer.SamplingConfig {
	config := renderer.DefaultSamplingConfig()
	if s.SamplingConfig.Width > 0 {
		config.Width = s.SamplingConfig.Width
	}
	if s.SamplingConfig.SamplesPerPixel > 0 {
		config.SamplesPerPixel = s.SamplingConfig.SamplesPerPixel
	}
	if s.SamplingConfig.MaxDepth >= 0 {
		config.MaxDepth = s.SamplingConfig.MaxDepth
	}
	config.Height = s.ImageHeight(config.Width)
	return config
}
