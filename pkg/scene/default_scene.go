package scene

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/material"
)

// NewDefaultScene creates the four-sphere scene: a diffuse center sphere
// between a glass and a fuzzy gold sphere, on a large diffuse ground sphere
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		LookFrom:      core.NewVec3(3, 3, 2),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      2.0, // Strong depth of field blur
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	samplingConfig := SamplingConfig{
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	s, err := newScene(defaultCameraConfig, samplingConfig, cameraOverrides)
	if err != nil {
		return nil, err
	}

	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.5)
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	spheres := []struct {
		center core.Vec3
		radius float64
		mat    *material.Material
	}{
		{core.NewVec3(0, -100.5, -1), 100, materialGround},
		{core.NewVec3(0, 0, -1), 0.5, materialCenter},
		{core.NewVec3(-1, 0, -1), 0.5, materialLeft},
		{core.NewVec3(1, 0, -1), 0.5, materialRight},
	}
	for _, sp := range spheres {
		if err := s.AddSphere(sp.center, sp.radius, sp.mat); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// NewSimpleScene creates a small blue sphere resting on a ground sphere,
// seen by a pinhole camera at the origin looking down -Z
func NewSimpleScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	samplingConfig := SamplingConfig{
		Width:           400,
		SamplesPerPixel: 50,
		MaxDepth:        50,
	}

	s, err := newScene(geometry.DefaultCameraConfig(), samplingConfig, cameraOverrides)
	if err != nil {
		return nil, err
	}

	if err := s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))); err != nil {
		return nil, err
	}
	if err := s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))); err != nil {
		return nil, err
	}

	return s, nil
}
