package scene

import (
	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/material"
)

const (
	randomGridHalf     = 11  // Grid spans [-11, 11) on x and z
	randomSmallRadius  = 0.2 // Radius of every grid sphere
	randomDiffuseRatio = 0.8
	randomMetalRatio   = 0.95 // Cumulative; the rest is glass
)

// NewRandomScene creates a ground sphere covered with a grid of small
// randomly placed diffuse, metal and glass spheres around three large
// feature spheres. The layout depends only on seed.
func NewRandomScene(seed int64, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	samplingConfig := SamplingConfig{
		Width:           1200,
		SamplesPerPixel: 500,
		MaxDepth:        50,
	}

	s, err := newScene(defaultCameraConfig, samplingConfig, cameraOverrides)
	if err != nil {
		return nil, err
	}

	if err := s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))); err != nil {
		return nil, err
	}

	sampler := core.NewSeededSampler(seed)
	// Keep the grid clear around the large metal sphere
	clearing := core.NewVec3(4, randomSmallRadius, 0)

	for a := -randomGridHalf; a < randomGridHalf; a++ {
		for b := -randomGridHalf; b < randomGridHalf; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				randomSmallRadius,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat *material.Material
			switch {
			case chooseMat < randomDiffuseRatio:
				albedo := sampler.Get3D().MultiplyVec(sampler.Get3D())
				mat = material.NewLambertian(albedo)
			case chooseMat < randomMetalRatio:
				albedo := core.NewVec3(
					core.RandomRange(sampler, 0.5, 1),
					core.RandomRange(sampler, 0.5, 1),
					core.RandomRange(sampler, 0.5, 1),
				)
				mat = material.NewMetal(albedo, core.RandomRange(sampler, 0, 0.5))
			default:
				mat = material.NewDielectric(1.5)
			}

			if err := s.AddSphere(center, randomSmallRadius, mat); err != nil {
				return nil, err
			}
		}
	}

	features := []struct {
		center core.Vec3
		mat    *material.Material
	}{
		{core.NewVec3(0, 1, 0), material.NewDielectric(1.5)},
		{core.NewVec3(-4, 1, 0), material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))},
		{core.NewVec3(4, 1, 0), material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)},
	}
	for _, f := range features {
		if err := s.AddSphere(f.center, 1.0, f.mat); err != nil {
			return nil, err
		}
	}

	return s, nil
}
