package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/df07/go-scanline-raytracer/pkg/core"
	"github.com/df07/go-scanline-raytracer/pkg/geometry"
	"github.com/df07/go-scanline-raytracer/pkg/material"
	"github.com/df07/go-scanline-raytracer/pkg/renderer"
)

// ErrInvalidSceneFile is returned for scene files that parse but cannot be built
var ErrInvalidSceneFile = errors.New("invalid scene file")

// Vec3Cfg is a vector written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

func (v Vec3Cfg) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraCfg fields left out of the file take the default camera's values.
// Pointers keep an explicit zero, such as a lookAt at the origin, distinct
// from an omitted field.
type CameraCfg struct {
	LookFrom      *Vec3Cfg `json:"lookFrom,omitempty"`
	LookAt        *Vec3Cfg `json:"lookAt,omitempty"`
	Up            *Vec3Cfg `json:"up,omitempty"`
	VFov          *float64 `json:"vfov,omitempty"`
	AspectRatio   *float64 `json:"aspectRatio,omitempty"`
	Aperture      *float64 `json:"aperture,omitempty"`
	FocusDistance *float64 `json:"focusDistance,omitempty"` // 0 = distance to lookAt
}

// BackgroundCfg sides left out keep the default gradient's color
type BackgroundCfg struct {
	Top    *Vec3Cfg `json:"top,omitempty"`
	Bottom *Vec3Cfg `json:"bottom,omitempty"`
}

type MaterialCfg struct {
	Type   string  `json:"type"` // lambertian|diffuse, metal, dielectric|glass
	Albedo Vec3Cfg `json:"albedo,omitempty"`
	Fuzz   float64 `json:"fuzz,omitempty"`
	IOR    float64 `json:"ior,omitempty"`
}

type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"` // Key into Config.Materials
}

// Config is the JSON scene description. Omitted image settings use the
// renderer defaults; a maxDepth of 0 is kept and renders black.
type Config struct {
	Width           *int                   `json:"width,omitempty"`
	SamplesPerPixel *int                   `json:"spp,omitempty"`
	MaxDepth        *int                   `json:"maxDepth,omitempty"`
	Camera          CameraCfg              `json:"camera"`
	Background      *BackgroundCfg         `json:"background,omitempty"`
	Materials       map[string]MaterialCfg `json:"materials"`
	Spheres         []SphereCfg            `json:"spheres"`
}

// LoadJSON reads a scene file from disk
func LoadJSON(path string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := ParseJSON(f, cameraOverrides...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseJSON decodes a scene description and builds the scene.
// Unknown fields, undefined materials and invalid spheres are errors.
func ParseJSON(r io.Reader, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSceneFile, err)
	}
	return cfg.Build(cameraOverrides...)
}

// Build creates a scene from a decoded configuration
func (cfg *Config) Build(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	if len(cfg.Spheres) == 0 {
		return nil, fmt.Errorf("%w: no spheres", ErrInvalidSceneFile)
	}

	samplingConfig, err := cfg.samplingConfig()
	if err != nil {
		return nil, err
	}

	s, err := newScene(cfg.Camera.cameraConfig(), samplingConfig, cameraOverrides)
	if err != nil {
		return nil, err
	}
	if cfg.Background != nil {
		if cfg.Background.Top != nil {
			s.Background.Top = cfg.Background.Top.vec()
		}
		if cfg.Background.Bottom != nil {
			s.Background.Bottom = cfg.Background.Bottom.vec()
		}
	}

	materials, err := cfg.buildMaterials()
	if err != nil {
		return nil, err
	}

	for i, sp := range cfg.Spheres {
		mat, ok := materials[sp.Material]
		if !ok {
			return nil, fmt.Errorf("%w: sphere %d uses undefined material %q", ErrInvalidSceneFile, i, sp.Material)
		}
		if err := s.AddSphere(sp.Center.vec(), sp.Radius, mat); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
	}

	return s, nil
}

// cameraConfig copies the fields present in the file onto the default camera.
// Values are taken as written; a zero vector is a position, not "unset".
func (c CameraCfg) cameraConfig() geometry.CameraConfig {
	config := geometry.DefaultCameraConfig()
	if c.LookFrom != nil {
		config.LookFrom = c.LookFrom.vec()
	}
	if c.LookAt != nil {
		config.LookAt = c.LookAt.vec()
	}
	if c.Up != nil {
		config.Up = c.Up.vec()
	}
	if c.VFov != nil {
		config.VFov = *c.VFov
	}
	if c.AspectRatio != nil {
		config.AspectRatio = *c.AspectRatio
	}
	if c.Aperture != nil {
		config.Aperture = *c.Aperture
	}
	if c.FocusDistance != nil {
		config.FocusDistance = *c.FocusDistance
	}
	return config
}

// samplingConfig fills omitted image settings from the renderer defaults
func (cfg *Config) samplingConfig() (SamplingConfig, error) {
	defaults := renderer.DefaultSamplingConfig()
	config := SamplingConfig{
		Width:           defaults.Width,
		SamplesPerPixel: defaults.SamplesPerPixel,
		MaxDepth:        defaults.MaxDepth,
	}
	if cfg.Width != nil {
		if *cfg.Width <= 0 {
			return SamplingConfig{}, fmt.Errorf("%w: width %d must be positive", ErrInvalidSceneFile, *cfg.Width)
		}
		config.Width = *cfg.Width
	}
	if cfg.SamplesPerPixel != nil {
		if *cfg.SamplesPerPixel <= 0 {
			return SamplingConfig{}, fmt.Errorf("%w: spp %d must be positive", ErrInvalidSceneFile, *cfg.SamplesPerPixel)
		}
		config.SamplesPerPixel = *cfg.SamplesPerPixel
	}
	if cfg.MaxDepth != nil {
		if *cfg.MaxDepth < 0 {
			return SamplingConfig{}, fmt.Errorf("%w: maxDepth %d must not be negative", ErrInvalidSceneFile, *cfg.MaxDepth)
		}
		config.MaxDepth = *cfg.MaxDepth
	}
	return config, nil
}

// buildMaterials creates each named material once so spheres can share it
func (cfg *Config) buildMaterials() (map[string]*material.Material, error) {
	names := make([]string, 0, len(cfg.Materials))
	for name := range cfg.Materials {
		names = append(names, name)
	}
	sort.Strings(names) // Deterministic error reporting

	materials := make(map[string]*material.Material, len(names))
	for _, name := range names {
		mc := cfg.Materials[name]
		kind, err := material.ParseKind(mc.Type)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}

		mat := &material.Material{
			Kind:            kind,
			Albedo:          mc.Albedo.vec(),
			Fuzz:            mc.Fuzz,
			RefractiveIndex: mc.IOR,
		}
		if err := mat.Validate(); err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}
	return materials, nil
}
