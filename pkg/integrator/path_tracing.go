package integrator

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// DefaultShadowBias is the minimum hit distance, which keeps a scattered ray
// from re-hitting the surface it left ("shadow acne")
const DefaultShadowBias = 0.001

// ErrInvalidConfig is returned for integrator settings that cannot render
var ErrInvalidConfig = errors.New("invalid integrator config")

// Background is a vertical gradient seen by rays that escape the scene
type Background struct {
	Top    core.Vec3 // Color straight up
	Bottom core.Vec3 // Color straight down
}

// DefaultBackground returns the white-to-sky-blue gradient
func DefaultBackground() Background {
	return Background{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Color returns the gradient color for a ray's direction
func (b Background) Color(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}

// Config controls path termination and the escape color
type Config struct {
	MaxDepth   int        // Maximum number of bounces; 0 renders black
	ShadowBias float64    // Minimum t accepted for a hit
	Background Background // Color of rays that miss everything
}

// DefaultConfig returns the reference settings
func DefaultConfig() Config {
	return Config{
		MaxDepth:   50,
		ShadowBias: DefaultShadowBias,
		Background: DefaultBackground(),
	}
}

// Validate checks the settings
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth %d must not be negative", ErrInvalidConfig, c.MaxDepth)
	}
	if c.ShadowBias < 0 || math.IsNaN(c.ShadowBias) {
		return fmt.Errorf("%w: shadow bias %g must not be negative", ErrInvalidConfig, c.ShadowBias)
	}
	return nil
}

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// Config returns the integrator settings
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// RayColor follows a ray through the world, bounce by bounce, until it is
// absorbed, escapes to the background, or runs out of depth.
//
// Each bounce multiplies the running throughput by the material attenuation,
// which is the same product the recursive formulation builds on the way back up.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world World, sampler core.Sampler) core.Vec3 {
	if ray.Direction.LengthSquared() == 0 {
		return core.Vec3{}
	}

	throughput := core.NewVec3(1, 1, 1)
	for depth := pt.config.MaxDepth; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, pt.config.ShadowBias, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(pt.config.Background.Color(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return core.Vec3{} // absorbed
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce limit reached, no more light is gathered
	return core.Vec3{}
}
