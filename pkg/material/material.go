package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// ErrInvalidMaterial is returned by Validate for materials that cannot be rendered
var ErrInvalidMaterial = errors.New("invalid material")

// Kind tags which scattering model a Material uses
type Kind int

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
)

// String returns the lowercase name used in scene files
func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts a scene-file name into a Kind
func ParseKind(name string) (Kind, error) {
	switch name {
	case "lambertian", "diffuse":
		return KindLambertian, nil
	case "metal":
		return KindMetal, nil
	case "dielectric", "glass":
		return KindDielectric, nil
	default:
		return 0, fmt.Errorf("%w: unknown material type %q", ErrInvalidMaterial, name)
	}
}

// Material is a closed set of surface models selected by Kind.
// Only the fields relevant to the kind are used. Materials are shared by
// pointer between spheres and are never modified after construction.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian and metal reflectance
	Fuzz            float64   // Metal: 0.0 = perfect mirror, 1.0 = very fuzzy
	RefractiveIndex float64   // Dielectric index of refraction (e.g., 1.5 for glass)
}

// Scatter decides whether an incoming ray is absorbed or re-emitted.
// The bool result is false when the ray is absorbed.
func (m *Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return scatterLambertian(m, hit, sampler)
	case KindMetal:
		return scatterMetal(m, rayIn, hit, sampler)
	case KindDielectric:
		return scatterDielectric(m, rayIn, hit, sampler)
	default:
		return ScatterResult{}, false
	}
}

// Validate checks the material's parameters for its kind
func (m *Material) Validate() error {
	switch m.Kind {
	case KindLambertian, KindMetal:
		if m.Albedo.X < 0 || m.Albedo.Y < 0 || m.Albedo.Z < 0 {
			return fmt.Errorf("%w: %s albedo %v has a negative channel", ErrInvalidMaterial, m.Kind, m.Albedo)
		}
		if m.Kind == KindMetal && (m.Fuzz < 0 || m.Fuzz > 1) {
			return fmt.Errorf("%w: metal fuzz %g outside [0, 1]", ErrInvalidMaterial, m.Fuzz)
		}
	case KindDielectric:
		if m.RefractiveIndex <= 0 {
			return fmt.Errorf("%w: refractive index %g must be positive", ErrInvalidMaterial, m.RefractiveIndex)
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidMaterial, m.Kind)
	}
	return nil
}
