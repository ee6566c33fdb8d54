package core

import (
	"math"
	"math/rand"
)

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Reseed resets the underlying generator to a deterministic state.
// Must not be called concurrently with other sampler methods.
func (r *RandomSampler) Reseed(seed int64) {
	r.random.Seed(seed)
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() (float64, float64) {
	return r.random.Float64(), r.random.Float64()
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomRange returns a value uniformly distributed in [lo, hi)
func RandomRange(sampler Sampler, lo, hi float64) float64 {
	return lo + (hi-lo)*sampler.Get1D()
}

// SampleInUnitSphere generates a random point inside the unit sphere by rejection
func SampleInUnitSphere(sampler Sampler) Vec3 {
	for {
		// Point in the [-1,1]³ cube
		p := sampler.Get3D().Multiply(2).Subtract(NewVec3(1, 1, 1))
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// SampleUnitVector generates a uniformly distributed direction on the unit sphere
func SampleUnitVector(sampler Sampler) Vec3 {
	u1, u2 := sampler.Get2D()
	z := 1.0 - 2.0*u1 // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * u2
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SampleInUnitDisk generates a random point in the unit disk in the XY plane (for depth of field)
func SampleInUnitDisk(sampler Sampler) Vec3 {
	for {
		u1, u2 := sampler.Get2D()
		p := NewVec3(2*u1-1, 2*u2-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// PixelSeed derives an independent seed for one pixel from a base seed
// using the splitmix64 finalizer, so neighbouring pixels get uncorrelated streams.
func PixelSeed(base int64, pixel int) int64 {
	z := uint64(base) + uint64(pixel+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return int64(z >> 1)
}
