package core

// Logger receives progress messages. Render workers log from their own
// goroutines, so implementations must be safe for concurrent use.
type Logger interface {
	Printf(format string, args ...interface{})
}

// Sampler provides random sampling for rendering algorithms.
// Can be swapped out for deterministic testing.
type Sampler interface {
	Get1D() float64
	Get2D() (float64, float64)
	Get3D() Vec3
}
