package renderer

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/df07/go-scanline-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to an io.Writer.
// Workers log concurrently, so writes are serialized.
type DefaultLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	fmt.Fprintf(dl.w, format, args...)
}

// NewDefaultLogger creates a logger writing to w, or to stderr when w is nil.
// Stdout is reserved for the image stream.
func NewDefaultLogger(w io.Writer) core.Logger {
	if w == nil {
		w = os.Stderr
	}
	return &DefaultLogger{w: w}
}

// NewNopLogger returns a logger that drops every message
func NewNopLogger() core.Logger {
	return &DefaultLogger{w: io.Discard}
}
