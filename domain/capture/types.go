package capture

import (
	"errors"
	"image"
)

var (
	// ErrNoFrame reports that no frame is available right now. Callers skip
	// the iteration and try again.
	ErrNoFrame = errors.New("capture: no frame available")
	// ErrSourceClosed reports that the source will not produce more frames.
	ErrSourceClosed = errors.New("capture: source closed")
)

// Grabber produces raw frames from a device, file or screen.
// Grab returns ErrNoFrame when a read fails or yields an empty image.
type Grabber interface {
	Grab() (*image.RGBA, error)
	Close() error
}
