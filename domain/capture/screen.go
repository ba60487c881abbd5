package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// ScreenGrabber captures the primary screen, or a fixed part of it.
type ScreenGrabber struct {
	selection image.Rectangle
}

// NewScreenGrabber returns a grabber for sel; an empty sel means the whole screen.
func NewScreenGrabber(sel image.Rectangle) *ScreenGrabber {
	return &ScreenGrabber{selection: sel}
}

// Grab returns a screen capture. Capture failures are reported as
// ErrNoFrame so the loop retries on the next tick.
func (g *ScreenGrabber) Grab() (*image.RGBA, error) {
	var (
		img *image.RGBA
		err error
	)
	if g.selection.Empty() {
		img, err = screenshot.CaptureScreen()
	} else {
		img, err = screenshot.CaptureRect(g.selection)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoFrame, err)
	}
	if img == nil {
		return nil, ErrNoFrame
	}
	return img, nil
}

// Close is a no-op; the screen needs no release.
func (g *ScreenGrabber) Close() error { return nil }

var _ Grabber = (*ScreenGrabber)(nil)
