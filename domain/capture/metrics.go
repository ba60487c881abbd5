package capture

import (
	"image"
	"time"
)

// FrameSnapshot carries a captured frame and metadata.
type FrameSnapshot struct {
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// Empty reports whether the snapshot holds no pixels.
func (s FrameSnapshot) Empty() bool { return s.Image == nil || s.Image.Bounds().Empty() }

// CaptureStats summarises capture behaviour for instrumentation.
type CaptureStats struct {
	Captures         uint64
	Skipped          uint64
	AvgCapture       time.Duration
	AvgCaptureMicros float64
	LastCapture      time.Time
	LatestFrameAge   time.Duration
	Sequence         uint64
}
