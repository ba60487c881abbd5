package capture

import (
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

const captureStatsLogInterval = 5 * time.Second

// CaptureService reads frames from a Grabber on demand and exposes the
// latest capture alongside instrumentation data. Use NewCaptureService to
// construct an instance.
type CaptureService interface {
	Next() (FrameSnapshot, error)
	LatestFrame() FrameSnapshot
	Running() bool
	Stats() CaptureStats
	Close() error
}

type captureService struct {
	grabber      Grabber
	running      atomic.Bool
	latest       atomic.Pointer[FrameSnapshot]
	logger       *slog.Logger
	captures     atomic.Uint64
	skipped      atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
	lastStatsLog time.Time
	now          func() time.Time
}

func newCaptureService(logger *slog.Logger, g Grabber) *captureService {
	s := &captureService{grabber: g, logger: logger, now: time.Now}
	s.running.Store(g != nil)
	return s
}

// NewCaptureService wraps g. Frames are pulled synchronously by Next so
// the caller's loop stays single-threaded.
func NewCaptureService(logger *slog.Logger, g Grabber) CaptureService {
	return newCaptureService(logger, g)
}

func (s *captureService) LatestFrame() FrameSnapshot {
	snap := s.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

func (s *captureService) Running() bool { return s.running.Load() }

func (s *captureService) Stats() CaptureStats {
	captures := s.captures.Load()
	skipped := s.skipped.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	snapshot := s.LatestFrame()
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = s.now().Sub(snapshot.CapturedAt)
	}
	return CaptureStats{
		Captures:         captures,
		Skipped:          skipped,
		AvgCapture:       avg,
		AvgCaptureMicros: avgMicros,
		LastCapture:      snapshot.CapturedAt,
		LatestFrameAge:   age,
		Sequence:         snapshot.Sequence,
	}
}

// Next blocks until the grabber returns. It yields ErrNoFrame for a
// missing or empty frame and ErrSourceClosed once the source is gone.
// The previous frame is recycled, so callers must not keep it past the
// next call.
func (s *captureService) Next() (FrameSnapshot, error) {
	if !s.running.Load() {
		return FrameSnapshot{}, ErrSourceClosed
	}
	start := s.now()
	img, err := s.grabber.Grab()
	if err == nil && (img == nil || img.Bounds().Empty()) {
		err = ErrNoFrame
	}
	if err != nil {
		if errors.Is(err, ErrSourceClosed) {
			s.running.Store(false)
		} else {
			s.skipped.Add(1)
		}
		return FrameSnapshot{}, err
	}

	end := s.now()
	s.captureNanos.Add(uint64(end.Sub(start).Nanoseconds()))
	s.captures.Add(1)
	seq := s.sequence.Add(1)
	snap := FrameSnapshot{Image: img, CapturedAt: end, Sequence: seq}
	if prev := s.latest.Swap(&snap); prev != nil && prev.Image != img {
		RecycleFrame(prev.Image)
	}

	if end.Sub(s.lastStatsLog) >= captureStatsLogInterval {
		s.lastStatsLog = end
		s.logStats()
	}
	return snap, nil
}

// Close releases the underlying device exactly once.
func (s *captureService) Close() error {
	s.running.Store(false)
	g := s.grabber
	s.grabber = nil
	if g == nil {
		return nil
	}
	return g.Close()
}

func (s *captureService) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"skipped", stats.Skipped,
		"avg_capture", stats.AvgCapture,
		"age", stats.LatestFrameAge,
	)
}
