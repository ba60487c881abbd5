package presenter

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/dwell-monitor/domain/capture"
	"github.com/soocke/dwell-monitor/domain/dwell"
	"github.com/soocke/dwell-monitor/domain/occupancy"
	"github.com/soocke/dwell-monitor/domain/region"
	"github.com/soocke/dwell-monitor/ui/model"
)

// ErrSourceStalled is returned when too many consecutive frames are missing.
var ErrSourceStalled = errors.New("presenter: frame source stalled")

// FrameSource supplies sequential frames.
type FrameSource interface {
	Next() (capture.FrameSnapshot, error)
}

// OccupancyDetector decides whether a region holds a dark object.
type OccupancyDetector interface {
	Occupied(frame image.Image, r region.Region) bool
}

// Measurer exposes the raw darkness counts behind a decision.
type Measurer interface {
	Measure(frame image.Image, r region.Region) occupancy.Measurement
}

// TimerBank advances the per-region countdowns.
type TimerBank interface {
	Update(occupied []bool, now time.Time) ([]dwell.Status, error)
}

// MonitorPresenter runs one detection and timer pass per frame and keeps
// the region view model in sync with the result.
type MonitorPresenter struct {
	Source    FrameSource
	Detector  OccupancyDetector
	Bank      TimerBank
	Regions   *model.RegionModel
	Sessions  *model.OccupancyModel
	MaxMissed int // consecutive missing frames tolerated; 0 means unlimited
	logger    *slog.Logger

	regions  []region.Region
	occupied []bool
	previous []bool
	missed   int
	checked  bool
}

// NewMonitorPresenter constructs a monitor presenter for the regions held by m.
func NewMonitorPresenter(source FrameSource, detector OccupancyDetector, bank TimerBank, m *model.RegionModel, sessions *model.OccupancyModel, maxMissed int, logger *slog.Logger) *MonitorPresenter {
	regions := m.Regions()
	return &MonitorPresenter{
		Source:    source,
		Detector:  detector,
		Bank:      bank,
		Regions:   m,
		Sessions:  sessions,
		MaxMissed: maxMissed,
		logger:    logger,
		regions:   regions,
		occupied:  make([]bool, len(regions)),
		previous:  make([]bool, len(regions)),
	}
}

// ProcessFrame reads the next frame and applies it at now. It reports
// false when no frame was available; the iteration is then skipped and
// timers are left untouched. Errors other than a missing frame end the loop.
func (p *MonitorPresenter) ProcessFrame(now time.Time) (capture.FrameSnapshot, bool, error) {
	if p == nil || p.Source == nil || p.Detector == nil || p.Bank == nil {
		return capture.FrameSnapshot{}, false, errors.New("presenter: monitor not wired")
	}
	snap, err := p.Source.Next()
	if err != nil {
		if !errors.Is(err, capture.ErrNoFrame) {
			return capture.FrameSnapshot{}, false, err
		}
		p.missed++
		if p.MaxMissed > 0 && p.missed >= p.MaxMissed {
			return capture.FrameSnapshot{}, false, fmt.Errorf("%w: %d consecutive frames missing", ErrSourceStalled, p.missed)
		}
		if p.logger != nil {
			p.logger.Debug("frame skipped", "missed", p.missed, "error", err)
		}
		return capture.FrameSnapshot{}, false, nil
	}
	p.missed = 0
	if !p.checked {
		p.checked = true
		p.checkBounds(snap.Image.Bounds())
	}

	p.Regions.Reset()
	for i, r := range p.regions {
		occ := p.Detector.Occupied(snap.Image, r)
		p.occupied[i] = occ
		p.Regions.SetHighlight(i, occ)
		if occ != p.previous[i] {
			p.logChange(snap.Image, i, occ)
		}
	}
	copy(p.previous, p.occupied)

	statuses, err := p.Bank.Update(p.occupied, now)
	if err != nil {
		return snap, false, err
	}
	for _, st := range statuses {
		if st.Phase == dwell.PhaseRunning {
			p.Regions.SetRemaining(st.Region, st.Remaining)
		}
		if st.Expired {
			p.Sessions.MarkExpired(st.Region)
		}
	}
	p.Sessions.OnTick(p.occupied, now)
	return snap, true, nil
}

func (p *MonitorPresenter) logChange(frame image.Image, i int, occ bool) {
	if p.logger == nil {
		return
	}
	attrs := []any{"area", i + 1, "occupied", occ}
	if m, ok := p.Detector.(Measurer); ok {
		ms := m.Measure(frame, p.regions[i])
		attrs = append(attrs, "dark", ms.Dark, "ratio", ms.Ratio)
	}
	p.logger.Debug("occupancy changed", attrs...)
}

// checkBounds warns about regions reaching past the first frame; their
// off-frame part counts as not dark.
func (p *MonitorPresenter) checkBounds(bounds image.Rectangle) {
	if p.logger == nil {
		return
	}
	for i, r := range p.regions {
		if !r.Within(bounds) {
			p.logger.Warn("region exceeds frame, clipping", "area", i+1, "region", r.String(), "frame", bounds.String())
		}
	}
}

// Views returns the overlay state of the last processed frame.
func (p *MonitorPresenter) Views() []model.RegionView {
	if p == nil {
		return nil
	}
	return p.Regions.Views()
}

// Missed returns the current run of consecutive missing frames.
func (p *MonitorPresenter) Missed() int {
	if p == nil {
		return 0
	}
	return p.missed
}
