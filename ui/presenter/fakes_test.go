package presenter

import (
	"image"
	"sync"
	"time"

	"github.com/soocke/dwell-monitor/domain/capture"
	"github.com/soocke/dwell-monitor/domain/region"
	"github.com/soocke/dwell-monitor/ui/model"
)

// fakeSource returns scripted errors; nil means "deliver a frame".
type fakeSource struct {
	script []error
	idx    int
	seq    uint64
	closed int
}

func (s *fakeSource) Next() (capture.FrameSnapshot, error) {
	var err error
	if s.idx < len(s.script) {
		err = s.script[s.idx]
	}
	s.idx++
	if err != nil {
		return capture.FrameSnapshot{}, err
	}
	s.seq++
	return capture.FrameSnapshot{Image: image.NewRGBA(image.Rect(0, 0, 640, 480)), Sequence: s.seq}, nil
}

func (s *fakeSource) Close() error { s.closed++; return nil }

// fakeDetector reports the regions whose index is set.
type fakeDetector struct {
	regions []region.Region
	on      map[int]bool
}

func (d *fakeDetector) Occupied(_ image.Image, r region.Region) bool {
	for i, rr := range d.regions {
		if rr == r {
			return d.on[i]
		}
	}
	return false
}

type fakeDisplay struct {
	shown  int
	views  []model.RegionView
	keys   []rune
	closed bool
	err    error
}

func (d *fakeDisplay) Show(_ *image.RGBA, views []model.RegionView) error {
	d.shown++
	d.views = views
	return d.err
}

func (d *fakeDisplay) PollKey() (rune, bool) {
	if len(d.keys) == 0 {
		return 0, false
	}
	k := d.keys[0]
	d.keys = d.keys[1:]
	return k, true
}

func (d *fakeDisplay) Closed() bool { return d.closed }

type fakeStateView struct {
	labels []string
	alerts []string
}

func (v *fakeStateView) SetStateLabel(s string) { v.labels = append(v.labels, s) }
func (v *fakeStateView) SetAlert(s string)      { v.alerts = append(v.alerts, s) }

type fakeStatsView struct{ calls [][]model.RegionStats }

func (v *fakeStatsView) SetRegionStats(s []model.RegionStats) { v.calls = append(v.calls, s) }

// stepClock advances by a fixed step on each call.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

type fakeStats struct {
	mu   sync.Mutex
	last time.Time
}

func (f *fakeStats) Stats() capture.CaptureStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return capture.CaptureStats{LastCapture: f.last}
}

func (f *fakeStats) set(t time.Time) {
	f.mu.Lock()
	f.last = t
	f.mu.Unlock()
}
