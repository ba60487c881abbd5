package presenter

import (
	"time"

	"github.com/soocke/dwell-monitor/ui/model"
)

// StatsView displays per-region occupancy durations.
type StatsView interface {
	SetRegionStats(stats []model.RegionStats)
}

// SessionPresenter pushes occupancy statistics from the model to the view.
type SessionPresenter struct {
	sess     *model.OccupancyModel
	view     StatsView
	interval time.Duration
	last     time.Time
}

// NewSessionPresenter returns a presenter refreshing the view at most once per second.
func NewSessionPresenter(sess *model.OccupancyModel, view StatsView) *SessionPresenter {
	return &SessionPresenter{sess: sess, view: view, interval: time.Second}
}

func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.view == nil {
		return
	}
	if !p.last.IsZero() && now.Sub(p.last) < p.interval {
		return
	}
	p.last = now
	p.view.SetRegionStats(p.sess.Stats())
}
