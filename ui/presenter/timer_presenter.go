package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/dwell-monitor/domain/dwell"
	"github.com/soocke/dwell-monitor/domain/notify"
)

// StateView shows the timer summary and the most recent alert.
type StateView interface {
	SetStateLabel(string)
	SetAlert(string)
}

type transition struct {
	region int
	next   dwell.Phase
}

// TimerPresenter receives bank transitions and expiries, and updates the view
// on the next Tick.
type TimerPresenter struct {
	view    StateView
	phases  []dwell.Phase
	pending []transition
	alert   string
	shown   string
	dirty   bool
}

func NewTimerPresenter(regions int, view StateView) *TimerPresenter {
	if regions < 0 {
		regions = 0
	}
	return &TimerPresenter{view: view, phases: make([]dwell.Phase, regions), dirty: true}
}

// OnTransition queues a phase change from the bank listener.
func (p *TimerPresenter) OnTransition(region int, _, next dwell.Phase) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, transition{region: region, next: next})
}

// OnExpiry records the alert text for the next Tick.
func (p *TimerPresenter) OnExpiry(ev dwell.ExpiryEvent) {
	if p == nil {
		return
	}
	p.alert = notify.Message(ev)
	p.dirty = true
}

// Running returns the number of regions with a countdown.
func (p *TimerPresenter) Running() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, ph := range p.phases {
		if ph == dwell.PhaseRunning {
			n++
		}
	}
	return n
}

// Tick applies queued transitions and refreshes the view when something changed.
func (p *TimerPresenter) Tick(now time.Time) {
	if p == nil {
		return
	}
	for _, t := range p.pending {
		if t.region >= 0 && t.region < len(p.phases) {
			p.phases[t.region] = t.next
		}
	}
	p.pending = p.pending[:0]
	if p.view == nil {
		return
	}
	label := fmt.Sprintf("Timers running: %d/%d", p.Running(), len(p.phases))
	if label != p.shown {
		p.shown = label
		p.view.SetStateLabel(label)
	}
	if p.dirty {
		p.dirty = false
		p.view.SetAlert(p.alert)
	}
}
