package dwell

import (
	"time"

	"github.com/google/uuid"
)

// Phase enumerates the states of a region timer.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	default:
		return "unknown"
	}
}

// TimerState is the countdown of a single region. Deadline, StartedAt and
// Session are only meaningful while Running.
type TimerState struct {
	Phase     Phase
	Deadline  time.Time
	StartedAt time.Time
	Session   uuid.UUID
}

// Running reports whether a deadline is outstanding.
func (s TimerState) Running() bool { return s.Phase == PhaseRunning }

// ExpiryEvent is produced when a region stays occupied until its deadline.
type ExpiryEvent struct {
	Region    int // zero-based region index
	Session   uuid.UUID
	StartedAt time.Time
	Deadline  time.Time
	FiredAt   time.Time
}

// Index returns the 1-based region number used in messages.
func (e ExpiryEvent) Index() int { return e.Region + 1 }

// Status is the per-region outcome of one Update.
type Status struct {
	Region    int
	Phase     Phase // phase after the update
	Remaining int   // whole seconds left, valid when Phase is Running
	Expired   bool  // the deadline fired during this update
}

// ExpiryListener is called for each expiry, in region order.
type ExpiryListener func(ExpiryEvent)

// TransitionListener is called on each phase change of a region.
type TransitionListener func(region int, prev, next Phase)

// Interface slices for consumers (presenters).
type TimerSource interface {
	States() []TimerState
	Len() int
}
type TimerUpdater interface {
	Update(occupied []bool, now time.Time) ([]Status, error)
	Reset()
}

// BankContract aggregate for DI.
type BankContract interface {
	TimerSource
	TimerUpdater
	OnExpiry(ExpiryListener)
	AddListener(TransitionListener)
}
