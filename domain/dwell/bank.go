package dwell

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultDuration is the countdown started when a region becomes occupied.
const DefaultDuration = 50 * time.Second

// ErrRegionCount is returned when an occupancy slice does not match the bank.
var ErrRegionCount = errors.New("dwell: occupancy count does not match region count")

// Bank holds one countdown per region and advances them once per frame.
// Not safe for concurrent use; call Update from the loop goroutine only.
type Bank struct {
	timers    []TimerState
	duration  time.Duration
	logger    *slog.Logger
	expiry    []ExpiryListener
	listeners []TransitionListener
	newID     func() uuid.UUID
}

// NewBank returns a bank of n idle timers. A non-positive duration selects
// DefaultDuration.
func NewBank(n int, duration time.Duration, logger *slog.Logger) *Bank {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if n < 0 {
		n = 0
	}
	return &Bank{timers: make([]TimerState, n), duration: duration, logger: logger, newID: uuid.New}
}

// Duration returns the countdown length.
func (b *Bank) Duration() time.Duration { return b.duration }

// Len returns the number of regions tracked.
func (b *Bank) Len() int { return len(b.timers) }

// States returns a copy of all timer states.
func (b *Bank) States() []TimerState {
	out := make([]TimerState, len(b.timers))
	copy(out, b.timers)
	return out
}

// OnExpiry registers l for expiry events.
func (b *Bank) OnExpiry(l ExpiryListener) {
	if l != nil {
		b.expiry = append(b.expiry, l)
	}
}

// AddListener registers l for phase transitions.
func (b *Bank) AddListener(l TransitionListener) {
	if l != nil {
		b.listeners = append(b.listeners, l)
	}
}

// Update applies one frame of occupancy observations taken at now.
//
// An occupied idle region starts a countdown. An occupied running region
// reports the whole seconds left, or fires its expiry and returns to idle
// once less than a whole second remains. An unoccupied region returns to idle
// without an event.
func (b *Bank) Update(occupied []bool, now time.Time) ([]Status, error) {
	if len(occupied) != len(b.timers) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrRegionCount, len(occupied), len(b.timers))
	}
	out := make([]Status, len(b.timers))
	for i, occ := range occupied {
		out[i] = b.step(i, occ, now)
	}
	return out, nil
}

func (b *Bank) step(i int, occupied bool, now time.Time) Status {
	st := Status{Region: i}
	t := b.timers[i]
	if !occupied {
		if t.Running() {
			if b.logger != nil {
				b.logger.Debug("dwell reset", "area", i+1, "session", t.Session.String(), "held", now.Sub(t.StartedAt))
			}
			b.transition(i, TimerState{})
		}
		st.Phase = PhaseIdle
		return st
	}
	if !t.Running() {
		t = TimerState{Phase: PhaseRunning, Deadline: now.Add(b.duration), StartedAt: now, Session: b.newID()}
		b.transition(i, t)
	}
	remaining := int(t.Deadline.Sub(now) / time.Second)
	if remaining <= 0 {
		ev := ExpiryEvent{Region: i, Session: t.Session, StartedAt: t.StartedAt, Deadline: t.Deadline, FiredAt: now}
		b.transition(i, TimerState{})
		for _, l := range b.expiry {
			l(ev)
		}
		st.Phase = PhaseIdle
		st.Expired = true
		return st
	}
	st.Phase = PhaseRunning
	st.Remaining = remaining
	return st
}

func (b *Bank) transition(i int, next TimerState) {
	prev := b.timers[i].Phase
	b.timers[i] = next
	if prev == next.Phase {
		return
	}
	if b.logger != nil {
		b.logger.Debug("dwell state transition", "area", i+1, "from", prev.String(), "to", next.Phase.String())
	}
	for _, l := range b.listeners {
		l(i, prev, next.Phase)
	}
}

// Reset returns every timer to idle without emitting events.
func (b *Bank) Reset() {
	for i := range b.timers {
		b.transition(i, TimerState{})
	}
}

// compile-time check that Bank implements BankContract.
var _ BankContract = (*Bank)(nil)
