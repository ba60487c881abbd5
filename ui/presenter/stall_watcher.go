package presenter

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/soocke/dwell-monitor/domain/capture"
)

// StatsSource reports capture instrumentation; it must be safe to call from
// another goroutine.
type StatsSource interface {
	Stats() capture.CaptureStats
}

// StallWatcher polls the capture statistics from its own goroutine and
// warns when no frame has arrived for longer than Threshold. It catches
// reads that block, which the loop itself cannot observe.
type StallWatcher struct {
	Source    StatsSource
	Logger    *slog.Logger
	Threshold time.Duration
	OnStall   func(age time.Duration)
	interval  time.Duration
	running   atomic.Bool
	stalled   atomic.Bool
	done      chan struct{}
	started   time.Time
	now       func() time.Time
}

// NewStallWatcher constructs a watcher; a non-positive threshold selects 5s.
func NewStallWatcher(src StatsSource, logger *slog.Logger, threshold time.Duration, onStall func(time.Duration)) *StallWatcher {
	if threshold <= 0 {
		threshold = 5 * time.Second
	}
	interval := threshold / 4
	if interval < 10*time.Millisecond {
		interval = 10 * time.Millisecond
	}
	return &StallWatcher{Source: src, Logger: logger, Threshold: threshold, OnStall: onStall, interval: interval, now: time.Now}
}

// Start begins polling. Calling Start on a running watcher is a no-op.
func (w *StallWatcher) Start() {
	if w == nil || w.running.Load() {
		return
	}
	w.done = make(chan struct{})
	w.started = w.now()
	w.stalled.Store(false)
	w.running.Store(true)
	go w.loop(w.done)
}

// Stop ends polling.
func (w *StallWatcher) Stop() {
	if w == nil || !w.running.Load() {
		return
	}
	close(w.done)
	w.running.Store(false)
}

// Stalled reports whether the last poll saw a stall.
func (w *StallWatcher) Stalled() bool {
	if w == nil {
		return false
	}
	return w.stalled.Load()
}

func (w *StallWatcher) loop(done chan struct{}) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.poll()
		case <-done:
			return
		}
	}
}

func (w *StallWatcher) poll() {
	if w.Source == nil {
		return
	}
	stats := w.Source.Stats()
	last := stats.LastCapture
	if last.Before(w.started) {
		last = w.started
	}
	age := w.now().Sub(last)
	if age >= w.Threshold {
		if w.stalled.CompareAndSwap(false, true) {
			if w.Logger != nil {
				w.Logger.Warn("no frames received", "age", age, "captures", stats.Captures, "skipped", stats.Skipped)
			}
			if w.OnStall != nil {
				w.OnStall(age)
			}
		}
		return
	}
	if w.stalled.CompareAndSwap(true, false) && w.Logger != nil {
		w.Logger.Info("frames resumed", "sequence", stats.Sequence)
	}
}
