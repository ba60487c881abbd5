package model

import (
	"sync/atomic"
)

// RunModel records a stop request. The zero value is running and usable.
// Concurrency-safe via atomic Bool because signal handlers and window
// callbacks may race with the loop.
type RunModel struct {
	stop   atomic.Bool
	reason atomic.Value // string
}

// RequestStop asks the loop to end; only the first reason is kept.
func (m *RunModel) RequestStop(reason string) {
	if m == nil {
		return
	}
	if m.stop.CompareAndSwap(false, true) {
		m.reason.Store(reason)
	}
}

// Stopped reports whether a stop was requested.
func (m *RunModel) Stopped() bool {
	if m == nil {
		return false
	}
	return m.stop.Load()
}

// Reason returns the first stop reason, or "".
func (m *RunModel) Reason() string {
	if m == nil {
		return ""
	}
	if s, ok := m.reason.Load().(string); ok {
		return s
	}
	return ""
}
