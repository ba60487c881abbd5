package model

import (
	"time"
)

// SessionModel tracks the current occupancy period of one region and the
// occupied time accumulated over the run. The zero value is ready to use.
type SessionModel struct {
	active       bool
	occupiedAt   time.Time
	lastDuration time.Duration
	accumulated  time.Duration
	periods      int
	expiries     int
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model with the occupancy observed at now.
func (m *SessionModel) OnTick(occupied bool, now time.Time) {
	if m == nil {
		return
	}
	if occupied {
		if !m.active { // free -> occupied
			m.active = true
			m.occupiedAt = now
			m.lastDuration = 0
			m.periods++
		}
		m.lastDuration = now.Sub(m.occupiedAt)
	} else if m.active { // occupied -> free
		m.lastDuration = now.Sub(m.occupiedAt)
		m.accumulated += m.lastDuration
		m.active = false
	}
}

// MarkExpired counts a fired countdown.
func (m *SessionModel) MarkExpired() {
	if m == nil {
		return
	}
	m.expiries++
}

// Values returns the current (or last) period and the total occupied time.
// The total includes the ongoing period when active.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	session = m.lastDuration
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}

// RegionStats is a read-only summary of one region's sessions.
type RegionStats struct {
	Region   int
	Occupied bool
	Session  time.Duration
	Total    time.Duration
	Periods  int
	Expiries int
}

// OccupancyModel keeps one SessionModel per region.
type OccupancyModel struct {
	sessions []SessionModel
}

func NewOccupancyModel(n int) *OccupancyModel {
	if n < 0 {
		n = 0
	}
	return &OccupancyModel{sessions: make([]SessionModel, n)}
}

// OnTick feeds one frame of observations; extra or missing entries are ignored.
func (m *OccupancyModel) OnTick(occupied []bool, now time.Time) {
	if m == nil {
		return
	}
	for i := range m.sessions {
		if i < len(occupied) {
			m.sessions[i].OnTick(occupied[i], now)
		}
	}
}

// MarkExpired counts an expiry for region i.
func (m *OccupancyModel) MarkExpired(i int) {
	if m == nil || i < 0 || i >= len(m.sessions) {
		return
	}
	m.sessions[i].MarkExpired()
}

// Stats returns a summary per region.
func (m *OccupancyModel) Stats() []RegionStats {
	if m == nil {
		return nil
	}
	out := make([]RegionStats, len(m.sessions))
	for i := range m.sessions {
		s := &m.sessions[i]
		session, total := s.Values()
		out[i] = RegionStats{
			Region:   i,
			Occupied: s.active,
			Session:  session,
			Total:    total,
			Periods:  s.periods,
			Expiries: s.expiries,
		}
	}
	return out
}
