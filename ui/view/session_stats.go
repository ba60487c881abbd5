package view

import (
	"fmt"
	"time"

	"github.com/soocke/dwell-monitor/ui/model"
	"github.com/soocke/dwell-monitor/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows occupancy durations and expiry counts per region.
type SessionStats interface {
	SetRegionStats(stats []model.RegionStats)
}

type sessionStats struct {
	labels []*TLabelWidget
}

// NewSessionStats creates one label per region inside parent, laid out in
// rows of three starting at (row, startCol).
func NewSessionStats(parent *FrameWidget, regions, row, startCol int) SessionStats {
	s := &sessionStats{labels: make([]*TLabelWidget, regions)}
	for i := range s.labels {
		lbl := TLabel(Style(theme.StyleStatsLabel), Width(34))
		if parent != nil {
			Grid(lbl, In(parent), Row(row+i/3), Column(startCol+i%3), Sticky("w"), Padx("0.2m"))
		} else {
			Grid(lbl, Row(row+i/3), Column(startCol+i%3), Sticky("w"), Padx("0.2m"))
		}
		lbl.Configure(Txt(formatStats(model.RegionStats{Region: i})))
		s.labels[i] = lbl
	}
	return s
}

func (s *sessionStats) SetRegionStats(stats []model.RegionStats) {
	if s == nil {
		return
	}
	for _, st := range stats {
		if st.Region < 0 || st.Region >= len(s.labels) {
			continue
		}
		s.labels[st.Region].Configure(Txt(formatStats(st)))
	}
}

func formatStats(st model.RegionStats) string {
	state := "free"
	if st.Occupied {
		state = "held " + clock(st.Session)
	}
	return fmt.Sprintf("Area %d: %s | total %s | expired %d", st.Region+1, state, clock(st.Total), st.Expiries)
}

func clock(d time.Duration) string {
	seconds := int(d.Seconds())
	min, sec := seconds/60, seconds%60
	return fmt.Sprintf("%02d:%02d", min, sec)
}
