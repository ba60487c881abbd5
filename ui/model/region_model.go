package model

import (
	"fmt"
	"image"

	"github.com/soocke/dwell-monitor/domain/region"
)

// LabelOffset is the distance between a region's top edge and the baseline
// of its countdown label.
const LabelOffset = 10

// RegionView is the per-frame drawing state of one region.
type RegionView struct {
	Region    region.Region
	Highlight bool // occupied in the current frame
	Running   bool // a countdown label is shown
	Remaining int  // whole seconds, valid when Running
}

// Label returns the countdown text, or "" when no countdown is shown.
func (v RegionView) Label() string {
	if !v.Running {
		return ""
	}
	return fmt.Sprintf("Time: %ds", v.Remaining)
}

// LabelAt returns the label origin just above the region's top edge.
func (v RegionView) LabelAt() image.Point {
	return image.Pt(v.Region.X, v.Region.Y-LabelOffset)
}

// RegionModel holds the fixed region set and the view state rebuilt every
// frame. No synchronization needed: updates occur on the loop goroutine.
type RegionModel struct {
	views []RegionView
}

func NewRegionModel(regions []region.Region) *RegionModel {
	m := &RegionModel{views: make([]RegionView, len(regions))}
	for i, r := range regions {
		m.views[i].Region = r
	}
	return m
}

// Len returns the number of regions.
func (m *RegionModel) Len() int {
	if m == nil {
		return 0
	}
	return len(m.views)
}

// Regions returns the configured regions in order.
func (m *RegionModel) Regions() []region.Region {
	if m == nil {
		return nil
	}
	out := make([]region.Region, len(m.views))
	for i, v := range m.views {
		out[i] = v.Region
	}
	return out
}

// Reset returns every region to its baseline outline.
func (m *RegionModel) Reset() {
	if m == nil {
		return
	}
	for i := range m.views {
		m.views[i].Highlight = false
		m.views[i].Running = false
		m.views[i].Remaining = 0
	}
}

// SetHighlight marks region i as occupied for the current frame.
func (m *RegionModel) SetHighlight(i int, on bool) {
	if m == nil || i < 0 || i >= len(m.views) {
		return
	}
	m.views[i].Highlight = on
}

// SetRemaining shows a countdown label for region i.
func (m *RegionModel) SetRemaining(i, seconds int) {
	if m == nil || i < 0 || i >= len(m.views) {
		return
	}
	m.views[i].Running = true
	m.views[i].Remaining = seconds
}

// Views returns a copy of the current view state.
func (m *RegionModel) Views() []RegionView {
	if m == nil {
		return nil
	}
	out := make([]RegionView, len(m.views))
	copy(out, m.views)
	return out
}
