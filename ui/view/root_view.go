package view

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"

	"github.com/soocke/dwell-monitor/config"
	"github.com/soocke/dwell-monitor/ui/images"
	"github.com/soocke/dwell-monitor/ui/model"
	"github.com/soocke/dwell-monitor/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the Tk window: timer summary, last alert, annotated
// preview and per-region statistics. It satisfies the presenter display,
// state, stats and capture view contracts.
type RootView struct {
	cfg    *config.Config
	logger *slog.Logger

	// Subviews
	Stats   SessionStats
	Preview CapturePreview

	// Widgets
	StateLabel *TLabelWidget
	AlertLabel *TLabelWidget

	style   images.OverlayStyle
	canvas  *image.RGBA // annotated copy of the current frame
	keys    []rune
	closed  bool
	regions int
}

// UI abstracts the subset of view operations needed by presenters.
type UI interface {
	SetStateLabel(text string)
	SetAlert(text string)
	SetRegionStats(stats []model.RegionStats)
	PreviewReset()
}

func NewRootView(cfg *config.Config, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, logger: logger, style: theme.OverlayStyle(), regions: len(cfg.Regions)}
}

// Build constructs the layout and wires window callbacks. onClose runs when
// the user closes the window; the loop notices through Closed.
func (rv *RootView) Build(onClose func()) {
	if rv == nil {
		return
	}
	theme.InitStyles()
	App.WmTitle(rv.cfg.WindowTitle)
	WmProtocol(App, "WM_DELETE_WINDOW", func() {
		rv.closed = true
		if onClose != nil {
			onClose()
		}
	})
	quit := rv.cfg.QuitRune()
	Bind(App, fmt.Sprintf("<KeyPress-%c>", quit), Command(func() { rv.keys = append(rv.keys, quit) }))

	// Row 0: timer summary and last alert
	rv.StateLabel = TLabel(Style(theme.StyleStateLabel), Txt("Timers running: 0/"+fmt.Sprint(rv.regions)))
	Grid(rv.StateLabel, Row(0), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.AlertLabel = TLabel(Style(theme.StyleAlertLabel), Txt(""))
	Grid(rv.AlertLabel, Row(0), Column(1), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	// Row 1: preview; rows 2+: stats
	rv.Preview = NewCapturePreview(1)
	statsFrame := Frame()
	Grid(statsFrame, Row(2), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.Stats = NewSessionStats(statsFrame, rv.regions, 0, 0)
}

// Show draws the overlays on a private copy of frame and updates the
// previews. The close-up shows the first occupied region.
func (rv *RootView) Show(frame *image.RGBA, views []model.RegionView) error {
	if rv == nil || rv.Preview == nil || frame == nil {
		return nil
	}
	b := frame.Bounds()
	if rv.canvas == nil || rv.canvas.Bounds() != b {
		rv.canvas = image.NewRGBA(b)
	}
	draw.Draw(rv.canvas, b, frame, b.Min, draw.Src)
	images.DrawOverlay(rv.canvas, views, rv.style)
	rv.Preview.UpdateCapture(rv.canvas)
	for _, v := range views {
		if !v.Highlight {
			continue
		}
		roi, _, err := images.ExtractRegion(frame, v.Region)
		if err != nil {
			if rv.logger != nil {
				rv.logger.Debug("region close-up", "region", v.Region.String(), "error", err)
			}
			break
		}
		rv.Preview.UpdateDetection(roi)
		break
	}
	return nil
}

// PollKey returns the oldest key queued by the Tk bindings.
func (rv *RootView) PollKey() (rune, bool) {
	if rv == nil || len(rv.keys) == 0 {
		return 0, false
	}
	k := rv.keys[0]
	rv.keys = rv.keys[1:]
	return k, true
}

// Closed reports whether the window manager asked to close the window.
func (rv *RootView) Closed() bool { return rv != nil && rv.closed }

// SetStateLabel updates the timer summary.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// SetAlert shows the most recent expiry message.
func (rv *RootView) SetAlert(text string) {
	if rv != nil && rv.AlertLabel != nil {
		rv.AlertLabel.Configure(Txt(text))
	}
}

// SetRegionStats proxies to the stats panel.
func (rv *RootView) SetRegionStats(stats []model.RegionStats) {
	if rv != nil && rv.Stats != nil {
		rv.Stats.SetRegionStats(stats)
	}
}

// PreviewReset clears both previews.
func (rv *RootView) PreviewReset() {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Reset()
	}
}
