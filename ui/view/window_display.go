package view

import (
	"fmt"
	"image"
	"log/slog"

	"gocv.io/x/gocv"

	"github.com/soocke/dwell-monitor/ui/images"
	"github.com/soocke/dwell-monitor/ui/model"
	"github.com/soocke/dwell-monitor/ui/theme"
)

// WindowDisplay shows annotated frames in an OpenCV HighGUI window.
type WindowDisplay struct {
	win    *gocv.Window
	style  images.OverlayStyle
	shown  bool
	logger *slog.Logger
}

// NewWindowDisplay opens a window titled title.
func NewWindowDisplay(title string, logger *slog.Logger) *WindowDisplay {
	return &WindowDisplay{win: gocv.NewWindow(title), style: theme.OverlayStyle(), logger: logger}
}

// Show draws the overlays onto a BGR copy of frame and displays it.
func (d *WindowDisplay) Show(frame *image.RGBA, views []model.RegionView) error {
	if frame == nil {
		return nil
	}
	mat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return fmt.Errorf("view: convert frame: %w", err)
	}
	defer mat.Close()
	DrawOverlay(&mat, views, d.style)
	d.win.IMShow(mat)
	d.shown = true
	return nil
}

// PollKey waits 1ms for a key press and pumps the window events.
func (d *WindowDisplay) PollKey() (rune, bool) {
	k := d.win.WaitKey(1)
	if k < 0 {
		return 0, false
	}
	return rune(k & 0xff), true
}

// Closed reports whether the window was closed by the user. Before the
// first frame the window is not mapped yet and counts as open.
func (d *WindowDisplay) Closed() bool {
	if !d.win.IsOpen() {
		return true
	}
	if !d.shown {
		return false
	}
	return d.win.GetWindowProperty(gocv.WindowPropertyVisible) < 1
}

// Close destroys the window.
func (d *WindowDisplay) Close() error {
	if d.logger != nil {
		d.logger.Debug("window closed")
	}
	return d.win.Close()
}
