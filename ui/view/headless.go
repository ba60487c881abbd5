package view

import (
	"context"
	"image"
	"log/slog"

	"github.com/soocke/dwell-monitor/ui/model"
)

const headlessLogEvery = 300

// HeadlessDisplay renders nothing. It counts as closed once ctx is done,
// which main ties to SIGINT and SIGTERM.
type HeadlessDisplay struct {
	ctx    context.Context
	frames uint64
	logger *slog.Logger
}

func NewHeadlessDisplay(ctx context.Context, logger *slog.Logger) *HeadlessDisplay {
	return &HeadlessDisplay{ctx: ctx, logger: logger}
}

func (d *HeadlessDisplay) Show(_ *image.RGBA, views []model.RegionView) error {
	d.frames++
	if d.logger != nil && d.frames%headlessLogEvery == 0 {
		occupied := 0
		for _, v := range views {
			if v.Highlight {
				occupied++
			}
		}
		d.logger.Debug("headless frame", "frames", d.frames, "occupied", occupied)
	}
	return nil
}

func (d *HeadlessDisplay) PollKey() (rune, bool) { return 0, false }

func (d *HeadlessDisplay) Closed() bool { return d.ctx.Err() != nil }

// Frames returns the number of frames handed to the display.
func (d *HeadlessDisplay) Frames() uint64 { return d.frames }
