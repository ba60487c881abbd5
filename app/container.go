package app

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/soocke/dwell-monitor/config"
	"github.com/soocke/dwell-monitor/domain/capture"
	"github.com/soocke/dwell-monitor/domain/capture/camera"
	"github.com/soocke/dwell-monitor/domain/dwell"
	"github.com/soocke/dwell-monitor/domain/notify"
	"github.com/soocke/dwell-monitor/domain/occupancy"
	"github.com/soocke/dwell-monitor/ui/model"
	"github.com/soocke/dwell-monitor/ui/presenter"
	"github.com/soocke/dwell-monitor/ui/view"
)

// AppContainer assembles models, services, presenters and the display.
type AppContainer struct {
	Config     *config.Config
	Logger     *slog.Logger
	CaptureSvc capture.CaptureService
	Detector   *occupancy.Detector
	Bank       *dwell.Bank
	Notifier   notify.Multi
	Bell       *notify.Bell

	// Models
	Regions  *model.RegionModel
	Sessions *model.OccupancyModel
	Run      *model.RunModel

	// Display; RootView is set only for the Tk backend.
	Display  presenter.Display
	RootView *view.RootView

	// Presenters
	MonitorPresenter *presenter.MonitorPresenter
	TimerPresenter   *presenter.TimerPresenter
	SessionPresenter *presenter.SessionPresenter
	CapturePresenter *presenter.CapturePresenter
	StallWatcher     *presenter.StallWatcher
	Loop             *presenter.Loop
}

// GrabberOpener opens the frame source described by cfg.
type GrabberOpener func(cfg *config.Config, logger *slog.Logger) (capture.Grabber, error)

// OpenGrabber opens a camera, a video file or the screen.
func OpenGrabber(cfg *config.Config, logger *slog.Logger) (capture.Grabber, error) {
	switch cfg.Source {
	case config.SourceFile:
		return camera.OpenFile(cfg.VideoPath, logger)
	case config.SourceScreen:
		return capture.NewScreenGrabber(image.Rectangle{}), nil
	default:
		return camera.OpenDevice(cfg.CameraIndex, logger)
	}
}

// BuildContainer constructs all components. The frame source is acquired
// here, so a failure to open it is reported before any window appears.
func BuildContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer, open GrabberOpener) (*AppContainer, error) {
	if open == nil {
		open = OpenGrabber
	}
	g, err := open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open frame source: %w", err)
	}
	c := &AppContainer{Config: cfg, Logger: logger}
	c.CaptureSvc = capture.NewCaptureService(logger, g)
	c.Detector = occupancy.NewDetector(cfg)
	c.Bank = dwell.NewBank(len(cfg.Regions), cfg.DwellDuration(), logger)

	// Models
	c.Regions = model.NewRegionModel(cfg.Regions)
	c.Sessions = model.NewOccupancyModel(len(cfg.Regions))
	c.Run = &model.RunModel{}

	// Notifications
	c.Notifier = notify.Multi{notify.NewConsole(out), notify.NewLog(logger)}
	if cfg.Bell {
		bell, err := notify.NewBell(0.8, logger)
		if err != nil {
			logger.Warn("bell disabled", "error", err)
		} else {
			c.Bell = bell
			c.Notifier = append(c.Notifier, bell)
		}
	}
	c.Bank.OnExpiry(c.Notifier.Notify)

	// Display
	var (
		stateView presenter.StateView
		statsView presenter.StatsView
		capView   presenter.CaptureView
	)
	switch cfg.Display {
	case config.DisplayTk:
		c.RootView = view.NewRootView(cfg, logger)
		c.Display = c.RootView
		stateView, statsView, capView = c.RootView, c.RootView, c.RootView
	case config.DisplayNone:
		c.Display = view.NewHeadlessDisplay(ctx, logger)
	default:
		c.Display = view.NewWindowDisplay(cfg.WindowTitle, logger)
	}

	// Presenters
	c.MonitorPresenter = presenter.NewMonitorPresenter(c.CaptureSvc, c.Detector, c.Bank, c.Regions, c.Sessions, cfg.MaxMissedFrames, logger)
	c.TimerPresenter = presenter.NewTimerPresenter(len(cfg.Regions), stateView)
	c.Bank.AddListener(c.TimerPresenter.OnTransition)
	c.Bank.OnExpiry(c.TimerPresenter.OnExpiry)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Sessions, statsView)
	c.CapturePresenter = presenter.NewCapturePresenter(c.Run, c.CaptureSvc, c.Bank, capView, logger)
	c.StallWatcher = presenter.NewStallWatcher(c.CaptureSvc, logger, 0, nil)
	c.Loop = presenter.NewLoop(c.MonitorPresenter, c.TimerPresenter, c.SessionPresenter, c.Display, c.Run, cfg.QuitRune(), logger)
	return c, nil
}

// Close releases the frame source, the display and the speaker. Safe to
// call more than once.
func (c *AppContainer) Close() {
	if c == nil {
		return
	}
	reason := c.Run.Reason()
	if reason == "" {
		reason = "shutdown"
	}
	_ = c.CapturePresenter.Shutdown(reason)
	if cl, ok := c.Display.(interface{ Close() error }); ok {
		if err := cl.Close(); err != nil && c.Logger != nil {
			c.Logger.Warn("display close", "error", err)
		}
	}
	c.Display = nil
	c.Bell.Close()
	c.Bell = nil
}
