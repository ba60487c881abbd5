package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	. "modernc.org/tk9.0"

	"github.com/soocke/dwell-monitor/config"
	"github.com/soocke/dwell-monitor/debug"
)

const (
	debugStatsInterval = 5 * time.Second
)

// app runs the monitor loop on the display backend selected by the config.
type app struct {
	ctx     context.Context
	c       *AppContainer
	logger  *slog.Logger
	afterID string
}

// New builds the container. ctx ends the run when cancelled (signals).
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) (*app, error) {
	c, err := BuildContainer(ctx, cfg, logger, out, nil)
	if err != nil {
		return nil, err
	}
	return &app{ctx: ctx, c: c, logger: logger}, nil
}

// Run drives the loop until it stops and releases every resource on the
// way out, including when the loop panics.
func (a *app) Run() (err error) {
	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()
	defer a.c.Close()
	defer a.recoverLog(&err)

	if a.c.Config.Debug {
		debug.StartGoroutineLogger(ctx, debugStatsInterval, a.logger)
		debug.StartMemLogger(ctx, debugStatsInterval, a.logger)
	}
	a.c.StallWatcher.Start()
	defer a.c.StallWatcher.Stop()
	go func() {
		<-ctx.Done()
		a.c.Run.RequestStop("signal")
	}()

	a.logger.Info("monitor started",
		"source", a.c.Config.Source,
		"display", a.c.Config.Display,
		"regions", len(a.c.Config.Regions),
		"dwell", a.c.Bank.Duration(),
	)
	if a.c.Config.Display == config.DisplayTk {
		a.runTk()
	} else {
		a.runLoop()
	}
	a.logger.Info("monitor stopped", "reason", a.c.Run.Reason(), "capture", a.c.CaptureSvc.Stats().Captures)
	return a.c.Loop.Err()
}

// runLoop drives the loop on the calling goroutine. The tick is a minimum
// period; blocking camera reads pace the loop on their own.
func (a *app) runLoop() {
	tick := a.c.Config.Tick()
	for {
		start := time.Now()
		if !a.c.Loop.Tick() {
			return
		}
		if d := tick - time.Since(start); d > 0 {
			time.Sleep(d)
		}
	}
}

// runTk schedules the loop with TclAfter to stay on Tk's event loop thread.
func (a *app) runTk() {
	a.c.RootView.Build(nil)
	a.scheduleUpdate()
	App.Wait()
}

func (a *app) scheduleUpdate() {
	a.afterID = TclAfter(a.c.Config.Tick(), a.update)
}

func (a *app) update() {
	if a.c.Loop.Tick() {
		a.scheduleUpdate()
		return
	}
	a.exitHandler()
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	// Widgets are gone after Destroy, so release capture while they exist.
	_ = a.c.CapturePresenter.Shutdown(a.c.Run.Reason())
	Destroy(App)
}

func (a *app) recoverLog(err *error) {
	if r := recover(); r != nil {
		a.logger.Error("monitor panic", "panic", r)
		*err = fmt.Errorf("monitor panic: %v", r)
	}
}
