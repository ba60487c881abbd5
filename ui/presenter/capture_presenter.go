package presenter

import (
	"log/slog"

	"github.com/soocke/dwell-monitor/ui/model"
)

// LifecycleContract narrows what the presenter needs from the capture layer.
type LifecycleContract interface {
	Close() error
}

// TimerResetter clears all countdowns.
type TimerResetter interface {
	Reset()
}

// CaptureView updates UI elements affected by shutting capture down.
type CaptureView interface {
	PreviewReset()
}

// CapturePresenter owns the shutdown of the frame source.
type CapturePresenter struct {
	run     *model.RunModel
	service LifecycleContract
	bank    TimerResetter
	view    CaptureView
	logger  *slog.Logger
	done    bool
}

func NewCapturePresenter(run *model.RunModel, service LifecycleContract, bank TimerResetter, view CaptureView, logger *slog.Logger) *CapturePresenter {
	return &CapturePresenter{run: run, service: service, bank: bank, view: view, logger: logger}
}

// Shutdown records the stop, releases the source, clears timers and resets
// the preview. Idempotent; only the first call releases anything.
func (c *CapturePresenter) Shutdown(reason string) error {
	if c == nil || c.done {
		return nil
	}
	c.done = true
	c.run.RequestStop(reason)
	var err error
	if c.service != nil {
		err = c.service.Close()
	}
	if c.bank != nil {
		c.bank.Reset()
	}
	if c.view != nil {
		c.view.PreviewReset()
	}
	if c.logger != nil {
		if err != nil {
			c.logger.Error("capture release failed", "reason", c.run.Reason(), "error", err)
		} else {
			c.logger.Info("capture released", "reason", c.run.Reason())
		}
	}
	return err
}
