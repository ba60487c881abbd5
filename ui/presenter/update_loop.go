package presenter

import (
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/dwell-monitor/domain/capture"
	"github.com/soocke/dwell-monitor/ui/model"
)

// Display renders annotated frames and reports user input.
type Display interface {
	Show(frame *image.RGBA, views []model.RegionView) error
	// PollKey returns the last key pressed since the previous call.
	PollKey() (rune, bool)
	Closed() bool
}

// Loop aggregates feature presenters and drives one iteration per Tick.
// The zero value is usable (methods are nil-safe) but does nothing useful.
type Loop struct {
	Monitor *MonitorPresenter
	Timers  *TimerPresenter
	Session *SessionPresenter
	Display Display
	Run     *model.RunModel
	QuitKey rune
	Now     func() time.Time
	logger  *slog.Logger
	err     error
}

func NewLoop(monitor *MonitorPresenter, timers *TimerPresenter, sess *SessionPresenter, display Display, run *model.RunModel, quit rune, logger *slog.Logger) *Loop {
	return &Loop{Monitor: monitor, Timers: timers, Session: sess, Display: display, Run: run, QuitKey: quit, Now: time.Now, logger: logger}
}

// Tick performs one frame iteration and reports whether the loop should
// continue. It returns false once the quit key was pressed, the display was
// closed, the source ended, a stop was requested, or an error occurred; Err
// then reports the error, if any.
func (l *Loop) Tick() bool {
	if l == nil || l.Monitor == nil || l.Display == nil {
		return false
	}
	if l.Run.Stopped() {
		return false
	}
	now := time.Now()
	if l.Now != nil {
		now = l.Now()
	}
	snap, ok, err := l.Monitor.ProcessFrame(now)
	if err != nil {
		if errors.Is(err, capture.ErrSourceClosed) {
			l.Run.RequestStop("source closed")
			return false
		}
		return l.fail(err)
	}
	if l.Timers != nil {
		l.Timers.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if ok {
		if err := l.Display.Show(snap.Image, l.Monitor.Views()); err != nil {
			return l.fail(err)
		}
	}
	if key, pressed := l.Display.PollKey(); pressed && key == l.QuitKey {
		l.Run.RequestStop("quit key")
		return false
	}
	if l.Display.Closed() {
		l.Run.RequestStop("display closed")
		return false
	}
	return !l.Run.Stopped()
}

// Err returns the error that stopped the loop, if any.
func (l *Loop) Err() error {
	if l == nil {
		return nil
	}
	return l.err
}

func (l *Loop) fail(err error) bool {
	l.err = err
	l.Run.RequestStop("error")
	if l.logger != nil {
		l.logger.Error("monitor loop stopped", "error", err)
	}
	return false
}
