package notify

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/soocke/dwell-monitor/domain/dwell"
)

// Notifier reacts to expired dwell timers.
type Notifier interface {
	Notify(ev dwell.ExpiryEvent)
}

// Func adapts a function to Notifier.
type Func func(dwell.ExpiryEvent)

func (f Func) Notify(ev dwell.ExpiryEvent) { f(ev) }

// Message formats the user-facing text for ev.
func Message(ev dwell.ExpiryEvent) string {
	return fmt.Sprintf("Time's up for area %d! Remove object.", ev.Index())
}

// Console writes one plain line per expiry.
type Console struct{ w io.Writer }

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console { return &Console{w: w} }

func (c *Console) Notify(ev dwell.ExpiryEvent) {
	if c == nil || c.w == nil {
		return
	}
	fmt.Fprintln(c.w, Message(ev))
}

// Log records expiries as structured log entries.
type Log struct{ logger *slog.Logger }

// NewLog returns a Log notifier.
func NewLog(logger *slog.Logger) *Log { return &Log{logger: logger} }

func (l *Log) Notify(ev dwell.ExpiryEvent) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Warn("dwell expired",
		"area", ev.Index(),
		"session", ev.Session.String(),
		"held", ev.FiredAt.Sub(ev.StartedAt),
		"overdue", ev.FiredAt.Sub(ev.Deadline),
	)
}

// Multi fans an event out to several notifiers in order.
type Multi []Notifier

func (m Multi) Notify(ev dwell.ExpiryEvent) {
	for _, n := range m {
		if n != nil {
			n.Notify(ev)
		}
	}
}
