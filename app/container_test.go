package app

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/soocke/dwell-monitor/config"
	"github.com/soocke/dwell-monitor/domain/capture"
)

// darkGrabber serves frames with a black object in area 1, then ends.
type darkGrabber struct {
	frames int
	served int
	closed int
}

func (g *darkGrabber) Grab() (*image.RGBA, error) {
	if g.served >= g.frames {
		return nil, capture.ErrSourceClosed
	}
	g.served++
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(75, 50, 175, 200), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return img, nil
}

func (g *darkGrabber) Close() error { g.closed++; return nil }

func TestContainer_HeadlessRunToSourceEnd(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display = config.DisplayNone
	cfg.DwellSeconds = 2
	g := &darkGrabber{frames: 5}
	var out bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	c, err := BuildContainer(context.Background(), cfg, logger, &out, func(*config.Config, *slog.Logger) (capture.Grabber, error) {
		return g, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	clock := time.Unix(0, 0)
	c.Loop.Now = func() time.Time {
		now := clock
		clock = clock.Add(time.Second)
		return now
	}
	for i := 0; i < 10 && c.Loop.Tick(); i++ {
	}
	if c.Run.Reason() != "source closed" || c.Loop.Err() != nil {
		t.Fatalf("reason=%q err=%v", c.Run.Reason(), c.Loop.Err())
	}
	if got := strings.Count(out.String(), "Time's up for area 1! Remove object.\n"); got != 1 {
		t.Fatalf("expected one expiry line, got %d in %q", got, out.String())
	}
	if st := c.Sessions.Stats()[0]; st.Expiries != 1 {
		t.Fatalf("unexpected stats %+v", st)
	}

	c.Close()
	c.Close()
	if g.closed != 1 {
		t.Fatalf("grabber closed %d times", g.closed)
	}
}

func TestBuildContainer_OpenFailure(t *testing.T) {
	cfg := config.DefaultConfig()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	_, err := BuildContainer(context.Background(), cfg, logger, io.Discard, func(*config.Config, *slog.Logger) (capture.Grabber, error) {
		return nil, io.ErrUnexpectedEOF
	})
	if err == nil || !strings.Contains(err.Error(), "open frame source") {
		t.Fatalf("expected wrapped open error, got %v", err)
	}
}

func TestApp_RunHeadlessReleasesSource(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Display = config.DisplayNone
	cfg.TickMillis = 1
	g := &darkGrabber{frames: 3}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	c, err := BuildContainer(context.Background(), cfg, logger, io.Discard, func(*config.Config, *slog.Logger) (capture.Grabber, error) {
		return g, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	a := &app{ctx: context.Background(), c: c, logger: logger}
	if err := a.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if c.Run.Reason() != "source closed" {
		t.Fatalf("unexpected stop reason %q", c.Run.Reason())
	}
	if g.served != 3 || g.closed != 1 {
		t.Fatalf("served=%d closed=%d", g.served, g.closed)
	}
}
