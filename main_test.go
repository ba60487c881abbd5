package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/soocke/dwell-monitor/config"
)

func TestApplyFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	applyFlags(cfg, true, "", 2, "clip.mp4", "none", true)
	if !cfg.Debug || !cfg.Bell || cfg.CameraIndex != 2 {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.Source != config.SourceFile || cfg.VideoPath != "clip.mp4" || cfg.Display != config.DisplayNone {
		t.Fatalf("unexpected source/display: %+v", cfg)
	}

	cfg = config.DefaultConfig()
	applyFlags(cfg, false, config.SourceScreen, -1, "", "", false)
	if cfg.Source != config.SourceScreen || cfg.CameraIndex != 0 || cfg.Debug {
		t.Fatalf("unset flags must keep file values: %+v", cfg)
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("shown", "area", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Fatalf("unexpected log output %q", out)
	}
}
