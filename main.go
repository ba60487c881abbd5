package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/soocke/dwell-monitor/app"
	"github.com/soocke/dwell-monitor/config"
)

func main() {
	var (
		cfgPath = flag.String("config", "config.json", "path to JSON config file")
		dbg     = flag.Bool("debug", false, "enable debug logging and runtime stats")
		source  = flag.String("source", "", "frame source: camera, file or screen")
		camIdx  = flag.Int("camera", -1, "camera device index")
		video   = flag.String("video", "", "video file or stream URL (implies -source file)")
		display = flag.String("display", "", "display backend: window, tk or none")
		bell    = flag.Bool("bell", false, "ring a bell on expiry")
		write   = flag.Bool("write-config", false, "write the effective config to -config and exit")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	applyFlags(cfg, *dbg, *source, *camIdx, *video, *display, *bell)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *write {
		if err := cfg.Save(*cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(os.Stderr, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger, os.Stdout)
	if err != nil {
		logger.Error("startup failed", "error", err)
		stop()
		os.Exit(1)
	}
	if err := application.Run(); err != nil {
		logger.Error("monitor failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// applyFlags overrides file values with explicitly set flags.
func applyFlags(cfg *config.Config, dbg bool, source string, camIdx int, video, display string, bell bool) {
	if dbg {
		cfg.Debug = true
	}
	if source != "" {
		cfg.Source = source
	}
	if camIdx >= 0 {
		cfg.CameraIndex = camIdx
	}
	if video != "" {
		cfg.VideoPath = video
		if source == "" {
			cfg.Source = config.SourceFile
		}
	}
	if display != "" {
		cfg.Display = display
	}
	if bell {
		cfg.Bell = true
	}
}
