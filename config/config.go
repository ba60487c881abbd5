package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/soocke/dwell-monitor/domain/region"
)

// Frame sources.
const (
	SourceCamera = "camera"
	SourceFile   = "file"
	SourceScreen = "screen"
)

// Display backends.
const (
	DisplayWindow = "window"
	DisplayTk     = "tk"
	DisplayNone   = "none"
)

// ErrInvalidRegion is returned by Validate for regions without area or
// with a negative origin.
var ErrInvalidRegion = errors.New("config: invalid region")

// Config holds runtime configuration for detection and app behavior.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Frame source
	Source      string `json:"source"`
	CameraIndex int    `json:"camera_index"`
	VideoPath   string `json:"video_path"`

	// Display
	Display     string `json:"display"`
	WindowTitle string `json:"window_title"`
	QuitKey     string `json:"quit_key"`
	TickMillis  int    `json:"tick_ms"`

	// Detection parameters
	Regions        []region.Region `json:"regions"`
	DarkThreshold  int             `json:"dark_threshold"`
	OccupancyRatio float64         `json:"occupancy_ratio"`

	// Dwell timers
	DwellSeconds    int  `json:"dwell_seconds"`
	Bell            bool `json:"bell"`
	MaxMissedFrames int  `json:"max_missed_frames"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:           false,
		Source:          SourceCamera,
		CameraIndex:     0,
		VideoPath:       "",
		Display:         DisplayWindow,
		WindowTitle:     "Dark tone detection in regions",
		QuitKey:         "q",
		TickMillis:      30,
		Regions:         region.Defaults(),
		DarkThreshold:   50,
		OccupancyRatio:  0.10,
		DwellSeconds:    50,
		Bell:            false,
		MaxMissedFrames: 0,
	}
}

// Validate clamps/normalizes values to safe ranges. Regions cannot be
// repaired, so a degenerate region is reported as an error.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceCamera, SourceFile, SourceScreen:
	default:
		c.Source = SourceCamera
	}
	if c.CameraIndex < 0 {
		c.CameraIndex = 0
	}
	switch c.Display {
	case DisplayWindow, DisplayTk, DisplayNone:
	default:
		c.Display = DisplayWindow
	}
	if c.WindowTitle == "" {
		c.WindowTitle = "Dark tone detection in regions"
	}
	if len([]rune(c.QuitKey)) != 1 {
		c.QuitKey = "q"
	}
	if c.TickMillis <= 0 {
		c.TickMillis = 30
	}
	if c.DarkThreshold <= 0 || c.DarkThreshold > 255 {
		c.DarkThreshold = 50
	}
	if c.OccupancyRatio <= 0 || c.OccupancyRatio > 1 {
		c.OccupancyRatio = 0.10
	}
	if c.DwellSeconds <= 0 {
		c.DwellSeconds = 50
	}
	if c.MaxMissedFrames < 0 {
		c.MaxMissedFrames = 0
	}
	if len(c.Regions) == 0 {
		c.Regions = region.Defaults()
	}
	for i, r := range c.Regions {
		if r.Empty() || r.X < 0 || r.Y < 0 {
			return fmt.Errorf("%w: area %d %v", ErrInvalidRegion, i+1, r)
		}
	}
	if c.Source == SourceFile && c.VideoPath == "" {
		return errors.New("config: source \"file\" requires video_path")
	}
	return nil
}

// DwellDuration returns the countdown length of a region timer.
func (c *Config) DwellDuration() time.Duration {
	return time.Duration(c.DwellSeconds) * time.Second
}

// Tick returns the scheduling interval used by event-loop driven displays.
func (c *Config) Tick() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// QuitRune returns the key that stops the monitor.
func (c *Config) QuitRune() rune {
	for _, r := range c.QuitKey {
		return r
	}
	return 'q'
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON or validation error it returns the config with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
