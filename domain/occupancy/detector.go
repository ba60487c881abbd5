package occupancy

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/soocke/dwell-monitor/config"
	"github.com/soocke/dwell-monitor/domain/region"
)

const (
	// DefaultDarkThreshold is the luminance (0-255) below which a pixel is dark.
	DefaultDarkThreshold = 50
	// DefaultOccupancyRatio is the share of a region that must be dark.
	DefaultOccupancyRatio = 0.10
)

// Measurement is the raw outcome of the darkness test for one region.
type Measurement struct {
	Dark  int     // dark pixels inside the region (clipped to the frame)
	Area  int     // declared region area
	Ratio float64 // Dark / Area, 0 for empty regions
}

// Detector classifies regions as occupied when enough of their pixels are
// dark. It keeps no per-frame state; calls with the same frame and region
// always agree.
type Detector struct {
	darkThreshold  uint8
	occupancyRatio float64
}

// NewDetector returns a Detector using the thresholds of cfg. If cfg is nil
// the default configuration is used.
func NewDetector(cfg *config.Config) *Detector {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	d := &Detector{darkThreshold: DefaultDarkThreshold, occupancyRatio: DefaultOccupancyRatio}
	if cfg.DarkThreshold > 0 && cfg.DarkThreshold <= 255 {
		d.darkThreshold = uint8(cfg.DarkThreshold)
	}
	if cfg.OccupancyRatio > 0 && cfg.OccupancyRatio <= 1 {
		d.occupancyRatio = cfg.OccupancyRatio
	}
	return d
}

// Occupied reports whether the dark pixel count of r exceeds the configured
// share of its area. Empty regions are never occupied.
func (d *Detector) Occupied(frame image.Image, r region.Region) bool {
	m := d.Measure(frame, r)
	if m.Area <= 0 {
		return false
	}
	return float64(m.Dark) > float64(m.Area)*d.occupancyRatio
}

// Measure counts the dark pixels of r in frame. Parts of r outside the
// frame are ignored but still count towards Area.
func (d *Detector) Measure(frame image.Image, r region.Region) Measurement {
	if frame == nil || r.Empty() {
		return Measurement{}
	}
	m := Measurement{Area: r.Area()}
	rect := r.Rect().Intersect(frame.Bounds())
	if rect.Empty() {
		return m
	}
	switch f := frame.(type) {
	case *image.RGBA:
		m.Dark = d.countRGBA(f, rect)
	case *image.Gray:
		m.Dark = d.countGray(f, rect)
	default:
		m.Dark = d.countGeneric(frame, rect)
	}
	m.Ratio = float64(m.Dark) / float64(m.Area)
	return m
}

func (d *Detector) countRGBA(f *image.RGBA, rect image.Rectangle) int {
	dark := 0
	w := rect.Dx()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		off := f.PixOffset(rect.Min.X, y)
		row := f.Pix[off : off+w*4]
		for x := 0; x < w; x++ {
			i := x * 4
			r, g, b := row[i], row[i+1], row[i+2]
			lum := byte((77*uint32(r) + 150*uint32(g) + 29*uint32(b)) >> 8)
			if lum < d.darkThreshold {
				dark++
			}
		}
	}
	return dark
}

func (d *Detector) countGray(f *image.Gray, rect image.Rectangle) int {
	dark := 0
	w := rect.Dx()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		off := f.PixOffset(rect.Min.X, y)
		for _, v := range f.Pix[off : off+w] {
			if v < d.darkThreshold {
				dark++
			}
		}
	}
	return dark
}

// countGeneric handles decoded images (YCbCr, NRGBA, paletted ...).
func (d *Detector) countGeneric(frame image.Image, rect image.Rectangle) int {
	grey := imaging.Grayscale(imaging.Crop(frame, rect))
	dark := 0
	for i := 0; i < len(grey.Pix); i += 4 {
		if grey.Pix[i] < d.darkThreshold {
			dark++
		}
	}
	return dark
}
