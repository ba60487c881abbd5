package occupancy

import (
	"image"
	"image/color"
	"testing"

	"github.com/soocke/dwell-monitor/config"
	"github.com/soocke/dwell-monitor/domain/region"
)

func whiteFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	return img
}

// paintDark fills the first n pixels of r (row-major) with near-black.
func paintDark(img *image.RGBA, r region.Region, n int) {
	painted := 0
	for y := r.Y; y < r.Y+r.Height && painted < n; y++ {
		for x := r.X; x < r.X+r.Width && painted < n; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 10, G: 10, B: 10, A: 0xFF})
			painted++
		}
	}
}

func TestDetector_NoDarkPixels(t *testing.T) {
	d := NewDetector(nil)
	frame := whiteFrame(640, 480)
	for i, r := range region.Defaults() {
		if d.Occupied(frame, r) {
			t.Fatalf("region %d occupied on a white frame", i)
		}
	}
}

func TestDetector_FifteenPercentDark(t *testing.T) {
	d := NewDetector(nil)
	frame := whiteFrame(640, 480)
	r := region.Defaults()[0]
	paintDark(frame, r, r.Area()*15/100)
	if !d.Occupied(frame, r) {
		t.Fatalf("expected occupancy with 15%% dark pixels, got %+v", d.Measure(frame, r))
	}
	// Neighbouring regions stay unaffected.
	if d.Occupied(frame, region.Defaults()[1]) {
		t.Fatalf("dark pixels leaked into another region")
	}
}

func TestDetector_ThresholdIsStrict(t *testing.T) {
	d := NewDetector(nil)
	r := region.New(0, 0, 10, 10)

	exact := whiteFrame(20, 20)
	paintDark(exact, r, 10) // exactly 10% of 100
	if d.Occupied(exact, r) {
		t.Fatalf("exactly 10%% dark must not count as occupied")
	}

	above := whiteFrame(20, 20)
	paintDark(above, r, 11)
	if !d.Occupied(above, r) {
		t.Fatalf("11%% dark should count as occupied")
	}
}

func TestDetector_LuminanceBoundary(t *testing.T) {
	d := NewDetector(nil)
	r := region.New(0, 0, 4, 4)
	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := func(v uint8) {
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				frame.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 0xFF})
			}
		}
	}
	fill(50)
	if m := d.Measure(frame, r); m.Dark != 0 {
		t.Fatalf("grey 50 is not dark, counted %d", m.Dark)
	}
	fill(49)
	if m := d.Measure(frame, r); m.Dark != 16 {
		t.Fatalf("grey 49 is dark, counted %d", m.Dark)
	}
}

func TestDetector_Idempotent(t *testing.T) {
	d := NewDetector(nil)
	frame := whiteFrame(640, 480)
	r := region.Defaults()[4]
	paintDark(frame, r, r.Area()/2)
	first := d.Occupied(frame, r)
	second := d.Occupied(frame, r)
	if !first || first != second {
		t.Fatalf("detector not idempotent: %v then %v", first, second)
	}
}

func TestDetector_ZeroAreaRegion(t *testing.T) {
	d := NewDetector(nil)
	frame := image.NewRGBA(image.Rect(0, 0, 10, 10)) // all black
	if d.Occupied(frame, region.New(2, 2, 0, 5)) {
		t.Fatalf("zero-area region reported occupied")
	}
}

func TestDetector_ClippedRegionUsesDeclaredArea(t *testing.T) {
	d := NewDetector(nil)
	frame := image.NewRGBA(image.Rect(0, 0, 10, 10)) // all black
	// Only 5 of 100 declared pixels are inside the frame.
	r := region.New(9, 5, 10, 10)
	m := d.Measure(frame, r)
	if m.Dark != 5 || m.Area != 100 {
		t.Fatalf("unexpected measurement %+v", m)
	}
	if d.Occupied(frame, r) {
		t.Fatalf("5%% dark must not be occupied")
	}
}

func TestDetector_GrayAndGenericAgree(t *testing.T) {
	d := NewDetector(nil)
	r := region.New(0, 0, 10, 10)
	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	nrgba := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			v := uint8(255)
			if y < 3 {
				v = 20
			}
			gray.SetGray(x, y, color.Gray{Y: v})
			nrgba.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 0xFF})
		}
	}
	mg := d.Measure(gray, r)
	mn := d.Measure(nrgba, r)
	if mg.Dark != 30 || mn.Dark != 30 {
		t.Fatalf("expected 30 dark pixels, gray=%d generic=%d", mg.Dark, mn.Dark)
	}
}

func TestDetector_OffsetOrigin(t *testing.T) {
	d := NewDetector(nil)
	// Sub-images keep their absolute coordinates.
	full := whiteFrame(100, 100)
	r := region.New(40, 40, 10, 10)
	paintDark(full, r, 50)
	sub := full.SubImage(image.Rect(30, 30, 80, 80)).(*image.RGBA)
	if m := d.Measure(sub, r); m.Dark != 50 {
		t.Fatalf("expected 50 dark pixels in sub-image, got %d", m.Dark)
	}
}

func TestNewDetector_UsesConfigThresholds(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DarkThreshold = 200
	cfg.OccupancyRatio = 0.5
	d := NewDetector(cfg)
	r := region.New(0, 0, 10, 10)
	frame := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range frame.Pix {
		frame.Pix[i] = 150
	}
	if !d.Occupied(frame, r) {
		t.Fatalf("grey 150 should be dark with threshold 200")
	}
}
