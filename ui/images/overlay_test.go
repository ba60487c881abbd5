package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/soocke/dwell-monitor/domain/region"
	"github.com/soocke/dwell-monitor/ui/model"
)

var testStyle = OverlayStyle{
	Outline:   color.RGBA{B: 255, A: 255},
	Highlight: color.RGBA{G: 255, A: 255},
	Text:      color.RGBA{G: 255, A: 255},
	Thickness: 2,
}

func TestDrawOverlay_OutlineAndHighlight(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 640, 480))
	m := model.NewRegionModel(region.Defaults())
	m.SetHighlight(1, true)
	DrawOverlay(frame, m.Views(), testStyle)

	if got := frame.RGBAAt(75, 50); got != testStyle.Outline {
		t.Fatalf("region 1 corner = %v, want outline", got)
	}
	if got := frame.RGBAAt(275, 100); got != testStyle.Highlight {
		t.Fatalf("region 2 edge = %v, want highlight", got)
	}
	if got := frame.RGBAAt(120, 120); got != (color.RGBA{}) {
		t.Fatalf("region interior modified: %v", got)
	}
}

func TestDrawOverlay_LabelAboveRegion(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 640, 480))
	m := model.NewRegionModel(region.Defaults())
	m.SetRemaining(3, 12)
	DrawOverlay(frame, m.Views(), testStyle)

	// Region 4 starts at (75,250); its label sits on the band just above.
	found := false
	for y := 230; y < 250 && !found; y++ {
		for x := 75; x < 160; x++ {
			if frame.RGBAAt(x, y) == testStyle.Text {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatalf("no label pixels above region 4")
	}
}

func TestScaleToFit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 640, 480))
	if got := ScaleToFit(src, 800, 600); got != image.Image(src) {
		t.Fatalf("expected source returned when it fits")
	}
	scaled := ScaleToFit(src, 320, 320)
	if b := scaled.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Fatalf("unexpected scaled size %v", b)
	}
	if len(EncodePNG(scaled)) == 0 {
		t.Fatalf("empty PNG")
	}
}
