package images

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/soocke/dwell-monitor/domain/region"
)

func TestExtractRegion_Inside(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 640, 480))
	frame.SetRGBA(80, 60, color.RGBA{R: 9, A: 255})
	roi, rect, err := ExtractRegion(frame, region.New(75, 50, 100, 150))
	if err != nil || roi == nil {
		t.Fatalf("expected ROI, got err=%v", err)
	}
	if rect != image.Rect(75, 50, 175, 200) {
		t.Fatalf("unexpected rect %v", rect)
	}
	if roi.RGBAAt(80, 60).R != 9 {
		t.Fatalf("ROI does not share frame coordinates")
	}
}

func TestExtractRegion_ClipsNearEdge(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 500, 300))
	_, rect, err := ExtractRegion(frame, region.New(475, 250, 100, 150))
	if err != nil {
		t.Fatalf("roi error: %v", err)
	}
	if rect != image.Rect(475, 250, 500, 300) {
		t.Fatalf("expected clip to frame, got %v", rect)
	}
}

func TestExtractRegion_Outside(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 50, 50))
	if _, _, err := ExtractRegion(frame, region.New(75, 50, 100, 150)); !errors.Is(err, ErrOutsideFrame) {
		t.Fatalf("expected ErrOutsideFrame, got %v", err)
	}
	if _, _, err := ExtractRegion(nil, region.New(0, 0, 1, 1)); err == nil {
		t.Fatalf("expected error for nil frame")
	}
}
