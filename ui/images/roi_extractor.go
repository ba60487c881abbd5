package images

import (
	"errors"
	"image"
	"image/draw"

	"github.com/soocke/dwell-monitor/domain/region"
)

// ErrOutsideFrame is returned when a region does not overlap the frame.
var ErrOutsideFrame = errors.New("region outside frame")

// ExtractRegion returns the part of frame covered by r, clipped to the frame
// bounds, and the clipped rectangle in frame coordinates. The returned image
// shares pixels with frame when possible.
func ExtractRegion(frame *image.RGBA, r region.Region) (*image.RGBA, image.Rectangle, error) {
	if frame == nil {
		return nil, image.Rectangle{}, errors.New("nil frame")
	}
	rect := r.Rect().Intersect(frame.Bounds())
	if rect.Empty() {
		return nil, image.Rectangle{}, ErrOutsideFrame
	}
	sub := frame.SubImage(rect)
	if rgba, ok := sub.(*image.RGBA); ok {
		return rgba, rect, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), sub, rect.Min, draw.Src)
	return out, rect, nil
}
