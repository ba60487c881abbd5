package images

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/soocke/dwell-monitor/ui/model"
)

// OverlayStyle selects the colors used to annotate a frame.
type OverlayStyle struct {
	Outline   color.RGBA // baseline region border
	Highlight color.RGBA // occupied region border
	Text      color.RGBA // countdown label
	Thickness int
}

// DrawOverlay draws every region outline, the highlight of occupied regions
// and the countdown labels onto dst in place.
func DrawOverlay(dst *image.RGBA, views []model.RegionView, st OverlayStyle) {
	if dst == nil {
		return
	}
	th := st.Thickness
	if th < 1 {
		th = 1
	}
	for _, v := range views {
		drawBorder(dst, v.Region.Rect(), th, st.Outline)
	}
	for _, v := range views {
		if v.Highlight {
			drawBorder(dst, v.Region.Rect(), th, st.Highlight)
		}
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(st.Text), Face: basicfont.Face7x13}
	for _, v := range views {
		label := v.Label()
		if label == "" {
			continue
		}
		at := v.LabelAt()
		d.Dot = fixed.P(at.X, at.Y)
		d.DrawString(label)
	}
}

func drawBorder(dst *image.RGBA, r image.Rectangle, th int, c color.RGBA) {
	if r.Empty() {
		return
	}
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+th),
		image.Rect(r.Min.X, r.Max.Y-th, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+th, r.Max.Y),
		image.Rect(r.Max.X-th, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(dst.Bounds()), src, image.Point{}, draw.Src)
	}
}
