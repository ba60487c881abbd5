package view

import (
	"gocv.io/x/gocv"

	"github.com/soocke/dwell-monitor/ui/images"
	"github.com/soocke/dwell-monitor/ui/model"
)

const (
	labelFont      = gocv.FontHersheySimplex
	labelScale     = 0.6
	labelThickness = 2
)

// DrawOverlay annotates mat with every region outline, the highlight of
// occupied regions and the countdown labels.
func DrawOverlay(mat *gocv.Mat, views []model.RegionView, st images.OverlayStyle) {
	if mat == nil || mat.Empty() {
		return
	}
	th := st.Thickness
	if th < 1 {
		th = 1
	}
	for _, v := range views {
		gocv.Rectangle(mat, v.Region.Rect(), st.Outline, th)
	}
	for _, v := range views {
		if v.Highlight {
			gocv.Rectangle(mat, v.Region.Rect(), st.Highlight, th)
		}
	}
	for _, v := range views {
		if label := v.Label(); label != "" {
			gocv.PutText(mat, label, v.LabelAt(), labelFont, labelScale, st.Text, labelThickness)
		}
	}
}
