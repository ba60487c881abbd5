package view

import (
	"image"

	"github.com/soocke/dwell-monitor/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// CapturePreview shows the annotated frame and a close-up of one region.
// It owns two LabelWidgets and provides methods to update or reset them.
type CapturePreview interface {
	UpdateCapture(img image.Image)
	UpdateDetection(img image.Image)
	Reset()
}

type capturePreview struct {
	captureLabel       *LabelWidget
	detectionLabel     *LabelWidget
	prevCapturePhoto   *Img // last Tk photo image instance for capture
	prevDetectionPhoto *Img // last Tk photo image instance for the region close-up
}

// Old photos are deleted before replacement so off-screen image data does
// not accumulate.

// NewCapturePreview creates the preview labels, grids them and returns the view.
// Layout: frame spans columns 0-2; region close-up sits at column 3 of the row.
func NewCapturePreview(row int) CapturePreview {
	capPhoto := NewPhoto(Data(placeholderPNG(maxPreviewW, maxPreviewH)))
	detPhoto := NewPhoto(Data(placeholderPNG(maxDetailW, maxDetailH)))
	capture := Label(Image(capPhoto), Borderwidth(1), Relief("sunken"))
	detection := Label(Image(detPhoto), Borderwidth(1), Relief("sunken"))
	Grid(capture, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	Grid(detection, Row(row), Column(3), Columnspan(1), Sticky("n"), Padx("0.4m"), Pady("0.4m"))
	return &capturePreview{captureLabel: capture, detectionLabel: detection, prevCapturePhoto: capPhoto, prevDetectionPhoto: detPhoto}
}

const (
	maxPreviewW = 640
	maxPreviewH = 480
	maxDetailW  = 150
	maxDetailH  = 225
)

func placeholderPNG(w, h int) []byte {
	return images.EncodePNG(image.NewRGBA(image.Rect(0, 0, w/2, h/2)))
}

func (v *capturePreview) UpdateCapture(img image.Image) {
	if v.captureLabel == nil || img == nil {
		return
	}
	v.prevCapturePhoto = replacePhoto(v.captureLabel, v.prevCapturePhoto, images.ScaleToFit(img, maxPreviewW, maxPreviewH))
}

func (v *capturePreview) UpdateDetection(img image.Image) {
	if v.detectionLabel == nil || img == nil {
		return
	}
	v.prevDetectionPhoto = replacePhoto(v.detectionLabel, v.prevDetectionPhoto, images.ScaleToFit(img, maxDetailW, maxDetailH))
}

func (v *capturePreview) Reset() {
	if v.captureLabel != nil {
		v.prevCapturePhoto = replacePNG(v.captureLabel, v.prevCapturePhoto, placeholderPNG(maxPreviewW, maxPreviewH))
	}
	if v.detectionLabel != nil {
		v.prevDetectionPhoto = replacePNG(v.detectionLabel, v.prevDetectionPhoto, placeholderPNG(maxDetailW, maxDetailH))
	}
}

func replacePhoto(label *LabelWidget, prev *Img, img image.Image) *Img {
	return replacePNG(label, prev, images.EncodePNG(img))
}

func replacePNG(label *LabelWidget, prev *Img, png []byte) *Img {
	if prev != nil {
		prev.Delete()
	}
	photo := NewPhoto(Data(png))
	label.Configure(Image(photo))
	return photo
}
