// Package camera reads frames from a capture device or video file via OpenCV.
package camera

import (
	"fmt"
	"image"
	"log/slog"

	"gocv.io/x/gocv"

	"github.com/soocke/dwell-monitor/domain/capture"
)

// Grabber wraps a gocv.VideoCapture and converts BGR frames to RGBA.
type Grabber struct {
	vc     *gocv.VideoCapture
	mat    gocv.Mat
	file   bool
	logger *slog.Logger
}

// OpenDevice opens the capture device with the given index.
func OpenDevice(index int, logger *slog.Logger) (*Grabber, error) {
	vc, err := gocv.VideoCaptureDevice(index)
	if err != nil {
		return nil, fmt.Errorf("camera: open device %d: %w", index, err)
	}
	vc.Set(gocv.VideoCaptureBufferSize, 1)
	g := &Grabber{vc: vc, mat: gocv.NewMat(), logger: logger}
	g.logOpened("device", fmt.Sprint(index))
	return g, nil
}

// OpenFile opens a video file or stream URL.
func OpenFile(path string, logger *slog.Logger) (*Grabber, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("camera: open %q: %w", path, err)
	}
	g := &Grabber{vc: vc, mat: gocv.NewMat(), file: true, logger: logger}
	g.logOpened("file", path)
	return g, nil
}

func (g *Grabber) logOpened(kind, name string) {
	if g.logger == nil {
		return
	}
	g.logger.Info("capture opened",
		"kind", kind,
		"source", name,
		"width", int(g.vc.Get(gocv.VideoCaptureFrameWidth)),
		"height", int(g.vc.Get(gocv.VideoCaptureFrameHeight)),
		"fps", g.vc.Get(gocv.VideoCaptureFPS),
	)
}

// Grab reads the next frame. A failed read or an empty frame yields
// capture.ErrNoFrame; the end of a video file yields capture.ErrSourceClosed.
func (g *Grabber) Grab() (*image.RGBA, error) {
	if g.vc == nil || !g.vc.IsOpened() {
		return nil, capture.ErrSourceClosed
	}
	if ok := g.vc.Read(&g.mat); !ok || g.mat.Empty() {
		if g.file && g.atEnd() {
			return nil, capture.ErrSourceClosed
		}
		return nil, capture.ErrNoFrame
	}
	if g.mat.Type() == gocv.MatTypeCV8UC3 {
		if img, err := bgrToRGBA(g.mat); err == nil {
			return img, nil
		}
	}
	img, err := g.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", capture.ErrNoFrame, err)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	return nil, fmt.Errorf("%w: unexpected image type %T", capture.ErrNoFrame, img)
}

// bgrToRGBA converts a continuous 8-bit BGR mat into a pooled RGBA frame.
func bgrToRGBA(m gocv.Mat) (*image.RGBA, error) {
	data, err := m.DataPtrUint8()
	if err != nil {
		return nil, err
	}
	rows, cols := m.Rows(), m.Cols()
	if len(data) < rows*cols*3 {
		return nil, fmt.Errorf("camera: short frame buffer %d", len(data))
	}
	img := capture.AcquireFrame(image.Rect(0, 0, cols, rows))
	pix := img.Pix
	for i, j := 0, 0; j+3 < len(pix); i, j = i+3, j+4 {
		pix[j] = data[i+2]
		pix[j+1] = data[i+1]
		pix[j+2] = data[i]
		pix[j+3] = 0xff
	}
	return img, nil
}

func (g *Grabber) atEnd() bool {
	total := g.vc.Get(gocv.VideoCaptureFrameCount)
	pos := g.vc.Get(gocv.VideoCapturePosFrames)
	return total > 0 && pos >= total
}

// Close releases the device and the frame buffer.
func (g *Grabber) Close() error {
	if g.vc == nil {
		return nil
	}
	err := g.vc.Close()
	g.vc = nil
	if cerr := g.mat.Close(); err == nil {
		err = cerr
	}
	if g.logger != nil {
		g.logger.Info("capture released")
	}
	return err
}

var _ capture.Grabber = (*Grabber)(nil)
