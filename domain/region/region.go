package region

import (
	"fmt"
	"image"
)

// Region is a rectangle of interest in frame coordinates. Regions are
// defined once at startup and never mutated.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// New returns a Region with its top-left corner at (x, y).
func New(x, y, w, h int) Region { return Region{X: x, Y: y, Width: w, Height: h} }

// Rect converts r to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Area returns the declared area, regardless of frame clipping.
func (r Region) Area() int { return r.Width * r.Height }

// Empty reports whether r has no area.
func (r Region) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Within reports whether r lies entirely inside bounds.
func (r Region) Within(bounds image.Rectangle) bool {
	return r.Rect().In(bounds)
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Defaults returns the six monitored areas: three on top, three below.
func Defaults() []Region {
	return []Region{
		New(75, 50, 100, 150),
		New(275, 50, 100, 150),
		New(475, 50, 100, 150),
		New(75, 250, 100, 150),
		New(275, 250, 100, 150),
		New(475, 250, 100, 150),
	}
}
