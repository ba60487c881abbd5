package theme

// Centralized theming for the monitor UI. Provides the overlay palette used
// on video frames and InitStyles to configure the Tk widget styles.

import (
	"image/color"

	"github.com/soocke/dwell-monitor/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Overlay colors. Drawing backends take care of channel order.
var (
	OverlayOutline   = color.RGBA{R: 0, G: 0, B: 255, A: 255} // region border
	OverlayHighlight = color.RGBA{R: 0, G: 255, B: 0, A: 255} // occupied region
	OverlayText      = color.RGBA{R: 0, G: 255, B: 0, A: 255} // countdown label
)

// OverlayThickness is the border width in pixels.
const OverlayThickness = 2

// OverlayStyle returns the overlay palette for frame annotation.
func OverlayStyle() images.OverlayStyle {
	return images.OverlayStyle{
		Outline:   OverlayOutline,
		Highlight: OverlayHighlight,
		Text:      OverlayText,
		Thickness: OverlayThickness,
	}
}

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // panels, cards
	ColorBorder    = "#d0d7de"
	ColorDanger    = "#dc2626"
	ColorAccent    = "#10b981"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// style names used with Style("state.TLabel") etc.
const (
	StyleStateLabel = "state.TLabel"
	StyleAlertLabel = "alert.TLabel"
	StyleStatsLabel = "stats.TLabel"
)

// InitStyles activates the base theme and configures semantic label styles.
func InitStyles() {
	_ = ActivateTheme("azure light") // baseline metrics
	App.Configure(Background(ColorBg))

	StyleConfigure(StyleStateLabel,
		Foreground("white"),
		Background(ColorAccent),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
	StyleConfigure(StyleAlertLabel,
		Foreground(ColorDanger),
		Background(ColorSurface),
		Padding("4p 2p"),
	)
	StyleConfigure(StyleStatsLabel,
		Foreground(ColorTextMuted),
		Background(ColorSurface),
		Padding("2p 1p"),
	)
}
