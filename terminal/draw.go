package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/meghashyamc/catch2d/geometry"
)

const (
	// cellAspect is how many cell widths tall one terminal cell is.
	cellAspect = 2.0

	targetWidthRatio  = 0.3125 // 200 of 640
	targetAspectRatio = 0.6    // 120 / 200
	targetMaxHeight   = 0.5    // of the screen height
	targetRune        = '█'
)

var (
	targetStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 100, 60))
	textStyle   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(220, 220, 220))
	hintStyle   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	dimStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 208, 128)).Bold(true)
	statsStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	buttonStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(70, 70, 70))
)

// rowSpan is the range of rows the target covers.
type rowSpan struct {
	top    int
	bottom int
}

// targetRect sizes the target for a width x height screen. Coordinates are in
// cell widths, so one row is cellAspect units tall.
func targetRect(width, height int, angleDegrees float64) geometry.RotatedRect {
	w := float64(width) * targetWidthRatio
	h := w * targetAspectRatio
	if limit := float64(height) * cellAspect * targetMaxHeight; h > limit {
		h = limit
		w = h / targetAspectRatio
	}

	return geometry.RotatedRect{
		Center: geometry.Vector{X: float64(width) / 2, Y: float64(height) * cellAspect / 2},
		Width:  w,
		Height: h,
		// screen Y points down, so a negative angle turns counter-clockwise
		Angle: -geometry.Radians(angleDegrees),
	}
}

func drawTarget(screen tcell.Screen, width, height int, angleDegrees float64) rowSpan {
	rect := targetRect(width, height, angleDegrees)
	lo, hi := rect.Bounds()

	firstRow := max(0, int(math.Floor(lo.Y/cellAspect)))
	lastRow := min(height-1, int(math.Ceil(hi.Y/cellAspect)))
	firstCol := max(0, int(math.Floor(lo.X)))
	lastCol := min(width-1, int(math.Ceil(hi.X)))

	span := rowSpan{top: lastRow, bottom: firstRow}
	for y := firstRow; y <= lastRow; y++ {
		for x := firstCol; x <= lastCol; x++ {
			cellCenter := geometry.Vector{X: float64(x) + 0.5, Y: (float64(y) + 0.5) * cellAspect}
			if !rect.Contains(cellCenter) {
				continue
			}
			screen.SetContent(x, y, targetRune, nil, targetStyle)
			span.top = min(span.top, y)
			span.bottom = max(span.bottom, y)
		}
	}
	return span
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func drawTextCentered(screen tcell.Screen, width, y int, text string, style tcell.Style) {
	x := max(0, (width-runewidth.StringWidth(text))/2)
	drawText(screen, x, y, text, style)
}
