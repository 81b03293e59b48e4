package ebitenhost

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"portfoliobg/backdrop"
)

// pageFraction is the share of the viewport scrolled by PageUp, PageDown and Space
const pageFraction = 0.9

// Document is the virtual page scrolled behind the backdrop. Its height is a
// whole number of viewport heights, so it follows the window on resize.
type Document struct {
	Top       float64 // Scroll offset in logical pixels
	Viewports float64 // Document height in viewport heights
}

// scrollCommand is one update's worth of scroll input
type scrollCommand struct {
	Delta float64 // Relative scroll in logical pixels, positive scrolls down
	Home  bool
	End   bool
}

func (c scrollCommand) empty() bool {
	return c.Delta == 0 && !c.Home && !c.End
}

// Height returns the document height for viewport height vh
func (d *Document) Height(vh float64) float64 {
	return math.Max(d.Viewports, 1) * vh
}

// Metrics returns the scroll metrics a page of this document would report
func (d *Document) Metrics(vh float64) backdrop.ScrollMetrics {
	return backdrop.ScrollMetrics{Top: d.Top, Height: d.Height(vh), Viewport: vh}
}

// Clamp keeps the offset within the scrollable range and reports whether it changed
func (d *Document) Clamp(vh float64) bool {
	top := math.Max(0, math.Min(d.Top, d.Height(vh)-vh))
	changed := top != d.Top
	d.Top = top
	return changed
}

// Apply runs a scroll command and reports whether the offset changed
func (d *Document) Apply(cmd scrollCommand, vh float64) bool {
	if cmd.empty() {
		return false
	}
	before := d.Top
	switch {
	case cmd.Home:
		d.Top = 0
	case cmd.End:
		d.Top = d.Height(vh) - vh
	default:
		d.Top += cmd.Delta
	}
	d.Clamp(vh)
	return d.Top != before
}

// readScrollInput translates wheel and keyboard state into a scroll command
func readScrollInput(step, vh float64) scrollCommand {
	var cmd scrollCommand

	_, wy := ebiten.Wheel()
	cmd.Delta -= wy * step

	if repeating(ebiten.KeyArrowDown) {
		cmd.Delta += step
	}
	if repeating(ebiten.KeyArrowUp) {
		cmd.Delta -= step
	}
	if repeating(ebiten.KeyPageDown) || repeating(ebiten.KeySpace) {
		cmd.Delta += vh * pageFraction
	}
	if repeating(ebiten.KeyPageUp) {
		cmd.Delta -= vh * pageFraction
	}
	cmd.Home = inpututil.IsKeyJustPressed(ebiten.KeyHome)
	cmd.End = inpututil.IsKeyJustPressed(ebiten.KeyEnd)
	return cmd
}

// repeating reports a key press on the first tick and then at a keyboard repeat rate
func repeating(key ebiten.Key) bool {
	const (
		delay    = 30
		interval = 4
	)
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= delay && (d-delay)%interval == 0
}
