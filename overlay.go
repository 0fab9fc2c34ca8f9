package starmap

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	overlayX        = 10.0
	overlayTop      = 25.0
	overlayLine     = 20.0
	overlayTextSize = 14.0

	// fpsRefresh is how often, in seconds, the FPS line forces a redraw.
	fpsRefresh = 0.5
)

// fpsCounter samples the host frame rates for the overlay.
type fpsCounter struct {
	elapsed  float64
	fps, tps float64
}

// update advances the counter by dt seconds and reports whether a new
// sample was taken.
func (c *fpsCounter) update(dt float64) bool {
	c.elapsed += dt
	if c.elapsed < fpsRefresh {
		return false
	}
	c.elapsed = 0
	c.fps = ebiten.ActualFPS()
	c.tps = ebiten.ActualTPS()
	return true
}

// drawOverlay draws the fixed status lines in the top-left corner.
func (m *Map) drawOverlay(s Surface) {
	y := overlayTop
	line := func(str string) {
		s.DrawText(str, overlayX, y, overlayTextSize, TextAlignLeft, ColorLabel)
		y += overlayLine
	}

	line(fmt.Sprintf("Zoom: %.2fx", m.view.Zoom))
	line(fmt.Sprintf("Systems: %d", m.systemCount))
	if m.selected != nil {
		line("Selected: " + m.selected.Label())
	}
	if m.showFPS {
		line(fmt.Sprintf("FPS: %.1f  TPS: %.1f", m.fps.fps, m.fps.tps))
	}
}
