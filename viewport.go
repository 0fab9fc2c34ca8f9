package starmap

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	MinZoom = 0.1
	MaxZoom = 5.0

	// ButtonZoomFactor is applied by ZoomIn and divided out by ZoomOut.
	ButtonZoomFactor = 1.5
	// WheelZoomIn and WheelZoomOut are applied per wheel notch.
	WheelZoomIn  = 1.1
	WheelZoomOut = 0.9
)

// scrollAnim holds active scroll-to tweens for the viewport centre.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Viewport is the camera over the galaxy: the world point at the centre of
// the surface, the zoom factor, and the surface size in pixels.
//
// Pan and zoom are written by pointer handlers and external controls; the
// scheduler and hit-test resolver only read them.
type Viewport struct {
	// X and Y are the world-space position the viewport centres on.
	X, Y float64
	// Zoom is the scale factor, always within [MinZoom, MaxZoom].
	Zoom float64
	// Width and Height are the surface size in pixels.
	Width, Height float64

	scrollTween *scrollAnim
}

// NewViewport creates a viewport at the world origin with zoom 1.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{Zoom: 1, Width: width, Height: height}
}

// ClampZoom restricts z to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	return max(MinZoom, min(MaxZoom, z))
}

// WorldToScreen converts world coordinates to surface pixels.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = (wx-v.X)*v.Zoom + v.Width/2
	sy = (wy-v.Y)*v.Zoom + v.Height/2
	return
}

// ScreenToWorld converts surface pixels to world coordinates. It is the
// inverse of WorldToScreen.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = v.X + (sx-v.Width/2)/v.Zoom
	wy = v.Y + (sy-v.Height/2)/v.Zoom
	return
}

// VisibleBounds returns the world-space rectangle covered by the surface.
func (v *Viewport) VisibleBounds() Rect {
	return Rect{
		X:      v.X - v.Width/(2*v.Zoom),
		Y:      v.Y - v.Height/(2*v.Zoom),
		Width:  v.Width / v.Zoom,
		Height: v.Height / v.Zoom,
	}
}

// Pan moves the viewport by a pointer delta in screen pixels. The content
// follows the pointer, so dragging right moves the centre left in world
// space by dx/Zoom.
func (v *Viewport) Pan(dx, dy float64) {
	v.scrollTween = nil
	v.X -= dx / v.Zoom
	v.Y -= dy / v.Zoom
}

// ZoomBy multiplies the zoom by factor and clamps the result.
func (v *Viewport) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	v.Zoom = ClampZoom(v.Zoom * factor)
}

// SetZoom sets the zoom, clamped to [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(z float64) {
	v.Zoom = ClampZoom(z)
}

// ZoomIn zooms in one button step.
func (v *Viewport) ZoomIn() {
	v.ZoomBy(ButtonZoomFactor)
}

// ZoomOut zooms out one button step.
func (v *Viewport) ZoomOut() {
	v.ZoomBy(1 / ButtonZoomFactor)
}

// Wheel applies one wheel notch. Positive dy (wheel pushed away from the
// user) zooms in.
func (v *Viewport) Wheel(dy float64) {
	switch {
	case dy > 0:
		v.ZoomBy(WheelZoomIn)
	case dy < 0:
		v.ZoomBy(WheelZoomOut)
	}
}

// Reset returns to the world origin at zoom 1. The surface size is kept.
func (v *Viewport) Reset() {
	v.scrollTween = nil
	v.X, v.Y = 0, 0
	v.Zoom = 1
}

// Resize updates the surface dimensions without touching pan or zoom.
func (v *Viewport) Resize(width, height float64) {
	v.Width = width
	v.Height = height
}

// ScrollTo animates the centre to the world position over duration seconds.
// A later Pan or Reset cancels the animation.
func (v *Viewport) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		v.scrollTween = nil
		v.X, v.Y = x, y
		return
	}
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(v.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is running.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// update advances the scroll animation. Called from Map.Update.
func (v *Viewport) update(dt float32) {
	if v.scrollTween == nil {
		return
	}
	if !v.scrollTween.doneX {
		val, done := v.scrollTween.tweenX.Update(dt)
		v.X = float64(val)
		v.scrollTween.doneX = done
	}
	if !v.scrollTween.doneY {
		val, done := v.scrollTween.tweenY.Update(dt)
		v.Y = float64(val)
		v.scrollTween.doneY = done
	}
	if v.scrollTween.doneX && v.scrollTween.doneY {
		v.scrollTween = nil
	}
}

// ResizeSource delivers host surface size changes. The returned function
// unregisters fn.
type ResizeSource interface {
	OnResize(fn func(width, height int)) (unsubscribe func())
}

// listen subscribes the viewport to src. onResize runs after the viewport
// has taken the new size.
func (v *Viewport) listen(src ResizeSource, onResize func()) (unsubscribe func()) {
	return src.OnResize(func(w, h int) {
		v.Resize(float64(w), float64(h))
		if onResize != nil {
			onResize()
		}
	})
}
