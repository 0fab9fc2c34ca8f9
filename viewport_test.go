package starmap

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestViewportDefaults(t *testing.T) {
	v := NewViewport(800, 600)
	if v.Zoom != 1 || v.X != 0 || v.Y != 0 {
		t.Errorf("NewViewport = %+v, want origin at zoom 1", v)
	}
	sx, sy := v.WorldToScreen(0, 0)
	if !approxEqual(sx, 400, epsilon) || !approxEqual(sy, 300, epsilon) {
		t.Errorf("WorldToScreen(0,0) = (%f,%f), want (400,300)", sx, sy)
	}
}

func TestViewportTransform(t *testing.T) {
	v := NewViewport(800, 600)
	v.X, v.Y = 100, 50
	v.Zoom = 2

	sx, sy := v.WorldToScreen(110, 40)
	if !approxEqual(sx, 420, epsilon) || !approxEqual(sy, 280, epsilon) {
		t.Errorf("WorldToScreen(110,40) = (%f,%f), want (420,280)", sx, sy)
	}
}

func TestViewportRoundTrip(t *testing.T) {
	zooms := []float64{MinZoom, 0.37, 1, 2.5, MaxZoom}
	points := [][2]float64{{0, 0}, {123.456, -789.01}, {-5000, 5000}, {1e-3, 4999.999}}
	for _, z := range zooms {
		v := NewViewport(1280, 720)
		v.X, v.Y = -321.5, 77.25
		v.Zoom = z
		for _, p := range points {
			sx, sy := v.WorldToScreen(p[0], p[1])
			wx, wy := v.ScreenToWorld(sx, sy)
			if !approxEqual(wx, p[0], 1e-6) || !approxEqual(wy, p[1], 1e-6) {
				t.Errorf("zoom %v: round trip of %v = (%f,%f)", z, p, wx, wy)
			}
		}
	}
}

func TestViewportZoomClamp(t *testing.T) {
	tests := []struct {
		name  string
		apply func(v *Viewport)
		want  float64
	}{
		{"zoom in", func(v *Viewport) { v.ZoomIn() }, 1.5},
		{"zoom out", func(v *Viewport) { v.ZoomOut() }, 1 / 1.5},
		{"clamp high", func(v *Viewport) { v.ZoomBy(100) }, MaxZoom},
		{"clamp low", func(v *Viewport) { v.ZoomBy(0.0001) }, MinZoom},
		{"ignore non-positive", func(v *Viewport) { v.ZoomBy(-2); v.ZoomBy(0) }, 1},
		{"set clamps", func(v *Viewport) { v.SetZoom(9) }, MaxZoom},
		{"wheel in", func(v *Viewport) { v.Wheel(1) }, 1.1},
		{"wheel out", func(v *Viewport) { v.Wheel(-3) }, 0.9},
		{"wheel zero", func(v *Viewport) { v.Wheel(0) }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(800, 600)
			tt.apply(v)
			if !approxEqual(v.Zoom, tt.want, epsilon) {
				t.Errorf("Zoom = %f, want %f", v.Zoom, tt.want)
			}
		})
	}

	v := NewViewport(800, 600)
	for range 100 {
		v.ZoomIn()
	}
	if v.Zoom != MaxZoom {
		t.Errorf("repeated ZoomIn = %f, want %f", v.Zoom, MaxZoom)
	}
}

func TestViewportPan(t *testing.T) {
	v := NewViewport(800, 600)
	v.Pan(50, 50)
	if !approxEqual(v.X, -50, epsilon) || !approxEqual(v.Y, -50, epsilon) {
		t.Errorf("Pan(50,50) at zoom 1: centre = (%f,%f), want (-50,-50)", v.X, v.Y)
	}

	v.Reset()
	v.Zoom = 2
	v.Pan(50, -20)
	if !approxEqual(v.X, -25, epsilon) || !approxEqual(v.Y, 10, epsilon) {
		t.Errorf("Pan(50,-20) at zoom 2: centre = (%f,%f), want (-25,10)", v.X, v.Y)
	}
}

func TestViewportPanFollowsPointer(t *testing.T) {
	v := NewViewport(800, 600)
	v.Zoom = 3
	wx, wy := v.ScreenToWorld(100, 100)
	v.Pan(40, -15)
	sx, sy := v.WorldToScreen(wx, wy)
	if !approxEqual(sx, 140, 1e-6) || !approxEqual(sy, 85, 1e-6) {
		t.Errorf("grabbed point now at (%f,%f), want (140,85)", sx, sy)
	}
}

func TestViewportVisibleBounds(t *testing.T) {
	v := NewViewport(800, 600)
	v.X, v.Y = 100, 100
	v.Zoom = 2
	got := v.VisibleBounds()
	want := Rect{X: -100, Y: -50, Width: 400, Height: 300}
	if got != want {
		t.Errorf("VisibleBounds = %+v, want %+v", got, want)
	}
}

func TestViewportResizeKeepsView(t *testing.T) {
	v := NewViewport(800, 600)
	v.X, v.Y, v.Zoom = 12, -34, 2.5
	v.Resize(1024, 768)
	if v.Width != 1024 || v.Height != 768 {
		t.Errorf("size = %vx%v, want 1024x768", v.Width, v.Height)
	}
	if v.X != 12 || v.Y != -34 || v.Zoom != 2.5 {
		t.Errorf("Resize changed pan/zoom: %+v", v)
	}
}

func TestViewportReset(t *testing.T) {
	v := NewViewport(800, 600)
	v.X, v.Y, v.Zoom = 12, -34, 2.5
	v.Reset()
	if v.X != 0 || v.Y != 0 || v.Zoom != 1 || v.Width != 800 {
		t.Errorf("Reset = %+v", v)
	}
}

func TestViewportScrollTo(t *testing.T) {
	v := NewViewport(800, 600)
	v.ScrollTo(200, -100, 1.0, ease.Linear)
	if !v.Scrolling() {
		t.Fatal("Scrolling = false after ScrollTo")
	}

	v.update(0.5)
	if !approxEqual(v.X, 100, 0.01) || !approxEqual(v.Y, -50, 0.01) {
		t.Errorf("half way = (%f,%f), want (100,-50)", v.X, v.Y)
	}

	v.update(0.6)
	if v.Scrolling() {
		t.Error("Scrolling = true after the duration elapsed")
	}
	if !approxEqual(v.X, 200, 0.01) || !approxEqual(v.Y, -100, 0.01) {
		t.Errorf("end = (%f,%f), want (200,-100)", v.X, v.Y)
	}
}

func TestViewportScrollToImmediate(t *testing.T) {
	v := NewViewport(800, 600)
	v.ScrollTo(10, 20, 0, nil)
	if v.Scrolling() || v.X != 10 || v.Y != 20 {
		t.Errorf("ScrollTo with zero duration = %+v", v)
	}
}

func TestViewportPanCancelsScroll(t *testing.T) {
	v := NewViewport(800, 600)
	v.ScrollTo(500, 500, 1, nil)
	v.update(0.1)
	v.Pan(10, 0)
	if v.Scrolling() {
		t.Error("Pan did not cancel the scroll")
	}
	x := v.X
	v.update(0.5)
	if v.X != x {
		t.Errorf("X moved after cancel: %f -> %f", x, v.X)
	}
}

func TestViewportListen(t *testing.T) {
	n := NewResizeNotifier()
	v := NewViewport(800, 600)
	called := 0
	unsub := v.listen(n, func() { called++ })

	n.Notify(1024, 768)
	if v.Width != 1024 || v.Height != 768 || called != 1 {
		t.Errorf("after Notify: %vx%v called=%d", v.Width, v.Height, called)
	}
	n.Notify(1024, 768)
	if called != 1 {
		t.Errorf("unchanged size notified again: called=%d", called)
	}

	unsub()
	n.Notify(640, 480)
	if v.Width != 1024 || called != 1 {
		t.Errorf("notified after unsubscribe: %vx%v called=%d", v.Width, v.Height, called)
	}
}
