package starmap

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stellarlight/starmap/galaxy"
	"github.com/tanema/gween/ease"
	"golang.org/x/time/rate"
)

// DefaultWorldBounds is the root rectangle of the spatial index.
var DefaultWorldBounds = Rect{X: -5000, Y: -5000, Width: 10000, Height: 10000}

const (
	DefaultWidth  = 900
	DefaultHeight = 900

	// DefaultFocusDuration is the FocusOn animation length in seconds.
	DefaultFocusDuration = 0.4
)

// Options configures a Map. Zero fields take the defaults.
type Options struct {
	// WorldBounds is the root of the spatial index. Objects outside it are
	// still indexed and found, only less efficiently.
	WorldBounds Rect
	// MaxObjects and MaxLevels tune quadtree subdivision.
	MaxObjects int
	MaxLevels  int
	// HitTolerance is the pick radius in screen pixels.
	HitTolerance float64
	// Width and Height are the initial surface size in pixels.
	Width, Height float64
	// ShowFPS adds an FPS/TPS line to the overlay.
	ShowFPS bool
	// Debug logs per-frame stats at debug level.
	Debug bool
	// Logger receives the map's logs. Defaults to slog.Default.
	Logger *slog.Logger
	// ScreenshotDir is where Screenshot writes PNGs. Defaults to
	// "screenshots".
	ScreenshotDir string
}

func (o *Options) applyDefaults() {
	if o.WorldBounds.Width <= 0 || o.WorldBounds.Height <= 0 {
		o.WorldBounds = DefaultWorldBounds
	}
	if o.MaxObjects <= 0 {
		o.MaxObjects = DefaultMaxObjects
	}
	if o.MaxLevels <= 0 {
		o.MaxLevels = DefaultMaxLevels
	}
	if o.HitTolerance <= 0 {
		o.HitTolerance = DefaultHitTolerance
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.ScreenshotDir == "" {
		o.ScreenshotDir = "screenshots"
	}
}

// Map is the top-level object that owns the object set, its spatial index,
// the viewport, the pointer state and the frame scheduler.
//
// A Map is not safe for concurrent use. All methods are meant to be called
// from the host's update/draw thread.
type Map struct {
	log   *slog.Logger
	debug bool

	// Data
	galaxy      *galaxy.Galaxy
	objects     []*Object
	worldBounds Rect
	tree        *Quadtree
	index       *Index
	systemCount int

	// View and interaction state. The viewport is written by pointer
	// handlers and view controls; selection and hover by hit testing.
	view     *Viewport
	selected *Object
	hovered  *Object
	pointer  pointerState
	hits     hitTester
	handlers handlerRegistry
	sink     EventSink
	now      func() time.Time

	// Frame state
	sched        scheduler
	frame        frameBuffers
	surface      *EbitenSurface
	showFPS      bool
	fps          fpsCounter
	debugLimiter *rate.Limiter

	// Test harness
	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string
	ScreenshotDir   string
}

// NewMap creates an empty map. Call Start before drawing.
func NewMap(opts Options) *Map {
	opts.applyDefaults()
	return &Map{
		log:           opts.Logger.With("component", "starmap"),
		debug:         opts.Debug,
		worldBounds:   opts.WorldBounds,
		tree:          NewQuadtree(opts.WorldBounds, opts.MaxObjects, opts.MaxLevels),
		index:         NewIndex(),
		view:          NewViewport(opts.Width, opts.Height),
		hits:          hitTester{tolerance: opts.HitTolerance},
		now:           time.Now,
		showFPS:       opts.ShowFPS,
		debugLimiter:  newDebugLimiter(),
		ScreenshotDir: opts.ScreenshotDir,
	}
}

// SetGalaxy replaces the object set with one star system node per system
// of g, plus any extra objects, and rebuilds the index.
func (m *Map) SetGalaxy(g *galaxy.Galaxy, extra ...*Object) {
	objs := ObjectsFromGalaxy(g)
	objs = append(objs, extra...)
	m.galaxy = g
	m.SetObjects(objs)
}

// SetObjects replaces the object set and rebuilds the spatial index and the
// id index from scratch. Objects repeating an earlier id are skipped. The
// selection and hover carry over to the new objects with the same ids.
func (m *Map) SetObjects(objs []*Object) {
	start := time.Now()

	kept, dups := m.index.Rebuild(objs)
	for _, o := range dups {
		m.log.Warn("duplicate object id skipped", "id", o.ID, "kind", o.Kind)
	}
	m.objects = kept
	m.tree.Rebuild(m.worldBounds, kept)

	m.systemCount = 0
	for _, o := range kept {
		if o.Kind == KindStarSystem {
			m.systemCount++
		}
	}

	if m.selected != nil {
		m.selected = m.index.Lookup(m.selected.ID)
	}
	if m.hovered != nil {
		m.hovered = m.index.Lookup(m.hovered.ID)
	}
	m.MarkNeedsRender()

	m.debugLogRebuild(time.Since(start), len(dups))
}

// Galaxy returns the galaxy last passed to SetGalaxy.
func (m *Map) Galaxy() *galaxy.Galaxy {
	return m.galaxy
}

// Objects returns the indexed objects. The slice MUST NOT be mutated.
func (m *Map) Objects() []*Object {
	return m.objects
}

// Lookup returns the indexed object with the given id, or nil.
func (m *Map) Lookup(id string) *Object {
	return m.index.Lookup(id)
}

// Index returns the spatial index.
func (m *Map) Index() *Quadtree {
	return m.tree
}

// Viewport returns the map's viewport. Changes made through it are picked
// up by the next tick.
func (m *Map) Viewport() *Viewport {
	return m.view
}

// HitTest returns the object under the surface point (sx, sy), or nil.
func (m *Map) HitTest(sx, sy float64) *Object {
	return m.hits.resolve(m.tree, m.view, sx, sy)
}

// Selected returns the selected object, or nil. For a star system its
// System field carries the backing domain payload.
func (m *Map) Selected() *Object {
	return m.selected
}

// Hovered returns the object under the pointer, or nil.
func (m *Map) Hovered() *Object {
	return m.hovered
}

// Select selects the object with the given id and reports whether it
// exists. Selection handlers fire as for a click on the object.
func (m *Map) Select(id string) bool {
	o := m.index.Lookup(id)
	if o == nil {
		return false
	}
	sx, sy := m.view.WorldToScreen(o.X, o.Y)
	m.setSelected(o, m.pointerContext(o, sx, sy, 0))
	return true
}

// ClearSelection deselects the selected object, if any.
func (m *Map) ClearSelection() {
	m.setSelected(nil, PointerContext{})
}

// ZoomIn zooms in by one button step.
func (m *Map) ZoomIn() { m.view.ZoomIn() }

// ZoomOut zooms out by one button step.
func (m *Map) ZoomOut() { m.view.ZoomOut() }

// ZoomBy multiplies the zoom by factor, clamped to [MinZoom, MaxZoom].
func (m *Map) ZoomBy(factor float64) { m.view.ZoomBy(factor) }

// ResetView pans back to the world origin at zoom 1.
func (m *Map) ResetView() { m.view.Reset() }

// FocusOn animates the viewport to centre on the object with the given id
// and reports whether it exists.
func (m *Map) FocusOn(id string) bool {
	o := m.index.Lookup(id)
	if o == nil {
		return false
	}
	m.view.ScrollTo(o.X, o.Y, DefaultFocusDuration, ease.OutCubic)
	return true
}

// Resize sets the surface size and forces a redraw.
func (m *Map) Resize(width, height float64) {
	m.view.Resize(width, height)
	m.MarkNeedsRender()
}

// SetEventSink sets the optional receiver of every interaction event.
func (m *Map) SetEventSink(sink EventSink) {
	m.sink = sink
}

// SetDebugMode enables or disables per-frame stats logging.
func (m *Map) SetDebugMode(enabled bool) {
	m.debug = enabled
}

// SetShowFPS toggles the FPS/TPS overlay line.
func (m *Map) SetShowFPS(show bool) {
	m.showFPS = show
	m.MarkNeedsRender()
}

// Update advances view animations, runs any attached test script and
// processes host input. Call once per tick.
func (m *Map) Update() {
	dt := 1.0 / float64(ebiten.TPS())

	m.view.update(float32(dt))
	if m.testRunner != nil {
		m.testRunner.step(m)
	}
	m.processInput()

	if m.showFPS && m.fps.update(dt) {
		m.MarkNeedsRender()
	}
}

// Draw ticks the scheduler against screen and captures queued screenshots.
// When nothing changed, screen is left untouched, so the host must not clear
// it between frames (Run disables ebiten's per-frame clear).
func (m *Map) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	if m.surface == nil {
		m.surface = NewEbitenSurface(screen)
	} else {
		m.surface.SetTarget(screen)
	}
	m.Tick(m.surface)
	m.flushScreenshots(screen)
}
