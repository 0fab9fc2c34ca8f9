package starmap

import "math"

// Redraw thresholds. Smaller viewport changes accumulate until they cross
// a threshold, since the comparison is against the last drawn frame.
const (
	panEpsilon  = 0.1
	zoomEpsilon = 0.01
)

// frameKey is the state a drawn frame depends on.
type frameKey struct {
	x, y, zoom float64
	selectedID string
	hoveredID  string
}

// scheduler decides per tick whether the map needs drawing. It runs between
// Start and the cancel function Start returns.
type scheduler struct {
	running     bool
	needsRender bool
	last        frameKey
	unsubscribe func()

	// generation distinguishes Start calls so a stale cancel is a no-op.
	generation uint64

	frames  uint64
	skipped uint64
}

func (s *scheduler) dirty(cur frameKey) bool {
	return s.needsRender ||
		math.Abs(cur.x-s.last.x) > panEpsilon ||
		math.Abs(cur.y-s.last.y) > panEpsilon ||
		math.Abs(cur.zoom-s.last.zoom) > zoomEpsilon ||
		cur.selectedID != s.last.selectedID ||
		cur.hoveredID != s.last.hoveredID
}

// commit records cur as the drawn state and clears the render request.
func (s *scheduler) commit(cur frameKey) {
	s.last = cur
	s.needsRender = false
	s.frames++
}

func (m *Map) frameKey() frameKey {
	return frameKey{
		x:          m.view.X,
		y:          m.view.Y,
		zoom:       m.view.Zoom,
		selectedID: objectID(m.selected),
		hoveredID:  objectID(m.hovered),
	}
}

// MarkNeedsRender forces the next tick to draw. Data changes call it.
func (m *Map) MarkNeedsRender() {
	m.sched.needsRender = true
}

// Start begins frame scheduling and subscribes the viewport to src, which
// may be nil. The returned cancel function stops drawing and unsubscribes
// from src; it is safe to call more than once. Starting again cancels the
// previous run.
func (m *Map) Start(src ResizeSource) (cancel func()) {
	if m.sched.running {
		m.stop()
	}
	m.sched.generation++
	gen := m.sched.generation
	m.sched.running = true
	m.sched.needsRender = true
	if src != nil {
		m.sched.unsubscribe = m.view.listen(src, m.MarkNeedsRender)
	}
	return func() {
		if m.sched.generation == gen && m.sched.running {
			m.stop()
		}
	}
}

func (m *Map) stop() {
	m.sched.running = false
	if m.sched.unsubscribe != nil {
		m.sched.unsubscribe()
		m.sched.unsubscribe = nil
	}
	m.log.Debug("frame scheduling stopped",
		"frames", m.sched.frames,
		"skipped", m.sched.skipped,
	)
}

// Running reports whether the map is between Start and cancel.
func (m *Map) Running() bool {
	return m.sched.running
}

// Tick runs one frame against s: if anything the frame depends on changed
// since the last drawn frame, it draws and reports true. Otherwise no draw
// call is issued. A nil surface or a stopped map skips the frame without
// consuming the pending changes.
//
// A surface whose size differs from the viewport's is treated as a resize.
func (m *Map) Tick(s Surface) bool {
	if !m.sched.running || s == nil {
		return false
	}
	if w, h := s.Size(); float64(w) != m.view.Width || float64(h) != m.view.Height {
		m.view.Resize(float64(w), float64(h))
		m.sched.needsRender = true
	}

	cur := m.frameKey()
	if !m.sched.dirty(cur) {
		m.sched.skipped++
		return false
	}
	m.sched.commit(cur)
	m.renderFrame(s)
	return true
}
