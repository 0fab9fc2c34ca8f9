package starmap

import "time"

// connectionPair is an unordered pair of object ids, stored low id first.
type connectionPair struct {
	a, b string
}

func makePair(a, b string) connectionPair {
	if b < a {
		a, b = b, a
	}
	return connectionPair{a: a, b: b}
}

// frameBuffers are reused across frames so a steady-state frame does not
// allocate.
type frameBuffers struct {
	visible []*Object
	screen  []Vec2
	byID    map[string]int // object id -> index into visible/screen
	pairs   map[connectionPair]struct{}
	segs    []Segment
}

func (b *frameBuffers) reset() {
	if b.byID == nil {
		b.byID = make(map[string]int)
		b.pairs = make(map[connectionPair]struct{})
	}
	clear(b.visible)
	b.visible = b.visible[:0]
	b.screen = b.screen[:0]
	b.segs = b.segs[:0]
	clear(b.byID)
	clear(b.pairs)
}

// renderFrame draws one full frame: background, connection lines, objects,
// overlay. Objects are culled to the visible bounds with a single index
// query, and each visible object's screen position is computed once.
func (m *Map) renderFrame(s Surface) {
	var stats debugStats
	var t0 time.Time
	if m.debug {
		t0 = time.Now()
	}

	fb := &m.frame
	fb.reset()

	s.Fill(ColorBackground)

	fb.visible = m.tree.AppendRetrieve(fb.visible, m.view.VisibleBounds())
	for i, o := range fb.visible {
		sx, sy := m.view.WorldToScreen(o.X, o.Y)
		fb.screen = append(fb.screen, Vec2{X: sx, Y: sy})
		fb.byID[o.ID] = i
	}

	if m.debug {
		stats.cullTime = time.Since(t0)
		t0 = time.Now()
	}

	m.appendConnections(fb)
	if len(fb.segs) > 0 {
		s.StrokeSegments(fb.segs, connectionWidth, ColorConnection)
	}

	selectedID := objectID(m.selected)
	hoveredID := objectID(m.hovered)
	for i, o := range fb.visible {
		p := fb.screen[i]
		o.Draw(s, m.view, p.X, p.Y, o.ID == selectedID, o.ID == hoveredID)
	}

	m.drawOverlay(s)

	if m.debug {
		stats.drawTime = time.Since(t0)
		stats.visible = len(fb.visible)
		stats.segments = len(fb.segs)
		stats.indexed = m.tree.Len()
		m.debugLog(stats)
	}
}

// appendConnections collects one segment per unordered connected pair with
// at least one visible end. The far end is looked up in the object index;
// ids the index does not know are skipped.
func (m *Map) appendConnections(fb *frameBuffers) {
	for i, o := range fb.visible {
		links := o.Connections()
		if len(links) == 0 {
			continue
		}
		p1 := fb.screen[i]
		for _, id := range links {
			other := m.index.Lookup(id)
			if other == nil || other.ID == o.ID {
				continue
			}
			key := makePair(o.ID, other.ID)
			if _, done := fb.pairs[key]; done {
				continue
			}
			fb.pairs[key] = struct{}{}

			var p2 Vec2
			if j, ok := fb.byID[other.ID]; ok {
				p2 = fb.screen[j]
			} else {
				p2.X, p2.Y = m.view.WorldToScreen(other.X, other.Y)
			}
			fb.segs = append(fb.segs, Segment{X0: p1.X, Y0: p1.Y, X1: p2.X, Y1: p2.Y})
		}
	}
}
