package starmap

type syntheticKind uint8

const (
	syntheticPress syntheticKind = iota
	syntheticMove
	syntheticRelease
	syntheticWheel
)

// syntheticPointerEvent is one injected pointer event in surface
// coordinates, replayed through the same state machine as real input.
type syntheticPointerEvent struct {
	kind             syntheticKind
	screenX, screenY float64
	clicks           int
	wheel            float64
}

func (m *Map) inject(ev syntheticPointerEvent) {
	m.injectQueue = append(m.injectQueue, ev)
}

// InjectPress queues a press at (x, y). The event is consumed on the next
// Update.
func (m *Map) InjectPress(x, y float64) {
	m.inject(syntheticPointerEvent{kind: syntheticPress, screenX: x, screenY: y, clicks: 1})
}

// InjectMove queues a pointer move to (x, y). Between InjectPress and
// InjectRelease it pans like a drag.
func (m *Map) InjectMove(x, y float64) {
	m.inject(syntheticPointerEvent{kind: syntheticMove, screenX: x, screenY: y})
}

// InjectRelease queues a release at (x, y).
func (m *Map) InjectRelease(x, y float64) {
	m.inject(syntheticPointerEvent{kind: syntheticRelease, screenX: x, screenY: y})
}

// InjectClick queues a press followed by a release at (x, y). Consumes two
// frames.
func (m *Map) InjectClick(x, y float64) {
	m.InjectPress(x, y)
	m.InjectRelease(x, y)
}

// InjectDoubleClick queues two clicks at (x, y), the second carrying a click
// count of 2. Consumes four frames.
func (m *Map) InjectDoubleClick(x, y float64) {
	m.InjectClick(x, y)
	m.inject(syntheticPointerEvent{kind: syntheticPress, screenX: x, screenY: y, clicks: 2})
	m.InjectRelease(x, y)
}

// InjectDrag queues a drag spanning frames frames: a press at (fromX, fromY),
// frames-2 moves interpolated linearly to (toX, toY), and a release there.
// The minimum is 3 frames.
func (m *Map) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 3)
	m.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		m.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	m.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel step. Positive dy zooms in.
func (m *Map) InjectWheel(dy float64) {
	m.inject(syntheticPointerEvent{kind: syntheticWheel, wheel: dy})
}

// PendingInput returns the number of injected events not yet consumed.
func (m *Map) PendingInput() int {
	return len(m.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the pointer state machine. Returns true if an event was consumed,
// in which case real input is skipped for the frame.
func (m *Map) processInjectedInput() bool {
	if len(m.injectQueue) == 0 {
		return false
	}
	ev := m.injectQueue[0]
	copy(m.injectQueue, m.injectQueue[1:])
	m.injectQueue = m.injectQueue[:len(m.injectQueue)-1]

	switch ev.kind {
	case syntheticPress:
		m.PointerDown(ev.screenX, ev.screenY, ev.clicks)
	case syntheticMove:
		m.PointerMove(ev.screenX, ev.screenY)
	case syntheticRelease:
		m.PointerUp(ev.screenX, ev.screenY)
	case syntheticWheel:
		m.PointerWheel(ev.wheel)
	}
	return true
}
