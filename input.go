package starmap

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	doubleClickInterval = 400 * time.Millisecond
	doubleClickSlop     = 6.0 // pixels
)

// PointerState is the state of the pointer state machine.
type PointerState uint8

const (
	// PointerIdle: no button held. Moves update the hover.
	PointerIdle PointerState = iota
	// PointerDragging: button held. Moves pan the viewport.
	PointerDragging
)

func (s PointerState) String() string {
	if s == PointerDragging {
		return "dragging"
	}
	return "idle"
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown EventType = iota // button pressed
	EventPointerUp                    // button released
	EventSelect                       // selection changed (Object nil when cleared)
	EventHover                        // hovered object changed (Object nil on leave)
	EventActivate                     // double activation on a star system
	EventDrag                         // viewport panned by a drag
	EventZoom                         // viewport zoomed by the wheel
)

func (e EventType) String() string {
	switch e {
	case EventPointerDown:
		return "pointerDown"
	case EventPointerUp:
		return "pointerUp"
	case EventSelect:
		return "select"
	case EventHover:
		return "hover"
	case EventActivate:
		return "activate"
	case EventDrag:
		return "drag"
	case EventZoom:
		return "zoom"
	default:
		return "unknown"
	}
}

// PointerContext carries pointer event data to handlers.
type PointerContext struct {
	// Object is the object the event resolved to, or nil.
	Object           *Object
	ScreenX, ScreenY float64
	WorldX, WorldY   float64
	// Clicks is the press count for the current click sequence: 1 for a
	// single press, 2 for a double activation.
	Clicks int
}

// InteractionEvent is the flattened form of an interaction forwarded to an
// EventSink.
type InteractionEvent struct {
	Type     EventType
	ObjectID string
	ScreenX  float64
	ScreenY  float64
	WorldX   float64
	WorldY   float64
	// DeltaX and DeltaY are the screen-pixel pan for EventDrag.
	DeltaX float64
	DeltaY float64
	// Zoom is the viewport zoom after the event.
	Zoom   float64
	Clicks int
}

// EventSink receives every interaction event when set on a Map.
type EventSink interface {
	EmitEvent(event InteractionEvent)
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type handlerRegistry struct {
	selected  []pointerHandler
	hovered   []pointerHandler
	activated []pointerHandler
	nextID    uint32
}

func (r *handlerRegistry) add(event EventType, fn func(PointerContext)) CallbackHandle {
	r.nextID++
	h := pointerHandler{id: r.nextID, fn: fn}
	switch event {
	case EventSelect:
		r.selected = append(r.selected, h)
	case EventHover:
		r.hovered = append(r.hovered, h)
	case EventActivate:
		r.activated = append(r.activated, h)
	}
	return CallbackHandle{id: h.id, reg: r, event: event}
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventSelect:
		h.reg.selected = removePointerHandler(h.reg.selected, h.id)
	case EventHover:
		h.reg.hovered = removePointerHandler(h.reg.hovered, h.id)
	case EventActivate:
		h.reg.activated = removePointerHandler(h.reg.activated, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnSelect registers a callback fired when the selection changes. The
// context's Object is nil when the selection is cleared.
func (m *Map) OnSelect(fn func(PointerContext)) CallbackHandle {
	return m.handlers.add(EventSelect, fn)
}

// OnHover registers a callback fired when the hovered object changes.
func (m *Map) OnHover(fn func(PointerContext)) CallbackHandle {
	return m.handlers.add(EventHover, fn)
}

// OnActivate registers a callback fired on a double activation of a star
// system, the gesture that opens its detail view.
func (m *Map) OnActivate(fn func(PointerContext)) CallbackHandle {
	return m.handlers.add(EventActivate, fn)
}

// --- Pointer state machine ---

type pointerState struct {
	state        PointerState
	lastX, lastY float64 // screen position of the last press or drag step

	// Cursor tracking for polled input.
	cursorX, cursorY float64
	cursorSeen       bool

	clicks clickTracker
}

// clickTracker counts presses that land close together in time and space.
type clickTracker struct {
	at    time.Time
	x, y  float64
	count int
}

func (c *clickTracker) press(x, y float64, now time.Time) int {
	if c.count > 0 && now.Sub(c.at) <= doubleClickInterval &&
		math.Hypot(x-c.x, y-c.y) <= doubleClickSlop {
		c.count++
	} else {
		c.count = 1
	}
	c.at, c.x, c.y = now, x, y
	return c.count
}

// PointerState returns the current pointer state.
func (m *Map) PointerState() PointerState {
	return m.pointer.state
}

// PointerDown handles a button press at surface position (sx, sy). clicks
// is the press count of the click sequence; 2 on a star system activates it
// and ends the drag this press would otherwise start.
func (m *Map) PointerDown(sx, sy float64, clicks int) {
	ps := &m.pointer
	ps.state = PointerDragging
	ps.lastX, ps.lastY = sx, sy

	hit := m.hits.resolve(m.tree, m.view, sx, sy)
	ctx := m.pointerContext(hit, sx, sy, clicks)
	m.emit(EventPointerDown, ctx, 0, 0)

	m.setSelected(hit, ctx)
	if hit != nil && clicks >= 2 && hit.Kind == KindStarSystem {
		ps.state = PointerIdle
		m.fireActivate(ctx)
	}
}

// PointerMove handles pointer motion. While dragging it pans the viewport
// by the motion since the last step; otherwise it updates the hover.
func (m *Map) PointerMove(sx, sy float64) {
	ps := &m.pointer
	if ps.state == PointerDragging {
		dx, dy := sx-ps.lastX, sy-ps.lastY
		ps.lastX, ps.lastY = sx, sy
		if dx == 0 && dy == 0 {
			return
		}
		m.view.Pan(dx, dy)
		m.emit(EventDrag, m.pointerContext(nil, sx, sy, 0), dx, dy)
		return
	}

	hit := m.hits.resolve(m.tree, m.view, sx, sy)
	if objectID(hit) == objectID(m.hovered) {
		return
	}
	m.hovered = hit
	ctx := m.pointerContext(hit, sx, sy, 0)
	for _, h := range m.handlers.hovered {
		h.fn(ctx)
	}
	m.emit(EventHover, ctx, 0, 0)
}

// PointerUp ends a drag.
func (m *Map) PointerUp(sx, sy float64) {
	m.pointer.state = PointerIdle
	m.emit(EventPointerUp, m.pointerContext(nil, sx, sy, 0), 0, 0)
}

// PointerWheel applies one wheel step. Positive dy zooms in.
func (m *Map) PointerWheel(dy float64) {
	if dy == 0 {
		return
	}
	m.view.Wheel(dy)
	ps := &m.pointer
	m.emit(EventZoom, m.pointerContext(nil, ps.cursorX, ps.cursorY, 0), 0, 0)
}

func (m *Map) setSelected(o *Object, ctx PointerContext) {
	if objectID(o) == objectID(m.selected) {
		m.selected = o
		return
	}
	m.selected = o
	for _, h := range m.handlers.selected {
		h.fn(ctx)
	}
	m.emit(EventSelect, ctx, 0, 0)
}

func (m *Map) fireActivate(ctx PointerContext) {
	for _, h := range m.handlers.activated {
		h.fn(ctx)
	}
	if ctx.Object.OnActivate != nil {
		ctx.Object.OnActivate(ctx.Object)
	}
	m.emit(EventActivate, ctx, 0, 0)
}

func (m *Map) pointerContext(o *Object, sx, sy float64, clicks int) PointerContext {
	wx, wy := m.view.ScreenToWorld(sx, sy)
	return PointerContext{
		Object:  o,
		ScreenX: sx,
		ScreenY: sy,
		WorldX:  wx,
		WorldY:  wy,
		Clicks:  clicks,
	}
}

// --- Event sink bridge ---

func (m *Map) emit(t EventType, ctx PointerContext, dx, dy float64) {
	if m.sink == nil {
		return
	}
	m.sink.EmitEvent(InteractionEvent{
		Type:     t,
		ObjectID: objectID(ctx.Object),
		ScreenX:  ctx.ScreenX,
		ScreenY:  ctx.ScreenY,
		WorldX:   ctx.WorldX,
		WorldY:   ctx.WorldY,
		DeltaX:   dx,
		DeltaY:   dy,
		Zoom:     m.view.Zoom,
		Clicks:   ctx.Clicks,
	})
}

func objectID(o *Object) string {
	if o == nil {
		return ""
	}
	return o.ID
}

// --- Ebitengine polling ---

// processInput feeds one frame of host input through the state machine.
// Injected events take precedence over the real mouse for the frame.
func (m *Map) processInput() {
	if m.processInjectedInput() {
		return
	}

	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	ps := &m.pointer

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		m.PointerDown(sx, sy, ps.clicks.press(sx, sy, m.now()))
	}
	if !ps.cursorSeen || sx != ps.cursorX || sy != ps.cursorY {
		ps.cursorX, ps.cursorY = sx, sy
		ps.cursorSeen = true
		m.PointerMove(sx, sy)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		m.PointerUp(sx, sy)
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		m.PointerWheel(wy)
	}
}
