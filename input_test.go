package starmap

import (
	"slices"
	"testing"
	"time"
)

type recordingSink struct {
	events []InteractionEvent
}

func (s *recordingSink) EmitEvent(ev InteractionEvent) {
	s.events = append(s.events, ev)
}

func (s *recordingSink) types() []EventType {
	out := make([]EventType, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Type
	}
	return out
}

func TestPointerDownSelects(t *testing.T) {
	m := newTestMap(t)
	sink := &recordingSink{}
	m.SetEventSink(sink)

	var selected []PointerContext
	m.OnSelect(func(ctx PointerContext) { selected = append(selected, ctx) })

	m.PointerDown(400, 300, 1)
	if objectID(m.Selected()) != "sol" {
		t.Fatalf("Selected = %q, want sol", objectID(m.Selected()))
	}
	if len(selected) != 1 || selected[0].Object.ID != "sol" || selected[0].Clicks != 1 {
		t.Fatalf("select handlers = %+v", selected)
	}
	if selected[0].WorldX != 0 || selected[0].WorldY != 0 {
		t.Errorf("world = (%v,%v), want (0,0)", selected[0].WorldX, selected[0].WorldY)
	}
	if want := []EventType{EventPointerDown, EventSelect}; !slices.Equal(sink.types(), want) {
		t.Errorf("events = %v, want %v", sink.types(), want)
	}
	if sink.events[1].ObjectID != "sol" || sink.events[1].Zoom != 1 {
		t.Errorf("select event = %+v", sink.events[1])
	}

	// Same object again: no new selection event.
	m.PointerUp(400, 300)
	m.PointerDown(405, 300, 1)
	if len(selected) != 1 {
		t.Errorf("reselecting fired %d handlers", len(selected))
	}

	// Empty space deselects.
	m.PointerUp(405, 300)
	m.PointerDown(700, 100, 1)
	if m.Selected() != nil {
		t.Errorf("Selected = %v after clicking empty space", m.Selected())
	}
	if len(selected) != 2 || selected[1].Object != nil {
		t.Errorf("deselect handler = %+v", selected)
	}
}

func TestPointerDragPans(t *testing.T) {
	m := newTestMap(t)
	sink := &recordingSink{}
	m.SetEventSink(sink)

	m.PointerDown(400, 300, 1)
	if m.PointerState() != PointerDragging {
		t.Fatalf("state = %v, want dragging", m.PointerState())
	}
	m.PointerMove(450, 350)
	v := m.Viewport()
	if !approxEqual(v.X, -50, epsilon) || !approxEqual(v.Y, -50, epsilon) {
		t.Errorf("after drag: centre = (%v,%v), want (-50,-50)", v.X, v.Y)
	}
	if m.Hovered() != nil {
		t.Error("drag should not change the hover")
	}

	last := sink.events[len(sink.events)-1]
	if last.Type != EventDrag || last.DeltaX != 50 || last.DeltaY != 50 {
		t.Errorf("drag event = %+v", last)
	}

	m.PointerMove(450, 350)
	if !approxEqual(v.X, -50, epsilon) {
		t.Error("a move without motion panned")
	}

	m.PointerUp(450, 350)
	if m.PointerState() != PointerIdle {
		t.Errorf("state = %v, want idle", m.PointerState())
	}
	m.PointerMove(600, 300)
	if !approxEqual(v.X, -50, epsilon) {
		t.Error("moving after release panned")
	}
}

func TestPointerDragAtZoom(t *testing.T) {
	m := newTestMap(t)
	m.Viewport().SetZoom(2)
	m.PointerDown(100, 100, 1)
	m.PointerMove(140, 80)
	m.PointerUp(140, 80)
	v := m.Viewport()
	if !approxEqual(v.X, -20, epsilon) || !approxEqual(v.Y, 10, epsilon) {
		t.Errorf("centre = (%v,%v), want (-20,10)", v.X, v.Y)
	}
}

func TestPointerHover(t *testing.T) {
	m := newTestMap(t)
	var hovered []string
	h := m.OnHover(func(ctx PointerContext) { hovered = append(hovered, objectID(ctx.Object)) })

	m.PointerMove(500, 300)
	m.PointerMove(505, 302)
	m.PointerMove(700, 100)
	m.PointerMove(701, 100)
	m.PointerMove(400, 300)

	if want := []string{"vega", "", "sol"}; !slices.Equal(hovered, want) {
		t.Errorf("hover events = %q, want %q", hovered, want)
	}
	if objectID(m.Hovered()) != "sol" {
		t.Errorf("Hovered = %q", objectID(m.Hovered()))
	}

	h.Remove()
	m.PointerMove(500, 300)
	if len(hovered) != 3 {
		t.Error("removed hover handler still fired")
	}
}

func TestDoubleActivation(t *testing.T) {
	m := newTestMap(t)
	sink := &recordingSink{}
	m.SetEventSink(sink)

	var activated []string
	m.OnActivate(func(ctx PointerContext) { activated = append(activated, ctx.Object.ID) })
	objectCalls := 0
	m.Lookup("sol").OnActivate = func(o *Object) { objectCalls++ }

	m.PointerDown(400, 300, 1)
	m.PointerUp(400, 300)
	if len(activated) != 0 {
		t.Fatal("single click activated")
	}

	sink.events = nil
	m.PointerDown(400, 300, 2)
	if !slices.Equal(activated, []string{"sol"}) || objectCalls != 1 {
		t.Errorf("activated = %v, object calls = %d", activated, objectCalls)
	}
	if m.PointerState() != PointerIdle {
		t.Error("activation should end the drag")
	}
	if want := []EventType{EventPointerDown, EventActivate}; !slices.Equal(sink.types(), want) {
		t.Errorf("events = %v, want %v", sink.types(), want)
	}
	if sink.events[1].Clicks != 2 {
		t.Errorf("activate clicks = %d", sink.events[1].Clicks)
	}
}

func TestDoubleActivationIgnoresPoints(t *testing.T) {
	m := newTestMap(t)
	m.SetGalaxy(testGalaxy(), NewPoint(-200, 0))
	fired := false
	m.OnActivate(func(PointerContext) { fired = true })

	m.PointerDown(200, 300, 2)
	if objectID(m.Selected()) != "point--200-0" {
		t.Errorf("Selected = %q", objectID(m.Selected()))
	}
	if fired {
		t.Error("activated a point")
	}
	if m.PointerState() != PointerDragging {
		t.Error("a double press on a point should still start a drag")
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	m := newTestMap(t)
	var a, b int
	ha := m.OnSelect(func(PointerContext) { a++ })
	m.OnSelect(func(PointerContext) { b++ })

	m.Select("sol")
	ha.Remove()
	ha.Remove()
	m.Select("vega")

	if a != 1 || b != 2 {
		t.Errorf("calls a=%d b=%d, want 1 and 2", a, b)
	}
	CallbackHandle{}.Remove()
}

func TestPointerWheel(t *testing.T) {
	m := newTestMap(t)
	sink := &recordingSink{}
	m.SetEventSink(sink)

	m.PointerWheel(1)
	m.PointerWheel(0)
	if !approxEqual(m.Viewport().Zoom, 1.1, epsilon) {
		t.Errorf("Zoom = %v, want 1.1", m.Viewport().Zoom)
	}
	if len(sink.events) != 1 || sink.events[0].Type != EventZoom || !approxEqual(sink.events[0].Zoom, 1.1, epsilon) {
		t.Errorf("events = %+v", sink.events)
	}

	m.PointerWheel(-1)
	if !approxEqual(m.Viewport().Zoom, 0.99, epsilon) {
		t.Errorf("Zoom = %v, want 0.99", m.Viewport().Zoom)
	}
}

func TestClickTracker(t *testing.T) {
	var c clickTracker
	t0 := time.Unix(1000, 0)

	steps := []struct {
		x, y float64
		at   time.Duration
		want int
	}{
		{100, 100, 0, 1},
		{102, 101, 200 * time.Millisecond, 2},
		{102, 101, 500 * time.Millisecond, 3},
		{102, 101, 1500 * time.Millisecond, 1},
		{150, 101, 1600 * time.Millisecond, 1},
	}
	for i, st := range steps {
		if got := c.press(st.x, st.y, t0.Add(st.at)); got != st.want {
			t.Errorf("press %d = %d, want %d", i, got, st.want)
		}
	}
}

func TestEnumStrings(t *testing.T) {
	if PointerIdle.String() != "idle" || PointerDragging.String() != "dragging" {
		t.Error("PointerState strings")
	}
	tests := map[EventType]string{
		EventPointerDown: "pointerDown",
		EventPointerUp:   "pointerUp",
		EventSelect:      "select",
		EventHover:       "hover",
		EventActivate:    "activate",
		EventDrag:        "drag",
		EventZoom:        "zoom",
		EventType(99):    "unknown",
	}
	for e, want := range tests {
		if got := e.String(); got != want {
			t.Errorf("EventType(%d).String() = %q, want %q", e, got, want)
		}
	}
}
