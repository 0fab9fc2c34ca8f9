package starmap

import (
	"strings"
	"testing"
)

// frame runs the parts of Map.Update that do not poll the host: view
// animation, the attached test script and one injected event.
func frame(m *Map) {
	m.view.update(1.0 / 60)
	if m.testRunner != nil {
		m.testRunner.step(m)
	}
	m.processInjectedInput()
}

func TestInjectClick(t *testing.T) {
	m := newTestMap(t)
	m.InjectClick(400, 300)
	if m.PendingInput() != 2 {
		t.Fatalf("PendingInput = %d, want 2", m.PendingInput())
	}

	// Frame 1: press selects and starts a drag.
	if !m.processInjectedInput() {
		t.Fatal("no event consumed")
	}
	if objectID(m.Selected()) != "sol" || m.PointerState() != PointerDragging {
		t.Errorf("after press: selected=%q state=%v", objectID(m.Selected()), m.PointerState())
	}

	// Frame 2: release.
	m.processInjectedInput()
	if m.PendingInput() != 0 || m.PointerState() != PointerIdle {
		t.Errorf("after release: pending=%d state=%v", m.PendingInput(), m.PointerState())
	}
	if m.processInjectedInput() {
		t.Error("empty queue reported an event")
	}
}

func TestInjectDoubleClick(t *testing.T) {
	m := newTestMap(t)
	activations := 0
	m.OnActivate(func(PointerContext) { activations++ })

	m.InjectDoubleClick(500, 300)
	if m.PendingInput() != 4 {
		t.Fatalf("PendingInput = %d, want 4", m.PendingInput())
	}
	for range 4 {
		m.processInjectedInput()
	}
	if activations != 1 {
		t.Errorf("activations = %d, want 1", activations)
	}
	if objectID(m.Selected()) != "vega" {
		t.Errorf("Selected = %q", objectID(m.Selected()))
	}
}

func TestInjectDrag(t *testing.T) {
	m := newTestMap(t)
	m.InjectDrag(200, 100, 300, 200, 5)
	if m.PendingInput() != 5 {
		t.Fatalf("PendingInput = %d, want 5", m.PendingInput())
	}
	for range 5 {
		m.processInjectedInput()
	}
	v := m.Viewport()
	if !approxEqual(v.X, -100, 1e-6) || !approxEqual(v.Y, -100, 1e-6) {
		t.Errorf("centre = (%v,%v), want (-100,-100)", v.X, v.Y)
	}
	if m.PointerState() != PointerIdle {
		t.Error("drag did not end")
	}

	m.InjectDrag(0, 0, 10, 0, 0)
	if m.PendingInput() != 3 {
		t.Errorf("minimum drag = %d events, want 3", m.PendingInput())
	}
}

func TestInjectWheel(t *testing.T) {
	m := newTestMap(t)
	m.InjectWheel(1)
	m.InjectWheel(1)
	m.processInjectedInput()
	m.processInjectedInput()
	if !approxEqual(m.Viewport().Zoom, 1.21, 1e-9) {
		t.Errorf("Zoom = %v, want 1.21", m.Viewport().Zoom)
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bad json", `{"steps": [`, "parse test script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "click"}, {"action": "teleport"}]}`, `step 1: unknown action "teleport"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestTestRunnerScript(t *testing.T) {
	m := newTestMap(t)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "click", "x": 400, "y": 300},
		{"action": "zoom", "factor": 2},
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "zoomed"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	m.SetTestRunner(runner)

	frames := 0
	for !runner.Done() && frames < 50 {
		frame(m)
		frames++
	}
	if !runner.Done() {
		t.Fatal("script did not finish")
	}
	if frames != 7 {
		t.Errorf("script took %d frames, want 7", frames)
	}
	if objectID(m.Selected()) != "sol" {
		t.Errorf("Selected = %q, want sol", objectID(m.Selected()))
	}
	if m.Viewport().Zoom != 2 {
		t.Errorf("Zoom = %v, want 2", m.Viewport().Zoom)
	}
	if len(m.screenshotQueue) != 1 || m.screenshotQueue[0] != "zoomed" {
		t.Errorf("screenshot queue = %v", m.screenshotQueue)
	}
}

func TestTestRunnerViewActions(t *testing.T) {
	m := newTestMap(t)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 400, "fromY": 300, "toX": 420, "toY": 300, "frames": 3},
		{"action": "wheel", "delta": 1},
		{"action": "reset"},
		{"action": "dblclick", "x": 500, "y": 300},
		{"action": "move", "x": 400, "y": 300},
		{"action": "focus", "id": "vega"},
		{"action": "wait", "frames": 60}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	m.SetTestRunner(runner)
	activated := ""
	m.OnActivate(func(ctx PointerContext) { activated = ctx.Object.ID })

	for range 200 {
		if runner.Done() {
			break
		}
		frame(m)
	}
	if !runner.Done() {
		t.Fatal("script did not finish")
	}
	if activated != "vega" {
		t.Errorf("activated = %q, want vega", activated)
	}
	if objectID(m.Hovered()) != "sol" {
		t.Errorf("Hovered = %q, want sol", objectID(m.Hovered()))
	}
	v := m.Viewport()
	if v.Zoom != 1 || !approxEqual(v.X, 100, 0.01) || !approxEqual(v.Y, 0, 0.01) {
		t.Errorf("viewport = %+v, want centred on vega at zoom 1", v)
	}
}
