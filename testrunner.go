package starmap

import (
	"encoding/json"
	"fmt"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	ID     string  `json:"id,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Factor float64 `json:"factor,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot": true,
	"click":      true,
	"dblclick":   true,
	"drag":       true,
	"move":       true,
	"wheel":      true,
	"zoom":       true,
	"reset":      true,
	"focus":      true,
	"wait":       true,
}

// TestRunner sequences injected input, view commands and screenshots across
// frames for automated visual testing. Attach to a Map via SetTestRunner.
//
// Supported actions: screenshot (label), click / dblclick / move (x, y),
// drag (fromX, fromY, toX, toY, frames), wheel (delta), zoom (factor),
// reset, focus (id), wait (frames).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached with SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the map. The runner advances from
// Map.Update before input is processed each frame.
func (m *Map) SetTestRunner(runner *TestRunner) {
	m.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *TestRunner) step(m *Map) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(m.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		m.Screenshot(st.Label)
	case "click":
		m.InjectClick(st.X, st.Y)
	case "dblclick":
		m.InjectDoubleClick(st.X, st.Y)
	case "move":
		m.InjectMove(st.X, st.Y)
	case "drag":
		m.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		m.InjectWheel(st.Delta)
	case "zoom":
		m.ZoomBy(st.Factor)
	case "reset":
		m.ResetView()
	case "focus":
		m.FocusOn(st.ID)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(m.injectQueue) == 0 {
		r.done = true
	}
}
