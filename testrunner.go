package musclemap

import (
	"encoding/json"
	"errors"
	"fmt"
)

// scriptStep is one scripted viewer action. Only the fields the action
// reads are set.
type scriptStep struct {
	Action string  `json:"action"`
	Key    string  `json:"key,omitempty"`    // highlight
	Label  string  `json:"label,omitempty"`  // screenshot
	X      float64 `json:"x,omitempty"`      // click
	Y      float64 `json:"y,omitempty"`      // click
	FromX  float64 `json:"fromX,omitempty"`  // drag
	FromY  float64 `json:"fromY,omitempty"`  // drag
	ToX    float64 `json:"toX,omitempty"`    // drag
	ToY    float64 `json:"toY,omitempty"`    // drag
	Width  int     `json:"width,omitempty"`  // resize
	Height int     `json:"height,omitempty"` // resize
	Frames int     `json:"frames,omitempty"` // drag, wait
}

var scriptActions = map[string]bool{
	"click": true, "drag": true, "wait": true, "resize": true,
	"highlight": true, "clear": true, "screenshot": true,
}

// TestRunner replays a JSON script of selections, orbits, highlights and
// captures against a running viewer, one action per frame. Pointer actions
// go through the injection queue; the next action waits until it drains.
//
// A script looks like:
//
//	{"steps": [
//	  {"action": "click", "x": 400, "y": 300},
//	  {"action": "drag", "fromX": 400, "fromY": 300, "toX": 480, "toY": 300, "frames": 5},
//	  {"action": "highlight", "key": "biceps"},
//	  {"action": "screenshot", "label": "biceps"}
//	]}
//
// highlight and clear need a Viewer; on a bare Scene they are skipped.
type TestRunner struct {
	steps  []scriptStep
	next   int
	wait   int
	done   bool
	viewer *Viewer
}

// LoadTestScript parses and validates a script. Unknown actions and empty
// scripts are rejected up front rather than mid-run.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner to the scene; Update advances it before
// reading pointer input.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every action has run and its input has drained.
func (r *TestRunner) Done() bool {
	return r.done
}

// step runs at most one action for this frame.
func (r *TestRunner) step(s *Scene) {
	if r.done || s.PendingInjections() > 0 {
		return
	}
	if r.wait > 0 {
		r.wait--
		return
	}
	if r.next == len(r.steps) {
		r.done = true
		return
	}
	st := r.steps[r.next]
	r.next++
	r.run(st, s)

	if r.next == len(r.steps) && r.wait == 0 && s.PendingInjections() == 0 {
		r.done = true
	}
}

func (r *TestRunner) run(st scriptStep, s *Scene) {
	switch st.Action {
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		// The wait action's own frame counts toward Frames.
		r.wait = max(st.Frames-1, 0)
	case "resize":
		s.Resize(st.Width, st.Height)
	case "screenshot":
		s.Screenshot(st.Label)
	case "highlight":
		if r.viewer != nil {
			r.viewer.HighlightMuscle(st.Key)
		}
	case "clear":
		if r.viewer != nil {
			r.viewer.ClearHighlight()
		}
	}
}
