package pinchzoom

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a gesture script.
type scriptStep struct {
	Action   string  `json:"action"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	FromDist float64 `json:"fromDist,omitempty"`
	ToDist   float64 `json:"toDist,omitempty"`
	Zoom     float64 `json:"zoom,omitempty"`
	Frames   int     `json:"frames,omitempty"`
	Points   []Point `json:"points,omitempty"`
}

// script is the top-level JSON structure of a gesture script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"tap": true, "doubletap": true, "drag": true, "pinch": true,
	"contacts": true, "wait": true, "zoom": true,
	"enable": true, "disable": true, "reset": true,
}

// ScriptRunner sequences injected gestures across frames so a recorded or
// hand-written interaction can be replayed without a touch screen. Attach
// it to an Engine with SetScriptRunner.
//
// Script format:
//
//	{"steps": [
//	  {"action": "tap", "x": 10, "y": 20},
//	  {"action": "doubletap", "x": 10, "y": 20},
//	  {"action": "drag", "fromX": 0, "fromY": 0, "toX": 50, "toY": 0, "frames": 10},
//	  {"action": "pinch", "x": 150, "y": 150, "fromDist": 100, "toDist": 200, "frames": 12},
//	  {"action": "contacts", "points": [{"X": 1, "Y": 2}]},
//	  {"action": "zoom", "zoom": 2, "x": 150, "y": 150},
//	  {"action": "wait", "frames": 30},
//	  {"action": "disable"}, {"action": "enable"}, {"action": "reset"}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON gesture script and returns a ScriptRunner ready
// to be attached to an Engine via SetScriptRunner.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("pinchzoom: parse script: %w: %w", ErrInvalidArgument, err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("pinchzoom: parse script: no steps: %w", ErrInvalidArgument)
	}
	for i, st := range s.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("pinchzoom: parse script: step %d: unknown action %q: %w", i, st.Action, ErrInvalidArgument)
		}
		if err := checkPoints(fmt.Sprintf("parse script: step %d", i), st.Points); err != nil {
			return nil, err
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner. Its step method runs at the
// start of every FrameTick. Pass nil to detach.
func (e *Engine) SetScriptRunner(r *ScriptRunner) {
	e.runner = r
}

// Done reports whether every step has been executed and its injected
// contacts consumed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Len returns the number of steps in the script.
func (r *ScriptRunner) Len() int {
	return len(r.steps)
}

// step advances the runner by one frame. Called from Engine.FrameTick.
func (r *ScriptRunner) step(e *Engine) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(e.injectQueue) > 0 {
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
	case "tap":
		e.InjectTap(st.X, st.Y)
	case "doubletap":
		e.InjectDoubleTap(st.X, st.Y)
	case "drag":
		e.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		e.InjectPinch(st.X, st.Y, st.FromDist, st.ToDist, st.Frames)
	case "contacts":
		e.InjectContacts(st.Points...)
	case "zoom":
		origin := e.geom.ViewportOrigin()
		if err := e.ZoomTo(st.Zoom, Point{st.X, st.Y}.Sub(origin), true); err != nil {
			Logger().Warn("pinchzoom: script zoom step failed", "step", r.cursor-1, "error", err)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "enable":
		e.Enable()
	case "disable":
		e.Disable()
	case "reset":
		e.Reset()
	}
}
