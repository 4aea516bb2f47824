package editor

import (
	"fmt"

	"github.com/lixenwraith/circled/fsm"
	"github.com/lixenwraith/circled/input"
	"github.com/lixenwraith/circled/shape"
	"github.com/lixenwraith/circled/vmath"
)

const (
	stateEditor fsm.StateID = iota + 1 // root, holds transitions shared by all modes
	stateIdle
	stateSelected
	stateDragging
)

// Mode is the externally visible interaction state
type Mode fsm.StateID

const (
	ModeIdle     = Mode(stateIdle)
	ModeSelected = Mode(stateSelected)
	ModeDragging = Mode(stateDragging)
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeSelected:
		return "Selected"
	case ModeDragging:
		return "Dragging"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func evt(k input.Kind) fsm.EventType {
	return fsm.EventType(k)
}

// buildMachine wires the interaction graph
//
//	Editor (root): Click, KeyDown(delete), Scroll
//	├── Idle
//	├── Selected: PointerDown inside selection -> Dragging
//	└── Dragging: PointerDown, PointerMove, PointerUp/Leave -> Selected
func buildMachine() (*fsm.Machine[*Controller], error) {
	m := fsm.NewMachine[*Controller]()
	m.AddState(stateEditor, "Editor", fsm.StateNone)
	m.AddState(stateIdle, "Idle", stateEditor)
	m.AddState(stateSelected, "Selected", stateEditor)
	m.AddState(stateDragging, "Dragging", stateEditor)

	type edge struct {
		source fsm.StateID
		t      fsm.Transition[*Controller]
	}
	edges := []edge{
		// Root
		{stateEditor, fsm.Transition[*Controller]{Event: evt(input.KindClick), Guard: (*Controller).clickMisses, Action: (*Controller).createAt, TargetID: stateIdle}},
		{stateEditor, fsm.Transition[*Controller]{Event: evt(input.KindClick), Guard: (*Controller).clickHits, Action: (*Controller).selectAt, TargetID: stateSelected}},
		{stateEditor, fsm.Transition[*Controller]{Event: evt(input.KindKeyDown), Guard: (*Controller).deleteRequested, Action: (*Controller).deleteSelected, TargetID: stateIdle}},
		{stateEditor, fsm.Transition[*Controller]{Event: evt(input.KindScroll), Guard: (*Controller).selectionGuard, Action: (*Controller).resizeSelected, TargetID: fsm.StateNone}},

		// Selected
		{stateSelected, fsm.Transition[*Controller]{Event: evt(input.KindPointerDown), Guard: (*Controller).insideSelected, Action: (*Controller).beginDrag, TargetID: stateDragging}},

		// Dragging
		{stateDragging, fsm.Transition[*Controller]{Event: evt(input.KindPointerDown), Guard: (*Controller).insideSelected, Action: (*Controller).beginDrag, TargetID: fsm.StateNone}},
		{stateDragging, fsm.Transition[*Controller]{Event: evt(input.KindPointerMove), Action: (*Controller).dragTo, TargetID: fsm.StateNone}},
		{stateDragging, fsm.Transition[*Controller]{Event: evt(input.KindPointerUp), TargetID: stateSelected}},
		{stateDragging, fsm.Transition[*Controller]{Event: evt(input.KindPointerLeave), TargetID: stateSelected}},
	}
	for _, e := range edges {
		if err := m.AddTransition(e.source, e.t); err != nil {
			return nil, err
		}
	}

	if err := m.OnEnter(stateIdle, (*Controller).enterIdle); err != nil {
		return nil, err
	}
	if err := m.OnEnter(stateDragging, (*Controller).enterDragging); err != nil {
		return nil, err
	}
	if err := m.OnExit(stateDragging, (*Controller).exitDragging); err != nil {
		return nil, err
	}

	if err := m.CompilePaths(); err != nil {
		return nil, err
	}
	return m, nil
}

// === Guards ===

func (c *Controller) clickMisses(payload any) bool {
	ev, ok := payload.(input.Click)
	if !ok {
		return false
	}
	_, hit := c.HitTest(ev.At)
	return !hit
}

func (c *Controller) clickHits(payload any) bool {
	ev, ok := payload.(input.Click)
	if !ok {
		return false
	}
	_, hit := c.HitTest(ev.At)
	return hit
}

func (c *Controller) deleteRequested(payload any) bool {
	ev, ok := payload.(input.KeyDown)
	return ok && c.hasSelection() && c.isDeleteKey(ev.Key)
}

func (c *Controller) selectionGuard(payload any) bool {
	_, ok := payload.(input.Scroll)
	return ok && c.hasSelection()
}

func (c *Controller) insideSelected(payload any) bool {
	ev, ok := payload.(input.PointerDown)
	if !ok {
		return false
	}
	circle, _, sel := c.Selected()
	return sel && circle.Contains(ev.At)
}

// === Lifecycle ===

func (c *Controller) enterIdle(any) {
	c.state.SelectedIndex = NoSelection
	c.state.Dragging = false
	c.state.DragOffset = vmath.Vec{}
}

func (c *Controller) enterDragging(any) {
	c.state.Dragging = true
}

func (c *Controller) exitDragging(any) {
	c.state.Dragging = false
	c.state.DragOffset = vmath.Vec{}
	if circle, idx, ok := c.Selected(); ok {
		c.notify(ChangeDragEnded, idx, circle)
	}
}

// === Actions ===

func (c *Controller) createAt(payload any) {
	ev := payload.(input.Click)
	c.store.ClearSelection()
	circle := c.store.Append(shape.Circle{X: ev.At.X, Y: ev.At.Y, Radius: c.cfg.DefaultRadius})
	c.state.SelectedIndex = NoSelection
	c.notify(ChangeCreated, c.store.Len()-1, circle)
	c.Redraw()
}

func (c *Controller) selectAt(payload any) {
	ev := payload.(input.Click)
	idx, hit := c.HitTest(ev.At)
	if !hit {
		return
	}
	c.store.ClearSelection()
	if err := c.store.SelectAt(idx); err != nil {
		c.fail("select", err)
		return
	}
	c.state.SelectedIndex = idx
	circle, _ := c.store.Get(idx)
	c.notify(ChangeSelected, idx, circle)
	c.Redraw()
}

func (c *Controller) beginDrag(payload any) {
	ev := payload.(input.PointerDown)
	circle, idx, ok := c.Selected()
	if !ok {
		return
	}
	c.state.DragOffset = ev.At.Sub(circle.Center())
	c.notify(ChangeDragStarted, idx, circle)
}

func (c *Controller) dragTo(payload any) {
	ev, ok := payload.(input.PointerMove)
	if !ok {
		return
	}
	idx := c.state.SelectedIndex
	if err := c.store.Move(idx, ev.At.Offset(c.state.DragOffset)); err != nil {
		c.fail("drag", err)
		return
	}
	circle, _ := c.store.Get(idx)
	c.notify(ChangeMoved, idx, circle)
	c.Redraw()
}

func (c *Controller) deleteSelected(any) {
	idx := c.state.SelectedIndex
	removed, err := c.store.RemoveAt(idx)
	c.state.SelectedIndex = NoSelection
	if err != nil {
		c.fail("delete", err)
		return
	}
	c.notify(ChangeDeleted, idx, removed)
	c.Redraw()
}

func (c *Controller) resizeSelected(payload any) {
	ev := payload.(input.Scroll)
	circle, idx, ok := c.Selected()
	if !ok {
		return
	}

	r := circle.Radius
	if ev.Up() {
		r += c.cfg.ResizeStep
	} else {
		r = max(c.cfg.MinRadius, r-c.cfg.ResizeStep)
	}

	if err := c.store.SetRadius(idx, r); err != nil {
		c.fail("resize", err)
		return
	}
	circle.Radius = r
	c.notify(ChangeResized, idx, circle)
	c.Redraw()
}
