// Package editor implements the circle editor interaction controller
//
// The controller owns a shape.Store and the transient interaction state
// (selection, drag). Typed input events are dispatched through a state
// machine with three leaves: Idle, Selected and Dragging. Every mutating
// action ends with a synchronous Render call.
package editor

import (
	"fmt"
	"log"

	"github.com/lixenwraith/circled/fsm"
	"github.com/lixenwraith/circled/input"
	"github.com/lixenwraith/circled/shape"
	"github.com/lixenwraith/circled/vmath"
)

// NoSelection is the SelectedIndex value when nothing is selected
const NoSelection = -1

// Renderer draws a full frame from the circle list in z-order
// Implementations must clear the previous frame
type Renderer interface {
	Render(circles []shape.Circle)
}

// InteractionState is the transient selection and drag state
// Dragging implies SelectedIndex != NoSelection
type InteractionState struct {
	SelectedIndex int
	Dragging      bool
	DragOffset    vmath.Vec // pointer minus circle center at drag start
}

// Controller interprets input events against a store
// Single-threaded: Dispatch must not be called concurrently
type Controller struct {
	cfg        Config
	deleteKeys map[string]struct{}

	store    *shape.Store
	state    InteractionState
	machine  *fsm.Machine[*Controller]
	renderer Renderer

	observers []Observer
}

// New creates a controller over an empty store
// A nil renderer disables drawing (headless use)
func New(cfg Config, renderer Renderer) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		cfg:        cfg,
		deleteKeys: make(map[string]struct{}, len(cfg.DeleteKeys)),
		store:      shape.NewStore(),
		state:      InteractionState{SelectedIndex: NoSelection},
		renderer:   renderer,
	}
	for _, k := range cfg.DeleteKeys {
		c.deleteKeys[k] = struct{}{}
	}

	m, err := buildMachine()
	if err != nil {
		return nil, fmt.Errorf("editor: build state machine: %w", err)
	}
	if err := m.Init(c, stateIdle); err != nil {
		return nil, fmt.Errorf("editor: init state machine: %w", err)
	}
	c.machine = m

	return c, nil
}

// Subscribe registers an observer for every subsequent change
func (c *Controller) Subscribe(obs Observer) {
	if obs != nil {
		c.observers = append(c.observers, obs)
	}
}

// Dispatch feeds one event through the state machine
// Returns true if the event was consumed; a Scroll is consumed only while a
// circle is selected, so hosts can let unconsumed wheel events fall through
func (c *Controller) Dispatch(ev input.Event) bool {
	if ev == nil {
		return false
	}
	return c.machine.HandleEvent(c, fsm.EventType(ev.Kind()), ev)
}

// HitTest returns the index of the topmost circle containing p
// Scans from last inserted to first; the first containing circle wins
func (c *Controller) HitTest(p vmath.Point) (int, bool) {
	for i := c.store.Len() - 1; i >= 0; i-- {
		circle, err := c.store.Get(i)
		if err != nil {
			break
		}
		if circle.Contains(p) {
			return i, true
		}
	}
	return NoSelection, false
}

// Mode returns the active interaction mode
func (c *Controller) Mode() Mode {
	return Mode(c.machine.Active())
}

// Interaction returns a copy of the transient interaction state
func (c *Controller) Interaction() InteractionState {
	return c.state
}

// Selected returns the selected circle and its index
func (c *Controller) Selected() (shape.Circle, int, bool) {
	if c.state.SelectedIndex == NoSelection {
		return shape.Circle{}, NoSelection, false
	}
	circle, err := c.store.Get(c.state.SelectedIndex)
	if err != nil {
		return shape.Circle{}, NoSelection, false
	}
	return circle, c.state.SelectedIndex, true
}

// Circles returns a copy of the circle list in z-order
func (c *Controller) Circles() []shape.Circle {
	return c.store.Circles()
}

// Len returns the number of circles
func (c *Controller) Len() int {
	return c.store.Len()
}

// Config returns the controller configuration
func (c *Controller) Config() Config {
	return c.cfg
}

// Redraw renders the current store, used by hosts after a surface resize
func (c *Controller) Redraw() {
	if c.renderer != nil {
		c.renderer.Render(c.store.Circles())
	}
}

func (c *Controller) notify(kind ChangeKind, index int, circle shape.Circle) {
	if len(c.observers) == 0 {
		return
	}
	ch := Change{Kind: kind, Index: index, Circle: circle}
	for _, obs := range c.observers {
		obs(ch)
	}
}

func (c *Controller) hasSelection() bool {
	return c.state.SelectedIndex != NoSelection
}

func (c *Controller) isDeleteKey(key string) bool {
	_, ok := c.deleteKeys[key]
	return ok
}

// fail logs an invariant breach; store errors here mean the selection index went stale
func (c *Controller) fail(op string, err error) {
	log.Printf("editor: %s: %v", op, err)
}
