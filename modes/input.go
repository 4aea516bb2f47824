package modes

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/circled/input"
	"github.com/lixenwraith/circled/render"
)

// Target receives translated events; editor.Controller satisfies it
type Target interface {
	Dispatch(ev input.Event) bool
	Redraw()
}

// InputHandler translates tcell events into editor input events
// Mouse cells are mapped to surface coordinates through the grid
type InputHandler struct {
	target   Target
	screen   tcell.Screen
	grid     render.Grid
	onResize func(cols, rows int)

	buttonDown   bool
	pressOutside bool // press began on the status row, held until release
	consumed     int
	ignored      int
}

// NewInputHandler creates a handler for a screen with a status row at the bottom
func NewInputHandler(target Target, screen tcell.Screen, grid render.Grid) *InputHandler {
	return &InputHandler{
		target: target,
		screen: screen,
		grid:   grid,
	}
}

// OnResize registers fn to run with the new drawable size before the redraw
func (h *InputHandler) OnResize(fn func(cols, rows int)) {
	h.onResize = fn
}

// Stats returns how many dispatched events the target consumed and ignored
func (h *InputHandler) Stats() (consumed, ignored int) {
	return h.consumed, h.ignored
}

// HandleEvent processes a tcell event and returns false if the program should exit
func (h *InputHandler) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKeyEvent(ev)
	case *tcell.EventMouse:
		h.handleMouseEvent(ev)
	case *tcell.EventFocus:
		if !ev.Focused {
			h.buttonDown = false
			h.pressOutside = false
			h.dispatch(input.PointerLeave{})
		}
	case *tcell.EventResize:
		h.screen.Sync()
		if h.onResize != nil {
			cols, rows := h.drawArea()
			h.onResize(cols, rows)
		}
		h.target.Redraw()
	}
	return true
}

// handleKeyEvent handles quit keys and forwards the rest as KeyDown
func (h *InputHandler) handleKeyEvent(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return false
	case tcell.KeyRune:
		if ev.Rune() == 'q' && ev.Modifiers() == tcell.ModNone {
			return false
		}
	}

	if name := KeyName(ev); name != "" {
		h.dispatch(input.KeyDown{Key: name})
	}
	return true
}

// handleMouseEvent derives pointer down/move/up and click from button state changes
func (h *InputHandler) handleMouseEvent(ev *tcell.EventMouse) {
	col, row := ev.Position()
	p := h.grid.Center(col, row)
	btn := ev.Buttons()

	// Wheel reports carry no reliable button state
	switch {
	case btn&tcell.WheelUp != 0:
		h.dispatch(input.Scroll{DeltaY: -1})
		return
	case btn&tcell.WheelDown != 0:
		h.dispatch(input.Scroll{DeltaY: 1})
		return
	}

	pressed := btn&tcell.Button1 != 0
	_, rows := h.drawArea()
	inside := row < rows

	switch {
	case h.pressOutside:
		if !pressed {
			h.pressOutside = false
		}
	case pressed && !h.buttonDown:
		if !inside {
			h.pressOutside = true
			return
		}
		h.buttonDown = true
		h.dispatch(input.PointerDown{At: p})
	case h.buttonDown && pressed:
		h.dispatch(input.PointerMove{At: p})
	case h.buttonDown && !pressed:
		h.buttonDown = false
		h.dispatch(input.PointerUp{})
		if inside {
			h.dispatch(input.Click{At: p})
		}
	default:
		if inside {
			h.dispatch(input.PointerMove{At: p})
		}
	}
}

func (h *InputHandler) dispatch(ev input.Event) {
	if h.target.Dispatch(ev) {
		h.consumed++
	} else {
		h.ignored++
	}
}

// drawArea is the screen minus the status row
func (h *InputHandler) drawArea() (cols, rows int) {
	w, ht := h.screen.Size()
	return w, max(ht-1, 0)
}

// KeyName maps a key event to the name used in editor delete-key config
// Printable runes map to themselves; unnamed keys map to ""
func KeyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRune:
		return string(ev.Rune())
	case tcell.KeyDelete:
		return "Delete"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "Backspace"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyTab:
		return "Tab"
	}
	if name, ok := tcell.KeyNames[ev.Key()]; ok {
		return name
	}
	return ""
}
