package editor

import (
	"errors"
	"testing"

	"github.com/lixenwraith/circled/input"
	"github.com/lixenwraith/circled/shape"
	"github.com/lixenwraith/circled/vmath"
)

// recordingRenderer captures every frame handed to Render
type recordingRenderer struct {
	frames [][]shape.Circle
}

func (r *recordingRenderer) Render(circles []shape.Circle) {
	frame := make([]shape.Circle, len(circles))
	copy(frame, circles)
	r.frames = append(r.frames, frame)
}

func (r *recordingRenderer) last() []shape.Circle {
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

func newTestController(t *testing.T) (*Controller, *recordingRenderer) {
	t.Helper()
	rr := &recordingRenderer{}
	c, err := New(DefaultConfig(), rr)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, rr
}

// checkInvariants asserts the selection and radius invariants
func checkInvariants(t *testing.T, c *Controller) {
	t.Helper()
	circles := c.Circles()
	st := c.Interaction()

	selected := 0
	for i, circle := range circles {
		if circle.Selected {
			selected++
			if st.SelectedIndex != i {
				t.Errorf("Circle %d flagged selected but SelectedIndex=%d", i, st.SelectedIndex)
			}
		}
		if circle.Radius < c.Config().MinRadius {
			t.Errorf("Circle %d radius %v below min %v", i, circle.Radius, c.Config().MinRadius)
		}
	}
	if selected > 1 {
		t.Errorf("Expected at most one selected circle, got %d", selected)
	}

	if st.SelectedIndex != NoSelection {
		if st.SelectedIndex < 0 || st.SelectedIndex >= len(circles) {
			t.Fatalf("SelectedIndex %d out of range (len %d)", st.SelectedIndex, len(circles))
		}
		if !circles[st.SelectedIndex].Selected {
			t.Errorf("SelectedIndex %d refers to unflagged circle", st.SelectedIndex)
		}
	}
	if st.Dragging && st.SelectedIndex == NoSelection {
		t.Error("Dragging without a selection")
	}

	switch c.Mode() {
	case ModeIdle:
		if st.SelectedIndex != NoSelection || st.Dragging {
			t.Errorf("Idle mode with state %+v", st)
		}
	case ModeSelected:
		if st.SelectedIndex == NoSelection || st.Dragging {
			t.Errorf("Selected mode with state %+v", st)
		}
	case ModeDragging:
		if !st.Dragging {
			t.Errorf("Dragging mode with state %+v", st)
		}
	}
}

func click(c *Controller, x, y float64) bool {
	return c.Dispatch(input.Click{At: vmath.Pt(x, y)})
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinRadius = 0
	if _, err := New(cfg, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestInitialState(t *testing.T) {
	c, rr := newTestController(t)

	if c.Mode() != ModeIdle {
		t.Errorf("Expected Idle, got %v", c.Mode())
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty store, got %d", c.Len())
	}
	if len(rr.frames) != 0 {
		t.Errorf("Expected no frames before input, got %d", len(rr.frames))
	}
	checkInvariants(t, c)
}

func TestClickEmptyCreatesCircle(t *testing.T) {
	c, rr := newTestController(t)

	if !click(c, 50, 50) {
		t.Fatal("Expected click to be consumed")
	}

	circles := c.Circles()
	if len(circles) != 1 {
		t.Fatalf("Expected 1 circle, got %d", len(circles))
	}
	got := circles[0]
	if got.X != 50 || got.Y != 50 || got.Radius != DefaultRadius || got.Selected {
		t.Errorf("Expected {50,50,%v,false}, got %v", DefaultRadius, got)
	}
	if c.Mode() != ModeIdle {
		t.Errorf("Expected Idle after creation, got %v", c.Mode())
	}
	if len(rr.frames) != 1 || len(rr.last()) != 1 {
		t.Errorf("Expected one redraw with one circle, got %d frames", len(rr.frames))
	}
	checkInvariants(t, c)
}

func TestClickCircleSelects(t *testing.T) {
	c, rr := newTestController(t)
	click(c, 50, 50)

	if !click(c, 55, 52) {
		t.Fatal("Expected click to be consumed")
	}

	if c.Len() != 1 {
		t.Fatalf("Expected click on circle not to create, got %d circles", c.Len())
	}
	if c.Mode() != ModeSelected {
		t.Errorf("Expected Selected, got %v", c.Mode())
	}
	sel, idx, ok := c.Selected()
	if !ok || idx != 0 || !sel.Selected {
		t.Errorf("Expected circle 0 selected, got %v idx=%d ok=%v", sel, idx, ok)
	}
	if !rr.last()[0].Selected {
		t.Error("Expected redraw to show the selected flag")
	}
	checkInvariants(t, c)
}

func TestSelectionExclusivity(t *testing.T) {
	c, _ := newTestController(t)
	click(c, 50, 50)   // A
	click(c, 200, 200) // B

	click(c, 50, 50)
	click(c, 200, 200)

	circles := c.Circles()
	if circles[0].Selected {
		t.Error("Expected A to be unselected after selecting B")
	}
	if !circles[1].Selected {
		t.Error("Expected B to be selected")
	}
	if c.Interaction().SelectedIndex != 1 {
		t.Errorf("Expected SelectedIndex 1, got %d", c.Interaction().SelectedIndex)
	}
	checkInvariants(t, c)
}

func TestClickEmptyClearsSelection(t *testing.T) {
	c, _ := newTestController(t)
	click(c, 50, 50)
	click(c, 50, 50)

	click(c, 300, 300)

	if c.Len() != 2 {
		t.Fatalf("Expected 2 circles, got %d", c.Len())
	}
	for i, circle := range c.Circles() {
		if circle.Selected {
			t.Errorf("Expected circle %d unselected after creating new circle", i)
		}
	}
	if c.Mode() != ModeIdle {
		t.Errorf("Expected Idle, got %v", c.Mode())
	}
	checkInvariants(t, c)
}

func TestHitTestTopmostWins(t *testing.T) {
	c, _ := newTestController(t)
	click(c, 100, 100) // A
	click(c, 130, 100) // B, outside A's center but overlapping it

	// (115,100) is 15 from both centers
	idx, ok := c.HitTest(vmath.Pt(115, 100))
	if !ok || idx != 1 {
		t.Errorf("Expected topmost circle 1, got %d (%v)", idx, ok)
	}

	// Closer to A's center, still inside B: topmost still wins, no nearest tie-break
	idx, ok = c.HitTest(vmath.Pt(111, 100))
	if !ok || idx != 1 {
		t.Errorf("Expected circle 1 without nearest tie-break, got %d", idx)
	}

	// Only inside A
	idx, ok = c.HitTest(vmath.Pt(85, 100))
	if !ok || idx != 0 {
		t.Errorf("Expected circle 0, got %d", idx)
	}

	if _, ok := c.HitTest(vmath.Pt(500, 500)); ok {
		t.Error("Expected miss far away")
	}
}

func TestHitTestBoundaryInclusive(t *testing.T) {
	c, _ := newTestController(t)
	click(c, 100, 100)

	if _, ok := c.HitTest(vmath.Pt(120, 100)); !ok {
		t.Error("Expected point at exactly radius to hit")
	}
	if _, ok := c.HitTest(vmath.Pt(120.5, 100)); ok {
		t.Error("Expected point beyond radius to miss")
	}
}

func TestDragPreservesOffset(t *testing.T) {
	c, rr := newTestController(t)
	click(c, 100, 100)
	click(c, 100, 100)

	if !c.Dispatch(input.PointerDown{At: vmath.Pt(105, 100)}) {
		t.Fatal("Expected pointer-down inside selection to start drag")
	}
	if c.Mode() != ModeDragging {
		t.Fatalf("Expected Dragging, got %v", c.Mode())
	}
	if off := c.Interaction().DragOffset; off != (vmath.Vec{X: 5, Y: 0}) {
		t.Errorf("Expected offset (5,0), got %v", off)
	}
	checkInvariants(t, c)

	frames := len(rr.frames)
	if !c.Dispatch(input.PointerMove{At: vmath.Pt(200, 150)}) {
		t.Fatal("Expected move while dragging to be consumed")
	}
	if len(rr.frames) != frames+1 {
		t.Errorf("Expected a redraw per drag move")
	}

	got := c.Circles()[0]
	if got.X != 195 || got.Y != 150 {
		t.Errorf("Expected center (195,150), got (%v,%v)", got.X, got.Y)
	}
	checkInvariants(t, c)

	if !c.Dispatch(input.PointerUp{}) {
		t.Fatal("Expected pointer-up to end drag")
	}
	if c.Mode() != ModeSelected {
		t.Errorf("Expected Selected after drag, got %v", c.Mode())
	}
	if c.Interaction().Dragging {
		t.Error("Expected Dragging flag cleared")
	}
	checkInvariants(t, c)
}

func TestPointerLeaveEndsDrag(t *testing.T) {
	c, _ := newTestController(t)
	click(c, 100, 100)
	click(c, 100, 100)
	c.Dispatch(input.PointerDown{At: vmath.Pt(100, 100)})

	if !c.Dispatch(input.PointerLeave{}) {
		t.Fatal("Expected leave to end drag")
	}
	if c.Mode() != ModeSelected {
		t.Errorf("Expected Selected, got %v", c.Mode())
	}

	// Motion after leave must not move the circle
	if c.Dispatch(input.PointerMove{At: vmath.Pt(10, 10)}) {
		t.Error("Expected move after drag end to be ignored")
	}
	if got := c.Circles()[0]; got.X != 100 || got.Y != 100 {
		t.Errorf("Expected circle to stay at (100,100), got (%v,%v)", got.X, got.Y)
	}
	checkInvariants(t, c)
}

func TestPointerDownOutsideSelectionIsNoop(t *testing.T) {
	c, _ := newTestController(t)
	click(c, 100, 100)
	click(c, 100, 100)

	if c.Dispatch(input.PointerDown{At: vmath.Pt(300, 300)}) {
		t.Error("Expected pointer-down outside selection to be ignored")
	}
	if c.Mode() != ModeSelected {
		t.Errorf("Expected Selected, got %v", c.Mode())
	}
}

func TestPointerDownOnUnselectedCircleDoesNotDrag(t *testing.T) {
	c, _ := newTestController(t)
	click(c, 100, 100)
	click(c, 300, 300)
	click(c, 100, 100) // select A

	if c.Dispatch(input.PointerDown{At: vmath.Pt(300, 300)}) {
		t.Error("Expected pointer-down on a different circle not to drag")
	}
	if c.Mode() != ModeSelected {
		t.Errorf("Expected Selected, got %v", c.Mode())
	}
}

func TestPointerEventsInIdleIgnored(t *testing.T) {
	c, rr := newTestController(t)
	click(c, 100, 100)
	frames := len(rr.frames)

	events := []input.Event{
		input.PointerDown{At: vmath.Pt(100, 100)},
		input.PointerMove{At: vmath.Pt(150, 150)},
		input.PointerUp{},
		input.PointerLeave{},
	}
	for _, ev := range events {
		if c.Dispatch(ev) {
			t.Errorf("Expected %v to be ignored in Idle", ev.Kind())
		}
	}
	if len(rr.frames) != frames {
		t.Error("Expected no redraw for ignored events")
	}
	if c.Mode() != ModeIdle {
		t.Errorf("Expected Idle, got %v", c.Mode())
	}
}

func TestRepeatedPointerDownWhileDraggingRecordsNewOffset(t *testing.T) {
	c, _ := newTestController(t)
	click(c, 100, 100)
	click(c, 100, 100)
	c.Dispatch(input.PointerDown{At: vmath.Pt(105, 100)})

	if !c.Dispatch(input.PointerDown{At: vmath.Pt(100, 110)}) {
		t.Fatal("Expected pointer-down inside selection while dragging to be consumed")
	}
	if off := c.Interaction().DragOffset; off != (vmath.Vec{X: 0, Y: 10}) {
		t.Errorf("Expected offset (0,10), got %v", off)
	}
	if c.Mode() != ModeDragging {
		t.Errorf("Expected Dragging, got %v", c.Mode())
	}
}

func TestDeleteSelected(t *testing.T) {
	c, rr := newTestController(t)
	click(c, 100, 100)
	click(c, 100, 100)

	if !c.Dispatch(input.KeyDown{Key: "Delete"}) {
		t.Fatal("Expected Delete to be consumed")
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty store, got %d", c.Len())
	}
	if c.Interaction().SelectedIndex != NoSelection {
		t.Errorf("Expected no selection, got %d", c.Interaction().SelectedIndex)
	}
	if c.Mode() != ModeIdle {
		t.Errorf("Expected Idle, got %v", c.Mode())
	}
	if len(rr.last()) != 0 {
		t.Error("Expected redraw of empty frame")
	}
	checkInvariants(t, c)
}

func TestDeleteShiftsLaterCircles(t *testing.T) {
	c, _ := newTestController(t)
	click(c, 100, 100)
	click(c, 200, 100)
	click(c, 300, 100)
	below := c.Circles()[0]
	above := c.Circles()[2]

	click(c, 200, 100)
	c.Dispatch(input.KeyDown{Key: "Delete"})

	circles := c.Circles()
	if len(circles) != 2 || circles[0].ID != below.ID || circles[1].ID != above.ID {
		t.Errorf("Expected [%d %d] after delete, got %v", below.ID, above.ID, circles)
	}
	checkInvariants(t, c)
}

func TestDeleteWithoutSelectionIsNoop(t *testing.T) {
	c, rr := newTestController(t)
	click(c, 100, 100)
	frames := len(rr.frames)

	if c.Dispatch(input.KeyDown{Key: "Delete"}) {
		t.Error("Expected Delete without selection to be ignored")
	}
	if c.Len() != 1 || len(rr.frames) != frames {
		t.Error("Expected store and frame count unchanged")
	}
}

func TestNonDeleteKeyIgnored(t *testing.T) {
	c, _ := newTestController(t)
	click(c, 100, 100)
	click(c, 100, 100)

	if c.Dispatch(input.KeyDown{Key: "x"}) {
		t.Error("Expected non-delete key to be ignored")
	}
	if c.Len() != 1 || c.Mode() != ModeSelected {
		t.Error("Expected selection to survive unrelated key")
	}
}

func TestCustomDeleteKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DeleteKeys = []string{"Delete", "Backspace"}
	c, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	click(c, 100, 100)
	click(c, 100, 100)

	if !c.Dispatch(input.KeyDown{Key: "Backspace"}) {
		t.Fatal("Expected configured Backspace to delete")
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty store, got %d", c.Len())
	}
}

func TestDeleteWhileDragging(t *testing.T) {
	c, _ := newTestController(t)
	click(c, 100, 100)
	click(c, 100, 100)
	c.Dispatch(input.PointerDown{At: vmath.Pt(100, 100)})

	if !c.Dispatch(input.KeyDown{Key: "Delete"}) {
		t.Fatal("Expected Delete during drag to be consumed")
	}
	if c.Mode() != ModeIdle || c.Interaction().Dragging {
		t.Errorf("Expected Idle without drag, got %v %+v", c.Mode(), c.Interaction())
	}
	checkInvariants(t, c)
}

func TestScrollResize(t *testing.T) {
	c, rr := newTestController(t)
	click(c, 100, 100)
	click(c, 100, 100)

	if !c.Dispatch(input.Scroll{DeltaY: -1}) {
		t.Fatal("Expected scroll with selection to be consumed")
	}
	if r := c.Circles()[0].Radius; r != DefaultRadius+DefaultResizeStep {
		t.Errorf("Expected radius %v, got %v", DefaultRadius+DefaultResizeStep, r)
	}

	c.Dispatch(input.Scroll{DeltaY: 1})
	c.Dispatch(input.Scroll{DeltaY: 1})
	if r := c.Circles()[0].Radius; r != DefaultRadius-DefaultResizeStep {
		t.Errorf("Expected radius %v, got %v", DefaultRadius-DefaultResizeStep, r)
	}
	if c.Mode() != ModeSelected {
		t.Errorf("Expected mode unchanged, got %v", c.Mode())
	}
	if len(rr.frames) != 5 {
		t.Errorf("Expected 5 frames (2 clicks + 3 scrolls), got %d", len(rr.frames))
	}
	checkInvariants(t, c)
}

func TestScrollDownClampsToMinRadius(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultRadius = 6
	c, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	click(c, 100, 100)
	click(c, 100, 100)

	c.Dispatch(input.Scroll{DeltaY: 1})
	if r := c.Circles()[0].Radius; r != 5 {
		t.Errorf("Expected radius clamped to 5, got %v", r)
	}

	c.Dispatch(input.Scroll{DeltaY: 1})
	if r := c.Circles()[0].Radius; r != 5 {
		t.Errorf("Expected radius to stay at 5, got %v", r)
	}
	checkInvariants(t, c)
}

func TestScrollWithoutSelectionNotConsumed(t *testing.T) {
	c, rr := newTestController(t)
	click(c, 100, 100)
	frames := len(rr.frames)

	if c.Dispatch(input.Scroll{DeltaY: -1}) {
		t.Error("Expected scroll without selection to fall through")
	}
	if r := c.Circles()[0].Radius; r != DefaultRadius {
		t.Errorf("Expected radius unchanged, got %v", r)
	}
	if len(rr.frames) != frames {
		t.Error("Expected no redraw")
	}
}

func TestScrollWhileDraggingKeepsDragging(t *testing.T) {
	c, _ := newTestController(t)
	click(c, 100, 100)
	click(c, 100, 100)
	c.Dispatch(input.PointerDown{At: vmath.Pt(100, 100)})

	c.Dispatch(input.Scroll{DeltaY: -1})
	if c.Mode() != ModeDragging {
		t.Errorf("Expected Dragging to survive resize, got %v", c.Mode())
	}
}

func TestClickDuringDragEndsDrag(t *testing.T) {
	c, _ := newTestController(t)
	click(c, 100, 100)
	click(c, 100, 100)
	c.Dispatch(input.PointerDown{At: vmath.Pt(100, 100)})

	click(c, 100, 100)
	if c.Mode() != ModeSelected || c.Interaction().Dragging {
		t.Errorf("Expected Selected without drag, got %v %+v", c.Mode(), c.Interaction())
	}
	checkInvariants(t, c)
}

func TestDispatchNil(t *testing.T) {
	c, _ := newTestController(t)
	if c.Dispatch(nil) {
		t.Error("Expected nil event to be ignored")
	}
}

func TestObserverReceivesChanges(t *testing.T) {
	c, _ := newTestController(t)
	var kinds []ChangeKind
	c.Subscribe(func(ch Change) { kinds = append(kinds, ch.Kind) })
	c.Subscribe(nil)

	click(c, 100, 100)
	click(c, 100, 100)
	c.Dispatch(input.PointerDown{At: vmath.Pt(100, 100)})
	c.Dispatch(input.PointerMove{At: vmath.Pt(120, 100)})
	c.Dispatch(input.PointerUp{})
	c.Dispatch(input.Scroll{DeltaY: -1})
	c.Dispatch(input.KeyDown{Key: "Delete"})

	want := []ChangeKind{
		ChangeCreated, ChangeSelected, ChangeDragStarted, ChangeMoved,
		ChangeDragEnded, ChangeResized, ChangeDeleted,
	}
	if len(kinds) != len(want) {
		t.Fatalf("Expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("Change %d: expected %v, got %v", i, want[i], kinds[i])
		}
	}
}

func TestIndependentControllers(t *testing.T) {
	a, _ := newTestController(t)
	b, _ := newTestController(t)

	click(a, 10, 10)
	if b.Len() != 0 {
		t.Error("Expected controllers not to share state")
	}
}

func TestInvariantsUnderEventSequence(t *testing.T) {
	c, _ := newTestController(t)

	seq := []input.Event{
		input.Click{At: vmath.Pt(50, 50)},
		input.Click{At: vmath.Pt(60, 50)},
		input.Click{At: vmath.Pt(150, 50)},
		input.PointerDown{At: vmath.Pt(150, 50)},
		input.PointerMove{At: vmath.Pt(70, 50)},
		input.PointerUp{},
		input.Click{At: vmath.Pt(70, 50)},
		input.Scroll{DeltaY: 1},
		input.Scroll{DeltaY: 1},
		input.Scroll{DeltaY: 1},
		input.Scroll{DeltaY: 1},
		input.Scroll{DeltaY: 1},
		input.Scroll{DeltaY: 1},
		input.Scroll{DeltaY: 1},
		input.Scroll{DeltaY: 1},
		input.KeyDown{Key: "Delete"},
		input.Click{At: vmath.Pt(50, 50)},
		input.PointerDown{At: vmath.Pt(55, 55)},
		input.PointerLeave{},
		input.Scroll{DeltaY: -1},
		input.KeyDown{Key: "Delete"},
		input.KeyDown{Key: "Delete"},
		input.Scroll{DeltaY: -1},
	}

	for i, ev := range seq {
		c.Dispatch(ev)
		t.Logf("step %d %v -> %v len=%d", i, ev.Kind(), c.Mode(), c.Len())
		checkInvariants(t, c)
	}
}

func TestModeString(t *testing.T) {
	if ModeDragging.String() != "Dragging" || ModeIdle.String() != "Idle" || ModeSelected.String() != "Selected" {
		t.Error("Unexpected mode names")
	}
	if Mode(99).String() != "Mode(99)" {
		t.Errorf("Unexpected fallback %q", Mode(99).String())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"Default", func(*Config) {}, true},
		{"ZeroMin", func(c *Config) { c.MinRadius = 0 }, false},
		{"DefaultBelowMin", func(c *Config) { c.DefaultRadius = 4 }, false},
		{"DefaultEqualsMin", func(c *Config) { c.DefaultRadius = 5 }, true},
		{"ZeroStep", func(c *Config) { c.ResizeStep = 0 }, false},
		{"NoDeleteKeys", func(c *Config) { c.DeleteKeys = nil }, false},
		{"EmptyDeleteKey", func(c *Config) { c.DeleteKeys = []string{""} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
