package editor

import (
	"fmt"

	"github.com/lixenwraith/circled/shape"
)

// ChangeKind classifies a state mutation reported to observers
type ChangeKind uint8

const (
	ChangeCreated ChangeKind = iota + 1
	ChangeSelected
	ChangeDragStarted
	ChangeMoved
	ChangeDragEnded
	ChangeResized
	ChangeDeleted
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "created"
	case ChangeSelected:
		return "selected"
	case ChangeDragStarted:
		return "drag-start"
	case ChangeMoved:
		return "moved"
	case ChangeDragEnded:
		return "drag-end"
	case ChangeResized:
		return "resized"
	case ChangeDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("change(%d)", uint8(k))
	}
}

// Change describes one mutation; Circle is the record after the change
// (before it, for ChangeDeleted) and Index its position at that moment
type Change struct {
	Kind   ChangeKind
	Index  int
	Circle shape.Circle
}

func (c Change) String() string {
	return fmt.Sprintf("%s [%d] %s", c.Kind, c.Index, c.Circle)
}

// Observer receives changes synchronously, after the store is updated and before the redraw
type Observer func(Change)
