package input

import (
	"fmt"

	"github.com/lixenwraith/circled/vmath"
)

// Kind discriminates editor input events
type Kind uint8

const (
	KindNone Kind = iota
	KindClick
	KindPointerDown
	KindPointerMove
	KindPointerUp
	KindPointerLeave
	KindKeyDown
	KindScroll
)

var kindNames = [...]string{
	KindNone:         "None",
	KindClick:        "Click",
	KindPointerDown:  "PointerDown",
	KindPointerMove:  "PointerMove",
	KindPointerUp:    "PointerUp",
	KindPointerLeave: "PointerLeave",
	KindKeyDown:      "KeyDown",
	KindScroll:       "Scroll",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Event is one input event in surface coordinates
// Concrete types carry only the fields their kind needs
type Event interface {
	Kind() Kind
}

// Click is a primary button press+release on the surface
type Click struct {
	At vmath.Point
}

// PointerDown is the primary button going down
type PointerDown struct {
	At vmath.Point
}

// PointerMove is pointer motion, with or without a button held
type PointerMove struct {
	At vmath.Point
}

// PointerUp is the primary button going up
type PointerUp struct{}

// PointerLeave is the pointer leaving the surface (or the surface losing focus)
type PointerLeave struct{}

// KeyDown carries a normalized key name ("Delete", "Backspace", "a", ...)
type KeyDown struct {
	Key string
}

// Scroll carries the wheel delta sign: negative is up (grow), positive is down (shrink)
type Scroll struct {
	DeltaY float64
}

func (Click) Kind() Kind        { return KindClick }
func (PointerDown) Kind() Kind  { return KindPointerDown }
func (PointerMove) Kind() Kind  { return KindPointerMove }
func (PointerUp) Kind() Kind    { return KindPointerUp }
func (PointerLeave) Kind() Kind { return KindPointerLeave }
func (KeyDown) Kind() Kind      { return KindKeyDown }
func (Scroll) Kind() Kind       { return KindScroll }

// Up reports whether the scroll is a zoom-in gesture
func (s Scroll) Up() bool {
	return s.DeltaY < 0
}
