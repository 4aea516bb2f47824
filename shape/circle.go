package shape

import (
	"fmt"

	"github.com/lixenwraith/circled/vmath"
)

// Circle is a single editable shape record
// ID is stable for the lifetime of the owning Store, the slice index is not
type Circle struct {
	ID       uint64
	X, Y     float64
	Radius   float64
	Selected bool
}

// Center returns the circle center as a surface point
func (c Circle) Center() vmath.Point {
	return vmath.Point{X: c.X, Y: c.Y}
}

// Contains reports whether p lies inside or on the circle boundary
func (c Circle) Contains(p vmath.Point) bool {
	return vmath.CircleContains(c.Center(), c.Radius, p)
}

func (c Circle) String() string {
	sel := ""
	if c.Selected {
		sel = " selected"
	}
	return fmt.Sprintf("#%d (%.1f,%.1f) r=%.1f%s", c.ID, c.X, c.Y, c.Radius, sel)
}
