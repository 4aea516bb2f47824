// Package shape owns the ordered circle list edited by the controller
//
// Order is z-order: index 0 is drawn first (bottom), the last index is drawn
// on top and wins hit tests. Removing an index shifts every later index down
// by one; callers holding indices across a removal must discard them.
package shape

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/circled/vmath"
)

// ErrIndexOutOfRange is returned by every index-based accessor for i < 0 or i >= Len()
var ErrIndexOutOfRange = errors.New("shape: index out of range")

// Store is an ordered sequence of circles
// Not safe for concurrent use; owned by a single controller
type Store struct {
	circles []Circle
	nextID  uint64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		circles: make([]Circle, 0, 16),
		nextID:  1,
	}
}

// Len returns the number of circles
func (s *Store) Len() int {
	return len(s.circles)
}

// Append adds c on top of the z-order, unselected, with a fresh ID
func (s *Store) Append(c Circle) Circle {
	c.ID = s.nextID
	c.Selected = false
	s.nextID++
	s.circles = append(s.circles, c)
	return c
}

// RemoveAt deletes the circle at i and returns it
func (s *Store) RemoveAt(i int) (Circle, error) {
	if err := s.check(i); err != nil {
		return Circle{}, err
	}
	removed := s.circles[i]
	copy(s.circles[i:], s.circles[i+1:])
	s.circles[len(s.circles)-1] = Circle{}
	s.circles = s.circles[:len(s.circles)-1]
	return removed, nil
}

// ClearSelection unflags every circle, idempotent
func (s *Store) ClearSelection() {
	for i := range s.circles {
		s.circles[i].Selected = false
	}
}

// SelectAt flags the circle at i as selected
// Does not clear other flags; call ClearSelection first to keep at most one selected
func (s *Store) SelectAt(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.circles[i].Selected = true
	return nil
}

// Get returns a copy of the circle at i
func (s *Store) Get(i int) (Circle, error) {
	if err := s.check(i); err != nil {
		return Circle{}, err
	}
	return s.circles[i], nil
}

// Move sets the center of the circle at i
func (s *Store) Move(i int, center vmath.Point) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.circles[i].X = center.X
	s.circles[i].Y = center.Y
	return nil
}

// SetRadius sets the radius of the circle at i
// Range policy (minimum radius) belongs to the caller
func (s *Store) SetRadius(i int, r float64) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.circles[i].Radius = r
	return nil
}

// IndexOf returns the current index of the circle with the given ID
func (s *Store) IndexOf(id uint64) (int, bool) {
	for i := range s.circles {
		if s.circles[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Circles returns a copy of the list in z-order
func (s *Store) Circles() []Circle {
	out := make([]Circle, len(s.circles))
	copy(out, s.circles)
	return out
}

func (s *Store) check(i int) error {
	if i < 0 || i >= len(s.circles) {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, len(s.circles))
	}
	return nil
}
