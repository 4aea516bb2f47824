// Package vmath holds the float geometry shared by the editor and its renderers
// Surface space: origin top-left, X grows right, Y grows down
package vmath

// Point is a position on the drawing surface
type Point struct {
	X, Y float64
}

// Vec is a displacement between two points
type Vec struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns the vector from q to p (p - q)
func (p Point) Sub(q Point) Vec {
	return Vec{X: p.X - q.X, Y: p.Y - q.Y}
}

// Offset returns p translated by -v
// Inverse of Sub: p.Sub(q) == v implies p.Offset(v) == q
func (p Point) Offset(v Vec) Point {
	return Point{X: p.X - v.X, Y: p.Y - v.Y}
}

// Add returns p translated by v
func (p Point) Add(v Vec) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// LenSq returns squared magnitude without sqrt
func (v Vec) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// CircleContains returns true if p is inside or on the boundary of the circle
// Squared comparison, boundary inclusive
func CircleContains(center Point, radius float64, p Point) bool {
	if radius < 0 {
		return false
	}
	return p.Sub(center).LenSq() <= radius*radius
}
