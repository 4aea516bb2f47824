package render

import "github.com/lixenwraith/circled/vmath"

// Grid maps terminal cells to surface coordinates
// A cell (col, row) covers [col*CellW, (col+1)*CellW) x [row*CellH, (row+1)*CellH)
type Grid struct {
	CellW float64
	CellH float64
}

// Center returns the surface point at the middle of a cell
func (g Grid) Center(col, row int) vmath.Point {
	return vmath.Pt((float64(col)+0.5)*g.CellW, (float64(row)+0.5)*g.CellH)
}

// Surface returns the surface extent of cols x rows cells
func (g Grid) Surface(cols, rows int) (width, height float64) {
	return float64(cols) * g.CellW, float64(rows) * g.CellH
}
