package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/circled/shape"
)

// StatusHelp is the key summary shown at the end of the status line
const StatusHelp = "click:add/select  drag:move  wheel:resize  del:delete  q:quit"

// Terminal draws circles as colored cells on a tcell screen
// The last row is reserved for the status line
type Terminal struct {
	screen tcell.Screen
	grid   Grid

	bgStyle       tcell.Style
	normalStyle   tcell.Style
	selectedStyle tcell.Style
	statusStyle   tcell.Style
}

// NewTerminal creates a renderer on an initialized screen
func NewTerminal(screen tcell.Screen, grid Grid, palette Palette) *Terminal {
	bg := tcell.StyleDefault.Background(tcellColor(palette.Background))
	return &Terminal{
		screen:        screen,
		grid:          grid,
		bgStyle:       bg,
		normalStyle:   bg.Background(tcellColor(palette.Normal)),
		selectedStyle: bg.Background(tcellColor(palette.Selected)),
		statusStyle:   bg.Foreground(tcellColor(palette.Status)),
	}
}

// DrawRows returns the number of rows available for circles
func (r *Terminal) DrawRows() int {
	_, h := r.screen.Size()
	return max(h-1, 0)
}

// SurfaceSize returns the drawable area in surface units
func (r *Terminal) SurfaceSize() (width, height float64) {
	w, _ := r.screen.Size()
	return r.grid.Surface(w, r.DrawRows())
}

// Render fills the screen with the background and paints every cell by the topmost circle covering its center
func (r *Terminal) Render(circles []shape.Circle) {
	r.screen.Fill(' ', r.bgStyle)

	w, _ := r.screen.Size()
	rows := r.DrawRows()

	for row := 0; row < rows; row++ {
		for col := 0; col < w; col++ {
			p := r.grid.Center(col, row)
			for i := len(circles) - 1; i >= 0; i-- {
				if !circles[i].Contains(p) {
					continue
				}
				style := r.normalStyle
				if circles[i].Selected {
					style = r.selectedStyle
				}
				r.screen.SetContent(col, row, ' ', nil, style)
				break
			}
		}
	}

	r.drawStatus(circles, w, rows)
	r.screen.Show()
}

func (r *Terminal) drawStatus(circles []shape.Circle, width, y int) {
	text := StatusLine(circles)
	text = runewidth.Truncate(text, width, "…")

	x := 0
	for _, ch := range text {
		cw := runewidth.RuneWidth(ch)
		if cw == 0 {
			continue
		}
		r.screen.SetContent(x, y, ch, nil, r.statusStyle)
		x += cw
	}
}

// StatusLine summarizes the frame: count, selection, and key help
func StatusLine(circles []shape.Circle) string {
	sel := "none"
	for i := range circles {
		if circles[i].Selected {
			c := circles[i]
			sel = fmt.Sprintf("#%d (%.0f,%.0f) r=%.0f", c.ID, c.X, c.Y, c.Radius)
			break
		}
	}
	return fmt.Sprintf(" %d circles │ selected: %s │ %s", len(circles), sel, StatusHelp)
}
