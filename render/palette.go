package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the four colors a frame is drawn with
type Palette struct {
	Background colorful.Color
	Normal     colorful.Color
	Selected   colorful.Color
	Status     colorful.Color
}

// DefaultPalette is a dark background with blue circles and an orange selection
func DefaultPalette() Palette {
	return Palette{
		Background: colorful.Color{R: 16.0 / 255, G: 20.0 / 255, B: 24.0 / 255},
		Normal:     colorful.Color{R: 60.0 / 255, G: 141.0 / 255, B: 188.0 / 255},
		Selected:   colorful.Color{R: 243.0 / 255, G: 156.0 / 255, B: 18.0 / 255},
		Status:     colorful.Color{R: 192.0 / 255, G: 192.0 / 255, B: 192.0 / 255},
	}
}

// ParsePalette builds a palette from "#rrggbb" strings
func ParsePalette(background, normal, selected, status string) (Palette, error) {
	var p Palette
	fields := []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"background", background, &p.Background},
		{"normal", normal, &p.Normal},
		{"selected", selected, &p.Selected},
		{"status", status, &p.Status},
	}
	for _, f := range fields {
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("render: %s color %q: %w", f.name, f.hex, err)
		}
		*f.dst = c
	}
	return p, nil
}

// Fill returns the body color for a circle
func (p Palette) Fill(selected bool) colorful.Color {
	if selected {
		return p.Selected
	}
	return p.Normal
}

// tcellColor converts to a truecolor terminal color
func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ggColor converts to an opaque raster color; both use 0..1 channels
func ggColor(c colorful.Color) gg.RGBA {
	c = c.Clamped()
	return gg.RGB(c.R, c.G, c.B)
}
