package render

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/gogpu/gg"

	"github.com/lixenwraith/circled/shape"
)

// ErrNoFrame is returned when an image is requested before the first Render
var ErrNoFrame = errors.New("render: no frame rendered")

// Raster draws circles into an anti-aliased image in surface coordinates
type Raster struct {
	width, height int
	palette       Palette
	ctx           *gg.Context
	frames        int
}

// NewRaster creates a raster of the given surface size; sizes below 1 are raised to 1
func NewRaster(width, height int, palette Palette) *Raster {
	return &Raster{
		width:   max(width, 1),
		height:  max(height, 1),
		palette: palette,
	}
}

// Resize changes the surface size for the next frame
func (r *Raster) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.closeContext()
}

// Size returns the raster size in pixels
func (r *Raster) Size() (width, height int) {
	return r.width, r.height
}

// Frames returns the number of frames rendered
func (r *Raster) Frames() int {
	return r.frames
}

// Render clears to the background and fills circles in z-order
func (r *Raster) Render(circles []shape.Circle) {
	if r.ctx == nil {
		r.ctx = gg.NewContext(r.width, r.height)
	}

	r.ctx.ClearWithColor(ggColor(r.palette.Background))
	for _, c := range circles {
		col := ggColor(r.palette.Fill(c.Selected))
		r.ctx.SetRGB(col.R, col.G, col.B)
		r.ctx.DrawCircle(c.X, c.Y, c.Radius)
		if err := r.ctx.Fill(); err != nil {
			log.Printf("render: fill circle %d: %v", c.ID, err)
		}
	}
	r.frames++
}

// Image returns the last rendered frame
func (r *Raster) Image() (image.Image, error) {
	if r.ctx == nil || r.frames == 0 {
		return nil, ErrNoFrame
	}
	return r.ctx.Image(), nil
}

// SavePNG writes the last rendered frame
func (r *Raster) SavePNG(path string) error {
	if r.ctx == nil || r.frames == 0 {
		return ErrNoFrame
	}
	if err := r.ctx.SavePNG(path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

// Close releases the drawing context
func (r *Raster) Close() error {
	return r.closeContext()
}

func (r *Raster) closeContext() error {
	if r.ctx == nil {
		return nil
	}
	err := r.ctx.Close()
	r.ctx = nil
	r.frames = 0
	return err
}
