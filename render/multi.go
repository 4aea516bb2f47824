package render

import "github.com/lixenwraith/circled/shape"

// Renderer is satisfied by every frame sink in this package
type Renderer interface {
	Render(circles []shape.Circle)
}

// Multi fans each frame out to several renderers in order
type Multi []Renderer

// NewMulti drops nil renderers
func NewMulti(renderers ...Renderer) Multi {
	m := make(Multi, 0, len(renderers))
	for _, r := range renderers {
		if r != nil {
			m = append(m, r)
		}
	}
	return m
}

func (m Multi) Render(circles []shape.Circle) {
	for _, r := range m {
		r.Render(circles)
	}
}
