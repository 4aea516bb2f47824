package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/circled/editor"
	"github.com/lixenwraith/circled/modes"
)

var (
	accentFg  = lipgloss.Color("#F39C12")
	dimFg     = lipgloss.Color("#6B7280")
	errorFg   = lipgloss.Color("#E74C3C")
	borderCol = lipgloss.Color("#3C8DBC")

	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(dimFg)
	errStyle   = lipgloss.NewStyle().Foreground(errorFg)
)

// summary is printed after the screen is closed
type summary struct {
	Circles  int
	Selected string
	Consumed int
	Ignored  int
	Sounds   int
	Frames   int
	PNGPath  string
	PNGErr   error
}

func newSummary(ctrl *editor.Controller, handler *modes.InputHandler) summary {
	s := summary{Circles: ctrl.Len(), Selected: "none"}
	if c, _, ok := ctrl.Selected(); ok {
		s.Selected = c.String()
	}
	s.Consumed, s.Ignored = handler.Stats()
	return s
}

func renderSummary(s summary) string {
	lines := []string{
		titleStyle.Render("circled"),
		fmt.Sprintf("circles:  %d", s.Circles),
		fmt.Sprintf("selected: %s", s.Selected),
		dimStyle.Render(fmt.Sprintf("events:   %d handled, %d ignored", s.Consumed, s.Ignored)),
	}
	if s.Frames > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("frames:   %d rasterized", s.Frames)))
	}
	if s.Sounds > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("sounds:   %d", s.Sounds)))
	}
	switch {
	case s.PNGErr != nil:
		lines = append(lines, errStyle.Render(fmt.Sprintf("png:      %v", s.PNGErr)))
	case s.PNGPath != "":
		lines = append(lines, fmt.Sprintf("png:      %s", s.PNGPath))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
