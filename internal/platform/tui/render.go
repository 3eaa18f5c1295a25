package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/turtle/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// Painter turns screen buffers into styled strings. Styles are cached per
// foreground/background pair.
type Painter struct {
	renderer *lipgloss.Renderer
	styles   map[colorPair]lipgloss.Style
}

// NewPainter returns a painter for r, or for the default renderer when r
// is nil.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{
		renderer: r,
		styles:   make(map[colorPair]lipgloss.Style),
	}
}

func (p *Painter) style(key colorPair) lipgloss.Style {
	if st, ok := p.styles[key]; ok {
		return st
	}
	st := p.renderer.NewStyle().
		Foreground(lipgloss.Color(key.fg.Hex())).
		Background(lipgloss.Color(key.bg.Hex()))
	p.styles[key] = st
	return st
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			key := colorPair{cell.FG, cell.BG}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{cell.FG, cell.BG}) != key {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(p.style(key).Render(run.String()))
		}
	}
	return sb.String()
}
