package tui

import "github.com/charmbracelet/lipgloss"

var styles = NewPalette("#E50914", "#FFFFFF", "#B3B3B3", "#FFA500", "#626262")

// Palette is a small stylesheet of named [lipgloss.Style] fields.
type Palette struct {
	logo     lipgloss.Style
	title    lipgloss.Style
	synopsis lipgloss.Style
	selected lipgloss.Style
	item     lipgloss.Style
	trailer  lipgloss.Style
	help     lipgloss.Style
}

func NewPalette(brand, fg, dim, accent, muted string) *Palette {
	return &Palette{
		logo:     NewBold(brand).MarginBottom(1),
		title:    NewBold(fg),
		synopsis: NewEm(dim).MarginBottom(1),
		selected: NewBold(fg).Background(lipgloss.Color(brand)).Padding(0, 1),
		item:     NewStyle(dim).Padding(0, 1),
		trailer:  NewBold(accent),
		help:     NewEm(muted),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
