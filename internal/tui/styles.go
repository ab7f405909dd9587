package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/ppiankov/factview/internal/classify"
)

var (
	colorPositive = lipgloss.Color("#8BC34A")
	colorNegative = lipgloss.Color("#e53935")
	colorPending  = lipgloss.Color("#FFC107")
	colorUnknown  = lipgloss.Color("#9E9E9E")
	colorAccent   = lipgloss.Color("#2196F3")
)

// Styles holds the rendering styles of the interactive UI
type Styles struct {
	Title    lipgloss.Style
	Input    lipgloss.Style
	Focused  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Overlay  lipgloss.Style
	Help     lipgloss.Style
	badges   map[classify.Variant]lipgloss.Style
}

// DefaultStyles returns the standard palette
func DefaultStyles() Styles {
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Input:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorUnknown).Padding(0, 1),
		Focused:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1),
		Error:    lipgloss.NewStyle().Foreground(colorNegative).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(colorPending),
		Muted:    lipgloss.NewStyle().Foreground(colorUnknown),
		Selected: lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Overlay:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(colorAccent).Padding(0, 1),
		Help:     lipgloss.NewStyle().Foreground(colorUnknown).Italic(true),
		badges: map[classify.Variant]lipgloss.Style{
			classify.VariantPositive: badge.Foreground(colorPositive),
			classify.VariantNegative: badge.Foreground(colorNegative),
			classify.VariantPending:  badge.Foreground(colorPending),
			classify.VariantUnknown:  badge.Foreground(colorUnknown),
		},
	}
}

// Badge returns the style for a classification variant
func (s Styles) Badge(v classify.Variant) lipgloss.Style {
	if st, ok := s.badges[v]; ok {
		return st
	}
	return s.badges[classify.VariantUnknown]
}
