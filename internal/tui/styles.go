package tui

import (
	"cc_session_stats/internal/report"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles for the watch view
type Styles struct {
	Title        lipgloss.Style
	Status       lipgloss.Style
	Totals       lipgloss.Style
	SelectedItem lipgloss.Style
	NormalItem   lipgloss.Style
	Muted        lipgloss.Style
	Error        lipgloss.Style
	Help         lipgloss.Style
	ColumnHeader lipgloss.Style
}

// NewStyles builds the style set from a catppuccin theme name
func NewStyles(theme string) Styles {
	fl := report.Flavour(theme)
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fl.Mauve().Hex)),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fl.Overlay1().Hex)),
		Totals: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fl.Peach().Hex)),
		SelectedItem: lipgloss.NewStyle().
			Background(lipgloss.Color(fl.Surface1().Hex)).
			Foreground(lipgloss.Color(fl.Text().Hex)).
			Bold(true),
		NormalItem: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fl.Text().Hex)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fl.Overlay1().Hex)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fl.Red().Hex)).
			Bold(true).
			Padding(1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fl.Overlay0().Hex)),
		ColumnHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fl.Subtext0().Hex)),
	}
}
