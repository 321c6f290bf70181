package report

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// styles holds the lipgloss styles used by the renderer
type styles struct {
	title    lipgloss.Style
	section  lipgloss.Style
	label    lipgloss.Style
	number   lipgloss.Style
	muted    lipgloss.Style
	readTool lipgloss.Style
	editTool lipgloss.Style
	rule     lipgloss.Style
}

// Flavour resolves a theme name to a catppuccin flavor, defaulting to mocha
func Flavour(theme string) catppuccin.Flavour {
	switch strings.ToLower(theme) {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	default:
		return catppuccin.Mocha
	}
}

func newStyles(theme string) styles {
	fl := Flavour(theme)
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fl.Mauve().Hex)),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fl.Blue().Hex)),
		label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fl.Text().Hex)),
		number: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fl.Peach().Hex)),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fl.Overlay1().Hex)),
		readTool: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fl.Green().Hex)),
		editTool: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fl.Yellow().Hex)),
		rule: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fl.Surface2().Hex)),
	}
}
