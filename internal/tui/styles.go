package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dotcommander/scrumdinger/internal/models"
)

//nolint:gochecknoglobals // shared styles
var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5E5E"))
	labelStyle = lipgloss.NewStyle().Width(11).Foreground(lipgloss.Color("245"))
	focusStyle = lipgloss.NewStyle().Width(11).Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF5E5E")).
			Padding(1, 2).
			Width(60)
)

// cardStyle renders a scrum row in its theme colours.
func cardStyle(theme models.Theme, selected bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Padding(0, 1).
		Width(48).
		Background(lipgloss.Color(theme.MainColor())).
		Foreground(lipgloss.Color(theme.AccentColor()))
	if selected {
		s = s.Bold(true).BorderLeft(true).BorderStyle(lipgloss.ThickBorder())
	}
	return s
}
