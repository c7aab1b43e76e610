package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	cursor   lipgloss.Style
	selected lipgloss.Style
	target   lipgloss.Style
	light    lipgloss.Style
	dark     lipgloss.Style
	title    lipgloss.Style
	banner   lipgloss.Style
	flash    lipgloss.Style
	info     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		cursor:   r.NewStyle().Background(lipgloss.Color("1")),
		selected: r.NewStyle().Background(lipgloss.Color("3")),
		target:   r.NewStyle().Background(lipgloss.Color("2")),
		light:    r.NewStyle().Background(lipgloss.Color("8")),
		dark:     r.NewStyle().Background(lipgloss.Color("0")),
		title:    r.NewStyle().Bold(true),
		banner:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		flash:    r.NewStyle().Foreground(lipgloss.Color("11")),
		info:     r.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Width(22),
	}
}
