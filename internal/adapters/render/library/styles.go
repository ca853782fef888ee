package library

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	paper    lipgloss.Style
	meta     lipgloss.Style
	abstract lipgloss.Style
	tag      lipgloss.Style
	savedAt  lipgloss.Style
	section  lipgloss.Style
	empty    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		paper:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		abstract: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		tag:      lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		savedAt:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		section:  lipgloss.NewStyle().MarginTop(1),
		empty:    lipgloss.NewStyle().Faint(true),
	}
}
