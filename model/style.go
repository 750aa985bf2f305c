package model

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	helpStyle        = lipgloss.NewStyle().Faint(true)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	metaStyle        = lipgloss.NewStyle().Faint(true).Italic(true)
	placeholderStyle = lipgloss.NewStyle().Faint(true).Padding(1, 2)
)
