package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	countStyle = lipgloss.NewStyle().
			Faint(true)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(3)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Bold(true).
				Foreground(lipgloss.Color("170"))

	placeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	emptyStyle = lipgloss.NewStyle().
			Faint(true).
			Italic(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)
