// Красота

package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("62")).
		Padding(0, 1).
		Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#04B575"))

	failStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5F56")).
		Bold(true)

	dimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("15"))
)
