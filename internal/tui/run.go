package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run запускает TUI и блокируется до закрытия канала событий
// или выхода пользователя.
func Run(updates <-chan Update) error {
	p := tea.NewProgram(NewModel(updates))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
