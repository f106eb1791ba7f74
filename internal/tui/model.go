// Package tui рисует прогресс раскладки файлов в терминале.
//
// Модель питается событиями пайплайна через канал: TUI ничего не знает
// о файловых операциях, он только отображает то, что ему присылают.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

// maxLogLines — сколько последних событий держать на экране.
const maxLogLines = 8

// Update — одно событие прогресса для отображения.
type Update struct {
	Line       string // человекочитаемая строка события
	OK         bool
	TotalDelta int // прирост общего числа файлов (0 для событий стадий)
	DoneDelta  int // прирост обработанных файлов
}

// Model — Bubble Tea модель прогресса.
type Model struct {
	updates <-chan Update
	started time.Time

	spinner  spinner.Model
	progress progress.Model

	width    int
	total    int
	done     int
	failed   int
	log      []string
	quitting bool
}

type updateMsg Update

type doneMsg struct{}

// NewModel создаёт модель, читающую события из канала.
// Закрытие канала завершает TUI.
func NewModel(updates <-chan Update) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		updates:  updates,
		started:  time.Now(),
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, listenForUpdates(m.updates))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.total += msg.TotalDelta
		m.done += msg.DoneDelta
		if !msg.OK {
			m.failed++
		}
		if msg.Line != "" {
			m.log = append(m.log, renderLogLine(msg.Line, msg.OK))
			if len(m.log) > maxLogLines {
				m.log = m.log[len(m.log)-maxLogLines:]
			}
		}
		return m, listenForUpdates(m.updates)

	case doneMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 10
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		if m.progress.Width < 10 {
			m.progress.Width = 10
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.done) / float64(m.total)
		if ratio > 1 {
			ratio = 1
		}
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)

	var b strings.Builder
	b.WriteString(titleStyle.Render("poryadok-ai"))
	b.WriteString("\n")
	b.WriteString(m.spinner.View())
	b.WriteString(labelStyle.Render(fmt.Sprintf(" Files: %d/%d", m.done, m.total)))
	if m.failed > 0 {
		b.WriteString(failStyle.Render(fmt.Sprintf("  failed:%d", m.failed)))
	}
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(ratio))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)))
	b.WriteString("\n\n")

	width := m.width
	if width <= 0 {
		width = 80
	}
	for _, line := range m.log {
		b.WriteString(wordwrap.String(line, width-2))
		b.WriteString("\n")
	}

	return b.String()
}

func renderLogLine(line string, ok bool) string {
	if ok {
		return okStyle.Render("✓ ") + line
	}
	return failStyle.Render("✗ ") + line
}

func listenForUpdates(updates <-chan Update) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}
