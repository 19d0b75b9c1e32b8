package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type refreshMsg struct{}

func refresh() tea.Cmd {
	return tea.Tick(refreshRate, func(_ time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func (b *bubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, refresh())
}
