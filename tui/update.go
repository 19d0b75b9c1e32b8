package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case refreshMsg:
		b.refresh()
		return b, refresh()
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case tea.KeyMsg:
		return b.handleKey(msg)
	}

	return b, nil
}

func (b *bubble) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tl := b.options.Timeline

	switch {
	case key.Matches(msg, b.keymap.quit, b.keymap.forceQuit):
		return b, tea.Quit
	case key.Matches(msg, b.keymap.playPause):
		b.paused = !b.paused
		tl.SetPaused(b.paused)
	case key.Matches(msg, b.keymap.back):
		b.seek(b.now - b.options.SeekStep)
	case key.Matches(msg, b.keymap.forward):
		b.seek(b.now + b.options.SeekStep)
	case key.Matches(msg, b.keymap.restart):
		b.seek(0)
	case key.Matches(msg, b.keymap.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}

	return b, nil
}
