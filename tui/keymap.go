package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/mediaspawn/mediaspawn/color"
	"github.com/mediaspawn/mediaspawn/style"
)

type keymap struct {
	quit, forceQuit,
	playPause,
	back, forward,
	restart,
	showHelp key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp(style.Fg(color.Yellow)("space"), style.Fg(color.Yellow)("play/pause")),
		),
		back: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "seek back"),
		),
		forward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "seek forward"),
		),
		restart: key.NewBinding(
			key.WithKeys("0", "home"),
			key.WithHelp("0", "restart"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k *keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.playPause, k.back, k.forward, k.showHelp, k.quit}
}

// FullHelp implements help.KeyMap.
func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.playPause, k.restart},
		{k.back, k.forward},
		{k.showHelp, k.quit, k.forceQuit},
	}
}
