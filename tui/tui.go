// Package tui renders a running timeline: the clock, every spawn and its player.
package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mediaspawn/mediaspawn/timeline"
)

// Options configure the stage view.
type Options struct {
	Title    string
	Timeline *timeline.Timeline

	// Post runs fn on the goroutine that drives the timeline.
	Post func(fn func())

	// SeekStep is how far the arrow keys move the clock.
	SeekStep time.Duration
}

// Run shows the stage view until the user quits or ctx is done.
func Run(ctx context.Context, options *Options) error {
	_, err := tea.NewProgram(newBubble(options), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
