package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/mediaspawn/mediaspawn/timeline"
	"github.com/mediaspawn/mediaspawn/util"
)

const refreshRate = 100 * time.Millisecond

type bubble struct {
	options *Options
	keymap  *keymap

	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model

	entries  []timeline.Info
	now      time.Duration
	duration time.Duration
	paused   bool

	width, height int
}

func newBubble(options *Options) *bubble {
	if options.SeekStep <= 0 {
		options.SeekStep = 5 * time.Second
	}
	if options.Post == nil {
		options.Post = func(fn func()) { fn() }
	}

	b := &bubble{
		options:   options,
		keymap:    newKeymap(),
		spinnerC:  spinner.New(),
		progressC: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		helpC:     help.New(),
	}
	b.spinnerC.Spinner = spinner.Dot
	b.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	if width, height, err := util.TerminalSize(); err == nil {
		b.resize(width, height)
	}

	b.refresh()
	return b
}

// refresh copies the timeline state into the bubble.
func (b *bubble) refresh() {
	tl := b.options.Timeline
	b.entries = tl.Entries()
	b.now = tl.Now()
	b.duration = tl.Duration()
	b.paused = tl.Paused()
}

func (b *bubble) percent() float64 {
	if b.duration <= 0 {
		return 0
	}
	return util.Clamp(float64(b.now)/float64(b.duration), 0, 1)
}

func (b *bubble) resize(width, height int) {
	x, _ := paddingStyle.GetFrameSize()
	b.width = width - x
	b.height = height
	b.progressC.Width = b.width
	b.helpC.Width = b.width
}

func (b *bubble) seek(to time.Duration) {
	to = max(0, min(to, b.duration))
	tl := b.options.Timeline
	b.options.Post(func() { tl.Seek(to) })
}
