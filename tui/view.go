package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mediaspawn/mediaspawn/color"
	"github.com/mediaspawn/mediaspawn/icon"
	"github.com/mediaspawn/mediaspawn/spawner"
	"github.com/mediaspawn/mediaspawn/style"
	"github.com/mediaspawn/mediaspawn/timeline"
	"github.com/mediaspawn/mediaspawn/util"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

var (
	paddingStyle = lipgloss.NewStyle().Padding(1, 2)
	insideStyle  = lipgloss.NewStyle().Border(lipgloss.ThickBorder(), false, false, false, true).BorderForeground(color.Green).PaddingLeft(1)
	outsideStyle = lipgloss.NewStyle().PaddingLeft(2)
)

func (b *bubble) View() string {
	var sb strings.Builder

	sb.WriteString(style.Title(b.options.Title))
	sb.WriteString("\n\n")
	sb.WriteString(b.progressC.ViewAs(b.percent()))
	sb.WriteString("\n")
	sb.WriteString(b.clock())
	sb.WriteString("\n\n")

	for _, e := range b.entries {
		sb.WriteString(b.entryView(e))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(b.helpC.View(b.keymap))

	return paddingStyle.Render(sb.String())
}

func (b *bubble) clock() string {
	status := style.Fg(color.Green)("playing")
	if b.paused {
		status = style.Fg(color.Yellow)("paused")
	}
	if b.duration > 0 && b.now >= b.duration {
		status = style.Faint("finished")
	}

	return fmt.Sprintf("%s / %s  %s", formatClock(b.now), formatClock(b.duration), status)
}

func formatClock(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	minutes := int(d / time.Minute)
	seconds := (d % time.Minute).Seconds()
	return fmt.Sprintf("%02d:%04.1f", minutes, seconds)
}

func (b *bubble) stateIcon(s spawner.State) string {
	switch s {
	case spawner.Ready:
		return icon.Get(icon.Success)
	case spawner.Failed:
		return icon.Get(icon.Fail)
	case spawner.TornDown:
		return icon.Get(icon.Exit)
	default:
		return b.spinnerC.View()
	}
}

func (b *bubble) entryView(e timeline.Info) string {
	var sb strings.Builder

	header := fmt.Sprintf(
		"%s %s %s %s",
		b.stateIcon(e.State),
		style.Tag(color.New("230"), typeColor(e.Type.String()))(e.Type.String()),
		style.Bold(e.Options.Source),
		style.Faint(fmt.Sprintf("%s..%s", formatClock(e.Options.Start), formatClock(e.Options.End))),
	)
	sb.WriteString(header)
	sb.WriteString("\n")

	details := fmt.Sprintf("%s in #%s  %s", e.State, e.Options.Target, b.surface(e))
	if e.Err != nil {
		details = style.Fg(color.Red)(e.Err.Error())
	}
	sb.WriteString(style.Faint(details))

	if e.Options.Caption != "" && e.Inside {
		width := util.Max(b.width-4, 20)
		sb.WriteString("\n")
		sb.WriteString(indent.String(wordwrap.String(style.Italic(e.Options.Caption), width), 2))
	}

	if e.Inside {
		return insideStyle.Render(sb.String())
	}
	return outsideStyle.Render(sb.String())
}

func (b *bubble) surface(e timeline.Info) string {
	if !e.Inside || e.State != spawner.Ready {
		return "hidden"
	}
	return fmt.Sprintf("%s %dx%d", icon.Get(icon.Media), e.Width, e.Height)
}

func typeColor(kind string) lipgloss.Color {
	switch kind {
	case "youtube":
		return color.Red
	case "module":
		return color.Purple
	default:
		return color.Blue
	}
}
