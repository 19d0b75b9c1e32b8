package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mediaspawn/mediaspawn/loop"
	"github.com/mediaspawn/mediaspawn/namespace"
	"github.com/mediaspawn/mediaspawn/page"
	"github.com/mediaspawn/mediaspawn/player"
	"github.com/mediaspawn/mediaspawn/registry"
	"github.com/mediaspawn/mediaspawn/script"
	"github.com/mediaspawn/mediaspawn/spawner"
	"github.com/mediaspawn/mediaspawn/timeline"
	. "github.com/smartystreets/goconvey/convey"
)

func newStage() (*loop.Manual, *timeline.Timeline) {
	m := loop.NewManual()
	ns := namespace.New()
	doc := page.NewDocument()
	doc.Add("stage", 640, 360)

	sp := spawner.New(spawner.Deps{
		Registry:  registry.New(),
		Namespace: ns,
		Fetcher:   script.NewLoader(m, script.NewRuntime(ns), script.WithCacheTTL(0)),
		Factory:   player.NewBuilder(ns, player.WithBackend(func() player.Backend { return player.NewHeadless() })),
		Scheduler: m,
		Document:  doc,
	})

	tl := timeline.New(m, sp, nil)
	_, _ = tl.Add(spawner.Options{Source: "intro.webm", Target: "stage", End: 10 * time.Second, Caption: "Welcome to the stage"})
	_, _ = tl.Add(spawner.Options{Source: "https://youtu.be/abc", Target: "stage", Start: 5 * time.Second, End: 20 * time.Second})
	m.Flush()
	return m, tl
}

func TestBubble(t *testing.T) {
	Convey("Given a stage view over a timeline", t, func() {
		m, tl := newStage()
		b := newBubble(&Options{Title: "demo", Timeline: tl, Post: m.Post})
		b.resize(80, 40)

		Convey("It lists every spawn", func() {
			view := b.View()
			So(view, ShouldContainSubstring, "intro.webm")
			So(view, ShouldContainSubstring, "https://youtu.be/abc")
			So(view, ShouldContainSubstring, "Welcome to the stage")
			So(b.duration, ShouldEqual, 20*time.Second)
		})

		Convey("Space pauses the timeline", func() {
			b.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			So(tl.Paused(), ShouldBeTrue)
			So(b.View(), ShouldContainSubstring, "paused")
		})

		Convey("Arrows seek on the scheduler", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyRight})
			So(tl.Now(), ShouldEqual, 0)

			m.Flush()
			So(tl.Now(), ShouldEqual, 5*time.Second)

			b.Update(refreshMsg{})
			So(b.now, ShouldEqual, 5*time.Second)
			So(b.percent(), ShouldEqual, 0.25)

			b.Update(tea.KeyMsg{Type: tea.KeyLeft})
			b.Update(tea.KeyMsg{Type: tea.KeyLeft})
			m.Flush()
			So(tl.Now(), ShouldEqual, 0)
		})

		Convey("q quits", func() {
			_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
			So(cmd, ShouldNotBeNil)
			So(cmd(), ShouldHaveSameTypeAs, tea.QuitMsg{})
		})
	})
}

func TestFormatClock(t *testing.T) {
	Convey("Clock positions are minutes and tenths of seconds", t, func() {
		So(formatClock(0), ShouldEqual, "00:00.0")
		So(formatClock(65*time.Second+250*time.Millisecond), ShouldEqual, "01:05.3")
	})
}
