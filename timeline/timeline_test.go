package timeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mediaspawn/mediaspawn/constant"
	"github.com/mediaspawn/mediaspawn/loop"
	"github.com/mediaspawn/mediaspawn/namespace"
	"github.com/mediaspawn/mediaspawn/page"
	"github.com/mediaspawn/mediaspawn/player"
	"github.com/mediaspawn/mediaspawn/registry"
	"github.com/mediaspawn/mediaspawn/script"
	"github.com/mediaspawn/mediaspawn/spawner"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newSpawner(s loop.Scheduler, errs *Errors) (*spawner.Spawner, *page.Document) {
	ns := namespace.New()
	doc := page.NewDocument()
	doc.Add("stage", 640, 360)

	return spawner.New(spawner.Deps{
		Registry:  registry.New(),
		Namespace: ns,
		Fetcher:   script.NewLoader(s, script.NewRuntime(ns), script.WithCacheTTL(0)),
		Factory:   player.NewBuilder(ns, player.WithBackend(func() player.Backend { return player.NewHeadless() })),
		Scheduler: s,
		Document:  doc,
		Report:    spawner.Reporter(errs.Report),
		Settings:  spawner.DefaultSettings(),
	}), doc
}

func spawn(source string, start, end time.Duration) spawner.Options {
	return spawner.Options{Source: source, Target: "stage", Start: start, End: end}
}

func TestTimeline(t *testing.T) {
	Convey("Given a timeline with two overlapping entries", t, func() {
		m := loop.NewManual()
		errs := &Errors{}
		sp, doc := newSpawner(m, errs)

		var events []Event
		tl := New(m, sp, errs.Report, WithObserver(func(e Event) { events = append(events, e) }))

		a, err := tl.Add(spawn("a.mp4", 0, 2*time.Second))
		So(err, ShouldBeNil)
		b, err := tl.Add(spawn("b.mp4", time.Second, 3*time.Second))
		So(err, ShouldBeNil)
		m.Flush()

		Convey("An entry containing the current time enters on add", func() {
			So(events, ShouldResemble, []Event{{Kind: Enter, Entry: a, At: 0}})
			So(tl.Duration(), ShouldEqual, 3*time.Second)
		})

		Convey("Seeking fires exits before enters", func() {
			events = nil
			tl.Seek(2 * time.Second)
			So(events, ShouldResemble, []Event{
				{Kind: Exit, Entry: a, At: 2 * time.Second},
				{Kind: Enter, Entry: b, At: 2 * time.Second},
			})

			infos := tl.Entries()
			So(infos, ShouldHaveLength, 2)
			So(infos[0].Inside, ShouldBeFalse)
			So(infos[1].Inside, ShouldBeTrue)

			Convey("The entry that lost the module claim becomes ready on its next poll", func() {
				So(infos[0].State, ShouldEqual, spawner.Ready)
				So(infos[1].State, ShouldEqual, spawner.AwaitingModule)

				m.Advance(constant.PollInterval)
				So(tl.Entries()[1].State, ShouldEqual, spawner.Ready)
			})
		})

		Convey("Ticking moves relative to now", func() {
			tl.Tick(500 * time.Millisecond)
			tl.Tick(500 * time.Millisecond)
			So(tl.Now(), ShouldEqual, time.Second)
			So(events[len(events)-1], ShouldResemble, Event{Kind: Enter, Entry: b, At: time.Second})
		})

		Convey("Seeking past the end exits everything", func() {
			tl.Seek(time.Second)
			events = nil
			tl.Seek(10 * time.Second)
			So(events, ShouldHaveLength, 2)
			So(events[0].Kind, ShouldEqual, Exit)
			So(events[1].Kind, ShouldEqual, Exit)
		})

		Convey("Remove tears the entry down", func() {
			So(tl.Remove(a), ShouldBeNil)
			So(tl.Entries(), ShouldHaveLength, 1)
			So(errors.Is(tl.Remove(a), ErrUnknownEntry), ShouldBeTrue)
		})

		Convey("Clear tears every entry down", func() {
			stage, _ := doc.GetElementByID("stage")
			So(stage.Children(), ShouldHaveLength, 2)
			tl.Clear()
			So(stage.Children(), ShouldBeEmpty)
			So(tl.Entries(), ShouldBeEmpty)
		})

		Convey("Invalid intervals are reported", func() {
			_, err := tl.Add(spawn("c.mp4", 2*time.Second, time.Second))
			So(errors.Is(err, ErrInterval), ShouldBeTrue)
			So(errs.Len(), ShouldEqual, 1)
		})

		Convey("Spawn configuration errors are reported once", func() {
			_, err := tl.Add(spawn("", 0, time.Second))
			So(errors.Is(err, spawner.ErrConfig), ShouldBeTrue)
			So(errs.Len(), ShouldEqual, 1)
			So(errs.Join(), ShouldNotBeNil)
		})
	})
}

func TestPlay(t *testing.T) {
	Convey("Given a timeline on a running loop", t, func() {
		lp := loop.New()
		ctx, cancel := context.WithCancel(context.Background())
		stopped := make(chan struct{})
		go func() {
			_ = lp.Run(ctx)
			close(stopped)
		}()
		defer func() {
			cancel()
			<-stopped
		}()

		errs := &Errors{}
		sp, _ := newSpawner(lp, errs)

		var events []Event
		tl := New(lp, sp, errs.Report, WithTick(5*time.Millisecond), WithObserver(func(e Event) { events = append(events, e) }))

		So(lp.Do(ctx, func() {
			_, _ = tl.Add(spawn("a.mp4", 10*time.Millisecond, 30*time.Millisecond))
		}), ShouldBeNil)

		Convey("Play runs to the end of the timeline", func() {
			So(tl.Play(ctx, 2), ShouldBeNil)
			So(tl.Now(), ShouldEqual, 30*time.Millisecond)

			var kinds []EventKind
			So(lp.Do(ctx, func() {
				for _, e := range events {
					kinds = append(kinds, e.Kind)
				}
			}), ShouldBeNil)
			So(kinds, ShouldResemble, []EventKind{Enter, Exit})
		})

		Convey("Play stops when the context is cancelled", func() {
			playCtx, stop := context.WithCancel(ctx)
			tl.SetPaused(true)
			go func() {
				time.Sleep(20 * time.Millisecond)
				stop()
			}()
			So(errors.Is(tl.Play(playCtx, 1), context.Canceled), ShouldBeTrue)
			So(tl.Now(), ShouldEqual, 0)
		})
	})
}
