package stage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mediaspawn/mediaspawn/filesystem"
	"github.com/mediaspawn/mediaspawn/plan"
	"github.com/mediaspawn/mediaspawn/player"
	"github.com/mediaspawn/mediaspawn/script"
	"github.com/mediaspawn/mediaspawn/spawner"
	"github.com/mediaspawn/mediaspawn/timeline"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	filesystem.SetMemMapFs()
	m.Run()
}

type recorder struct {
	mu     sync.Mutex
	events []timeline.Event
	states map[string][]spawner.State
}

func (r *recorder) event(e timeline.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) state(inst *spawner.Instance, s spawner.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[inst.Options().Source] = append(r.states[inst.Options().Source], s)
}

func (r *recorder) kinds() []timeline.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()

	kinds := make([]timeline.EventKind, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Kind
	}
	return kinds
}

func (r *recorder) last(source string) spawner.State {
	r.mu.Lock()
	defer r.mu.Unlock()

	states := r.states[source]
	if len(states) == 0 {
		return spawner.Resolving
	}
	return states[len(states)-1]
}

func newStage(p *plan.Plan) (*Stage, *recorder) {
	rec := &recorder{states: make(map[string][]spawner.State)}

	settings := spawner.DefaultSettings()
	settings.PollInterval = 5 * time.Millisecond

	return New(p, Options{
		Settings: settings,
		Tick:     5 * time.Millisecond,
		Backend:  func() player.Backend { return player.NewHeadless() },
		Loader:   []script.LoaderOption{script.WithCacheTTL(0)},
		OnEvent:  rec.event,
		OnState:  rec.state,
	}), rec
}

func samplePlan() *plan.Plan {
	return &plan.Plan{
		Name:       "sample",
		Duration:   0.1,
		Containers: []plan.Container{{ID: "stage", Width: 640, Height: 360}},
		Spawns: []plan.Spawn{
			{Source: "intro.mp4", Target: "stage", Start: 0.01, End: 0.05},
			{Source: "https://youtu.be/dQw4w9WgXcQ", Target: "stage", Start: 0.02, End: 0.08},
			{Source: "lost.mp4", Target: "stgae", Start: 0, End: 0.05},
		},
	}
}

func TestRun(t *testing.T) {
	Convey("Given a stage built from a plan", t, func() {
		s, rec := newStage(samplePlan())

		Convey("Run plays the timeline to its end and tears every spawn down", func() {
			So(s.Run(context.Background(), 1), ShouldBeNil)

			So(rec.kinds(), ShouldResemble, []timeline.EventKind{
				timeline.Enter, timeline.Enter, timeline.Exit, timeline.Exit,
			})
			So(rec.last("intro.mp4"), ShouldEqual, spawner.TornDown)
			So(rec.last("https://youtu.be/dQw4w9WgXcQ"), ShouldEqual, spawner.TornDown)
			So(s.Timeline.Entries(), ShouldBeEmpty)
			So(s.Document.IDs(), ShouldResemble, []string{"stage"})

			Convey("The missing target is reported once", func() {
				So(s.Errors.Len(), ShouldEqual, 1)
				So(errors.Is(s.Errors.Join(), spawner.ErrConfig), ShouldBeTrue)
				So(errors.Is(s.Errors.Join(), spawner.ErrNoTarget), ShouldBeTrue)
			})

			Convey("Each dependency was fetched once", func() {
				settings := s.Spawner.Settings()
				So(s.Loader.Fetches(settings.ModuleURL), ShouldEqual, 1)
				So(s.Loader.Fetches(settings.ImplementationURL("youtube")), ShouldEqual, 1)
			})
		})

		Convey("A view that returns stops the stage early", func() {
			viewed := make(chan struct{})
			err := s.Run(context.Background(), 0.01, func(ctx context.Context) error {
				close(viewed)
				return nil
			})

			So(err, ShouldBeNil)
			<-viewed
			So(s.Timeline.Now(), ShouldBeLessThan, s.Timeline.Duration())
		})

		Convey("A failing view is returned", func() {
			boom := errors.New("boom")
			err := s.Run(context.Background(), 1, func(ctx context.Context) error {
				return boom
			})
			So(errors.Is(err, boom), ShouldBeTrue)
		})

		Convey("A cancelled context stops playback", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			So(s.Run(ctx, 1), ShouldBeNil)
		})
	})
}

func TestFromConfig(t *testing.T) {
	Convey("FromConfig reads the configured settings", t, func() {
		options := FromConfig()
		So(options.Tick, ShouldBeGreaterThan, 0)
		So(options.Settings.PollInterval, ShouldBeGreaterThan, 0)
	})
}
