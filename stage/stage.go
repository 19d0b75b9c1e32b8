// Package stage wires a plan into a running timeline: one loop, one registry
// and namespace shared by every spawn, and the loader and builder behind them.
package stage

import (
	"context"
	"errors"
	"time"

	"github.com/mediaspawn/mediaspawn/config"
	"github.com/mediaspawn/mediaspawn/log"
	"github.com/mediaspawn/mediaspawn/loop"
	"github.com/mediaspawn/mediaspawn/namespace"
	"github.com/mediaspawn/mediaspawn/page"
	"github.com/mediaspawn/mediaspawn/plan"
	"github.com/mediaspawn/mediaspawn/player"
	"github.com/mediaspawn/mediaspawn/registry"
	"github.com/mediaspawn/mediaspawn/script"
	"github.com/mediaspawn/mediaspawn/spawner"
	"github.com/mediaspawn/mediaspawn/timeline"
	"golang.org/x/sync/errgroup"
)

// Options tune a Stage.
type Options struct {
	Settings spawner.Settings
	Tick     time.Duration

	// Backend overrides player.backend for html media.
	Backend func() player.Backend

	Loader []script.LoaderOption

	OnEvent func(timeline.Event)
	OnState func(*spawner.Instance, spawner.State)
}

// FromConfig returns options read from the loaded configuration.
func FromConfig() Options {
	return Options{
		Settings: spawner.SettingsFromConfig(),
		Tick:     config.Tick(),
	}
}

// Stage is a plan ready to play.
type Stage struct {
	Plan      *plan.Plan
	Loop      *loop.Loop
	Registry  *registry.Registry
	Namespace *namespace.Namespace
	Runtime   *script.Runtime
	Loader    *script.Loader
	Document  *page.Document
	Spawner   *spawner.Spawner
	Timeline  *timeline.Timeline
	Errors    *timeline.Errors
}

// New builds the stage of p. Nothing runs until Run.
func New(p *plan.Plan, options Options) *Stage {
	s := &Stage{
		Plan:      p,
		Loop:      loop.New(),
		Registry:  registry.New(),
		Namespace: namespace.New(),
		Document:  p.Document(),
		Errors:    new(timeline.Errors),
	}

	s.Runtime = script.NewRuntime(s.Namespace)
	s.Loader = script.NewLoader(s.Loop, s.Runtime, options.Loader...)

	var builderOptions []player.BuilderOption
	if options.Backend != nil {
		builderOptions = append(builderOptions, player.WithBackend(options.Backend))
	}

	s.Spawner = spawner.New(spawner.Deps{
		Registry:  s.Registry,
		Namespace: s.Namespace,
		Fetcher:   s.Loader,
		Factory:   player.NewBuilder(s.Namespace, builderOptions...),
		Scheduler: s.Loop,
		Document:  s.Document,
		Report:    s.Errors.Report,
		Settings:  options.Settings,
		OnState:   options.OnState,
	})

	timelineOptions := []timeline.Option{
		timeline.WithTick(options.Tick),
		timeline.WithDuration(p.TotalDuration()),
	}
	if options.OnEvent != nil {
		timelineOptions = append(timelineOptions, timeline.WithObserver(options.OnEvent))
	}
	s.Timeline = timeline.New(s.Loop, s.Spawner, s.Errors.Report, timelineOptions...)

	return s
}

// Run sets every spawn up and plays the timeline at rate.
//
// Without views the stage stops at the end of the timeline. With views it
// stops once the first view returns, so the last frame stays on screen.
// Every instance is torn down before Run returns.
func (s *Stage) Run(ctx context.Context, rate float64, views ...func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ignoreCanceled(s.Loop.Run(ctx))
	})

	g.Go(func() error {
		if len(views) == 0 {
			defer cancel()
		}

		if err := s.Loop.Do(ctx, s.setup); err != nil {
			return ignoreCanceled(err)
		}
		return ignoreCanceled(s.Timeline.Play(ctx, rate))
	})

	for _, view := range views {
		g.Go(func() error {
			defer cancel()
			return view(ctx)
		})
	}

	err := g.Wait()
	s.Close()
	return err
}

// setup adds every spawn of the plan. Configuration errors are already
// reported to Errors, so a bad spawn does not stop the others.
func (s *Stage) setup() {
	for i, opts := range s.Plan.Options() {
		if _, err := s.Timeline.Add(opts); err != nil {
			log.Component("stage").WithField("spawn", i).Warn(err)
		}
	}
}

// Close tears every instance down and stops the loop. The loop must not be running.
func (s *Stage) Close() {
	s.Timeline.Clear()
	s.Loop.Close()
	s.Runtime.Close()
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, loop.ErrClosed) {
		return nil
	}
	return err
}
