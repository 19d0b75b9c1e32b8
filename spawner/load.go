package spawner

import (
	"fmt"

	"github.com/mediaspawn/mediaspawn/log"
	"github.com/mediaspawn/mediaspawn/media"
	"github.com/mediaspawn/mediaspawn/player"
	"github.com/mediaspawn/mediaspawn/poller"
	"github.com/samber/mo"
)

// awaitModule makes sure the generic player module is defined before moving on.
func (s *Spawner) awaitModule(inst *Instance) {
	symbol := media.Module.String()
	if s.deps.Namespace.Has(symbol) {
		s.awaitImplementation(inst)
		return
	}

	if !inst.setState(AwaitingModule) {
		return
	}
	s.load(inst, media.Module, s.settings.ModuleURL, s.awaitImplementation)
}

// awaitImplementation makes sure the type specific player script is defined before construction.
func (s *Spawner) awaitImplementation(inst *Instance) {
	if !inst.kind.NeedsImplementation() || s.deps.Namespace.Has(inst.kind.String()) {
		s.construct(inst)
		return
	}

	if !inst.setState(AwaitingImplementation) {
		return
	}
	s.load(inst, inst.kind, s.settings.ImplementationURL(inst.kind), s.construct)
}

// load waits for the symbol of t and calls next once it exists. The first caller
// claiming t fetches its script; everyone polls. The fetcher's completion short-cuts
// the poll of the claiming instance.
func (s *Spawner) load(inst *Instance, t media.Type, url string, next func(*Instance)) {
	symbol := t.String()
	claimed := s.deps.Registry.TryClaim(t)

	opts := []poller.Option{poller.WithInterval(s.settings.PollInterval)}
	if s.settings.LoadTimeout > 0 {
		opts = append(opts, poller.WithTimeout(s.settings.LoadTimeout, func(err error) {
			s.fail(inst, fmt.Errorf("%w: %s from %s: %w", ErrLoad, symbol, url, err))
		}))
	}

	w := poller.AwaitReady(
		s.deps.Scheduler,
		s.deps.Namespace.Probe(symbol),
		func() { next(inst) },
		opts...,
	)

	if !inst.track(w) {
		w.Cancel()
	}

	if !claimed {
		log.Component("spawner").WithField("container", inst.ContainerID()).WithField("type", t).Debug("waiting for another fetch")
		return
	}

	// A claim is always followed by a fetch, even for an instance torn down meanwhile.
	s.deps.Fetcher.Fetch(url, func() {
		s.deps.Registry.MarkLoaded(t)
		if s.deps.Namespace.Has(symbol) && w.Cancel() {
			next(inst)
		}
	})
}

// track stores the active wait so teardown can cancel it. It reports false when the instance is no longer loading.
func (i *Instance) track(w *poller.Wait) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.state.Loading() {
		return false
	}

	select {
	case <-w.Done():
	default:
		i.wait = w
	}
	return true
}

func (s *Spawner) construct(inst *Instance) {
	if !inst.setState(Constructing) {
		return
	}

	h, err := s.deps.Factory.Build(inst.ContainerID(), inst.opts.Source)
	if err != nil {
		s.fail(inst, fmt.Errorf("%w: %w", ErrBuild, err))
		return
	}

	if inst.kind == media.HTML {
		h.Controls(true)
	}
	h.Surface().Hide()

	inst.ready(h)
}

func (i *Instance) ready(h player.Handle) {
	i.mu.Lock()
	if i.state != Constructing {
		i.mu.Unlock()
		_ = h.Destroy()
		return
	}
	i.state = Ready
	i.handle = h
	i.wait = nil
	queued := i.queued
	i.queued = mo.None[bool]()
	i.mu.Unlock()

	i.notify(Ready)

	if enter, ok := queued.Get(); ok {
		i.interval(enter)
	}
}

func (s *Spawner) fail(inst *Instance, err error) {
	inst.mu.Lock()
	if !inst.state.Loading() {
		inst.mu.Unlock()
		return
	}
	inst.state = Failed
	inst.err = err
	w := inst.wait
	inst.wait = nil
	inst.mu.Unlock()

	if w != nil {
		w.Cancel()
	}

	log.Component("spawner").WithError(err).WithField("container", inst.ContainerID()).Error("spawn failed")
	s.deps.Report(err)
	inst.notify(Failed)
}
