// Package timeline hosts spawns on a clock: it sets them up, fires their
// interval callbacks as time moves and tears them down.
package timeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mediaspawn/mediaspawn/log"
	"github.com/mediaspawn/mediaspawn/loop"
	"github.com/mediaspawn/mediaspawn/media"
	"github.com/mediaspawn/mediaspawn/spawner"
	"github.com/samber/lo"
)

var (
	// ErrInterval is returned for entries whose end is not after their start.
	ErrInterval = errors.New("entry must end after it starts")

	// ErrUnknownEntry is returned by Remove for ids that were never added or already removed.
	ErrUnknownEntry = errors.New("unknown entry")
)

// Plugin sets spawns up. *spawner.Spawner satisfies it.
type Plugin interface {
	Setup(opts spawner.Options) (*spawner.Instance, error)
}

// Reporter receives errors the timeline detects.
type Reporter func(error)

// EventKind tells entering from exiting.
type EventKind int

const (
	Enter EventKind = iota
	Exit
)

func (k EventKind) String() string {
	if k == Enter {
		return "enter"
	}
	return "exit"
}

// Event is an interval callback fired by the timeline.
type Event struct {
	Kind  EventKind
	Entry int
	At    time.Duration
}

type entry struct {
	id       int
	opts     spawner.Options
	instance *spawner.Instance
	inside   bool
}

// Timeline must be driven from the scheduler goroutine, except for Play and the read accessors.
type Timeline struct {
	sched   loop.Scheduler
	plugin  Plugin
	report  Reporter
	tick    time.Duration
	observe func(Event)

	mu       sync.Mutex
	entries  []*entry
	nextID   int
	now      time.Duration
	duration time.Duration
	paused   bool
}

// Option configures a Timeline.
type Option func(*Timeline)

// WithTick sets the clock resolution used by Play.
func WithTick(d time.Duration) Option {
	return func(t *Timeline) {
		if d > 0 {
			t.tick = d
		}
	}
}

// WithDuration fixes the length of the timeline. By default it ends with its last entry.
func WithDuration(d time.Duration) Option {
	return func(t *Timeline) {
		t.duration = d
	}
}

// WithObserver registers fn for every fired event.
func WithObserver(fn func(Event)) Option {
	return func(t *Timeline) {
		t.observe = fn
	}
}

// New returns an empty timeline at time zero. A nil reporter discards errors.
func New(s loop.Scheduler, p Plugin, r Reporter, opts ...Option) *Timeline {
	if r == nil {
		r = func(error) {}
	}

	t := &Timeline{
		sched:  s,
		plugin: p,
		report: r,
		tick:   100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Add sets up a spawn and returns its entry id.
func (t *Timeline) Add(opts spawner.Options) (int, error) {
	if opts.End <= opts.Start {
		err := fmt.Errorf("%w: %s..%s", ErrInterval, opts.Start, opts.End)
		t.report(err)
		return 0, err
	}

	inst, err := t.plugin.Setup(opts)
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	t.nextID++
	e := &entry{id: t.nextID, opts: opts, instance: inst}
	t.entries = append(t.entries, e)
	sort.SliceStable(t.entries, func(i, j int) bool {
		return t.entries[i].opts.Start < t.entries[j].opts.Start
	})
	now := t.now
	t.mu.Unlock()

	log.Component("timeline").WithField("entry", e.id).WithField("source", opts.Source).Debug("added")

	if contains(opts, now) {
		t.fire(e, Enter, now)
	}
	return e.id, nil
}

// Remove tears an entry down.
func (t *Timeline) Remove(id int) error {
	t.mu.Lock()
	e, idx, ok := lo.FindIndexOf(t.entries, func(e *entry) bool { return e.id == id })
	if ok {
		t.entries = append(t.entries[:idx], t.entries[idx+1:]...)
	}
	t.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntry, id)
	}

	e.instance.Teardown()
	return nil
}

// Clear tears every entry down.
func (t *Timeline) Clear() {
	t.mu.Lock()
	entries := t.entries
	t.entries = nil
	t.mu.Unlock()

	for _, e := range entries {
		e.instance.Teardown()
	}
}

func contains(opts spawner.Options, at time.Duration) bool {
	return opts.Start <= at && at < opts.End
}

// Seek moves the clock to at. Entries that left their interval exit first,
// then entries that entered theirs enter, each group in start order.
func (t *Timeline) Seek(at time.Duration) {
	if at < 0 {
		at = 0
	}

	t.mu.Lock()
	t.now = at
	var exits, enters []*entry
	for _, e := range t.entries {
		switch inside := contains(e.opts, at); {
		case e.inside && !inside:
			exits = append(exits, e)
		case !e.inside && inside:
			enters = append(enters, e)
		}
	}
	t.mu.Unlock()

	for _, e := range exits {
		t.fire(e, Exit, at)
	}
	for _, e := range enters {
		t.fire(e, Enter, at)
	}
}

// Tick advances the clock by d.
func (t *Timeline) Tick(d time.Duration) {
	t.Seek(t.Now() + d)
}

func (t *Timeline) fire(e *entry, kind EventKind, at time.Duration) {
	t.mu.Lock()
	e.inside = kind == Enter
	t.mu.Unlock()

	log.Component("timeline").WithField("entry", e.id).WithField("at", at).Debug(kind)

	if kind == Enter {
		e.instance.Enter()
	} else {
		e.instance.Exit()
	}

	if t.observe != nil {
		t.observe(Event{Kind: kind, Entry: e.id, At: at})
	}
}

// Now returns the clock position.
func (t *Timeline) Now() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now
}

// Duration returns the fixed duration, or the latest entry end.
func (t *Timeline) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.duration > 0 {
		return t.duration
	}
	return lo.Reduce(t.entries, func(d time.Duration, e *entry, _ int) time.Duration {
		return max(d, e.opts.End)
	}, 0)
}

// SetPaused stops or resumes the clock driven by Play.
func (t *Timeline) SetPaused(paused bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.paused = paused
}

// Paused reports whether Play currently holds the clock.
func (t *Timeline) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paused
}

// Play advances the clock on the scheduler by rate*tick every tick until the
// end of the timeline or until ctx is done.
func (t *Timeline) Play(ctx context.Context, rate float64) error {
	if rate <= 0 {
		rate = 1
	}

	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	step := time.Duration(float64(t.tick) * rate)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if t.Paused() {
			continue
		}

		end := t.Duration()
		next := min(t.Now()+step, end)

		done := make(chan struct{})
		t.sched.Post(func() {
			defer close(done)
			t.Seek(next)
		})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
		}

		if next >= end {
			return nil
		}
	}
}

// Info describes an entry.
type Info struct {
	ID          int
	Options     spawner.Options
	Type        media.Type
	State       spawner.State
	Inside      bool
	ContainerID string
	Width       int
	Height      int
	Err         error
}

// Entries returns a snapshot of every entry in start order.
func (t *Timeline) Entries() []Info {
	t.mu.Lock()
	entries := append([]*entry(nil), t.entries...)
	t.mu.Unlock()

	return lo.Map(entries, func(e *entry, _ int) Info {
		width, height := e.instance.Size()
		return Info{
			ID:          e.id,
			Options:     e.opts,
			Type:        e.instance.Type(),
			State:       e.instance.State(),
			Inside:      e.instance.Inside(),
			ContainerID: e.instance.ContainerID(),
			Width:       width,
			Height:      height,
			Err:         e.instance.Err(),
		}
	})
}

// Errors collects reported errors. Its Report method is a Reporter.
type Errors struct {
	mu   sync.Mutex
	errs []error
}

// Report records err.
func (e *Errors) Report(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errs = append(e.errs, err)
}

// All returns the errors in report order.
func (e *Errors) All() []error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]error(nil), e.errs...)
}

// Len returns the number of errors.
func (e *Errors) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.errs)
}

// Join returns all errors as one, nil when there are none.
func (e *Errors) Join() error {
	return errors.Join(e.All()...)
}
